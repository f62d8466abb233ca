package usecase

import (
	"context"
	"strings"

	"skill-matrix/internal/domain/catalog"
	"skill-matrix/internal/repository"
)

type CreateCertificationInput struct {
	Name                string
	IssuingOrganization string
	Description         *string
}

type CertificationUsecase interface {
	ListCertifications(ctx context.Context) ([]catalog.Certification, error)
	CreateCertification(ctx context.Context, in CreateCertificationInput) (catalog.Certification, error)
}

type Certification struct {
	repo  repository.CertificationRepository
	cache CatalogCache
}

func NewCertificationUsecase(repo repository.CertificationRepository, cache CatalogCache) *Certification {
	return &Certification{repo: repo, cache: cache}
}

func (u *Certification) ListCertifications(ctx context.Context) ([]catalog.Certification, error) {
	if u.cache != nil {
		var cached []catalog.Certification
		if hit, err := u.cache.GetJSON(ctx, certificationsCatalogCacheKey, &cached); err == nil && hit {
			return cached, nil
		}
	}

	items, err := u.repo.GetAll(ctx)
	if err != nil {
		return nil, ErrInternal
	}

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, certificationsCatalogCacheKey, items, 0)
	}
	return items, nil
}

func (u *Certification) CreateCertification(ctx context.Context, in CreateCertificationInput) (catalog.Certification, error) {
	name := strings.TrimSpace(in.Name)
	org := strings.TrimSpace(in.IssuingOrganization)
	if name == "" || org == "" {
		return catalog.Certification{}, ErrInvalidInput
	}

	exists, err := u.repo.ExistsByName(ctx, name)
	if err != nil {
		return catalog.Certification{}, ErrInternal
	}
	if exists {
		return catalog.Certification{}, ErrCertNameTaken
	}

	created, err := u.repo.Create(ctx, name, org, in.Description)
	if err != nil {
		if isUniqueViolation(err) {
			return catalog.Certification{}, ErrCertNameTaken
		}
		return catalog.Certification{}, ErrInternal
	}

	if u.cache != nil {
		_ = u.cache.Delete(ctx, certificationsCatalogCacheKey)
	}
	return created, nil
}
