package usecase

import (
	"context"
	"errors"
	"strings"

	"skill-matrix/internal/domain/catalog"
	"skill-matrix/internal/repository"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrSkillNameTaken = errors.New("skill already exists")
	ErrCertNameTaken  = errors.New("certification already exists")
)

type CreateSkillInput struct {
	Name        string
	Category    string
	Description *string
}

type SkillUsecase interface {
	ListSkills(ctx context.Context) ([]catalog.Skill, error)
	CreateSkill(ctx context.Context, in CreateSkillInput) (catalog.Skill, error)
}

type Skill struct {
	repo  repository.SkillRepository
	cache CatalogCache
}

func NewSkillUsecase(repo repository.SkillRepository, cache CatalogCache) *Skill {
	return &Skill{repo: repo, cache: cache}
}

func (u *Skill) ListSkills(ctx context.Context) ([]catalog.Skill, error) {
	if u.cache != nil {
		var cached []catalog.Skill
		if hit, err := u.cache.GetJSON(ctx, skillsCatalogCacheKey, &cached); err == nil && hit {
			return cached, nil
		}
	}

	items, err := u.repo.GetAll(ctx)
	if err != nil {
		return nil, ErrInternal
	}

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, skillsCatalogCacheKey, items, 0)
	}
	return items, nil
}

func (u *Skill) CreateSkill(ctx context.Context, in CreateSkillInput) (catalog.Skill, error) {
	name := strings.TrimSpace(in.Name)
	category := strings.TrimSpace(in.Category)
	if name == "" || category == "" {
		return catalog.Skill{}, ErrInvalidInput
	}

	exists, err := u.repo.ExistsByName(ctx, name)
	if err != nil {
		return catalog.Skill{}, ErrInternal
	}
	if exists {
		return catalog.Skill{}, ErrSkillNameTaken
	}

	created, err := u.repo.Create(ctx, name, category, in.Description)
	if err != nil {
		if isUniqueViolation(err) {
			return catalog.Skill{}, ErrSkillNameTaken
		}
		return catalog.Skill{}, ErrInternal
	}

	if u.cache != nil {
		_ = u.cache.Delete(ctx, skillsCatalogCacheKey)
	}
	return created, nil
}
