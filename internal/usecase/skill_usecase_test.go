package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"skill-matrix/internal/domain/catalog"

	"github.com/google/uuid"
)

type mockCache struct {
	entries map[string][]byte
	deleted []string
}

func newMockCache() *mockCache {
	return &mockCache{entries: map[string][]byte{}}
}

func (m *mockCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	raw, ok := m.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, out)
}

func (m *mockCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.entries[key] = raw
	return nil
}

func (m *mockCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.entries, k)
		m.deleted = append(m.deleted, k)
	}
	return nil
}

func TestCreateSkill_DuplicateName(t *testing.T) {
	repo := &mockSkillRepo{items: []catalog.Skill{{ID: uuid.New(), Name: "Go", Category: "Backend"}}}
	uc := NewSkillUsecase(repo, nil)

	_, err := uc.CreateSkill(context.Background(), CreateSkillInput{Name: "Go", Category: "Backend"})
	if !errors.Is(err, ErrSkillNameTaken) {
		t.Fatalf("expected ErrSkillNameTaken, got %v", err)
	}
}

func TestCreateSkill_TrimsAndRequiresFields(t *testing.T) {
	repo := &mockSkillRepo{}
	uc := NewSkillUsecase(repo, nil)

	if _, err := uc.CreateSkill(context.Background(), CreateSkillInput{Name: "  ", Category: "Backend"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	created, err := uc.CreateSkill(context.Background(), CreateSkillInput{Name: "  Go  ", Category: " Backend "})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if created.Name != "Go" || created.Category != "Backend" {
		t.Fatalf("expected trimmed fields, got %q/%q", created.Name, created.Category)
	}
}

func TestListSkills_ServesFromCacheThenInvalidatesOnCreate(t *testing.T) {
	repo := &mockSkillRepo{items: []catalog.Skill{{ID: uuid.New(), Name: "Go", Category: "Backend"}}}
	cache := newMockCache()
	uc := NewSkillUsecase(repo, cache)

	first, err := uc.ListSkills(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("expected 1 skill, got %d", len(first))
	}
	if _, ok := cache.entries[skillsCatalogCacheKey]; !ok {
		t.Fatalf("expected listing to populate the cache")
	}

	// a repo-level change is invisible while the cache entry stands
	repo.items = append(repo.items, catalog.Skill{ID: uuid.New(), Name: "Rust", Category: "Backend"})
	second, err := uc.ListSkills(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(second) != 1 {
		t.Fatalf("expected cached listing of 1 skill, got %d", len(second))
	}

	if _, err := uc.CreateSkill(context.Background(), CreateSkillInput{Name: "Kubernetes", Category: "Infra"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, ok := cache.entries[skillsCatalogCacheKey]; ok {
		t.Fatalf("expected create to invalidate the cache")
	}

	third, err := uc.ListSkills(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(third) != 3 {
		t.Fatalf("expected fresh listing of 3 skills, got %d", len(third))
	}
}

func TestCreateCertification_DuplicateName(t *testing.T) {
	repo := &mockCertRepo{items: []catalog.Certification{{ID: uuid.New(), Name: "CKA", IssuingOrganization: "CNCF"}}}
	uc := NewCertificationUsecase(repo, nil)

	_, err := uc.CreateCertification(context.Background(), CreateCertificationInput{Name: "CKA", IssuingOrganization: "CNCF"})
	if !errors.Is(err, ErrCertNameTaken) {
		t.Fatalf("expected ErrCertNameTaken, got %v", err)
	}
}
