package user

import (
	"context"
	"errors"
	"testing"

	"skill-matrix/internal/domain/user"
	"skill-matrix/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type mockUserRepo struct {
	byID map[uuid.UUID]user.User
}

func newMockUserRepo(users ...user.User) *mockUserRepo {
	m := &mockUserRepo{byID: map[uuid.UUID]user.User{}}
	for _, u := range users {
		m.byID[u.ID] = u
	}
	return m
}

func (m *mockUserRepo) Create(_ context.Context, u user.User) error {
	m.byID[u.ID] = u
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (m *mockUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, err := m.GetByEmail(context.Background(), email)
	return err == nil, nil
}

func (m *mockUserRepo) EmailTakenByOther(_ context.Context, email string, id uuid.UUID) (bool, error) {
	for _, u := range m.byID {
		if u.Email == email && u.ID != id {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepo) Update(_ context.Context, u user.User) error {
	if _, ok := m.byID[u.ID]; !ok {
		return user.ErrNotFound
	}
	m.byID[u.ID] = u
	return nil
}

type mockProfileRepo struct {
	profiles map[uuid.UUID]repository.CompleteProfile
}

func (m *mockProfileRepo) GetCompleteProfile(_ context.Context, userID uuid.UUID) (repository.CompleteProfile, error) {
	p, ok := m.profiles[userID]
	if !ok {
		return repository.CompleteProfile{}, user.ErrNotFound
	}
	return p, nil
}

func strPtr(s string) *string { return &s }

func TestUpdateUser_PatchesOnlyPresentFields(t *testing.T) {
	id := uuid.New()
	dept := "Platform"
	repo := newMockUserRepo(user.User{
		ID:         id,
		Email:      "jane@example.com",
		Name:       "Jane",
		Role:       "employee",
		Department: &dept,
	})
	svc := NewService(repo, &mockProfileRepo{})

	updated, err := svc.UpdateUser(context.Background(), id, UpdateProfileInput{Name: strPtr("Jane Doe")})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if updated.Name != "Jane Doe" {
		t.Fatalf("expected name update, got %q", updated.Name)
	}
	if updated.Email != "jane@example.com" {
		t.Fatalf("email changed unexpectedly: %q", updated.Email)
	}
	if updated.Department == nil || *updated.Department != "Platform" {
		t.Fatalf("department changed unexpectedly: %v", updated.Department)
	}
}

func TestUpdateUser_EmailTakenByOther(t *testing.T) {
	a := user.User{ID: uuid.New(), Email: "a@example.com", Name: "A"}
	b := user.User{ID: uuid.New(), Email: "b@example.com", Name: "B"}
	repo := newMockUserRepo(a, b)
	svc := NewService(repo, &mockProfileRepo{})

	_, err := svc.UpdateUser(context.Background(), a.ID, UpdateProfileInput{Email: strPtr("b@example.com")})
	if !errors.Is(err, ErrEmailInUse) {
		t.Fatalf("expected ErrEmailInUse, got %v", err)
	}
}

func TestUpdateUser_KeepingOwnEmailIsNotAConflict(t *testing.T) {
	a := user.User{ID: uuid.New(), Email: "a@example.com", Name: "A"}
	repo := newMockUserRepo(a)
	svc := NewService(repo, &mockProfileRepo{})

	updated, err := svc.UpdateUser(context.Background(), a.ID, UpdateProfileInput{Email: strPtr("a@example.com")})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if updated.Email != "a@example.com" {
		t.Fatalf("unexpected email %q", updated.Email)
	}
}

func TestUpdateUser_RehashesPassword(t *testing.T) {
	id := uuid.New()
	repo := newMockUserRepo(user.User{ID: id, Email: "a@example.com", Name: "A", PasswordHash: "old"})
	svc := NewService(repo, &mockProfileRepo{})

	updated, err := svc.UpdateUser(context.Background(), id, UpdateProfileInput{Password: strPtr("new-secret")})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if updated.PasswordHash != "" {
		t.Fatalf("password hash leaked in result")
	}

	stored := repo.byID[id]
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("new-secret")); err != nil {
		t.Fatalf("stored hash does not match new password: %v", err)
	}
}

func TestUpdateUser_EmptyPatchValuesRejected(t *testing.T) {
	id := uuid.New()
	repo := newMockUserRepo(user.User{ID: id, Email: "a@example.com", Name: "A"})
	svc := NewService(repo, &mockProfileRepo{})

	if _, err := svc.UpdateUser(context.Background(), id, UpdateProfileInput{Email: strPtr("  ")}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank email, got %v", err)
	}
	if _, err := svc.UpdateUser(context.Background(), id, UpdateProfileInput{Name: strPtr("")}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank name, got %v", err)
	}
	if _, err := svc.UpdateUser(context.Background(), id, UpdateProfileInput{Password: strPtr("")}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank password, got %v", err)
	}
}

func TestGetUser_NotFound(t *testing.T) {
	svc := NewService(newMockUserRepo(), &mockProfileRepo{})

	_, err := svc.GetUser(context.Background(), uuid.New())
	if !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetCompleteProfile_SanitizesUser(t *testing.T) {
	id := uuid.New()
	profiles := &mockProfileRepo{profiles: map[uuid.UUID]repository.CompleteProfile{
		id: {
			User:   user.User{ID: id, Email: "a@example.com", PasswordHash: "hash"},
			Skills: []repository.UserSkillRow{{ID: uuid.New(), UserID: id, SkillName: "Go"}},
		},
	}}
	svc := NewService(newMockUserRepo(), profiles)

	p, err := svc.GetCompleteProfile(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.User.PasswordHash != "" {
		t.Fatalf("password hash leaked in profile")
	}
	if len(p.Skills) != 1 {
		t.Fatalf("expected 1 skill, got %d", len(p.Skills))
	}
}
