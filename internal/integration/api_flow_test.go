package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"skill-matrix/internal/delivery/http/handler"
	"skill-matrix/internal/delivery/http/middleware"
	"skill-matrix/internal/domain/catalog"
	"skill-matrix/internal/domain/user"
	"skill-matrix/internal/pkg/jwt"
	"skill-matrix/internal/repository"
	"skill-matrix/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type semanticResponse struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type authData struct {
	User  json.RawMessage `json:"user"`
	Token string          `json:"token"`
}

type userView struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
	Role  string    `json:"role"`
}

type skillView struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
}

type userSkillView struct {
	ID                uuid.UUID `json:"id"`
	SkillID           uuid.UUID `json:"skill_id"`
	SkillName         string    `json:"skill_name"`
	ProficiencyLevel  string    `json:"proficiency_level"`
	YearsOfExperience float64   `json:"years_of_experience"`
	Notes             *string   `json:"notes"`
}

type completeProfileView struct {
	User           userView          `json:"user"`
	Skills         []userSkillView   `json:"skills"`
	Certifications []json.RawMessage `json:"certifications"`
}

func TestAPI_RegisterLoginAddSkillCompleteProfile(t *testing.T) {
	app := newTestApp(t)

	// register: 201, token issued, no password material in the payload
	status, res := doJSON(t, app, "POST", "/api/v1/auth/register", "",
		`{"email":"jane@example.com","password":"pw","name":"Jane Doe"}`)
	if status != fiber.StatusCreated {
		t.Fatalf("register: expected 201, got %d (%s)", status, res.Message)
	}

	var reg authData
	mustUnmarshal(t, res.Data, &reg)
	if reg.Token == "" {
		t.Fatalf("register: empty token")
	}
	if bytes.Contains(bytes.ToLower(reg.User), []byte("password")) {
		t.Fatalf("register: user payload leaks password material: %s", reg.User)
	}

	var registered userView
	mustUnmarshal(t, reg.User, &registered)
	if registered.Role != user.DefaultRole {
		t.Fatalf("register: expected default role, got %q", registered.Role)
	}

	// login: 200 with a usable token
	status, res = doJSON(t, app, "POST", "/api/v1/auth/login", "",
		`{"email":"jane@example.com","password":"pw"}`)
	if status != fiber.StatusOK {
		t.Fatalf("login: expected 200, got %d (%s)", status, res.Message)
	}

	var login authData
	mustUnmarshal(t, res.Data, &login)
	if login.Token == "" {
		t.Fatalf("login: empty token")
	}
	if bytes.Contains(bytes.ToLower(login.User), []byte("password")) {
		t.Fatalf("login: user payload leaks password material: %s", login.User)
	}
	tok := login.Token
	userPath := "/api/v1/users/" + registered.ID.String()

	// the protected surface rejects missing credentials
	status, _ = doJSON(t, app, "GET", userPath+"/complete", "", "")
	if status != fiber.StatusUnauthorized {
		t.Fatalf("complete without token: expected 401, got %d", status)
	}

	// a fresh profile aggregates to empty association lists
	status, res = doJSON(t, app, "GET", userPath+"/complete", tok, "")
	if status != fiber.StatusOK {
		t.Fatalf("complete: expected 200, got %d (%s)", status, res.Message)
	}
	var profile completeProfileView
	mustUnmarshal(t, res.Data, &profile)
	if len(profile.Skills) != 0 || len(profile.Certifications) != 0 {
		t.Fatalf("complete: expected empty profile, got %d skills / %d certifications",
			len(profile.Skills), len(profile.Certifications))
	}

	// catalog skill, then assign it with only the required fields
	status, res = doJSON(t, app, "POST", "/api/v1/skills", tok,
		`{"name":"Go","category":"Programming Language"}`)
	if status != fiber.StatusCreated {
		t.Fatalf("create skill: expected 201, got %d (%s)", status, res.Message)
	}
	var skill skillView
	mustUnmarshal(t, res.Data, &skill)

	status, res = doJSON(t, app, "POST", "/api/v1/skills/user/"+registered.ID.String(), tok,
		`{"skill_id":"`+skill.ID.String()+`","proficiency_level":"Beginner","notes":"learning the stdlib"}`)
	if status != fiber.StatusCreated {
		t.Fatalf("add user skill: expected 201, got %d (%s)", status, res.Message)
	}
	var added userSkillView
	mustUnmarshal(t, res.Data, &added)
	if added.YearsOfExperience != 0 {
		t.Fatalf("add user skill: expected years_of_experience 0, got %v", added.YearsOfExperience)
	}

	status, res = doJSON(t, app, "GET", userPath+"/complete", tok, "")
	if status != fiber.StatusOK {
		t.Fatalf("complete after add: expected 200, got %d (%s)", status, res.Message)
	}
	mustUnmarshal(t, res.Data, &profile)
	if len(profile.Skills) != 1 {
		t.Fatalf("complete after add: expected 1 skill, got %d", len(profile.Skills))
	}
	got := profile.Skills[0]
	if got.SkillName != "Go" || got.ProficiencyLevel != "Beginner" || got.YearsOfExperience != 0 {
		t.Fatalf("complete after add: unexpected skill view %+v", got)
	}
}

func TestAPI_UpdateUserSkill_JSONNullDoesNotErase(t *testing.T) {
	app := newTestApp(t)

	status, res := doJSON(t, app, "POST", "/api/v1/auth/register", "",
		`{"email":"jane@example.com","password":"pw","name":"Jane Doe"}`)
	if status != fiber.StatusCreated {
		t.Fatalf("register: expected 201, got %d (%s)", status, res.Message)
	}
	var reg authData
	mustUnmarshal(t, res.Data, &reg)
	var registered userView
	mustUnmarshal(t, reg.User, &registered)
	tok := reg.Token

	status, res = doJSON(t, app, "POST", "/api/v1/skills", tok,
		`{"name":"PostgreSQL","category":"Database"}`)
	if status != fiber.StatusCreated {
		t.Fatalf("create skill: expected 201, got %d (%s)", status, res.Message)
	}
	var skill skillView
	mustUnmarshal(t, res.Data, &skill)

	assocPath := "/api/v1/skills/user/" + registered.ID.String()
	status, res = doJSON(t, app, "POST", assocPath, tok,
		`{"skill_id":"`+skill.ID.String()+`","proficiency_level":"Advanced","years_of_experience":4,"notes":"runs the prod cluster"}`)
	if status != fiber.StatusCreated {
		t.Fatalf("add user skill: expected 201, got %d (%s)", status, res.Message)
	}

	// an explicit JSON null must behave like an absent field, not a wipe
	status, res = doJSON(t, app, "PUT", assocPath+"/"+skill.ID.String(), tok,
		`{"proficiency_level":"Expert","notes":null,"years_of_experience":null}`)
	if status != fiber.StatusOK {
		t.Fatalf("update user skill: expected 200, got %d (%s)", status, res.Message)
	}
	var updated userSkillView
	mustUnmarshal(t, res.Data, &updated)
	if updated.ProficiencyLevel != "Expert" {
		t.Fatalf("update user skill: expected proficiency Expert, got %q", updated.ProficiencyLevel)
	}
	if updated.Notes == nil || *updated.Notes != "runs the prod cluster" {
		t.Fatalf("update user skill: null notes erased stored value, got %v", updated.Notes)
	}
	if updated.YearsOfExperience != 4 {
		t.Fatalf("update user skill: null years erased stored value, got %v", updated.YearsOfExperience)
	}
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	jwtSvc := jwt.NewHMACService("test-secret", time.Hour)
	authMw := middleware.NewAuthMiddleware(jwtSvc)

	users := newMemUserRepo()
	skills := newMemSkillRepo()
	certs := newMemCertRepo()
	userSkills := newMemUserSkillRepo(skills)
	userCerts := newMemUserCertRepo(certs)
	profiles := &memProfileRepo{users: users, skills: userSkills, certs: userCerts}

	app := fiber.New(fiber.Config{})
	app.Use(middleware.NewErrorMiddleware().Middleware())

	api := app.Group("/api")
	v1 := api.Group("/v1")

	authGroup := v1.Group("/auth")
	handler.NewAuthHandler(usecase.NewAuthUsecase(users, jwtSvc)).RegisterRoutes(authGroup)

	protected := v1.Group("", authMw.Middleware())

	usersGroup := protected.Group("/users")
	handler.NewUserHandler(usecase.NewUserUsecase(users, profiles)).RegisterRoutes(usersGroup)

	skillsGroup := protected.Group("/skills")
	handler.NewSkillHandler(usecase.NewSkillUsecase(skills, nil)).RegisterRoutes(skillsGroup)
	handler.NewUserSkillHandler(usecase.NewUserSkillUsecase(userSkills, skills)).RegisterRoutes(skillsGroup)

	certsGroup := protected.Group("/certifications")
	handler.NewCertificationHandler(usecase.NewCertificationUsecase(certs, nil)).RegisterRoutes(certsGroup)
	handler.NewUserCertificationHandler(usecase.NewUserCertificationUsecase(userCerts, certs)).RegisterRoutes(certsGroup)

	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token, body string) (int, semanticResponse) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var sr semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		t.Fatalf("%s %s: decode body: %v", method, path, err)
	}
	return resp.StatusCode, sr
}

func mustUnmarshal(t *testing.T, raw json.RawMessage, out any) {
	t.Helper()
	if err := json.Unmarshal(raw, out); err != nil {
		t.Fatalf("unmarshal %s: %v", raw, err)
	}
}

type memUserRepo struct {
	byID map[uuid.UUID]user.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byID: map[uuid.UUID]user.User{}}
}

func (m *memUserRepo) Create(_ context.Context, u user.User) error {
	u.CreatedAt = time.Now().UTC()
	m.byID[u.ID] = u
	return nil
}

func (m *memUserRepo) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (m *memUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := m.GetByEmail(ctx, email)
	return err == nil, nil
}

func (m *memUserRepo) EmailTakenByOther(_ context.Context, email string, id uuid.UUID) (bool, error) {
	for _, u := range m.byID {
		if u.Email == email && u.ID != id {
			return true, nil
		}
	}
	return false, nil
}

func (m *memUserRepo) Update(_ context.Context, u user.User) error {
	if _, ok := m.byID[u.ID]; !ok {
		return user.ErrNotFound
	}
	m.byID[u.ID] = u
	return nil
}

type memSkillRepo struct {
	items []catalog.Skill
}

func newMemSkillRepo() *memSkillRepo { return &memSkillRepo{} }

func (m *memSkillRepo) GetAll(context.Context) ([]catalog.Skill, error) { return m.items, nil }

func (m *memSkillRepo) ExistsByName(_ context.Context, name string) (bool, error) {
	for _, s := range m.items {
		if s.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (m *memSkillRepo) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	for _, s := range m.items {
		if s.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (m *memSkillRepo) Create(_ context.Context, name, category string, description *string) (catalog.Skill, error) {
	s := catalog.Skill{ID: uuid.New(), Name: name, Category: category, Description: description, CreatedAt: time.Now().UTC()}
	m.items = append(m.items, s)
	return s, nil
}

func (m *memSkillRepo) get(id uuid.UUID) (catalog.Skill, bool) {
	for _, s := range m.items {
		if s.ID == id {
			return s, true
		}
	}
	return catalog.Skill{}, false
}

type memCertRepo struct {
	items []catalog.Certification
}

func newMemCertRepo() *memCertRepo { return &memCertRepo{} }

func (m *memCertRepo) GetAll(context.Context) ([]catalog.Certification, error) {
	return m.items, nil
}

func (m *memCertRepo) ExistsByName(_ context.Context, name string) (bool, error) {
	for _, c := range m.items {
		if c.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (m *memCertRepo) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	for _, c := range m.items {
		if c.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (m *memCertRepo) Create(_ context.Context, name, org string, description *string) (catalog.Certification, error) {
	c := catalog.Certification{ID: uuid.New(), Name: name, IssuingOrganization: org, Description: description, CreatedAt: time.Now().UTC()}
	m.items = append(m.items, c)
	return c, nil
}

func (m *memCertRepo) get(id uuid.UUID) (catalog.Certification, bool) {
	for _, c := range m.items {
		if c.ID == id {
			return c, true
		}
	}
	return catalog.Certification{}, false
}

type memUserSkillRepo struct {
	catalog *memSkillRepo
	rows    []repository.UserSkillRow
}

func newMemUserSkillRepo(catalog *memSkillRepo) *memUserSkillRepo {
	return &memUserSkillRepo{catalog: catalog}
}

func (m *memUserSkillRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]repository.UserSkillRow, error) {
	out := []repository.UserSkillRow{}
	for _, r := range m.rows {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SkillCategory != out[j].SkillCategory {
			return out[i].SkillCategory < out[j].SkillCategory
		}
		return out[i].SkillName < out[j].SkillName
	})
	return out, nil
}

func (m *memUserSkillRepo) ExistsPair(_ context.Context, userID, skillID uuid.UUID) (bool, error) {
	for _, r := range m.rows {
		if r.UserID == userID && r.SkillID == skillID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memUserSkillRepo) Create(_ context.Context, in repository.CreateUserSkill) (repository.UserSkillRow, error) {
	s, _ := m.catalog.get(in.SkillID)
	now := time.Now().UTC()
	row := repository.UserSkillRow{
		ID:                uuid.New(),
		UserID:            in.UserID,
		SkillID:           in.SkillID,
		SkillName:         s.Name,
		SkillCategory:     s.Category,
		ProficiencyLevel:  in.ProficiencyLevel,
		YearsOfExperience: in.YearsOfExperience,
		LastUsed:          in.LastUsed,
		Notes:             in.Notes,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	m.rows = append(m.rows, row)
	return row, nil
}

func (m *memUserSkillRepo) UpdatePair(_ context.Context, userID, skillID uuid.UUID, patch repository.UserSkillPatch) (repository.UserSkillRow, error) {
	for i, r := range m.rows {
		if r.UserID != userID || r.SkillID != skillID {
			continue
		}
		if patch.ProficiencyLevel != nil {
			r.ProficiencyLevel = *patch.ProficiencyLevel
		}
		if patch.YearsOfExperience != nil {
			r.YearsOfExperience = *patch.YearsOfExperience
		}
		if patch.LastUsed != nil {
			r.LastUsed = patch.LastUsed
		}
		if patch.Notes != nil {
			r.Notes = patch.Notes
		}
		r.UpdatedAt = time.Now().UTC()
		m.rows[i] = r
		return r, nil
	}
	return repository.UserSkillRow{}, repository.ErrUserSkillNotFound
}

func (m *memUserSkillRepo) DeletePair(_ context.Context, userID, skillID uuid.UUID) error {
	for i, r := range m.rows {
		if r.UserID == userID && r.SkillID == skillID {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return repository.ErrUserSkillNotFound
}

type memUserCertRepo struct {
	catalog *memCertRepo
	rows    []repository.UserCertificationRow
}

func newMemUserCertRepo(catalog *memCertRepo) *memUserCertRepo {
	return &memUserCertRepo{catalog: catalog}
}

func (m *memUserCertRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]repository.UserCertificationRow, error) {
	out := []repository.UserCertificationRow{}
	for _, r := range m.rows {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DateObtained.After(out[j].DateObtained)
	})
	return out, nil
}

func (m *memUserCertRepo) ExistsPair(_ context.Context, userID, certID uuid.UUID) (bool, error) {
	for _, r := range m.rows {
		if r.UserID == userID && r.CertificationID == certID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memUserCertRepo) Create(_ context.Context, in repository.CreateUserCertification) (repository.UserCertificationRow, error) {
	c, _ := m.catalog.get(in.CertificationID)
	row := repository.UserCertificationRow{
		ID:                  uuid.New(),
		UserID:              in.UserID,
		CertificationID:     in.CertificationID,
		CertificationName:   c.Name,
		IssuingOrganization: c.IssuingOrganization,
		DateObtained:        in.DateObtained,
		ExpiryDate:          in.ExpiryDate,
		CredentialID:        in.CredentialID,
		CredentialURL:       in.CredentialURL,
		Notes:               in.Notes,
		CreatedAt:           time.Now().UTC(),
	}
	m.rows = append(m.rows, row)
	return row, nil
}

func (m *memUserCertRepo) UpdatePair(_ context.Context, userID, certID uuid.UUID, patch repository.UserCertificationPatch) (repository.UserCertificationRow, error) {
	for i, r := range m.rows {
		if r.UserID != userID || r.CertificationID != certID {
			continue
		}
		if patch.DateObtained != nil {
			r.DateObtained = *patch.DateObtained
		}
		if patch.ExpiryDate != nil {
			r.ExpiryDate = patch.ExpiryDate
		}
		if patch.CredentialID != nil {
			r.CredentialID = patch.CredentialID
		}
		if patch.CredentialURL != nil {
			r.CredentialURL = patch.CredentialURL
		}
		if patch.Notes != nil {
			r.Notes = patch.Notes
		}
		m.rows[i] = r
		return r, nil
	}
	return repository.UserCertificationRow{}, repository.ErrUserCertificationNotFound
}

func (m *memUserCertRepo) DeletePair(_ context.Context, userID, certID uuid.UUID) error {
	for i, r := range m.rows {
		if r.UserID == userID && r.CertificationID == certID {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return repository.ErrUserCertificationNotFound
}

type memProfileRepo struct {
	users  *memUserRepo
	skills *memUserSkillRepo
	certs  *memUserCertRepo
}

func (m *memProfileRepo) GetCompleteProfile(ctx context.Context, userID uuid.UUID) (repository.CompleteProfile, error) {
	u, err := m.users.GetByID(ctx, userID)
	if err != nil {
		return repository.CompleteProfile{}, err
	}
	skills, err := m.skills.FindByUserID(ctx, userID)
	if err != nil {
		return repository.CompleteProfile{}, err
	}
	certs, err := m.certs.FindByUserID(ctx, userID)
	if err != nil {
		return repository.CompleteProfile{}, err
	}
	return repository.CompleteProfile{User: u, Skills: skills, Certifications: certs}, nil
}
