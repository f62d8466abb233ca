package postgres

import (
	"context"
	"database/sql"

	"skill-matrix/internal/database"
	"skill-matrix/internal/domain/user"

	"github.com/google/uuid"
)

type UserRepository struct {
	stmtCreate       *sql.Stmt
	stmtGetByID      *sql.Stmt
	stmtGetByEmail   *sql.Stmt
	stmtExistsEmail  *sql.Stmt
	stmtEmailByOther *sql.Stmt
	stmtUpdate       *sql.Stmt
}

func NewUserRepository(db database.DB) (*UserRepository, error) {
	r := &UserRepository{}

	sqldb := db.SQLDB()
	prepare := func(dst **sql.Stmt, query string) error {
		s, err := sqldb.PrepareContext(context.Background(), query)
		if err != nil {
			return err
		}
		*dst = s
		return nil
	}

	steps := []struct {
		dst   **sql.Stmt
		query string
	}{
		{&r.stmtCreate,
			`INSERT INTO users (id, email, password_hash, name, role, department) VALUES ($1, $2, $3, $4, $5, $6)`},
		{&r.stmtGetByID,
			`SELECT id, email, password_hash, name, role, department, created_at FROM users WHERE id = $1`},
		{&r.stmtGetByEmail,
			`SELECT id, email, password_hash, name, role, department, created_at FROM users WHERE email = $1`},
		{&r.stmtExistsEmail,
			`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`},
		{&r.stmtEmailByOther,
			`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 AND id <> $2)`},
		{&r.stmtUpdate,
			`UPDATE users SET email = $1, password_hash = $2, name = $3, role = $4, department = $5 WHERE id = $6`},
	}

	for _, s := range steps {
		if err := prepare(s.dst, s.query); err != nil {
			_ = r.Close()
			return nil, err
		}
	}

	return r, nil
}

func (r *UserRepository) Close() error {
	var firstErr error
	closeStmt := func(s *sql.Stmt) {
		if s == nil {
			return
		}
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	closeStmt(r.stmtCreate)
	closeStmt(r.stmtGetByID)
	closeStmt(r.stmtGetByEmail)
	closeStmt(r.stmtExistsEmail)
	closeStmt(r.stmtEmailByOther)
	closeStmt(r.stmtUpdate)

	return firstErr
}

func (r *UserRepository) Create(ctx context.Context, u user.User) error {
	_, err := r.stmtCreate.ExecContext(ctx, u.ID, u.Email, u.PasswordHash, u.Name, u.Role, u.Department)
	return err
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	row := r.stmtGetByID.QueryRowContext(ctx, id)
	return scanUser(row)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	row := r.stmtGetByEmail.QueryRowContext(ctx, email)
	return scanUser(row)
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	if err := r.stmtExistsEmail.QueryRowContext(ctx, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *UserRepository) EmailTakenByOther(ctx context.Context, email string, id uuid.UUID) (bool, error) {
	var exists bool
	if err := r.stmtEmailByOther.QueryRowContext(ctx, email, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *UserRepository) Update(ctx context.Context, u user.User) error {
	res, err := r.stmtUpdate.ExecContext(ctx, u.Email, u.PasswordHash, u.Name, u.Role, u.Department, u.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return user.ErrNotFound
	}
	return nil
}

type userRow interface {
	Scan(dest ...any) error
}

func scanUser(row userRow) (user.User, error) {
	var u user.User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.Department, &u.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}
