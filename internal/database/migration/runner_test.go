package migration

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func writeMigration(t *testing.T, dir, name, sqlText string) string {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(sqlText), 0o644))
	h := sha256.Sum256([]byte(sqlText))
	return hex.EncodeToString(h[:])
}

func TestRunner_AppliesPendingMigrations(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "V1__create_items.sql", "CREATE TABLE items (id INT)")

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("pg_advisory_lock").WithArgs(int64(advisoryLockKey)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT version, checksum FROM schema_migrations").
		WillReturnRows(sqlmock.NewRows([]string{"version", "checksum"}))
	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE items").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO schema_migrations").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectExec("pg_advisory_unlock").WithArgs(int64(advisoryLockKey)).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, Runner{Dir: dir}.Run(context.Background(), db))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunner_SkipsAppliedMigrations(t *testing.T) {
	dir := t.TempDir()
	checksum := writeMigration(t, dir, "V1__create_items.sql", "CREATE TABLE items (id INT)")

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("pg_advisory_lock").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT version, checksum FROM schema_migrations").
		WillReturnRows(sqlmock.NewRows([]string{"version", "checksum"}).AddRow(int64(1), checksum))
	mock.ExpectExec("pg_advisory_unlock").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, Runner{Dir: dir}.Run(context.Background(), db))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunner_RejectsChecksumMismatch(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "V1__create_items.sql", "CREATE TABLE items (id INT)")

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("pg_advisory_lock").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT version, checksum FROM schema_migrations").
		WillReturnRows(sqlmock.NewRows([]string{"version", "checksum"}).AddRow(int64(1), "different-checksum"))
	mock.ExpectExec("pg_advisory_unlock").WillReturnResult(sqlmock.NewResult(0, 0))

	err = Runner{Dir: dir}.Run(context.Background(), db)
	require.Error(t, err)
	require.Contains(t, err.Error(), "checksum mismatch")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunner_NoMigrationsIsANoop(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("not a migration"), 0o644))

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Runner{Dir: dir}.Run(context.Background(), db))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunner_RejectsDuplicateVersions(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "V1__create_items.sql", "CREATE TABLE items (id INT)")
	writeMigration(t, dir, "V1__create_other.sql", "CREATE TABLE other (id INT)")

	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	err = Runner{Dir: dir}.Run(context.Background(), db)
	require.Error(t, err)
	require.Contains(t, err.Error(), "duplicate migration version")
}

func TestLoadMigrations_OrdersByVersion(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "V10__later.sql", "SELECT 10")
	writeMigration(t, dir, "V2__earlier.sql", "SELECT 2")

	migs, err := loadMigrations(dir)
	require.NoError(t, err)
	require.Len(t, migs, 2)
	require.Equal(t, int64(2), migs[0].Version)
	require.Equal(t, int64(10), migs[1].Version)
}
