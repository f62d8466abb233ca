package seeder

import (
	"context"
	"fmt"

	"skill-matrix/internal/database"
)

type CertificationsSeeder struct{}

func (CertificationsSeeder) Name() string { return "certifications" }

func (CertificationsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := ensureCatalogTable(ctx, db, "certifications", "id", "name", "issuing_organization", "created_at"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	items := []struct {
		Name string
		Org  string
	}{
		{Name: "AWS Certified Solutions Architect", Org: "Amazon Web Services"},
		{Name: "AWS Certified Developer", Org: "Amazon Web Services"},
		{Name: "CKA: Certified Kubernetes Administrator", Org: "Cloud Native Computing Foundation"},
		{Name: "PMP: Project Management Professional", Org: "Project Management Institute"},
		{Name: "CompTIA Security+", Org: "CompTIA"},
		{Name: "Google Cloud Professional Cloud Architect", Org: "Google"},
	}

	for _, it := range items {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO certifications (id, name, issuing_organization) VALUES (gen_random_uuid(), $1, $2) ON CONFLICT (name) DO NOTHING`,
			it.Name,
			it.Org,
		)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
