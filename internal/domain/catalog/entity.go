package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Skill and Certification are catalog entries assignable to users. Names are
// unique within each catalog.
type Skill struct {
	ID          uuid.UUID
	Name        string
	Category    string
	Description *string
	CreatedAt   time.Time
}

type Certification struct {
	ID                  uuid.UUID
	Name                string
	IssuingOrganization string
	Description         *string
	CreatedAt           time.Time
}
