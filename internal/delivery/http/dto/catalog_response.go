package dto

import (
	"time"

	"skill-matrix/internal/domain/catalog"

	"github.com/google/uuid"
)

type SkillResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type CertificationResponse struct {
	ID                  uuid.UUID `json:"id"`
	Name                string    `json:"name"`
	IssuingOrganization string    `json:"issuing_organization"`
	Description         *string   `json:"description"`
	CreatedAt           time.Time `json:"created_at"`
}

func NewSkillResponse(s catalog.Skill) SkillResponse {
	return SkillResponse{
		ID:          s.ID,
		Name:        s.Name,
		Category:    s.Category,
		Description: s.Description,
		CreatedAt:   s.CreatedAt,
	}
}

func NewSkillResponses(items []catalog.Skill) []SkillResponse {
	res := make([]SkillResponse, 0, len(items))
	for _, it := range items {
		res = append(res, NewSkillResponse(it))
	}
	return res
}

func NewCertificationResponse(c catalog.Certification) CertificationResponse {
	return CertificationResponse{
		ID:                  c.ID,
		Name:                c.Name,
		IssuingOrganization: c.IssuingOrganization,
		Description:         c.Description,
		CreatedAt:           c.CreatedAt,
	}
}

func NewCertificationResponses(items []catalog.Certification) []CertificationResponse {
	res := make([]CertificationResponse, 0, len(items))
	for _, it := range items {
		res = append(res, NewCertificationResponse(it))
	}
	return res
}
