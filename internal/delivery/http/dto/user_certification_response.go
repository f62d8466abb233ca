package dto

import (
	"time"

	"skill-matrix/internal/repository"

	"github.com/google/uuid"
)

type UserCertificationResponse struct {
	ID                  uuid.UUID `json:"id"`
	CertificationID     uuid.UUID `json:"certification_id"`
	CertificationName   string    `json:"certification_name"`
	IssuingOrganization string    `json:"issuing_organization"`
	DateObtained        string    `json:"date_obtained"`
	ExpiryDate          *string   `json:"expiry_date"`
	CredentialID        *string   `json:"credential_id"`
	CredentialURL       *string   `json:"credential_url"`
	Notes               *string   `json:"notes"`
	CreatedAt           time.Time `json:"created_at"`
}

func NewUserCertificationResponse(row repository.UserCertificationRow) UserCertificationResponse {
	return UserCertificationResponse{
		ID:                  row.ID,
		CertificationID:     row.CertificationID,
		CertificationName:   row.CertificationName,
		IssuingOrganization: row.IssuingOrganization,
		DateObtained:        row.DateObtained.Format("2006-01-02"),
		ExpiryDate:          formatDate(row.ExpiryDate),
		CredentialID:        row.CredentialID,
		CredentialURL:       row.CredentialURL,
		Notes:               row.Notes,
		CreatedAt:           row.CreatedAt,
	}
}

func NewUserCertificationResponses(items []repository.UserCertificationRow) []UserCertificationResponse {
	res := make([]UserCertificationResponse, 0, len(items))
	for _, it := range items {
		res = append(res, NewUserCertificationResponse(it))
	}
	return res
}
