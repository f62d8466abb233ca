package dto

import (
	"time"

	"skill-matrix/internal/repository"

	"github.com/google/uuid"
)

type UserSkillResponse struct {
	ID                uuid.UUID `json:"id"`
	SkillID           uuid.UUID `json:"skill_id"`
	SkillName         string    `json:"skill_name"`
	SkillCategory     string    `json:"skill_category"`
	ProficiencyLevel  string    `json:"proficiency_level"`
	YearsOfExperience float64   `json:"years_of_experience"`
	LastUsed          *string   `json:"last_used"`
	Notes             *string   `json:"notes"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func NewUserSkillResponse(row repository.UserSkillRow) UserSkillResponse {
	return UserSkillResponse{
		ID:                row.ID,
		SkillID:           row.SkillID,
		SkillName:         row.SkillName,
		SkillCategory:     row.SkillCategory,
		ProficiencyLevel:  row.ProficiencyLevel,
		YearsOfExperience: row.YearsOfExperience,
		LastUsed:          formatDate(row.LastUsed),
		Notes:             row.Notes,
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
	}
}

func NewUserSkillResponses(items []repository.UserSkillRow) []UserSkillResponse {
	res := make([]UserSkillResponse, 0, len(items))
	for _, it := range items {
		res = append(res, NewUserSkillResponse(it))
	}
	return res
}

// formatDate renders date-valued columns as YYYY-MM-DD, keeping null as null.
func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}
