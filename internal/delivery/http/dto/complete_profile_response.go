package dto

import "skill-matrix/internal/repository"

type CompleteProfileResponse struct {
	User           UserResponse                `json:"user"`
	Skills         []UserSkillResponse         `json:"skills"`
	Certifications []UserCertificationResponse `json:"certifications"`
}

func NewCompleteProfileResponse(p repository.CompleteProfile) CompleteProfileResponse {
	return CompleteProfileResponse{
		User:           NewUserResponse(p.User),
		Skills:         NewUserSkillResponses(p.Skills),
		Certifications: NewUserCertificationResponses(p.Certifications),
	}
}
