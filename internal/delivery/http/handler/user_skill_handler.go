package handler

import (
	"errors"

	"skill-matrix/internal/delivery/http/dto"
	"skill-matrix/internal/delivery/http/middleware"
	"skill-matrix/internal/pkg/response"
	"skill-matrix/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type UserSkillHandler struct {
	uc usecase.UserSkillUsecase
}

type addUserSkillRequest struct {
	SkillID           uuid.UUID `json:"skill_id"`
	ProficiencyLevel  string    `json:"proficiency_level"`
	YearsOfExperience *float64  `json:"years_of_experience"`
	LastUsed          string    `json:"last_used"`
	Notes             *string   `json:"notes"`
}

type updateUserSkillRequest struct {
	ProficiencyLevel  *string  `json:"proficiency_level"`
	YearsOfExperience *float64 `json:"years_of_experience"`
	LastUsed          string   `json:"last_used"`
	Notes             *string  `json:"notes"`
}

func NewUserSkillHandler(uc usecase.UserSkillUsecase) *UserSkillHandler {
	return &UserSkillHandler{uc: uc}
}

func (h *UserSkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/user/:userId")
	grp.Get("/", h.List)
	grp.Post("/", h.Add)
	grp.Put("/:skillId", h.Update)
	grp.Delete("/:skillId", h.Delete)
}

func (h *UserSkillHandler) List(c fiber.Ctx) error {
	userID, err := uuidParam(c, "userId")
	if err != nil {
		return err
	}

	items, err := h.uc.ListUserSkills(c.Context(), userID)
	if err != nil {
		return mapUserSkillUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserSkillResponses(items))
}

func (h *UserSkillHandler) Add(c fiber.Ctx) error {
	userID, err := uuidParam(c, "userId")
	if err != nil {
		return err
	}

	var req addUserSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	lastUsed, err := parseDate(req.LastUsed)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid last_used date", nil, err)
	}

	created, err := h.uc.AddUserSkill(c.Context(), userID, usecase.AddUserSkillInput{
		SkillID:           req.SkillID,
		ProficiencyLevel:  req.ProficiencyLevel,
		YearsOfExperience: req.YearsOfExperience,
		LastUsed:          lastUsed,
		Notes:             req.Notes,
	})
	if err != nil {
		return mapUserSkillUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Skill added successfully", dto.NewUserSkillResponse(created))
}

func (h *UserSkillHandler) Update(c fiber.Ctx) error {
	userID, err := uuidParam(c, "userId")
	if err != nil {
		return err
	}
	skillID, err := uuidParam(c, "skillId")
	if err != nil {
		return err
	}

	var req updateUserSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	lastUsed, err := parseDate(req.LastUsed)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid last_used date", nil, err)
	}

	updated, err := h.uc.UpdateUserSkill(c.Context(), userID, skillID, usecase.UpdateUserSkillInput{
		ProficiencyLevel:  req.ProficiencyLevel,
		YearsOfExperience: req.YearsOfExperience,
		LastUsed:          lastUsed,
		Notes:             req.Notes,
	})
	if err != nil {
		return mapUserSkillUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Skill updated successfully", dto.NewUserSkillResponse(updated))
}

func (h *UserSkillHandler) Delete(c fiber.Ctx) error {
	userID, err := uuidParam(c, "userId")
	if err != nil {
		return err
	}
	skillID, err := uuidParam(c, "skillId")
	if err != nil {
		return err
	}

	if err := h.uc.RemoveUserSkill(c.Context(), userID, skillID); err != nil {
		return mapUserSkillUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Skill removed successfully", nil)
}

func mapUserSkillUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidProficiency):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid proficiency level", nil, err)
	case errors.Is(err, usecase.ErrSkillAlreadyAssigned):
		return middleware.NewAppError(fiber.StatusConflict, "User already has this skill", nil, err)
	case errors.Is(err, usecase.ErrSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not found", nil, err)
	case errors.Is(err, usecase.ErrUserSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User skill not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
