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

type UserCertificationHandler struct {
	uc usecase.UserCertificationUsecase
}

type addUserCertificationRequest struct {
	CertificationID uuid.UUID `json:"certification_id"`
	DateObtained    string    `json:"date_obtained"`
	ExpiryDate      string    `json:"expiry_date"`
	CredentialID    *string   `json:"credential_id"`
	CredentialURL   *string   `json:"credential_url"`
	Notes           *string   `json:"notes"`
}

type updateUserCertificationRequest struct {
	DateObtained  string  `json:"date_obtained"`
	ExpiryDate    string  `json:"expiry_date"`
	CredentialID  *string `json:"credential_id"`
	CredentialURL *string `json:"credential_url"`
	Notes         *string `json:"notes"`
}

func NewUserCertificationHandler(uc usecase.UserCertificationUsecase) *UserCertificationHandler {
	return &UserCertificationHandler{uc: uc}
}

func (h *UserCertificationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/user/:userId")
	grp.Get("/", h.List)
	grp.Post("/", h.Add)
	grp.Put("/:certId", h.Update)
	grp.Delete("/:certId", h.Delete)
}

func (h *UserCertificationHandler) List(c fiber.Ctx) error {
	userID, err := uuidParam(c, "userId")
	if err != nil {
		return err
	}

	items, err := h.uc.ListUserCertifications(c.Context(), userID)
	if err != nil {
		return mapUserCertificationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserCertificationResponses(items))
}

func (h *UserCertificationHandler) Add(c fiber.Ctx) error {
	userID, err := uuidParam(c, "userId")
	if err != nil {
		return err
	}

	var req addUserCertificationRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	dateObtained, err := parseDate(req.DateObtained)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid date_obtained date", nil, err)
	}
	expiryDate, err := parseDate(req.ExpiryDate)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid expiry_date date", nil, err)
	}

	created, err := h.uc.AddUserCertification(c.Context(), userID, usecase.AddUserCertificationInput{
		CertificationID: req.CertificationID,
		DateObtained:    dateObtained,
		ExpiryDate:      expiryDate,
		CredentialID:    req.CredentialID,
		CredentialURL:   req.CredentialURL,
		Notes:           req.Notes,
	})
	if err != nil {
		return mapUserCertificationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Certification added successfully", dto.NewUserCertificationResponse(created))
}

func (h *UserCertificationHandler) Update(c fiber.Ctx) error {
	userID, err := uuidParam(c, "userId")
	if err != nil {
		return err
	}
	certID, err := uuidParam(c, "certId")
	if err != nil {
		return err
	}

	var req updateUserCertificationRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	dateObtained, err := parseDate(req.DateObtained)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid date_obtained date", nil, err)
	}
	expiryDate, err := parseDate(req.ExpiryDate)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid expiry_date date", nil, err)
	}

	updated, err := h.uc.UpdateUserCertification(c.Context(), userID, certID, usecase.UpdateUserCertificationInput{
		DateObtained:  dateObtained,
		ExpiryDate:    expiryDate,
		CredentialID:  req.CredentialID,
		CredentialURL: req.CredentialURL,
		Notes:         req.Notes,
	})
	if err != nil {
		return mapUserCertificationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Certification updated successfully", dto.NewUserCertificationResponse(updated))
}

func (h *UserCertificationHandler) Delete(c fiber.Ctx) error {
	userID, err := uuidParam(c, "userId")
	if err != nil {
		return err
	}
	certID, err := uuidParam(c, "certId")
	if err != nil {
		return err
	}

	if err := h.uc.RemoveUserCertification(c.Context(), userID, certID); err != nil {
		return mapUserCertificationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Certification removed successfully", nil)
}

func mapUserCertificationUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrCertificationAlreadyAssigned):
		return middleware.NewAppError(fiber.StatusConflict, "User already has this certification", nil, err)
	case errors.Is(err, usecase.ErrCertificationNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Certification not found", nil, err)
	case errors.Is(err, usecase.ErrUserCertificationNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User certification not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
