package handler

import (
	"errors"

	"skill-matrix/internal/delivery/http/dto"
	"skill-matrix/internal/delivery/http/middleware"
	"skill-matrix/internal/pkg/response"
	"skill-matrix/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type CertificationHandler struct {
	uc usecase.CertificationUsecase
}

type createCertificationRequest struct {
	Name                string  `json:"name"`
	IssuingOrganization string  `json:"issuing_organization"`
	Description         *string `json:"description"`
}

func NewCertificationHandler(uc usecase.CertificationUsecase) *CertificationHandler {
	return &CertificationHandler{uc: uc}
}

func (h *CertificationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Post("/", h.Create)
}

func (h *CertificationHandler) List(c fiber.Ctx) error {
	items, err := h.uc.ListCertifications(c.Context())
	if err != nil {
		return mapCertificationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCertificationResponses(items))
}

func (h *CertificationHandler) Create(c fiber.Ctx) error {
	var req createCertificationRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.CreateCertification(c.Context(), usecase.CreateCertificationInput{
		Name:                req.Name,
		IssuingOrganization: req.IssuingOrganization,
		Description:         req.Description,
	})
	if err != nil {
		return mapCertificationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Certification created successfully", dto.NewCertificationResponse(created))
}

func mapCertificationUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrCertNameTaken):
		return middleware.NewAppError(fiber.StatusConflict, "Certification already exists", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
