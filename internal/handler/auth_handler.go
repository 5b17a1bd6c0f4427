package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/ibplan-go-api/internal/dto"
	"github.com/noah-isme/ibplan-go-api/internal/service"
	"github.com/noah-isme/ibplan-go-api/internal/utils"
)

// AuthHandler exposes the session store over HTTP: login, logout,
// profile, subject selection and progress updates.
type AuthHandler struct {
	sessions service.SessionService
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(sessions service.SessionService, validate *validator.Validate, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		sessions: sessions,
		validate: validate,
		logger:   logger.With().Str("component", "auth_handler").Logger(),
	}
}

// RegisterPublic wires the unauthenticated routes.
func (h *AuthHandler) RegisterPublic(router fiber.Router) {
	router.Post("/login", h.login)
}

// RegisterProtected wires the routes requiring a current identity.
func (h *AuthHandler) RegisterProtected(router fiber.Router) {
	router.Post("/logout", h.logout)
	router.Get("/me", h.me)
	router.Put("/subjects", h.updateSubjects)
	router.Put("/progress", h.updateProgress)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "email and password are required")
	}

	result, err := h.sessions.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid email or password")
		}
		h.logger.Error().Err(err).Msg("login failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "login failed")
	}

	return utils.SendSuccess(c, "login successful", result)
}

func (h *AuthHandler) logout(c *fiber.Ctx) error {
	if err := h.sessions.Logout(c.Context()); err != nil {
		h.logger.Error().Err(err).Msg("logout failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "logout failed")
	}
	return utils.SendSuccess(c, "logout successful", nil)
}

func (h *AuthHandler) me(c *fiber.Ctx) error {
	profile, ok := h.sessions.Profile()
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "no active session")
	}
	return utils.SendSuccess(c, "profile retrieved", profile)
}

func (h *AuthHandler) updateSubjects(c *fiber.Ctx) error {
	var req dto.UpdateSubjectsRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.sessions.UpdateSelectedSubjects(c.Context(), req.Subjects); err != nil {
		h.logger.Error().Err(err).Msg("failed to update subjects")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to update subjects")
	}

	profile, ok := h.sessions.Profile()
	if !ok {
		return utils.SendSuccess(c, "subjects updated", nil)
	}
	return utils.SendSuccess(c, "subjects updated", profile)
}

func (h *AuthHandler) updateProgress(c *fiber.Ctx) error {
	var req dto.UpdateProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "progress must be between 0 and 100")
	}

	if err := h.sessions.UpdateProgress(c.Context(), req.Progress); err != nil {
		h.logger.Error().Err(err).Msg("failed to update progress")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to update progress")
	}
	return utils.SendSuccess(c, "progress updated", nil)
}
