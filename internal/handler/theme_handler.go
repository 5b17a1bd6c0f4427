package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/ibplan-go-api/internal/dto"
	"github.com/noah-isme/ibplan-go-api/internal/service"
	"github.com/noah-isme/ibplan-go-api/internal/utils"
)

// ThemeHandler exposes the light/dark flag.
type ThemeHandler struct {
	themes service.ThemeService
	logger zerolog.Logger
}

// NewThemeHandler constructs the handler.
func NewThemeHandler(themes service.ThemeService, logger zerolog.Logger) *ThemeHandler {
	return &ThemeHandler{
		themes: themes,
		logger: logger.With().Str("component", "theme_handler").Logger(),
	}
}

// Register wires the theme routes.
func (h *ThemeHandler) Register(router fiber.Router) {
	router.Get("", h.current)
	router.Post("/toggle", h.toggle)
}

func (h *ThemeHandler) current(c *fiber.Ctx) error {
	theme, err := h.themes.Current(c.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to read theme")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to read theme")
	}
	return utils.SendSuccess(c, "theme retrieved", dto.ThemeResponse{Theme: theme})
}

func (h *ThemeHandler) toggle(c *fiber.Ctx) error {
	theme, err := h.themes.Toggle(c.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to toggle theme")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to toggle theme")
	}
	return utils.SendSuccess(c, "theme toggled", dto.ThemeResponse{Theme: theme})
}
