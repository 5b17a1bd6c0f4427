package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/ibplan-go-api/internal/catalog"
	"github.com/noah-isme/ibplan-go-api/internal/utils"
)

// CatalogHandler serves the read-only subject catalog and the
// past-paper browsing metadata (years, sessions, paper structure).
type CatalogHandler struct {
	logger zerolog.Logger
}

// NewCatalogHandler constructs the handler.
func NewCatalogHandler(logger zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		logger: logger.With().Str("component", "catalog_handler").Logger(),
	}
}

// Register wires the catalog routes.
func (h *CatalogHandler) Register(router fiber.Router) {
	router.Get("/subjects", h.listSubjects)
	router.Get("/subjects/:id", h.getSubject)
	router.Get("/years", h.listYears)
	router.Get("/sessions", h.listSessions)
	router.Get("/paper-structure", h.paperStructure)
}

func (h *CatalogHandler) listSubjects(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "subjects retrieved", catalog.All())
}

func (h *CatalogHandler) getSubject(c *fiber.Ctx) error {
	subject, ok := catalog.FindByID(c.Params("id"))
	if !ok {
		return utils.SendError(c, fiber.StatusNotFound, "subject not found")
	}
	return utils.SendSuccess(c, "subject retrieved", subject)
}

func (h *CatalogHandler) listYears(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "years retrieved", catalog.Years(time.Now()))
}

func (h *CatalogHandler) listSessions(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "sessions retrieved", catalog.Sessions)
}

func (h *CatalogHandler) paperStructure(c *fiber.Ctx) error {
	subject := c.Query("subject")
	if subject == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "subject is required")
	}
	year, err := parseQueryInt(c, "year")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid year")
	}
	if year == 0 {
		year = time.Now().Year()
	}

	papers := catalog.AvailablePapers(subject, year)
	if papers == nil {
		return utils.SendError(c, fiber.StatusNotFound, "unknown subject")
	}
	return utils.SendSuccess(c, "paper structure retrieved", papers)
}
