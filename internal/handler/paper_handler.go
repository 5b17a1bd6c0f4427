package handler

import (
	"errors"
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/ibplan-go-api/internal/dto"
	"github.com/noah-isme/ibplan-go-api/internal/service"
	"github.com/noah-isme/ibplan-go-api/internal/utils"
)

// PaperHandler exposes the document store: folder listing and creation,
// uploaded paper listing, upload, delete, and the generated mock
// browsing content. Mutations are admin-only, enforced by middleware on
// the routes registered through RegisterAdmin.
type PaperHandler struct {
	documents service.DocumentService
	validate  *validator.Validate
	logger    zerolog.Logger
}

// NewPaperHandler constructs the handler.
func NewPaperHandler(documents service.DocumentService, validate *validator.Validate, logger zerolog.Logger) *PaperHandler {
	return &PaperHandler{
		documents: documents,
		validate:  validate,
		logger:    logger.With().Str("component", "paper_handler").Logger(),
	}
}

// Register wires the read-only routes.
func (h *PaperHandler) Register(router fiber.Router) {
	router.Get("/folders", h.listFolders)
	router.Get("", h.listPapers)
	router.Get("/mock", h.mockPapers)
}

// RegisterAdmin wires the mutating routes; the caller stacks the admin
// role check in front.
func (h *PaperHandler) RegisterAdmin(router fiber.Router) {
	router.Post("/folders", h.createFolder)
	router.Post("/upload", h.uploadPaper)
	router.Delete("/:id", h.deletePaper)
}

func (h *PaperHandler) listFolders(c *fiber.Ctx) error {
	folders, err := h.documents.ListFolders(c.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list folders")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list folders")
	}
	return utils.SendSuccess(c, "folders retrieved", dto.FolderListResponse{Folders: folders})
}

func (h *PaperHandler) createFolder(c *fiber.Ctx) error {
	var req dto.CreateFolderRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.documents.CreateFolder(c.Context(), req.Name); err != nil {
		if errors.Is(err, service.ErrBlankFolderName) {
			return utils.SendError(c, fiber.StatusBadRequest, "folder name must not be blank")
		}
		h.logger.Error().Err(err).Msg("failed to create folder")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create folder")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "folder created", nil)
}

func (h *PaperHandler) listPapers(c *fiber.Ctx) error {
	subject := c.Query("subject")
	session := c.Query("session")
	year, err := parseQueryInt(c, "year")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid year")
	}

	if subject == "" && session == "" && year == 0 {
		all, err := h.documents.ListPapers(c.Context())
		if err != nil {
			h.logger.Error().Err(err).Msg("failed to list papers")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to list papers")
		}
		return utils.SendSuccess(c, "papers retrieved", dto.PaperListResponse{Papers: all})
	}

	if c.Query("exact") == "true" {
		matched, err := h.documents.FilterPapersExact(c.Context(), subject, year, session)
		if err != nil {
			h.logger.Error().Err(err).Msg("failed to filter papers")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to filter papers")
		}
		return utils.SendSuccess(c, "papers retrieved", dto.PaperListResponse{Papers: matched})
	}

	matched, err := h.documents.FilterPapers(c.Context(), subject, year, session)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to filter papers")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to filter papers")
	}
	return utils.SendSuccess(c, "papers retrieved", dto.PaperListResponse{Papers: matched})
}

func (h *PaperHandler) uploadPaper(c *fiber.Ctx) error {
	year, err := parseFormInt(c, "year")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid year")
	}
	uploadCtx := dto.UploadPaperContext{
		Subject:     c.FormValue("subject"),
		Session:     c.FormValue("session"),
		Year:        year,
		DisplayName: c.FormValue("display_name"),
	}
	if err := h.validate.Struct(uploadCtx); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "subject, session and year are required")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "file is required")
	}
	handle, err := fileHeader.Open()
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to open upload")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to read file")
	}
	defer handle.Close()
	fileBytes, err := io.ReadAll(handle)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to read upload")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to read file")
	}

	paper, err := h.documents.UploadPaper(c.Context(), uploadCtx.Subject, uploadCtx.Session, uploadCtx.Year, uploadCtx.DisplayName, fileBytes)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingUploadContext):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrEmptyUpload):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			h.logger.Error().Err(err).Msg("upload failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "upload failed")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "paper uploaded", paper)
}

func (h *PaperHandler) deletePaper(c *fiber.Ctx) error {
	if err := h.documents.DeletePaper(c.Context(), c.Params("id")); err != nil {
		h.logger.Error().Err(err).Msg("failed to delete paper")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete paper")
	}
	return utils.SendSuccess(c, "paper deleted", nil)
}

func (h *PaperHandler) mockPapers(c *fiber.Ctx) error {
	subject := c.Query("subject")
	session := c.Query("session")
	year, err := parseQueryInt(c, "year")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid year")
	}
	if subject == "" || session == "" || year == 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "subject, session and year are required")
	}

	papers := h.documents.MockPapers(subject, year, session)
	return utils.SendSuccess(c, "papers retrieved", dto.PaperListResponse{Papers: papers})
}
