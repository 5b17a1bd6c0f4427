package dto

import "github.com/noah-isme/ibplan-go-api/internal/models"

// CreateFolderRequest names a new folder. The service trims surrounding
// whitespace and rejects blank names.
type CreateFolderRequest struct {
	Name string `json:"name" validate:"required"`
}

// FolderListResponse returns the ordered folder names.
type FolderListResponse struct {
	Folders []string `json:"folders"`
}

// UploadPaperContext carries the browsing context an upload commits
// under. All three fields are required at commit time.
type UploadPaperContext struct {
	Subject     string `json:"subject" validate:"required"`
	Session     string `json:"session" validate:"required"`
	Year        int    `json:"year" validate:"required"`
	DisplayName string `json:"display_name"`
}

// PaperListResponse returns uploaded papers, optionally filtered.
type PaperListResponse struct {
	Papers []models.UploadedPaper `json:"papers"`
}
