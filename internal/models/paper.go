package models

// UploadedPaper is an admin-uploaded past-exam paper. The payload is a
// self-contained data URI so no external file storage is involved; the
// whole list is rewritten to the papers key on every mutation.
type UploadedPaper struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Paper       string `json:"paper"`
	Subject     string `json:"subject"`
	Session     string `json:"session"`
	Year        int    `json:"year"`
	DownloadURL string `json:"downloadUrl"`
}
