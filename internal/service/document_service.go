package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/ibplan-go-api/internal/catalog"
	"github.com/noah-isme/ibplan-go-api/internal/models"
	"github.com/noah-isme/ibplan-go-api/internal/observability"
	"github.com/noah-isme/ibplan-go-api/internal/store"
)

var (
	// ErrBlankFolderName indicates an empty or whitespace-only folder name.
	ErrBlankFolderName = errors.New("folder name must not be blank")
	// ErrMissingUploadContext indicates the subject, session or year was absent at commit time.
	ErrMissingUploadContext = errors.New("subject, session and year are required")
	// ErrEmptyUpload indicates a zero-byte payload.
	ErrEmptyUpload = errors.New("file payload is empty")
)

// DocumentService owns the folder list and the uploaded paper list.
// Both collections are persisted whole on every mutation: a synchronous
// overwrite of their key, not an append-only log.
type DocumentService interface {
	ListFolders(ctx context.Context) ([]string, error)
	CreateFolder(ctx context.Context, name string) error
	ListPapers(ctx context.Context) ([]models.UploadedPaper, error)
	FilterPapers(ctx context.Context, subject string, year int, session string) ([]models.UploadedPaper, error)
	FilterPapersExact(ctx context.Context, subject string, year int, session string) ([]models.UploadedPaper, error)
	UploadPaper(ctx context.Context, subject, session string, year int, displayName string, fileBytes []byte) (models.UploadedPaper, error)
	DeletePaper(ctx context.Context, id string) error
	MockPapers(subject string, year int, session string) []models.UploadedPaper
}

type documentService struct {
	kv     *store.KV
	policy *bluemonday.Policy
	logger zerolog.Logger
	tracer trace.Tracer
	newID  func() string
}

// NewDocumentService builds the document store over the shared KV
// namespace. Admin-entered names pass through a strict sanitizer before
// they are stored; they end up rendered in the UI verbatim.
func NewDocumentService(kv *store.KV, logger zerolog.Logger) DocumentService {
	return &documentService{
		kv:     kv,
		policy: bluemonday.StrictPolicy(),
		logger: logger.With().Str("component", "document_service").Logger(),
		tracer: otel.Tracer("github.com/noah-isme/ibplan-go-api/internal/service/document"),
		newID:  uuid.NewString,
	}
}

// stripMarkup removes markup from an admin-entered name while keeping
// the plain text verbatim. The sanitizer entity-escapes its output for
// HTML contexts, so characters like & come back as &amp;; names are
// stored and compared as plain text, so the escaping is undone.
func (s *documentService) stripMarkup(name string) string {
	return html.UnescapeString(s.policy.Sanitize(name))
}

func (s *documentService) ListFolders(ctx context.Context) ([]string, error) {
	folders := []string{}
	if _, err := s.kv.GetJSON(ctx, store.KeyFolders, &folders); err != nil {
		return nil, err
	}
	return folders, nil
}

// CreateFolder appends the trimmed name. Names are not deduplicated
// against existing entries; duplicate folders are accepted demo-grade
// behavior.
func (s *documentService) CreateFolder(ctx context.Context, name string) error {
	trimmed := strings.TrimSpace(s.stripMarkup(name))
	if trimmed == "" {
		return ErrBlankFolderName
	}

	folders, err := s.ListFolders(ctx)
	if err != nil {
		return err
	}
	folders = append(folders, trimmed)
	if err := s.kv.SetJSON(ctx, store.KeyFolders, folders); err != nil {
		return err
	}
	s.logger.Info().Str("folder", trimmed).Int("total", len(folders)).Msg("folder created")
	return nil
}

func (s *documentService) ListPapers(ctx context.Context) ([]models.UploadedPaper, error) {
	papers := []models.UploadedPaper{}
	if _, err := s.kv.GetJSON(ctx, store.KeyPapers, &papers); err != nil {
		return nil, err
	}
	return papers, nil
}

// FilterPapers selects papers by substring containment of the given
// context values within the composite display name. An empty subject or
// session and a zero year act as wildcards rather than literal
// substrings. False positives are possible when one context value is a
// substring of another label; this matches the observable behavior of
// the original browsing tree. FilterPapersExact is the structured
// alternative.
func (s *documentService) FilterPapers(ctx context.Context, subject string, year int, session string) ([]models.UploadedPaper, error) {
	papers, err := s.ListPapers(ctx)
	if err != nil {
		return nil, err
	}
	yearLabel := ""
	if year != 0 {
		yearLabel = strconv.Itoa(year)
	}
	matched := []models.UploadedPaper{}
	for _, paper := range papers {
		if strings.Contains(paper.Name, subject) && strings.Contains(paper.Name, yearLabel) && strings.Contains(paper.Name, session) {
			matched = append(matched, paper)
		}
	}
	return matched, nil
}

// FilterPapersExact matches on the stored (subject, year, session)
// fields instead of the display name.
func (s *documentService) FilterPapersExact(ctx context.Context, subject string, year int, session string) ([]models.UploadedPaper, error) {
	papers, err := s.ListPapers(ctx)
	if err != nil {
		return nil, err
	}
	matched := []models.UploadedPaper{}
	for _, paper := range papers {
		if paper.Subject == subject && paper.Year == year && paper.Session == session {
			matched = append(matched, paper)
		}
	}
	return matched, nil
}

// UploadPaper encodes the payload as a self-contained data URI and
// appends it to the paper list. The context requirement is enforced
// here, at commit time, not only at the dialog that gathers it.
func (s *documentService) UploadPaper(ctx context.Context, subject, session string, year int, displayName string, fileBytes []byte) (models.UploadedPaper, error) {
	ctx, span := s.tracer.Start(ctx, "document.upload")
	defer span.End()

	start := time.Now()
	defer func() {
		observability.UploadLatency().Observe(time.Since(start).Seconds())
	}()

	subject = strings.TrimSpace(subject)
	session = strings.TrimSpace(session)
	if subject == "" || session == "" || year == 0 {
		span.RecordError(ErrMissingUploadContext)
		span.SetStatus(codes.Error, "missing context")
		return models.UploadedPaper{}, ErrMissingUploadContext
	}
	if len(fileBytes) == 0 {
		span.RecordError(ErrEmptyUpload)
		span.SetStatus(codes.Error, "empty payload")
		return models.UploadedPaper{}, ErrEmptyUpload
	}

	label := strings.TrimSpace(s.stripMarkup(displayName))
	if label == "" {
		label = "Paper"
	}

	mime := mimetype.Detect(fileBytes)
	span.SetAttributes(
		attribute.String("upload.subject", subject),
		attribute.Int("upload.year", year),
		attribute.String("upload.detected_mime", mime.String()),
		attribute.Int("upload.size_bytes", len(fileBytes)),
	)

	paper := models.UploadedPaper{
		ID:          s.newID(),
		Name:        fmt.Sprintf("%s %s – %s %d", subject, label, session, year),
		Paper:       label,
		Subject:     subject,
		Session:     session,
		Year:        year,
		DownloadURL: fmt.Sprintf("data:%s;base64,%s", mime.String(), base64.StdEncoding.EncodeToString(fileBytes)),
	}

	papers, err := s.ListPapers(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load failed")
		return models.UploadedPaper{}, err
	}
	papers = append(papers, paper)
	if err := s.kv.SetJSON(ctx, store.KeyPapers, papers); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "persistence failed")
		return models.UploadedPaper{}, err
	}

	observability.PaperUploads().WithLabelValues(mime.String()).Inc()
	span.SetStatus(codes.Ok, "stored")
	s.logger.Info().Str("paper", paper.Name).Int("total", len(papers)).Msg("paper uploaded")

	return paper, nil
}

// DeletePaper removes the matching entry and rewrites the list. A
// missing id leaves the list untouched.
func (s *documentService) DeletePaper(ctx context.Context, id string) error {
	papers, err := s.ListPapers(ctx)
	if err != nil {
		return err
	}
	remaining := make([]models.UploadedPaper, 0, len(papers))
	for _, paper := range papers {
		if paper.ID != id {
			remaining = append(remaining, paper)
		}
	}
	if len(remaining) == len(papers) {
		return nil
	}
	if err := s.kv.SetJSON(ctx, store.KeyPapers, remaining); err != nil {
		return err
	}
	s.logger.Info().Str("id", id).Int("total", len(remaining)).Msg("paper deleted")
	return nil
}

// MockPapers generates the pre-upload browsing content for a (subject,
// year, session) triple from the catalog's paper structure.
func (s *documentService) MockPapers(subject string, year int, session string) []models.UploadedPaper {
	labels := catalog.AvailablePapers(subject, year)
	papers := make([]models.UploadedPaper, 0, len(labels))
	for _, label := range labels {
		slug := strings.ToLower(strings.ReplaceAll(fmt.Sprintf("%s-%d-%s-%s", subject, year, session, label), " ", "-"))
		papers = append(papers, models.UploadedPaper{
			ID:      slug,
			Name:    fmt.Sprintf("%s %s – %s %d", subject, label, session, year),
			Paper:   label,
			Subject: subject,
			Session: session,
			Year:    year,
			DownloadURL: fmt.Sprintf("/mock-papers/%s-%d-%s-%s.pdf",
				strings.ToLower(strings.ReplaceAll(subject, " ", "-")),
				year,
				strings.ToLower(session),
				strings.ToLower(strings.ReplaceAll(label, " ", ""))),
		})
	}
	return papers
}
