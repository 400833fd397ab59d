package rest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/heartmarshall/extrato-backend/internal/domain"
	"github.com/heartmarshall/extrato-backend/internal/service/importer"
)

// importFormField is the multipart field carrying the CSV file.
const importFormField = "file"

// importService defines the minimal interface needed by ImportHandler.
type importService interface {
	Import(ctx context.Context, r io.Reader) (*importer.Result, error)
	Preview(ctx context.Context, r io.Reader) (*importer.Preview, error)
}

// ImportHandler serves the CSV upload endpoint.
type ImportHandler struct {
	svc      importService
	maxBytes int64
	log      *slog.Logger
}

// NewImportHandler creates an ImportHandler accepting uploads of at most maxBytes.
func NewImportHandler(svc importService, maxBytes int64, logger *slog.Logger) *ImportHandler {
	return &ImportHandler{svc: svc, maxBytes: maxBytes, log: logger.With("handler", "import")}
}

type importResponse struct {
	NewPeopleCount     int `json:"newPeopleCount"`
	ImportedEntryCount int `json:"importedEntryCount"`
	OrphanedEntryCount int `json:"orphanedEntryCount"`
}

type previewResponse struct {
	EntryCount     int  `json:"entryCount"`
	ContactCount   int  `json:"contactCount"`
	NewPeopleCount int  `json:"newPeopleCount"`
	DryRun         bool `json:"dryRun"`
}

// Import handles POST /api/admin/importacao-csv and /api/admin/importacao/csv.
// With ?dryRun=true the file is only validated and counted.
func (h *ImportHandler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)

	file, header, err := r.FormFile(importFormField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "file too large")
			return
		}
		writeError(w, http.StatusBadRequest, "missing multipart field \"file\"")
		return
	}
	defer file.Close()
	defer func() {
		if r.MultipartForm != nil {
			r.MultipartForm.RemoveAll() //nolint:errcheck
		}
	}()

	h.log.InfoContext(r.Context(), "ledger upload received",
		slog.String("filename", header.Filename),
		slog.Int64("size", header.Size))

	if dryRun, _ := strconv.ParseBool(r.URL.Query().Get("dryRun")); dryRun {
		p, err := h.svc.Preview(r.Context(), file)
		if err != nil {
			handleError(h.log, w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, previewResponse{
			EntryCount:     p.EntryCount,
			ContactCount:   p.ContactCount,
			NewPeopleCount: p.NewPeopleCount,
			DryRun:         true,
		})
		return
	}

	res, err := h.svc.Import(r.Context(), file)
	if err != nil {
		var storeErr *domain.StoreError
		if errors.As(err, &storeErr) {
			h.log.ErrorContext(r.Context(), "ledger import failed", slog.String("error", err.Error()))
			writeError(w, http.StatusInternalServerError, "import failed")
			return
		}
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, importResponse{
		NewPeopleCount:     res.NewPeopleCount,
		ImportedEntryCount: res.ImportedEntryCount,
		OrphanedEntryCount: res.OrphanedEntryCount,
	})
}
