package pdfrender

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/agence-judiciaire/aje-backend/pkg/logger"
)

// documentRenderer is the surface Handler needs; the rod-backed
// Renderer satisfies it, tests use a stub.
type documentRenderer interface {
	Render(ctx context.Context, fileName string) ([]byte, error)
}

// Handler serves POST /convert.
type Handler struct {
	renderer documentRenderer
	logg     *logger.Logger
}

func NewHandler(renderer documentRenderer, logg *logger.Logger) *Handler {
	return &Handler{renderer: renderer, logg: logg}
}

type convertRequest struct {
	FileName string `json:"file_name"`
}

// Convert renders an allow-listed template and streams the PDF back as
// an attachment. Any failure, unknown template included, maps to a 500
// JSON error so the caller shows a single "conversion failed" path.
func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req convertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(ctx, w, "invalid request body", err)
		return
	}
	if req.FileName == "" {
		h.writeError(ctx, w, "file_name is required", nil)
		return
	}

	pdf, err := h.renderer.Render(ctx, req.FileName)
	if err != nil {
		h.writeError(ctx, w, "conversion failed", err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+pdfFileName(req.FileName)+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	if h.logg != nil && err != nil {
		h.logg.Error(ctx, "pdfrender: "+msg, err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// pdfFileName swaps the .html suffix for .pdf.
func pdfFileName(templateName string) string {
	const htmlSuffix = ".html"
	if len(templateName) > len(htmlSuffix) && templateName[len(templateName)-len(htmlSuffix):] == htmlSuffix {
		return templateName[:len(templateName)-len(htmlSuffix)] + ".pdf"
	}
	return templateName + ".pdf"
}
