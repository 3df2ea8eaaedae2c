package api

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/ludo-technologies/cobscan/domain"
)

// maxUploadBytes bounds the in-memory portion of multipart uploads.
const maxUploadBytes = 10 << 20

// Handler serves the analysis endpoints.
type Handler struct {
	service   domain.AnalysisService
	extractor domain.TextExtractor
	logger    *slog.Logger
}

// NewHandler creates an API handler with the given collaborators.
func NewHandler(service domain.AnalysisService, extractor domain.TextExtractor, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		service:   service,
		extractor: extractor,
		logger:    logger,
	}
}

// analyzeRequest is the body of POST /analyze.
type analyzeRequest struct {
	Code string `json:"code"`
}

// errorResponse mirrors the {"detail": ...} error body the frontend expects.
type errorResponse struct {
	Detail string `json:"detail"`
}

// Root responds to liveness probes.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "COBOL Code Analyzer API is running"})
}

// Analyze handles POST /analyze with inline source text.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request: JSON body with a code field is required")
		return
	}

	h.respondWithAnalysis(w, r, req.Code)
}

// AnalyzeUpload handles POST /upload with a multipart file.
func (h *Handler) AnalyzeUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request: multipart form with a file field is required")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request: file field is required")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Error reading uploaded file: %v", err))
		return
	}

	source, err := h.extractor.Extract(content, header.Filename)
	if err != nil {
		h.logger.Info("upload extraction failed", "filename", header.Filename, "error", err)
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Error extracting text from file: %v", err))
		return
	}

	h.respondWithAnalysis(w, r, source)
}

func (h *Handler) respondWithAnalysis(w http.ResponseWriter, r *http.Request, source string) {
	response, err := h.service.Analyze(r.Context(), source)
	if err != nil {
		if domain.IsClientError(err) {
			writeError(w, http.StatusBadRequest, "Invalid request: Code content is required")
			return
		}
		h.logger.Error("analysis failed", "error", err)
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Error analyzing code: %v", err))
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}
