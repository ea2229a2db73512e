package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/cone-one/ragchat/internal/api"
	"github.com/cone-one/ragchat/internal/config"
	"github.com/cone-one/ragchat/internal/rag"
	"github.com/cone-one/ragchat/pkg/logger_i"
)

type Handler struct {
	ragService rag.Service
	logger     *logger_i.Logger
}

// NewHandler binds the HTTP layer to an already-constructed RAG service.
func NewHandler(ragService rag.Service) *Handler {
	return &Handler{
		ragService: ragService,
		logger:     logger_i.NewLogger("Handlers"),
	}
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// InvokeHandler godoc
// @Summary      Answer a query with retrieval-augmented generation
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        request  body      api.QueryRequest  true  "User query and optional chat id"
// @Success      200      {object}  api.QueryResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /invoke [post]
func (h *Handler) InvokeHandler(w http.ResponseWriter, r *http.Request) {
	log := h.logger.With("traceId", r.Context().Value(config.TRACE_ID_KEY))

	var requestData api.QueryRequest
	defer closeBody(r.Body, log)
	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil || strings.TrimSpace(requestData.UserQuery) == "" {
		log.Warn("Bad query request", "error", err)
		writeDetail(w, http.StatusBadRequest, "user_query is required")
		return
	}

	response, err := h.ragService.Answer(r.Context(), requestData.UserQuery, requestData.ChatID)
	if err != nil {
		log.Error("Query failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJsonResponse(w, http.StatusOK, api.QueryResponse{Response: response}, log)
}

// IngestPDFHandler godoc
// @Summary      Ingest an uploaded PDF document
// @Tags         Ingestion
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "The PDF file to ingest"
// @Success      200   {object}  api.IngestResponse
// @Failure      400   {object}  api.ErrorResponse
// @Failure      500   {object}  api.ErrorResponse
// @Router       /ingest/pdf [post]
func (h *Handler) IngestPDFHandler(w http.ResponseWriter, r *http.Request) {
	log := h.logger.With("traceId", r.Context().Value(config.TRACE_ID_KEY))

	if err := r.ParseMultipartForm(config.MaxUploadSize); err != nil {
		writeDetail(w, http.StatusBadRequest, "file too large or bad request")
		return
	}

	fileReader, fileMetadata, err := r.FormFile("file")
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "could not retrieve file")
		return
	}
	defer fileReader.Close()

	content, err := io.ReadAll(fileReader)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "error reading upload: "+err.Error())
		return
	}

	message, err := h.ragService.IngestPDF(r.Context(), fileMetadata.Filename, content)
	if err != nil {
		log.Error("PDF ingestion failed", "file", fileMetadata.Filename, "error", err)
		writeDetail(w, http.StatusInternalServerError, "Error ingesting document: "+err.Error())
		return
	}

	writeJsonResponse(w, http.StatusOK, api.IngestResponse{Message: message}, log)
}

// IngestURLHandler godoc
// @Summary      Ingest a document from a web URL
// @Tags         Ingestion
// @Accept       json
// @Produce      json
// @Param        request  body      api.IngestURLRequest  true  "Document URL"
// @Success      200      {object}  api.IngestResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /ingest/url [post]
func (h *Handler) IngestURLHandler(w http.ResponseWriter, r *http.Request) {
	log := h.logger.With("traceId", r.Context().Value(config.TRACE_ID_KEY))

	var requestData api.IngestURLRequest
	defer closeBody(r.Body, log)
	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil || strings.TrimSpace(requestData.URL) == "" {
		log.Warn("Bad ingest request", "error", err)
		writeDetail(w, http.StatusBadRequest, "url is required")
		return
	}

	message, err := h.ragService.IngestURL(r.Context(), requestData.URL)
	if err != nil {
		log.Error("URL ingestion failed", "url", requestData.URL, "error", err)
		writeDetail(w, http.StatusInternalServerError, "Error ingesting document from URL: "+err.Error())
		return
	}

	writeJsonResponse(w, http.StatusOK, api.IngestResponse{Message: message}, log)
}
