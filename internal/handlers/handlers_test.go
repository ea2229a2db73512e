package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cone-one/ragchat/internal/api"
)

type mockRagService struct {
	answer    func(ctx context.Context, userQuery string, chatID string) (string, error)
	ingestPDF func(ctx context.Context, fileName string, content []byte) (string, error)
	ingestURL func(ctx context.Context, url string) (string, error)
}

func (m *mockRagService) Answer(ctx context.Context, userQuery string, chatID string) (string, error) {
	return m.answer(ctx, userQuery, chatID)
}

func (m *mockRagService) IngestPDF(ctx context.Context, fileName string, content []byte) (string, error) {
	return m.ingestPDF(ctx, fileName, content)
}

func (m *mockRagService) IngestURL(ctx context.Context, url string) (string, error) {
	return m.ingestURL(ctx, url)
}

func decodeDetail(t *testing.T, body *bytes.Buffer) string {
	t.Helper()
	var resp api.ErrorResponse
	if err := json.Unmarshal(body.Bytes(), &resp); err != nil {
		t.Fatalf("error body is not valid json: %v", err)
	}
	return resp.Detail
}

func TestInvokeHandlerSuccess(t *testing.T) {
	handler := NewHandler(&mockRagService{
		answer: func(ctx context.Context, userQuery string, chatID string) (string, error) {
			if userQuery != "what is up?" || chatID != "chat-7" {
				t.Errorf("service called with query=%q chatID=%q", userQuery, chatID)
			}
			return "not much", nil
		},
	})

	body := `{"user_query": "what is up?", "chat_id": "chat-7"}`
	req := httptest.NewRequest(http.MethodPost, "/invoke", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.InvokeHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp api.QueryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.Response != "not much" {
		t.Errorf("response = %q", resp.Response)
	}
}

func TestInvokeHandlerBadRequests(t *testing.T) {
	handler := NewHandler(&mockRagService{
		answer: func(ctx context.Context, userQuery string, chatID string) (string, error) {
			t.Error("service must not be called for a bad request")
			return "", nil
		},
	})

	tests := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"malformed json", `{"user_query": `},
		{"missing query", `{"chat_id": "x"}`},
		{"blank query", `{"user_query": "   "}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/invoke", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			handler.InvokeHandler(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if detail := decodeDetail(t, rec.Body); detail != "user_query is required" {
				t.Errorf("detail = %q", detail)
			}
		})
	}
}

func TestInvokeHandlerServiceError(t *testing.T) {
	handler := NewHandler(&mockRagService{
		answer: func(ctx context.Context, userQuery string, chatID string) (string, error) {
			return "", errors.New("llm generation failed: upstream down")
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/invoke", strings.NewReader(`{"user_query": "q"}`))
	rec := httptest.NewRecorder()
	handler.InvokeHandler(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if detail := decodeDetail(t, rec.Body); !strings.Contains(detail, "upstream down") {
		t.Errorf("detail = %q", detail)
	}
}

func multipartUpload(t *testing.T, fieldName, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(fieldName, fileName)
	if err != nil {
		t.Fatalf("creating form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("writing form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("closing writer: %v", err)
	}
	return &buf, writer.FormDataContentType()
}

func TestIngestPDFHandlerSuccess(t *testing.T) {
	handler := NewHandler(&mockRagService{
		ingestPDF: func(ctx context.Context, fileName string, content []byte) (string, error) {
			if fileName != "report.pdf" {
				t.Errorf("fileName = %q", fileName)
			}
			if string(content) != "pdf bytes" {
				t.Errorf("content = %q", content)
			}
			return "Successfully ingested report.pdf into vector db", nil
		},
	})

	body, contentType := multipartUpload(t, "file", "report.pdf", []byte("pdf bytes"))
	req := httptest.NewRequest(http.MethodPost, "/ingest/pdf", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.IngestPDFHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}
	var resp api.IngestResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if !strings.Contains(resp.Message, "report.pdf") {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestIngestPDFHandlerMissingFile(t *testing.T) {
	handler := NewHandler(&mockRagService{
		ingestPDF: func(ctx context.Context, fileName string, content []byte) (string, error) {
			t.Error("service must not be called without a file")
			return "", nil
		},
	})

	body, contentType := multipartUpload(t, "wrong_field", "report.pdf", []byte("pdf bytes"))
	req := httptest.NewRequest(http.MethodPost, "/ingest/pdf", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.IngestPDFHandler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if detail := decodeDetail(t, rec.Body); detail != "could not retrieve file" {
		t.Errorf("detail = %q", detail)
	}
}

func TestIngestPDFHandlerServiceError(t *testing.T) {
	handler := NewHandler(&mockRagService{
		ingestPDF: func(ctx context.Context, fileName string, content []byte) (string, error) {
			return "", errors.New("document ingestion failed: no extractable text")
		},
	})

	body, contentType := multipartUpload(t, "file", "empty.pdf", nil)
	req := httptest.NewRequest(http.MethodPost, "/ingest/pdf", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.IngestPDFHandler(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if detail := decodeDetail(t, rec.Body); !strings.HasPrefix(detail, "Error ingesting document: ") {
		t.Errorf("detail = %q", detail)
	}
}

func TestIngestURLHandlerSuccess(t *testing.T) {
	handler := NewHandler(&mockRagService{
		ingestURL: func(ctx context.Context, url string) (string, error) {
			if url != "https://example.com/doc" {
				t.Errorf("url = %q", url)
			}
			return "Successfully ingested content from https://example.com/doc into vector db", nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/ingest/url", strings.NewReader(`{"url": "https://example.com/doc"}`))
	rec := httptest.NewRecorder()
	handler.IngestURLHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp api.IngestResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if !strings.Contains(resp.Message, "example.com") {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestIngestURLHandlerMissingURL(t *testing.T) {
	handler := NewHandler(&mockRagService{
		ingestURL: func(ctx context.Context, url string) (string, error) {
			t.Error("service must not be called without a url")
			return "", nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/ingest/url", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	handler.IngestURLHandler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if detail := decodeDetail(t, rec.Body); detail != "url is required" {
		t.Errorf("detail = %q", detail)
	}
}

func TestIngestURLHandlerServiceError(t *testing.T) {
	handler := NewHandler(&mockRagService{
		ingestURL: func(ctx context.Context, url string) (string, error) {
			return "", errors.New("document ingestion failed: unexpected status 500")
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/ingest/url", strings.NewReader(`{"url": "https://example.com"}`))
	rec := httptest.NewRecorder()
	handler.IngestURLHandler(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if detail := decodeDetail(t, rec.Body); !strings.HasPrefix(detail, "Error ingesting document from URL: ") {
		t.Errorf("detail = %q", detail)
	}
}

func TestHealthHandler(t *testing.T) {
	handler := NewHandler(&mockRagService{})
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	handler.HealthHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
