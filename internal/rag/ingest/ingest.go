package ingest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cone-one/ragchat/internal/adapter/utils"
	"github.com/cone-one/ragchat/internal/config"
	"github.com/cone-one/ragchat/internal/customHttpClient"
	"github.com/cone-one/ragchat/internal/domain/commonModels"
	"github.com/cone-one/ragchat/internal/rag/embedding"
	"github.com/cone-one/ragchat/internal/rag/vectorDB"
	"github.com/cone-one/ragchat/pkg/logger_i"
)

type rawPage struct {
	Number  int    `json:"number"`
	Content string `json:"content"`
}

var logger = logger_i.NewLogger("Document Ingestion")

var webClient = customHttpClient.New(config.URLFetchTimeout)

// ProcessFile extracts text from the document at path (PDF per page,
// docx/txt/rtf as a single page), chunks it and writes the chunks to the
// vector store. Returns the number of chunks stored.
func ProcessFile(ctx context.Context, path string, docName string, embedder embedding.Embedder, store vectorDB.DataProcessor) (int, error) {
	docType := getDocType(path)
	if docType == commonModels.ERR {
		return 0, fmt.Errorf("unsupported document type: %s", path)
	}

	pages, err := extractText(path, docType)
	if err != nil {
		return 0, err
	}
	logger.Debug("Extracted document", "name", docName, "pages", len(pages))

	doc := commonModels.Document{
		Id:          utils.GetNewUUID(),
		Name:        docName,
		Source:      docName,
		ContentType: docType,
		IngestedAt:  time.Now(),
	}
	return chunkAndStore(ctx, pages, doc, embedder, store)
}

// ProcessURL fetches the page, strips it to plain text and runs the same
// chunk-and-store sequence. No temporary file involved.
func ProcessURL(ctx context.Context, url string, embedder embedding.Embedder, store vectorDB.DataProcessor) (int, error) {
	return processURL(ctx, webClient, url, embedder, store)
}

func processURL(ctx context.Context, client *http.Client, url string, embedder embedding.Embedder, store vectorDB.DataProcessor) (int, error) {
	text, err := fetchURL(client, url)
	if err != nil {
		return 0, err
	}

	doc := commonModels.Document{
		Id:          utils.GetNewUUID(),
		Name:        url,
		Source:      url,
		ContentType: commonModels.URL,
		IngestedAt:  time.Now(),
	}
	return chunkAndStore(ctx, []rawPage{{Number: 1, Content: text}}, doc, embedder, store)
}

func chunkAndStore(ctx context.Context, pages []rawPage, doc commonModels.Document, embedder embedding.Embedder, store vectorDB.DataProcessor) (int, error) {
	chunks := PrepareChunks(pages, doc)
	if len(chunks) == 0 {
		return 0, fmt.Errorf("no extractable text in %s", doc.Name)
	}
	logger.Debug("Prepared chunks", "doc", doc.Name, "chunks", len(chunks))

	if err := BatchIngest(ctx, chunks, store, embedder); err != nil {
		return 0, err
	}
	return len(chunks), nil
}

func extractText(path string, contentType commonModels.SourceType) ([]rawPage, error) {
	switch contentType {
	case commonModels.PDF:
		return extractPDF(path)
	case commonModels.DOCX:
		return extractDocxTxtRtf(path)
	default:
		return nil, fmt.Errorf("unsupported content type: %s", contentType)
	}
}
