package ingest

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cone-one/ragchat/internal/adapter/utils"
	"github.com/cone-one/ragchat/internal/config"
	"github.com/cone-one/ragchat/internal/domain/commonModels"
	"github.com/cone-one/ragchat/internal/rag/embedding"
	"github.com/cone-one/ragchat/internal/rag/vectorDB"
)

//splitter

// Separators ordered from "best" to "worst" for semantic meaning. The empty
// string means hard character cuts.
var chunkSeparators = []string{"\n\n", "\n", ". ", " ", ""}

// splitTextIntoChunks splits on decreasing separator granularity until the
// pieces fit the size bound, carrying overlap chars between adjacent chunks.
func splitTextIntoChunks(text string, limit int, overlap int) []string {
	return splitWithSeparators(text, limit, overlap, chunkSeparators)
}

func splitWithSeparators(text string, limit int, overlap int, separators []string) []string {
	if len(text) <= limit {
		return []string{text}
	}

	splitChar := ""
	var finer []string
	for i, s := range separators {
		if s == "" || strings.Contains(text, s) {
			splitChar = s
			finer = separators[i+1:]
			break
		}
	}

	if splitChar == "" {
		return hardCut(text, limit, overlap)
	}

	parts := strings.Split(text, splitChar)
	var chunks []string
	var currentChunk strings.Builder

	// carried tracks how much of the builder is overlap from the previous
	// chunk, a flush only emits when there is new content past it.
	carried := 0
	flush := func(carryOverlap bool) {
		if currentChunk.Len() <= carried {
			currentChunk.Reset()
			carried = 0
			return
		}
		chunks = append(chunks, currentChunk.String())

		// Start the next chunk with the tail of the previous one
		overlapContent := ""
		if carryOverlap && currentChunk.Len() > overlap {
			overlapContent = currentChunk.String()[currentChunk.Len()-overlap:]
		}
		currentChunk.Reset()
		currentChunk.WriteString(overlapContent)
		carried = currentChunk.Len()
	}

	for _, part := range parts {
		if len(part) > limit {
			// the part alone breaks the bound, re-split it at finer granularity
			flush(false)
			chunks = append(chunks, splitWithSeparators(part, limit, overlap, finer)...)
			continue
		}

		if currentChunk.Len()+len(part)+len(splitChar) > limit {
			flush(true)
		}
		if currentChunk.Len() > 0 {
			currentChunk.WriteString(splitChar)
		}
		currentChunk.WriteString(part)
	}
	flush(false)

	return chunks
}

// hardCut windows through text that has no separators left at all.
func hardCut(text string, limit int, overlap int) []string {
	step := limit - overlap
	if step <= 0 {
		step = limit
	}

	var chunks []string
	for start := 0; start < len(text); start += step {
		end := start + limit
		if end >= len(text) {
			chunks = append(chunks, text[start:])
			break
		}
		chunks = append(chunks, text[start:end])
	}
	return chunks
}

func getDocType(docPath string) commonModels.SourceType {
	ext := strings.ToLower(filepath.Ext(docPath))
	switch ext {
	case ".pdf":
		return commonModels.PDF
	case ".docx", ".txt", ".rtf":
		return commonModels.DOCX
	default:
		return commonModels.ERR
	}
}

// PrepareChunks splits every page and assigns a fresh uuid per chunk. Ids are
// random, not content-derived: re-ingesting the same document yields a
// disjoint set of ids.
func PrepareChunks(pages []rawPage, doc commonModels.Document) []commonModels.DocChunk {
	var allChunks []commonModels.DocChunk

	for _, page := range pages {
		stringChunks := splitTextIntoChunks(page.Content, config.ChunkSize, config.ChunkOverlap)

		for i, text := range stringChunks {
			if strings.TrimSpace(text) == "" {
				continue
			}
			allChunks = append(allChunks, commonModels.DocChunk{
				Doc:        doc,
				ChunkId:    utils.GetNewUUID(),
				Chunk:      text,
				PageNum:    page.Number,
				ChunkOrder: i,
			})
		}
	}

	return allChunks
}

// BatchIngest embeds and upserts chunks in fixed-size batches. No rollback:
// a failure mid-way leaves earlier batches stored.
func BatchIngest(ctx context.Context, chunks []commonModels.DocChunk, store vectorDB.DataProcessor, embedder embedding.Embedder) error {
	for i := 0; i < len(chunks); i += config.IngestBatchSize {
		end := i + config.IngestBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		currentBatch := chunks[i:end]

		texts := make([]string, 0, len(currentBatch))
		for _, c := range currentBatch {
			texts = append(texts, c.Chunk)
		}

		vectors, err := embedder.EmbedDocuments(ctx, texts)
		if err != nil {
			return fmt.Errorf("embedding batch failed: %w", err)
		}

		if err := store.UpsertBatch(ctx, currentBatch, vectors); err != nil {
			return fmt.Errorf("upserting batch failed: %w", err)
		}
	}

	return nil
}
