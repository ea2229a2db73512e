package qdrantDB

import (
	"context"
	"fmt"
	"time"

	"github.com/cone-one/ragchat/internal/config"
	"github.com/cone-one/ragchat/internal/domain/commonModels"
	"github.com/cone-one/ragchat/pkg/logger_i"
	"github.com/qdrant/go-client/qdrant"
)

var dimension = uint64(config.EmbeddingOutputDimensionality)

// collectionAPI is the slice of the qdrant client the index provisioner
// needs. Narrowed out so provisioning can be tested without a live server.
type collectionAPI interface {
	CollectionExists(ctx context.Context, collectionName string) (bool, error)
	CreateCollection(ctx context.Context, request *qdrant.CreateCollection) error
	GetCollectionInfo(ctx context.Context, collectionName string) (*qdrant.CollectionInfo, error)
}

type ClientHolder struct {
	qObj           *qdrant.Client
	collectionName string
	pollInterval   time.Duration
	maxAttempts    int
	logger         *logger_i.Logger
}

// NewClient connects to Qdrant over gRPC. A connection failure here is a
// fatal startup condition for the caller: the service must not serve queries
// against a store it never reached.
func NewClient(ctx context.Context, cfg *config.Config) (*ClientHolder, error) {
	logger := logger_i.NewLogger("Qdrant")

	host, port := cfg.QdrantHostPort()
	client, err := qdrant.NewClient(&qdrant.Config{
		Host:     host,
		Port:     port,
		UseTLS:   config.QdrantUseTLS,
		PoolSize: uint(config.QdrantPoolSize),
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant client init failed: %w", err)
	}

	holder := &ClientHolder{
		qObj:           client,
		collectionName: cfg.CollectionName,
		pollInterval:   config.IndexPollInterval,
		maxAttempts:    config.IndexPollMaxAttempts,
		logger:         logger,
	}
	go holder.closeOnDone(ctx)
	return holder, nil
}

func (db *ClientHolder) closeOnDone(ctx context.Context) {
	<-ctx.Done()
	db.logger.Info("Shutting down Qdrant")
	if err := db.qObj.Close(); err != nil {
		db.logger.Error("could not close Qdrant: ", "error:", err)
	}
}

// EnsureIndex checks for the named collection and creates it when absent,
// then waits until it is queryable. Calling it against an existing collection
// is a no-op.
func (db *ClientHolder) EnsureIndex(ctx context.Context) (string, error) {
	return db.ensureIndex(ctx, db.qObj)
}

func (db *ClientHolder) ensureIndex(ctx context.Context, api collectionAPI) (string, error) {
	exists, err := api.CollectionExists(ctx, db.collectionName)
	if err != nil {
		return "", fmt.Errorf("listing collections failed: %w", err)
	}
	if exists {
		return fmt.Sprintf("Search index '%s' already exists.", db.collectionName), nil
	}

	err = api.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: db.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     dimension,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return "", fmt.Errorf("creating collection failed: %w", err)
	}
	db.logger.Info("New search index is building", "collection", db.collectionName)

	// Bounded poll. The reference behavior loops forever, a stuck index
	// should surface as an explicit provisioning error instead.
	for attempt := 0; attempt < db.maxAttempts; attempt++ {
		info, err := api.GetCollectionInfo(ctx, db.collectionName)
		if err == nil && info.GetStatus() == qdrant.CollectionStatus_Green {
			return fmt.Sprintf("Search index '%s' is ready for querying.", db.collectionName), nil
		}
		if err != nil {
			db.logger.Warn("Index status check failed", "error", err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(db.pollInterval):
		}
	}
	return "", fmt.Errorf("index provisioning timed out after %d attempts", db.maxAttempts)
}

func (db *ClientHolder) Search(ctx context.Context, queryVector []float32) ([]string, error) {
	loggr := db.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))
	result, err := db.qObj.Query(ctx, &qdrant.QueryPoints{
		CollectionName: db.collectionName,
		Query:          qdrant.NewQuery(queryVector...),
		Limit:          qdrant.PtrOf(uint64(config.SearchTopK)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		loggr.Error("Error querying Qdrant: ", "error:", err)
		return nil, err
	}

	var matches []string
	for _, hit := range result {
		matches = append(matches, hit.Payload["content"].GetStringValue())
	}
	loggr.Debug("Vector search done", "matches", len(matches))
	return matches, nil
}

func (db *ClientHolder) UpsertBatch(ctx context.Context, chunks []commonModels.DocChunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("mismatch: got %d chunks but %d vectors", len(chunks), len(vectors))
	}

	qdrantPoints := make([]*qdrant.PointStruct, len(chunks))
	for i, chunk := range chunks {
		qdrantPoints[i] = &qdrant.PointStruct{
			Id:      qdrant.NewID(chunk.ChunkId),
			Vectors: qdrant.NewVectors(vectors[i]...),
			Payload: qdrant.NewValueMap(map[string]any{
				"content":       chunk.Chunk,
				"page_num":      chunk.PageNum,
				"source_doc_id": chunk.Doc.Id,
				"doc_name":      chunk.Doc.Name,
				"source":        chunk.Doc.Source,
				"chunk_order":   chunk.ChunkOrder,
				"chunk_id":      chunk.ChunkId,
				"ingested_at":   chunk.Doc.IngestedAt.Unix(),
			}),
		}
	}

	_, err := db.qObj.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: db.collectionName,
		Points:         qdrantPoints,
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil {
		return fmt.Errorf("qdrant upsert failed: %w", err)
	}
	return nil
}
