package config

import (
	"log/slog"
	"time"
)

const (
	IS_PROD        = false
	LOG_LEVEL_PROD = slog.LevelInfo
	TRACE_ID_KEY   = "traceId"

	RATE_LIMIT_PER_SECOND       = 2
	BURST_RATE_LIMIT_PER_SECOND = 5

	//embedding geometry has to match the provisioned index
	EmbeddingOutputDimensionality int32 = 384
	GoogleEmbeddingModel                = "gemini-embedding-001"

	//chunking policy, mirrors the recursive character splitter defaults
	ChunkSize    = 1000
	ChunkOverlap = 200

	//retrieval
	SearchTopK = 4

	//index provisioning
	IndexPollInterval    = 5 * time.Second
	IndexPollMaxAttempts = 60

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 60 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//per request budget for the whole retrieve-and-generate pipeline
	PipelineTimeout = 30 * time.Second

	//server listening port
	ServerListenAddr = ":8001"

	//vectorDB
	QdrantGrpcPort         = 6334
	QdrantUseTLS           = false
	QdrantPoolSize         = 1
	QdrantKeepAliveTimeout = 30 * time.Second

	//ingestion
	IngestBatchSize   = 100
	MaxUploadSize     = 32 << 20 //32mb
	URLFetchTimeout   = 30 * time.Second
	MessageHistoryMax = 10

	//http client pooling
	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second

	//redis
	RedisChatHistoryDB = 1
	RedisHistoryTTL    = 24 * time.Hour
)
