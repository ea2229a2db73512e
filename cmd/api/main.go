// @title           RAG Chat API
// @version         1.0
// @description     Ingests PDF and web documents into a vector store and
// @description     answers queries with retrieval-augmented generation.

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8001
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/cone-one/ragchat/internal/config"
	"github.com/cone-one/ragchat/internal/data/store"
	"github.com/cone-one/ragchat/internal/handlers"
	"github.com/cone-one/ragchat/internal/rag"
	"github.com/cone-one/ragchat/internal/rag/embedding/googleEmbedding"
	"github.com/cone-one/ragchat/internal/rag/llm/openaichat"
	"github.com/cone-one/ragchat/internal/rag/vectorDB/qdrantDB"
	"github.com/cone-one/ragchat/internal/server"
	"github.com/cone-one/ragchat/pkg/logger_i"
)

var listenAddr string

func main() {

	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Configuration error", "error", err)
		os.Exit(1)
	}

	flag.StringVar(&listenAddr, "listen-addr", cfg.ListenAddr, "server listen address")
	flag.Parse()

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	// Everything external is constructed eagerly, before any request is
	// accepted. A store that cannot be reached is a fatal startup error.
	vectorDB, err := qdrantDB.NewClient(serviceContext, cfg)
	if err != nil {
		logger.Error("Vector store initialization failed. Shutting down.", "error", err)
		os.Exit(1)
	}

	indexStatus, err := vectorDB.EnsureIndex(serviceContext)
	if err != nil {
		logger.Error("Index provisioning failed. Shutting down.", "error", err)
		os.Exit(1)
	}
	logger.Info(indexStatus)

	embedder, err := googleEmbedding.NewEmbedder(serviceContext, cfg.EmbeddingModel, cfg.EmbeddingAPIKey)
	if err != nil {
		logger.Error("Embedding client initialization failed. Shutting down.", "error", err)
		os.Exit(1)
	}

	llmProvider := openaichat.NewProvider(cfg.ChatModel, cfg.ChatBaseURL, cfg.ChatAPIKey)

	var messageStore store.MessageStore = store.InitMessageStore()
	if cfg.RedisAddr != "" {
		if redisHistory := store.GetRedisMessageStore(serviceContext, cfg.RedisAddr); redisHistory != nil {
			messageStore = redisHistory
		} else {
			logger.Warn("Redis is offline, chat history falls back to in-memory store")
		}
	}

	ragService := rag.NewService(vectorDB, llmProvider, embedder, messageStore)
	handler := handlers.NewHandler(ragService)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr, handler)

	<-stopExecution
	logger.Info("Server stopped")
}
