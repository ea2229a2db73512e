package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "RAGCHAT_"

// Config holds every environment-sourced setting. Fixed tuning values live in
// constants.go, they are not meant to be overridden per deployment.
type Config struct {
	QdrantAddr     string `koanf:"qdrant_addr"`
	CollectionName string `koanf:"collection_name"`

	ChatModel   string `koanf:"chat_model"`
	ChatBaseURL string `koanf:"chat_base_url"`
	ChatAPIKey  string `koanf:"chat_api_key"`

	EmbeddingModel  string `koanf:"embedding_model"`
	EmbeddingAPIKey string `koanf:"embedding_api_key"`

	ListenAddr string `koanf:"listen_addr"`
	BackendURL string `koanf:"backend_url"`

	RedisAddr string `koanf:"redis_addr"`
}

// Load reads configuration from the process environment (RAGCHAT_* variables).
// A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load() //optional, same as the local dev flow

	k := koanf.New(".")
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	cfg := defaultConfig()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadClient reads configuration for client processes that only talk to the
// HTTP API. It skips the backend-only validation, so a missing qdrant address
// is not an error here.
func LoadClient() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	cfg := defaultConfig()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		CollectionName: "rag-documents",
		ChatModel:      "llama3-70b-8192",
		EmbeddingModel: GoogleEmbeddingModel,
		ListenAddr:     ServerListenAddr,
		BackendURL:     "http://127.0.0.1:8001",
	}
}

// validate fails closed: without a vector store address the service must not
// come up and pretend to answer queries.
func (c *Config) validate() error {
	if c.QdrantAddr == "" {
		return errors.New("RAGCHAT_QDRANT_ADDR is not set. Make sure to set it in the environment")
	}
	if c.CollectionName == "" {
		return errors.New("RAGCHAT_COLLECTION_NAME must not be empty")
	}
	return nil
}

// QdrantHostPort splits the configured address into host and port for the
// gRPC client. Defaults the port to 6334 when none is given.
func (c *Config) QdrantHostPort() (string, int) {
	host := c.QdrantAddr
	port := QdrantGrpcPort
	if i := strings.LastIndex(c.QdrantAddr, ":"); i > 0 {
		host = c.QdrantAddr[:i]
		if _, err := fmt.Sscanf(c.QdrantAddr[i+1:], "%d", &port); err != nil {
			port = QdrantGrpcPort
		}
	}
	return host, port
}
