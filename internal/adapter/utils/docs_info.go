// @title           RAG Chat API
// @version         1.0
// @description     Document ingestion and retrieval-augmented chat.

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8001
// @BasePath  /
// @schemes   http https
package utils

//run qdrant
//docker run -p 6333:6333 -p 6334:6334 -v vectorDBData:/qdrant/storage qdrant/qdrant

//run redis (optional, chat history falls back to memory without it)
//docker run -p 6379:6379 -d redis

//swagger init
//swag init -g cmd/api/main.go --parseDependency --parseInternal --dir ./ --output ./cmd/api/docs
