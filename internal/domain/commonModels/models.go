package commonModels

import "time"

type Document struct {
	Id          string     `json:"source_doc_id"`
	Name        string     `json:"doc_name"`
	Source      string     `json:"source"` //filename or URL
	ContentType SourceType `json:"content_type"`
	IngestedAt  time.Time  `json:"ingested_at"`
}

type DocChunk struct {
	Doc        Document
	ChunkId    string `json:"chunk_id"`
	Chunk      string `json:"content"`
	PageNum    int    `json:"page_num"`
	ChunkOrder int    `json:"chunk_order"`
}

type SourceType string

var (
	PDF  SourceType = "PDF"
	DOCX SourceType = "DOCX"
	URL  SourceType = "URL"
	ERR  SourceType = "ERROR"
)
