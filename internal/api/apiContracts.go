package api

// QueryRequest is the body of POST /invoke. ChatID is optional; when present
// the answer is generated with that conversation's recent history and the
// exchange is appended to it afterwards.
type QueryRequest struct {
	UserQuery string `json:"user_query" example:"What color is the sky?"`
	ChatID    string `json:"chat_id,omitempty"`
}

type QueryResponse struct {
	Response string `json:"response"`
}

// IngestURLRequest is the body of POST /ingest/url.
type IngestURLRequest struct {
	URL string `json:"url" example:"https://example.com/doc"`
}

type IngestResponse struct {
	Message string `json:"message"`
}

// ErrorResponse mirrors the failure contract of every endpoint: the HTTP
// status carries the class, Detail carries the cause text.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
