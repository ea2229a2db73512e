package ui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/cone-one/ragchat/internal/api"
	"github.com/cone-one/ragchat/internal/config"
	"github.com/cone-one/ragchat/internal/customHttpClient"
)

// Client talks to the backend API on behalf of the terminal UI.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    customHttpClient.New(config.WriteTimeout),
	}
}

func (c *Client) Invoke(query string, chatID string) (string, error) {
	var out api.QueryResponse
	err := c.postJSON("/invoke", api.QueryRequest{UserQuery: query, ChatID: chatID}, &out)
	if err != nil {
		return "", err
	}
	return out.Response, nil
}

func (c *Client) IngestURL(url string) (string, error) {
	var out api.IngestResponse
	err := c.postJSON("/ingest/url", api.IngestURLRequest{URL: url}, &out)
	if err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *Client) IngestPDF(filename string, content []byte) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(content); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	resp, err := c.http.Post(c.baseURL+"/ingest/pdf", writer.FormDataContentType(), &body)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var out api.IngestResponse
	if err := decodeResponse(resp, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *Client) postJSON(path string, payload interface{}, out interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	resp, err := c.http.Post(c.baseURL+path, "application/json", bytes.NewReader(data))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return decodeResponse(resp, out)
}

func decodeResponse(resp *http.Response, out interface{}) error {
	if resp.StatusCode != http.StatusOK {
		var errBody api.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errBody); err == nil && errBody.Detail != "" {
			return fmt.Errorf("server error (%d): %s", resp.StatusCode, errBody.Detail)
		}
		return fmt.Errorf("server error: status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
