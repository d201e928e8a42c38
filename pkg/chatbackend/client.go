// Package chatbackend wraps the retrieval/generation backend: one chat
// endpoint and one document upload endpoint.
package chatbackend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// ChatRequest is the wire payload for /chat. SessionId is omitted for
// sessionless (local-only) conversations; the backend may assign one.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionId string `json:"session_id,omitempty"`
}

// SourceInfo points to a page of the uploaded document.
type SourceInfo struct {
	Page   string `json:"page"`
	Source string `json:"source"`
}

type ChatData struct {
	Answer    string       `json:"answer"`
	Sources   []SourceInfo `json:"sources"`
	Query     string       `json:"query"`
	SessionId string       `json:"session_id,omitempty"`
}

type ChatResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Data    *ChatData `json:"data,omitempty"`
	Error   string    `json:"error,omitempty"`
}

// UploadResult mirrors the backend's upload response.
type UploadResult struct {
	Message  string `json:"message"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	Chunks   int    `json:"chunks"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a client for the backend at baseURL. The URL is injected
// here, never read from ambient state.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Send posts one user message. Any transport error, non-2xx status or
// success=false envelope is returned as an error; the caller decides how to
// surface it.
func (c *Client) Send(ctx context.Context, message, sessionId string) (*ChatData, error) {
	payload, err := json.Marshal(ChatRequest{
		Message:   message,
		SessionId: sessionId,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("chat backend returned status %d", resp.StatusCode)
	}

	var chatResp ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, fmt.Errorf("failed to decode chat response: %w", err)
	}

	if !chatResp.Success || chatResp.Data == nil {
		if chatResp.Error != "" {
			return nil, fmt.Errorf("chat backend error: %s", chatResp.Error)
		}
		return nil, fmt.Errorf("chat backend returned no answer")
	}

	return chatResp.Data, nil
}

// Upload forwards a validated document as multipart form data.
func (c *Client) Upload(ctx context.Context, filename, contentType string, content io.Reader) (*UploadResult, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload-pdf", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("upload returned status %d: %s", resp.StatusCode, string(raw))
	}

	var result UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode upload response: %w", err)
	}

	return &result, nil
}
