package mediastore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// UploadResult is the media host's answer to a successful upload.
type UploadResult struct {
	URL string `json:"url"`
}

// Uploader sends a local file to the media store and returns its durable
// retrieval URL. Uploads are single-attempt; the store is not idempotent, so
// repeated calls with the same file produce distinct remote objects.
type Uploader interface {
	Upload(ctx context.Context, localPath string) (*UploadResult, error)
}

// Config holds media store connection details.
type Config struct {
	// URL is the upload endpoint of the media host.
	URL string
}

// Client uploads files to a remote media host over HTTP multipart.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a new media store client.
func NewClient(cfg Config) *Client {
	return &Client{
		endpoint: cfg.URL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Upload posts the file at localPath to the media host and decodes the
// returned URL. A response without a usable URL counts as a failure.
func (c *Client) Upload(ctx context.Context, localPath string) (*UploadResult, error) {
	file, err := os.Open(localPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", localPath, err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filepath.Base(localPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", localPath, err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize upload body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("media store returned status %d", resp.StatusCode)
	}

	var result UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode upload response: %w", err)
	}
	if result.URL == "" {
		return nil, fmt.Errorf("media store returned no URL")
	}
	return &result, nil
}
