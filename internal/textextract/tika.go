// Package textextract pulls plain text out of uploaded documents through an
// Apache Tika server. The extracted text is handed to the chat context and
// flashcard extraction unchanged.
package textextract

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/kadarb/studyflash/internal/logger"
)

// SupportedMimeTypes lists the document formats the upload endpoint accepts.
var SupportedMimeTypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"text/plain",
	"text/markdown",
}

// Client talks to a Tika server.
type Client struct {
	serverURL  string
	httpClient *http.Client
	log        *logger.Logger
}

// NewClient creates a text extraction client for the given Tika server URL.
func NewClient(serverURL string) *Client {
	return &Client{
		serverURL:  strings.TrimRight(serverURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        logger.Default().WithPrefix("textextract"),
	}
}

// Result holds the extracted text and page count.
type Result struct {
	Text  string `json:"text"`
	Pages int    `json:"pages"`
}

// IsSupported reports whether contentType can be extracted.
func IsSupported(contentType string) bool {
	// Strip parameters like "; charset=utf-8".
	if idx := strings.Index(contentType, ";"); idx >= 0 {
		contentType = contentType[:idx]
	}
	contentType = strings.TrimSpace(contentType)
	for _, supported := range SupportedMimeTypes {
		if strings.EqualFold(contentType, supported) {
			return true
		}
	}
	return false
}

// Extract sends the document to Tika and returns its plain text and page
// count. Plain text input short-circuits without a server round trip.
func (c *Client) Extract(ctx context.Context, data []byte, contentType string) (*Result, error) {
	if !IsSupported(contentType) {
		return nil, errors.Errorf("unsupported content type: %s", contentType)
	}
	if strings.HasPrefix(contentType, "text/") {
		return &Result{Text: strings.TrimSpace(string(data)), Pages: 1}, nil
	}

	log := logger.FromContext(ctx).WithPrefix("textextract")
	start := time.Now()

	text, err := c.extractText(ctx, data, contentType)
	if err != nil {
		return nil, err
	}

	result := &Result{Text: strings.TrimSpace(text)}
	if pages, err := c.pageCount(ctx, data, contentType); err != nil {
		// Metadata failures are not fatal; the text is already out.
		log.Warn("page count unavailable: %v", err)
	} else {
		result.Pages = pages
	}

	log.Debug("extracted %d chars from %s document in %s", len(result.Text), contentType, time.Since(start))
	return result, nil
}

func (c *Client) extractText(ctx context.Context, data []byte, contentType string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.serverURL+"/tika", bytes.NewReader(data))
	if err != nil {
		return "", errors.Wrap(err, "create tika request")
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "text/plain")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "tika request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", errors.Errorf("tika returned status %d: %s", resp.StatusCode, string(body))
	}

	text, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "read tika response")
	}
	return string(text), nil
}

func (c *Client) pageCount(ctx context.Context, data []byte, contentType string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.serverURL+"/meta", bytes.NewReader(data))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, errors.Errorf("metadata request returned status %d", resp.StatusCode)
	}

	var metadata map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&metadata); err != nil {
		return 0, err
	}
	if raw, ok := metadata["xmpTPg:NPages"]; ok {
		switch v := raw.(type) {
		case string:
			if pages, err := strconv.Atoi(v); err == nil {
				return pages, nil
			}
		case float64:
			return int(v), nil
		}
	}
	return 0, nil
}
