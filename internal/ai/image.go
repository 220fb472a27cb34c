package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/kadarb/studyflash/internal/logger"
)

const (
	replicateBaseURL = "https://api.replicate.com/v1"

	// Stable Diffusion XL, the model the study companion generates
	// illustrations with.
	sdxlVersion = "39ed52f2a78e934b3ba6e2a89f5b1c712de7dfea535525255b1aa35c5565e08b"
)

// ErrNoImageToken is returned when image generation is requested without a
// Replicate credential configured.
var ErrNoImageToken = errors.New("no Replicate API token configured")

// ImageClient generates images through the Replicate predictions API.
type ImageClient struct {
	token        string
	baseURL      string
	httpClient   *http.Client
	pollInterval time.Duration
	log          *logger.Logger
}

// NewImageClient creates an image client.
func NewImageClient(token string) *ImageClient {
	return &ImageClient{
		token:        token,
		baseURL:      replicateBaseURL,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		pollInterval: 2 * time.Second,
		log:          logger.Default().WithPrefix("replicate"),
	}
}

type prediction struct {
	ID     string          `json:"id"`
	Status string          `json:"status"`
	Output json.RawMessage `json:"output"`
	Error  any             `json:"error"`
}

// Generate creates an SDXL prediction for the prompt and polls until it
// reaches a terminal status, returning the first output URL.
func (c *ImageClient) Generate(ctx context.Context, prompt string) (string, error) {
	if c.token == "" {
		return "", ErrNoImageToken
	}

	log := logger.FromContext(ctx).WithPrefix("replicate")
	log.Debug("creating prediction: prompt_len=%d", len(prompt))

	body := map[string]any{
		"version": sdxlVersion,
		"input": map[string]any{
			"prompt":              prompt,
			"negative_prompt":     "ugly, blurry, poor quality, distorted, deformed",
			"num_outputs":         1,
			"width":               1024,
			"height":              1024,
			"num_inference_steps": 25,
			"guidance_scale":      7.5,
		},
	}

	pred, err := c.do(ctx, http.MethodPost, c.baseURL+"/predictions", body)
	if err != nil {
		return "", err
	}

	for pred.Status != "succeeded" && pred.Status != "failed" && pred.Status != "canceled" {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(c.pollInterval):
		}
		pred, err = c.do(ctx, http.MethodGet, c.baseURL+"/predictions/"+pred.ID, nil)
		if err != nil {
			return "", err
		}
		log.Debug("prediction %s: status=%s", pred.ID, pred.Status)
	}

	if pred.Status != "succeeded" {
		return "", errors.Errorf("prediction %s ended with status %s (%v)", pred.ID, pred.Status, pred.Error)
	}

	var outputs []string
	if err := json.Unmarshal(pred.Output, &outputs); err != nil || len(outputs) == 0 {
		return "", errors.New("prediction succeeded but returned no output")
	}
	return outputs[0], nil
}

func (c *ImageClient) do(ctx context.Context, method, url string, body any) (*prediction, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "replicate request")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, errors.Errorf("replicate returned %s: %s", resp.Status, string(data))
	}

	var pred prediction
	if err := json.NewDecoder(resp.Body).Decode(&pred); err != nil {
		return nil, fmt.Errorf("decode replicate response: %w", err)
	}
	return &pred, nil
}
