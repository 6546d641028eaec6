package extraction

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/emendhq/emend/internal/config"
)

// Converter converts a raw document into plain markdown content.
type Converter interface {
	Convert(ctx context.Context, filename string, data []byte) (string, error)
}

type convertResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Data    struct {
		Content string `json:"content"`
	} `json:"data"`
}

type client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient creates a Converter backed by the external extraction service.
func NewClient(cfg *config.ExtractorConfig, logger *slog.Logger) Converter {
	return &client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.TimeoutDuration()},
		logger:  logger.With("system", "extraction"),
	}
}

// Convert uploads the document to the extraction service and returns the
// extracted markdown content. Any failure (network, non-success status, or
// a response reporting failure) is wrapped in ErrConvertFailed; the caller
// surfaces it without retrying.
func (c *client) Convert(ctx context.Context, filename string, data []byte) (string, error) {
	body, contentType, err := buildForm(filename, data)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrConvertFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/extract", body)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrConvertFailed, err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrConvertFailed, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %w", ErrConvertFailed, err)
	}

	var parsed convertResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("%w: malformed response: %w", ErrConvertFailed, err)
	}

	if resp.StatusCode != http.StatusOK || !parsed.Success {
		message := parsed.Error
		if message == "" {
			message = resp.Status
		}
		return "", fmt.Errorf("%w: %s", ErrConvertFailed, message)
	}

	if parsed.Data.Content == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptyContent, filename)
	}

	c.logger.Info("document converted", "filename", filename, "content_bytes", len(parsed.Data.Content))
	return parsed.Data.Content, nil
}

func buildForm(filename string, data []byte) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)

	part, err := form.CreateFormFile("file", filename)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", err
	}
	if err := form.WriteField("output_format", "markdown"); err != nil {
		return nil, "", err
	}
	if err := form.Close(); err != nil {
		return nil, "", err
	}

	return body, form.FormDataContentType(), nil
}
