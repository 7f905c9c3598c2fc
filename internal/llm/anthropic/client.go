package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MichaelStober/EventViewer/internal/event"
	"github.com/MichaelStober/EventViewer/internal/llm"
)

// AnalyzePoster implements llm.VisionExtractor over the messages API. The
// image travels base64-encoded alongside the instruction; the reply is parsed
// and validated by the llm package.
func (c *Client) AnalyzePoster(ctx context.Context, req llm.ExtractRequest) (*event.Record, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.logger.Info("llm.extract.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"temp", c.cfg.Temperature,
		"path", req.ImagePath,
		"qr_codes", len(req.QRCodes),
		"urls", len(req.URLs),
	)

	data, mediaType, err := llm.PrepareImage(req.ImagePath)
	if err != nil {
		c.logger.Error("llm.extract.image_error", "req_id", rid, "error", err)
		return nil, err
	}

	body := map[string]any{
		"model":       c.cfg.Model,
		"max_tokens":  c.cfg.MaxTokens,
		"temperature": c.cfg.Temperature,
		"messages": []map[string]any{
			{
				"role": "user",
				"content": []map[string]any{
					{
						"type": "image",
						"source": map[string]any{
							"type":       "base64",
							"media_type": mediaType,
							"data":       data,
						},
					},
					{
						"type": "text",
						"text": buildAnalysisPrompt(req.QRCodes, req.URLs),
					},
				},
			},
		},
	}

	reply, err := c.post(ctx, body)
	if err != nil {
		c.logger.Error("llm.extract.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	rec, err := llm.ParseRecord(reply, req.QRCodes, req.URLs)
	if err != nil {
		c.logger.Error("llm.extract.parse_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	c.logger.Info("llm.extract.ok",
		"req_id", rid,
		"event", rec.Name,
		"category", rec.Category,
		"confidence", rec.Metadata.Confidence,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return rec, nil
}

// ValidateKey issues a minimal no-image request to confirm the credential
// before any real work starts.
func (c *Client) ValidateKey(ctx context.Context) error {
	body := map[string]any{
		"model":      c.cfg.Model,
		"max_tokens": 10,
		"messages": []map[string]any{
			{"role": "user", "content": "Test"},
		},
	}
	if _, err := c.post(ctx, body); err != nil {
		c.logger.Error("llm.validate_key.failed", "error", err)
		return fmt.Errorf("api key validation: %w", err)
	}
	c.logger.Info("llm.validate_key.ok", "model", c.cfg.Model)
	return nil
}

// post sends one messages request and returns the concatenated text blocks of
// the reply.
func (c *Client) post(ctx context.Context, body map[string]any) (string, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/messages"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("x-api-key", c.cfg.APIKey)
	req.Header.Set("anthropic-version", apiVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("anthropic http error: %w", err)
	}
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			c.logger.Warn("llm.http.response_body_close_error", "error", err)
		}
	}(resp.Body)

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("anthropic status %d: %s", resp.StatusCode, string(raw))
	}

	var reply struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(raw, &reply); err != nil {
		return "", fmt.Errorf("decode anthropic response: %w", err)
	}
	if len(reply.Content) == 0 {
		return "", fmt.Errorf("no content in anthropic response")
	}

	var sb strings.Builder
	for _, block := range reply.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String(), nil
}
