// Package gemini wraps the Google Gemini API behind the one operation the
// analyzers need: send a prompt (optionally with search grounding or an
// image attachment), get raw text plus citation metadata back. The text is
// deliberately returned unparsed; internal/normalize owns interpretation.
package gemini

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// Request is one backend invocation.
type Request struct {
	// Prompt is the full natural-language task description.
	Prompt string
	// GroundSearch enables the Google Search grounding tool so the model
	// can cite live sources.
	GroundSearch bool
	// Image, when set, is attached as an inline binary part ahead of the
	// prompt text.
	Image *Image
}

// Image is an inline binary attachment.
type Image struct {
	MIMEType string
	Data     []byte
}

// Citation is one raw grounding entry as reported by the backend. Either
// field may be empty; filtering happens in normalization.
type Citation struct {
	URI   string
	Title string
}

// Response is the raw backend output.
type Response struct {
	Text      string
	Citations []Citation
}

// Config holds client settings.
type Config struct {
	APIKey     string
	Model      string
	Timeout    time.Duration
	MaxRetries int
}

// DefaultConfig returns sensible defaults for the given API key.
func DefaultConfig(apiKey string) Config {
	return Config{
		APIKey:     apiKey,
		Model:      "gemini-2.5-flash",
		Timeout:    2 * time.Minute,
		MaxRetries: 2,
	}
}

// Client invokes the Gemini API.
type Client struct {
	client     *genai.Client
	model      string
	timeout    time.Duration
	maxRetries int
	log        *zap.Logger
}

// NewClient creates a Gemini client. The API key is required.
func NewClient(ctx context.Context, cfg Config, log *zap.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}
	if log == nil {
		log = zap.NewNop()
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &Client{
		client:     client,
		model:      cfg.Model,
		timeout:    cfg.Timeout,
		maxRetries: cfg.MaxRetries,
		log:        log,
	}, nil
}

// Invoke sends the request and returns the raw text response with any
// grounding citations. Transient failures are retried with exponential
// backoff; whatever error survives the retries is the single
// backend-unavailable condition the caller sees.
func (c *Client) Invoke(ctx context.Context, req Request) (*Response, error) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	contents := buildContents(req)
	cfg := &genai.GenerateContentConfig{}
	if req.GroundSearch {
		cfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("request cancelled: %w", ctx.Err())
			case <-time.After(time.Duration(1<<uint(attempt-1)) * time.Second):
			}
		}

		resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, cfg)
		if err != nil {
			lastErr = err
			c.log.Debug("gemini request failed",
				zap.Int("attempt", attempt),
				zap.Error(err))
			continue
		}

		text := resp.Text()
		citations := extractCitations(resp)
		c.log.Debug("gemini request completed",
			zap.Duration("elapsed", time.Since(start)),
			zap.Int("response_len", len(text)),
			zap.Int("citations", len(citations)))
		return &Response{Text: text, Citations: citations}, nil
	}

	c.log.Warn("gemini retries exhausted",
		zap.Duration("elapsed", time.Since(start)),
		zap.Error(lastErr))
	return nil, fmt.Errorf("gemini request failed after %d attempts: %w", c.maxRetries+1, lastErr)
}

func buildContents(req Request) []*genai.Content {
	if req.Image == nil {
		return genai.Text(req.Prompt)
	}
	parts := []*genai.Part{
		genai.NewPartFromBytes(req.Image.Data, req.Image.MIMEType),
		genai.NewPartFromText(req.Prompt),
	}
	return []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
}

// extractCitations pulls raw grounding entries from the first candidate.
// Entries are passed through untouched, empty fields included.
func extractCitations(resp *genai.GenerateContentResponse) []Citation {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil
	}
	gm := resp.Candidates[0].GroundingMetadata
	if gm == nil {
		return nil
	}
	var citations []Citation
	for _, chunk := range gm.GroundingChunks {
		if chunk == nil || chunk.Web == nil {
			continue
		}
		citations = append(citations, Citation{URI: chunk.Web.URI, Title: chunk.Web.Title})
	}
	return citations
}
