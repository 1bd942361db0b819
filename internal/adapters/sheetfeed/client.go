package sheetfeed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"listing-site/internal/contextkeys"
	"listing-site/internal/core/domain"
	"listing-site/internal/core/port"
)

// Предел размера ответа таблицы
const maxBodyBytes = 32 << 20

// Client забирает каталог из опубликованного Apps Script.
// Apps Script отвечает редиректом на googleusercontent.com, http.Client идет по нему сам.
type Client struct {
	url        string
	httpClient *http.Client
}

func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) doRequest(ctx context.Context, method, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}
	req.Header.Set("Accept", "application/json")

	return c.httpClient.Do(req)
}

// Fetch возвращает тело успешного ответа без разбора.
// Сетевые ошибки и не-2xx оборачивают domain.ErrFeedUnavailable.
func (c *Client) Fetch(ctx context.Context) ([]byte, error) {
	clientLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "SheetFeedClient",
		"method":    "Fetch",
	})
	clientLogger.Debug("Requesting catalog feed", port.Fields{"url": c.url})

	start := time.Now()
	resp, err := c.doRequest(ctx, http.MethodGet, c.url)
	if err != nil {
		clientLogger.Error("Failed to perform request to catalog feed", err, nil)
		return nil, fmt.Errorf("%w: %v", domain.ErrFeedUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		err := fmt.Errorf("%w: HTTP error status %d: %s", domain.ErrFeedUnavailable, resp.StatusCode, string(snippet))
		clientLogger.Error("Catalog feed returned non-success status", err, port.Fields{"status_code": resp.StatusCode})
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		clientLogger.Error("Failed to read catalog feed body", err, nil)
		return nil, fmt.Errorf("%w: read body: %v", domain.ErrFeedUnavailable, err)
	}
	if len(body) > maxBodyBytes {
		err := fmt.Errorf("%w: response exceeds %d bytes", domain.ErrFeedUnavailable, maxBodyBytes)
		clientLogger.Error("Catalog feed response too large", err, nil)
		return nil, err
	}

	clientLogger.Info("Catalog feed received", port.Fields{
		"bytes":       len(body),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return body, nil
}
