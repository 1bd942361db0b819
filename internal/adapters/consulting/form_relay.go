package consulting

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"listing-site/internal/contextkeys"
	"listing-site/internal/core/domain"
	"listing-site/internal/core/port"
)

// FormRelaySink пересылает заявку во внешнюю форму так же, как это сделал бы браузер:
// POST application/x-www-form-urlencoded, ответ не разбирается.
type FormRelaySink struct {
	url        string
	httpClient *http.Client
}

func NewFormRelaySink(formURL string, timeout time.Duration) (*FormRelaySink, error) {
	if formURL == "" {
		return nil, fmt.Errorf("consulting form URL cannot be empty")
	}
	if _, err := url.ParseRequestURI(formURL); err != nil {
		return nil, fmt.Errorf("invalid consulting form URL '%s': %w", formURL, err)
	}
	return &FormRelaySink{
		url:        formURL,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

func (s *FormRelaySink) Name() string { return "form_relay" }

func (s *FormRelaySink) Deliver(ctx context.Context, req domain.ConsultingRequest) error {
	sinkLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":  "FormRelaySink",
		"request_id": req.ID.String(),
	})

	form := url.Values{}
	for name, values := range req.Fields {
		for _, v := range values {
			form.Add(name, v)
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create form request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if req.TraceID != "" {
		httpReq.Header.Set("X-Trace-ID", req.TraceID)
	}

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to post consulting form: %w", err)
	}
	defer resp.Body.Close()
	// тело ответа не нужно, но соединение должно вернуться в пул
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))

	sinkLogger.Debug("Consulting form relayed", port.Fields{"status_code": resp.StatusCode})
	return nil
}
