package collector

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/wolfman30/leadform/pkg/logging"
)

var collectorTracer = otel.Tracer("leadform.internal.collector")

// Client posts payloads to the collector endpoint. The collector is a script
// endpoint that only accepts simple requests, so the JSON body is sent as
// text/plain and the response is not interpreted.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *logging.Logger
}

// NewClient builds a collector client. A nil httpClient gets a 10s timeout.
func NewClient(endpoint string, httpClient *http.Client, logger *logging.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Send posts p once. Only transport failures are returned.
func (c *Client) Send(ctx context.Context, p Payload) error {
	if c.endpoint == "" {
		return errors.New("collector: endpoint not configured")
	}

	ctx, span := collectorTracer.Start(ctx, "collector.send")
	defer span.End()
	span.SetAttributes(
		attribute.Bool("leadform.qualified", p.IsQualified),
		attribute.String("leadform.business_model", string(p.BusinessModel)),
	)

	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("collector: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("collector: build request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "collector unreachable")
		return fmt.Errorf("collector: post: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	c.logger.Debug("collector responded", "status", resp.StatusCode)
	return nil
}
