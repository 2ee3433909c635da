package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/mustang75/ukrposhta-international-shipping/internal/platform/logging"
	"github.com/mustang75/ukrposhta-international-shipping/internal/platform/metrics"
	"github.com/mustang75/ukrposhta-international-shipping/internal/platform/resilience"
)

var tracer = otel.Tracer("shipping-portal/upstream")

const requestTimeout = 30 * time.Second

// baseClient provides instrumented HTTP access to one Ukrposhta API surface
type baseClient struct {
	httpClient *http.Client
	baseURL    string
	bearer     string
	logger     *logging.Logger
	metrics    *metrics.Metrics
	breaker    *resilience.CircuitBreaker
	name       string
}

func newBaseClient(baseURL, bearer, name string, logger *logging.Logger, m *metrics.Metrics, breaker *resilience.CircuitBreaker) baseClient {
	return baseClient{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    baseURL,
		bearer:     bearer,
		logger:     logger,
		metrics:    m,
		breaker:    breaker,
		name:       name,
	}
}

// do performs an instrumented request and returns the raw response body.
// Non-2xx statuses become *APIError, everything network-shaped becomes
// *TransportError.
func (c *baseClient) do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	start := time.Now()
	operation := method + " " + path

	ctx, span := tracer.Start(ctx, c.name+"."+method,
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("http.url", c.baseURL+path),
			attribute.String("upstream", c.name),
		),
	)
	defer span.End()

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			c.record(ctx, operation, start, false)
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
	if err != nil {
		c.record(ctx, operation, start, false)
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if c.bearer != "" {
		req.Header.Set("Authorization", "Bearer "+c.bearer)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	result, err := c.breaker.Execute(ctx, func() (interface{}, error) {
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, &TransportError{Op: operation, Err: err}
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, &TransportError{Op: operation, Err: err}
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
		}

		return respBody, nil
	})
	if err != nil {
		span.RecordError(err)
		c.record(ctx, operation, start, false)

		if _, ok := AsAPIError(err); ok {
			return nil, err
		}
		if _, ok := AsTransportError(err); ok {
			return nil, err
		}
		// Breaker rejections count as transport failures
		return nil, &TransportError{Op: operation, Err: err}
	}

	c.record(ctx, operation, start, true)
	return result.([]byte), nil
}

// doJSON performs a request and decodes the JSON response into result
func (c *baseClient) doJSON(ctx context.Context, method, path string, query url.Values, body, result any) error {
	respBody, err := c.do(ctx, method, path, query, body)
	if err != nil {
		return err
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode %s response: %w", c.name, err)
		}
	}
	return nil
}

func (c *baseClient) record(ctx context.Context, operation string, start time.Time, success bool) {
	duration := time.Since(start)
	if c.metrics != nil {
		status := "success"
		if !success {
			status = "error"
		}
		c.metrics.RecordUpstreamRequest(c.name, operation, status, duration)
	}
	if c.logger != nil {
		c.logger.UpstreamCall(ctx, c.name, operation, duration, success)
	}
}
