package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/reelid/reelid/pkg/model"
	"github.com/reelid/reelid/pkg/utils/logging"
)

// PredictionResponse is the success body of POST /predict. Candidates arrive
// ranked; their order is significant and preserved as-is.
type PredictionResponse struct {
	Candidates            []*model.Candidate `json:"final_top_3_combined"`
	PredictionTimeSeconds float64            `json:"prediction_time_seconds"`
	ExpandedURL           string             `json:"expanded_url"`
}

// Predictor is the client interface for the remote prediction service
type Predictor interface {
	// Health reports whether the service answers its liveness endpoint.
	// Anything but a 200 is unhealthy.
	Health(ctx context.Context) bool

	// Predict submits one authenticated prediction job. Failures are
	// classified into the model error taxonomy; only model.ErrUpstream
	// wrapped errors are retryable.
	Predict(ctx context.Context, token, url string, platform model.Platform) (*PredictionResponse, error)
}

type predictionClient struct {
	baseURL    string
	httpClient *http.Client
}

const healthTimeout = 10 * time.Second

// NewPredictor creates a client for the prediction service at baseURL.
// The request timeout is generous: a full prediction run downloads and
// analyzes the shared video server-side.
func NewPredictor(baseURL string) Predictor {
	return &predictionClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

func (c *predictionClient) Health(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL, nil)
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logging.From(ctx).Warn("health check failed", "error", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logging.From(ctx).Warn("health check returned non-200", "status", resp.StatusCode)
		return false
	}
	return true
}

func (c *predictionClient) Predict(ctx context.Context, token, url string, platform model.Platform) (*PredictionResponse, error) {
	payload, err := json.Marshal(map[string]string{
		"url":  url,
		"type": string(platform),
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal prediction payload")
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/predict", bytes.NewReader(payload))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create prediction request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		return nil, goerr.Wrap(model.ErrUpstream, "prediction request failed",
			goerr.V("error", err.Error()), goerr.V("elapsed", elapsed))
	}
	defer resp.Body.Close()

	logging.From(ctx).Info("prediction request finished",
		"status", resp.StatusCode,
		"platform", platform,
		"elapsed", elapsed)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, classifyStatus(resp)
	}

	var result PredictionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, goerr.Wrap(model.ErrPredictionFailed, "failed to decode prediction response",
			goerr.V("error", err.Error()))
	}
	return &result, nil
}

// classifyStatus maps a non-2xx response to the error taxonomy. The error
// body may carry a message field; absence falls back to a generic one.
func classifyStatus(resp *http.Response) error {
	message := "prediction failed"
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Message != "" {
		message = body.Message
	}

	var kind error
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		kind = model.ErrUnauthorized
	case http.StatusTooManyRequests:
		kind = model.ErrRateLimited
	case http.StatusBadRequest:
		kind = model.ErrInvalidInput
	case http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		kind = model.ErrUpstream
	default:
		kind = model.ErrPredictionFailed
	}

	return goerr.Wrap(kind, message, goerr.V("status", resp.StatusCode))
}
