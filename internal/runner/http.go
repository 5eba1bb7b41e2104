package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/codequest-labs/codequest-backend/internal/config"
)

type httpRunner struct {
	baseURL string
	client  *http.Client
}

// NewHTTPRunner builds a client for the code runner service. The timeout
// bounds the whole round trip; per-case limits belong to the runner itself.
func NewHTTPRunner(baseURL string, timeout time.Duration) Runner {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &httpRunner{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type executeRequest struct {
	Code     string            `json:"code"`
	Language string            `json:"language"`
	Inputs   []json.RawMessage `json:"inputs"`
}

type executeResponse struct {
	Results []ExecResult `json:"results"`
}

func (r *httpRunner) Execute(ctx context.Context, code, language string, inputs []json.RawMessage) ([]ExecResult, error) {
	log := config.WithContext(ctx)

	body, err := json.Marshal(executeRequest{Code: code, Language: language, Inputs: inputs})
	if err != nil {
		return nil, fmt.Errorf("failed to encode runner request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/execute", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		log.WithError(err).Error("code runner unreachable")
		return nil, fmt.Errorf("code runner unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("code runner returned status %d", resp.StatusCode)
	}

	var decoded executeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode runner response: %w", err)
	}
	if len(decoded.Results) != len(inputs) {
		return nil, fmt.Errorf("code runner returned %d results for %d inputs", len(decoded.Results), len(inputs))
	}
	return decoded.Results, nil
}
