package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"ambilight-agent/internal/model"
)

const maxPayloadBytes = 1 << 20

// HTTP polls the provider endpoint once per Fetch. The client keeps its
// connection alive between cycles.
type HTTP struct {
	url  string
	http *http.Client
}

func NewHTTP(url string, timeout time.Duration) *HTTP {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &HTTP{
		url:  url,
		http: &http.Client{Timeout: timeout},
	}
}

func (h *HTTP) Fetch(ctx context.Context) (model.SampleFrame, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, nil)
	if err != nil {
		return model.SampleFrame{}, fmt.Errorf("%w: build request: %v", ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.http.Do(req)
	if err != nil {
		return model.SampleFrame{}, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxPayloadBytes))
		return model.SampleFrame{}, fmt.Errorf("%w: status=%d", ErrTransport, resp.StatusCode)
	}
	return Decode(io.LimitReader(resp.Body, maxPayloadBytes))
}
