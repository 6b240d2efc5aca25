package seed

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/Conceptual-Machines/soul-vamp/internal/logger"
)

const maxEntropyResponseBytes = 64 << 10

// HTTPEntropySource fetches a hex block from a QRNG-style JSON API:
// {"type":"string","length":1,"data":["<hex>"],"success":true}
type HTTPEntropySource struct {
	URL     string
	Timeout time.Duration
	Client  *http.Client
}

// NewHTTPEntropySource creates a source with its own bounded client
func NewHTTPEntropySource(url string, timeout time.Duration) *HTTPEntropySource {
	return &HTTPEntropySource{
		URL:     url,
		Timeout: timeout,
		Client:  &http.Client{Timeout: timeout},
	}
}

type qrngResponse struct {
	Data []string `json:"data"`
}

// Fetch never fails loudly: any problem yields (nil, false)
func (s *HTTPEntropySource) Fetch(ctx context.Context) ([]byte, bool) {
	if s == nil || s.URL == "" {
		return nil, false
	}
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, false
	}
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		logger.Warn("Entropy fetch failed", logger.Fields{
			"url":         s.URL,
			"error":       err.Error(),
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warn("Entropy source returned non-OK status", logger.Fields{
			"url":    s.URL,
			"status": resp.StatusCode,
		})
		return nil, false
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxEntropyResponseBytes))
	if err != nil {
		return nil, false
	}

	var parsed qrngResponse
	if err := json.Unmarshal(body, &parsed); err != nil || len(parsed.Data) == 0 {
		logger.Warn("Entropy source reply had no data block", logger.Fields{"url": s.URL})
		return nil, false
	}
	data, err := hex.DecodeString(parsed.Data[0])
	if err != nil || len(data) == 0 {
		logger.Warn("Entropy source reply was not hex", logger.Fields{"url": s.URL})
		return nil, false
	}

	logger.Debug("Entropy source contributed bytes", logger.Fields{
		"bytes":       len(data),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return data, true
}
