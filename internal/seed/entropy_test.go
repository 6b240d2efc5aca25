package seed

import (
	"bytes"
	"context"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHTTPEntropySource(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		delay  time.Duration
		want   []byte
		wantOK bool
	}{
		{
			name:   "valid hex block",
			status: http.StatusOK,
			body:   `{"type":"string","length":1,"size":32,"data":["00ff10"],"success":true}`,
			want:   []byte{0x00, 0xff, 0x10},
			wantOK: true,
		},
		{
			name:   "non-200 status",
			status: http.StatusServiceUnavailable,
			body:   `{"data":["00ff10"]}`,
		},
		{
			name:   "malformed hex",
			status: http.StatusOK,
			body:   `{"data":["zz"]}`,
		},
		{
			name:   "empty data",
			status: http.StatusOK,
			body:   `{"data":[]}`,
		},
		{
			name:   "not json",
			status: http.StatusOK,
			body:   `rate limited`,
		},
		{
			name:   "timeout",
			status: http.StatusOK,
			body:   `{"data":["00ff10"]}`,
			delay:  300 * time.Millisecond,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.delay > 0 {
					select {
					case <-time.After(tt.delay):
					case <-r.Context().Done():
						return
					}
				}
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			src := NewHTTPEntropySource(srv.URL, 100*time.Millisecond)
			data, ok := src.Fetch(context.Background())

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, data)
		})
	}
}

func TestHTTPEntropySourceUnreachable(t *testing.T) {
	src := NewHTTPEntropySource("http://127.0.0.1:1/never", 100*time.Millisecond)
	data, ok := src.Fetch(context.Background())
	assert.False(t, ok)
	assert.Nil(t, data)

	var nilSrc *HTTPEntropySource
	_, ok = nilSrc.Fetch(context.Background())
	assert.False(t, ok)
}

func TestHTTPEntropySourceLogsFailures(t *testing.T) {
	var buf bytes.Buffer
	prevOut, prevFlags := log.Writer(), log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(prevOut)
		log.SetFlags(prevFlags)
	})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, ok := NewHTTPEntropySource(server.URL, time.Second).Fetch(context.Background())
	assert.False(t, ok)
	assert.Contains(t, buf.String(), "[WARN] Entropy source returned non-OK status")
	assert.Contains(t, buf.String(), "status=503")
}
