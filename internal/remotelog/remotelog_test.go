package remotelog

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type collector struct {
	mu      sync.Mutex
	entries []Entry
	status  int
}

func (c *collector) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var e Entry
	if err := json.NewDecoder(r.Body).Decode(&e); err == nil {
		c.mu.Lock()
		c.entries = append(c.entries, e)
		c.mu.Unlock()
	}
	if c.status != 0 {
		w.WriteHeader(c.status)
	}
}

func TestShipper_Delivers(t *testing.T) {
	c := &collector{}
	srv := httptest.NewServer(c)
	defer srv.Close()

	s := NewShipper(srv.URL, zerolog.Nop())
	s.now = func() time.Time { return time.Date(2025, 9, 29, 14, 30, 0, 0, time.UTC) }
	s.Info("candidates fetched", map[string]int{"count": 2})
	s.Error("fetch failed", nil)
	s.Wait()

	require.Len(t, c.entries, 2)
	byLevel := map[Level]Entry{}
	for _, e := range c.entries {
		byLevel[e.Level] = e
	}
	info := byLevel[LevelInfo]
	assert.Equal(t, "2025-09-29T14:30:00Z", info.Timestamp)
	assert.Equal(t, "candidates fetched", info.Message)
	assert.Equal(t, map[string]interface{}{"count": float64(2)}, info.Data)
	assert.Nil(t, byLevel[LevelError].Data)
}

func TestShipper_FailuresAreSwallowed(t *testing.T) {
	c := &collector{status: http.StatusBadGateway}
	srv := httptest.NewServer(c)
	defer srv.Close()

	var local bytes.Buffer
	s := NewShipper(srv.URL, zerolog.New(&local))
	assert.NotPanics(t, func() {
		s.Warn("something odd", map[string]interface{}{"fn": func() {}})
		s.Wait()
	})
	assert.Contains(t, local.String(), "unable to ship log entry")
	require.Len(t, c.entries, 1)
	assert.Equal(t, LevelWarn, c.entries[0].Level)
}

func TestShipper_UnreachableCollector(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	var local bytes.Buffer
	s := NewShipper(url, zerolog.New(&local))
	s.Debug("ping", nil)
	s.Wait()
	assert.Contains(t, local.String(), "unable to ship log entry")
}

func TestShipper_DisabledWithoutEndpoint(t *testing.T) {
	var local bytes.Buffer
	s := NewShipper("", zerolog.New(&local))
	s.Info("local only", nil)
	s.Wait()
	assert.Contains(t, local.String(), "local only")
}

func TestDeliveryError(t *testing.T) {
	err := &DeliveryError{StatusCode: 503, Err: assert.AnError}
	assert.Contains(t, err.Error(), "503")
	assert.ErrorIs(t, err, assert.AnError)
}
