// Package remotelog ships log entries to a remote collector without ever
// blocking or failing the caller.
package remotelog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

type Entry struct {
	Timestamp string      `json:"timestamp"`
	Level     Level       `json:"level"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
}

// DeliveryError describes a failed delivery. It is only ever written to the
// local log.
type DeliveryError struct {
	StatusCode int
	Err        error
}

func (e *DeliveryError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("log delivery: status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("log delivery: %v", e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

type Shipper struct {
	endpoint   string
	httpClient *http.Client
	logger     zerolog.Logger
	now        func() time.Time
	inflight   sync.WaitGroup
}

// NewShipper returns a shipper posting to endpoint. An empty endpoint keeps
// local logging and disables delivery.
func NewShipper(endpoint string, logger zerolog.Logger) *Shipper {
	return &Shipper{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
		now:        time.Now,
	}
}

func (s *Shipper) Debug(msg string, data interface{}) { s.Send(LevelDebug, msg, data) }
func (s *Shipper) Info(msg string, data interface{})  { s.Send(LevelInfo, msg, data) }
func (s *Shipper) Warn(msg string, data interface{})  { s.Send(LevelWarn, msg, data) }
func (s *Shipper) Error(msg string, data interface{}) { s.Send(LevelError, msg, data) }

// Send logs locally and dispatches the remote delivery in the background.
func (s *Shipper) Send(level Level, msg string, data interface{}) {
	entry := Entry{
		Timestamp: s.now().UTC().Format(time.RFC3339Nano),
		Level:     level,
		Message:   msg,
		Data:      data,
	}
	s.logger.WithLevel(zerologLevel(level)).Interface("data", data).Msg(msg)
	if s.endpoint == "" {
		return
	}
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		if err := s.deliver(entry); err != nil {
			s.logger.Warn().Err(err).Str("endpoint", s.endpoint).Msg("unable to ship log entry")
		}
	}()
}

// Wait blocks until every delivery started so far has finished.
func (s *Shipper) Wait() {
	s.inflight.Wait()
}

func (s *Shipper) deliver(entry Entry) (err error) {
	defer func() {
		// nothing a collector does may take the process down
		if r := recover(); r != nil {
			err = &DeliveryError{Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	body, err := json.Marshal(entry)
	if err != nil {
		// data that cannot be encoded is dropped, the message still goes out
		entry.Data = fmt.Sprintf("%+v", entry.Data)
		body, err = json.Marshal(entry)
		if err != nil {
			return &DeliveryError{Err: errors.Wrap(err, "unable to encode log entry")}
		}
	}
	res, err := s.httpClient.Post(s.endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		return &DeliveryError{Err: errors.Wrap(err, "unable to post log entry")}
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return &DeliveryError{StatusCode: res.StatusCode, Err: fmt.Errorf("collector replied %q", string(text))}
	}
	return nil
}

func zerologLevel(l Level) zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
