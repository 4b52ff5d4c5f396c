// Package fetch pulls session records from the remote data endpoint for
// display. Fetched records never feed the analytics.
package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"broadcastdash/api/models"
)

const maxBodyBytes = 8 * 1024 * 1024

// ErrUnexpectedPayload is returned when the body is not a JSON array of objects.
var ErrUnexpectedPayload = errors.New("unexpected payload")

// HTTPStatusError reports a non-200 response.
type HTTPStatusError struct {
	StatusCode int
	Body       string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("Failed to fetch data from API. Status code: %d", e.StatusCode)
}

// RequestError wraps a transport or decoding failure.
type RequestError struct {
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("Error occurred while fetching data from API: %v", e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

type Client struct {
	URL        string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// NewClient builds a client for url. A zero timeout waits indefinitely.
func NewClient(url string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		URL:        url,
		HTTPClient: &http.Client{Timeout: timeout},
		Logger:     logger,
	}
}

// Fetch issues a single GET and decodes the array of records, keeping each
// object's field order. There is no retry.
func (c *Client) Fetch(ctx context.Context) ([]models.FetchedRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, &RequestError{Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Logger.Error("fetch failed", "url", c.URL, "error", err)
		return nil, &RequestError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &RequestError{Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		c.Logger.Warn("fetch returned non-200", "url", c.URL, "status", resp.StatusCode)
		return nil, &HTTPStatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	records, err := decodeRecords(body)
	if err != nil {
		return nil, &RequestError{Err: err}
	}
	c.Logger.Info("fetched records", "url", c.URL, "count", len(records))
	return records, nil
}

func decodeRecords(body []byte) ([]models.FetchedRecord, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedPayload, err)
	}
	records := make([]models.FetchedRecord, 0, len(raw))
	for i, item := range raw {
		rec, err := decodeObject(item)
		if err != nil {
			return nil, fmt.Errorf("%w: item %d: %v", ErrUnexpectedPayload, i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// decodeObject walks the object token by token so key order survives.
// Numbers stay json.Number so large integer IDs are not rounded.
func decodeObject(data json.RawMessage) (models.FetchedRecord, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return models.FetchedRecord{}, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return models.FetchedRecord{}, errors.New("not an object")
	}

	rec := models.FetchedRecord{Values: make(map[string]any)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return models.FetchedRecord{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return models.FetchedRecord{}, errors.New("object key is not a string")
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return models.FetchedRecord{}, err
		}
		if _, dup := rec.Values[key]; !dup {
			rec.Keys = append(rec.Keys, key)
		}
		rec.Values[key] = value
	}
	return rec, nil
}
