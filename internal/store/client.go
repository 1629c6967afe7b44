// Package store implements the client side of the document store HTTP API:
// named collections of JSON records loaded and saved as whole documents
// (GET /api/load/{name}, POST /api/save).
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const defaultTimeout = 10 * time.Second

// Client represents a document store API client.
//
// The store is best-effort by contract: Load degrades to an empty
// collection on any transport, status or format problem, and Save
// failures are logged but never surfaced. A transient outage is
// observably identical to a collection that has never been created.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// savePayload is the wire format of POST /api/save
type savePayload struct {
	Filename string      `json:"filename"`
	Data     interface{} `json:"data"`
}

// NewClient creates a new document store client
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Load fetches the named collection and returns its records.
//
// Three response shapes are accepted: a bare JSON array, an envelope
// {"filename": ..., "data": [...]}, and an envelope whose data value is
// not an array (wrapped into a one-element result with a warning).
// Every failure mode yields an empty result, never an error.
func (c *Client) Load(name string) []json.RawMessage {
	url := fmt.Sprintf("%s/api/load/%s", c.baseURL, name)

	resp, err := c.httpClient.Get(url)
	if err != nil {
		c.logger.Warn("Failed to load collection",
			zap.String("collection", name),
			zap.Error(err))
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Non-2xx means "collection absent", e.g. 404 before first save
		c.logger.Warn("Collection not found or load error",
			zap.String("collection", name),
			zap.Int("status", resp.StatusCode))
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Warn("Failed to read load response",
			zap.String("collection", name),
			zap.Error(err))
		return nil
	}

	records, wrapped, ok := normalize(body)
	if !ok {
		c.logger.Warn("Unexpected shape of collection JSON, using empty result",
			zap.String("collection", name))
		return nil
	}
	if wrapped {
		c.logger.Warn("Collection data is not an array, wrapping in one-element result",
			zap.String("collection", name))
	}

	c.logger.Debug("Collection loaded",
		zap.String("collection", name),
		zap.Int("count", len(records)))

	return records
}

// normalize coerces the three tolerated response shapes into a record
// slice; wrapped reports that a non-array data value was boxed
func normalize(body []byte) (records []json.RawMessage, wrapped bool, ok bool) {
	if err := json.Unmarshal(body, &records); err == nil {
		return records, false, true
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, false, false
	}
	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return nil, false, false
	}

	if err := json.Unmarshal(envelope.Data, &records); err == nil {
		return records, false, true
	}

	// data is present but not an array: wrap it
	return []json.RawMessage{envelope.Data}, true, true
}

// Save writes the named collection as a whole document.
//
// The write is best-effort: failures are logged, not retried, and not
// reported to the caller. Last writer wins at collection granularity.
func (c *Client) Save(name string, records interface{}) {
	payload, err := json.Marshal(savePayload{Filename: name, Data: records})
	if err != nil {
		c.logger.Warn("Failed to marshal collection",
			zap.String("collection", name),
			zap.Error(err))
		return
	}

	url := fmt.Sprintf("%s/api/save", c.baseURL)
	resp, err := c.httpClient.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		c.logger.Warn("Failed to save collection",
			zap.String("collection", name),
			zap.Error(err))
		return
	}
	defer resp.Body.Close()

	// The ack body is a human-readable text, consumed only for logging
	ack, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("Save rejected by store",
			zap.String("collection", name),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("ack", ack))
		return
	}

	c.logger.Debug("Collection saved",
		zap.String("collection", name),
		zap.ByteString("ack", ack))
}
