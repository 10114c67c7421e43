package catalog

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"eventgo-ticketing/internal/domain/catalog"
	"eventgo-ticketing/internal/pkg/config"
	"eventgo-ticketing/internal/pkg/errs"
)

const maxBodyBytes = 8 << 20

// Client reads events and their seats from the events service.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

func NewClient(cfg config.CatalogConfig, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

func (c *Client) Event(ctx context.Context, eventID int64) (*catalog.Event, error) {
	var event catalog.Event
	if err := c.get(ctx, "/events/"+strconv.FormatInt(eventID, 10), &event); err != nil {
		return nil, err
	}
	if event.ID == 0 {
		event.ID = eventID
	}
	return &event, nil
}

func (c *Client) Events(ctx context.Context) ([]catalog.Event, error) {
	var events []catalog.Event
	if err := c.get(ctx, "/events", &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return errs.Wrap(err, "build catalog request")
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("catalog request failed", "path", path, "error", err.Error())
		return errs.Mark(errs.Wrapf(err, "GET %s", path), errs.ErrUpstreamUnavailable)
	}
	defer resp.Body.Close()

	c.logger.Debug("catalog request",
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds())

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return errs.Mark(errs.Newf("GET %s: not found", path), errs.ErrEventNotFound)
	case resp.StatusCode != http.StatusOK:
		return errs.Mark(errs.Newf("GET %s: unexpected status %d", path, resp.StatusCode), errs.ErrUpstreamUnavailable)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(out); err != nil {
		return errs.Mark(errs.Wrapf(err, "decode %s", path), errs.ErrUpstreamUnavailable)
	}
	return nil
}
