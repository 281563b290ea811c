package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/osse101/BrandishShop/internal/domain"
	"github.com/osse101/BrandishShop/internal/logger"
	"github.com/osse101/BrandishShop/internal/metrics"
)

// Config configures the catalog client. A zero MaxRetries uses
// DefaultMaxRetries and a negative one disables retries.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	CacheSize  int
	CacheTTL   time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

// Client resolves item indexes against the remote reference API
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *itemCache
	maxRetries int
	retryDelay time.Duration
}

type equipmentResponse struct {
	Index string `json:"index"`
	Name  string `json:"name"`
	Cost  struct {
		Quantity int64  `json:"quantity"`
		Unit     string `json:"unit"`
	} `json:"cost"`
}

type magicItemResponse struct {
	Index  string `json:"index"`
	Name   string `json:"name"`
	Rarity struct {
		Name string `json:"name"`
	} `json:"rarity"`
}

// NewClient creates a catalog client, filling zero Config fields with defaults
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = DefaultCacheSize
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}
	switch {
	case cfg.MaxRetries == 0:
		cfg.MaxRetries = DefaultMaxRetries
	case cfg.MaxRetries < 0:
		cfg.MaxRetries = 0
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = DefaultRetryDelay
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cache:      newItemCache(cfg.CacheSize, cfg.CacheTTL),
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
	}
}

// Lookup resolves index to Equipment or, failing that, a MagicItem.
// A miss in both collections is ErrItemNotFound; anything else that stops
// an answer is ErrUnavailable.
func (c *Client) Lookup(ctx context.Context, index string) (domain.Item, error) {
	log := logger.FromContext(ctx)

	index = strings.TrimSpace(index)
	if index == "" {
		return nil, fmt.Errorf("%s: %w", ErrMsgEmptyIndex, domain.ErrInvalidInput)
	}

	if item, ok := c.cache.Get(index); ok {
		metrics.CatalogLookups.WithLabelValues(metrics.CatalogResultHit).Inc()
		log.Debug(LogMsgCacheHit, "index", index)
		return item, nil
	}

	item, result, err := c.resolve(ctx, index)
	metrics.CatalogLookups.WithLabelValues(result).Inc()
	if err != nil {
		return nil, err
	}

	c.cache.Set(index, item)
	log.Debug(LogMsgItemResolved, "index", index, "kind", item.Kind(), "name", item.ItemName())
	return item, nil
}

func (c *Client) resolve(ctx context.Context, index string) (domain.Item, string, error) {
	var eq equipmentResponse
	found, err := c.getJSON(ctx, EquipmentPath+url.PathEscape(index), &eq)
	if err != nil {
		return nil, metrics.CatalogResultUnavailable, err
	}
	if found {
		return domain.Equipment{
			Index: nonEmpty(eq.Index, index),
			Name:  nonEmpty(eq.Name, index),
			Cost:  eq.Cost.Quantity,
		}, metrics.CatalogResultEquipment, nil
	}

	var mi magicItemResponse
	found, err = c.getJSON(ctx, MagicItemsPath+url.PathEscape(index), &mi)
	if err != nil {
		return nil, metrics.CatalogResultUnavailable, err
	}
	if found {
		return domain.MagicItem{
			Index:  nonEmpty(mi.Index, index),
			Name:   nonEmpty(mi.Name, index),
			Rarity: domain.ParseRarity(mi.Rarity.Name),
		}, metrics.CatalogResultMagicItem, nil
	}

	return nil, metrics.CatalogResultNotFound, fmt.Errorf(ErrMsgItemNotInCatalog, index, domain.ErrItemNotFound)
}

// getJSON fetches path and decodes a 200 body into out. A 404 reports
// found=false with no error. Transport errors, 429 and 5xx are retried with
// exponential backoff.
func (c *Client) getJSON(ctx context.Context, path string, out interface{}) (bool, error) {
	log := logger.FromContext(ctx)
	endpoint := c.baseURL + path

	var lastErr error
	attempts := 0
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			delay := c.retryDelay * time.Duration(1<<uint(attempt-1))
			log.Info(LogMsgRetrying, "attempt", attempt, "path", path, "delay", delay, "error", lastErr)
			select {
			case <-ctx.Done():
				return false, fmt.Errorf(ErrMsgRequestCancelled, path, ctx.Err(), domain.ErrUnavailable)
			case <-time.After(delay):
			}
		}
		attempts++

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return false, fmt.Errorf(ErrMsgBuildRequest, errors.Join(err, domain.ErrUnavailable))
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return false, fmt.Errorf(ErrMsgRequestCancelled, path, ctx.Err(), domain.ErrUnavailable)
			}
			lastErr = err
			continue
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			defer resp.Body.Close()
			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return false, fmt.Errorf(ErrMsgDecodeFailed, path, err, domain.ErrUnavailable)
			}
			return true, nil
		case resp.StatusCode == http.StatusNotFound:
			drainAndClose(resp)
			return false, nil
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			drainAndClose(resp)
			lastErr = fmt.Errorf("status %d", resp.StatusCode)
		default:
			drainAndClose(resp)
			return false, fmt.Errorf(ErrMsgUnexpectedCode, resp.StatusCode, path, domain.ErrUnavailable)
		}
	}

	return false, fmt.Errorf(ErrMsgRequestFailed, path, attempts, lastErr, domain.ErrUnavailable)
}

func drainAndClose(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}

func nonEmpty(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
