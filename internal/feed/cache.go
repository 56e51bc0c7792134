package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/ralt/pluginstats/internal/models"
	"github.com/ralt/pluginstats/internal/utils"
	"github.com/sirupsen/logrus"
)

// Default npe2api endpoints
const (
	DefaultClassifiersURL = "https://raw.githubusercontent.com/napari/npe2api/main/public/classifiers.json"
	DefaultExtendedURL    = "https://raw.githubusercontent.com/napari/npe2api/main/public/extended_summary.json"
)

// Cache file names under the data directory
const (
	ClassifiersFile = "classifiers.json"
	ExtendedFile    = "extended_summary.json"
)

// Options configures a Cache
type Options struct {
	DataDir        string
	ClassifiersURL string
	ExtendedURL    string
	// Archive is the snapshot compression format; empty disables snapshots
	Archive string
	Fetcher HTTPFetcher
	Now     func() time.Time
}

// Cache retrieves both feeds, keeping a pretty-printed copy of each one
// under the data directory
type Cache struct {
	opts Options
}

// NewCache creates a feed cache. Unset URLs fall back to the npe2api
// defaults and a nil Fetcher uses a real HTTP client.
func NewCache(opts Options) *Cache {
	if opts.ClassifiersURL == "" {
		opts.ClassifiersURL = DefaultClassifiersURL
	}
	if opts.ExtendedURL == "" {
		opts.ExtendedURL = DefaultExtendedURL
	}
	if opts.Fetcher == nil {
		opts.Fetcher = NewRealHTTPFetcher(NewHTTPClient(30 * time.Second))
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Cache{opts: opts}
}

// ClassifiersPath returns the cache path of the classifiers feed
func (c *Cache) ClassifiersPath() string {
	return filepath.Join(c.opts.DataDir, ClassifiersFile)
}

// ExtendedPath returns the cache path of the extended summary feed
func (c *Cache) ExtendedPath() string {
	return filepath.Join(c.opts.DataDir, ExtendedFile)
}

// source describes one feed and how to decode it
type source struct {
	name   string
	url    string
	path   string
	decode func([]byte) error
}

// Fetch loads both feeds, from the cache when present unless forceRefresh
// is set. The first failure aborts the whole fetch.
func (c *Cache) Fetch(ctx context.Context, forceRefresh bool) (*models.Feeds, error) {
	feeds := &models.Feeds{}
	stamp := c.opts.Now().Format("20060102_150405")

	sources := []source{
		{
			name: "classifiers",
			url:  c.opts.ClassifiersURL,
			path: c.ClassifiersPath(),
			decode: func(b []byte) (err error) {
				feeds.Classifiers, err = ParseClassifiers(b)
				return err
			},
		},
		{
			name: "extended_summary",
			url:  c.opts.ExtendedURL,
			path: c.ExtendedPath(),
			decode: func(b []byte) (err error) {
				feeds.Extended, err = ParseExtended(b)
				return err
			},
		},
	}

	for _, src := range sources {
		if err := c.load(ctx, src, forceRefresh, stamp); err != nil {
			return nil, err
		}
	}

	logrus.Infof("Loaded %d active plugins", len(feeds.Classifiers[models.StatusActive]))
	logrus.Infof("Loaded %d detailed plugin records", len(feeds.Extended))
	return feeds, nil
}

func (c *Cache) load(ctx context.Context, src source, forceRefresh bool, stamp string) error {
	cached, err := utils.FileExists(src.path)
	if err != nil {
		return models.NewError(models.ErrCacheRead, src.path, err)
	}

	if cached && !forceRefresh {
		logrus.Infof("Loading cached %s data...", src.name)
		data, err := os.ReadFile(src.path)
		if err != nil {
			return models.NewError(models.ErrCacheRead, src.path, err)
		}
		if err := src.decode(data); err != nil {
			return models.NewError(models.ErrCacheRead, src.path, err)
		}
		return nil
	}

	logrus.Infof("Fetching %s data...", src.name)
	body, err := c.download(ctx, src.url)
	if err != nil {
		return models.NewError(models.ErrFetch, src.url, err)
	}
	if err := src.decode(body); err != nil {
		return models.NewError(models.ErrFetch, src.url, err)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		return models.NewError(models.ErrFetch, src.url, err)
	}
	if err := utils.WriteFile(src.path, pretty.Bytes(), 0644); err != nil {
		return models.NewError(models.ErrFileOp, src.path, fmt.Errorf("failed to write cache: %w", err))
	}
	logrus.Debugf("Cached %s at %s (%d bytes)", src.name, src.path, pretty.Len())

	if c.opts.Archive != utils.CompressionNone {
		if err := c.archive(src.name, pretty.Bytes(), stamp); err != nil {
			return models.NewError(models.ErrFileOp, src.name, fmt.Errorf("failed to archive snapshot: %w", err))
		}
	}
	return nil
}

func (c *Cache) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.opts.Fetcher.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	return body, nil
}
