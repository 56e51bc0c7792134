package feed

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ralt/pluginstats/internal/models"
	"github.com/ralt/pluginstats/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testClassifiersURL = "https://feeds.test/classifiers.json"
	testExtendedURL    = "https://feeds.test/extended_summary.json"

	classifiersBody = `{"active":{"foo-plugin":["1.0","1.1"]}}`
	extendedBody    = `[{"normalized_name":"foo-plugin","license":"MIT","pypi_versions":["1.0","1.1"],"conda_versions":[]}]`
)

func newTestCache(t *testing.T, mock *MockHTTPFetcher, archive string) *Cache {
	t.Helper()
	return NewCache(Options{
		DataDir:        t.TempDir(),
		ClassifiersURL: testClassifiersURL,
		ExtendedURL:    testExtendedURL,
		Archive:        archive,
		Fetcher:        mock,
		Now: func() time.Time {
			return time.Date(2026, 10, 14, 12, 30, 0, 0, time.UTC)
		},
	})
}

func serveFeeds(mock *MockHTTPFetcher) {
	mock.AddResponse(testClassifiersURL, 200, classifiersBody)
	mock.AddResponse(testExtendedURL, 200, extendedBody)
}

func TestFetchDownloadsAndCaches(t *testing.T) {
	mock := NewMockHTTPFetcher()
	serveFeeds(mock)
	cache := newTestCache(t, mock, "")

	feeds, err := cache.Fetch(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, feeds.Classifiers[models.StatusActive], 1)
	assert.Equal(t, "foo-plugin", feeds.Classifiers[models.StatusActive][0].Name)
	require.Len(t, feeds.Extended, 1)
	assert.Equal(t, "MIT", feeds.Extended[0].License)
	assert.Equal(t, []string{testClassifiersURL, testExtendedURL}, mock.Requests())

	b, err := os.ReadFile(cache.ClassifiersPath())
	require.NoError(t, err)
	want := "{\n  \"active\": {\n    \"foo-plugin\": [\n      \"1.0\",\n      \"1.1\"\n    ]\n  }\n}"
	assert.Equal(t, want, string(b))
	assert.FileExists(t, cache.ExtendedPath())

	// Second run is served from the cache
	again, err := cache.Fetch(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, feeds, again)
	assert.Len(t, mock.Requests(), 2)
}

func TestFetchForceRefresh(t *testing.T) {
	mock := NewMockHTTPFetcher()
	serveFeeds(mock)
	cache := newTestCache(t, mock, "")

	_, err := cache.Fetch(context.Background(), false)
	require.NoError(t, err)

	mock.AddResponse(testClassifiersURL, 200, `{"active":{"foo-plugin":["1.0"],"bar":[]}}`)
	feeds, err := cache.Fetch(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, feeds.Classifiers[models.StatusActive], 2)
	assert.Len(t, mock.Requests(), 4)
}

func TestFetchErrors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(m *MockHTTPFetcher)
	}{
		{
			name: "non-success status",
			setup: func(m *MockHTTPFetcher) {
				m.AddResponse(testClassifiersURL, 503, "unavailable")
			},
		},
		{
			name: "malformed body",
			setup: func(m *MockHTTPFetcher) {
				m.AddResponse(testClassifiersURL, 200, `{"active": `)
			},
		},
		{
			name: "schema violation",
			setup: func(m *MockHTTPFetcher) {
				serveFeeds(m)
				m.AddResponse(testExtendedURL, 200, `[{"name": "x", "conda_versions": "1"}]`)
			},
		},
		{
			name: "transport failure",
			setup: func(m *MockHTTPFetcher) {
				m.AddError(testClassifiersURL, errors.New("connection refused"))
			},
		},
		{
			name: "unknown url",
			setup: func(m *MockHTTPFetcher) {
				m.AddResponse(testClassifiersURL, 200, classifiersBody)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockHTTPFetcher()
			tt.setup(mock)
			cache := newTestCache(t, mock, "")

			_, err := cache.Fetch(context.Background(), false)
			require.Error(t, err)
			assert.True(t, models.IsErrorType(err, models.ErrFetch), "got %v", err)
		})
	}
}

func TestFetchCorruptCache(t *testing.T) {
	mock := NewMockHTTPFetcher()
	serveFeeds(mock)
	cache := newTestCache(t, mock, "")

	require.NoError(t, utils.WriteFile(cache.ClassifiersPath(), []byte("{not json"), 0644))

	_, err := cache.Fetch(context.Background(), false)
	require.Error(t, err)
	assert.True(t, models.IsErrorType(err, models.ErrCacheRead), "got %v", err)
	assert.Empty(t, mock.Requests())

	// A forced refresh replaces the corrupt copy
	_, err = cache.Fetch(context.Background(), true)
	require.NoError(t, err)
}

func TestFetchArchivesSnapshots(t *testing.T) {
	mock := NewMockHTTPFetcher()
	serveFeeds(mock)
	cache := newTestCache(t, mock, utils.CompressionGzip)

	_, err := cache.Fetch(context.Background(), false)
	require.NoError(t, err)

	path := cache.SnapshotPath("classifiers", "20261014_123000")
	assert.Equal(t, "classifiers.json.gz", filepath.Base(path))

	packed, err := os.ReadFile(path)
	require.NoError(t, err)
	unpacked, err := utils.Decompress(packed, utils.CompressionGzip)
	require.NoError(t, err)

	cached, err := os.ReadFile(cache.ClassifiersPath())
	require.NoError(t, err)
	assert.Equal(t, cached, unpacked)

	sum, err := os.ReadFile(path + ".sha256")
	require.NoError(t, err)
	assert.Equal(t, utils.ChecksumLine(utils.SHA256Hex(packed), "classifiers.json.gz"), string(sum))
	assert.FileExists(t, cache.SnapshotPath("extended_summary", "20261014_123000"))

	// Cache hits are not archived again
	require.NoError(t, os.RemoveAll(filepath.Join(filepath.Dir(cache.ClassifiersPath()), SnapshotsDir)))
	_, err = cache.Fetch(context.Background(), false)
	require.NoError(t, err)
	assert.NoFileExists(t, path)
}
