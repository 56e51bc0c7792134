package publish

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ralt/pluginstats/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type upload struct {
	Bucket, Key, File, ContentType string
}

type fakeUploader struct {
	uploads []upload
	failOn  string
}

func (f *fakeUploader) UploadFile(_ context.Context, bucket, key, filePath, contentType string) error {
	if key == f.failOn {
		return errors.New("access denied")
	}
	f.uploads = append(f.uploads, upload{bucket, key, filePath, contentType})
	return nil
}

func TestUpload(t *testing.T) {
	fake := &fakeUploader{}
	p := NewWithUploader(models.PublishConfig{Bucket: "reports", Prefix: "/napari/"}, fake)

	keys, err := p.Upload(context.Background(), "run-1", []string{
		"/out/ecosystem_report_20261014_120000.md",
		"/out/ecosystem_report_20261014_120000.md.asc",
		"/out/plugin_categories.png",
	})
	require.NoError(t, err)

	want := []upload{
		{"reports", "napari/run-1/ecosystem_report_20261014_120000.md", "/out/ecosystem_report_20261014_120000.md", "text/markdown; charset=utf-8"},
		{"reports", "napari/run-1/ecosystem_report_20261014_120000.md.asc", "/out/ecosystem_report_20261014_120000.md.asc", "application/pgp-signature"},
		{"reports", "napari/run-1/plugin_categories.png", "/out/plugin_categories.png", "image/png"},
	}
	if diff := cmp.Diff(want, fake.uploads); diff != "" {
		t.Errorf("uploads mismatch (-want +got):\n%s", diff)
	}
	assert.Len(t, keys, 3)
}

func TestUploadStopsOnFailure(t *testing.T) {
	fake := &fakeUploader{failOn: "run-2/b.png"}
	p := NewWithUploader(models.PublishConfig{Bucket: "reports"}, fake)

	keys, err := p.Upload(context.Background(), "run-2", []string{"a.md", "b.png", "c.csv"})
	require.Error(t, err)
	assert.True(t, models.IsErrorType(err, models.ErrPublish))
	assert.Equal(t, []string{"run-2/a.md"}, keys)
	assert.Len(t, fake.uploads, 1)
}

func TestNewRequiresEndpoint(t *testing.T) {
	_, err := New(models.PublishConfig{Bucket: "reports"})
	require.Error(t, err)
	assert.True(t, models.IsErrorType(err, models.ErrPublish))
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "text/csv; charset=utf-8", ContentType("repos.CSV"))
	assert.Equal(t, "application/octet-stream", ContentType("data.bin"))
}
