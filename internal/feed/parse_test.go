package feed

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ralt/pluginstats/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClassifiers(t *testing.T) {
	tests := []struct {
		name string
		data string
		want models.ClassifierFeed
	}{
		{
			name: "document order is kept",
			data: `{"active": {"zeta": ["1.0"], "alpha": ["0.1", "0.2"]}, "deleted": {"gone": null}}`,
			want: models.ClassifierFeed{
				models.StatusActive: {
					{Name: "zeta", Versions: []string{"1.0"}},
					{Name: "alpha", Versions: []string{"0.1", "0.2"}},
				},
				models.StatusDeleted: {
					{Name: "gone"},
				},
			},
		},
		{
			name: "repeated key keeps first position and last value",
			data: `{"active": {"a": ["1"], "b": [], "a": ["2"]}}`,
			want: models.ClassifierFeed{
				models.StatusActive: {
					{Name: "a", Versions: []string{"2"}},
					{Name: "b"},
				},
			},
		},
		{
			name: "unknown statuses are ignored",
			data: `{"pending": {"x": ["1"]}, "withdrawn": {}}`,
			want: models.ClassifierFeed{
				models.StatusWithdrawn: {},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseClassifiers([]byte(tt.data))
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseClassifiers() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseClassifiersRejectsBadInput(t *testing.T) {
	_, err := ParseClassifiers([]byte(`{"active": {`))
	assert.Error(t, err)

	_, err = ParseClassifiers([]byte(`{"active": {"napari-foo": "1.0"}}`))
	require.Error(t, err)
	assert.True(t, models.IsErrorType(err, models.ErrSchema), "got %v", err)

	_, err = ParseClassifiers([]byte(`{"active": {"napari-foo": [1, 2]}}`))
	assert.True(t, models.IsErrorType(err, models.ErrSchema), "got %v", err)
}

func TestParseExtended(t *testing.T) {
	data := `[
		{"normalized_name": "foo-plugin", "name": "foo_plugin", "license": null,
		 "home_page": "https://example.org", "pypi_versions": ["1.0", "1.1"],
		 "conda_versions": null, "project_url": ["Source, https://github.com/a/foo"],
		 "extra_field": 42},
		{"name": "bar", "license": "MIT", "project_urls": ["https://bar.dev"]}
	]`

	got, err := ParseExtended([]byte(data))
	require.NoError(t, err)

	want := []models.ExtendedRecord{
		{
			NormalizedName: "foo-plugin",
			Name:           "foo_plugin",
			HomePage:       "https://example.org",
			PyPIVersions:   []string{"1.0", "1.1"},
			ProjectURL:     []string{"Source, https://github.com/a/foo"},
		},
		{
			Name:        "bar",
			License:     "MIT",
			ProjectURLs: []string{"https://bar.dev"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseExtended() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "bar", got[1].Key())
}

func TestParseExtendedRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not an array", `{"normalized_name": "x"}`},
		{"missing names", `[{"license": "MIT"}]`},
		{"string versions", `[{"name": "x", "pypi_versions": "1.0"}]`},
		{"numeric license", `[{"name": "x", "license": 3}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseExtended([]byte(tt.data))
			require.Error(t, err)
			assert.True(t, models.IsErrorType(err, models.ErrSchema), "got %v", err)

			var serr *SchemaError
			assert.ErrorAs(t, err, &serr)
			assert.NotEmpty(t, serr.Violations)
		})
	}

	_, err := ParseExtended([]byte(`[{"name": `))
	assert.Error(t, err)
	assert.False(t, models.IsErrorType(err, models.ErrSchema))
}
