package descriptor

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/ralt/coprctl/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDescriptor = `{
  "repos": {
    "fedora-39": {
      "arch": {
        "x86_64": {
          "opts": {"priority": "10", "cost": 1100, "module_hotfixes": true, "unknown": [1, 2]},
          "multilib": {
            "i686": {"opts": {"cost": "1200"}},
            "ppc": {}
          }
        },
        "aarch64": {}
      }
    },
    "epel-9": {"arch": {"x86_64": {}}}
  },
  "results_url": "https://download.copr.fedorainfracloud.org/results",
  "dependencies": [
    {"type": "copr", "data": {"owner": "@python", "projectname": "python3.12"}, "opts": {"id": "coprdep:copr.fedorainfracloud.org:group_python:python3.12"}},
    {"type": "external_baseurl", "data": {"pattern": "https://example.com/$chroot/"}, "opts": {"id": "coprdep:example.com"}},
    {"type": "flatpak", "data": {}}
  ]
}`

func TestParse(t *testing.T) {
	d, err := Parse([]byte(sampleDescriptor))
	require.NoError(t, err)

	assert.Equal(t, "https://download.copr.fedorainfracloud.org/results", d.ResultsURL)
	assert.Equal(t, []string{"fedora-39-x86_64", "fedora-39-aarch64", "epel-9-x86_64"}, d.AvailableChroots())

	detail, ok := d.Chroot("fedora-39", "x86_64")
	require.True(t, ok)
	require.NotNil(t, detail.Opts)
	assert.Equal(t, 10, *detail.Opts.Priority)
	assert.Equal(t, 1100, *detail.Opts.Cost)
	assert.True(t, *detail.Opts.ModuleHotfixes)
	assert.Nil(t, detail.Opts.ID)
	assert.Nil(t, detail.Opts.Name)

	assert.Equal(t, []string{"i686", "ppc"}, detail.Multilib.Keys())
	i686, ok := detail.Multilib.Get("i686")
	require.True(t, ok)
	assert.Equal(t, 1200, *i686.Opts.Cost)
	ppc, _ := detail.Multilib.Get("ppc")
	assert.Nil(t, ppc.Opts)

	aarch64, ok := d.Chroot("fedora-39", "aarch64")
	require.True(t, ok)
	assert.Equal(t, 0, aarch64.Multilib.Len())

	_, ok = d.Chroot("fedora-40", "x86_64")
	assert.False(t, ok)

	require.Len(t, d.Dependencies, 3)
	assert.Equal(t, DependencyCopr, d.Dependencies[0].Type)
	assert.Equal(t, "@python", d.Dependencies[0].Data.Owner)
	assert.Equal(t, "python3.12", d.Dependencies[0].Data.ProjectName)
	assert.Equal(t, "coprdep:copr.fedorainfracloud.org:group_python:python3.12", *d.Dependencies[0].Opts.ID)
	assert.Equal(t, "https://example.com/$chroot/", d.Dependencies[1].Data.Pattern)
	assert.Equal(t, "coprdep:example.com", *d.Dependencies[1].Opts.ID)
	assert.Nil(t, d.Dependencies[1].Opts.Cost)
	assert.Nil(t, d.Dependencies[2].Opts)
}

func TestParseIntegralFloatOptions(t *testing.T) {
	d, err := Parse([]byte(`{
	  "repos": {"fedora-39": {"arch": {"x86_64": {"opts": {"priority": 10.0, "cost": "1e3"}}}}},
	  "results_url": "https://example.com/results"
	}`))
	require.NoError(t, err)

	detail, _ := d.Chroot("fedora-39", "x86_64")
	assert.Equal(t, 10, *detail.Opts.Priority)
	assert.Equal(t, 1000, *detail.Opts.Cost)
}

func TestParseMultilibOrderFollowsDocument(t *testing.T) {
	d, err := Parse([]byte(`{
	  "repos": {"fedora-39": {"arch": {"x86_64": {"multilib": {"ppc": {}, "i686": {}, "armhfp": {}}}}}},
	  "results_url": "https://example.com/results"
	}`))
	require.NoError(t, err)

	detail, _ := d.Chroot("fedora-39", "x86_64")
	assert.Equal(t, []string{"ppc", "i686", "armhfp"}, detail.Multilib.Keys())
	assert.Empty(t, d.Dependencies)
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		"malformed":           `{"repos": `,
		"no results url":      `{"repos": {}}`,
		"repos not object":    `{"repos": [], "results_url": "x"}`,
		"bad priority":        `{"repos": {"f-1": {"arch": {"x": {"opts": {"priority": "high"}}}}}, "results_url": "x"}`,
		"fractional priority": `{"repos": {"f-1": {"arch": {"x": {"opts": {"priority": 10.5}}}}}, "results_url": "x"}`,
		"copr dep no owner":   `{"repos": {}, "results_url": "x", "dependencies": [{"type": "copr", "data": {"projectname": "p"}, "opts": {"id": "d"}}]}`,
		"external no pattern": `{"repos": {}, "results_url": "x", "dependencies": [{"type": "external_baseurl", "data": {}, "opts": {"id": "d"}}]}`,
		"copr dep no id":      `{"repos": {}, "results_url": "x", "dependencies": [{"type": "copr", "data": {"owner": "a", "projectname": "b"}}]}`,
		"external null id":    `{"repos": {}, "results_url": "x", "dependencies": [{"type": "external_baseurl", "data": {"pattern": "p"}, "opts": {"id": null}}]}`,
		"duplicate dep ids":   `{"repos": {}, "results_url": "x", "dependencies": [{"type": "copr", "data": {"owner": "a", "projectname": "b"}, "opts": {"id": "d"}}, {"type": "external_baseurl", "data": {"pattern": "p"}, "opts": {"id": "d"}}]}`,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(body))
			assert.Error(t, err)
		})
	}
}

func TestClientFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api_3/rpmrepo/owner/project/fedora-39/", r.URL.Path)
		assert.Equal(t, "coprctl-test", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleDescriptor))
	}))
	defer server.Close()

	client := NewClient(server.Client(), "coprctl-test")
	d, err := client.Fetch(context.Background(), server.URL+"/api_3/rpmrepo/owner/project/fedora-39/")
	require.NoError(t, err)
	assert.Len(t, d.AvailableChroots(), 3)
}

func TestClientFetchGzip(t *testing.T) {
	compressed := gzipBody(t, sampleDescriptor)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "gzip", r.Header.Get("Accept-Encoding"))
		w.Header().Set("Content-Encoding", "gzip")
		w.Write(compressed)
	}))
	defer server.Close()

	d, err := NewClient(server.Client(), "").Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "https://download.copr.fedorainfracloud.org/results", d.ResultsURL)
}

func TestClientFetchErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		errType models.ErrorType
	}{
		{"not found", http.StatusNotFound, `{"error": "Project not found"}`, models.ErrDescriptorFetch},
		{"server error", http.StatusInternalServerError, "", models.ErrDescriptorFetch},
		{"malformed json", http.StatusOK, "<html>", models.ErrDescriptorParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			d, err := NewClient(server.Client(), "").Fetch(context.Background(), server.URL)
			require.Error(t, err)
			assert.Nil(t, d)

			var coprErr *models.CoprError
			require.True(t, errors.As(err, &coprErr))
			assert.Equal(t, tt.errType, coprErr.Type)
			assert.True(t, coprErr.Type.Fatal())
		})
	}
}

func gzipBody(t *testing.T, body string) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write([]byte(body))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}
