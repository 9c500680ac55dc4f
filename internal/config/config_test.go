package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pagectl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validYAML = `
pages:
  - page_id: "1001"
    slug: shop
    name: The Shop
    access_token: tok-shop
  - page_id: "1002"
    slug: blog
    name: The Blog
    access_token: tok-blog
`

func TestLoad_ValidFile(t *testing.T) {
	cfg, err := Load(writeConfigFile(t, validYAML))
	require.NoError(t, err)

	assert.Equal(t, "v21.0", cfg.GraphVersion)
	assert.Equal(t, "https://graph.facebook.com", cfg.BaseURL)
	require.Len(t, cfg.Pages, 2)
	assert.Equal(t, "shop", cfg.Pages[0].Slug)
	assert.Equal(t, "tok-blog", cfg.Pages[1].AccessToken)
}

func TestLoad_MissingFileNoPages(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoPages)
}

func TestLoad_MalformedFile(t *testing.T) {
	_, err := Load(writeConfigFile(t, "pages: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoad_DuplicateSlugRejected(t *testing.T) {
	_, err := Load(writeConfigFile(t, `
pages:
  - {page_id: "1", slug: shop, access_token: a}
  - {page_id: "2", slug: shop, access_token: b}
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate page slug "shop"`)
}

func TestLoad_IncompleteCredential(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "missing token",
			yaml: `pages: [{page_id: "1", slug: shop}]`,
			want: `page "shop": access_token is required`,
		},
		{
			name: "missing page id",
			yaml: `pages: [{slug: shop, access_token: a}]`,
			want: `page "shop": page_id is required`,
		},
		{
			name: "missing slug",
			yaml: `pages: [{page_id: "1", access_token: a}]`,
			want: "page 0: slug is required",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfigFile(t, tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Run("PAGECTL_PAGES_JSON replaces file pages", func(t *testing.T) {
		t.Setenv("PAGECTL_PAGES_JSON", `[{"page_id":"9","slug":"env","name":"Env","access_token":"tok-env"}]`)

		cfg, err := Load(writeConfigFile(t, validYAML))
		require.NoError(t, err)
		require.Len(t, cfg.Pages, 1)
		assert.Equal(t, "env", cfg.Pages[0].Slug)
	})

	t.Run("unknown field in pages JSON is rejected", func(t *testing.T) {
		t.Setenv("PAGECTL_PAGES_JSON", `[{"page_id":"9","slug":"env","acces_token":"typo"}]`)

		_, err := Load(writeConfigFile(t, validYAML))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "PAGECTL_PAGES_JSON")
	})

	t.Run("malformed pages JSON is fatal", func(t *testing.T) {
		t.Setenv("PAGECTL_PAGES_JSON", `not json`)

		_, err := Load(writeConfigFile(t, validYAML))
		require.Error(t, err)
	})

	t.Run("app credentials and version", func(t *testing.T) {
		t.Setenv("PAGECTL_APP_ID", "app-1")
		t.Setenv("PAGECTL_APP_TOKEN", "app-tok")
		t.Setenv("PAGECTL_GRAPH_VERSION", "v22.0")

		cfg, err := Load(writeConfigFile(t, validYAML))
		require.NoError(t, err)
		assert.True(t, cfg.HasAppUpload())
		assert.Equal(t, "v22.0", cfg.GraphVersion)
	})
}

func TestResolvePage(t *testing.T) {
	cfg, err := Load(writeConfigFile(t, validYAML))
	require.NoError(t, err)

	t.Run("hit returns exact record", func(t *testing.T) {
		p, err := cfg.ResolvePage("shop")
		require.NoError(t, err)
		assert.Equal(t, "1001", p.PageID)
		assert.Equal(t, "tok-shop", p.AccessToken)
	})

	t.Run("miss enumerates slugs, never tokens", func(t *testing.T) {
		_, err := cfg.ResolvePage("nope")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnknownPage)
		assert.Contains(t, err.Error(), "blog")
		assert.Contains(t, err.Error(), "shop")
		assert.NotContains(t, err.Error(), "tok-shop")
		assert.NotContains(t, err.Error(), "tok-blog")
	})
}

func TestSummaries_NoTokenField(t *testing.T) {
	cfg, err := Load(writeConfigFile(t, validYAML))
	require.NoError(t, err)

	sums := cfg.Summaries()
	require.Len(t, sums, 2)
	assert.Equal(t, "shop", sums[0].Slug)

	// The serialized summary must not carry any token material.
	data, err := json.Marshal(sums)
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(data), "tok-"), "summary output leaked a token: %s", data)
	assert.False(t, strings.Contains(string(data), "access_token"))
}

func TestHasAppUpload(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, cfg.HasAppUpload())
	cfg.App.AppID = "1"
	assert.False(t, cfg.HasAppUpload(), "app id alone is not enough without any page")
	cfg.App.AccessToken = "t"
	assert.True(t, cfg.HasAppUpload())
}

func TestUploadToken(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Pages = []PageCredential{
		{PageID: "1001", Slug: "shop", AccessToken: "tok-shop"},
		{PageID: "1002", Slug: "blog", AccessToken: "tok-blog"},
	}
	cfg.App.AppID = "1"

	t.Run("falls back to first page token", func(t *testing.T) {
		assert.Equal(t, "tok-shop", cfg.UploadToken())
		assert.True(t, cfg.HasAppUpload())
	})

	t.Run("app token wins when configured", func(t *testing.T) {
		cfg.App.AccessToken = "tok-app"
		assert.Equal(t, "tok-app", cfg.UploadToken())
	})
}
