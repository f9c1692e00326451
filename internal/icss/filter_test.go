package icss

import (
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultFilter(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{url: "./img.png", want: true},
		{url: "img.png", want: true},
		{url: "../fonts/a.woff2", want: true},
		{url: "/abs/path.png", want: true},
		{url: "~module/a.png", want: true},
		{url: "__url_0", want: true},
		{url: "http://path", want: false},
		{url: "https://cdn.example.com/a.png", want: false},
		{url: "custom_scheme://x", want: false},
		{url: "//cdn.example.com/a.png", want: false},
		{url: "#hash", want: false},
		{url: "data:image/png;base64,AAAA", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultFilter(tt.url))
		})
	}
}

func TestAllowAll(t *testing.T) {
	assert.True(t, AllowAll("https://path"))
	assert.True(t, AllowAll("data:x"))
}

func TestPatternFilter(t *testing.T) {
	filter, err := PatternFilter([]string{"**/*.png", "**/*.svg"}, []string{"vendor/**"})
	require.NoError(t, err)

	assert.True(t, filter("./img.png"))
	assert.True(t, filter("icons/a.svg"))
	assert.False(t, filter("a.woff2"))
	assert.False(t, filter("vendor/x.png"))
}

func TestPatternFilter_ExcludeOnly(t *testing.T) {
	filter, err := PatternFilter(nil, []string{"**/*.gif"})
	require.NoError(t, err)

	assert.True(t, filter("a.png"))
	assert.True(t, filter("https://x/a.png"))
	assert.False(t, filter("a.gif"))
	assert.False(t, filter("img/a.gif"))
}

func TestPatternFilter_InvalidPattern(t *testing.T) {
	_, err := PatternFilter([]string{"[a-"}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, doublestar.ErrBadPattern)
}

func TestNewFilter(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		filter, err := NewFilter(FilterConfig{})
		require.NoError(t, err)
		assert.Nil(t, filter)
	})

	t.Run("all wins over patterns", func(t *testing.T) {
		filter, err := NewFilter(FilterConfig{All: true, Exclude: []string{"**"}})
		require.NoError(t, err)
		assert.True(t, filter("https://path"))
	})

	t.Run("patterns", func(t *testing.T) {
		filter, err := NewFilter(FilterConfig{Include: []string{"*.png"}})
		require.NoError(t, err)
		assert.True(t, filter("a.png"))
		assert.False(t, filter("a.gif"))
	})
}
