package videometa

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractVideoID(t *testing.T) {
	cases := map[string]string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ":           "dQw4w9WgXcQ",
		"https://www.youtube.com/watch?list=PL123&v=dQw4w9WgXcQ": "dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ":                          "dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ?t=42":                     "dQw4w9WgXcQ",
		"https://www.youtube.com/embed/dQw4w9WgXcQ":             "dQw4w9WgXcQ",
		"https://www.youtube.com/shorts/dQw4w9WgXcQ":            "dQw4w9WgXcQ",
		"https://example.com/video.mp4":                         "",
		"not a url":                                             "",
		"":                                                      "",
	}
	for url, want := range cases {
		assert.Equal(t, want, ExtractVideoID(url), "url=%q", url)
	}
}

func TestLookupUnparseableURL(t *testing.T) {
	c := NewClient("", nil)
	assert.Nil(t, c.Lookup(context.Background(), "https://example.com/not-youtube"))
}

func TestLookupWithoutAPIKeyDegrades(t *testing.T) {
	c := NewClient("", nil)
	meta := c.Lookup(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	require.NotNil(t, meta)
	assert.True(t, meta.Degraded)
	assert.Equal(t, "dQw4w9WgXcQ", meta.VideoID)
	assert.Zero(t, meta.DurationSeconds)
}

func TestParseISO8601Duration(t *testing.T) {
	cases := map[string]int{
		"PT4M13S":    253,
		"PT1H2M3S":   3723,
		"PT2H":       7200,
		"PT45S":      45,
		"PT10M":      600,
		"P1DT1H":     0, // day component not produced by the videos API
		"garbage":    0,
		"":           0,
	}
	for in, want := range cases {
		assert.Equal(t, want, parseISO8601Duration(in), "duration=%q", in)
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "4:13", formatDuration(253))
	assert.Equal(t, "1:02:03", formatDuration(3723))
	assert.Equal(t, "0:45", formatDuration(45))
	assert.Equal(t, "0:00", formatDuration(0))
}
