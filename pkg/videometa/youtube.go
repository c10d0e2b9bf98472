package videometa

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// Metadata is the result of a video lookup. Degraded is set when the
// external API could not be consulted; the zero values are still valid.
type Metadata struct {
	VideoID           string `json:"video_id"`
	Title             string `json:"title"`
	DurationSeconds   int    `json:"duration_seconds"`
	DurationFormatted string `json:"duration_formatted"`
	Degraded          bool   `json:"degraded"`
}

// Client looks up video metadata from the YouTube Data API. A client with an
// empty API key still works: every lookup returns a degraded result.
type Client struct {
	apiKey string
	logger *logrus.Logger
}

func NewClient(apiKey string, logger *logrus.Logger) *Client {
	return &Client{apiKey: apiKey, logger: logger}
}

var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?(?:.*&)?v=)([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`(?:youtu\.be/)([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`(?:youtube\.com/embed/)([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`(?:youtube\.com/shorts/)([A-Za-z0-9_-]{11})`),
}

// ExtractVideoID pulls the 11-character video id out of a YouTube URL.
// Returns an empty string when the URL is not a recognizable video link.
func ExtractVideoID(url string) string {
	for _, re := range videoIDPatterns {
		if m := re.FindStringSubmatch(url); m != nil {
			return m[1]
		}
	}
	return ""
}

// Lookup resolves title and duration for the video behind url. A URL that
// cannot be parsed yields nil. Any API failure (missing key, HTTP error,
// empty response) is logged and yields a degraded result instead of an
// error.
func (c *Client) Lookup(ctx context.Context, url string) *Metadata {
	id := ExtractVideoID(url)
	if id == "" {
		return nil
	}
	meta := &Metadata{VideoID: id}

	if c.apiKey == "" {
		meta.Degraded = true
		return meta
	}

	svc, err := youtube.NewService(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		c.warn("youtube service init failed", err, id)
		meta.Degraded = true
		return meta
	}
	resp, err := svc.Videos.List([]string{"snippet", "contentDetails"}).Id(id).Context(ctx).Do()
	if err != nil {
		c.warn("youtube lookup failed", err, id)
		meta.Degraded = true
		return meta
	}
	if len(resp.Items) == 0 {
		c.warn("youtube returned no items", nil, id)
		meta.Degraded = true
		return meta
	}

	item := resp.Items[0]
	meta.Title = item.Snippet.Title
	meta.DurationSeconds = parseISO8601Duration(item.ContentDetails.Duration)
	meta.DurationFormatted = formatDuration(meta.DurationSeconds)
	return meta
}

func (c *Client) warn(msg string, err error, videoID string) {
	if c.logger == nil {
		return
	}
	entry := c.logger.WithField("video_id", videoID)
	if err != nil {
		entry = entry.WithError(err)
	}
	entry.Warn(msg)
}

var iso8601Duration = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// parseISO8601Duration converts the API's PT#H#M#S form into seconds.
// Malformed input yields zero.
func parseISO8601Duration(s string) int {
	m := iso8601Duration.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	h, _ := strconv.Atoi(m[1])
	min, _ := strconv.Atoi(m[2])
	sec, _ := strconv.Atoi(m[3])
	return h*3600 + min*60 + sec
}

func formatDuration(seconds int) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
