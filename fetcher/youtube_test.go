package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ewintr.nl/learnpath/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

func newTestYoutube(t *testing.T, handler http.HandlerFunc) *Youtube {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	svc, err := youtube.NewService(context.Background(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	return NewYoutube(svc, 0)
}

func TestYoutubeSearch(t *testing.T) {
	var query, maxResults string
	yt := newTestYoutube(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/search"):
			query = r.URL.Query().Get("q")
			maxResults = r.URL.Query().Get("maxResults")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"items": []map[string]any{
					{"id": map[string]string{"kind": "youtube#video", "videoId": "v1"}, "snippet": map[string]string{"title": "Intro", "channelTitle": "Chan"}},
					{"id": map[string]string{"kind": "youtube#channel", "channelId": "c1"}},
					{"id": map[string]string{"kind": "youtube#video", "videoId": "v2"}, "snippet": map[string]string{"title": "Python &amp; Django: Beginner&#39;s Guide", "channelTitle": "Tom &amp; Jerry"}},
				},
			})
		case strings.HasSuffix(r.URL.Path, "/videos"):
			_ = json.NewEncoder(w).Encode(map[string]any{
				"items": []map[string]any{
					{"id": "v1", "contentDetails": map[string]string{"duration": "PT12M30S"}},
					{"id": "v2", "contentDetails": map[string]string{"duration": "P0D"}},
				},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	results, err := yt.Search(context.Background(), "go basics introduction beginner", 7)
	require.NoError(t, err)
	assert.Equal(t, "go basics introduction beginner", query)
	assert.Equal(t, "7", maxResults)
	require.Len(t, results, 2)

	assert.Equal(t, model.YoutubeVideoID("v1"), results[0].ID)
	assert.Equal(t, "Intro", results[0].Title)
	assert.Equal(t, "Chan", results[0].Channel)
	assert.Equal(t, "https://www.youtube.com/watch?v=v1", results[0].URL)
	require.NotNil(t, results[0].Duration)
	assert.Equal(t, 12*time.Minute+30*time.Second, *results[0].Duration)

	assert.Equal(t, "Python & Django: Beginner's Guide", results[1].Title)
	assert.Equal(t, "Tom & Jerry", results[1].Channel)
	assert.Nil(t, results[1].Duration, "zero length videos have no known duration")
}

func TestYoutubeSearchFailure(t *testing.T) {
	yt := newTestYoutube(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"quota exceeded"}}`))
	})

	_, err := yt.Search(context.Background(), "go", 5)
	assert.True(t, errors.Is(err, model.ErrSearchUnavailable), "got %v", err)
}

func TestParseISODuration(t *testing.T) {
	for _, tc := range []struct {
		in      string
		exp     time.Duration
		invalid bool
	}{
		{in: "PT45S", exp: 45 * time.Second},
		{in: "PT1H2M3S", exp: time.Hour + 2*time.Minute + 3*time.Second},
		{in: "PT10M", exp: 10 * time.Minute},
		{in: "P1DT2H", exp: 26 * time.Hour},
		{in: "P0D", exp: 0},
		{in: "", invalid: true},
		{in: "PT", invalid: true},
		{in: "10:00", invalid: true},
	} {
		t.Run(tc.in, func(t *testing.T) {
			d, err := ParseISODuration(tc.in)
			if tc.invalid {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.exp, d)
		})
	}
}
