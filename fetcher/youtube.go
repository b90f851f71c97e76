package fetcher

import (
	"context"
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"
	"time"

	"ewintr.nl/learnpath/model"
	"golang.org/x/time/rate"
	"google.golang.org/api/youtube/v3"
)

// search.list refuses anything above this
const maxSearchResults = 50

var isoDurationRe = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

type Youtube struct {
	Client  *youtube.Service
	limiter *rate.Limiter
}

// NewYoutube wraps the service. requestsPerSecond <= 0 disables throttling.
func NewYoutube(client *youtube.Service, requestsPerSecond float64) *Youtube {
	limit := rate.Inf
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
	}
	return &Youtube{
		Client:  client,
		limiter: rate.NewLimiter(limit, 1),
	}
}

func (y *Youtube) Search(ctx context.Context, query string, maxResults int) ([]SearchResult, error) {
	if maxResults <= 0 {
		return []SearchResult{}, nil
	}
	if maxResults > maxSearchResults {
		maxResults = maxSearchResults
	}

	if err := y.limiter.Wait(ctx); err != nil {
		return []SearchResult{}, fmt.Errorf("%w: %v", model.ErrSearchUnavailable, err)
	}
	response, err := y.Client.Search.
		List([]string{"snippet"}).
		Q(query).
		Type("video").
		Order("relevance").
		MaxResults(int64(maxResults)).
		Context(ctx).
		Do()
	if err != nil {
		return []SearchResult{}, fmt.Errorf("%w: failed to search %q: %v", model.ErrSearchUnavailable, query, err)
	}

	results := make([]SearchResult, 0, len(response.Items))
	ids := make([]model.YoutubeVideoID, 0, len(response.Items))
	for _, item := range response.Items {
		if item.Id == nil || item.Id.VideoId == "" {
			continue
		}
		id := model.YoutubeVideoID(item.Id.VideoId)
		res := SearchResult{
			ID:  id,
			URL: id.URL(),
		}
		if item.Snippet != nil {
			// snippets come back html escaped
			res.Title = html.UnescapeString(item.Snippet.Title)
			res.Channel = html.UnescapeString(item.Snippet.ChannelTitle)
		}
		results = append(results, res)
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return results, nil
	}

	durations, err := y.FetchDurations(ctx, ids)
	if err != nil {
		// the results are still usable, the catalog fills in default durations
		return results, nil
	}
	for i := range results {
		if d, ok := durations[results[i].ID]; ok {
			d := d
			results[i].Duration = &d
		}
	}

	return results, nil
}

// FetchDurations looks up the length of each video. Videos without a usable
// duration (live streams, premieres) are left out of the map.
func (y *Youtube) FetchDurations(ctx context.Context, ytIDs []model.YoutubeVideoID) (map[model.YoutubeVideoID]time.Duration, error) {
	strIDs := make([]string, len(ytIDs))
	for i, id := range ytIDs {
		strIDs[i] = string(id)
	}

	if err := y.limiter.Wait(ctx); err != nil {
		return map[model.YoutubeVideoID]time.Duration{}, err
	}
	response, err := y.Client.Videos.
		List([]string{"contentDetails"}).
		Id(strings.Join(strIDs, ",")).
		Context(ctx).
		Do()
	if err != nil {
		return map[model.YoutubeVideoID]time.Duration{}, err
	}

	durations := make(map[model.YoutubeVideoID]time.Duration, len(response.Items))
	for _, item := range response.Items {
		if item.ContentDetails == nil {
			continue
		}
		d, err := ParseISODuration(item.ContentDetails.Duration)
		if err != nil || d <= 0 {
			continue
		}
		durations[model.YoutubeVideoID(item.Id)] = d
	}

	return durations, nil
}

// ParseISODuration parses the subset of ISO 8601 durations the YouTube API
// returns, e.g. PT1H2M3S or P1DT2H.
func ParseISODuration(s string) (time.Duration, error) {
	m := isoDurationRe.FindStringSubmatch(s)
	if m == nil || s == "P" || s == "PT" {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	units := []time.Duration{24 * time.Hour, time.Hour, time.Minute, time.Second}
	var total time.Duration
	for i, unit := range units {
		if m[i+1] == "" {
			continue
		}
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q: %w", s, err)
		}
		total += time.Duration(n) * unit
	}

	return total, nil
}
