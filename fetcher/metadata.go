package fetcher

import (
	"context"
	"time"

	"ewintr.nl/learnpath/model"
)

// SearchResult is a single candidate video. Duration is nil when the search
// backend could not tell how long the video is.
type SearchResult struct {
	ID       model.YoutubeVideoID
	Title    string
	URL      string
	Channel  string
	Duration *time.Duration
}

type VideoSearcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]SearchResult, error)
}

type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
