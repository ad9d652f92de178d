package bilicopy

import (
	"context"
	"fmt"
	"time"
)

// GetVideo fetches a video page and reads its stats from the embedded SSR
// state. Pure HTTP, no browser required.
func (s *Scraper) GetVideo(ctx context.Context, id string) (Video, error) {
	if id == "" {
		return Video{}, fmt.Errorf("get video: %w", ErrNoVideoID)
	}

	totalStart := time.Now()
	page, err := s.FetchPage(ctx, s.VideoURL(id))
	if err != nil {
		return Video{}, fmt.Errorf("get video %q: %w", id, err)
	}

	parseStart := time.Now()
	state, err := extractInitialState(page.Body())
	if err != nil {
		return Video{}, fmt.Errorf("parse video page %q: %w", id, err)
	}

	video, err := extractVideoFromSSR(state)
	if err != nil {
		return Video{}, fmt.Errorf("extract video %q: %w", id, err)
	}

	perfLog("GetVideo: id=%s parse=%v total=%v", id, time.Since(parseStart), time.Since(totalStart))
	return video, nil
}
