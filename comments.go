package bilicopy

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// replyTypeVideo is the comment-area type code for ordinary videos.
const replyTypeVideo = 1

// CommentCounter looks up the total number of comments on a video.
type CommentCounter interface {
	GetCommentCount(ctx context.Context, id string) (int, error)
}

// GetCommentCount asks the reply API for the comment total of a video.
// A non-zero API code is returned as ErrAPI. The request is not retried.
func (s *Scraper) GetCommentCount(ctx context.Context, id string) (int, error) {
	if id == "" {
		return 0, fmt.Errorf("get comment count: %w", ErrNoVideoID)
	}

	totalStart := time.Now()
	rawURL := fmt.Sprintf("%s/x/v2/reply/count?type=%d&oid=%s",
		s.apiBaseURL, replyTypeVideo, url.QueryEscape(id))

	s.waitForAPI()

	resp, err := s.doRequest(ctx, http.MethodGet, rawURL, "application/json, text/plain, */*")
	if err != nil {
		return 0, fmt.Errorf("get comment count %q: %w", id, err)
	}
	defer resp.Body.Close()

	var result replyCountResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("decode comment count %q: %w: %v", id, ErrInvalidResponse, err)
	}
	if result.Code != 0 {
		return 0, fmt.Errorf("get comment count %q: %w %d: %s", id, ErrAPI, result.Code, result.Message)
	}

	perfLog("GetCommentCount: id=%s count=%d total=%v", id, result.Data.Count, time.Since(totalStart))
	return result.Data.Count, nil
}
