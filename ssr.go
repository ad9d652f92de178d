package bilicopy

import (
	"bytes"
	"encoding/json"
	"fmt"
)

var (
	ssrStateOpen  = []byte(`window.__INITIAL_STATE__=`)
	ssrStateClose = []byte(`;(function(`)
	ssrScriptEnd  = []byte(`</script>`)
)

// extractInitialState finds and parses the window.__INITIAL_STATE__ object
// embedded in a video page.
func extractInitialState(htmlBody []byte) (initialState, error) {
	start := bytes.Index(htmlBody, ssrStateOpen)
	if start == -1 {
		return initialState{}, fmt.Errorf("%w: initial state not found", ErrInvalidResponse)
	}
	start += len(ssrStateOpen)

	rest := htmlBody[start:]
	end := bytes.Index(rest, ssrStateClose)
	if end == -1 {
		end = bytes.Index(rest, ssrScriptEnd)
	}
	if end == -1 {
		return initialState{}, fmt.Errorf("%w: initial state not terminated", ErrInvalidResponse)
	}

	jsonBytes := bytes.TrimSuffix(bytes.TrimSpace(rest[:end]), []byte(";"))

	var state initialState
	if err := json.Unmarshal(jsonBytes, &state); err != nil {
		return initialState{}, fmt.Errorf("unmarshal initial state: %w", err)
	}
	return state, nil
}

// extractVideoFromSSR pulls the Video from parsed SSR state.
func extractVideoFromSSR(state initialState) (Video, error) {
	if state.VideoData.BVID == "" {
		return Video{}, fmt.Errorf("%w: video data missing in ssr response", ErrNotFound)
	}
	return parseVideo(state), nil
}
