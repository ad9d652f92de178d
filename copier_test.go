package bilicopy

import (
	"bytes"
	"context"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// fakePage serves fixed text per selector.
type fakePage struct {
	text  map[string]string
	attrs map[string]string
	url   string
}

func (p fakePage) Text(selector string) (string, bool) {
	s, ok := p.text[selector]
	return s, ok
}

func (p fakePage) Attr(selector, name string) (string, bool) {
	s, ok := p.attrs[selector+"@"+name]
	return s, ok
}

func (p fakePage) URL() string { return p.url }

type recordingClipboard struct {
	mu     sync.Mutex
	writes []string
	err    error
}

func (c *recordingClipboard) WriteText(s string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.writes = append(c.writes, s)
	return c.err
}

type recordingNotifier struct {
	msgs []string
}

func (n *recordingNotifier) Notify(msg string) { n.msgs = append(n.msgs, msg) }

type stubCounter struct {
	count int
	err   error
	gotID string
}

func (c *stubCounter) GetCommentCount(_ context.Context, id string) (int, error) {
	c.gotID = id
	return c.count, c.err
}

const testVideoURL = "https://www.bilibili.com/video/BV1xx411c7mD/"

func newTestCopier(p Page, cc CommentCounter) (*Copier, *recordingClipboard, *recordingNotifier, *bytes.Buffer) {
	clip := &recordingClipboard{}
	n := &recordingNotifier{}
	var logs bytes.Buffer
	c := NewCopier(p, clip, n, cc).WithLogger(log.New(&logs, "", 0))
	return c, clip, n, &logs
}

func TestButtons(t *testing.T) {
	t.Parallel()
	buttons := Buttons()
	if len(buttons) != 10 {
		t.Fatalf("expected 10 buttons, got %d", len(buttons))
	}
	last := buttons[len(buttons)-3:]
	want := []Button{{ActionComment, "评论"}, {ActionDate, "日期"}, {ActionURL, "URL"}}
	for i := range want {
		if last[i] != want[i] {
			t.Errorf("button %d = %+v, want %+v", i, last[i], want[i])
		}
	}
}

func TestCopier_FollowField(t *testing.T) {
	t.Parallel()
	p := fakePage{text: map[string]string{selFollow: "关注 3.4万"}, url: testVideoURL}
	c, clip, n, _ := newTestCopier(p, nil)

	if err := c.Run(context.Background(), "follow"); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(clip.writes) != 1 || clip.writes[0] != "34000" {
		t.Errorf("clipboard writes = %v, want [34000]", clip.writes)
	}
	if len(n.msgs) != 1 || n.msgs[0] != "已复制关注：34000" {
		t.Errorf("toasts = %v", n.msgs)
	}
}

func TestCopier_MissingField(t *testing.T) {
	t.Parallel()
	c, clip, n, _ := newTestCopier(fakePage{url: testVideoURL}, nil)

	err := c.Run(context.Background(), "play")
	if !errors.Is(err, ErrFieldUnavailable) {
		t.Errorf("expected ErrFieldUnavailable, got %v", err)
	}
	if len(clip.writes) != 0 {
		t.Errorf("expected no clipboard write, got %v", clip.writes)
	}
	if len(n.msgs) != 1 || n.msgs[0] != "未能获取播放，请稍后重试！" {
		t.Errorf("toasts = %v", n.msgs)
	}
}

func TestCopier_UnknownAction(t *testing.T) {
	t.Parallel()
	c, _, n, _ := newTestCopier(fakePage{}, nil)
	err := c.Run(context.Background(), "danmaku")
	if !errors.Is(err, ErrUnknownAction) {
		t.Errorf("expected ErrUnknownAction, got %v", err)
	}
	if len(n.msgs) != 0 {
		t.Errorf("expected no toast, got %v", n.msgs)
	}
}

func TestCopier_CommentCount(t *testing.T) {
	t.Parallel()
	cc := &stubCounter{count: 57}
	c, clip, n, logs := newTestCopier(fakePage{url: testVideoURL}, cc)

	if err := c.Run(context.Background(), ActionComment); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if cc.gotID != "BV1xx411c7mD" {
		t.Errorf("expected id from url, got %q", cc.gotID)
	}
	if len(clip.writes) != 1 || clip.writes[0] != "57" {
		t.Errorf("clipboard writes = %v", clip.writes)
	}
	if len(n.msgs) != 1 || n.msgs[0] != "已复制评论数：57" {
		t.Errorf("toasts = %v", n.msgs)
	}
	if !strings.Contains(logs.String(), "评论总数: 57") {
		t.Errorf("expected count in log, got %q", logs.String())
	}
}

func TestCopier_CommentCountFailureLogsOnly(t *testing.T) {
	t.Parallel()
	cc := &stubCounter{err: ErrAPI}
	c, clip, n, logs := newTestCopier(fakePage{url: testVideoURL}, cc)

	err := c.CopyCommentCount(context.Background())
	if !errors.Is(err, ErrAPI) {
		t.Errorf("expected ErrAPI, got %v", err)
	}
	if len(clip.writes) != 0 || len(n.msgs) != 0 {
		t.Errorf("expected no clipboard write and no toast, got %v / %v", clip.writes, n.msgs)
	}
	if !strings.Contains(logs.String(), "获取评论数失败") {
		t.Errorf("expected diagnostic log, got %q", logs.String())
	}
}

func TestCopier_CommentCountNoCounter(t *testing.T) {
	t.Parallel()
	c, _, n, logs := newTestCopier(fakePage{url: testVideoURL}, nil)
	if err := c.CopyCommentCount(context.Background()); err == nil {
		t.Fatal("expected error without a counter")
	}
	if len(n.msgs) != 0 || logs.Len() == 0 {
		t.Errorf("expected log only, got toasts %v log %q", n.msgs, logs.String())
	}
}

func TestCopier_PublishDate(t *testing.T) {
	t.Parallel()
	p := fakePage{text: map[string]string{selPubdate: "2024-03-07 18:30:00"}}
	c, clip, n, _ := newTestCopier(p, nil)
	if err := c.Run(context.Background(), ActionDate); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if clip.writes[0] != "2024.03.07" || n.msgs[0] != "已复制发布日期：2024.03.07" {
		t.Errorf("got %v / %v", clip.writes, n.msgs)
	}

	c, clip, n, _ = newTestCopier(fakePage{}, nil)
	if err := c.CopyPublishDate(); !errors.Is(err, ErrFieldUnavailable) {
		t.Errorf("expected ErrFieldUnavailable, got %v", err)
	}
	if len(clip.writes) != 0 || n.msgs[0] != "未能获取发布日期，可能页面加载较慢" {
		t.Errorf("got %v / %v", clip.writes, n.msgs)
	}
}

func TestCopier_URL(t *testing.T) {
	t.Parallel()
	c, clip, n, _ := newTestCopier(fakePage{url: testVideoURL}, nil)
	if err := c.Run(context.Background(), ActionURL); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if clip.writes[0] != testVideoURL || n.msgs[0] != "已复制视频URL："+testVideoURL {
		t.Errorf("got %v / %v", clip.writes, n.msgs)
	}
}

func TestCopier_ClipboardErrorIsLogged(t *testing.T) {
	t.Parallel()
	clip := &recordingClipboard{err: errors.New("no xclip")}
	n := &recordingNotifier{}
	var logs bytes.Buffer
	c := NewCopier(fakePage{url: testVideoURL}, clip, n, nil).WithLogger(log.New(&logs, "", 0))

	c.CopyURL()
	if !strings.Contains(logs.String(), "no xclip") {
		t.Errorf("expected clipboard error in log, got %q", logs.String())
	}
	if len(n.msgs) != 1 {
		t.Errorf("toast should still show, got %v", n.msgs)
	}
}

// End to end: the reply API response drives the clipboard and toast.

func TestCopier_CommentCountFromAPI(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		body      string
		wantWrite bool
	}{
		{"success", `{"code":0,"data":{"count":57}}`, true},
		{"api error", `{"code":-400}`, false},
		{"malformed", `<html>`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			s := newMockScraper(srv.URL)
			c, clip, n, logs := newTestCopier(fakePage{url: testVideoURL}, s)
			err := c.CopyCommentCount(context.Background())

			if tt.wantWrite {
				if err != nil {
					t.Fatalf("CopyCommentCount: %v", err)
				}
				if len(clip.writes) != 1 || clip.writes[0] != "57" {
					t.Errorf("clipboard writes = %v", clip.writes)
				}
				if len(n.msgs) != 1 || !strings.Contains(n.msgs[0], "57") {
					t.Errorf("toasts = %v", n.msgs)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if len(clip.writes) != 0 || len(n.msgs) != 0 {
				t.Errorf("expected no write and no toast, got %v / %v", clip.writes, n.msgs)
			}
			if !strings.Contains(logs.String(), "获取评论数失败") {
				t.Errorf("expected diagnostic log, got %q", logs.String())
			}
		})
	}
}

func TestTerminalNotifier(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	NewTerminalNotifier(&buf).Notify("已复制点赞：88000")
	if !strings.Contains(buf.String(), "已复制点赞：88000") {
		t.Errorf("expected message in output, got %q", buf.String())
	}
	if !strings.HasSuffix(buf.String(), "\n") {
		t.Error("expected trailing newline")
	}
}

func TestNotifierFunc(t *testing.T) {
	t.Parallel()
	var got string
	NotifierFunc(func(msg string) { got = msg }).Notify("hi")
	if got != "hi" {
		t.Errorf("got %q", got)
	}
}
