package bilicopy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
)

// Keys of the composite actions that follow the plain fields.
const (
	ActionComment = "comment"
	ActionDate    = "date"
	ActionURL     = "url"
)

// Button is one entry of the copy button stack.
type Button struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Buttons lists every action in display order: the plain fields, then
// comment count, publish date and URL.
func Buttons() []Button {
	fields := Fields()
	buttons := make([]Button, 0, len(fields)+3)
	for _, f := range fields {
		buttons = append(buttons, Button{Key: f.Key, Label: f.Label})
	}
	return append(buttons,
		Button{Key: ActionComment, Label: "评论"},
		Button{Key: ActionDate, Label: "日期"},
		Button{Key: ActionURL, Label: "URL"},
	)
}

// Copier runs button actions against one page: extract, copy, toast.
type Copier struct {
	page     Page
	clip     Clipboard
	notify   Notifier
	comments CommentCounter
	logger   *log.Logger
}

// NewCopier binds the collaborators of a page. comments may be nil, in which
// case the comment action only logs.
func NewCopier(page Page, clip Clipboard, notify Notifier, comments CommentCounter) *Copier {
	return &Copier{
		page:     page,
		clip:     clip,
		notify:   notify,
		comments: comments,
		logger:   log.New(io.Discard, "", 0),
	}
}

// WithLogger sets the diagnostic logger used for request failures.
func (c *Copier) WithLogger(l *log.Logger) *Copier {
	if l != nil {
		c.logger = l
	}
	return c
}

// Run performs the action bound to key.
func (c *Copier) Run(ctx context.Context, key string) error {
	switch key {
	case ActionComment:
		return c.CopyCommentCount(ctx)
	case ActionDate:
		return c.CopyPublishDate()
	case ActionURL:
		c.CopyURL()
		return nil
	}
	f, ok := FieldByKey(key)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAction, key)
	}
	return c.CopyField(f)
}

// CopyField copies one plain field, or tells the user it is unavailable.
func (c *Copier) CopyField(f Field) error {
	value, ok := f.Extract(c.page)
	if !ok {
		c.notify.Notify(fmt.Sprintf("未能获取%s，请稍后重试！", f.Label))
		return fmt.Errorf("%w: %s", ErrFieldUnavailable, f.Key)
	}
	c.write(value)
	c.notify.Notify(fmt.Sprintf("已复制%s：%s", f.Label, value))
	return nil
}

// CopyCommentCount fetches the comment total and copies it. Failures are
// logged only; the user gets no toast for them.
func (c *Copier) CopyCommentCount(ctx context.Context) error {
	if c.comments == nil {
		c.logger.Printf("获取评论数失败: no comment counter configured")
		return errors.New("copy comment count: no comment counter")
	}
	count, err := c.comments.GetCommentCount(ctx, VideoID(c.page.URL()))
	if err != nil {
		c.logger.Printf("获取评论数失败: %v", err)
		return err
	}
	c.logger.Printf("评论总数: %d", count)
	c.write(fmt.Sprintf("%d", count))
	c.notify.Notify(fmt.Sprintf("已复制评论数：%d", count))
	return nil
}

// CopyPublishDate copies the publish date as YYYY.MM.DD.
func (c *Copier) CopyPublishDate() error {
	date, ok := PublishDate(c.page)
	if !ok {
		c.notify.Notify("未能获取发布日期，可能页面加载较慢")
		return fmt.Errorf("%w: %s", ErrFieldUnavailable, ActionDate)
	}
	c.write(date)
	c.notify.Notify(fmt.Sprintf("已复制发布日期：%s", date))
	return nil
}

// CopyURL copies the page URL.
func (c *Copier) CopyURL() {
	u := c.page.URL()
	c.write(u)
	c.notify.Notify(fmt.Sprintf("已复制视频URL：%s", u))
}

func (c *Copier) write(s string) {
	if err := c.clip.WriteText(s); err != nil {
		c.logger.Printf("clipboard write: %v", err)
	}
}
