package bilicopy

import (
	"io"
	"os"

	"github.com/fatih/color"
)

// Notifier shows a short, non-blocking confirmation to the user.
type Notifier interface {
	Notify(msg string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(msg string)

func (f NotifierFunc) Notify(msg string) { f(msg) }

// TerminalNotifier prints toasts as highlighted lines.
type TerminalNotifier struct {
	w io.Writer
	c *color.Color
}

// NewTerminalNotifier writes to w, or stderr when w is nil.
func NewTerminalNotifier(w io.Writer) *TerminalNotifier {
	if w == nil {
		w = os.Stderr
	}
	return &TerminalNotifier{w: w, c: color.New(color.FgHiWhite, color.BgHiBlack)}
}

func (n *TerminalNotifier) Notify(msg string) {
	n.c.Fprint(n.w, " "+msg+" ")
	io.WriteString(n.w, "\n")
}
