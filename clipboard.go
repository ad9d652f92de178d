package bilicopy

import "github.com/atotto/clipboard"

// Clipboard receives copied values.
type Clipboard interface {
	WriteText(s string) error
}

// SystemClipboard writes to the OS clipboard (xclip/xsel/wl-copy on Linux,
// pbcopy on macOS, the Win32 API on Windows).
type SystemClipboard struct{}

func (SystemClipboard) WriteText(s string) error {
	return clipboard.WriteAll(s)
}
