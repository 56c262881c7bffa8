package embedcode

import (
	"errors"

	"github.com/atotto/clipboard"
)

// ErrClipboardUnsupported 当前环境没有可用的剪贴板工具
var ErrClipboardUnsupported = errors.New("clipboard is not supported on this system")

// SystemClipboard 基于 xclip/xsel/pbcopy 等系统工具的剪贴板
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnsupported
	}
	return clipboard.WriteAll(text)
}

// ClipboardFunc 函数适配为 Clipboard
type ClipboardFunc func(text string) error

func (f ClipboardFunc) WriteAll(text string) error {
	return f(text)
}
