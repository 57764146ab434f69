package render

import (
	"log"
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	fontOnce   sync.Once
	fontSource *text.FontSource
)

// fontFace returns a Go Regular face at the requested point size. The
// font ships in the binary so text renders identically on every
// machine. A nil return means text drawing silently no-ops, which
// matches how missing glyph resources degrade elsewhere.
func fontFace(size float64) text.Face {
	fontOnce.Do(func() {
		src, err := text.NewFontSource(goregular.TTF)
		if err != nil {
			log.Printf("[render] font load failed: %v", err)
			return
		}
		fontSource = src
	})
	if fontSource == nil {
		return nil
	}
	return fontSource.Face(size)
}
