package text

import (
	"github.com/gogpu/formgrid"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// variant is the font file selector: only bold and italic pick a file,
// underline and strikeout are decorations.
type variant uint8

func variantOf(s formgrid.FontStyle) variant {
	return variant(s & (formgrid.FontBold | formgrid.FontItalic))
}

// ttf returns the Go font file for v.
func (v variant) ttf() []byte {
	switch formgrid.FontStyle(v) {
	case formgrid.FontBold:
		return gobold.TTF
	case formgrid.FontItalic:
		return goitalic.TTF
	case formgrid.FontBold | formgrid.FontItalic:
		return gobolditalic.TTF
	default:
		return goregular.TTF
	}
}
