package render

import (
	"bytes"
	"encoding/base64"

	"github.com/golang/freetype/truetype"
	"go.uber.org/zap"
	"golang.org/x/image/font/sfnt"

	"github.com/tsawler/vellum/opstream"
	"github.com/tsawler/vellum/svgdom"
)

// addFontStyle embeds a @font-face rule for the font into a <style> element
// under defs, keyed by the font's loaded name. Font data that fails to
// parse is still embedded; the UA may yet accept it.
func (r *Renderer) addFontStyle(font *opstream.Font) {
	if len(font.Data) == 0 {
		r.log.Warn("no font data available, skipping @font-face",
			zap.String("font", font.LoadedName))
		return
	}

	if r.cssStyle == nil {
		r.cssStyle = svgdom.New("style")
		r.cssStyle.SetAttr("type", "text/css")
		r.defs.Append(r.cssStyle)
	}

	mimetype := font.MIMEType
	if mimetype == "" {
		mimetype = sniffFontMIME(font.Data)
	}
	if family, err := fontFamilyName(font.Data); err != nil {
		r.log.Warn("embedded font data did not parse",
			zap.String("font", font.LoadedName), zap.Error(err))
	} else if family != "" {
		r.log.Debug("embedding font",
			zap.String("font", font.LoadedName), zap.String("family", family))
	}

	url := "data:" + mimetype + ";base64," + base64.StdEncoding.EncodeToString(font.Data)
	r.cssStyle.AppendText(
		"@font-face { font-family: \"" + font.LoadedName + "\"; src: url(" + url + "); }\n")
}

// sniffFontMIME picks a MIME type from the font container's magic number.
func sniffFontMIME(data []byte) string {
	if len(data) < 4 {
		return "font/ttf"
	}
	switch {
	case bytes.Equal(data[:4], []byte("OTTO")):
		return "font/otf"
	case bytes.Equal(data[:4], []byte("wOFF")):
		return "font/woff"
	case bytes.Equal(data[:4], []byte("wOF2")):
		return "font/woff2"
	default:
		return "font/ttf"
	}
}

// fontFamilyName parses the font file and reads its family name, trying the
// TrueType parser first and the wider sfnt parser (which also accepts
// CFF-flavored OpenType) second. It exists for diagnostics: embedding does
// not depend on the data parsing.
func fontFamilyName(data []byte) (string, error) {
	if f, err := truetype.Parse(data); err == nil {
		return f.Name(truetype.NameIDFontFamily), nil
	}

	f, err := sfnt.Parse(data)
	if err != nil {
		return "", err
	}
	name, err := f.Name(nil, sfnt.NameIDFamily)
	if err != nil {
		// Parsed but unnamed; embedding proceeds regardless.
		return "", nil
	}
	return name, nil
}
