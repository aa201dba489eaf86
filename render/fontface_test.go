package render

import (
	"strings"
	"testing"

	"github.com/tsawler/vellum/objstore"
	"github.com/tsawler/vellum/opstream"
)

// TestEmbedFontStyle tests @font-face emission for a font with file data
func TestEmbedFontStyle(t *testing.T) {
	font := &opstream.Font{
		LoadedName: "g_f7",
		Data:       []byte("not really a font"),
		MIMEType:   "font/ttf",
	}
	common := objstore.New()
	common.Resolve("g_f7", font)

	list := &opstream.OperatorList{}
	list.Push(opstream.OpBeginText)
	list.Push(opstream.OpSetFont, "g_f7", 10.0)
	list.Push(opstream.OpSetFont, "g_f7", 12.0) // second use must not re-embed

	r := New(common, nil, Config{EmbedFonts: true, IDs: &IDAllocator{}})
	root := renderOps(t, r, testViewport(100, 100), list)

	style := findOne(t, root, "style")
	if style.Parent().Tag != "defs" {
		t.Error("style not attached to defs")
	}
	css := style.Text()
	if !strings.Contains(css, `font-family: "g_f7"`) {
		t.Errorf("missing font-family rule: %s", css)
	}
	if !strings.Contains(css, "src: url(data:font/ttf;base64,") {
		t.Errorf("missing data URL source: %s", css)
	}
	if strings.Count(css, "@font-face") != 1 {
		t.Errorf("font embedded more than once: %s", css)
	}
}

// TestEmbedFontSkipsMissingFile tests that fonts without files embed
// nothing
func TestEmbedFontSkipsMissingFile(t *testing.T) {
	font := &opstream.Font{LoadedName: "g_f8", MissingFile: true}
	common := objstore.New()
	common.Resolve("g_f8", font)

	list := &opstream.OperatorList{}
	list.Push(opstream.OpSetFont, "g_f8", 10.0)

	r := New(common, nil, Config{EmbedFonts: true, IDs: &IDAllocator{}})
	root := renderOps(t, r, testViewport(100, 100), list)

	if len(findAll(root, "style")) != 0 {
		t.Error("unexpected style element for font without file data")
	}
}

// TestSniffFontMIME tests container magic detection
func TestSniffFontMIME(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"truetype", []byte{0x00, 0x01, 0x00, 0x00, 0x00}, "font/ttf"},
		{"opentype", []byte("OTTOxxxx"), "font/otf"},
		{"woff", []byte("wOFFxxxx"), "font/woff"},
		{"woff2", []byte("wOF2xxxx"), "font/woff2"},
		{"tiny", []byte{1}, "font/ttf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sniffFontMIME(tt.data); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
