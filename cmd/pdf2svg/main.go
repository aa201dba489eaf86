// Command pdf2svg converts a document's pre-parsed operator streams into
// one SVG file per page.
//
// PDF parsing happens upstream: for an input named document.pdf the command
// reads the operator interchange file document.pdf.ops.json produced by the
// content-stream parser (a path ending in .json is read directly). Output
// files are written as <basename>-<page>.svg in the output directory.
//
// Usage:
//
//	pdf2svg [-out dir] [-pages 1,3,5] [-embed-fonts] [-html] [file.pdf]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/tsawler/vellum"
	"github.com/tsawler/vellum/objstore"
	"github.com/tsawler/vellum/opstream"
)

func main() {
	outDir := flag.String("out", "svgs", "output directory")
	pagesFlag := flag.String("pages", "", "comma-separated 1-indexed pages to render (default all)")
	embedFonts := flag.Bool("embed-fonts", false, "embed @font-face rules for fonts with file data")
	asHTML := flag.Bool("html", false, "additionally write an HTML preview embedding every page")
	flag.Parse()

	path := "./test3.pdf"
	if flag.NArg() > 0 {
		path = flag.Arg(0)
	}

	log, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(path, *outDir, *pagesFlag, *embedFonts, *asHTML, log); err != nil {
		log.Fatal("conversion failed", zap.Error(err))
	}
}

func run(path, outDir, pagesFlag string, embedFonts, asHTML bool, log *zap.Logger) error {
	doc, err := opstream.ReadDocumentFile(interchangePath(path))
	if err != nil {
		return err
	}

	selected, err := parsePages(pagesFlag, len(doc.Pages))
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	ctx := context.Background()

	var rendered []pageSVG
	for _, pageNum := range selected {
		page := doc.Pages[pageNum-1]
		common := objstore.FromMap(page.CommonObjects)
		pageObjs := objstore.FromMap(page.Objects)

		svg, err := vellum.RenderPage(ctx, page.List, page.Viewport, common, pageObjs,
			vellum.WithLogger(log),
			vellum.WithEmbedFonts(embedFonts))
		if err != nil {
			// One broken page does not abort the document.
			log.Error("page failed", zap.Int("page", pageNum), zap.Error(err))
			continue
		}

		name := fmt.Sprintf("%s-%d.svg", base, pageNum)
		outPath := filepath.Join(outDir, name)
		if err := writeSVG(outPath, svg.String()); err != nil {
			return err
		}
		log.Info("wrote page", zap.Int("page", pageNum), zap.String("file", outPath))
		rendered = append(rendered, pageSVG{num: pageNum, markup: svg.String()})
	}

	if asHTML {
		htmlPath := filepath.Join(outDir, base+".html")
		if err := writePreview(htmlPath, base, rendered); err != nil {
			return err
		}
		log.Info("wrote preview", zap.String("file", htmlPath))
	}
	return nil
}

// interchangePath maps the positional document path to its operator
// interchange file.
func interchangePath(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return path
	}
	return path + ".ops.json"
}

// parsePages expands the -pages flag into a validated 1-indexed page list.
// An empty flag selects every page.
func parsePages(spec string, total int) ([]int, error) {
	if spec == "" {
		all := make([]int, total)
		for i := range all {
			all[i] = i + 1
		}
		return all, nil
	}

	var pages []int
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid page %q", part)
		}
		if n < 1 || n > total {
			return nil, fmt.Errorf("page %d out of range (document has %d)", n, total)
		}
		pages = append(pages, n)
	}
	return pages, nil
}

func writeSVG(path, markup string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(markup); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
