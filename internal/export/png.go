package export

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
)

// Filename derives the export file name from the document title:
// whitespace collapses to underscores.
func Filename(title, ext string) string {
	name := strings.Join(strings.Fields(title), "_")
	if name == "" {
		name = "untitled"
	}
	return name + "." + ext
}

// PNG writes the rendered surface to a file named after the title.
func PNG(dir, title string, img image.Image) (string, error) {
	path := filepath.Join(dir, Filename(title, "png"))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return "", fmt.Errorf("encode %s: %w", path, err)
	}
	return path, nil
}
