package deck

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Deck is an immutable catalog of slide images loaded from a directory.
// Slides are numbered 1..Count() in file-name order.
type Deck struct {
	dir   string
	files []string
}

// Load scans dir for image files and builds the slide catalog.
func Load(dir string) (*Deck, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read slides dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if mimeFromExtension(filepath.Ext(e.Name())) != "" {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	if len(files) == 0 {
		return nil, fmt.Errorf("no slide images in %s", dir)
	}

	return &Deck{dir: dir, files: files}, nil
}

func (d *Deck) Count() int { return len(d.files) }

// FileName returns the file name of slide n (1-based).
func (d *Deck) FileName(n int) (string, error) {
	if n < 1 || n > len(d.files) {
		return "", fmt.Errorf("slide %d out of range [1,%d]", n, len(d.files))
	}
	return d.files[n-1], nil
}

// Image returns the raw bytes and MIME type of slide n (1-based).
func (d *Deck) Image(n int) ([]byte, string, error) {
	name, err := d.FileName(n)
	if err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(filepath.Join(d.dir, name))
	if err != nil {
		return nil, "", fmt.Errorf("read slide %d: %w", n, err)
	}
	return data, mimeFromExtension(filepath.Ext(name)), nil
}

// Open returns the path of a named slide asset, rejecting anything that
// would escape the deck directory.
func (d *Deck) Open(name string) (string, string, error) {
	if name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", "", fmt.Errorf("invalid slide name %q", name)
	}
	mime := mimeFromExtension(filepath.Ext(name))
	if mime == "" {
		return "", "", fmt.Errorf("invalid slide name %q", name)
	}
	path := filepath.Join(d.dir, name)
	if _, err := os.Stat(path); err != nil {
		return "", "", fmt.Errorf("slide %q: %w", name, err)
	}
	return path, mime, nil
}

func mimeFromExtension(ext string) string {
	switch strings.ToLower(ext) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return ""
	}
}
