// Package catalog discovers the images a slideshow can show.
package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// ErrEmpty is returned when a source tree holds no eligible images.
var ErrEmpty = errors.New("no images found")

// SupportedExt lists the lower-cased extensions that make a file eligible.
var SupportedExt = mapset.NewSet(".jpg", ".png", ".gif")

// Catalog is the ordered list of absolute image paths for one run.
type Catalog []string

// Supported reports whether name has an eligible extension, ignoring case.
func Supported(name string) bool {
	return SupportedExt.Contains(strings.ToLower(filepath.Ext(name)))
}

// Build walks root recursively and collects every supported image in
// traversal order. A read error anywhere in the tree aborts the walk.
func Build(root string) (Catalog, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", root, err)
	}

	var images Catalog
	err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if Supported(d.Name()) {
			images = append(images, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", abs, err)
	}

	if len(images) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrEmpty, abs)
	}

	return images, nil
}
