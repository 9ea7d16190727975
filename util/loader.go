// Package util - Batch loading of floor-plan images.
package util

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FloorplanFile represents one floor-plan image on disk.
type FloorplanFile struct {
	// Path is the path to the image file.
	Path string
	// Data is the raw bytes of the image file.
	Data []byte
}

// imageExtensions are the formats the floor-plan corpus ships in.
var imageExtensions = map[string]bool{
	".gif":  true,
	".jpeg": true,
	".jpg":  true,
	".png":  true,
}

// LoadFloorplanImages walks a directory tree and reads every floor-plan
// image in it, sorted by path for deterministic batch order.
//
// Arguments:
//   - dir: Root directory to walk.
//
// Returns:
//   - []FloorplanFile: One entry per image, raw bytes included.
//   - error: Error if the walk or a read fails.
func LoadFloorplanImages(dir string) ([]FloorplanFile, error) {
	var images []FloorplanFile
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !imageExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return readErr
		}
		images = append(images, FloorplanFile{Path: path, Data: data})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(images, func(i, j int) bool {
		return images[i].Path < images[j].Path
	})
	return images, nil
}
