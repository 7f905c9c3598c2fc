package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/MichaelStober/EventViewer/constants"
	"github.com/MichaelStober/EventViewer/internal/common"
)

// CollectImages resolves path (a single poster or a directory of posters)
// into a sorted list of image files. Missing paths, unsupported extensions
// and empty directories are input errors, fatal to the invocation.
func CollectImages(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, common.NewAppError("INPUT_ERROR",
			fmt.Sprintf("path not found: %s", path), common.ErrNotFound)
	}

	if !info.IsDir() {
		if !constants.IsImageExt(filepath.Ext(path)) {
			return nil, common.NewAppError("INPUT_ERROR",
				fmt.Sprintf("unsupported image format: %s", filepath.Ext(path)), common.ErrInvalidInput)
		}
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, common.NewAppError("INPUT_ERROR",
			fmt.Sprintf("read directory: %s", path), err)
	}

	var images []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if constants.IsImageExt(filepath.Ext(entry.Name())) {
			images = append(images, filepath.Join(path, entry.Name()))
		}
	}
	if len(images) == 0 {
		return nil, common.NewAppError("INPUT_ERROR",
			fmt.Sprintf("no image files found in: %s", path), common.ErrNotFound)
	}

	sort.Strings(images)
	return images, nil
}
