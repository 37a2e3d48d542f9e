package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// RootMarkers are the entries that identify a project root.
var RootMarkers = []string{"jotter.yaml", ".jotter", ".git"}

// FindRoot walks upwards from startDir looking for a project root, i.e. a
// directory holding one of RootMarkers. It returns the absolute path of the
// first match or an error once the filesystem root is reached.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		for _, marker := range RootMarkers {
			if hasFile(dir, marker) {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("root not found")
}

func hasFile(dir, name string) bool {
	path := filepath.Join(dir, name)
	_, err := os.Stat(path)
	return err == nil
}
