package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// ConfigFile is the name of the optional configuration file at the root.
const ConfigFile = "stickies.yaml"

// FindRoot looks upwards from startDir for a directory holding notes.
// Indicators are: a .stickies directory or a stickies.yaml file.
// It returns the absolute path of the first match.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if isDir(filepath.Join(dir, DefaultSystemDir)) || exists(filepath.Join(dir, ConfigFile)) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("root not found")
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
