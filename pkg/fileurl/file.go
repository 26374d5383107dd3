package fileurl

import (
	"os"
	"path/filepath"
)

// IsDir determines if the given path is a directory
func IsDir(path string) bool {
	s, err := os.Stat(path)
	if err != nil {
		return false
	}
	return s.IsDir()
}

// IsExist checks if a file or directory exists
func IsExist(path string) bool {
	_, err := os.Stat(path)
	if err != nil {
		return os.IsExist(err)
	}
	return true
}

// CreatePath creates the parent directories of a file path
func CreatePath(path string, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if IsExist(dir) {
		return nil
	}
	return os.MkdirAll(dir, perm)
}

// GetExePath returns the directory of the running executable
func GetExePath() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}
