package utils

import (
	"errors"
	"io/fs"
	"os"
)

// DirExists reports whether path is an existing directory.
// Errors other than "not exist" (permissions, I/O) are returned.
func DirExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}

// PathExists reports whether anything exists at path. Symlinks are not followed,
// so a dangling link still counts as present.
func PathExists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}
