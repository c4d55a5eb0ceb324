package platform

import (
	"os"
	"runtime"
)

// Chmod sets file permissions, used to keep the user config file private.
// On Windows it does nothing since permission bits are not supported.
func Chmod(path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return os.Chmod(path, mode)
}
