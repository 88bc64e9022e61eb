package unix

import (
	"path/filepath"
	"strings"
)

// ConvertPathToUnix takes an absolute host path and returns the form docker
// accepts in a bind mount. Windows drive paths become //c/a/b style paths,
// anything else is returned cleaned and unchanged.
func ConvertPathToUnix(path string) string {
	volume := filepath.VolumeName(path)

	if volume == "" || !strings.HasSuffix(volume, ":") {
		return filepath.ToSlash(filepath.Clean(path))
	}

	rootDrive := strings.ToLower(strings.TrimSuffix(volume, ":"))
	rest := strings.ReplaceAll(strings.TrimPrefix(path, volume), "\\", "/")

	return "/" + rootDrive + rest
}
