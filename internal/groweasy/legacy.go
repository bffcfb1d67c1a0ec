package groweasy

import (
	"os"
	"path/filepath"
)

// PurgeLegacyCache removes the offline inventory cache that releases before
// 2.0 kept under the user cache dir. The cache design was dropped; this is a
// one-time migration and errors are ignored.
func PurgeLegacyCache() {
	base, err := os.UserCacheDir()
	if err != nil {
		return
	}
	dir := filepath.Join(base, "groweasy-cli")
	if _, err := os.Stat(dir); err != nil {
		return
	}
	if err := os.RemoveAll(dir); err == nil {
		logger.Info().Str("dir", dir).Msg("purged legacy offline cache")
	}
}
