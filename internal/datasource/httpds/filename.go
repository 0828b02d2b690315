package httpds

import (
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/zeebo/xxh3"
)

// filenameCleaner replaces runs of characters outside [A-Za-z0-9._-] with "_".
var filenameCleaner = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// HashString returns a stable 64-bit xxh3 digest of s in hex.
func HashString(s string) string {
	return fmt.Sprintf("%016x", xxh3.HashString(s))
}

// TempPattern derives an os.CreateTemp pattern from the last path segment of
// rawURL, keeping its extension:
//
//	https://host/x/yellow_tripdata_2020-01.csv -> "yellow_tripdata_2020-01-*.csv"
//
// URLs without a usable file name fall back to "download-<hash>-*".
func TempPattern(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "download-" + HashString(rawURL) + "-*"
	}

	base := filenameCleaner.ReplaceAllString(path.Base(u.Path), "_")
	if base == "" || base == "." || base == "_" {
		return "download-" + HashString(rawURL) + "-*"
	}

	ext := path.Ext(base)
	return strings.TrimSuffix(base, ext) + "-*" + ext
}
