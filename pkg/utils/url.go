package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"strings"
)

// HashURL creates a SHA256 hash of a URL string.
// This is useful for creating consistent, safe keys for Redis.
func HashURL(rawURL string) string {
	h := sha256.New()
	h.Write([]byte(rawURL))
	return hex.EncodeToString(h.Sum(nil))
}

// SiteURL builds the URL a static-site file is served at. The relative path is
// appended verbatim, without escaping.
func SiteURL(protocol, hostPort, relPath string) string {
	return protocol + "://" + hostPort + "/" + relPath
}

// SuffixFromURL returns everything after the first slash in rawURL, or the
// whole string when it has none. For "http://host:8080/a.html" this is
// "/host:8080/a.html", so output files are grouped by host and port.
func SuffixFromURL(rawURL string) string {
	return rawURL[strings.Index(rawURL, "/")+1:]
}

// OutputPath returns where the screenshot for suffix is written under outDir.
func OutputPath(outDir, suffix string) string {
	return filepath.Join(outDir, filepath.FromSlash(suffix)+".png")
}
