// Package fileid derives stable document IDs for files ingested from watched
// directories, so that re-indexing or deleting a file always addresses the
// same document.
package fileid

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"strings"
)

const idPrefix = "file:"

// FromPath returns the document ID for a file path. The path is cleaned
// first, so equivalent spellings of the same location map to one ID.
func FromPath(path string) string {
	sum := sha256.Sum256([]byte(filepath.Clean(path)))
	return idPrefix + hex.EncodeToString(sum[:])
}

// IsFileID reports whether id was derived from a file path rather than
// assigned to a document submitted over the API.
func IsFileID(id string) bool {
	return strings.HasPrefix(id, idPrefix)
}
