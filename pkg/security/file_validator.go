package security

import (
	"bytes"
	"path/filepath"
	"strings"
)

// SniffLen is how many leading bytes MatchesExtension needs at most
const SniffLen = 8

// Magic byte signatures for the servable asset types
var magicBytes = map[string][][]byte{
	".jpg":  {{0xFF, 0xD8, 0xFF}},
	".jpeg": {{0xFF, 0xD8, 0xFF}},
	".png":  {{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}},
	".pdf":  {{0x25, 0x50, 0x44, 0x46}}, // %PDF
}

// MatchesExtension reports whether head, the first bytes of a file, carries
// the signature expected for the extension of filename. Unknown extensions
// never match.
func MatchesExtension(filename string, head []byte) bool {
	if len(head) < 4 {
		return false
	}

	signatures, ok := magicBytes[strings.ToLower(filepath.Ext(filename))]
	if !ok {
		return false
	}
	for _, sig := range signatures {
		if bytes.HasPrefix(head, sig) {
			return true
		}
	}
	return false
}
