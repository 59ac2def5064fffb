package gibberish

import "strings"

// SplitName separates path at its last '.' into base name and extension.
// A path without a '.' is all base with an empty extension.
func SplitName(path string) (base, ext string) {
	i := strings.LastIndexByte(path, '.')
	if i < 0 {
		return path, ""
	}
	return path[:i], path[i+1:]
}

// JoinName is the inverse of SplitName.
func JoinName(base, ext string) string {
	return base + "." + ext
}
