package util

import (
	"strconv"
)

// MustParseUint converts a string to an unsigned integer, returning 0 on failure
func MustParseUint(s string) uint {
	id, _ := strconv.ParseUint(s, 10, 32)
	return uint(id)
}

// MustParseInt converts a string to an integer, returning 0 on failure
func MustParseInt(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
