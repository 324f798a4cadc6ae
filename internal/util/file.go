package util

import (
	"errors"
	"io"
	"net/http"
	"strings"
)

// ValidateMimeType sniffs the content and checks it against a list of allowed
// MIME prefixes or full types, e.g. "image/" or "application/pdf".
func ValidateMimeType(reader io.Reader, allowedTypes []string) (string, error) {
	buffer := make([]byte, 512)
	n, err := reader.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}

	mimeType := http.DetectContentType(buffer[:n])

	for _, allowed := range allowedTypes {
		if strings.HasPrefix(mimeType, allowed) || mimeType == allowed {
			return mimeType, nil
		}
	}

	return mimeType, errors.New("invalid file type: " + mimeType)
}

func IsImage(mimeType string) bool {
	return strings.HasPrefix(mimeType, "image/")
}
