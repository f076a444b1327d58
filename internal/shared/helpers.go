// Package shared provides common utility functions used across multiple
// packages in the alert-packet codebase.
package shared

import (
	"fmt"
	"strings"
)

// UnqualifiedName strips the namespace from a dotted full name:
// "lsst.v7_0.diaSource" becomes "diaSource". Names without dots pass
// through unchanged.
func UnqualifiedName(full string) string {
	if idx := strings.LastIndex(full, "."); idx >= 0 {
		return full[idx+1:]
	}
	return full
}

// HTTPStatusError creates a formatted error for non-2xx HTTP responses.
func HTTPStatusError(status int, url string) error {
	return fmt.Errorf("status=%d url=%s", status, url)
}

// HTTPStatusErrorWithBody creates a formatted error that includes the
// response body for non-2xx HTTP responses.
func HTTPStatusErrorWithBody(status int, url string, body string) error {
	return fmt.Errorf("status=%d url=%s response=%s", status, url, body)
}
