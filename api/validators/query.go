package validators

import (
	"net/http"
	"strings"
)

// QueryString returns the trimmed value of a query parameter, or the
// default when absent.
func QueryString(r *http.Request, key, defaultVal string) string {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal
	}
	return raw
}
