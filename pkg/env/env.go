package env

import "os"

// Get looks up key in the process environment. Unset and empty values both
// yield the fallback, since an empty LOG_FORMAT is never what was meant.
func Get(key, fallback string) string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	return val
}
