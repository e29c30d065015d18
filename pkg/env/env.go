package env

import "os"

// Get returns the value of the environment variable or the fallback when unset.
func Get(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}
