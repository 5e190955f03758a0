// Package env looks up environment variables with defaults.
package env

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/TFMV/lazywalk/internal/errs"
)

// Load reads KEY=value files into the process environment without
// overriding variables that are already set. Missing files are skipped;
// with no arguments ".env" is tried.
func Load(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		err := godotenv.Load(f)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return errs.IO("load env", f, err)
		}
	}
	return nil
}

// Lookup returns the value of key, or def when key is unset or empty.
func Lookup(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

// LookupInt parses key as an integer, falling back to def when the variable
// is unset or malformed.
func LookupInt(key string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(Lookup(key, "")))
	if err != nil {
		return def
	}
	return v
}

// LookupBool accepts the forms strconv.ParseBool does.
func LookupBool(key string, def bool) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(Lookup(key, "")))
	if err != nil {
		return def
	}
	return v
}

// LookupDuration accepts time.ParseDuration syntax.
func LookupDuration(key string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(strings.TrimSpace(Lookup(key, "")))
	if err != nil {
		return def
	}
	return v
}
