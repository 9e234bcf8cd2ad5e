package validators

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

// RequireQueryInt parses a mandatory integer query parameter no smaller than min.
func RequireQueryInt(r *http.Request, key string, min int64) (int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0, missingParam(key)
	}
	return ParseIntParam(key, raw, min)
}

// ParseIntParam parses a path or query value no smaller than min.
func ParseIntParam(key, raw string, min int64) (int64, error) {
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, key+" must be an integer").WithDetails(map[string]any{"field": key})
	}
	if value < min {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, key+" out of range").WithDetails(map[string]any{"field": key, "min": min})
	}
	return value, nil
}

// RequireQueryString returns a mandatory, trimmed query parameter of at most
// maxLen characters. Longer values are rejected, never cut.
func RequireQueryString(r *http.Request, key string, maxLen int) (string, error) {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return "", missingParam(key)
	}
	if maxLen > 0 && utf8.RuneCountInString(value) > maxLen {
		return "", pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("%s must be at most %d characters", key, maxLen)).
			WithDetails(map[string]any{"field": key, "max": maxLen})
	}
	return value, nil
}

// QueryList splits a comma-separated query parameter, dropping blanks.
func QueryList(r *http.Request, key string) []string {
	raw := r.URL.Query().Get(key)
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func missingParam(key string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, "missing required parameter: "+key).WithDetails(map[string]any{"field": key})
}
