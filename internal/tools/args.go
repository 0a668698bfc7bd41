package tools

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/BruksfildServices01/dealer-voicebot/internal/httperr"
)

// Argument maps arrive from a reasoning loop that may hallucinate
// shapes, so decoding is defensive: wrong types read as absent and every
// required field is checked before any store access.

func stringArg(args map[string]any, key string) string {
	v, ok := args[key]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

func requireString(args map[string]any, key string) (string, error) {
	s := stringArg(args, key)
	if s == "" {
		return "", httperr.ErrBusiness(
			httperr.CodeInvalidArguments,
			fmt.Sprintf("%s is required.", key),
		)
	}
	return s, nil
}

// intArg reads an optional integer argument. JSON decoding hands numbers
// over as float64; string digits are tolerated too.
func intArg(args map[string]any, key string, def int) (int, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return def, nil
	}

	badValue := httperr.ErrBusiness(
		httperr.CodeInvalidArguments,
		fmt.Sprintf("%s must be a positive integer.", key),
	)

	var n int
	switch t := v.(type) {
	case float64:
		n = int(t)
		if float64(n) != t {
			return 0, badValue
		}
	case int:
		n = t
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, badValue
		}
		n = parsed
	default:
		return 0, badValue
	}

	if n <= 0 {
		return 0, badValue
	}
	return n, nil
}
