// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/danielhkuo/catalogo/cliparse"
	"github.com/danielhkuo/catalogo/middleware"
)

// serverError logs err and answers 500 with its text as details. The stack is
// only attached when verbose errors are enabled.
func serverError(w http.ResponseWriter, cfg cliparse.Config, message string, err error) {
	slog.Error(message, "error", err)

	var stack string
	if cfg.VerboseErrors {
		stack = string(debug.Stack())
	}
	middleware.ErrorDetails(w, http.StatusInternalServerError, message, err.Error(), stack)
}

// parsePathID reads the {id} path value. ok is false for anything that cannot
// name a row, which callers answer with 404 like any other unknown id.
func parsePathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// rawValue classifies a JSON value as a number or a string.
// kind is 'n', 's' or 0 for missing, null and every other type.
func rawValue(raw json.RawMessage) (kind byte, text string) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, ""
	}
	switch c := raw[0]; {
	case c == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, ""
		}
		return 's', s
	case c == '-' || (c >= '0' && c <= '9'):
		return 'n', string(raw)
	}
	return 0, ""
}

// int64Limit is 2^63, the first whole number past int64. float64(math.MaxInt64)
// rounds up to it, so float bounds are checked with >=.
const int64Limit = 1 << 63

// parseNumber reads integers exactly and anything else (5e6, 12.9) through
// float64, truncated toward zero. whole reports whether nothing was truncated.
// ok is false for text that is not a number or does not fit in int64.
func parseNumber(text string) (n int64, whole, ok bool) {
	v, err := strconv.ParseInt(text, 10, 64)
	if err == nil {
		return v, true, true
	}
	if errors.Is(err, strconv.ErrRange) {
		return 0, false, false
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) >= int64Limit {
		return 0, false, false
	}
	t := math.Trunc(f)
	return int64(t), t == f, true
}

// parseStatePopulation accepts a non-negative whole number that fits in int64,
// given as a JSON number or a numeric string.
func parseStatePopulation(raw json.RawMessage) (int64, bool) {
	kind, text := rawValue(raw)
	if kind == 0 {
		return 0, false
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, false
	}
	n, whole, ok := parseNumber(text)
	if !ok || !whole || n < 0 {
		return 0, false
	}
	return n, true
}

// parseMunicipalityPopulation reads a population the way parseInt does:
// numbers are truncated toward zero and strings contribute their leading
// digits ("1200 habitantes" is 1200). The result must be at least 1.
func parseMunicipalityPopulation(raw json.RawMessage) (int64, bool) {
	kind, text := rawValue(raw)

	var n int64
	switch kind {
	case 'n':
		v, _, ok := parseNumber(text)
		if !ok {
			return 0, false
		}
		n = v
	case 's':
		v, ok := leadingInt(text)
		if !ok {
			return 0, false
		}
		n = v
	default:
		return 0, false
	}

	if n < 1 {
		return 0, false
	}
	return n, true
}

func leadingInt(s string) (int64, bool) {
	s = strings.TrimLeft(s, " \t\n\r")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseEstadoRef reads id_estado from a municipality payload. present is false
// for missing, null, 0 and "". When present, ok tells whether the value can
// name a state row at all.
func parseEstadoRef(raw json.RawMessage) (id int64, present, ok bool) {
	kind, text := rawValue(raw)
	switch kind {
	case 'n':
		n, whole, ok := parseNumber(text)
		if !ok {
			return 0, true, false
		}
		if n == 0 && whole {
			return 0, false, false
		}
		if !whole || n < 0 {
			return 0, true, false
		}
		return n, true, true
	case 's':
		if text == "" {
			return 0, false, false
		}
		v, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
		if err != nil || v < 1 {
			return 0, true, false
		}
		return v, true, true
	}
	return 0, false, false
}
