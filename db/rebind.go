// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"fmt"
	"regexp"
	"strconv"
)

var placeholderRE = regexp.MustCompile(`\$(\d+)`)

// Rebind rewrites $N placeholders into the store's native markers.
//
// Postgres understands $N as is. SQLite gets one ? per occurrence and the
// arguments are reordered (and repeated) to follow the markers, so
// "WHERE a = $2 OR b = $1 OR c = $2" binds args[1], args[0], args[1].
func (s *Store) Rebind(query string, args []any) (string, []any, error) {
	if s.dialect == DialectPostgres {
		return query, args, nil
	}
	return rebindQuestion(query, args)
}

func rebindQuestion(query string, args []any) (string, []any, error) {
	matches := placeholderRE.FindAllStringSubmatchIndex(query, -1)
	if len(matches) == 0 {
		return query, args, nil
	}

	out := make([]byte, 0, len(query))
	bound := make([]any, 0, len(matches))
	last := 0
	for _, m := range matches {
		n, err := strconv.Atoi(query[m[2]:m[3]])
		if err != nil || n < 1 || n > len(args) {
			return "", nil, fmt.Errorf("placeholder %s has no argument (%d given)", query[m[0]:m[1]], len(args))
		}
		out = append(out, query[last:m[0]]...)
		out = append(out, '?')
		bound = append(bound, args[n-1])
		last = m[1]
	}
	out = append(out, query[last:]...)
	return string(out), bound, nil
}
