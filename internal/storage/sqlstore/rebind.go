package sqlstore

import (
	"strconv"
	"strings"
)

type placeholder int

const (
	question placeholder = iota // mysql, sqlite3
	dollar                      // postgres, pgx
)

func placeholderFor(driver string) placeholder {
	switch driver {
	case "postgres", "pgx", "pgx/v5":
		return dollar
	}
	return question
}

// rebind rewrites `?` placeholders to `$1..$n` for drivers that need it.
// Queries in this package never contain a literal `?`.
func rebind(p placeholder, query string) string {
	if p != dollar {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}
