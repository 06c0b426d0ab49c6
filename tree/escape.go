package tree

import "strings"

// Three distinct escaping rules apply to emitted SQL: string-literal quoting,
// LIKE-pattern metacharacter escaping, and full-text term escaping. They must
// not be merged; each guards a different injection surface.

// QuoteLiteral returns a SQL string literal with single quotes doubled.
func QuoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// EscapeLike escapes LIKE metacharacters with a backslash. The resulting
// pattern must be used with ESCAPE '\'.
func EscapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// EscapeContains escapes a term for inclusion inside a quoted full-text
// search phrase. Full-text query syntax has its own rules, distinct from
// string-literal escaping: embedded double quotes are doubled.
func EscapeContains(term string) string {
	return strings.ReplaceAll(term, `"`, `""`)
}

// QuoteIdentifier returns a double-quoted identifier if quoting is needed.
func QuoteIdentifier(name string) string {
	if needsQuoting(name) {
		return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
	}
	return name
}

// needsQuoting returns true if the identifier needs quoting.
func needsQuoting(name string) bool {
	if len(name) == 0 {
		return true
	}

	c := name[0]
	if !isLetter(c) && c != '_' {
		return true
	}

	for i := 1; i < len(name); i++ {
		c = name[i]
		if !isLetter(c) && !isDigit(c) && c != '_' {
			return true
		}
	}

	// Reserved words (simplified list)
	upper := strings.ToUpper(name)
	switch upper {
	case "SELECT", "FROM", "WHERE", "AND", "OR", "NOT", "NULL", "TRUE", "FALSE",
		"JOIN", "ON", "AS", "IN", "IS", "LIKE", "BETWEEN", "EXISTS", "CASE",
		"WHEN", "THEN", "ELSE", "END", "ORDER", "BY", "GROUP", "HAVING",
		"LIMIT", "OFFSET", "UNION", "EXCEPT", "INTERSECT", "ALL", "DISTINCT",
		"CONTAINS", "CAST", "DATE", "TIME", "TIMESTAMP":
		return true
	}

	return false
}

// isLetter returns true if c is an ASCII letter.
func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// isDigit returns true if c is an ASCII digit.
func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
