package search

import (
	"fmt"
	"strings"
)

// ODataLiteral quotes s as an OData string literal.
func ODataLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// EqualsFilter builds `field eq 'value'`.
func EqualsFilter(field, value string) string {
	return fmt.Sprintf("%s eq %s", field, ODataLiteral(value))
}

// AnyOfFilter matches documents whose collection field contains any of values.
func AnyOfFilter(field string, values []string) string {
	clauses := make([]string, 0, len(values))
	for _, v := range values {
		clauses = append(clauses, fmt.Sprintf("%s/any(c: c eq %s)", field, ODataLiteral(v)))
	}
	return strings.Join(clauses, " or ")
}

const luceneSpecials = `+-&|!(){}[]^"~*?:\/`

// EscapeLucene backslash escapes the full Lucene syntax characters in term.
func EscapeLucene(term string) string {
	var b strings.Builder
	for _, r := range term {
		if strings.ContainsRune(luceneSpecials, r) {
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

const regexpSpecials = `.?+*|{}[]()"\#@&<>~/`

// SubstringPattern builds a full-syntax regular expression term matching any
// indexed term that contains term.
func SubstringPattern(term string) string {
	var b strings.Builder
	b.WriteString("/.*")
	for _, r := range term {
		if strings.ContainsRune(regexpSpecials, r) {
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	b.WriteString(".*/")
	return b.String()
}
