package listing

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SearchPattern builds the LIKE pattern for a case-insensitive substring
// search: the term is lower-cased, its LIKE metacharacters are escaped with
// a backslash and it is wrapped in %.  An empty term yields "%", which
// matches every row.
func SearchPattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}
