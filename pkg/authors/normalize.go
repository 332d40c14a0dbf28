package authors

import "strings"

// Separator joins names in an author field.
const Separator = " and "

// markup is removed in this order. "{" must come after "\textbf{" so the
// bold command is removed whole.
//
// Each token is removed in a single pass, so a removal can join text into a
// token whose pass already ran: `\\'~` leaves `\~` behind, which only a
// second Clean removes. Clean is idempotent on input without such
// overlapping tokens.
var markup = []string{
	`\textbf{`,
	"{",
	"}",
	`\~`,
	`\'`,
	"\\`",
	`\"`,
	`\v`,
	`\c`,
	"\u00a0B",
}

// Clean removes known markup tokens from s.
func Clean(s string) string {
	for _, m := range markup {
		s = strings.ReplaceAll(s, m, "")
	}
	return s
}

// Normalize cleans a raw author field and splits it into names.
func Normalize(raw string) []string {
	return strings.Split(Clean(raw), Separator)
}

// LastName returns the text after the final space in name, or name itself
// when it contains no space.
func LastName(name string) string {
	parts := strings.Split(name, " ")
	return parts[len(parts)-1]
}
