// Package bib reads bibliographic records written in a minimal BibTeX-like
// grammar.
//
// A file is split into records at every '@'. Within a record, every line
// matching
//
//	key = {value}
//
// contributes one field. Values are single-line and the closing brace is the
// last '}' on the line, so nested braces are kept verbatim and multi-line
// values are not captured. An '@' inside a value starts a new record. These
// are known limitations of the grammar, not something callers should
// compensate for.
//
// # Usage
//
//	entries, err := bib.ParseDir("bib", "*.bib")
//	for _, e := range entries {
//	    if author, ok := e.Author(); ok {
//	        fmt.Println(e.Key, author)
//	    }
//	}
package bib
