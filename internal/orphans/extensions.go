package orphans

import "strings"

// Extensions lists the file suffixes a scan recognizes, e.g. ".mkv".
type Extensions []string

// Match reports whether name ends with one of the suffixes. The comparison is
// case-sensitive, so "movie.MKV" does not match ".mkv".
func (e Extensions) Match(name string) bool {
	for _, ext := range e {
		if ext != "" && strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
