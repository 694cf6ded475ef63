package archtable

import "strings"

type synonym struct {
	prefix      string
	replacement string
}

// ppc64 has to be checked before ppc
var synonyms = []synonym{
	{"blackfin", "bfin"},
	{"x86", "i386"},
	{"parisc", "hppa"},
	{"ppc64", "powerpc64"},
	{"ppc", "powerpc"},
}

// Token derives an architecture token from a file or directory name by rewriting
// the common naming variants to the names used in the architecture table.
func Token(name string) string {
	for _, s := range synonyms {
		if strings.HasPrefix(name, s.prefix) {
			return s.replacement + name[len(s.prefix):]
		}
	}

	return name
}
