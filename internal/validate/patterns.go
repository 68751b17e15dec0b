package validate

import (
	"regexp"
	"sync"
)

var declarationPatterns = []struct {
	kind   string
	prefix string
}{
	{"class", `public\s+(?:partial\s+)?class\s+`},
	{"interface", `public\s+interface\s+`},
	{"struct", `public\s+struct\s+`},
}

const methodPrefix = `(?:public|private|protected)\s+.*\s+`

// compiled caches one regexp per pattern source; checklists repeat symbols
// and files across runs.
var compiled sync.Map

func pattern(src string) *regexp.Regexp {
	if re, ok := compiled.Load(src); ok {
		return re.(*regexp.Regexp)
	}
	re, _ := compiled.LoadOrStore(src, regexp.MustCompile(src))
	return re.(*regexp.Regexp)
}

// DeclarationKind reports whether src declares a public class, interface or
// struct whose name starts with name, and which one. Like the plain grep it
// replaces, the name is not anchored at its end.
func DeclarationKind(src, name string) (string, bool) {
	quoted := regexp.QuoteMeta(name)
	for _, p := range declarationPatterns {
		if pattern(p.prefix + quoted).MatchString(src) {
			return p.kind, true
		}
	}
	return "", false
}

// HasMethod reports whether src has an access-modified declaration of name
// on a single line.
func HasMethod(src, name string) bool {
	return pattern(methodPrefix + regexp.QuoteMeta(name) + `\s*\(`).MatchString(src)
}
