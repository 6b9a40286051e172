package protocol

import (
	"strings"
)

// ParseKeyValues parses the legacy line-oriented response format used by the
// auth and c2dm endpoints: one key=value pair per line. Lines are split on
// any run of CR/LF characters; each line splits on the first '=' only, so
// values may themselves contain '='. Lines without an '=' are dropped, and a
// later duplicate key overwrites an earlier one.
func ParseKeyValues(body string) map[string]string {
	kv := make(map[string]string)
	for _, line := range strings.FieldsFunc(body, func(r rune) bool {
		return r == '\n' || r == '\r'
	}) {
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		kv[key] = value
	}
	return kv
}
