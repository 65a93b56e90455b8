package expand

import (
	"strings"
	"sync"
)

// camelCache interns hyphenated-to-camelCase conversions. It is
// process-wide and append-only; conversion is idempotent, so concurrent
// compilations need nothing beyond insert-if-absent.
var camelCache sync.Map // string -> string

// CamelCase converts a hyphenated attribute name to camelCase. Names
// beginning with the ARIA and data-attribute prefixes are wire-format
// significant and pass through unchanged.
func CamelCase(name string) string {
	if strings.HasPrefix(name, "aria-") || strings.HasPrefix(name, "data-") {
		return name
	}
	if cached, ok := camelCache.Load(name); ok {
		return cached.(string)
	}
	converted := camelize(name)
	actual, _ := camelCache.LoadOrStore(name, converted)
	return actual.(string)
}

func camelize(name string) string {
	if !strings.Contains(name, "-") {
		return name
	}
	parts := strings.Split(name, "-")
	var b strings.Builder
	b.WriteString(parts[0])
	for _, part := range parts[1:] {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}
