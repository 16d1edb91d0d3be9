package cache

import (
	"fmt"
	"sort"
	"strings"
)

// GenerateKey builds a deterministic cache key "<namespace>:<encoded-params>".
// Parameter names are sorted ascending before encoding, so two logically
// identical lookups always produce the same key regardless of map iteration
// order. With no parameters the encoded segment is the literal "default".
func GenerateKey(namespace string, params map[string]any) string {
	if len(params) == 0 {
		return namespace + ":default"
	}

	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]string, 0, len(names))
	for _, name := range names {
		pairs = append(pairs, fmt.Sprintf("%s=%v", name, params[name]))
	}
	return namespace + ":" + strings.Join(pairs, "&")
}
