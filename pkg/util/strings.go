package util

import "strings"

// Str2List splits a separated string into a trimmed, deduplicated list,
// dropping empty elements.
func Str2List(str string, sep string) []string {
	list := make([]string, 0)

	if str == "" {
		return list
	}

	seen := make(map[string]bool)
	for _, elem := range strings.Split(str, sep) {
		elem = strings.TrimSpace(elem)
		if len(elem) == 0 {
			continue
		}
		if seen[elem] {
			continue
		}
		seen[elem] = true
		list = append(list, elem)
	}

	return list
}
