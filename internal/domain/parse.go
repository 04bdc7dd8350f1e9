package domain

import (
	"strconv"
	"strings"
)

// ParseItemIDs parses a comma-delimited list of item identifiers. Tokens that
// are not base-10 integers are dropped since they can never match an item.
func ParseItemIDs(s string) []int64 {
	ids := make([]int64, 0)
	for _, tok := range strings.Split(s, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(tok), 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// FormatItemIDs is the inverse of ParseItemIDs.
func FormatItemIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}
