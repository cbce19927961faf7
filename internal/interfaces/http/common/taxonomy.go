package common

import "strings"

// NormalizeFilter はクエリの絞り込み値を整形する。空文字と "all" は絞り込みなしを表す。
func NormalizeFilter(value string) string {
	value = strings.TrimSpace(value)
	if strings.EqualFold(value, AllFilterValue) {
		return ""
	}
	return value
}

// WithAllOption prepends the "all" option and drops blanks and duplicates.
func WithAllOption(values []string) []string {
	result := make([]string, 0, len(values)+1)
	result = append(result, AllFilterValue)
	seen := map[string]struct{}{AllFilterValue: {}}
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		result = append(result, value)
	}
	return result
}
