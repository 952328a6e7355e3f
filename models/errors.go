package models

import (
	"sort"
	"strings"
)

// ValidationErrors 按字段聚合的校验错误
type ValidationErrors map[string][]string

// Add 追加某字段的一条错误信息
func (e ValidationErrors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Any 是否存在校验错误
func (e ValidationErrors) Any() bool {
	return len(e) > 0
}

func (e ValidationErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(e))
	for _, field := range fields {
		parts = append(parts, field+" "+strings.Join(e[field], ", "))
	}
	return strings.Join(parts, "; ")
}
