package utils

import (
	"strconv"
	"strings"
)

func BuildCoursesListCacheKey(page, size int, category string) string {
	c := strings.ToLower(strings.TrimSpace(category))

	return "courses:list:v1:page=" + strconv.Itoa(page) +
		":size=" + strconv.Itoa(size) +
		":category=" + c
}
