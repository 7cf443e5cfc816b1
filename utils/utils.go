package utils

import (
	"fmt"
	"strings"
)

// OfferingCode builds the unique offering code from its course,
// semester and section. Must be regenerated whenever any of the three
// parts changes.
func OfferingCode(courseCode, semesterCode, section string) string {
	return strings.ToUpper(fmt.Sprintf("%s-%s-%s",
		strings.TrimSpace(courseCode),
		strings.TrimSpace(semesterCode),
		strings.TrimSpace(section),
	))
}
