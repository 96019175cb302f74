package utils

import (
	"strconv"
)

// StringToInt parses a base-10 int out of route params and query values;
// anything unparseable comes back as 0.
func StringToInt(s string) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return i
}
