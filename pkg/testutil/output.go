package testutil

import "strings"

// Lines splits rendered output into lines without the trailing newline
func Lines(out string) []string {
	out = strings.TrimSuffix(out, "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}
