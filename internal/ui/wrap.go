package ui

import "strings"

// wrap splits s on spaces into lines of at most n characters. A single word
// longer than n gets a line of its own.
func wrap(s string, n int) []string {
	if len(s) <= n {
		return []string{s}
	}
	var lines []string
	line := ""
	for _, word := range strings.Fields(s) {
		switch {
		case line == "":
			line = word
		case len(line)+1+len(word) <= n:
			line += " " + word
		default:
			lines = append(lines, line)
			line = word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}
