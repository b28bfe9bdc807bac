package main

import "strings"

// splitCSV splits a comma-separated list, trimming blanks and dropping empty
// entries.
func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
