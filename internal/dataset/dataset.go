// Package dataset builds and reads the question sets used to evaluate the
// classifier: extraction from chat-log JSONL exports, and CSV/xlsx I/O.
package dataset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Question is one labeled evaluation row.
type Question struct {
	Text      string
	IsTourism bool
}

// ExtractStats summarizes an extraction run.
type ExtractStats struct {
	Files     int
	Lines     int
	Skipped   int
	Questions int
}

// maxLineBytes bounds a single JSONL record.
const maxLineBytes = 16 << 20

type chatRecord struct {
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

// Extract reads chat-log JSONL from r and returns every user message as a
// tourism question. Lines that do not decode are skipped and counted.
func Extract(r io.Reader) ([]Question, ExtractStats, error) {
	var (
		out   []Question
		stats ExtractStats
	)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		stats.Lines++
		var rec chatRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			stats.Skipped++
			continue
		}
		for _, m := range rec.Messages {
			if m.Role == "user" {
				out = append(out, Question{Text: m.Content, IsTourism: true})
			}
		}
	}
	if err := sc.Err(); err != nil {
		return out, stats, err
	}
	stats.Questions = len(out)
	return out, stats, nil
}

// ExtractFiles runs Extract over each path in order and concatenates the
// results.
func ExtractFiles(paths []string) ([]Question, ExtractStats, error) {
	var (
		all   []Question
		total ExtractStats
	)
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			return nil, total, err
		}
		qs, st, err := Extract(f)
		_ = f.Close()
		if err != nil {
			return nil, total, fmt.Errorf("%s: %w", p, err)
		}
		all = append(all, qs...)
		total.Files++
		total.Lines += st.Lines
		total.Skipped += st.Skipped
	}
	total.Questions = len(all)
	return all, total, nil
}
