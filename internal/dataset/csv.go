package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var header = []string{"question", "is_tourism"}

// WriteCSV writes qs as a question,is_tourism table with a header row.
func WriteCSV(w io.Writer, qs []Question) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, q := range qs {
		if err := cw.Write([]string{q.Text, flagString(q.IsTourism)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV reads a table written by WriteCSV. Column order follows the header;
// a missing is_tourism column labels every row as tourism.
func ReadCSV(r io.Reader) ([]Question, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	return fromRows(rows)
}

func fromRows(rows [][]string) ([]Question, error) {
	if len(rows) == 0 {
		return nil, errors.New("empty dataset: missing header")
	}
	qi, ti := -1, -1
	for i, h := range rows[0] {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))) {
		case "question":
			qi = i
		case "is_tourism":
			ti = i
		}
	}
	if qi < 0 {
		return nil, errors.New("missing question column")
	}
	out := make([]Question, 0, len(rows)-1)
	for n, row := range rows[1:] {
		if qi >= len(row) {
			continue
		}
		q := Question{Text: row[qi], IsTourism: true}
		if ti >= 0 && ti < len(row) {
			v, err := parseFlag(row[ti])
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", n+2, err)
			}
			q.IsTourism = v
		}
		out = append(out, q)
	}
	return out, nil
}

func flagString(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func parseFlag(s string) (bool, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "1", "true", "yes":
		return true, nil
	case "0", "false", "no":
		return false, nil
	}
	// Spreadsheet round-trips may store the flag as 1.0.
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f != 0, nil
	}
	return false, fmt.Errorf("invalid is_tourism value %q", s)
}
