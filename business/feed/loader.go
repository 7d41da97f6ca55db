package feed

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// preambleLines precede the header row in historian exports.
const preambleLines = 2

// Row is one historian record keyed by translated column name, with derived features added.
type Row map[string]any

func (r Row) number(key string) (float64, bool) {
	switch v := r[key].(type) {
	case float64:
		return v, true
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, true
		}
		f, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func (r Row) numberOrZero(key string) float64 {
	v, _ := r.number(key)
	return v
}

var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
	"02.01.2006 15:04:05",
	"02.01.2006 15:04",
	"02.01.2006",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006",
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// LoadFiles reads and concatenates historian exports in the given order.
func LoadFiles(paths []string) ([]Row, error) {
	var rows []Row
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}

		part, err := LoadCSV(f)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}

		rows = append(rows, part...)
	}
	return rows, nil
}

// LoadCSV parses one export: preamble lines, a header row, then records.
// Rows without a parseable Date are dropped.
func LoadCSV(r io.Reader) ([]Row, error) {
	br := bufio.NewReader(r)
	for i := 0; i < preambleLines; i++ {
		if _, err := br.ReadString('\n'); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, nil
			}
			return nil, err
		}
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	columns := make([]string, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		columns[i] = translateColumn(h)
	}

	var rows []Row
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}

		row := make(Row, len(columns)+6)
		for i, col := range columns {
			if i < len(record) {
				row[col] = record[i]
			}
		}

		date, _ := row[columnDate].(string)
		if _, ok := parseDate(date); !ok {
			continue
		}

		deriveFeatures(row)
		rows = append(rows, row)
	}

	return rows, nil
}
