package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// CSVCodec reads and writes the legacy flat-file format used by the record
// system this service replaces. The format is asymmetric on purpose:
// parsing is a naive comma split with no quote handling, while rendering
// wraps any value containing a comma in double quotes. Fixing either side
// would break round-trips against files produced by the old system, so the
// quirk is kept. encoding/csv is not used because it would silently repair
// the parse side.
type CSVCodec struct{}

// NewCSVCodec builds a codec.
func NewCSVCodec() *CSVCodec {
	return &CSVCodec{}
}

// Parse reads a header-first document. Empty lines are skipped, values are
// trimmed, and short rows pad missing columns with empty strings.
func (c *CSVCodec) Parse(r io.Reader) (Dataset, error) {
	var ds Dataset
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		values := strings.Split(line, ",")
		for i := range values {
			values[i] = strings.TrimSpace(values[i])
		}
		if ds.Headers == nil {
			ds.Headers = values
			continue
		}
		row := make(map[string]string, len(ds.Headers))
		for i, header := range ds.Headers {
			if i < len(values) {
				row[header] = values[i]
			} else {
				row[header] = ""
			}
		}
		ds.Rows = append(ds.Rows, row)
	}
	if err := scanner.Err(); err != nil {
		return Dataset{}, fmt.Errorf("scan csv: %w", err)
	}
	if ds.Headers == nil {
		return Dataset{}, fmt.Errorf("csv document is empty")
	}
	return ds, nil
}

// Render produces the flat-file bytes for the dataset.
func (c *CSVCodec) Render(data Dataset) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("csv requires at least one header")
	}
	var b strings.Builder
	b.WriteString(strings.Join(data.Headers, ","))
	for _, row := range data.Rows {
		b.WriteByte('\n')
		cells := make([]string, len(data.Headers))
		for i, header := range data.Headers {
			cells[i] = quoteIfNeeded(row[header])
		}
		b.WriteString(strings.Join(cells, ","))
	}
	return []byte(b.String()), nil
}

func quoteIfNeeded(value string) string {
	if strings.Contains(value, ",") {
		return `"` + value + `"`
	}
	return value
}
