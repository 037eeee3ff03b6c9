package export

// Dataset defines tabular content moving across the import/export boundary.
// Rows are keyed by header name; missing keys render as empty cells.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}
