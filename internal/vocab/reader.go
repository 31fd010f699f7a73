package vocab

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalidFormat is returned when a file is not a list of entries.
	ErrInvalidFormat = errors.New("invalid format: expected a list of {category, english, german, example} entries")
	// ErrUnsupportedFormat is returned for file extensions without a reader.
	ErrUnsupportedFormat = errors.New("unsupported file format: use .json, .yml, .yaml, .xlsx or .csv")
)

// Column header aliases accepted by the spreadsheet readers.
var (
	categoryHeaders    = []string{"Category", "category", "Kategorie"}
	termHeaders        = []string{"English term", "English", "english"}
	translationHeaders = []string{"German explanation", "German", "german", "Deutsch"}
	exampleHeaders     = []string{"Example sentence", "Example", "example"}
)

// ReadFile reads the entries of path with the reader matching its extension.
// The entries are not normalized.
func ReadFile(path string) ([]Item, error) {
	ext := strings.ToLower(filepath.Ext(path))
	var read func(io.Reader) ([]Item, error)
	switch ext {
	case ".json":
		read = ReadJSON
	case ".yml", ".yaml":
		read = ReadYAML
	case ".xlsx":
		read = ReadXLSX
	case ".csv":
		read = ReadCSV
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open(%s) > %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	items, err := read(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return items, nil
}

// ReadJSON reads a JSON array of entries.
func ReadJSON(r io.Reader) ([]Item, error) {
	var entries []map[string]any
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, ErrInvalidFormat
		}
		return nil, fmt.Errorf("json.NewDecoder().Decode() > %w", err)
	}
	return fromEntries(entries), nil
}

// ReadYAML reads a YAML sequence of entries.
func ReadYAML(r io.Reader) ([]Item, error) {
	var entries []map[string]any
	if err := yaml.NewDecoder(r).Decode(&entries); err != nil {
		if errors.Is(err, io.EOF) {
			return []Item{}, nil
		}
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) {
			return nil, ErrInvalidFormat
		}
		return nil, fmt.Errorf("yaml.NewDecoder().Decode() > %w", err)
	}
	return fromEntries(entries), nil
}

// ReadXLSX reads the first sheet of a workbook. The first row is the header.
func ReadXLSX(r io.Reader) ([]Item, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("excelize.OpenReader() > %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return []Item{}, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("f.GetRows(%s) > %w", sheets[0], err)
	}
	return fromRows(rows), nil
}

// ReadCSV reads comma separated entries. The first record is the header.
func ReadCSV(r io.Reader) ([]Item, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv.Reader.ReadAll() > %w", err)
	}
	return fromRows(rows), nil
}

func fromEntries(entries []map[string]any) []Item {
	items := make([]Item, 0, len(entries))
	for _, entry := range entries {
		items = append(items, Item{
			Category:    stringValue(entry["category"]),
			Term:        stringValue(entry["english"]),
			Translation: stringValue(entry["german"]),
			Example:     stringValue(entry["example"]),
		})
	}
	return items
}

func stringValue(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func fromRows(rows [][]string) []Item {
	if len(rows) == 0 {
		return []Item{}
	}

	header := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		name = strings.TrimSpace(name)
		if _, ok := header[name]; !ok {
			header[name] = i
		}
	}

	items := make([]Item, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		items = append(items, Item{
			Category:    pick(row, header, categoryHeaders),
			Term:        pick(row, header, termHeaders),
			Translation: pick(row, header, translationHeaders),
			Example:     pick(row, header, exampleHeaders),
		})
	}
	return items
}

// pick returns the first non-blank cell among the aliased columns.
func pick(row []string, header map[string]int, aliases []string) string {
	for _, alias := range aliases {
		i, ok := header[alias]
		if !ok || i >= len(row) {
			continue
		}
		if strings.TrimSpace(row[i]) != "" {
			return row[i]
		}
	}
	return ""
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
