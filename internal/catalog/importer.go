// AngelaMos | 2026
// importer.go

package catalog

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/risingherb/herb-api/internal/core"
)

var ErrInvalidSheet = errors.New("invalid spreadsheet")

// SheetRow is one data row of an import sheet. Line is the 1-based row
// number as shown in a spreadsheet editor.
type SheetRow struct {
	Line    int
	Request ItemRequest
	Err     error
}

var headerAliases = map[string]string{
	"name":            "name",
	"description":     "description",
	"category":        "category",
	"minprice":        "minPrice",
	"min_price":       "minPrice",
	"min price":       "minPrice",
	"maxprice":        "maxPrice",
	"max_price":       "maxPrice",
	"max price":       "maxPrice",
	"unit":            "unit",
	"imageurl":        "imageUrl",
	"image_url":       "imageUrl",
	"image url":       "imageUrl",
	"whatsappnumber":  "whatsappNumber",
	"whatsapp_number": "whatsappNumber",
	"whatsapp":        "whatsappNumber",
}

// ReadSheet reads the first worksheet. The first row must be a header
// naming at least the name, category, and price columns.
func ReadSheet(r io.Reader) ([]SheetRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSheet, err)
	}
	defer f.Close() //nolint:errcheck // read-only workbook

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrInvalidSheet)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet is empty", ErrInvalidSheet)
	}

	columns := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		if field, ok := headerAliases[strings.ToLower(strings.TrimSpace(h))]; ok {
			columns[field] = i
		}
	}
	for _, required := range []string{"name", "category", "minPrice", "maxPrice"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("%w: missing %s column", ErrInvalidSheet, required)
		}
	}

	out := make([]SheetRow, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		out = append(out, parseRow(i+2, row, columns))
	}

	return out, nil
}

func parseRow(line int, row []string, columns map[string]int) SheetRow {
	cell := func(field string) string {
		idx, ok := columns[field]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	result := SheetRow{Line: line}

	minPrice, err := parsePrice(cell("minPrice"))
	if err != nil {
		result.Err = fmt.Errorf("minPrice: %w", err)
		return result
	}
	maxPrice, err := parsePrice(cell("maxPrice"))
	if err != nil {
		result.Err = fmt.Errorf("maxPrice: %w", err)
		return result
	}

	result.Request = ItemRequest{
		Name:           cell("name"),
		Description:    cell("description"),
		Category:       cell("category"),
		MinPrice:       minPrice,
		MaxPrice:       maxPrice,
		Unit:           cell("unit"),
		ImageURL:       cell("imageUrl"),
		WhatsAppNumber: cell("whatsappNumber"),
	}
	return result
}

// parsePrice leaves an empty cell nil so the validator reports it as
// missing.
func parsePrice(s string) (*Number, error) {
	if s == "" {
		return nil, nil
	}
	f, err := parseFinite(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", err, core.ErrInvalidInput)
	}
	return NumberPtr(f), nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
