package backend

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"git.sr.ht/~whereswaldon/barchart/interaction"
)

var (
	// ErrUnsupportedFormat is returned for files that are neither CSV nor
	// XLSX.
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
	// ErrMalformedRow wraps every row that cannot be turned into a point.
	ErrMalformedRow = errors.New("malformed row")
)

// zipMagic prefixes every XLSX file.
var zipMagic = []byte("PK\x03\x04")

// Load reads the dataset at path, choosing a parser from the file extension.
func Load(path string) (interaction.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return interaction.Dataset{}, fmt.Errorf("failed opening dataset: %w", err)
	}
	defer f.Close()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return ParseCSV(f)
	case ".xlsx":
		return ParseXLSX(f, "")
	default:
		return interaction.Dataset{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Decode sniffs r and parses it as XLSX or CSV.
func Decode(r io.Reader) (interaction.Dataset, error) {
	br := bufio.NewReader(r)
	head, _ := br.Peek(len(zipMagic))
	if bytes.Equal(head, zipMagic) {
		return ParseXLSX(br, "")
	}
	return ParseCSV(br)
}

func newCSVReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	return cr
}

// ParseCSV reads label,value rows. A leading header row is skipped.
func ParseCSV(r io.Reader) (interaction.Dataset, error) {
	rows, err := newCSVReader(r).ReadAll()
	if err != nil {
		return interaction.Dataset{}, fmt.Errorf("failed reading CSV: %w", err)
	}
	return parseRows(rows)
}

// ParseXLSX reads label,value rows from the named sheet, or the first sheet
// when sheet is empty.
func ParseXLSX(r io.Reader, sheet string) (interaction.Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return interaction.Dataset{}, fmt.Errorf("failed opening workbook: %w", err)
	}
	defer f.Close()
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return interaction.Dataset{}, nil
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return interaction.Dataset{}, fmt.Errorf("failed reading sheet %q: %w", sheet, err)
	}
	return parseRows(rows)
}

func parseRows(rows [][]string) (interaction.Dataset, error) {
	var (
		points []interaction.DataPoint
		errs   []error
		seen   bool
	)
	for i, row := range rows {
		if blank(row) {
			continue
		}
		p, err := parseRow(row)
		if err != nil {
			if !seen {
				// The first row may be a header.
				seen = true
				continue
			}
			errs = append(errs, fmt.Errorf("row %d: %w", i+1, err))
			continue
		}
		seen = true
		points = append(points, p)
	}
	if len(errs) > 0 {
		return interaction.Dataset{}, errors.Join(errs...)
	}
	return interaction.NewDataset(points...), nil
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// parseRow accepts "value" or "label,value[,ignored...]".
func parseRow(row []string) (interaction.DataPoint, error) {
	var label, raw string
	switch len(row) {
	case 0:
		return interaction.DataPoint{}, fmt.Errorf("%w: empty", ErrMalformedRow)
	case 1:
		raw = row[0]
	default:
		label, raw = row[0], row[1]
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return interaction.DataPoint{}, fmt.Errorf("%w: value %q is not a number", ErrMalformedRow, raw)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return interaction.DataPoint{}, fmt.Errorf("%w: value %q is not finite", ErrMalformedRow, raw)
	}
	return interaction.DataPoint{Label: strings.TrimSpace(label), Value: value}, nil
}
