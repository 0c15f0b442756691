package usage

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/raterudder/solarsizer/pkg/log"
	"github.com/raterudder/solarsizer/pkg/types"
)

var (
	// ErrNoHeader is returned when a file has no usage header line.
	ErrNoHeader = errors.New("no usage header found")
)

// headerPrefix starts the header line of the PG&E interval export. Everything
// before it is account metadata.
const headerPrefix = "TYPE,DATE"

const byteOrderMark = "\ufeff"

const (
	colType      = "TYPE"
	colDate      = "DATE"
	colStartTime = "START TIME"
	colImport    = "IMPORT (kWh)"
	colExport    = "EXPORT (kWh)"
	colCost      = "COST"
)

// Reader loads hourly usage records.
type Reader interface {
	// ReadFile returns the records of a single export in file order.
	ReadFile(ctx context.Context, path string) ([]types.Usage, error)

	// ReadDir returns the records of every export in a directory in path
	// order. A day that appears at the end of one file and the start of the
	// next is taken from the later file.
	ReadDir(ctx context.Context, dir string) ([]types.Usage, error)
}

// CSVReader reads PG&E "Green Button" hourly interval CSV exports.
type CSVReader struct{}

var _ Reader = CSVReader{}

// ReadFile implements Reader.
func (CSVReader) ReadFile(ctx context.Context, path string) ([]types.Usage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open usage file: %w", err)
	}
	defer f.Close()

	records, err := Parse(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return records, nil
}

// ReadDir implements Reader.
func (r CSVReader) ReadDir(ctx context.Context, dir string) ([]types.Usage, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read usage directory: %w", err)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".csv") {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)

	var all []types.Usage
	for _, path := range paths {
		log.Ctx(ctx).InfoContext(ctx, "reading usage file", slog.String("path", path))
		records, err := r.ReadFile(ctx, path)
		if err != nil {
			return nil, err
		}
		all = Append(all, records)
	}
	return all, nil
}

// Append appends next to prev. Trailing records of prev that share a date with
// the first record of next are dropped first.
func Append(prev, next []types.Usage) []types.Usage {
	if len(next) == 0 {
		return prev
	}
	firstDate := next[0].Date()
	for len(prev) > 0 && prev[len(prev)-1].Date() == firstDate {
		prev = prev[:len(prev)-1]
	}
	return append(prev, next...)
}

// Parse reads a PG&E interval export. Rows that can't be parsed are logged
// and skipped.
func Parse(ctx context.Context, r io.Reader) ([]types.Usage, error) {
	br := bufio.NewReader(r)
	var header string
	for {
		line, err := br.ReadString('\n')
		line = strings.TrimPrefix(line, byteOrderMark)
		if strings.HasPrefix(line, headerPrefix) {
			header = strings.TrimRight(line, "\r\n")
			break
		}
		if err == io.EOF {
			return nil, ErrNoHeader
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read usage file: %w", err)
		}
	}

	columns, err := headerColumns(header)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var records []types.Usage
	var row int
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			log.Ctx(ctx).WarnContext(ctx, "skipping unreadable usage row", slog.Int("row", row), slog.Any("error", err))
			continue
		}
		u, err := parseRow(fields, columns)
		if err != nil {
			log.Ctx(ctx).WarnContext(ctx, "skipping invalid usage row", slog.Int("row", row), slog.Any("error", err))
			continue
		}
		records = append(records, u)
	}
	return records, nil
}

func headerColumns(header string) (map[string]int, error) {
	fields, err := csv.NewReader(strings.NewReader(header)).Read()
	if err != nil {
		return nil, fmt.Errorf("failed to parse usage header: %w", err)
	}
	columns := make(map[string]int, len(fields))
	for i, f := range fields {
		columns[strings.TrimSpace(f)] = i
	}
	for _, required := range []string{colDate, colStartTime, colImport, colExport} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("usage header is missing column %q", required)
		}
	}
	return columns, nil
}

func parseRow(row []string, columns map[string]int) (types.Usage, error) {
	field := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	ts, err := time.Parse(types.DateLayout+" "+types.ClockLayout, field(colDate)+" "+field(colStartTime))
	if err != nil {
		return types.Usage{}, fmt.Errorf("invalid date/time: %w", err)
	}
	imp, err := strconv.ParseFloat(field(colImport), 64)
	if err != nil {
		return types.Usage{}, fmt.Errorf("invalid import: %w", err)
	}
	exp, err := strconv.ParseFloat(field(colExport), 64)
	if err != nil {
		return types.Usage{}, fmt.Errorf("invalid export: %w", err)
	}
	if imp < 0 || exp < 0 {
		return types.Usage{}, fmt.Errorf("negative usage: import=%v export=%v", imp, exp)
	}

	return types.Usage{
		TSHourStart: ts,
		ImportKWH:   imp,
		ExportKWH:   exp,
		Type:        field(colType),
		Cost:        field(colCost),
	}, nil
}
