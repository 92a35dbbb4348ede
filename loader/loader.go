package loader

import (
	"bufio"
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

//go:embed schema.sql
var schemaSQL string

// tableColumns lists, per loadable table, the CSV column order.
var tableColumns = map[string][]string{
	"wip_units":    unitColumns,
	"rework_units": unitColumns,
	"scrap_tasks":  {"serial_number", "apply_task_status", "task_number", "updated_at"},
	"test_events":  {"serial_number", "test_group", "test_time"},
}

var unitColumns = []string{
	"serial_number", "model_name", "mo_number", "product_line", "wip_group", "error_flag", "work_flag",
	"test_group", "test_code", "error_item_code", "error_desc", "check_in_date", "aging_day",
}

// Column value conversions, keyed by column name. Empty values in nullable
// columns are stored as NULL.
var (
	integerColumns  = map[string]bool{"apply_task_status": true}
	nullableColumns = map[string]bool{"check_in_date": true, "task_number": true, "updated_at": true}
)

// CSVOptions controls how a CSV export is decoded.
type CSVOptions struct {
	ShiftJIS   bool
	SkipHeader bool
}

// InitDatabase applies the schema.
func InitDatabase(db *sqlx.DB, logger *zap.Logger) error {
	logger.Info("Applying database schema")
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	logger.Info("Schema applied")
	return nil
}

// Tables lists the tables LoadCSV accepts.
func Tables() []string {
	return []string{"wip_units", "rework_units", "scrap_tasks", "test_events"}
}

// LoadCSVFile opens path and loads it into table.
func LoadCSVFile(db *sqlx.DB, logger *zap.Logger, path, table string, opts CSVOptions) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("could not open file %s: %w", path, err)
	}
	defer f.Close()
	return LoadCSV(db, logger, f, table, opts)
}

// LoadCSV appends every row of r to table inside one transaction. Rows with
// too few columns are skipped; extra columns are ignored.
func LoadCSV(db *sqlx.DB, logger *zap.Logger, r io.Reader, table string, opts CSVOptions) (count int, err error) {
	columns, ok := tableColumns[table]
	if !ok {
		return 0, fmt.Errorf("unknown table %q", table)
	}

	var src io.Reader
	if opts.ShiftJIS {
		src = transform.NewReader(r, japanese.ShiftJIS.NewDecoder())
	} else {
		src = skipBOM(r)
	}
	cr := csv.NewReader(src)
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	if opts.SkipHeader {
		if _, err := cr.Read(); err != nil && err != io.EOF {
			return 0, fmt.Errorf("failed to skip header for %s: %w", table, err)
		}
	}

	tx, err := db.Beginx()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		} else if err != nil {
			logger.Warn("Rolling back CSV load", zap.String("table", table), zap.Error(err))
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	placeholders := strings.Repeat("?,", len(columns)-1) + "?"
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(columns, ", "), placeholders)
	stmt, err := tx.Preparex(tx.Rebind(query))
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement for %s: %w", table, err)
	}
	defer stmt.Close()

	line := 0
	for {
		row, readErr := cr.Read()
		if readErr == io.EOF {
			break
		}
		line++
		if readErr != nil {
			logger.Warn("Skipping unreadable CSV row", zap.String("table", table), zap.Int("line", line), zap.Error(readErr))
			continue
		}
		if len(row) < len(columns) {
			logger.Warn("Skipping short CSV row", zap.String("table", table), zap.Int("line", line),
				zap.Int("expected", len(columns)), zap.Int("got", len(row)))
			continue
		}

		args := make([]interface{}, len(columns))
		for i, col := range columns {
			args[i] = convertValue(col, strings.TrimSpace(row[i]))
		}
		if _, err = stmt.Exec(args...); err != nil {
			return count, fmt.Errorf("failed to insert row %d into %s: %w", line, table, err)
		}
		count++
	}
	logger.Info("Loaded CSV", zap.String("table", table), zap.Int("rows", count))
	return count, nil
}

func convertValue(column, val string) interface{} {
	if integerColumns[column] {
		n, err := strconv.Atoi(val)
		if err != nil {
			return 0
		}
		return n
	}
	if val == "" && nullableColumns[column] {
		return nil
	}
	return val
}

// skipBOM drops a leading UTF-8 byte order mark.
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if peeked, err := br.Peek(3); err == nil && peeked[0] == 0xEF && peeked[1] == 0xBB && peeked[2] == 0xBF {
		br.Discard(3)
	}
	return br
}
