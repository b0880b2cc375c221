// Package spreadsheet reads the shop's daily sales workbooks.
package spreadsheet

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/SscSPs/credit_tracking_app/internal/apperrors"
	"github.com/SscSPs/credit_tracking_app/internal/core/domain"
	"github.com/SscSPs/credit_tracking_app/internal/core/ports"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// headerScanRows is how many leading rows of a sheet are searched for the header.
const headerScanRows = 10

type column int

const (
	colName column = iota
	colSales
	colCash
	colBank
	colWallet
	colOther
)

// columnLabels are the canonical header texts, used in error messages.
var columnLabels = map[column]string{
	colName:   "Particulars",
	colSales:  "SALES",
	colCash:   "CASH",
	colBank:   "kotak/hdfc",
	colWallet: "G PAY",
	colOther:  "PAYMENT",
}

var amountColumns = []column{colSales, colCash, colBank, colWallet, colOther}

// headerAliases maps normalized header text to a column.
var headerAliases = map[string]column{
	"PARTICULARS": colName,
	"SALES":       colSales,
	"CASH":        colCash,
	"KOTAK/HDFC":  colBank,
	"HDFC":        colBank,
	"KOTAK":       colBank,
	"G PAY":       colWallet,
	"GPAY":        colWallet,
	"PAYMENT":     colOther,
	"PAYMENTS":    colOther,
}

var acceptedExtensions = map[string]bool{".xlsx": true, ".xlsm": true, ".xls": true}

var dateLayouts = []string{"2-1-06", "2-1-2006", "2/1/2006", "2/1/06", domain.DateLayout}

// Parser implements ports.WorkbookParser with excelize.
type Parser struct{}

// NewParser creates a workbook parser.
func NewParser() *Parser {
	return &Parser{}
}

var _ ports.WorkbookParser = (*Parser)(nil)

// Parse reads the first sheet that has a header row. Rows with a blank customer name are
// skipped and counted; blank or "-" amount cells read as zero.
func (p *Parser) Parse(fileName string, content []byte) (*domain.ParsedWorkbook, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	if !acceptedExtensions[ext] {
		return nil, apperrors.NewIngestError(apperrors.ErrUnparsableFile, 0, "", fmt.Sprintf("unsupported file type %q, expected .xlsx", ext))
	}

	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		detail := err.Error()
		if ext == ".xls" {
			detail = "legacy .xls workbooks are not supported, save the file as .xlsx"
		}
		return nil, apperrors.NewIngestError(apperrors.ErrUnparsableFile, 0, "", detail)
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, apperrors.NewIngestError(apperrors.ErrUnparsableFile, 0, "", fmt.Sprintf("sheet %q: %v", sheet, err))
		}
		headerIdx, columns := findHeader(rows)
		if headerIdx < 0 {
			continue
		}
		if err := checkColumns(headerIdx, columns); err != nil {
			return nil, err
		}
		return parseSheet(sheet, rows, headerIdx, columns)
	}

	return nil, apperrors.NewIngestError(apperrors.ErrMissingColumns, 0, "", "no sheet has a header row with a Particulars column")
}

// findHeader returns the index of the first row containing a Particulars cell and the
// position of every recognized column in it.
func findHeader(rows [][]string) (int, map[column]int) {
	for i := 0; i < len(rows) && i < headerScanRows; i++ {
		columns := make(map[column]int)
		for j, cell := range rows[i] {
			c, ok := headerAliases[normalizeHeader(cell)]
			if !ok {
				continue
			}
			if _, seen := columns[c]; !seen {
				columns[c] = j
			}
		}
		if _, ok := columns[colName]; ok {
			return i, columns
		}
	}
	return -1, nil
}

func checkColumns(headerIdx int, columns map[column]int) error {
	for _, c := range amountColumns {
		if _, ok := columns[c]; ok {
			return nil
		}
	}
	labels := make([]string, 0, len(amountColumns))
	for _, c := range amountColumns {
		labels = append(labels, columnLabels[c])
	}
	return apperrors.NewIngestError(apperrors.ErrMissingColumns, headerIdx+1, "",
		"need at least one of "+strings.Join(labels, ", "))
}

func parseSheet(sheet string, rows [][]string, headerIdx int, columns map[column]int) (*domain.ParsedWorkbook, error) {
	wb := &domain.ParsedWorkbook{Sheet: sheet}

	for i := 0; i <= headerIdx; i++ {
		if d, ok := findDateCell(rows[i]); ok {
			wb.HeaderDate = &d
			break
		}
	}

	start := headerIdx + 1
	if wb.HeaderDate == nil && start < len(rows) {
		// A date written in the first row under the header is a date row, not data.
		if d, ok := findDateValue(rows[start]); ok {
			wb.HeaderDate = &d
			start++
		}
	}

	for i := start; i < len(rows); i++ {
		row := rows[i]
		if isBlankRow(row) {
			continue
		}
		name := strings.TrimSpace(cellAt(row, columns, colName))
		if name == "" {
			wb.SkippedRows++
			continue
		}

		parsed := domain.WorkbookRow{Row: i + 1, CustomerName: name}
		targets := map[column]*decimal.Decimal{
			colSales:  &parsed.Sales,
			colCash:   &parsed.Cash,
			colBank:   &parsed.BankTransfer,
			colWallet: &parsed.MobileWallet,
			colOther:  &parsed.OtherPayment,
		}
		for _, c := range amountColumns {
			v, err := parseAmount(cellAt(row, columns, c))
			if err != nil {
				return nil, apperrors.NewIngestError(apperrors.ErrInvalidCell, i+1, columnLabels[c], err.Error())
			}
			if v.IsNegative() {
				return nil, apperrors.NewIngestError(apperrors.ErrNegativeAmount, i+1, columnLabels[c], v.String())
			}
			*targets[c] = v
		}
		wb.Rows = append(wb.Rows, parsed)
	}
	return wb, nil
}

// cellAt returns the cell of column c, or "" when the column or cell is absent.
func cellAt(row []string, columns map[column]int, c column) string {
	j, ok := columns[c]
	if !ok || j >= len(row) {
		return ""
	}
	return row[j]
}

// parseAmount reads a money cell. Blank and "-" are zero; thousands separators are ignored.
func parseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" || s == "-" {
		return decimal.Zero, nil
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%q is not a number", raw)
	}
	return v, nil
}

// findDateCell looks for a "DATE dd-mm-yy" style cell and parses its last token.
func findDateCell(row []string) (time.Time, bool) {
	for _, cell := range row {
		if !strings.Contains(strings.ToUpper(cell), "DATE") {
			continue
		}
		tokens := strings.FieldsFunc(cell, func(r rune) bool { return unicode.IsSpace(r) || r == ':' })
		if len(tokens) == 0 {
			continue
		}
		if d, ok := parseDate(tokens[len(tokens)-1]); ok {
			return d, true
		}
	}
	return time.Time{}, false
}

// findDateValue returns the first cell of row that is itself a date.
func findDateValue(row []string) (time.Time, bool) {
	for _, cell := range row {
		if !strings.Contains(cell, "-") && !strings.Contains(cell, "/") {
			continue
		}
		if d, ok := parseDate(cell); ok {
			return d, true
		}
	}
	return time.Time{}, false
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return domain.NormalizeDate(d), true
		}
	}
	return time.Time{}, false
}

func normalizeHeader(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), " "))
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
