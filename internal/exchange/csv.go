package exchange

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/fintrack/internal/model"
)

// CSVHeader is the header row of a CSV export.
const CSVHeader = "id,type,amount,description,category,date"

const (
	numFields  = 6
	colID      = 0
	colType    = 1
	colAmount  = 2
	colDesc    = 3
	colCat     = 4
	colDate    = 5
	headerFlag = "id"
)

// CSVCodec reads and writes transactions as CSV with a CSVHeader row.
type CSVCodec struct{}

// Format returns the codec name.
func (c *CSVCodec) Format() string { return "csv" }

// Extension returns the file extension.
func (c *CSVCodec) Extension() string { return ".csv" }

// Encode writes the header and one row per transaction.
func (c *CSVCodec) Encode(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(strings.Split(CSVHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, t := range txns {
		if err := cw.Write(MarshalRow(t)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Decode reads CSV rows and keeps the valid ones. The header row is optional.
func (c *CSVCodec) Decode(r io.Reader) (Batch, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return Batch{}, &ImportError{Message: MsgUnreadable, Err: fmt.Errorf("reading CSV: %w", err)}
	}
	if len(records) > 0 && strings.EqualFold(strings.TrimSpace(records[0][0]), headerFlag) {
		records = records[1:]
	}

	var b Batch
	for _, rec := range records {
		txn, err := UnmarshalRow(rec)
		if err != nil {
			b.Invalid++
			continue
		}
		b.Transactions = append(b.Transactions, txn)
	}
	if len(b.Transactions) == 0 {
		return b, &ImportError{Message: MsgNoValid}
	}
	return b, nil
}

// MarshalRow converts a Transaction to a CSV row.
func MarshalRow(t model.Transaction) []string {
	row := make([]string, numFields)
	row[colID] = t.ID
	row[colType] = string(t.Kind)
	row[colAmount] = t.Amount.String()
	row[colDesc] = t.Description
	row[colCat] = t.Category
	row[colDate] = t.Date
	return row
}

// UnmarshalRow converts a CSV row to a Transaction, applying the same
// validity check as JSON import.
func UnmarshalRow(record []string) (model.Transaction, error) {
	if len(record) != numFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	kind := model.Kind(record[colType])
	if !kind.Valid() {
		return model.Transaction{}, fmt.Errorf("unknown type %q", record[colType])
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(record[colAmount]))
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	return model.Transaction{
		ID:          record[colID],
		Kind:        kind,
		Amount:      amount,
		Description: record[colDesc],
		Category:    record[colCat],
		Date:        record[colDate],
	}, nil
}
