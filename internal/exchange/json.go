package exchange

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/fintrack/internal/model"
)

// JSONCodec reads and writes a JSON array of transaction objects:
//
//	[{"id": "1", "type": "expense", "amount": 12.5, "description": "Coffee",
//	  "category": "Food", "date": "2024-01-05"}]
//
// On import "kind" is accepted in place of "type".
type JSONCodec struct{}

const jsonIndent = "  "

type jsonRecord struct {
	ID          string      `json:"id"`
	Type        string      `json:"type"`
	Amount      json.Number `json:"amount"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Date        string      `json:"date"`
}

// Format returns the codec name.
func (c *JSONCodec) Format() string { return "json" }

// Extension returns the file extension.
func (c *JSONCodec) Extension() string { return ".json" }

// Encode writes txns as a pretty-printed JSON array.
func (c *JSONCodec) Encode(w io.Writer, txns []model.Transaction) error {
	data, err := marshalRecords(txns, jsonIndent)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	return nil
}

// Decode reads a JSON array and keeps the candidates that pass Valid.
func (c *JSONCodec) Decode(r io.Reader) (Batch, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Batch{}, &ImportError{Message: MsgUnreadable, Err: err}
	}
	data = bytes.TrimSpace(data)
	if !json.Valid(data) {
		return Batch{}, &ImportError{Message: MsgUnreadable}
	}
	if len(data) == 0 || data[0] != '[' {
		return Batch{}, &ImportError{Message: MsgNotCollection}
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return Batch{}, &ImportError{Message: MsgNotCollection, Err: err}
	}

	var b Batch
	for _, raw := range raws {
		txn, ok := decodeCandidate(raw)
		if !ok {
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

// DecodeAll reads a JSON array written by Encode. Unlike Decode it fails on
// any record that does not pass the validity check and accepts an empty
// array.
func (c *JSONCodec) DecodeAll(r io.Reader) ([]model.Transaction, error) {
	var raws []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raws); err != nil {
		return nil, fmt.Errorf("decoding transactions: %w", err)
	}
	out := make([]model.Transaction, 0, len(raws))
	for i, raw := range raws {
		txn, ok := decodeCandidate(raw)
		if !ok {
			return nil, fmt.Errorf("record %d is not a valid transaction", i)
		}
		out = append(out, txn)
	}
	return out, nil
}

// DataSize returns the size in bytes of txns as compact JSON.
func DataSize(txns []model.Transaction) (int, error) {
	data, err := marshalRecords(txns, "")
	if err != nil {
		return 0, err
	}
	return len(bytes.TrimSuffix(data, []byte("\n"))), nil
}

// marshalRecords encodes txns followed by a newline, compact when indent is
// empty. <, > and & are written as is.
func marshalRecords(txns []model.Transaction, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(toRecords(txns)); err != nil {
		return nil, fmt.Errorf("encoding transactions: %w", err)
	}
	return buf.Bytes(), nil
}

func toRecords(txns []model.Transaction) []jsonRecord {
	out := make([]jsonRecord, len(txns))
	for i, t := range txns {
		out[i] = jsonRecord{
			ID:          t.ID,
			Type:        string(t.Kind),
			Amount:      json.Number(t.Amount.String()),
			Description: t.Description,
			Category:    t.Category,
			Date:        t.Date,
		}
	}
	return out
}

// decodeCandidate applies the import validity check to one array element:
// string id, kind of income or expense, numeric amount, and string
// description, category and date.
func decodeCandidate(raw json.RawMessage) (model.Transaction, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return model.Transaction{}, false
	}

	kindRaw, ok := fields["type"]
	if !ok {
		kindRaw = fields["kind"]
	}
	kind, ok := jsonString(kindRaw)
	if !ok || !model.Kind(kind).Valid() {
		return model.Transaction{}, false
	}

	id, okID := jsonString(fields["id"])
	desc, okDesc := jsonString(fields["description"])
	category, okCat := jsonString(fields["category"])
	date, okDate := jsonString(fields["date"])
	amount, okAmount := jsonNumber(fields["amount"])
	if !okID || !okDesc || !okCat || !okDate || !okAmount {
		return model.Transaction{}, false
	}

	return model.Transaction{
		ID:          id,
		Kind:        model.Kind(kind),
		Amount:      amount,
		Description: desc,
		Category:    category,
		Date:        date,
	}, true
}

func jsonString(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func jsonNumber(raw json.RawMessage) (decimal.Decimal, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || (raw[0] != '-' && (raw[0] < '0' || raw[0] > '9')) {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(string(raw))
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}
