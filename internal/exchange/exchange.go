// Package exchange reads and writes the portable interchange formats used by
// export and import.
package exchange

import (
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/cleared-dev/fintrack/internal/model"
)

// Codec converts between a transaction collection and one interchange format.
type Codec interface {
	// Decode reads candidate records and keeps the valid ones. A payload
	// that is not a collection, or holds no valid record, fails with an
	// *ImportError.
	Decode(r io.Reader) (Batch, error)
	// Encode writes the collection verbatim.
	Encode(w io.Writer, txns []model.Transaction) error
	Format() string
	Extension() string
}

// Batch is the result of decoding an interchange payload.
type Batch struct {
	Transactions []model.Transaction
	// Invalid counts candidates dropped by the validity check.
	Invalid int
}

// ImportError is a payload-level import failure. Nothing from the payload
// may be applied when one is returned.
type ImportError struct {
	Message string
	Err     error
}

func (e *ImportError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ImportError) Unwrap() error { return e.Err }

// Messages for payload-level failures.
const (
	MsgNotCollection = "Invalid data format: expected an array of transactions"
	MsgNoValid       = "No valid transactions found in the imported file"
	MsgUnreadable    = "Invalid file format"
)

// Registry holds named codecs.
type Registry struct {
	codecs map[string]Codec
}

// NewRegistry creates an empty codec registry.
func NewRegistry() *Registry {
	return &Registry{codecs: make(map[string]Codec)}
}

// Register adds a codec. Panics on duplicate format.
func (r *Registry) Register(c Codec) {
	key := strings.ToLower(c.Format())
	if _, ok := r.codecs[key]; ok {
		panic("duplicate codec format: " + key)
	}
	r.codecs[key] = c
}

// Get returns the codec for format, or nil.
func (r *Registry) Get(format string) Codec {
	return r.codecs[strings.ToLower(format)]
}

// ForFile returns the codec whose extension matches name, or nil.
func (r *Registry) ForFile(name string) Codec {
	ext := strings.ToLower(filepath.Ext(name))
	for _, c := range r.codecs {
		if c.Extension() == ext {
			return c
		}
	}
	return nil
}

// Formats returns the registered format names, sorted.
func (r *Registry) Formats() []string {
	out := make([]string, 0, len(r.codecs))
	for k := range r.codecs {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// DefaultRegistry returns a registry with all built-in codecs.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&JSONCodec{})
	r.Register(&CSVCodec{})
	return r
}

// ExportFileName returns the suggested export file name for the day of ref,
// e.g. "expense-tracker-data-2024-01-05.json".
func ExportFileName(ref time.Time, c Codec) string {
	return fmt.Sprintf("expense-tracker-data-%s%s", ref.Format(model.DateFormat), c.Extension())
}

// FormatSize renders a byte count as "N bytes" below 1 KiB and as KB with
// one decimal above.
func FormatSize(n int) string {
	if n < 1024 {
		return fmt.Sprintf("%d bytes", n)
	}
	return fmt.Sprintf("%.1f KB", float64(n)/1024)
}
