package bitbuffer

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// MaxRowBits bounds the length of a single row accepted by Parse and AddRow.
const MaxRowBits = 4096

// Row is a single demodulated bit sequence. Bits are packed MSB first within
// each byte, in the order the demodulator received them.
type Row struct {
	Bits int
	Data []byte
}

// Buffer holds the rows produced by a demodulator for one transmission.
// Decoders borrow a Buffer read-only; the caller owns it.
type Buffer struct {
	rows []Row
}

// New returns an empty buffer.
func New() *Buffer {
	return &Buffer{}
}

// AddRow appends a row holding the first bits bits of data. The bytes are
// copied so later changes to data do not affect the buffer.
func (b *Buffer) AddRow(bits int, data []byte) error {
	if bits < 0 || bits > MaxRowBits {
		return fmt.Errorf("row length %d out of range", bits)
	}
	need := (bits + 7) / 8
	if len(data) < need {
		return fmt.Errorf("row of %d bits needs %d bytes, got %d", bits, need, len(data))
	}
	buf := make([]byte, need)
	copy(buf, data[:need])
	if rem := bits % 8; rem != 0 {
		buf[need-1] &= 0xFF << (8 - rem)
	}
	b.rows = append(b.rows, Row{Bits: bits, Data: buf})
	return nil
}

// NewRow starts a new empty row for AddBit. It does nothing when the current
// row is still empty.
func (b *Buffer) NewRow() {
	if n := len(b.rows); n > 0 && b.rows[n-1].Bits == 0 {
		return
	}
	b.rows = append(b.rows, Row{})
}

// AddBit appends one bit to the current row, the way a pulse demodulator
// emits them. It reports false and drops the bit once the row holds
// MaxRowBits bits.
func (b *Buffer) AddBit(bit int) bool {
	if len(b.rows) == 0 {
		b.rows = append(b.rows, Row{})
	}
	row := &b.rows[len(b.rows)-1]
	if row.Bits >= MaxRowBits {
		return false
	}
	if row.Bits%8 == 0 {
		row.Data = append(row.Data, 0)
	}
	if bit != 0 {
		row.Data[row.Bits/8] |= 0x80 >> (row.Bits % 8)
	}
	row.Bits++
	return true
}

// NumRows reports the number of rows.
func (b *Buffer) NumRows() int {
	return len(b.rows)
}

// BitsPerRow returns the bit length of row i, or 0 when the row does not exist.
func (b *Buffer) BitsPerRow(i int) int {
	if i < 0 || i >= len(b.rows) {
		return 0
	}
	return b.rows[i].Bits
}

// Row returns the packed bytes of row i, or nil when the row does not exist.
// The returned slice aliases the buffer and must not be modified.
func (b *Buffer) Row(i int) []byte {
	if i < 0 || i >= len(b.rows) {
		return nil
	}
	return b.rows[i].Data
}

// String renders the buffer in code notation, e.g. "{12}fff/{66}...".
func (b *Buffer) String() string {
	parts := make([]string, len(b.rows))
	for i, row := range b.rows {
		digits := hex.EncodeToString(row.Data)
		digits = digits[:(row.Bits+3)/4]
		parts[i] = fmt.Sprintf("{%d}%s", row.Bits, digits)
	}
	return strings.Join(parts, "/")
}

// Parse reads rows in code notation. Rows are separated by '/', each row is
// an optional "{bits}" length followed by hex digits. Without a length the
// row carries four bits per digit. Whitespace, '|' and '_' are ignored.
func Parse(input string) (*Buffer, error) {
	clean := stripWhitespace(input)
	if clean == "" {
		return nil, fmt.Errorf("empty code")
	}
	buf := New()
	for i, field := range strings.Split(clean, "/") {
		bits, data, err := parseRow(field)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		if err := buf.AddRow(bits, data); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
	}
	return buf, nil
}

func parseRow(field string) (int, []byte, error) {
	var bits int
	hasLength := false
	if strings.HasPrefix(field, "{") {
		end := strings.IndexByte(field, '}')
		if end < 0 {
			return 0, nil, fmt.Errorf("unterminated length in %q", field)
		}
		n, err := strconv.Atoi(field[1:end])
		if err != nil {
			return 0, nil, fmt.Errorf("invalid length in %q: %w", field, err)
		}
		if n < 0 {
			return 0, nil, fmt.Errorf("negative length in %q", field)
		}
		bits = n
		hasLength = true
		field = field[end+1:]
	}
	if strings.HasPrefix(field, "0x") || strings.HasPrefix(field, "0X") {
		field = field[2:]
	}
	if !hasLength {
		bits = len(field) * 4
	}
	if bits > len(field)*4 {
		return 0, nil, fmt.Errorf("length %d exceeds %d hex digits", bits, len(field))
	}
	if len(field)%2 != 0 {
		field += "0"
	}
	data := make([]byte, len(field)/2)
	if _, err := hex.Decode(data, []byte(field)); err != nil {
		return 0, nil, fmt.Errorf("decode hex: %w", err)
	}
	return bits, data, nil
}

func stripWhitespace(s string) string {
	builder := strings.Builder{}
	builder.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || r == '|' || r == '_' {
			continue
		}
		builder.WriteRune(r)
	}
	return builder.String()
}
