package fits

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/gammasky/dl3kit/pkg/constants"
)

// TestTable describes a binary table extension written by WriteTestFile.
// The table data is zero-filled.
type TestTable struct {
	Name    string
	Columns []Column
	Rows    int64
	Cards   []Card
}

// WriteTestFile writes a FITS file with an empty primary HDU followed by
// the given binary table extensions.
func WriteTestFile(t testing.TB, path string, tables ...TestTable) {
	t.Helper()

	data, err := EncodeTestFile(tables...)
	if err != nil {
		t.Fatalf("encode FITS fixture: %v", err)
	}
	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		t.Fatalf("write FITS fixture: %v", err)
	}
}

// EncodeTestFile returns the bytes of the file WriteTestFile would write.
func EncodeTestFile(tables ...TestTable) ([]byte, error) {
	var buf bytes.Buffer

	primary := []Card{
		{Key: "SIMPLE", Value: true},
		{Key: "BITPIX", Value: 8},
		{Key: "NAXIS", Value: 0},
		{Key: "EXTEND", Value: true},
	}
	if err := writeHeader(&buf, primary); err != nil {
		return nil, err
	}

	for _, tbl := range tables {
		rowBytes := int64(0)
		for _, col := range tbl.Columns {
			size, err := formatSize(col.Format)
			if err != nil {
				return nil, err
			}
			rowBytes += col.Repeat() * size
		}

		cards := []Card{
			{Key: "XTENSION", Value: "BINTABLE"},
			{Key: "BITPIX", Value: 8},
			{Key: "NAXIS", Value: 2},
			{Key: "NAXIS1", Value: rowBytes},
			{Key: "NAXIS2", Value: tbl.Rows},
			{Key: "PCOUNT", Value: 0},
			{Key: "GCOUNT", Value: 1},
			{Key: "TFIELDS", Value: len(tbl.Columns)},
		}
		for i, col := range tbl.Columns {
			n := strconv.Itoa(i + 1)
			cards = append(cards,
				Card{Key: "TTYPE" + n, Value: col.Name},
				Card{Key: "TFORM" + n, Value: col.Format},
			)
			if col.Unit != "" {
				cards = append(cards, Card{Key: "TUNIT" + n, Value: col.Unit})
			}
			if len(col.Dim) > 0 {
				cards = append(cards, Card{Key: "TDIM" + n, Value: formatDim(col.Dim)})
			}
		}
		cards = append(cards, Card{Key: "EXTNAME", Value: tbl.Name})
		cards = append(cards, tbl.Cards...)

		if err := writeHeader(&buf, cards); err != nil {
			return nil, err
		}

		size := rowBytes * tbl.Rows
		buf.Write(make([]byte, size))
		pad(&buf, byte(0))
	}

	return buf.Bytes(), nil
}

func writeHeader(buf *bytes.Buffer, cards []Card) error {
	for _, c := range cards {
		line, err := formatCard(c)
		if err != nil {
			return err
		}
		buf.WriteString(line)
	}
	buf.WriteString(fmt.Sprintf("%-80s", "END"))
	pad(buf, ' ')
	return nil
}

func formatCard(c Card) (string, error) {
	if len(c.Key) > constants.MaxKeywordLength {
		return "", fmt.Errorf("keyword %q longer than %d characters", c.Key, constants.MaxKeywordLength)
	}

	var value string
	switch v := c.Value.(type) {
	case string:
		value = fmt.Sprintf("'%-8s'", strings.ReplaceAll(v, "'", "''"))
		value = fmt.Sprintf("%-20s", value)
	case bool:
		b := "F"
		if v {
			b = "T"
		}
		value = fmt.Sprintf("%20s", b)
	case int:
		value = fmt.Sprintf("%20d", v)
	case int64:
		value = fmt.Sprintf("%20d", v)
	case float64:
		value = fmt.Sprintf("%20s", strconv.FormatFloat(v, 'E', -1, 64))
	default:
		return "", fmt.Errorf("unsupported value type %T for keyword %s", c.Value, c.Key)
	}

	line := fmt.Sprintf("%-8s= %s", c.Key, value)
	if c.Comment != "" {
		line += " / " + c.Comment
	}
	if len(line) > constants.CardSize {
		return "", fmt.Errorf("card for keyword %s exceeds %d characters", c.Key, constants.CardSize)
	}
	return fmt.Sprintf("%-80s", line), nil
}

func formatSize(format string) (int64, error) {
	code := strings.TrimLeft(format, "0123456789")
	if code == "" {
		return 0, fmt.Errorf("invalid TFORM %q", format)
	}
	switch code[0] {
	case 'L', 'B', 'A':
		return 1, nil
	case 'I':
		return 2, nil
	case 'J', 'E':
		return 4, nil
	case 'K', 'D':
		return 8, nil
	default:
		return 0, fmt.Errorf("unsupported TFORM %q", format)
	}
}

func pad(buf *bytes.Buffer, b byte) {
	if rem := buf.Len() % constants.BlockSize; rem != 0 {
		buf.Write(bytes.Repeat([]byte{b}, constants.BlockSize-rem))
	}
}

func formatDim(dim []int64) string {
	parts := make([]string, len(dim))
	for i, d := range dim {
		parts[i] = strconv.FormatInt(d, 10)
	}
	return "(" + strings.Join(parts, ",") + ")"
}

// FormatRepeat returns a TFORM value such as "42E".
func FormatRepeat(n int64, code string) string {
	return strconv.FormatInt(n, 10) + code
}
