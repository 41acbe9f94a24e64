package sheet

import (
	"errors"
	"strings"
)

// ErrUnterminatedQuote is returned by a strict Tokenizer when the input ends
// inside a quoted cell.
var ErrUnterminatedQuote = errors.New("unterminated quoted cell")

// Tokenizer splits sheet CSV exports into rows of trimmed cells.
//
// The zero value is lenient: an unterminated quote swallows the rest of the
// input into the open cell, which is how the sheets have always been read.
type Tokenizer struct {
	// SkipBlankRows drops rows whose cells are all empty after trimming.
	SkipBlankRows bool
	// Strict reports an unterminated quote as ErrUnterminatedQuote.
	Strict bool
}

// Parse tokenizes text with the lenient, emit-all policy.
func Parse(text string) [][]string {
	rows, _ := Tokenizer{}.Parse(text)
	return rows
}

func (t Tokenizer) Parse(text string) ([][]string, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var (
		rows     [][]string
		row      []string
		cell     strings.Builder
		inQuotes bool
		pending  bool // something consumed since the last row ended
	)

	endCell := func() {
		row = append(row, strings.TrimSpace(cell.String()))
		cell.Reset()
	}
	endRow := func() {
		endCell()
		if !t.SkipBlankRows || !blank(row) {
			rows = append(rows, row)
		}
		row = nil
		pending = false
	}

	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '"':
			pending = true
			if inQuotes && i+1 < len(text) && text[i+1] == '"' {
				cell.WriteByte('"')
				i++
				continue
			}
			inQuotes = !inQuotes
		case c == ',' && !inQuotes:
			pending = true
			endCell()
		case c == '\n' && !inQuotes:
			endRow()
		default:
			pending = true
			cell.WriteByte(c)
		}
	}

	if inQuotes && t.Strict {
		return nil, ErrUnterminatedQuote
	}
	if pending {
		endRow()
	}
	return rows, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if c != "" {
			return false
		}
	}
	return true
}
