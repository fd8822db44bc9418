package board

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var (
	// ErrInvalidHeader means the first line was not two positive integers.
	ErrInvalidHeader = errors.New("board header must be two positive integers")
	// ErrMissingCells means the input held fewer cells than the header promised,
	// or a required tile value was absent.
	ErrMissingCells = errors.New("board is missing cells")
	// ErrDuplicateCells means some tile value appeared more than once.
	ErrDuplicateCells = errors.New("board has duplicate cells")
)

// Parse reads a board in the textual form used throughout this module:
// a "rows cols" header line followed by rows lines of space-separated tile
// values, 0 marking the blank. It validates the exact-permutation invariant,
// so a board returned by Parse is safe to hand to any solver.
func Parse(s string) (*Board, error) {
	return ParseReader(strings.NewReader(s))
}

// ParseReader is Parse over an io.Reader.
func ParseReader(r io.Reader) (*Board, error) {
	scanner := bufio.NewScanner(r)

	if !scanner.Scan() {
		return nil, ErrInvalidHeader
	}
	header := strings.Fields(scanner.Text())
	if len(header) != 2 {
		return nil, ErrInvalidHeader
	}
	rows, err := parseDimension(header[0])
	if err != nil {
		return nil, err
	}
	cols, err := parseDimension(header[1])
	if err != nil {
		return nil, err
	}

	n := int(rows) * int(cols)
	cells := make([]uint8, 0, n)
	for len(cells) < n && scanner.Scan() {
		for _, field := range strings.Fields(scanner.Text()) {
			v, err := strconv.ParseUint(field, 10, 8)
			if err != nil {
				return nil, fmt.Errorf("bad cell value %q: %w", field, err)
			}
			cells = append(cells, uint8(v))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(cells) < n {
		return nil, ErrMissingCells
	}
	cells = cells[:n]

	seen := make([]bool, n)
	for _, c := range cells {
		if int(c) >= n {
			return nil, fmt.Errorf("cell value %d out of range for %dx%d board",
				c, rows, cols)
		}
		if seen[c] {
			return nil, ErrDuplicateCells
		}
		seen[c] = true
	}
	// n cells, all distinct and in range: a permutation.

	return New(rows, cols, cells), nil
}

func parseDimension(s string) (uint8, error) {
	v, err := strconv.ParseUint(s, 10, 8)
	if err != nil || v == 0 {
		return 0, ErrInvalidHeader
	}
	return uint8(v), nil
}
