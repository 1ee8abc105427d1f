// Package compressor shrinks the transition tables of DFAs. Tables are row-major and a row is
// addressed by a state ID.
package compressor

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/exp/slices"
)

// Entry is the type of the table cells. DFA state IDs satisfy it.
type Entry interface {
	~int
}

// Table is an uncompressed table. It never modifies the entries it was given.
type Table[T Entry] struct {
	entries  []T
	rowCount int
	colCount int
}

func NewTable[T Entry](entries []T, colCount int) (*Table[T], error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("a table needs at least one entry")
	}
	if colCount <= 0 {
		return nil, fmt.Errorf("a table needs at least one column; got: %v", colCount)
	}
	if len(entries)%colCount != 0 {
		return nil, fmt.Errorf("the number of entries must be a multiple of the column count; entries: %v, columns: %v", len(entries), colCount)
	}
	return &Table[T]{
		entries:  entries,
		rowCount: len(entries) / colCount,
		colCount: colCount,
	}, nil
}

func (t *Table[T]) row(n int) []T {
	return t.entries[n*t.colCount : (n+1)*t.colCount]
}

type Compressor[T Entry] interface {
	Compress(orig *Table[T]) error
	Lookup(row, col int) (T, error)
	OriginalTableSize() (int, int)
}

var (
	_ Compressor[int] = &UniqueEntriesTable[int]{}
	_ Compressor[int] = &RowDisplacementTable[int]{}
)

func checkRange(row, col, rowCount, colCount int) error {
	if row < 0 || row >= rowCount || col < 0 || col >= colCount {
		return fmt.Errorf("indexes are out of range: [%v, %v]; size: %vx%v", row, col, rowCount, colCount)
	}
	return nil
}

// UniqueEntriesTable stores each distinct row once. RowNums maps an original row to its
// unique row.
type UniqueEntriesTable[T Entry] struct {
	UniqueEntries    []T
	RowNums          []int
	OriginalRowCount int
	OriginalColCount int
}

func NewUniqueEntriesTable[T Entry]() *UniqueEntriesTable[T] {
	return &UniqueEntriesTable[T]{}
}

func (tab *UniqueEntriesTable[T]) Lookup(row, col int) (T, error) {
	if err := checkRange(row, col, tab.OriginalRowCount, tab.OriginalColCount); err != nil {
		return 0, err
	}
	return tab.UniqueEntries[tab.RowNums[row]*tab.OriginalColCount+col], nil
}

func (tab *UniqueEntriesTable[T]) OriginalTableSize() (int, int) {
	return tab.OriginalRowCount, tab.OriginalColCount
}

// UniqueRowCount returns the number of distinct rows.
func (tab *UniqueEntriesTable[T]) UniqueRowCount() int {
	if tab.OriginalColCount == 0 {
		return 0
	}
	return len(tab.UniqueEntries) / tab.OriginalColCount
}

func (tab *UniqueEntriesTable[T]) Compress(orig *Table[T]) error {
	var unique []T
	rowNums := make([]int, orig.rowCount)
	seen := map[string]int{}
	buf := make([]byte, 0, orig.colCount*binary.MaxVarintLen64)
	for r := 0; r < orig.rowCount; r++ {
		row := orig.row(r)
		buf = buf[:0]
		for _, v := range row {
			buf = binary.AppendVarint(buf, int64(v))
		}
		key := string(buf)
		num, ok := seen[key]
		if !ok {
			num = len(seen)
			seen[key] = num
			unique = append(unique, row...)
		}
		rowNums[r] = num
	}

	tab.UniqueEntries = unique
	tab.RowNums = rowNums
	tab.OriginalRowCount = orig.rowCount
	tab.OriginalColCount = orig.colCount
	return nil
}

// ForbiddenValue marks a slot of Bounds that belongs to no row.
const ForbiddenValue = -1

// RowDisplacementTable overlays the sparse rows of a table on one array. Row r occupies
// Entries[RowDisplacement[r]+col] for each non-empty col, and Bounds records which row owns
// each slot.
type RowDisplacementTable[T Entry] struct {
	OriginalRowCount int
	OriginalColCount int
	EmptyValue       T
	Entries          []T
	Bounds           []int
	RowDisplacement  []int
}

func NewRowDisplacementTable[T Entry](emptyValue T) *RowDisplacementTable[T] {
	return &RowDisplacementTable[T]{
		EmptyValue: emptyValue,
	}
}

func (tab *RowDisplacementTable[T]) Lookup(row, col int) (T, error) {
	if err := checkRange(row, col, tab.OriginalRowCount, tab.OriginalColCount); err != nil {
		return tab.EmptyValue, err
	}
	d := tab.RowDisplacement[row]
	if d+col >= len(tab.Bounds) || tab.Bounds[d+col] != row {
		return tab.EmptyValue, nil
	}
	return tab.Entries[d+col], nil
}

func (tab *RowDisplacementTable[T]) OriginalTableSize() (int, int) {
	return tab.OriginalRowCount, tab.OriginalColCount
}

type sparseRow struct {
	num  int
	cols []int
}

func (tab *RowDisplacementTable[T]) Compress(orig *Table[T]) error {
	rows := make([]*sparseRow, orig.rowCount)
	for r := 0; r < orig.rowCount; r++ {
		sr := &sparseRow{
			num: r,
		}
		for c, v := range orig.row(r) {
			if v != tab.EmptyValue {
				sr.cols = append(sr.cols, c)
			}
		}
		rows[r] = sr
	}
	// Placing dense rows first leaves the gaps for sparse ones.
	slices.SortStableFunc(rows, func(a, b *sparseRow) int {
		return len(b.cols) - len(a.cols)
	})

	size := len(orig.entries) + orig.colCount
	entries := make([]T, size)
	bounds := make([]int, size)
	for i := range entries {
		entries[i] = tab.EmptyValue
		bounds[i] = ForbiddenValue
	}
	displacement := make([]int, orig.rowCount)
	bottom := 0
	d := 0
	for _, sr := range rows {
		if len(sr.cols) == 0 {
			continue
		}
		for !fits(bounds, d, sr.cols) {
			d++
		}
		displacement[sr.num] = d
		for _, c := range sr.cols {
			entries[d+c] = orig.entries[sr.num*orig.colCount+c]
			bounds[d+c] = sr.num
		}
		if d+orig.colCount > bottom {
			bottom = d + orig.colCount
		}
		d++
	}
	if bottom == 0 {
		bottom = orig.colCount
	}

	tab.OriginalRowCount = orig.rowCount
	tab.OriginalColCount = orig.colCount
	tab.Entries = entries[:bottom]
	tab.Bounds = bounds[:bottom]
	tab.RowDisplacement = displacement
	return nil
}

func fits(bounds []int, d int, cols []int) bool {
	for _, c := range cols {
		if bounds[d+c] != ForbiddenValue {
			return false
		}
	}
	return true
}
