package models

import (
	"encoding/json"
	"slices"

	"github.com/shopspring/decimal"
)

// Matrix is a square amount matrix over an ordered participant list, read
// as m[debtor][creditor]. The diagonal is always zero: writes to it are
// ignored.
type Matrix struct {
	ids   []string
	index map[string]int
	cells [][]decimal.Decimal
}

// NewMatrix returns an all-zero matrix over ids.
func NewMatrix(ids []string) *Matrix {
	m := &Matrix{
		ids:   slices.Clone(ids),
		index: make(map[string]int, len(ids)),
		cells: make([][]decimal.Decimal, len(ids)),
	}
	for i, id := range ids {
		m.index[id] = i
		m.cells[i] = make([]decimal.Decimal, len(ids))
	}
	return m
}

// MatrixFromMap builds a matrix over ids from a nested debtor→creditor map.
// Unknown participants and diagonal entries are dropped.
func MatrixFromMap(ids []string, values map[string]map[string]decimal.Decimal) *Matrix {
	m := NewMatrix(ids)
	for debtor, row := range values {
		for creditor, amount := range row {
			m.Set(debtor, creditor, amount)
		}
	}
	return m
}

// Participants returns the participant order of the matrix.
func (m *Matrix) Participants() []string {
	return slices.Clone(m.ids)
}

// Has reports whether id is one of the matrix participants.
func (m *Matrix) Has(id string) bool {
	_, ok := m.index[id]
	return ok
}

func (m *Matrix) cell(debtor, creditor string) (int, int, bool) {
	i, ok := m.index[debtor]
	if !ok {
		return 0, 0, false
	}
	j, ok := m.index[creditor]
	if !ok || i == j {
		return 0, 0, false
	}
	return i, j, true
}

// At returns m[debtor][creditor], or zero for unknown ids and the diagonal.
func (m *Matrix) At(debtor, creditor string) decimal.Decimal {
	i, j, ok := m.cell(debtor, creditor)
	if !ok {
		return decimal.Zero
	}
	return m.cells[i][j]
}

// Set overwrites m[debtor][creditor]. It reports false, leaving the matrix
// unchanged, for unknown ids and the diagonal.
func (m *Matrix) Set(debtor, creditor string, amount decimal.Decimal) bool {
	i, j, ok := m.cell(debtor, creditor)
	if !ok {
		return false
	}
	m.cells[i][j] = amount
	return true
}

// Add increments m[debtor][creditor] by amount, with the same rules as Set.
func (m *Matrix) Add(debtor, creditor string, amount decimal.Decimal) bool {
	i, j, ok := m.cell(debtor, creditor)
	if !ok {
		return false
	}
	m.cells[i][j] = m.cells[i][j].Add(amount)
	return true
}

// Each calls fn for every off-diagonal cell in participant order.
func (m *Matrix) Each(fn func(debtor, creditor string, amount decimal.Decimal)) {
	for i, debtor := range m.ids {
		for j, creditor := range m.ids {
			if i == j {
				continue
			}
			fn(debtor, creditor, m.cells[i][j])
		}
	}
}

// RowSum returns Σ_c m[debtor][c].
func (m *Matrix) RowSum(debtor string) decimal.Decimal {
	sum := decimal.Zero
	i, ok := m.index[debtor]
	if !ok {
		return sum
	}
	for _, v := range m.cells[i] {
		sum = sum.Add(v)
	}
	return sum
}

// ColumnSum returns Σ_d m[d][creditor].
func (m *Matrix) ColumnSum(creditor string) decimal.Decimal {
	sum := decimal.Zero
	j, ok := m.index[creditor]
	if !ok {
		return sum
	}
	for i := range m.cells {
		sum = sum.Add(m.cells[i][j])
	}
	return sum
}

// Total returns the sum of every cell.
func (m *Matrix) Total() decimal.Decimal {
	sum := decimal.Zero
	for _, row := range m.cells {
		for _, v := range row {
			sum = sum.Add(v)
		}
	}
	return sum
}

// IsZero reports whether every cell is zero.
func (m *Matrix) IsZero() bool {
	for _, row := range m.cells {
		for _, v := range row {
			if !v.IsZero() {
				return false
			}
		}
	}
	return true
}

// Clone returns a deep copy.
func (m *Matrix) Clone() *Matrix {
	c := &Matrix{
		ids:   slices.Clone(m.ids),
		index: make(map[string]int, len(m.index)),
		cells: make([][]decimal.Decimal, len(m.cells)),
	}
	for id, i := range m.index {
		c.index[id] = i
	}
	for i, row := range m.cells {
		c.cells[i] = slices.Clone(row)
	}
	return c
}

// Equal reports whether m and o have the same participants in the same
// order and numerically equal cells.
func (m *Matrix) Equal(o *Matrix) bool {
	if !slices.Equal(m.ids, o.ids) {
		return false
	}
	for i, row := range m.cells {
		for j, v := range row {
			if !v.Equal(o.cells[i][j]) {
				return false
			}
		}
	}
	return true
}

// ToMap returns the matrix as a nested debtor→creditor map containing every
// off-diagonal cell.
func (m *Matrix) ToMap() map[string]map[string]decimal.Decimal {
	out := make(map[string]map[string]decimal.Decimal, len(m.ids))
	for _, id := range m.ids {
		out[id] = make(map[string]decimal.Decimal, len(m.ids)-1)
	}
	m.Each(func(debtor, creditor string, amount decimal.Decimal) {
		out[debtor][creditor] = amount
	})
	return out
}

// MarshalJSON encodes the matrix as its nested map form.
func (m *Matrix) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.ToMap())
}
