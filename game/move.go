package game

import "fmt"

// Move places a mark on cell Cell of sub-board Sub. Both are 0-8 indices in
// row-major order. Classic boards only use Cell and keep Sub at 0.
type Move struct {
	Sub  uint8
	Cell uint8
}

// String returns the move as "sub/cell".
func (m Move) String() string {
	return fmt.Sprintf("%d/%d", m.Sub, m.Cell)
}
