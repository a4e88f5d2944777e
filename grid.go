package trellis

import "fmt"

// gridCounts returns the number of columns and rows in use. Rows grow when
// there are more children than configured cells.
func (n *Node) gridCounts() (int, int) {
	rows := n.rows
	if needed := (len(n.children) + n.columns - 1) / n.columns; needed > rows {
		rows = needed
	}
	return n.columns, rows
}

// cellSize divides the content area into equal cells.
func (n *Node) cellSize(content Vec2) Vec2 {
	cols, rows := n.gridCounts()
	return Vec2{
		max(0, (content.X-n.spacing.X*float64(cols-1))/float64(cols)),
		max(0, (content.Y-n.spacing.Y*float64(rows-1))/float64(rows)),
	}
}

// gridAutoContent measures the content an auto-sized grid needs: the
// largest cell any eligible child requires, times the cell count, plus the
// gaps between cells.
func (n *Node) gridAutoContent() Vec2 {
	cols, rows := n.gridCounts()
	cell := n.requiredSlotSize(n.cellSize(n.contentSize()))
	return Vec2{
		cell.X*float64(cols) + n.spacing.X*float64(cols-1),
		cell.Y*float64(rows) + n.spacing.Y*float64(rows-1),
	}
}

// Columns returns the grid's column count.
func (n *Node) Columns() int {
	return n.columns
}

// Rows returns the grid's configured row count.
func (n *Node) Rows() int {
	return n.rows
}

// SetGridSize changes the grid's column and row counts.
// Panics if either count is not positive.
func (n *Node) SetGridSize(columns, rows int) {
	if columns < 1 || rows < 1 {
		panic(fmt.Sprintf("trellis: grid %q needs at least one column and row, got %dx%d", n.Name, columns, rows))
	}
	if n.columns == columns && n.rows == rows {
		return
	}
	n.columns = columns
	n.rows = rows
	n.invalidateArrangement()
}
