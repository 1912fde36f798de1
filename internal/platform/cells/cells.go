// Package cells converts pixel frames into terminal cells. Each cell shows
// two vertically stacked pixels with the upper half block glyph: the
// foreground paints the top pixel and the background the bottom one.
package cells

import (
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/vovakirdan/tui-shooter/internal/core"
)

// HalfBlock is the glyph every cell is drawn with.
const HalfBlock = '▀'

// Cell is one terminal character cell.
type Cell struct {
	Top    core.Color
	Bottom core.Color
}

// Grid is a rectangular block of cells, row-major.
type Grid struct {
	Cols, Rows int
	cells      []Cell
}

// At returns the cell at column x, row y. Out of range reads are black.
func (g *Grid) At(x, y int) Cell {
	if x < 0 || y < 0 || x >= g.Cols || y >= g.Rows {
		return Cell{}
	}
	return g.cells[y*g.Cols+x]
}

// Row returns the cells of row y. The slice aliases the grid.
func (g *Grid) Row(y int) []Cell {
	return g.cells[y*g.Cols : (y+1)*g.Cols]
}

// Run is a span of identical cells within a row.
type Run struct {
	Cell
	Len int
}

// Runs groups consecutive equal cells of row y, so renderers emit one style
// change per run instead of per cell.
func (g *Grid) Runs(y int) []Run {
	row := g.Row(y)
	var runs []Run
	for i := 0; i < len(row); {
		j := i + 1
		for j < len(row) && row[j] == row[i] {
			j++
		}
		runs = append(runs, Run{Cell: row[i], Len: j - i})
		i = j
	}
	return runs
}

// Rasterizer scales frames to a terminal size, keeping the aspect ratio and
// letterboxing with black. It reuses its buffers between frames.
type Rasterizer struct {
	// Scaler resamples the frame. NearestNeighbor keeps pixel art crisp;
	// ApproxBiLinear keeps small details visible when shrinking.
	Scaler xdraw.Scaler

	buf  *image.RGBA
	grid Grid
}

// NewRasterizer creates a rasterizer using bilinear resampling.
func NewRasterizer() *Rasterizer {
	return &Rasterizer{Scaler: xdraw.ApproxBiLinear}
}

// Fit returns where a srcW x srcH frame lands inside a cols x rows terminal,
// in pixel units where each cell is one pixel wide and two pixels tall.
func Fit(srcW, srcH, cols, rows int) image.Rectangle {
	dstW, dstH := cols, rows*2
	if srcW <= 0 || srcH <= 0 || dstW <= 0 || dstH <= 0 {
		return image.Rectangle{}
	}

	w, h := dstW, srcH*dstW/srcW
	if h > dstH {
		w, h = srcW*dstH/srcH, dstH
	}
	x := (dstW - w) / 2
	y := (dstH - h) / 2
	return image.Rect(x, y, x+w, y+h)
}

// Rasterize renders frame into a cols x rows grid. The returned grid is
// owned by the rasterizer and valid until the next call.
func (r *Rasterizer) Rasterize(frame image.Image, cols, rows int) *Grid {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}

	want := image.Rect(0, 0, cols, rows*2)
	if r.buf == nil || r.buf.Bounds() != want {
		r.buf = image.NewRGBA(want)
	} else {
		clear(r.buf.Pix)
	}

	b := frame.Bounds()
	if dr := Fit(b.Dx(), b.Dy(), cols, rows); !dr.Empty() {
		scaler := r.Scaler
		if scaler == nil {
			scaler = xdraw.NearestNeighbor
		}
		scaler.Scale(r.buf, dr, frame, b, xdraw.Src, nil)
	}

	n := cols * rows
	if cap(r.grid.cells) < n {
		r.grid.cells = make([]Cell, n)
	}
	r.grid.cells = r.grid.cells[:n]
	r.grid.Cols, r.grid.Rows = cols, rows

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			r.grid.cells[y*cols+x] = Cell{
				Top:    core.FromColor(r.buf.RGBAAt(x, y*2)),
				Bottom: core.FromColor(r.buf.RGBAAt(x, y*2+1)),
			}
		}
	}
	return &r.grid
}
