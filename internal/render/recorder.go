package render

import (
	"sync"

	"github.com/annel0/nodeworld/internal/draw"
)

// OpKind вид операции рисования
type OpKind int

const (
	OpFill OpKind = iota
	OpStroke
	OpLabel
)

// Op одна записанная операция
type Op struct {
	Kind  OpKind
	Rect  draw.Rect
	Color draw.Color
	Alpha float64
	Text  string
}

// Recorder холст в памяти: запоминает операции и держит
// сетку смешанных цветов для снимков состояния.
type Recorder struct {
	mu     sync.Mutex
	ops    []Op
	limit  int
	cols   int
	rows   int
	cellW  float64
	cellH  float64
	pixels [][]draw.Color
	labels [][]string
}

// NewRecorder создаёт холст cols x rows ячеек размером cellW x cellH.
// Хранится не больше limit последних операций (0 - без ограничения).
func NewRecorder(cols, rows int, cellW, cellH float64, limit int) *Recorder {
	rec := &Recorder{limit: limit, cols: cols, rows: rows, cellW: cellW, cellH: cellH}
	rec.pixels = make([][]draw.Color, rows)
	rec.labels = make([][]string, rows)
	for y := 0; y < rows; y++ {
		rec.pixels[y] = make([]draw.Color, cols)
		rec.labels[y] = make([]string, cols)
	}
	return rec
}

func (rec *Recorder) record(op Op) {
	rec.ops = append(rec.ops, op)
	if rec.limit > 0 && len(rec.ops) > rec.limit {
		rec.ops = rec.ops[len(rec.ops)-rec.limit:]
	}
}

// FillRect заливает ячейки прямоугольника с прозрачностью
func (rec *Recorder) FillRect(r draw.Rect, c draw.Color, alpha float64) {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.record(Op{Kind: OpFill, Rect: r, Color: c, Alpha: alpha})
	rec.eachCell(r, func(x, y int) {
		rec.pixels[y][x] = c.Blend(rec.pixels[y][x], alpha)
	})
}

// StrokeRect только записывается: обводка не меняет заливку ячеек
func (rec *Recorder) StrokeRect(r draw.Rect, c draw.Color) {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.record(Op{Kind: OpStroke, Rect: r, Color: c, Alpha: 1})
}

// Label запоминает подпись в левой верхней ячейке прямоугольника
func (rec *Recorder) Label(r draw.Rect, text string) {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.record(Op{Kind: OpLabel, Rect: r, Text: text})
	x, y := rec.cellAt(r.X, r.Y)
	if x >= 0 && y >= 0 {
		rec.labels[y][x] = text
	}
}

func (rec *Recorder) cellAt(px, py float64) (int, int) {
	if rec.cellW <= 0 || rec.cellH <= 0 {
		return -1, -1
	}
	x, y := int(px/rec.cellW), int(py/rec.cellH)
	if x < 0 || y < 0 || x >= rec.cols || y >= rec.rows {
		return -1, -1
	}
	return x, y
}

func (rec *Recorder) eachCell(r draw.Rect, fn func(x, y int)) {
	if rec.cellW <= 0 || rec.cellH <= 0 {
		return
	}
	x0, y0 := int(r.X/rec.cellW), int(r.Y/rec.cellH)
	x1, y1 := int((r.X+r.W)/rec.cellW), int((r.Y+r.H)/rec.cellH)
	if x1 == x0 {
		x1++
	}
	if y1 == y0 {
		y1++
	}
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if x >= 0 && y >= 0 && x < rec.cols && y < rec.rows {
				fn(x, y)
			}
		}
	}
}

// Ops возвращает копию записанных операций
func (rec *Recorder) Ops() []Op {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return append([]Op(nil), rec.ops...)
}

// Reset очищает журнал операций (сетка цветов сохраняется)
func (rec *Recorder) Reset() {
	rec.mu.Lock()
	rec.ops = nil
	rec.mu.Unlock()
}

// Pixel возвращает цвет ячейки
func (rec *Recorder) Pixel(x, y int) draw.Color {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return rec.pixels[y][x]
}

// LabelAt возвращает подпись ячейки
func (rec *Recorder) LabelAt(x, y int) string {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return rec.labels[y][x]
}

// Frame возвращает копию сетки цветов в hex, строка 0 - верх
func (rec *Recorder) Frame() [][]string {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	frame := make([][]string, rec.rows)
	for y := range rec.pixels {
		frame[y] = make([]string, rec.cols)
		for x, c := range rec.pixels[y] {
			frame[y][x] = c.Hex()
		}
	}
	return frame
}
