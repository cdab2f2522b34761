package terminal

import (
	"sync"

	"github.com/annel0/nodeworld/internal/draw"
	"github.com/gdamore/tcell/v2"
)

type cell struct {
	bg     draw.Color
	fg     draw.Color
	symbol rune
}

// Screen холст поверх tcell.Screen: единица холста - одна ячейка
// терминала. Заливки смешиваются в буфере, Present выводит буфер.
type Screen struct {
	// ShowLabels выводить ли отладочные подписи узлов
	ShowLabels bool

	mu     sync.Mutex
	screen tcell.Screen
	width  int
	height int
	cells  [][]cell
}

// NewScreen создаёт холст по текущему размеру экрана
func NewScreen(screen tcell.Screen) *Screen {
	s := &Screen{screen: screen}
	width, height := screen.Size()
	s.Resize(width, height)
	return s
}

// Resize перестраивает буфер; содержимое сбрасывается в черный
func (s *Screen) Resize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width, s.height = width, height
	s.cells = make([][]cell, height)
	for y := range s.cells {
		s.cells[y] = make([]cell, width)
		for x := range s.cells[y] {
			s.cells[y][x] = cell{bg: draw.Black, fg: draw.Black, symbol: ' '}
		}
	}
}

// Size размер холста в ячейках
func (s *Screen) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

// bounds переводит прямоугольник в диапазон ячеек [x0,x1) x [y0,y1)
func (s *Screen) bounds(r draw.Rect) (x0, y0, x1, y1 int) {
	x0, y0 = int(r.X), int(r.Y)
	x1, y1 = int(r.X+r.W), int(r.Y+r.H)
	if x1 == x0 {
		x1++
	}
	if y1 == y0 {
		y1++
	}
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, s.width), min(y1, s.height)
	return
}

// FillRect смешивает цвет поверх ячеек прямоугольника
func (s *Screen) FillRect(r draw.Rect, c draw.Color, alpha float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	x0, y0, x1, y1 := s.bounds(r)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			cl := &s.cells[y][x]
			cl.bg = c.Blend(cl.bg, alpha)
			if alpha >= 1 {
				cl.symbol = ' '
			}
		}
	}
}

// StrokeRect рисует рамку псевдографикой
func (s *Screen) StrokeRect(r draw.Rect, c draw.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	x0, y0, x1, y1 := s.bounds(r)
	if x1-x0 < 2 || y1-y0 < 2 {
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				s.cells[y][x].symbol, s.cells[y][x].fg = '□', c
			}
		}
		return
	}
	for x := x0; x < x1; x++ {
		s.cells[y0][x].symbol, s.cells[y0][x].fg = '─', c
		s.cells[y1-1][x].symbol, s.cells[y1-1][x].fg = '─', c
	}
	for y := y0; y < y1; y++ {
		s.cells[y][x0].symbol, s.cells[y][x0].fg = '│', c
		s.cells[y][x1-1].symbol, s.cells[y][x1-1].fg = '│', c
	}
	s.cells[y0][x0].symbol = '┌'
	s.cells[y0][x1-1].symbol = '┐'
	s.cells[y1-1][x0].symbol = '└'
	s.cells[y1-1][x1-1].symbol = '┘'
}

// Label пишет текст с левой верхней ячейки, обрезая по ширине
func (s *Screen) Label(r draw.Rect, text string) {
	if !s.ShowLabels {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	x0, y0, x1, y1 := s.bounds(r)
	if y0 >= y1 {
		return
	}
	x := x0
	for _, ch := range text {
		if x >= x1 {
			break
		}
		cl := &s.cells[y0][x]
		cl.symbol = ch
		cl.fg = contrast(cl.bg)
		x++
	}
}

// contrast выбирает цвет текста, читаемый на фоне bg
func contrast(bg draw.Color) draw.Color {
	luma := 0.299*float64(bg.R) + 0.587*float64(bg.G) + 0.114*float64(bg.B)
	if luma > 128 {
		return draw.Black
	}
	return draw.White
}

func toTcell(c draw.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Present переносит буфер на экран tcell и показывает его
func (s *Screen) Present() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for y, row := range s.cells {
		for x, cl := range row {
			style := tcell.StyleDefault.Background(toTcell(cl.bg)).Foreground(toTcell(cl.fg))
			s.screen.SetContent(x, y, cl.symbol, nil, style)
		}
	}
	s.screen.Show()
	return nil
}
