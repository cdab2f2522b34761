// Package draw описывает приемник отрисовки, в который вьюпорт выводит пиксели.
// Конкретный вывод (терминал, запись в память) подключается снаружи.
package draw

import "fmt"

// Color цвет в RGB
type Color struct {
	R, G, B uint8
}

// Палитра мира
var (
	Blue  = Color{R: 0x60, G: 0x60, B: 0xff}
	Green = Color{R: 0x60, G: 0xff, B: 0x60}
	Red   = Color{R: 0xff, G: 0x00, B: 0x00}
	Black = Color{R: 0x00, G: 0x00, B: 0x00}
	White = Color{R: 0xff, G: 0xff, B: 0xff}
	Empty = Color{R: 0x88, G: 0x88, B: 0x88} // узел без содержимого
	Stone = Color{R: 0x70, G: 0x70, B: 0x78}
	Grass = Color{R: 0x3c, G: 0xa0, B: 0x3c}
	Sand  = Color{R: 0xd8, G: 0xc8, B: 0x7a}
	Dirt  = Color{R: 0x7a, G: 0x52, B: 0x30}
	Water = Color{R: 0x30, G: 0x60, B: 0xd0}
)

// Hex возвращает цвет в виде #rrggbb
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Blend смешивает цвет поверх base с прозрачностью alpha (0..1)
func (c Color) Blend(base Color, alpha float64) Color {
	if alpha <= 0 {
		return base
	}
	if alpha >= 1 {
		return c
	}
	mix := func(top, bottom uint8) uint8 {
		return uint8(float64(top)*alpha + float64(bottom)*(1-alpha) + 0.5)
	}
	return Color{R: mix(c.R, base.R), G: mix(c.G, base.G), B: mix(c.B, base.B)}
}

// Rect прямоугольник экрана
type Rect struct {
	X, Y float64
	W, H float64
}

// Canvas приемник отрисовки
type Canvas interface {
	// FillRect заливает прямоугольник цветом с прозрачностью alpha (1 = непрозрачно).
	FillRect(r Rect, c Color, alpha float64)
	// StrokeRect рисует рамку прямоугольника.
	StrokeRect(r Rect, c Color)
	// Label выводит отладочную подпись в прямоугольнике.
	Label(r Rect, text string)
}
