package implementations

import (
	"github.com/annel0/nodeworld/internal/draw"
	"github.com/annel0/nodeworld/internal/world/block"
)

// PaintedBehavior одноцветный непрозрачный блок, задаваемый буквой в файле карты
type PaintedBehavior struct {
	id     block.BlockID
	name   string
	letter rune
	color  draw.Color
}

// NewPaintedBehavior создаёт окрашенный блок
func NewPaintedBehavior(id block.BlockID, name string, letter rune, color draw.Color) *PaintedBehavior {
	return &PaintedBehavior{id: id, name: name, letter: letter, color: color}
}

func (b *PaintedBehavior) ID() block.BlockID { return b.id }
func (b *PaintedBehavior) Name() string      { return b.name }
func (b *PaintedBehavior) Letter() rune      { return b.letter }
func (b *PaintedBehavior) Color() draw.Color { return b.color }
func (b *PaintedBehavior) Opaque() bool      { return true }
