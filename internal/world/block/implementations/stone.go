package implementations

import (
	"github.com/annel0/nodeworld/internal/draw"
	"github.com/annel0/nodeworld/internal/world/block"
)

// StoneBehavior реализует поведение блока камня
type StoneBehavior struct{}

// ID возвращает идентификатор блока
func (b *StoneBehavior) ID() block.BlockID {
	return block.StoneBlockID
}

// Name возвращает имя блока
func (b *StoneBehavior) Name() string {
	return "Stone"
}

// Letter - камень в картах обозначается S
func (b *StoneBehavior) Letter() rune {
	return 'S'
}

// Color возвращает цвет камня
func (b *StoneBehavior) Color() draw.Color {
	return draw.Stone
}

// Opaque - камень не пропускает свет
func (b *StoneBehavior) Opaque() bool {
	return true
}
