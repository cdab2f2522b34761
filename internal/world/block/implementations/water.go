package implementations

import (
	"github.com/annel0/nodeworld/internal/draw"
	"github.com/annel0/nodeworld/internal/world/block"
)

// WaterBehavior реализует поведение блока воды.
// Полупрозрачность не моделируется: вода останавливает фотоны как твердый блок.
type WaterBehavior struct{}

// ID возвращает идентификатор блока
func (b *WaterBehavior) ID() block.BlockID {
	return block.WaterBlockID
}

// Name возвращает имя блока
func (b *WaterBehavior) Name() string {
	return "Water"
}

// Letter возвращает символ воды в файле карты
func (b *WaterBehavior) Letter() rune {
	return 'W'
}

// Color возвращает цвет воды
func (b *WaterBehavior) Color() draw.Color {
	return draw.Water
}

// Opaque возвращает true
func (b *WaterBehavior) Opaque() bool {
	return true
}
