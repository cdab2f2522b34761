package implementations

import (
	"github.com/annel0/nodeworld/internal/draw"
	"github.com/annel0/nodeworld/internal/world/block"
)

// Регистрируем все типы блоков при импорте пакета
func init() {
	RegisterAll(block.Default())
}

// RegisterAll регистрирует стандартные блоки в указанном реестре
func RegisterAll(r *block.Registry) {
	// Ландшафт
	r.Register(&StoneBehavior{})
	r.Register(&GrassBehavior{})
	r.Register(&DirtBehavior{})
	r.Register(&WaterBehavior{})
	r.Register(&SandBehavior{})

	// Окрашенные блоки карт
	r.Register(&PaintedBehavior{id: block.BlueBlockID, name: "Blue", letter: 'B', color: draw.Blue})
	r.Register(&PaintedBehavior{id: block.GreenBlockID, name: "Green", letter: 'G', color: draw.Green})
	r.Register(&PaintedBehavior{id: block.RedBlockID, name: "Red", letter: 'R', color: draw.Red})
}
