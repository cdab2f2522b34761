package world

import (
	"fmt"
	"sync/atomic"

	"github.com/annel0/nodeworld/internal/draw"
	"github.com/annel0/nodeworld/internal/world/block"
	// Регистрируем стандартные блоки в общем реестре
	_ "github.com/annel0/nodeworld/internal/world/block/implementations"
)

var nextBlockSerial atomic.Uint64

// Block статичная сущность-блок в узле
type Block struct {
	ID       block.BlockID // Тип блока
	Serial   uint64        // Номер конкретного блока
	behavior block.Behavior
}

// NewBlock создаёт блок типа id из общего реестра
func NewBlock(id block.BlockID) (*Block, error) {
	behavior, exists := block.Get(id)
	if !exists {
		return nil, fmt.Errorf("неизвестный тип блока %d", id)
	}
	return NewBlockFrom(behavior), nil
}

// NewBlockFrom создаёт блок по поведению
func NewBlockFrom(behavior block.Behavior) *Block {
	return &Block{
		ID:       behavior.ID(),
		Serial:   nextBlockSerial.Add(1),
		behavior: behavior,
	}
}

// Behavior возвращает поведение блока
func (b *Block) Behavior() block.Behavior {
	return b.behavior
}

// IsOpaque реализует Entity
func (b *Block) IsOpaque() bool {
	return b.behavior.Opaque()
}

// Draw заливает прямоугольник цветом блока
func (b *Block) Draw(c draw.Canvas, r draw.Rect) {
	c.FillRect(r, b.behavior.Color(), 1)
}

func (b *Block) String() string {
	return fmt.Sprintf("%s#%d", b.behavior.Name(), b.Serial)
}
