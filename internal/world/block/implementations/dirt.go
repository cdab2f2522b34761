package implementations

import (
	"github.com/annel0/nodeworld/internal/draw"
	"github.com/annel0/nodeworld/internal/world/block"
)

// DirtBehavior реализует поведение блока земли
type DirtBehavior struct{}

func (b *DirtBehavior) ID() block.BlockID { return block.DirtBlockID }
func (b *DirtBehavior) Name() string      { return "Dirt" }
func (b *DirtBehavior) Letter() rune      { return 'D' }
func (b *DirtBehavior) Color() draw.Color { return draw.Dirt }
func (b *DirtBehavior) Opaque() bool      { return true }

// SandBehavior реализует поведение блока песка
type SandBehavior struct{}

func (b *SandBehavior) ID() block.BlockID { return block.SandBlockID }
func (b *SandBehavior) Name() string      { return "Sand" }
func (b *SandBehavior) Letter() rune      { return 'A' }
func (b *SandBehavior) Color() draw.Color { return draw.Sand }
func (b *SandBehavior) Opaque() bool      { return true }
