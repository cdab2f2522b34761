package implementations

import (
	"github.com/annel0/nodeworld/internal/draw"
	"github.com/annel0/nodeworld/internal/world/block"
)

// GrassBehavior реализует поведение блока травы (верхний слой ландшафта)
type GrassBehavior struct{}

func (b *GrassBehavior) ID() block.BlockID { return block.GrassBlockID }
func (b *GrassBehavior) Name() string      { return "Grass" }
func (b *GrassBehavior) Letter() rune      { return 'T' }
func (b *GrassBehavior) Color() draw.Color { return draw.Grass }
func (b *GrassBehavior) Opaque() bool      { return true }
