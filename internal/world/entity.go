package world

import (
	"github.com/annel0/nodeworld/internal/draw"
)

// Entity всё, что может находиться в узле: блоки, курсор, фотоны.
type Entity interface {
	IsOpaque() bool                  // Задерживает ли сущность свет
	Draw(c draw.Canvas, r draw.Rect) // Отрисовать себя в прямоугольник экрана
}
