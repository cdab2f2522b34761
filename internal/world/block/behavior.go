package block

import (
	"github.com/annel0/nodeworld/internal/draw"
)

// Behavior определяет свойства типа блока
type Behavior interface {
	ID() BlockID
	Name() string
	Letter() rune      // Символ в файле карты, 0 - если блок не задается картой
	Color() draw.Color // Цвет при отрисовке
	Opaque() bool      // Задерживает ли блок фотоны
}
