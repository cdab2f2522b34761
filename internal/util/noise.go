package util

import (
	"github.com/aquilax/go-perlin"
)

// Noise генератор шума Перлина со своим сидом
type Noise struct {
	seed   int64
	perlin *perlin.Perlin
}

// NewNoise создаёт генератор шума Перлина с указанным сидом
func NewNoise(seed int64) *Noise {
	alpha := 2.0  // Сглаживание шума
	beta := 2.0   // Частота шума
	n := int32(3) // Количество октав
	return &Noise{
		seed:   seed,
		perlin: perlin.NewPerlin(alpha, beta, n, seed),
	}
}

// Seed возвращает сид генератора
func (n *Noise) Seed() int64 {
	return n.seed
}

// Noise2D возвращает значение шума для указанных координат (от 0 до 1)
func (n *Noise) Noise2D(x, y float64) float64 {
	// Значение шума лежит примерно в диапазоне от -1 до 1
	value := (n.perlin.Noise2D(x, y) + 1.0) / 2.0
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
