package render

import (
	"testing"

	"github.com/annel0/nodeworld/internal/vec"
	"github.com/annel0/nodeworld/internal/world"
	"github.com/stretchr/testify/assert"
)

const (
	f = world.Forward
	b = world.Backward
	u = world.Up
	d = world.Down
	l = world.Left
	r = world.Right
)

func v3(x, y, z float64) vec.Vec3Float {
	return vec.NewVec3Float(x, y, z)
}

func TestRescaleToLine_Interleaves(t *testing.T) {
	assert.Equal(t, []world.Direction{f, r, u, u}, RescaleToLine(v3(1, 2, -1), 4))
	assert.Equal(t, []world.Direction{f, r, u, u}, RescaleToLine(v3(2, 4, -2), 4), "Масштаб вектора не важен")
	assert.Equal(t,
		[]world.Direction{b, l, d, b, l, d, b, l, d},
		RescaleToLine(v3(-3, -3, 3), 9),
		"Оси чередуются, а не идут группами")
}

func TestRescaleToLine_Rounding(t *testing.T) {
	// [2.5, 1, -0.5] округляется до 5 шагов, лишний снимается с мелкой оси
	assert.Equal(t, []world.Direction{r, u, r, r}, RescaleToLine(v3(5, 2, -1), 4))

	// Мелкие доли отбрасываются, недостающий шаг получает крупная ось
	assert.Equal(t, []world.Direction{r, r, r, r}, RescaleToLine(v3(10, 1, -1), 4))
}

func TestRescaleToLine_StepCount(t *testing.T) {
	vectors := []vec.Vec3Float{v3(0.3, -7, 2.2), v3(1, 1, 1), v3(-5, 0.01, 0), v3(1.61, 2.62, 1.63)}
	for _, vector := range vectors {
		for steps := 1; steps <= 12; steps++ {
			line := RescaleToLine(vector, steps)
			assert.Len(t, line, steps, "Вектор %v, шагов %d", vector, steps)
		}
	}
}

func TestRescaleToLine_Degenerate(t *testing.T) {
	assert.Empty(t, RescaleToLine(vec.Vec3Float{}, 4))
	assert.Empty(t, RescaleToLine(v3(1, 0, 0), 0))
}

func TestTraceLine_HappyPath(t *testing.T) {
	origin := v3(0.1, 0.1, 0.1)
	assert.Equal(t, []world.Direction{f, u, r, u}, TraceLine(v3(1, 2, -1), origin))
	assert.Equal(t, []world.Direction{f, u, r, u, f, u, r, u}, TraceLine(v3(2, 4, -2), origin))
}

func TestTraceLine_Rounds(t *testing.T) {
	assert.Equal(t, []world.Direction{r, r, u, r, r, b, u}, TraceLine(v3(4.99, 2, 1.1), vec.Vec3Float{}))
	assert.Equal(t, []world.Direction{r, r, u, r, r, f, u}, TraceLine(v3(4.99, 2, -1.1), vec.Vec3Float{}))
}

func TestTraceLine_Stable(t *testing.T) {
	small := TraceLine(v3(4.99, 2, 1.1), vec.Vec3Float{})
	big := TraceLine(v3(5, 2, 1.1), vec.Vec3Float{})
	assert.Less(t, len(big)-len(small), 2, "Малое изменение входа не меняет результат резко: %v / %v", big, small)
}

func TestTraceLine_RespectsOrigin(t *testing.T) {
	assert.Equal(t, []world.Direction{f, r, u, f, r, u}, TraceLine(v3(2, 2, -2), v3(-5.2, 1.5, 1.1)))
}
