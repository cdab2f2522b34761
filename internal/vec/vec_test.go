package vec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec3Float_Basics(t *testing.T) {
	a := NewVec3Float(1, 2, 3)
	b := NewVec3Float(-1, 0, 2)

	assert.Equal(t, NewVec3Float(0, 2, 5), a.Add(b), "Сложение векторов")
	assert.Equal(t, NewVec3Float(2, 2, 1), a.Sub(b), "Вычитание векторов")
	assert.Equal(t, NewVec3Float(2, 4, 6), a.Scale(2), "Умножение на скаляр")
	assert.InDelta(t, math.Sqrt(14), a.Length(), 1e-12)
	assert.InDelta(t, 6.0, a.TaxicabLength(), 1e-12)
	assert.InDelta(t, 1.0, a.Normalized().Length(), 1e-12)
	assert.Equal(t, Vec3Float{}, Vec3Float{}.Normalized(), "Нулевой вектор остается нулевым")
}

func TestVec3Float_Axis(t *testing.T) {
	v := NewVec3Float(4, 5, 6)
	assert.Equal(t, 4.0, v.Axis(0))
	assert.Equal(t, 5.0, v.Axis(1))
	assert.Equal(t, 6.0, v.Axis(2))
	assert.Equal(t, NewVec3Float(4, -1, 6), v.WithAxis(1, -1))
	assert.Panics(t, func() { v.Axis(3) })
}

func TestCameraRotation(t *testing.T) {
	forward := NewVec3Float(0, 0, -1)

	// Без поворота направление не меняется
	assert.True(t, CameraRotation(0, 0).MulVec(forward).ApproxEqual(forward, 1e-9))

	// Поворот вправо на 90 градусов смотрит в +X
	right := CameraRotation(0, 90).MulVec(forward)
	assert.True(t, right.ApproxEqual(NewVec3Float(1, 0, 0), 1e-9), "получено %v", right)

	// Наклон вверх (отрицательный pitch) смотрит в +Y
	up := CameraRotation(-90, 0).MulVec(forward)
	assert.True(t, up.ApproxEqual(NewVec3Float(0, 1, 0), 1e-9), "получено %v", up)

	// Транспонирование ортогональной матрицы - обратный поворот
	m := CameraRotation(30, 45)
	back := m.Transpose().MulVec(m.MulVec(NewVec3Float(1, 2, 3)))
	assert.True(t, back.ApproxEqual(NewVec3Float(1, 2, 3), 1e-9))
}
