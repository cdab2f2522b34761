package vec

import (
	"fmt"
	"math"
)

// Vec3Float представляет трехмерный вектор с плавающими координатами.
// Оси: 0 = X (право), 1 = Y (верх), 2 = Z (назад).
type Vec3Float struct {
	X float64
	Y float64
	Z float64
}

// NewVec3Float создает вектор из трех компонент
func NewVec3Float(x, y, z float64) Vec3Float {
	return Vec3Float{X: x, Y: y, Z: z}
}

// Add складывает два вектора
func (v Vec3Float) Add(other Vec3Float) Vec3Float {
	return Vec3Float{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}

// Sub вычитает вектор
func (v Vec3Float) Sub(other Vec3Float) Vec3Float {
	return Vec3Float{X: v.X - other.X, Y: v.Y - other.Y, Z: v.Z - other.Z}
}

// Scale умножает вектор на скаляр
func (v Vec3Float) Scale(scalar float64) Vec3Float {
	return Vec3Float{X: v.X * scalar, Y: v.Y * scalar, Z: v.Z * scalar}
}

// Length возвращает длину вектора
func (v Vec3Float) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// TaxicabLength возвращает сумму модулей компонент
func (v Vec3Float) TaxicabLength() float64 {
	return math.Abs(v.X) + math.Abs(v.Y) + math.Abs(v.Z)
}

// Normalized возвращает нормализованный вектор.
// Нулевой вектор остается нулевым.
func (v Vec3Float) Normalized() Vec3Float {
	length := v.Length()
	if length == 0 {
		return Vec3Float{}
	}
	return v.Scale(1 / length)
}

// DistanceTo вычисляет расстояние до другой точки
func (v Vec3Float) DistanceTo(other Vec3Float) float64 {
	return v.Sub(other).Length()
}

// Axis возвращает компоненту по индексу оси (0, 1, 2)
func (v Vec3Float) Axis(i int) float64 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	case 2:
		return v.Z
	}
	panic(fmt.Sprintf("vec: недопустимый индекс оси %d", i))
}

// WithAxis возвращает копию вектора с замененной компонентой
func (v Vec3Float) WithAxis(i int, value float64) Vec3Float {
	switch i {
	case 0:
		v.X = value
	case 1:
		v.Y = value
	case 2:
		v.Z = value
	default:
		panic(fmt.Sprintf("vec: недопустимый индекс оси %d", i))
	}
	return v
}

// ApproxEqual сравнивает векторы покомпонентно с допуском eps
func (v Vec3Float) ApproxEqual(other Vec3Float, eps float64) bool {
	return math.Abs(v.X-other.X) <= eps &&
		math.Abs(v.Y-other.Y) <= eps &&
		math.Abs(v.Z-other.Z) <= eps
}

// IsZero возвращает true, если все компоненты по модулю меньше eps
func (v Vec3Float) IsZero(eps float64) bool {
	return math.Abs(v.X) < eps && math.Abs(v.Y) < eps && math.Abs(v.Z) < eps
}

// Round округляет каждую компоненту (половины от нуля)
func (v Vec3Float) Round() Vec3Float {
	return Vec3Float{X: math.Round(v.X), Y: math.Round(v.Y), Z: math.Round(v.Z)}
}

func (v Vec3Float) String() string {
	return fmt.Sprintf("[%.3f, %.3f, %.3f]", v.X, v.Y, v.Z)
}
