package vec

import "fmt"

// Vec3 представляет трехмерный вектор с целочисленными координатами.
// В мире графа используется только как отладочная метка узла.
type Vec3 struct {
	X int
	Y int
	Z int
}

// Equals проверяет равенство векторов
func (v Vec3) Equals(other Vec3) bool {
	return v.X == other.X && v.Y == other.Y && v.Z == other.Z
}

// Add складывает два вектора
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}

// ToFloat преобразует в вектор с плавающей точкой
func (v Vec3) ToFloat() Vec3Float {
	return Vec3Float{X: float64(v.X), Y: float64(v.Y), Z: float64(v.Z)}
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%d,%d,%d)", v.X, v.Y, v.Z)
}
