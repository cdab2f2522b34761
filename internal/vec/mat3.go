package vec

import "math"

// Mat3 матрица 3x3, хранится по строкам
type Mat3 [3][3]float64

// Identity3 возвращает единичную матрицу
func Identity3() Mat3 {
	return Mat3{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
}

// RotationX поворот вокруг оси X на угол в радианах
func RotationX(rad float64) Mat3 {
	c, s := math.Cos(rad), math.Sin(rad)
	return Mat3{
		{1, 0, 0},
		{0, c, -s},
		{0, s, c},
	}
}

// RotationY поворот вокруг оси Y на угол в радианах
func RotationY(rad float64) Mat3 {
	c, s := math.Cos(rad), math.Sin(rad)
	return Mat3{
		{c, 0, s},
		{0, 1, 0},
		{-s, 0, c},
	}
}

// Mul возвращает произведение m * other
func (m Mat3) Mul(other Mat3) Mat3 {
	var result Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				result[i][j] += m[i][k] * other[k][j]
			}
		}
	}
	return result
}

// MulVec применяет матрицу к вектору-столбцу
func (m Mat3) MulVec(v Vec3Float) Vec3Float {
	return Vec3Float{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// Transpose возвращает транспонированную матрицу
func (m Mat3) Transpose() Mat3 {
	var result Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			result[i][j] = m[j][i]
		}
	}
	return result
}

// CameraRotation строит поворот лучей камеры по тангажу и рысканию (в градусах).
// Камера смотрит в -Z; положительный yaw поворачивает вправо,
// отрицательный pitch наклоняет взгляд вверх.
func CameraRotation(pitchDegrees, yawDegrees float64) Mat3 {
	pitch := pitchDegrees / 180 * math.Pi
	yaw := yawDegrees / 180 * math.Pi
	return RotationY(-yaw).Mul(RotationX(-pitch))
}
