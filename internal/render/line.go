package render

import (
	"math"

	"github.com/annel0/nodeworld/internal/vec"
	"github.com/annel0/nodeworld/internal/world"
)

// Порядок осей при равенстве: вперед/назад (z), влево/вправо (x), вверх/вниз (y)
var tiePriority = [3]int{2, 0, 1}

const traceEpsilon = 0.00001

// RescaleToLine превращает вектор в последовательность ровно steps
// дискретных шагов. Компоненты масштабируются пропорционально
// (по сумме модулей) и округляются; шаги разных осей перемежаются
// по доле пройденного, чтобы одна ось не расходовалась целиком подряд.
func RescaleToLine(v vec.Vec3Float, steps int) []world.Direction {
	sum := math.Abs(v.X) + math.Abs(v.Y) + math.Abs(v.Z)
	if steps <= 0 || sum < traceEpsilon {
		return nil
	}

	scaled := v.Scale(float64(steps) / sum)
	var counts [3]int
	for axis := 0; axis < 3; axis++ {
		counts[axis] = int(math.Round(math.Abs(scaled.Axis(axis))))
	}
	balanceCounts(&counts, scaled, steps)

	var directions [3]world.Direction
	var total [3]int
	for axis := 0; axis < 3; axis++ {
		directions[axis] = world.DirectionFromAxis(axis, scaled.Axis(axis) >= 0)
		total[axis] = counts[axis]
	}

	result := make([]world.Direction, 0, steps)
	for len(result) < steps {
		// Доля оставшихся шагов по каждой оси; больше - раньше
		best := -1
		bestFraction := 0.0
		for _, axis := range tiePriority {
			if counts[axis] == 0 {
				continue
			}
			fraction := float64(counts[axis]) / float64(total[axis])
			if best == -1 || fraction > bestFraction+traceEpsilon {
				best = axis
				bestFraction = fraction
			}
		}
		// Все оси с той же долей идут подряд в порядке приоритета
		for _, axis := range tiePriority {
			if counts[axis] == 0 {
				continue
			}
			fraction := float64(counts[axis]) / float64(total[axis])
			if math.Abs(fraction-bestFraction) <= traceEpsilon {
				result = append(result, directions[axis])
				counts[axis]--
			}
		}
	}
	return result
}

// balanceCounts подгоняет округленные счетчики под сумму steps.
// Недостающий шаг получает ось с наибольшей потерей при округлении,
// лишний снимается с оси, округленной вверх сильнее всех.
func balanceCounts(counts *[3]int, scaled vec.Vec3Float, steps int) {
	for {
		total := counts[0] + counts[1] + counts[2]
		if total == steps {
			return
		}

		best := -1
		bestResidual := 0.0
		for _, axis := range tiePriority {
			magnitude := math.Abs(scaled.Axis(axis))
			residual := magnitude - float64(counts[axis])
			if total > steps {
				if counts[axis] == 0 {
					continue
				}
				residual = -residual
			}
			if best == -1 || residual > bestResidual+traceEpsilon {
				best, bestResidual = axis, residual
				continue
			}
			if math.Abs(residual-bestResidual) <= traceEpsilon {
				// Добавляем к крупной оси, убираем у мелкой
				current := math.Abs(scaled.Axis(best))
				if (total < steps && magnitude > current) || (total > steps && magnitude < current) {
					best, bestResidual = axis, residual
				}
			}
		}

		if total < steps {
			counts[best]++
		} else {
			counts[best]--
		}
	}
}

// TraceLine проходит луч v из точки origin (в координатах решетки,
// где узлы - единичные кубы) и возвращает грани, пересеченные по пути.
// Одновременное пересечение нескольких граней дает шаг по каждой оси
// в порядке x, y, z.
func TraceLine(v vec.Vec3Float, origin vec.Vec3Float) []world.Direction {
	var result []world.Direction
	position := origin
	travelled := 0.0

	for travelled < 1-10*traceEpsilon {
		var scalars [3]float64
		for axis := 0; axis < 3; axis++ {
			component := v.Axis(axis)
			if math.Abs(component) < traceEpsilon {
				scalars[axis] = math.Inf(1)
				continue
			}
			// Эпсилон защищает от позиции чуть ниже целой грани
			var targetFace float64
			if component < 0 {
				targetFace = math.Ceil(position.Axis(axis) - 1 - traceEpsilon)
			} else {
				targetFace = math.Floor(position.Axis(axis) + 1 + traceEpsilon)
			}
			scalars[axis] = (targetFace - position.Axis(axis)) / component
		}

		step := math.Min(math.Min(scalars[0], scalars[1]), math.Min(scalars[2], 1-travelled))
		travelled += step
		position = position.Add(v.Scale(step))
		for axis := 0; axis < 3; axis++ {
			if scalars[axis]-step < traceEpsilon {
				result = append(result, world.DirectionFromAxis(axis, v.Axis(axis) >= 0))
			}
		}
	}
	return result
}
