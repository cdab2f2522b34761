package render

import (
	"fmt"
	"math"

	"github.com/annel0/nodeworld/internal/draw"
	"github.com/annel0/nodeworld/internal/vec"
	"github.com/annel0/nodeworld/internal/world"
)

// LineViewport дискретная стратегия обзора: каждый пиксель - ломаная
// из шагов по ребрам графа, без фотонов.
//
// Решетка лучей (2r+1)x(2r+1): пиксель [y][x] смотрит в
// [x-r, r-y, -r] в системе камеры, строка 0 - верх экрана.
type LineViewport struct {
	RenderDistance int
	Mode           LineMode
	defaultLines   [][]vec.Vec3Float
}

// LineMode способ превращения луча в шаги по графу
type LineMode int

const (
	// LineRescale пропорциональное округление, длина линии фиксирована
	LineRescale LineMode = iota
	// LineExact точный проход по граням из центра узла
	LineExact
)

// ParseLineMode разбирает имя режима: "rescale" или "exact"
func ParseLineMode(name string) (LineMode, error) {
	switch name {
	case "", "rescale":
		return LineRescale, nil
	case "exact":
		return LineExact, nil
	}
	return LineRescale, fmt.Errorf("неизвестный режим линий: %q", name)
}

var nodeCenter = vec.NewVec3Float(0.5, 0.5, 0.5)

// NewLineViewport создаёт дискретный обзор с дальностью renderDistance
func NewLineViewport(renderDistance int) *LineViewport {
	if renderDistance < 1 {
		renderDistance = 1
	}
	size := 2*renderDistance + 1
	lines := make([][]vec.Vec3Float, size)
	for y := 0; y < size; y++ {
		lines[y] = make([]vec.Vec3Float, size)
		for x := 0; x < size; x++ {
			lines[y][x] = vec.NewVec3Float(
				float64(x-renderDistance),
				float64(renderDistance-y),
				float64(-renderDistance),
			)
		}
	}
	return &LineViewport{RenderDistance: renderDistance, defaultLines: lines}
}

// Size возвращает сторону экрана в пикселях
func (lv *LineViewport) Size() int {
	return len(lv.defaultLines)
}

// Lines строит дискретные линии всех пикселей для ориентации камеры.
// В режиме LineRescale длина линии равна сумме модулей исходного луча,
// в LineExact - числу пересеченных граней.
func (lv *LineViewport) Lines(pitchDegrees, yawDegrees float64) [][][]world.Direction {
	rotation := vec.CameraRotation(pitchDegrees, yawDegrees)
	result := make([][][]world.Direction, len(lv.defaultLines))
	for y, row := range lv.defaultLines {
		result[y] = make([][]world.Direction, len(row))
		for x, line := range row {
			if lv.Mode == LineExact {
				result[y][x] = TraceLine(rotation.MulVec(line), nodeCenter)
				continue
			}
			steps := int(math.Round(line.TaxicabLength()))
			result[y][x] = RescaleToLine(rotation.MulVec(line), steps)
		}
	}
	return result
}

// FollowLine проходит линию от start, раздваиваясь на ветвлениях графа.
// Попав в непрозрачный узел, путь в нем и остается: свет поглощен.
// Возвращает все узлы, где закончились ветви; пусто, если все ветви
// ушли за край графа.
func FollowLine(start *world.Node, line []world.Direction) []*world.Node {
	current := []*world.Node{start}
	for _, direction := range line {
		next := make([]*world.Node, 0, len(current))
		for _, node := range current {
			if node.IsOpaque() {
				next = append(next, node)
				continue
			}
			next = append(next, node.AdjacentNodes(direction)...)
		}
		current = next
		if len(current) == 0 {
			break
		}
	}
	return current
}

// FindAll возвращает для каждого пикселя все конечные узлы
func (lv *LineViewport) FindAll(pitchDegrees, yawDegrees float64, start *world.Node) [][][]*world.Node {
	lines := lv.Lines(pitchDegrees, yawDegrees)
	result := make([][][]*world.Node, len(lines))
	for y, row := range lines {
		result[y] = make([][]*world.Node, len(row))
		for x, line := range row {
			result[y][x] = FollowLine(start, line)
		}
	}
	return result
}

// FindNodes возвращает для каждого пикселя первый видимый узел (nil - край графа)
func (lv *LineViewport) FindNodes(pitchDegrees, yawDegrees float64, start *world.Node) [][]*world.Node {
	all := lv.FindAll(pitchDegrees, yawDegrees, start)
	result := make([][]*world.Node, len(all))
	for y, row := range all {
		result[y] = make([]*world.Node, len(row))
		for x, nodes := range row {
			if len(nodes) > 0 {
				result[y][x] = nodes[0]
			}
		}
	}
	return result
}

// Render рисует кадр на холсте размером width x height
func (lv *LineViewport) Render(canvas draw.Canvas, width, height, pitchDegrees, yawDegrees float64, start *world.Node) {
	nodes := lv.FindNodes(pitchDegrees, yawDegrees, start)
	size := float64(lv.Size())
	cellW, cellH := width/size, height/size
	for y, row := range nodes {
		for x, node := range row {
			rect := draw.Rect{X: float64(x) * cellW, Y: float64(y) * cellH, W: cellW, H: cellH}
			DrawNode(canvas, rect, node)
		}
	}
}

// DrawNode рисует содержимое узла в прямоугольник.
// nil - черный (край графа), пустой узел - цвет пустоты.
func DrawNode(canvas draw.Canvas, rect draw.Rect, node *world.Node) {
	if node == nil {
		canvas.FillRect(rect, draw.Black, 1)
		return
	}
	contents := node.Contents()
	if len(contents) == 0 {
		canvas.FillRect(rect, draw.Empty, 1)
	}
	for _, e := range contents {
		e.Draw(canvas, rect)
	}
	canvas.Label(rect, node.Label.String())
}
