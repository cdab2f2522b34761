package world

import (
	"github.com/annel0/nodeworld/internal/vec"
)

// Grid кубическая решетка (2r+1)^3 узлов с симметричными связями.
// Nodes индексируется как [x][y][z], метки узлов совпадают с индексами.
type Grid struct {
	Radius int
	Nodes  [][][]*Node
}

// NewGrid строит решетку радиуса radius
func NewGrid(radius int) *Grid {
	if radius < 0 {
		radius = 0
	}
	size := 2*radius + 1

	nodes := make([][][]*Node, size)
	for i := 0; i < size; i++ {
		nodes[i] = make([][]*Node, size)
		for j := 0; j < size; j++ {
			nodes[i][j] = make([]*Node, size)
			for k := 0; k < size; k++ {
				// Создаем узел и связываем с тремя уже созданными соседями
				node := NewNode(vec.Vec3{X: i, Y: j, Z: k})
				nodes[i][j][k] = node
				if i > 0 {
					node.AddSymmetricAdjacency(Left, nodes[i-1][j][k])
				}
				if j > 0 {
					node.AddSymmetricAdjacency(Down, nodes[i][j-1][k])
				}
				if k > 0 {
					node.AddSymmetricAdjacency(Forward, nodes[i][j][k-1])
				}
			}
		}
	}

	return &Grid{Radius: radius, Nodes: nodes}
}

// Size возвращает длину ребра решетки в узлах
func (g *Grid) Size() int {
	return 2*g.Radius + 1
}

// NodeCount возвращает общее число узлов
func (g *Grid) NodeCount() int {
	size := g.Size()
	return size * size * size
}

// Center возвращает центральный узел
func (g *Grid) Center() *Node {
	return g.Nodes[g.Radius][g.Radius][g.Radius]
}

// At возвращает узел по индексам или nil за пределами решетки
func (g *Grid) At(x, y, z int) *Node {
	size := g.Size()
	if x < 0 || y < 0 || z < 0 || x >= size || y >= size || z >= size {
		return nil
	}
	return g.Nodes[x][y][z]
}

// Walk проходит steps шагов в направлении d по первым ребрам.
// Возвращает nil, если путь обрывается.
func Walk(node *Node, d Direction, steps int) *Node {
	for i := 0; i < steps && node != nil; i++ {
		next, ok := node.Neighbor(d)
		if !ok {
			return nil
		}
		node = next
	}
	return node
}
