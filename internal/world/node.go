package world

import (
	"math/rand"
	"sync"

	"github.com/annel0/nodeworld/internal/vec"
)

// Edge ребро графа.
// InEdge - грань узла назначения, через которую путник входит в него.
// DirectionNone означает грань, противоположную направлению выхода.
type Edge struct {
	Destination *Node
	InEdge      Direction
}

// Chooser выбирает индекс в диапазоне [0, n).
// Позволяет закрепить выбор среди ветвящихся ребер в тестах.
type Chooser func(n int) int

// DefaultChooser равномерный случайный выбор
func DefaultChooser(n int) int {
	return rand.Intn(n)
}

// Node атомарная единица пространства.
//
// Внутри узла нет геометрии: все сущности узла находятся "в одном месте".
// Узел связан с соседями по шести направлениям, причем ребра направленные
// и не обязаны быть симметричными - так строятся скрученные пространства.
// Label только для отладки: метки могут повторяться.
type Node struct {
	Label vec.Vec3

	mu       sync.RWMutex
	contents []Entity
	outEdges [7][]Edge // индекс - Direction

	opaqueKnown bool
	opaque      bool
}

// NewNode создаёт пустой узел с отладочной меткой
func NewNode(label vec.Vec3) *Node {
	return &Node{Label: label}
}

// AdjacentNodes возвращает все узлы, достижимые одним шагом в направлении d.
// Несколько ребер в одном направлении - допустимое ветвление.
func (n *Node) AdjacentNodes(d Direction) []*Node {
	n.mu.RLock()
	defer n.mu.RUnlock()

	result := make([]*Node, 0, len(n.outEdges[d]))
	for _, e := range n.outEdges[d] {
		result = append(result, e.Destination)
	}
	return result
}

// OutEdges возвращает копию ребер в направлении d
func (n *Node) OutEdges(d Direction) []Edge {
	n.mu.RLock()
	defer n.mu.RUnlock()

	result := make([]Edge, len(n.outEdges[d]))
	copy(result, n.outEdges[d])
	return result
}

// Neighbor возвращает первый узел в направлении d, если он есть
func (n *Node) Neighbor(d Direction) (*Node, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	if len(n.outEdges[d]) == 0 {
		return nil, false
	}
	return n.outEdges[d][0].Destination, true
}

func (n *Node) addEdge(d Direction, e Edge) {
	if !d.Valid() {
		panic("world: ребро без направления")
	}
	n.mu.Lock()
	n.outEdges[d] = append(n.outEdges[d], e)
	n.mu.Unlock()
}

// AddAdjacency добавляет одно направленное ребро n -> other.
// Обратное ребро не создается.
func (n *Node) AddAdjacency(d Direction, other *Node) {
	n.addEdge(d, Edge{Destination: other})
}

// AddSymmetricAdjacency добавляет ребро n -> other в направлении d
// и обратное other -> n в противоположном направлении.
// На обратном ребре записывается грань входа d.
func (n *Node) AddSymmetricAdjacency(d Direction, other *Node) {
	n.addEdge(d, Edge{Destination: other})
	other.addEdge(d.Opposite(), Edge{Destination: n, InEdge: d})
}

// AddTwistedAdjacency соединяет узлы со скруткой: выход из n через грань out
// приводит в other через его грань in, а выход из other через in - обратно в n через out.
func (n *Node) AddTwistedAdjacency(out Direction, other *Node, in Direction) {
	n.addEdge(out, Edge{Destination: other, InEdge: in})
	other.addEdge(in, Edge{Destination: n, InEdge: out})
}

// RandomOutEdge выбирает одно из ребер в направлении d.
// Возвращает false, если ребер нет (путь уходит за пределы графа).
func (n *Node) RandomOutEdge(d Direction, choose Chooser) (Edge, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	edges := n.outEdges[d]
	switch len(edges) {
	case 0:
		return Edge{}, false
	case 1:
		return edges[0], true
	}
	if choose == nil {
		choose = DefaultChooser
	}
	return edges[choose(len(edges))], true
}

// AddContents помещает сущность в узел
func (n *Node) AddContents(e Entity) {
	n.mu.Lock()
	n.contents = append(n.contents, e)
	n.opaqueKnown = false
	n.mu.Unlock()
}

// RemoveContents убирает сущность из узла. Отсутствующая сущность игнорируется.
func (n *Node) RemoveContents(e Entity) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	for i, existing := range n.contents {
		if existing == e {
			n.contents = append(n.contents[:i], n.contents[i+1:]...)
			n.opaqueKnown = false
			return true
		}
	}
	return false
}

// Contents возвращает снимок содержимого узла
func (n *Node) Contents() []Entity {
	n.mu.RLock()
	defer n.mu.RUnlock()

	result := make([]Entity, len(n.contents))
	copy(result, n.contents)
	return result
}

// ContentCount возвращает количество сущностей в узле
func (n *Node) ContentCount() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.contents)
}

// IsOpaque возвращает true, если хотя бы одна сущность непрозрачна.
// Пустой узел всегда прозрачен.
func (n *Node) IsOpaque() bool {
	n.mu.RLock()
	if n.opaqueKnown {
		opaque := n.opaque
		n.mu.RUnlock()
		return opaque
	}
	n.mu.RUnlock()

	n.mu.Lock()
	defer n.mu.Unlock()

	opaque := false
	for _, e := range n.contents {
		if e.IsOpaque() {
			opaque = true
			break
		}
	}
	n.opaque = opaque
	n.opaqueKnown = true
	return opaque
}

func (n *Node) String() string {
	return "node" + n.Label.String()
}
