package world

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/annel0/nodeworld/internal/vec"
	"github.com/annel0/nodeworld/internal/world/block"
)

// Ошибки загрузки карты
var (
	ErrEmptyMap         = errors.New("карта не содержит ни одного узла")
	ErrUnknownMapSymbol = errors.New("неизвестный символ карты")
)

// Специальные символы формата карты
const (
	MapSkipSymbol  = '_' // Узла нет, но координата сдвигается
	MapEmptySymbol = 'E' // Пустой узел
)

// MapGraph граф, прочитанный из файла карты.
// Nodes индексируется как [y][z][x]; отсутствующие узлы равны nil.
type MapGraph struct {
	Nodes     [][][]*Node
	First     *Node // Первый созданный узел (минимальные y, z, x)
	NodeCount int
}

// At возвращает узел по координатам или nil
func (m *MapGraph) At(x, y, z int) *Node {
	if y < 0 || y >= len(m.Nodes) {
		return nil
	}
	if z < 0 || z >= len(m.Nodes[y]) {
		return nil
	}
	if x < 0 || x >= len(m.Nodes[y][z]) {
		return nil
	}
	return m.Nodes[y][z][x]
}

// ReadMap читает карту в текстовом формате.
//
// Каждая строка - ряд узлов вдоль X. Переход на следующую строку
// увеличивает Z и сбрасывает X. Одна или несколько пустых строк
// увеличивают Y и сбрасывают X и Z. Символ "_" (и пробел) - нет узла,
// "E" - пустой узел, остальные буквы - узел с блоком из реестра.
// Соседние узлы соединяются симметричными ребрами.
func ReadMap(r io.Reader, registry *block.Registry) (*MapGraph, error) {
	if registry == nil {
		registry = block.Default()
	}

	result := &MapGraph{}
	scanner := bufio.NewScanner(r)
	y, z := 0, 0
	blankLines := 0
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			// Пустые строки до первого ряда игнорируются
			if len(result.Nodes) > 0 {
				blankLines++
			}
			continue
		}

		switch {
		case len(result.Nodes) == 0:
			result.Nodes = append(result.Nodes, nil)
		case blankLines > 0:
			y++
			z = 0
			result.Nodes = append(result.Nodes, nil)
			blankLines = 0
		default:
			z++
		}

		runes := []rune(line)
		row := make([]*Node, len(runes))
		for x, ch := range runes {
			node, err := makeMapNode(ch, vec.Vec3{X: x, Y: y, Z: z}, registry)
			if err != nil {
				return nil, fmt.Errorf("строка %d, позиция %d: %w", lineNo, x+1, err)
			}
			if node == nil {
				continue
			}

			if x > 0 && row[x-1] != nil {
				node.AddSymmetricAdjacency(Left, row[x-1])
			}
			if below := result.At(x, y-1, z); below != nil {
				node.AddSymmetricAdjacency(Down, below)
			}
			if behind := result.At(x, y, z-1); behind != nil {
				node.AddSymmetricAdjacency(Forward, behind)
			}

			row[x] = node
			result.NodeCount++
			if result.First == nil {
				result.First = node
			}
		}
		result.Nodes[y] = append(result.Nodes[y], row)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения карты: %w", err)
	}
	if result.First == nil {
		return nil, ErrEmptyMap
	}
	return result, nil
}

// ParseMap разбирает карту из строки
func ParseMap(text string, registry *block.Registry) (*MapGraph, error) {
	return ReadMap(strings.NewReader(text), registry)
}

func makeMapNode(ch rune, label vec.Vec3, registry *block.Registry) (*Node, error) {
	switch ch {
	case MapSkipSymbol, ' ':
		return nil, nil
	case MapEmptySymbol:
		return NewNode(label), nil
	}

	behavior, ok := registry.ByLetter(ch)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownMapSymbol, ch)
	}
	node := NewNode(label)
	node.AddContents(NewBlockFrom(behavior))
	return node, nil
}

// Spawn узел старта игрока: шаг назад, вправо и вверх от First.
// Если какого-то соседа нет, шаг пропускается.
func (m *MapGraph) Spawn() *Node {
	node := m.First
	for _, d := range []Direction{Backward, Right, Up} {
		if next, ok := node.Neighbor(d); ok {
			node = next
		}
	}
	return node
}
