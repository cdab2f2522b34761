package world

import (
	"fmt"
	"math/rand"

	"github.com/annel0/nodeworld/internal/util"
	"github.com/annel0/nodeworld/internal/world/block"
)

// BiomeType представляет тип биома
type BiomeType int

const (
	BiomePlains BiomeType = iota
	BiomeDesert
	BiomeForest
	BiomeWater
)

// Константы высот для генерации (доля от высоты сетки)
const (
	WaterMax      = 0.30 // Ниже - водная гладь
	MountainStart = 0.80 // Выше - голый камень
)

// TerrainGenerator заполняет сетку ландшафтом по шуму Перлина
type TerrainGenerator struct {
	Seed          int64   // Сид для генерации шума
	NoiseScale    float64 // Масштаб шума высоты
	BiomeScale    float64 // Масштаб шума биомов
	MaxHeight     float64 // Максимальная высота рельефа (доля от высоты сетки)
	PillarDensity float64 // Вероятность цветной колонны на столбце (от 0 до 1)
	PillarHeight  int

	height *util.Noise
	biome  *util.Noise
}

// TerrainResult итог генерации
type TerrainResult struct {
	Heights [][]int // Высота поверхности для каждого столбца [x][z]; -1 - столбец пуст
	Blocks  int     // Сколько блоков поставлено
	Pillars int
	Spawn   *Node // Первый пустой узел над поверхностью в центральном столбце
}

// NewTerrainGenerator создаёт генератор с настройками по умолчанию
func NewTerrainGenerator(seed int64) *TerrainGenerator {
	return &TerrainGenerator{
		Seed:          seed,
		NoiseScale:    0.15, // Настройка сглаженности ландшафта
		BiomeScale:    0.05, // Настройка размера биомов
		MaxHeight:     0.45,
		PillarDensity: 0.03,
		PillarHeight:  2,
		height:        util.NewNoise(seed),
		biome:         util.NewNoise(seed + 42),
	}
}

// Generate заполняет блоками сетку. Центральный столбец остается
// свободным выше поверхности, чтобы было куда поставить игрока.
func (tg *TerrainGenerator) Generate(g *Grid) (*TerrainResult, error) {
	if g == nil {
		return nil, fmt.Errorf("сетка не задана")
	}
	if tg.MaxHeight < 0 || tg.MaxHeight > 1 {
		return nil, fmt.Errorf("недопустимая максимальная высота %.2f", tg.MaxHeight)
	}

	size := g.Size()
	rng := rand.New(rand.NewSource(tg.Seed))
	center := g.Radius
	result := &TerrainResult{Heights: make([][]int, size)}

	for x := 0; x < size; x++ {
		result.Heights[x] = make([]int, size)
		for z := 0; z < size; z++ {
			heightValue := tg.height.Noise2D(float64(x)*tg.NoiseScale, float64(z)*tg.NoiseScale)
			biomeValue := tg.biome.Noise2D(float64(x)*tg.BiomeScale, float64(z)*tg.BiomeScale)
			biome := tg.biomeFor(heightValue, biomeValue)

			top := int(heightValue*tg.MaxHeight*float64(size)) - 1
			if top >= size {
				top = size - 1
			}
			result.Heights[x][z] = top

			for y := 0; y <= top; y++ {
				id := block.StoneBlockID
				if y == top {
					id = tg.surfaceFor(heightValue, biome)
				} else if y == top-1 && biome != BiomeWater {
					id = block.DirtBlockID
				}
				if err := placeBlock(g.At(x, y, z), id); err != nil {
					return nil, err
				}
				result.Blocks++
			}

			if x == center && z == center {
				continue
			}
			if biome != BiomeWater && rng.Float64() < tg.PillarDensity {
				id := pillarColors[rng.Intn(len(pillarColors))]
				for y := top + 1; y <= top+tg.PillarHeight && y < size; y++ {
					if err := placeBlock(g.At(x, y, z), id); err != nil {
						return nil, err
					}
					result.Blocks++
				}
				result.Pillars++
			}
		}
	}

	spawnY := result.Heights[center][center] + 1
	result.Spawn = g.At(center, spawnY, center)
	return result, nil
}

var pillarColors = []block.BlockID{block.BlueBlockID, block.GreenBlockID, block.RedBlockID}

func placeBlock(node *Node, id block.BlockID) error {
	b, err := NewBlock(id)
	if err != nil {
		return err
	}
	node.AddContents(b)
	return nil
}

// biomeFor определяет тип биома на основе значений шума
func (tg *TerrainGenerator) biomeFor(height, biomeValue float64) BiomeType {
	if height < WaterMax {
		return BiomeWater
	}
	if biomeValue < 0.35 {
		return BiomeDesert
	} else if biomeValue > 0.65 {
		return BiomeForest
	}
	return BiomePlains
}

// surfaceFor возвращает верхний блок столбца
func (tg *TerrainGenerator) surfaceFor(height float64, biome BiomeType) block.BlockID {
	switch {
	case biome == BiomeWater:
		return block.WaterBlockID
	case height > MountainStart:
		return block.StoneBlockID
	case biome == BiomeDesert:
		return block.SandBlockID
	default:
		return block.GrassBlockID
	}
}
