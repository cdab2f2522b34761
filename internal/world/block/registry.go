package block

import (
	"fmt"
	"sync"
)

// BlockID представляет идентификатор типа блока
type BlockID uint16

// Константы ID блоков
const (
	// Ландшафт
	StoneBlockID BlockID = iota + 1 // 1
	GrassBlockID                    // 2
	WaterBlockID                    // 3
	SandBlockID                     // 4
	DirtBlockID                     // 5

	// Окрашенные блоки из файлов карт (начиная с 100)
	BlueBlockID  BlockID = 100 // B
	GreenBlockID BlockID = 101 // G
	RedBlockID   BlockID = 102 // R
)

// Registry реестр поведений блоков
type Registry struct {
	mu       sync.RWMutex
	byID     map[BlockID]Behavior
	byLetter map[rune]Behavior
}

// NewRegistry создаёт пустой реестр
func NewRegistry() *Registry {
	return &Registry{
		byID:     make(map[BlockID]Behavior),
		byLetter: make(map[rune]Behavior),
	}
}

var (
	defaultRegistry *Registry
	defaultOnce     sync.Once
)

// Default возвращает общий реестр, в который регистрируются стандартные блоки
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// Register добавляет поведение блока в реестр.
// Повторная регистрация того же ID заменяет поведение.
func (r *Registry) Register(behavior Behavior) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, exists := r.byID[behavior.ID()]; exists && old.Letter() != 0 {
		delete(r.byLetter, old.Letter())
	}
	r.byID[behavior.ID()] = behavior
	if letter := behavior.Letter(); letter != 0 {
		r.byLetter[letter] = behavior
	}
}

// Get возвращает поведение для указанного ID
func (r *Registry) Get(id BlockID) (Behavior, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	behavior, exists := r.byID[id]
	return behavior, exists
}

// ByLetter возвращает поведение по символу файла карты
func (r *Registry) ByLetter(letter rune) (Behavior, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	behavior, exists := r.byLetter[letter]
	return behavior, exists
}

// IsValidBlockID проверяет, зарегистрирован ли ID
func (r *Registry) IsValidBlockID(id BlockID) bool {
	_, exists := r.Get(id)
	return exists
}

// Register добавляет поведение в общий реестр
func Register(behavior Behavior) {
	Default().Register(behavior)
}

// Get возвращает поведение из общего реестра
func Get(id BlockID) (Behavior, bool) {
	return Default().Get(id)
}

func (id BlockID) String() string {
	if behavior, ok := Get(id); ok {
		return behavior.Name()
	}
	return fmt.Sprintf("Block(%d)", uint16(id))
}
