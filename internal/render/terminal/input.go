package terminal

import (
	"unicode"

	"github.com/annel0/nodeworld/internal/game"
	"github.com/gdamore/tcell/v2"
)

// DefaultLookStep смещение камеры от одного нажатия стрелки
const DefaultLookStep = 100

var runeKeys = map[rune]game.MoveKey{
	'w': game.KeyForward,
	's': game.KeyBackward,
	'a': game.KeyLeft,
	'd': game.KeyRight,
	' ': game.KeyUp,
	'c': game.KeyDown,
}

// InputTranslator переводит события tcell в ввод игры.
// Терминал не сообщает об отпускании клавиш: каждое нажатие
// продлевает удержание, Shift (заглавная буква) добавляет спуск.
type InputTranslator struct {
	LookStep float64

	dragging     bool
	lastX, lastY int
}

// NewInputTranslator создаёт переводчик с шагом стрелок lookStep
func NewInputTranslator(lookStep float64) *InputTranslator {
	if lookStep <= 0 {
		lookStep = DefaultLookStep
	}
	return &InputTranslator{LookStep: lookStep}
}

// Translate возвращает события игры для события терминала
func (t *InputTranslator) Translate(ev tcell.Event) []game.Input {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return t.translateKey(ev)
	case *tcell.EventMouse:
		return t.translateMouse(ev)
	case *tcell.EventResize:
		width, height := ev.Size()
		return []game.Input{{Kind: game.InputResize, Width: float64(width), Height: float64(height)}}
	}
	return nil
}

func (t *InputTranslator) translateKey(ev *tcell.EventKey) []game.Input {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return []game.Input{{Kind: game.InputQuit}}
	case tcell.KeyLeft:
		return []game.Input{{Kind: game.InputLook, DX: -t.LookStep}}
	case tcell.KeyRight:
		return []game.Input{{Kind: game.InputLook, DX: t.LookStep}}
	case tcell.KeyUp:
		return []game.Input{{Kind: game.InputLook, DY: -t.LookStep}}
	case tcell.KeyDown:
		return []game.Input{{Kind: game.InputLook, DY: t.LookStep}}
	case tcell.KeyRune:
	default:
		return nil
	}

	r := ev.Rune()
	if r == 'q' {
		return []game.Input{{Kind: game.InputQuit}}
	}
	key, ok := runeKeys[unicode.ToLower(r)]
	if !ok {
		return nil
	}
	inputs := []game.Input{{Kind: game.InputKeyPress, Key: key}}
	if unicode.IsUpper(r) && key != game.KeyDown {
		inputs = append(inputs, game.Input{Kind: game.InputKeyPress, Key: game.KeyDown})
	}
	return inputs
}

// translateMouse поворачивает камеру перетаскиванием левой кнопкой
func (t *InputTranslator) translateMouse(ev *tcell.EventMouse) []game.Input {
	x, y := ev.Position()
	if ev.Buttons()&tcell.Button1 == 0 {
		t.dragging = false
		return nil
	}
	if !t.dragging {
		t.dragging = true
		t.lastX, t.lastY = x, y
		return nil
	}
	dx, dy := x-t.lastX, y-t.lastY
	t.lastX, t.lastY = x, y
	if dx == 0 && dy == 0 {
		return nil
	}
	return []game.Input{{Kind: game.InputLook, DX: float64(dx) * t.LookStep / 4, DY: float64(dy) * t.LookStep / 4}}
}

// Pump читает события экрана и отправляет ввод в out до закрытия
// экрана (PollEvent вернул nil) или done. Канал out закрывается.
func Pump(screen tcell.Screen, t *InputTranslator, out chan<- game.Input, done <-chan struct{}) {
	defer close(out)
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		for _, in := range t.Translate(ev) {
			select {
			case out <- in:
			case <-done:
				return
			}
		}
	}
}
