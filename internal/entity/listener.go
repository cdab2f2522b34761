package entity

import "github.com/annel0/nodeworld/internal/physics"

// Listener получает уведомление о завершении фотона.
// Значения Listener сравниваются через ==, поэтому реализации должны
// быть сравнимыми (обычно это указатели).
type Listener interface {
	OnCollision(p *Photon, c physics.Collision)
	OnExpire(p *Photon)
}

// ListenerFuncs адаптер функций к Listener. Используйте указатель:
// &ListenerFuncs{...}.
type ListenerFuncs struct {
	Collision func(p *Photon, c physics.Collision)
	Expire    func(p *Photon)
}

func (l *ListenerFuncs) OnCollision(p *Photon, c physics.Collision) {
	if l.Collision != nil {
		l.Collision(p, c)
	}
}

func (l *ListenerFuncs) OnExpire(p *Photon) {
	if l.Expire != nil {
		l.Expire(p)
	}
}
