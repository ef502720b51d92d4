package store

import (
	"context"
	"sync"
	"time"
)

// wait имитирует сетевую задержку перед мутацией. Начатая операция не
// отменяется: по истечении контекста ожидание прекращается, но мутация
// всё равно выполняется.
func wait(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

// subscribers - список подписчиков на изменения снимка состояния.
// Уведомления рассылаются вне мьютекса стора, чтобы подписчик мог
// сразу прочитать новый снимок.
type subscribers struct {
	mu   sync.Mutex
	next int
	fns  map[int]func()
}

// add регистрирует подписчика и возвращает функцию отписки
func (s *subscribers) add(fn func()) func() {
	s.mu.Lock()
	if s.fns == nil {
		s.fns = make(map[int]func())
	}
	id := s.next
	s.next++
	s.fns[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.fns, id)
		s.mu.Unlock()
	}
}

func (s *subscribers) notify() {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.fns))
	for _, fn := range s.fns {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
