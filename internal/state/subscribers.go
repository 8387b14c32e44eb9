package state

import "sync"

type subscriber[T any] struct {
	id int
	fn func(T)
}

// 購読者の一覧。登録順に通知する。
type subscribers[T any] struct {
	mu     sync.Mutex
	nextID int
	list   []subscriber[T]
}

func (s *subscribers[T]) add(fn func(T)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.list = append(s.list, subscriber[T]{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { s.remove(id) })
	}
}

func (s *subscribers[T]) remove(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, sub := range s.list {
		if sub.id == id {
			s.list = append(s.list[:i], s.list[i+1:]...)
			return
		}
	}
}

func (s *subscribers[T]) publish(v T) {
	s.mu.Lock()
	list := make([]subscriber[T], len(s.list))
	copy(list, s.list)
	s.mu.Unlock()

	for _, sub := range list {
		sub.fn(v)
	}
}
