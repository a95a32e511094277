package store

import (
	"reflect"
	"sync"

	"building-control/internal/planner/models"
)

// ============================================================
// Observable container
// ============================================================

// Op: чистая функция перехода состояния здания.
type Op func(models.Building) (models.Building, error)

// Event рассылается подписчикам после каждого успешного изменения.
type Event struct {
	Version  uint64
	Building models.Building
}

// Container хранит текущий снимок здания и уведомляет подписчиков.
// Снимки неизменяемы: Snapshot отдает копию, Apply подменяет состояние
// целиком только при успехе операции.
type Container struct {
	mu          sync.RWMutex
	state       models.Building
	version     uint64
	nextSub     int
	subscribers map[int]func(Event)
}

func NewContainer(b models.Building) *Container {
	return &Container{
		state:       b.Clone(),
		subscribers: make(map[int]func(Event)),
	}
}

// Snapshot возвращает копию текущего состояния и его версию.
func (c *Container) Snapshot() (models.Building, uint64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.Clone(), c.version
}

// Apply выполняет операцию над текущим состоянием. При ошибке или если
// операция ничего не изменила, версия остается прежней и подписчики не
// вызываются.
func (c *Container) Apply(op Op) (models.Building, error) {
	c.mu.Lock()
	next, err := op(c.state)
	if err != nil {
		c.mu.Unlock()
		return models.Building{}, err
	}
	if Unchanged(c.state, next) {
		c.mu.Unlock()
		return next.Clone(), nil
	}
	c.state = next
	c.version++
	ev := Event{Version: c.version, Building: next.Clone()}
	subs := make([]func(Event), 0, len(c.subscribers))
	for _, fn := range c.subscribers {
		subs = append(subs, fn)
	}
	c.mu.Unlock()

	for _, fn := range subs {
		fn(ev)
	}
	return next.Clone(), nil
}

// Subscribe регистрирует обработчик; возвращает функцию отписки.
func (c *Container) Subscribe(fn func(Event)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSub
	c.nextSub++
	c.subscribers[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subscribers, id)
	}
}

// Unchanged сообщает, что операция вернула то же состояние.
func Unchanged(prev, next models.Building) bool {
	return reflect.DeepEqual(prev, next)
}
