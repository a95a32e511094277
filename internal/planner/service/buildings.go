package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"

	"building-control/internal/planner/geometry"
	"building-control/internal/planner/importer"
	"building-control/internal/planner/models"
	"building-control/internal/planner/repository"
	"building-control/internal/planner/store"

	"github.com/google/uuid"
)

// ============================================================
// Buildings Service
// ============================================================

// Buildings держит по одному контейнеру на загруженное здание и
// сохраняет состояние после каждого успешного изменения.
type Buildings struct {
	repo repository.Repository

	mu         sync.Mutex
	containers map[string]*store.Container
}

func NewBuildings(repo repository.Repository) *Buildings {
	return &Buildings{
		repo:       repo,
		containers: make(map[string]*store.Container),
	}
}

func (s *Buildings) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// Create сохраняет новое здание. Этажи проходят через AddFloor, так что
// элементы получают id, стиль и имена.
func (s *Buildings) Create(ctx context.Context, input models.Building) (models.Building, error) {
	if strings.TrimSpace(input.Name) == "" {
		return models.Building{}, fmt.Errorf("%w: name is required", store.ErrInvalidProperty)
	}

	b := models.Building{
		ID:      uuid.NewString(),
		Name:    input.Name,
		Lon:     input.Lon,
		Lat:     input.Lat,
		Address: input.Address,
		Floors:  []models.FloorPlan{},
	}
	for _, floor := range input.Floors {
		next, err := store.AddFloor(b, floor)
		if err != nil {
			return models.Building{}, err
		}
		b = next
	}

	if err := s.repo.Save(ctx, b); err != nil {
		return models.Building{}, err
	}

	s.mu.Lock()
	s.containers[b.ID] = s.newContainer(b)
	s.mu.Unlock()

	log.Printf("[PLANNER] Building %s created (%d floors)", b.ID, len(b.Floors))
	return b, nil
}

func (s *Buildings) Get(ctx context.Context, id string) (models.Building, error) {
	c, err := s.container(ctx, id)
	if err != nil {
		return models.Building{}, err
	}
	b, _ := c.Snapshot()
	return b, nil
}

func (s *Buildings) List(ctx context.Context) ([]models.BuildingSummary, error) {
	return s.repo.List(ctx)
}

// Delete сначала выбрасывает здание из кеша, чтобы параллельные
// изменения не сохранили его заново после удаления из базы.
func (s *Buildings) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.containers, id)
	s.mu.Unlock()

	return s.repo.Delete(ctx, id)
}

// Floor возвращает копию этажа.
func (s *Buildings) Floor(ctx context.Context, id string, floorIndex int) (models.FloorPlan, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return models.FloorPlan{}, err
	}
	if floorIndex < 0 || floorIndex >= len(b.Floors) {
		return models.FloorPlan{}, &store.IndexError{Index: floorIndex, Len: len(b.Floors)}
	}
	return b.Floors[floorIndex], nil
}

// Mutate применяет операцию и сохраняет результат. Если сохранение не
// удалось, состояние контейнера не меняется. Операция без изменений в
// базу не пишется.
func (s *Buildings) Mutate(ctx context.Context, id string, op store.Op) (models.Building, error) {
	c, err := s.container(ctx, id)
	if err != nil {
		return models.Building{}, err
	}

	return c.Apply(func(b models.Building) (models.Building, error) {
		next, err := op(b)
		if err != nil {
			return b, err
		}
		if store.Unchanged(b, next) {
			return b, nil
		}
		if err := s.repo.Save(ctx, next); err != nil {
			return b, err
		}
		return next, nil
	})
}

// ============================================================
// Operations
// ============================================================

func (s *Buildings) AddFloor(ctx context.Context, id string, floor models.FloorPlan) (models.Building, error) {
	return s.Mutate(ctx, id, func(b models.Building) (models.Building, error) {
		return store.AddFloor(b, floor)
	})
}

func (s *Buildings) RemoveFloor(ctx context.Context, id string, floorIndex int) (models.Building, error) {
	return s.Mutate(ctx, id, func(b models.Building) (models.Building, error) {
		return store.RemoveFloor(b, floorIndex)
	})
}

func (s *Buildings) SetFloorProperty(ctx context.Context, id string, floorIndex int, key string, value any) (models.Building, error) {
	return s.Mutate(ctx, id, func(b models.Building) (models.Building, error) {
		return store.SetFloorProperty(b, floorIndex, key, value)
	})
}

func (s *Buildings) AddElement(ctx context.Context, id string, floorIndex int, e models.Element) (models.Element, error) {
	var added models.Element
	_, err := s.Mutate(ctx, id, func(b models.Building) (models.Building, error) {
		next, el, err := store.AddElement(b, floorIndex, e)
		added = el
		return next, err
	})
	if err != nil {
		return models.Element{}, err
	}
	return added, nil
}

func (s *Buildings) UpdateElement(ctx context.Context, id string, floorIndex int, elementID string, patch store.ElementPatch) (models.Building, error) {
	return s.Mutate(ctx, id, func(b models.Building) (models.Building, error) {
		return store.UpdateElement(b, floorIndex, elementID, patch)
	})
}

func (s *Buildings) RemoveElement(ctx context.Context, id string, floorIndex int, elementID string) (models.Building, error) {
	return s.Mutate(ctx, id, func(b models.Building) (models.Building, error) {
		return store.RemoveElement(b, floorIndex, elementID)
	})
}

func (s *Buildings) ReplaceElements(ctx context.Context, id string, floorIndex int, elements []models.Element) (models.Building, error) {
	return s.Mutate(ctx, id, func(b models.Building) (models.Building, error) {
		return store.ReplaceElements(b, floorIndex, elements)
	})
}

func (s *Buildings) ClearElements(ctx context.Context, id string, floorIndex int, kinds ...models.ElementKind) (models.Building, error) {
	return s.Mutate(ctx, id, func(b models.Building) (models.Building, error) {
		return store.ClearElements(b, floorIndex, kinds...)
	})
}

// ImportFloor разбирает чертеж и добавляет его последним этажом.
func (s *Buildings) ImportFloor(ctx context.Context, id string, r io.Reader, opts importer.Options) (models.Building, error) {
	floor, err := importer.Import(ctx, r, opts)
	if err != nil {
		return models.Building{}, err
	}
	return s.AddFloor(ctx, id, *floor)
}

// Analyze: товары внутри последнего контура этажа.
func (s *Buildings) Analyze(ctx context.Context, id string, floorIndex int) (geometry.Analysis, error) {
	floor, err := s.Floor(ctx, id, floorIndex)
	if err != nil {
		return geometry.Analysis{}, err
	}
	return geometry.AnalyzeFloor(floor), nil
}

// ============================================================
// Containers
// ============================================================

// container достает здание из кеша или загружает его из базы. Чтение из
// базы идет без блокировки; если здание успели загрузить параллельно,
// используется уже закешированный контейнер.
func (s *Buildings) container(ctx context.Context, id string) (*store.Container, error) {
	s.mu.Lock()
	c, ok := s.containers[id]
	s.mu.Unlock()
	if ok {
		return c, nil
	}

	b, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.containers[id]; ok {
		return c, nil
	}
	c = s.newContainer(b)
	s.containers[id] = c
	return c, nil
}

func (s *Buildings) newContainer(b models.Building) *store.Container {
	c := store.NewContainer(b)
	c.Subscribe(func(ev store.Event) {
		log.Printf("[STORE] Building %s → v%d (%d floors)", ev.Building.ID, ev.Version, len(ev.Building.Floors))
	})
	return c
}
