package storage

import (
	"sort"
	"sync"
	"time"

	"ewintr.nl/learnpath/model"
	"github.com/google/uuid"
)

// Memory keeps plans for the lifetime of the process. It is used when no
// database is configured.
type Memory struct {
	mu    sync.RWMutex
	plans map[uuid.UUID]model.Plan
}

func NewMemory() *Memory {
	return &Memory{
		plans: map[uuid.UUID]model.Plan{},
	}
}

func (m *Memory) Save(plan *model.Plan) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	plan.UpdatedAt = time.Now()
	m.plans[plan.ID] = *plan
	return nil
}

func (m *Memory) FindByID(id uuid.UUID) (*model.Plan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	plan, ok := m.plans[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &plan, nil
}

func (m *Memory) FindAll() ([]*model.Plan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	plans := make([]*model.Plan, 0, len(m.plans))
	for _, p := range m.plans {
		p := p
		plans = append(plans, &p)
	}
	sort.Slice(plans, func(i, j int) bool {
		return plans[i].CreatedAt.After(plans[j].CreatedAt)
	})
	return plans, nil
}
