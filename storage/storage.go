package storage

import (
	"errors"

	"ewintr.nl/learnpath/model"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("plan not found")

type PlanRepository interface {
	Save(plan *model.Plan) error
	FindByID(id uuid.UUID) (*model.Plan, error)
	FindAll() ([]*model.Plan, error)
}
