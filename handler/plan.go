package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"ewintr.nl/learnpath/intake"
	"ewintr.nl/learnpath/model"
	"ewintr.nl/learnpath/storage"
	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

type PlanAPI struct {
	planRepo storage.PlanRepository
	queue    chan<- *model.Plan
	logger   *slog.Logger
}

func NewPlanAPI(planRepo storage.PlanRepository, queue chan<- *model.Plan, logger *slog.Logger) *PlanAPI {
	return &PlanAPI{
		planRepo: planRepo,
		queue:    queue,
		logger:   logger,
	}
}

func (p *PlanAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	planID, _ := ShiftPath(r.URL.Path)

	switch {
	case r.Method == http.MethodGet && planID == "":
		p.List(w, r)
	case r.Method == http.MethodGet:
		p.Get(w, r, planID)
	case r.Method == http.MethodPost && planID == "":
		p.Create(w, r)
	default:
		Error(w, http.StatusNotFound, "not found", fmt.Errorf("no %s route for plan path %q", r.Method, planID))
	}
}

type planSummary struct {
	ID        string    `json:"id"`
	Topic     string    `json:"topic"`
	Status    string    `json:"status"`
	Videos    int       `json:"videos"`
	Days      int       `json:"days"`
	CreatedAt time.Time `json:"created_at"`
}

func (p *PlanAPI) List(w http.ResponseWriter, r *http.Request) {
	plans, err := p.planRepo.FindAll()
	if err != nil {
		p.returnErr(r.Context(), w, http.StatusInternalServerError, "could not list plans", err)
		return
	}

	resp := []planSummary{}
	for _, plan := range plans {
		resp = append(resp, planSummary{
			ID:        plan.ID.String(),
			Topic:     plan.Profile.Topic,
			Status:    string(plan.Status),
			Videos:    len(plan.Catalog),
			Days:      len(plan.Schedule),
			CreatedAt: plan.CreatedAt,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

func (p *PlanAPI) Get(w http.ResponseWriter, r *http.Request, rawID string) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		p.returnErr(r.Context(), w, http.StatusBadRequest, "invalid plan id", err)
		return
	}
	plan, err := p.planRepo.FindByID(id)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		p.returnErr(r.Context(), w, http.StatusNotFound, "plan not found", err)
		return
	case err != nil:
		p.returnErr(r.Context(), w, http.StatusInternalServerError, "could not find plan", err)
		return
	}

	writeJSON(w, http.StatusOK, plan)
}

// Create stores a new plan and queues it for the pipeline. The answers use
// the same format as the interactive intake.
func (p *PlanAPI) Create(w http.ResponseWriter, r *http.Request) {
	var answers intake.Answers
	if err := json.NewDecoder(r.Body).Decode(&answers); err != nil {
		p.returnErr(r.Context(), w, http.StatusBadRequest, "could not decode request body", err)
		return
	}
	profile, err := intake.ParseProfile(answers)
	if err != nil {
		p.returnErr(r.Context(), w, http.StatusBadRequest, "invalid answers", err)
		return
	}

	plan := model.NewPlan(profile)
	if err := p.planRepo.Save(plan); err != nil {
		p.returnErr(r.Context(), w, http.StatusInternalServerError, "could not save plan", err)
		return
	}

	resp := planSummary{
		ID:        plan.ID.String(),
		Topic:     profile.Topic,
		Status:    string(plan.Status),
		CreatedAt: plan.CreatedAt,
	}
	// the pipeline owns the plan once it is queued
	select {
	case p.queue <- plan:
	default:
		p.logger.Warn("plan queue is full", slog.String("id", resp.ID))
		PlanError(w, http.StatusServiceUnavailable, "too many plans in progress", resp.ID, errors.New("queue is full"))
		return
	}

	p.logger.Info("plan queued", slog.String("id", resp.ID), slog.String("topic", resp.Topic))
	writeJSON(w, http.StatusAccepted, resp)
}

func (p *PlanAPI) returnErr(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	p.logger.Error(message, slog.String("error", err.Error()), slog.Bool("canceled", ctx.Err() != nil))
	Error(w, status, message, err)
}
