package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ewintr.nl/learnpath/model"
	"ewintr.nl/learnpath/storage"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestShiftPath(t *testing.T) {
	for _, tc := range []struct {
		input   string
		expHead string
		expTail string
	}{
		{input: "", expHead: "", expTail: "/"},
		{input: "/", expHead: "", expTail: "/"},
		{input: "/plan", expHead: "plan", expTail: "/"},
		{input: "/plan/", expHead: "plan", expTail: "/"},
		{input: "/plan/abc", expHead: "plan", expTail: "/abc"},
		{input: "plan/../plan/abc/", expHead: "plan", expTail: "/abc"},
	} {
		t.Run(tc.input, func(t *testing.T) {
			head, tail := ShiftPath(tc.input)
			assert.Equal(t, tc.expHead, head)
			assert.Equal(t, tc.expTail, tail)
		})
	}
}

func serve(t *testing.T, srv http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(method, target, r))
	return rec
}

func TestServerIndexAndUnknown(t *testing.T) {
	srv := NewServer(storage.NewMemory(), make(chan *model.Plan, 1), testLogger)

	rec := serve(t, srv, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var index reply
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &index))
	assert.Equal(t, "learnpath", index.Message)
	assert.Contains(t, index.Routes, "POST /plan")

	rec = serve(t, srv, http.MethodGet, "/video", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	var notFound reply
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &notFound))
	assert.Equal(t, "/video is not a valid path", notFound.Error)

	rec = serve(t, srv, http.MethodDelete, "/plan", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPlanAPIList(t *testing.T) {
	repo := storage.NewMemory()
	plan := model.NewPlan(model.Profile{Topic: "Go"})
	plan.Catalog = []model.Video{{ID: "a"}, {ID: "b"}}
	plan.Schedule = []model.DaySchedule{{DayIndex: 1, Videos: plan.Catalog}}
	require.NoError(t, repo.Save(plan))
	srv := NewServer(repo, make(chan *model.Plan, 1), testLogger)

	rec := serve(t, srv, http.MethodGet, "/plan", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var act []planSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &act))
	require.Len(t, act, 1)
	assert.Equal(t, plan.ID.String(), act[0].ID)
	assert.Equal(t, "Go", act[0].Topic)
	assert.Equal(t, 2, act[0].Videos)
	assert.Equal(t, 1, act[0].Days)
}

func TestPlanAPIGet(t *testing.T) {
	repo := storage.NewMemory()
	plan := model.NewPlan(model.Profile{Topic: "Go"})
	require.NoError(t, repo.Save(plan))
	srv := NewServer(repo, make(chan *model.Plan, 1), testLogger)

	t.Run("found", func(t *testing.T) {
		rec := serve(t, srv, http.MethodGet, "/plan/"+plan.ID.String(), "")
		require.Equal(t, http.StatusOK, rec.Code)
		var act model.Plan
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &act))
		assert.Equal(t, plan.ID, act.ID)
		assert.Equal(t, "Go", act.Profile.Topic)
	})

	t.Run("unknown", func(t *testing.T) {
		rec := serve(t, srv, http.MethodGet, "/plan/"+uuid.New().String(), "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		rec := serve(t, srv, http.MethodGet, "/plan/nope", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestPlanAPICreate(t *testing.T) {
	t.Run("queued", func(t *testing.T) {
		repo := storage.NewMemory()
		queue := make(chan *model.Plan, 1)
		srv := NewServer(repo, queue, testLogger)

		rec := serve(t, srv, http.MethodPost, "/plan", `{"topic":"Rust","background":"some basics","commitment":"2 hours a week"}`)
		require.Equal(t, http.StatusAccepted, rec.Code)

		var act planSummary
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &act))
		assert.Equal(t, "Rust", act.Topic)
		assert.Equal(t, string(model.PlanStatusNew), act.Status)

		require.Len(t, queue, 1)
		queued := <-queue
		assert.Equal(t, act.ID, queued.ID.String())
		assert.Equal(t, model.LevelIntermediate, queued.Profile.Level)

		stored, err := repo.FindByID(queued.ID)
		require.NoError(t, err)
		assert.Equal(t, "Rust", stored.Profile.Topic)
	})

	t.Run("invalid answers", func(t *testing.T) {
		srv := NewServer(storage.NewMemory(), make(chan *model.Plan, 1), testLogger)

		rec := serve(t, srv, http.MethodPost, "/plan", `{"topic":"Rust","commitment":"whenever"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = serve(t, srv, http.MethodPost, "/plan", `not json`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("queue full", func(t *testing.T) {
		repo := storage.NewMemory()
		srv := NewServer(repo, make(chan *model.Plan), testLogger)
		rec := serve(t, srv, http.MethodPost, "/plan", `{"topic":"Rust","commitment":"2 hours"}`)
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)

		var act reply
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &act))
		id, err := uuid.Parse(act.PlanID)
		require.NoError(t, err)
		stored, err := repo.FindByID(id)
		require.NoError(t, err)
		assert.Equal(t, model.PlanStatusNew, stored.Status)
	})
}
