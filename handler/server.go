package handler

import (
	"fmt"
	"net/http"
	"path"
	"strings"

	"ewintr.nl/learnpath/model"
	"ewintr.nl/learnpath/storage"
	"golang.org/x/exp/slog"
)

type Server struct {
	plans  *PlanAPI
	logger *slog.Logger
}

func NewServer(planRepo storage.PlanRepository, queue chan<- *model.Plan, logger *slog.Logger) *Server {
	return &Server{
		plans:  NewPlanAPI(planRepo, queue, logger),
		logger: logger,
	}
}

// statusWriter remembers the status code for the request log.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (sw *statusWriter) WriteHeader(status int) {
	sw.status = status
	sw.ResponseWriter.WriteHeader(status)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
	sw.Header().Set("Content-Type", "application/json")
	originalPath := r.URL.Path

	head, tail := ShiftPath(r.URL.Path)
	switch head {
	case "":
		Index(sw)
	case "plan":
		r.URL.Path = tail
		s.plans.ServeHTTP(sw, r)
	default:
		Error(sw, http.StatusNotFound, "not found", fmt.Errorf("%s is not a valid path", originalPath))
	}

	s.logger.Info("request served", slog.String("method", r.Method), slog.String("path", originalPath), slog.Int("status", sw.status))
}

// ShiftPath splits off the first component of p, which will be cleaned of
// relative components before processing. head will never contain a slash and
// tail will always be a rooted path without trailing slash.
// See https://blog.merovius.de/posts/2017-06-18-how-not-to-use-an-http-router/
func ShiftPath(p string) (string, string) {
	p = path.Clean("/" + p)

	i := strings.Index(p[1:], "/") + 1
	if i <= 0 {
		return p[1:], "/"
	}
	return p[1:i], p[i:]
}
