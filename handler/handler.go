package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
)

var routes = []string{"GET /plan", "GET /plan/<id>", "POST /plan"}

// reply is the body of every answer that is not a plan or a plan listing.
type reply struct {
	Message string   `json:"message"`
	Error   string   `json:"error,omitempty"`
	PlanID  string   `json:"plan_id,omitempty"`
	Routes  []string `json:"routes,omitempty"`
}

func Index(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, reply{Message: "learnpath", Routes: routes})
}

func Error(w http.ResponseWriter, status int, message string, err error) {
	writeJSON(w, status, reply{Message: message, Error: err.Error()})
}

// PlanError is an error about a plan that was already stored.
func PlanError(w http.ResponseWriter, status int, message, planID string, err error) {
	writeJSON(w, status, reply{Message: message, Error: err.Error(), PlanID: planID})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body = []byte(fmt.Sprintf(`{"message":"could not marshal response","error":%q}`, err.Error()))
	}
	w.WriteHeader(status)
	w.Write(body)
}
