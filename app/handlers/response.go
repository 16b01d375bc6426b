package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/cherryshop/cherryshop-api/app/helpers"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
)

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"errors,omitempty"`
}

// writeError maps a service error onto a status code. Nothing beyond the
// generic message leaks for 5xx responses.
func writeError(rnd *render.Render, w http.ResponseWriter, err error) {
	var verr *helpers.ValidationError
	switch {
	case errors.As(err, &verr):
		rnd.JSON(w, http.StatusBadRequest, errorResponse{Error: "Bad Request", Fields: verr.Fields})
	case errors.Is(err, helpers.ErrValidation):
		rnd.JSON(w, http.StatusBadRequest, errorResponse{Error: "Bad Request"})
	case errors.Is(err, helpers.ErrNotFound):
		rnd.JSON(w, http.StatusNotFound, errorResponse{Error: "Not Found"})
	case errors.Is(err, helpers.ErrUnauthorized):
		rnd.JSON(w, http.StatusUnauthorized, errorResponse{Error: "Unauthorized"})
	case errors.Is(err, helpers.ErrTooManyAttempts):
		rnd.JSON(w, http.StatusTooManyRequests, errorResponse{Error: "Too Many Requests"})
	default:
		rnd.JSON(w, http.StatusInternalServerError, errorResponse{Error: helpers.InternalErrorMessage})
	}
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return helpers.NewValidationError("body", "request body is not valid JSON for this resource.")
	}
	return nil
}

func pathID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		return 0, helpers.NewValidationError("id", "id must be a positive number.")
	}
	return uint(id), nil
}
