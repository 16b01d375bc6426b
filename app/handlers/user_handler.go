package handlers

import (
	"net/http"

	"github.com/cherryshop/cherryshop-api/app/helpers"
	"github.com/cherryshop/cherryshop-api/app/services"
	"github.com/go-playground/validator/v10"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

type UserHandler struct {
	auth     *services.AuthService
	render   *render.Render
	validate *validator.Validate
	logger   *zap.Logger
}

func NewUserHandler(auth *services.AuthService, rnd *render.Render, v *validator.Validate, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		auth:     auth,
		render:   rnd,
		validate: v,
		logger:   logger,
	}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(h.render, w, err)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(h.render, w, helpers.ToValidationError(err))
		return
	}

	if err := h.auth.Register(r.Context(), req.EmailAddress, req.Username, req.Password); err != nil {
		h.render.JSON(w, http.StatusInternalServerError, errorResponse{Error: helpers.InternalErrorMessage})
		return
	}
	h.render.JSON(w, http.StatusOK, map[string]bool{"succeeded": true})
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(h.render, w, err)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(h.render, w, helpers.ToValidationError(err))
		return
	}

	token, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, map[string]string{"token": token})
}
