package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/app/services"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/pkg/response"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/pkg/validate"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController() *AuthController {
	return &AuthController{service: services.NewAuthService()}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var body registerRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if errs := validate.Struct(&body); validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}

	user, err := c.service.Register(r.Context(), body.Name, body.Email, body.Password)
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Created(w, user)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var body loginRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if errs := validate.Struct(&body); validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}

	token, refresh, err := c.service.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		response.Unauthorized(w)
		return
	}
	response.Success(w, map[string]string{
		"token":         token,
		"refresh_token": refresh,
	})
}
