package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/app/models"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/app/services"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/pkg/middleware"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/pkg/response"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/pkg/validate"
)

type OrderController struct {
	service *services.OrderService
}

func NewOrderController(service *services.OrderService) *OrderController {
	return &OrderController{service: service}
}

// Store creates an order. Customers always order for themselves: their
// authenticated id overrides whatever the body claims.
func (c *OrderController) Store(w http.ResponseWriter, r *http.Request) {
	var body services.CreateOrderInput
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if role, ok := middleware.RoleFromCtx(r); ok && models.Role(role) == models.RoleCustomer {
		if uid, ok := middleware.UserIDFromCtx(r); ok {
			body.UserID = uid
		}
	}

	if errs := validate.Struct(&body); validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.service.Create(r.Context(), body)
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Created(w, order)
}

// Show returns one order.
func (c *OrderController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid order id")
		return
	}

	order, err := c.service.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Success(w, order)
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateStatus advances an order's status (pharmacist/admin only; the
// route carries the rbac gate).
func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid order id")
		return
	}

	var body updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	status, ok := models.ParseOrderStatus(body.Status)
	if !ok {
		response.Error(w, http.StatusUnprocessableEntity, "unknown order status: "+body.Status)
		return
	}

	order, err := c.service.UpdateStatus(r.Context(), id, status)
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Success(w, order)
}

// CanUpdateStatus is the pre-flight probe used by the UI to enable or
// disable transition buttons without attempting the mutation.
func (c *OrderController) CanUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid order id")
		return
	}

	status, ok := models.ParseOrderStatus(r.URL.Query().Get("status"))
	if !ok {
		response.Error(w, http.StatusUnprocessableEntity, "unknown order status")
		return
	}

	allowed, reason, err := c.service.CanUpdateStatus(r.Context(), id, status)
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Success(w, map[string]interface{}{
		"allowed": allowed,
		"reason":  reason,
	})
}

// Destroy cancels an order under the caller's role and ownership
// authority.
func (c *OrderController) Destroy(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid order id")
		return
	}

	roleStr, _ := middleware.RoleFromCtx(r)
	role, ok := models.ParseRole(roleStr)
	if !ok {
		response.Forbidden(w)
		return
	}
	uid, _ := middleware.UserIDFromCtx(r)

	if err := c.service.Delete(r.Context(), id, uid, role); err != nil {
		respondError(w, r, err)
		return
	}
	response.Success(w, map[string]string{"message": "order cancelled"})
}
