package controllers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/app/models"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/app/services"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/pkg/middleware"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/pkg/response"
)

// maxPrescriptionUpload caps uploaded prescription documents at 10 MiB.
const maxPrescriptionUpload = 10 << 20

type PrescriptionController struct {
	service *services.PrescriptionService
}

func NewPrescriptionController(service *services.PrescriptionService) *PrescriptionController {
	return &PrescriptionController{service: service}
}

// Upload accepts a multipart form with a "file" field and an optional
// "order_id" field linking the prescription to an existing order.
func (c *PrescriptionController) Upload(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	if err := r.ParseMultipartForm(maxPrescriptionUpload); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "missing prescription file")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxPrescriptionUpload))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "could not read prescription file")
		return
	}

	var orderID *uint
	if raw := r.FormValue("order_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "invalid order_id")
			return
		}
		v := uint(id)
		orderID = &v
	}

	p, err := c.service.Upload(r.Context(), content, header.Filename, userID, orderID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Created(w, p)
}

// Show returns one prescription.
func (c *PrescriptionController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid prescription id")
		return
	}

	p, err := c.service.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Success(w, p)
}

// Verify marks a prescription Verified (pharmacist/admin route).
func (c *PrescriptionController) Verify(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid prescription id")
		return
	}

	p, err := c.service.Verify(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Success(w, p)
}

type reviewRequest struct {
	Status  string `json:"status"`
	Remarks string `json:"remarks"`
}

// Review sets the review outcome with optional remarks.
func (c *PrescriptionController) Review(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid prescription id")
		return
	}

	var body reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	status, ok := models.ParsePrescriptionStatus(body.Status)
	if !ok {
		response.Error(w, http.StatusUnprocessableEntity, "unknown prescription status: "+body.Status)
		return
	}

	p, err := c.service.SetStatus(r.Context(), id, status, body.Remarks)
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Success(w, p)
}

// Download streams the prescription document with its content type.
func (c *PrescriptionController) Download(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid prescription id")
		return
	}

	content, contentType, err := c.service.Download(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(content)))
	w.WriteHeader(http.StatusOK)
	w.Write(content) //nolint:errcheck
}
