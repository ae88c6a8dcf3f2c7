package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/app/models"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/app/services"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/pkg/response"
)

type MedicineController struct {
	service *services.CatalogService
}

func NewMedicineController() *MedicineController {
	return &MedicineController{service: services.NewCatalogService()}
}

// Index lists the catalogue.
func (c *MedicineController) Index(w http.ResponseWriter, r *http.Request) {
	meds, err := c.service.Medicines(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Success(w, meds)
}

// Show returns one medicine.
func (c *MedicineController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid medicine id")
		return
	}

	med, err := c.service.Medicine(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Success(w, med)
}

// Store creates a medicine (admin route).
func (c *MedicineController) Store(w http.ResponseWriter, r *http.Request) {
	var med models.Medicine
	if err := json.NewDecoder(r.Body).Decode(&med); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := c.service.CreateMedicine(r.Context(), &med); err != nil {
		respondError(w, r, err)
		return
	}
	response.Created(w, med)
}

// Update edits a medicine (admin route).
func (c *MedicineController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid medicine id")
		return
	}

	med, err := c.service.Medicine(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := json.NewDecoder(r.Body).Decode(med); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	med.ID = id

	if err := c.service.UpdateMedicine(r.Context(), med); err != nil {
		respondError(w, r, err)
		return
	}
	response.Success(w, med)
}

// Destroy removes a medicine (admin route). Deleting one that existing
// orders reference yields a 409 with a domain message.
func (c *MedicineController) Destroy(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid medicine id")
		return
	}

	if err := c.service.DeleteMedicine(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	response.Success(w, map[string]string{"message": "medicine deleted"})
}

// Categories lists all categories.
func (c *MedicineController) Categories(w http.ResponseWriter, r *http.Request) {
	cats, err := c.service.Categories(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Success(w, cats)
}

// StoreCategory creates a category (admin route).
func (c *MedicineController) StoreCategory(w http.ResponseWriter, r *http.Request) {
	var cat models.Category
	if err := json.NewDecoder(r.Body).Decode(&cat); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := c.service.CreateCategory(r.Context(), &cat); err != nil {
		respondError(w, r, err)
		return
	}
	response.Created(w, cat)
}
