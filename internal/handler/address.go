package handler

import (
	"net/http"

	"tilemart-be/internal/address"
	"tilemart-be/internal/utils"

	"github.com/gin-gonic/gin"
)

type addressResponse struct {
	ID          uint   `json:"id"`
	HouseNumber string `json:"house_number"`
	Street      string `json:"street"`
	Barangay    string `json:"barangay"`
	City        string `json:"city"`
	Province    string `json:"province"`
	IsActive    bool   `json:"is_active"`
}

func toAddressResponse(a *address.Address) addressResponse {
	return addressResponse{
		ID:          a.ID,
		HouseNumber: a.HouseNumber,
		Street:      a.Street,
		Barangay:    a.Barangay,
		City:        a.City,
		Province:    a.Province,
		IsActive:    a.IsActive,
	}
}

func (h *Handler) listAddresses(c *gin.Context) {
	userID, _ := utils.GetUserIDFromContext(c.Request.Context())

	addrs, err := h.addresses.ListAddresses(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	res := make([]addressResponse, 0, len(addrs))
	for _, a := range addrs {
		res = append(res, toAddressResponse(a))
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) addAddress(c *gin.Context) {
	var req struct {
		HouseNumber string `json:"house_number"`
		Street      string `json:"street" binding:"required"`
		Barangay    string `json:"barangay"`
		City        string `json:"city" binding:"required"`
		Province    string `json:"province" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	userID, _ := utils.GetUserIDFromContext(ctx)
	email := utils.GetUserEmailFromContext(ctx)

	a, err := h.addresses.AddAddress(ctx, userID, email, address.CreateAddressInput{
		HouseNumber: req.HouseNumber,
		Street:      req.Street,
		Barangay:    req.Barangay,
		City:        req.City,
		Province:    req.Province,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toAddressResponse(a))
}

func (h *Handler) setAddressActive(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	userID, _ := utils.GetUserIDFromContext(ctx)
	email := utils.GetUserEmailFromContext(ctx)

	a, err := h.addresses.SetAddressActive(ctx, userID, email, id, *req.Active)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toAddressResponse(a))
}

func (h *Handler) deleteAddress(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	email := utils.GetUserEmailFromContext(c.Request.Context())

	a, err := h.addresses.DeleteAddress(c.Request.Context(), email, id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toAddressResponse(a))
}
