package handler

import (
	"net/http"

	"tilemart-be/internal/cart"
	"tilemart-be/internal/utils"

	"github.com/gin-gonic/gin"
)

type cartLineResponse struct {
	ProductID uint    `json:"product_id"`
	Image     string  `json:"image"`
	Category  string  `json:"category"`
	Type      string  `json:"type"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Stock     int     `json:"stock"`
	Quantity  int     `json:"quantity"`
}

func toCartLineResponse(v *cart.CartView) cartLineResponse {
	return cartLineResponse{
		ProductID: v.ProductID,
		Image:     v.Image,
		Category:  v.Category,
		Type:      v.Type,
		Name:      v.Name,
		Price:     v.Price,
		Stock:     v.Stock,
		Quantity:  v.Quantity,
	}
}

func (h *Handler) getCart(c *gin.Context) {
	email := utils.GetUserEmailFromContext(c.Request.Context())

	lines, err := h.carts.GetCart(c.Request.Context(), email)
	if err != nil {
		writeError(c, err)
		return
	}

	res := make([]cartLineResponse, 0, len(lines))
	for _, l := range lines {
		res = append(res, toCartLineResponse(l))
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) addToCart(c *gin.Context) {
	var req struct {
		ProductID uint `json:"product_id" binding:"required"`
		Quantity  int  `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email := utils.GetUserEmailFromContext(c.Request.Context())

	line, err := h.carts.AddToCart(c.Request.Context(), cart.AddToCartParams{
		UserEmail: email,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCartLineResponse(line))
}

func (h *Handler) removeFromCart(c *gin.Context) {
	productID, ok := parseIDParam(c, "productID")
	if !ok {
		return
	}

	email := utils.GetUserEmailFromContext(c.Request.Context())

	if err := h.carts.RemoveFromCart(c.Request.Context(), email, productID); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "removed from cart"})
}
