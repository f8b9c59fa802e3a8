package handler

import (
	"net/http"
	"strconv"

	"tilemart-be/internal/product"

	"github.com/gin-gonic/gin"
)

type productResponse struct {
	ID          uint    `json:"id"`
	Image       *string `json:"image"`
	Category    string  `json:"category"`
	Type        string  `json:"type"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	IsArchived  bool    `json:"is_archived"`
}

func toProductResponse(p *product.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Image:       p.Image,
		Category:    p.Category,
		Type:        p.Type,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		IsArchived:  p.IsArchived,
	}
}

func toProductResponses(ps []*product.Product) []productResponse {
	res := make([]productResponse, 0, len(ps))
	for _, p := range ps {
		res = append(res, toProductResponse(p))
	}
	return res
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

func (h *Handler) listProducts(c *gin.Context) {
	ps, err := h.products.ListProducts(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponses(ps))
}

func (h *Handler) getProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	p, err := h.products.GetProduct(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(p))
}

// productSold reports the total units of a product sold across all shipped
// orders.
func (h *Handler) productSold(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := h.products.GetProduct(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	total, err := h.sales.TotalSoldByProduct(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"product_id": id, "total_sold": total})
}

func (h *Handler) adminListProducts(c *gin.Context) {
	ps, err := h.products.ListAllProducts(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponses(ps))
}

func (h *Handler) createProduct(c *gin.Context) {
	var req struct {
		Image       *string `json:"image"`
		Category    string  `json:"category"`
		Type        string  `json:"type"`
		Name        string  `json:"name" binding:"required"`
		Description string  `json:"description"`
		Price       float64 `json:"price" binding:"required"`
		Stock       int     `json:"stock"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.products.AddProduct(c.Request.Context(), product.NewProductInput{
		Image:       req.Image,
		Category:    req.Category,
		Type:        req.Type,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toProductResponse(p))
}

func (h *Handler) updateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Image       *string  `json:"image"`
		Category    *string  `json:"category"`
		Type        *string  `json:"type"`
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		Price       *float64 `json:"price"`
		Stock       *int     `json:"stock"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.products.UpdateProduct(c.Request.Context(), id, product.UpdateProductInput{
		Image:       req.Image,
		Category:    req.Category,
		Type:        req.Type,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProductResponse(p))
}

func (h *Handler) deleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.products.DeleteProduct(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}

func (h *Handler) toggleArchive(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	p, err := h.products.ToggleArchive(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProductResponse(p))
}
