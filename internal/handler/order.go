package handler

import (
	"net/http"
	"time"

	"tilemart-be/internal/order"
	"tilemart-be/internal/utils"

	"github.com/gin-gonic/gin"
)

type orderItemResponse struct {
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Type      string  `json:"type"`
	Image     string  `json:"image"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

type orderResponse struct {
	ID                uint                `json:"id"`
	UserEmail         string              `json:"user_email"`
	Status            string              `json:"status"`
	HouseNumber       string              `json:"house_number"`
	Street            string              `json:"street"`
	Barangay          string              `json:"barangay"`
	City              string              `json:"city"`
	Province          string              `json:"province"`
	Total             float64             `json:"total"`
	EstimatedDelivery *time.Time          `json:"estimated_delivery"`
	CreatedAt         time.Time           `json:"created_at"`
	Items             []orderItemResponse `json:"items"`
}

func toOrderResponse(o *order.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, orderItemResponse{
			ProductID: it.ProductID,
			Name:      it.Product.Name,
			Category:  it.Product.Category,
			Type:      it.Product.Type,
			Image:     it.Product.Image,
			Price:     it.Product.Price,
			Quantity:  it.Quantity,
			Subtotal:  it.Subtotal,
		})
	}

	return orderResponse{
		ID:                o.ID,
		UserEmail:         o.UserEmail,
		Status:            string(o.Status),
		HouseNumber:       o.Address.HouseNumber,
		Street:            o.Address.Street,
		Barangay:          o.Address.Barangay,
		City:              o.Address.City,
		Province:          o.Address.Province,
		Total:             o.Total,
		EstimatedDelivery: o.EstimatedDelivery,
		CreatedAt:         o.CreatedAt,
		Items:             items,
	}
}

func toOrderResponses(os []*order.Order) []orderResponse {
	res := make([]orderResponse, 0, len(os))
	for _, o := range os {
		res = append(res, toOrderResponse(o))
	}
	return res
}

type deliveryAddressResponse struct {
	HouseNumber string `json:"house_number"`
	Street      string `json:"street"`
	Barangay    string `json:"barangay"`
	City        string `json:"city"`
	Province    string `json:"province"`
}

type orderLogResponse struct {
	ID                uint                    `json:"id"`
	OrderID           uint                    `json:"order_id"`
	UserEmail         string                  `json:"user_email"`
	Status            string                  `json:"status"`
	EstimatedDelivery *time.Time              `json:"estimated_delivery"`
	ProductID         uint                    `json:"product_id"`
	Name              string                  `json:"name"`
	Category          string                  `json:"category"`
	Type              string                  `json:"type"`
	Image             string                  `json:"image"`
	Price             float64                 `json:"price"`
	Quantity          int                     `json:"quantity"`
	TotalPrice        float64                 `json:"total_price"`
	DeliveryAddress   deliveryAddressResponse `json:"delivery_address"`
	CreatedAt         time.Time               `json:"created_at"`
}

func toOrderLogResponses(logs []*order.OrderLogEntry) []orderLogResponse {
	res := make([]orderLogResponse, 0, len(logs))
	for _, e := range logs {
		res = append(res, orderLogResponse{
			ID:                e.ID,
			OrderID:           e.OrderID,
			UserEmail:         e.UserEmail,
			Status:            string(e.Status),
			EstimatedDelivery: e.EstimatedDelivery,
			ProductID:         e.ProductID,
			Name:              e.Product.Name,
			Category:          e.Product.Category,
			Type:              e.Product.Type,
			Image:             e.Product.Image,
			Price:             e.Product.Price,
			Quantity:          e.Quantity,
			TotalPrice:        e.Product.Price * float64(e.Quantity),
			DeliveryAddress: deliveryAddressResponse{
				HouseNumber: e.Address.HouseNumber,
				Street:      e.Address.Street,
				Barangay:    e.Address.Barangay,
				City:        e.Address.City,
				Province:    e.Address.Province,
			},
			CreatedAt: e.CreatedAt,
		})
	}
	return res
}

func (h *Handler) placeOrder(c *gin.Context) {
	var req struct {
		Items []struct {
			ProductID uint `json:"product_id" binding:"required"`
			Quantity  int  `json:"quantity" binding:"required"`
		} `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	userID, _ := utils.GetUserIDFromContext(ctx)
	email := utils.GetUserEmailFromContext(ctx)

	items := make([]order.PlaceOrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, order.PlaceOrderItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	o, err := h.orders.PlaceOrder(ctx, userID, email, items)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(o))
}

func (h *Handler) listMyOrders(c *gin.Context) {
	userID, _ := utils.GetUserIDFromContext(c.Request.Context())

	os, err := h.orders.ListUserOrders(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponses(os))
}

func (h *Handler) myOrderLogs(c *gin.Context) {
	email := utils.GetUserEmailFromContext(c.Request.Context())

	logs, err := h.orders.UserOrderLogs(c.Request.Context(), email)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderLogResponses(logs))
}

func (h *Handler) listAllOrders(c *gin.Context) {
	os, err := h.orders.ListAllOrders(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponses(os))
}

// updateOrderStatus drives the fulfillment transitions. Approval carries an
// estimated delivery date in YYYY-MM-DD form.
func (h *Handler) updateOrderStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Status            string `json:"status" binding:"required"`
		EstimatedDelivery string `json:"estimated_delivery"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var estimated *time.Time
	if req.EstimatedDelivery != "" {
		t, err := time.Parse("2006-01-02", req.EstimatedDelivery)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid estimated_delivery, expected YYYY-MM-DD"})
			return
		}
		estimated = &t
	}

	o, err := h.orders.UpdateStatus(c.Request.Context(), id, req.Status, estimated)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(o))
}

func (h *Handler) deleteMyOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	userID, _ := utils.GetUserIDFromContext(c.Request.Context())

	if err := h.orders.DeleteUserOrder(c.Request.Context(), userID, id); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "order deleted"})
}

func (h *Handler) deleteOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.orders.DeleteOrder(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "order deleted"})
}

func (h *Handler) allOrderLogs(c *gin.Context) {
	logs, err := h.orders.AllOrderLogs(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderLogResponses(logs))
}
