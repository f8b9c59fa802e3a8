package handler

import (
	"net/http"
	"time"

	"tilemart-be/internal/sales"
	"tilemart-be/internal/stock"

	"github.com/gin-gonic/gin"
)

type stockRecordResponse struct {
	ID              uint      `json:"id"`
	ProductID       uint      `json:"product_id"`
	ProductName     string    `json:"product_name"`
	ChangeType      string    `json:"change_type"`
	QuantityChanged int       `json:"quantity_changed"`
	PreviousStock   int       `json:"previous_stock"`
	NewStock        int       `json:"new_stock"`
	CreatedAt       time.Time `json:"created_at"`
}

func toStockRecordResponse(r *stock.StockRecord) stockRecordResponse {
	return stockRecordResponse{
		ID:              r.ID,
		ProductID:       r.ProductID,
		ProductName:     r.ProductName,
		ChangeType:      r.ChangeType,
		QuantityChanged: r.QuantityChanged,
		PreviousStock:   r.PreviousStock,
		NewStock:        r.NewStock,
		CreatedAt:       r.CreatedAt,
	}
}

func (h *Handler) addStock(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Amount int `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec, err := h.stocks.AddStock(c.Request.Context(), id, req.Amount)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toStockRecordResponse(rec))
}

func (h *Handler) updateStock(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Stock *int `json:"stock" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec, err := h.stocks.SetStock(c.Request.Context(), id, *req.Stock)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toStockRecordResponse(rec))
}

func (h *Handler) stockRecords(c *gin.Context) {
	recs, err := h.stocks.Records(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	res := make([]stockRecordResponse, 0, len(recs))
	for _, r := range recs {
		res = append(res, toStockRecordResponse(r))
	}
	c.JSON(http.StatusOK, res)
}

// salesReport covers the inclusive date range given by the start and end
// query parameters, both in YYYY-MM-DD form.
func (h *Handler) salesReport(c *gin.Context) {
	start, err := time.Parse("2006-01-02", c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start date, expected YYYY-MM-DD"})
		return
	}
	end, err := time.Parse("2006-01-02", c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end date, expected YYYY-MM-DD"})
		return
	}

	report, err := h.sales.SalesReport(c.Request.Context(), start, end)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toReportResponse(report))
}

type productSalesResponse struct {
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Revenue     float64 `json:"revenue"`
}

type saleRecordResponse struct {
	ID            uint      `json:"id"`
	OrderID       uint      `json:"order_id"`
	ProductID     uint      `json:"product_id"`
	CustomerEmail string    `json:"customer_email"`
	ProductName   string    `json:"product_name"`
	Quantity      int       `json:"quantity"`
	UnitPrice     float64   `json:"unit_price"`
	Total         float64   `json:"total"`
	SoldAt        time.Time `json:"sold_at"`
}

type reportResponse struct {
	Start         string                 `json:"start"`
	End           string                 `json:"end"`
	TotalRevenue  float64                `json:"total_revenue"`
	TotalQuantity int                    `json:"total_quantity"`
	OrderCount    int                    `json:"order_count"`
	BestSellers   []productSalesResponse `json:"best_sellers"`
	Sales         []saleRecordResponse   `json:"sales"`
}

func toReportResponse(r *sales.Report) reportResponse {
	best := make([]productSalesResponse, 0, len(r.BestSellers))
	for _, p := range r.BestSellers {
		best = append(best, productSalesResponse{
			ProductID:   p.ProductID,
			ProductName: p.ProductName,
			Quantity:    p.Quantity,
			Revenue:     p.Revenue,
		})
	}

	records := make([]saleRecordResponse, 0, len(r.Sales))
	for _, s := range r.Sales {
		records = append(records, saleRecordResponse{
			ID:            s.ID,
			OrderID:       s.OrderID,
			ProductID:     s.ProductID,
			CustomerEmail: s.CustomerEmail,
			ProductName:   s.ProductName,
			Quantity:      s.Quantity,
			UnitPrice:     s.UnitPrice,
			Total:         s.Total,
			SoldAt:        s.SoldAt,
		})
	}

	return reportResponse{
		Start:         r.Start.Format("2006-01-02"),
		End:           r.End.Format("2006-01-02"),
		TotalRevenue:  r.TotalRevenue,
		TotalQuantity: r.TotalQuantity,
		OrderCount:    r.OrderCount,
		BestSellers:   best,
		Sales:         records,
	}
}

func (h *Handler) dashboard(c *gin.Context) {
	stats, err := h.sales.Dashboard(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	low := make([]gin.H, 0, len(stats.LowStock))
	for _, p := range stats.LowStock {
		low = append(low, gin.H{"product_id": p.ProductID, "name": p.Name, "stock": p.Stock})
	}

	c.JSON(http.StatusOK, gin.H{
		"today_revenue":  stats.TodayRevenue,
		"today_quantity": stats.TodayQuantity,
		"total_revenue":  stats.TotalRevenue,
		"total_quantity": stats.TotalQuantity,
		"pending_orders": stats.PendingOrders,
		"low_stock":      low,
	})
}

func (h *Handler) weeklyPerformance(c *gin.Context) {
	days, err := h.sales.WeeklyPerformance(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	res := make([]gin.H, 0, len(days))
	for _, d := range days {
		res = append(res, gin.H{
			"day":      d.Day,
			"date":     d.Date.Format("2006-01-02"),
			"revenue":  d.Revenue,
			"quantity": d.Quantity,
		})
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) listAccounts(c *gin.Context) {
	accounts, err := h.users.ListAccounts(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	res := make([]gin.H, 0, len(accounts))
	for _, a := range accounts {
		res = append(res, gin.H{
			"id":                a.ID,
			"email":             a.Email,
			"status":            a.Status,
			"created_at":        a.CreatedAt,
			"delivery_location": a.DeliveryLocation,
		})
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) toggleBan(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	u, err := h.users.ToggleBan(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, userResponse{ID: u.ID, Email: u.Email, Status: u.Status})
}

func (h *Handler) recentActivity(c *gin.Context) {
	lines, err := h.activities.ListRecent(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recent_activity": lines})
}
