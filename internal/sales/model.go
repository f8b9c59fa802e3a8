package sales

import "time"

// SaleRecord is one append-only line written by the shipment transaction.
// The buyer's email and the item snapshot are copied onto the record so
// revenue history stays attributable after the order is deleted.
type SaleRecord struct {
	ID            uint
	OrderID       uint
	ProductID     uint
	CustomerEmail string
	ProductName   string
	Quantity      int
	UnitPrice     float64
	Total         float64
	SoldAt        time.Time
}

type ProductSales struct {
	ProductID   uint
	ProductName string
	Quantity    int
	Revenue     float64
}

type Report struct {
	Start         time.Time
	End           time.Time
	TotalRevenue  float64
	TotalQuantity int
	OrderCount    int
	BestSellers   []ProductSales
	Sales         []*SaleRecord
}

type LowStockProduct struct {
	ProductID uint
	Name      string
	Stock     int
}

type DashboardStats struct {
	TodayRevenue  float64
	TodayQuantity int
	TotalRevenue  float64
	TotalQuantity int
	PendingOrders int
	LowStock      []LowStockProduct
}

type DailyPerformance struct {
	Day      string
	Date     time.Time
	Revenue  float64
	Quantity int
}
