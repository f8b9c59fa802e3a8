package handler

import (
	"errors"
	"net/http"

	"tilemart-be/internal/activity"
	"tilemart-be/internal/address"
	"tilemart-be/internal/cart"
	"tilemart-be/internal/logger"
	"tilemart-be/internal/middleware"
	"tilemart-be/internal/order"
	"tilemart-be/internal/product"
	"tilemart-be/internal/sales"
	"tilemart-be/internal/stock"
	"tilemart-be/internal/user"
	"tilemart-be/internal/verification"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type Handler struct {
	users        user.Service
	products     product.Service
	carts        cart.Service
	addresses    address.Service
	orders       order.Service
	stocks       stock.Service
	sales        sales.Service
	activities   activity.Service
	verification verification.Service
}

func New(
	users user.Service,
	products product.Service,
	carts cart.Service,
	addresses address.Service,
	orders order.Service,
	stocks stock.Service,
	salesSvc sales.Service,
	activities activity.Service,
	verificationSvc verification.Service,
) *Handler {
	return &Handler{
		users:        users,
		products:     products,
		carts:        carts,
		addresses:    addresses,
		orders:       orders,
		stocks:       stocks,
		sales:        salesSvc,
		activities:   activities,
		verification: verificationSvc,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.Use(middleware.RequestLogger())

	authLimit := middleware.RateLimit(rate.Limit(1), 5)

	r.POST("/users/register", authLimit, h.register)
	r.POST("/users/login", authLimit, h.login)
	r.POST("/users/logout", h.logout)
	r.POST("/users/send-code", authLimit, h.sendCode)
	r.POST("/users/verify-code", authLimit, h.verifyCode)
	r.POST("/users/change-password", authLimit, h.changePassword)

	r.POST("/admin/login", authLimit, h.adminLogin)
	r.POST("/admin/change-password", authLimit, h.adminChangePassword)

	r.GET("/product", h.listProducts)
	r.GET("/product/:id", h.getProduct)
	r.GET("/product/:id/sold", h.productSold)

	u := r.Group("/", middleware.RequireUser())
	{
		u.GET("/users/profile", h.profile)

		u.GET("/cart", h.getCart)
		u.POST("/cart/add", h.addToCart)
		u.DELETE("/cart/remove/:productID", h.removeFromCart)

		u.GET("/addresses", h.listAddresses)
		u.POST("/addresses/add", h.addAddress)
		u.PUT("/addresses/:id/active", h.setAddressActive)
		u.DELETE("/addresses/:id", h.deleteAddress)

		u.POST("/orders/add-order", h.placeOrder)
		u.GET("/orders", h.listMyOrders)
		u.GET("/orders/logs", h.myOrderLogs)
		u.DELETE("/orders/:id", h.deleteMyOrder)
	}

	a := r.Group("/admin", middleware.RequireAdmin())
	{
		a.GET("/me", h.adminMe)

		a.GET("/orders", h.listAllOrders)
		a.PUT("/orders/update/:id", h.updateOrderStatus)
		a.DELETE("/orders/delete/:id", h.deleteOrder)
		a.GET("/orderlogs", h.allOrderLogs)

		a.GET("/product", h.adminListProducts)
		a.POST("/product/add", h.createProduct)
		a.PUT("/product/:id/update", h.updateProduct)
		a.DELETE("/product/:id/delete", h.deleteProduct)
		a.PUT("/product/:id/toggle-archive", h.toggleArchive)

		a.PUT("/product/:id/add-stock", h.addStock)
		a.PUT("/product/:id/update-stock", h.updateStock)
		a.GET("/product/stock-records", h.stockRecords)

		a.GET("/sales/report", h.salesReport)
		a.GET("/dashboard", h.dashboard)
		a.GET("/performance", h.weeklyPerformance)

		a.GET("/users", h.listAccounts)
		a.PUT("/users/:id/toggle-ban", h.toggleBan)
		a.GET("/customer_recent_activity", h.recentActivity)
	}
}

// writeError maps service sentinels onto HTTP statuses. Lock waits map to
// 503 so callers know to retry.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, product.ErrProductNotFound),
		errors.Is(err, cart.ErrProductNotFound),
		errors.Is(err, cart.ErrCartItemNotFound),
		errors.Is(err, address.ErrAddressNotFound),
		errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, order.ErrProductNotFound),
		errors.Is(err, stock.ErrProductNotFound),
		errors.Is(err, user.ErrUserNotFound):
		status = http.StatusNotFound

	case errors.Is(err, order.ErrLockWait),
		errors.Is(err, stock.ErrLockWait):
		status = http.StatusServiceUnavailable

	case errors.Is(err, cart.ErrUserNotAuthenticated):
		status = http.StatusUnauthorized

	case errors.Is(err, user.ErrInvalidCredentials):
		status = http.StatusUnauthorized

	case errors.Is(err, user.ErrAccountBanned):
		status = http.StatusForbidden

	case errors.Is(err, user.ErrEmailTaken),
		errors.Is(err, verification.ErrEmailRegistered):
		status = http.StatusConflict

	case errors.Is(err, product.ErrProductReferenced),
		errors.Is(err, order.ErrInvalidTransition):
		status = http.StatusConflict

	case errors.Is(err, product.ErrInvalidPrice),
		errors.Is(err, product.ErrInvalidStock),
		errors.Is(err, product.ErrNameRequired),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, address.ErrStreetRequired),
		errors.Is(err, address.ErrCityRequired),
		errors.Is(err, address.ErrProvinceRequired),
		errors.Is(err, address.ErrNoActiveAddress),
		errors.Is(err, order.ErrNoActiveAddress),
		errors.Is(err, order.ErrEmptyOrder),
		errors.Is(err, order.ErrInvalidQuantity),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, order.ErrEstimatedDeliveryRequired),
		errors.Is(err, order.ErrInsufficientStock),
		errors.Is(err, stock.ErrInvalidAmount),
		errors.Is(err, stock.ErrNegativeStock),
		errors.Is(err, sales.ErrInvalidDateRange),
		errors.Is(err, user.ErrEmailRequired),
		errors.Is(err, user.ErrPasswordTooShort),
		errors.Is(err, verification.ErrEmailRequired),
		errors.Is(err, verification.ErrUnknownPurpose),
		errors.Is(err, verification.ErrAccountNotFound),
		errors.Is(err, verification.ErrCodeMismatch),
		errors.Is(err, verification.ErrCodeExpired),
		errors.Is(err, verification.ErrNoPendingCode):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		logger.FromCtx(c.Request.Context()).Error("request failed", zap.Error(err))
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
