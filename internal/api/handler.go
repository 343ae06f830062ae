package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"storefront-service/internal/notify"
	"storefront-service/internal/service"
	"storefront-service/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains HTTP handlers
type Handler struct {
	catalog       *service.CatalogService
	cart          *service.CartService
	addresses     *service.AddressService
	checkout      *service.CheckoutService
	auth          *service.AuthService
	notifications *notify.Recorder
}

// NewHandler creates a new HTTP handler
func NewHandler(
	catalog *service.CatalogService,
	cart *service.CartService,
	addresses *service.AddressService,
	checkout *service.CheckoutService,
	auth *service.AuthService,
	notifications *notify.Recorder,
) *Handler {
	return &Handler{
		catalog:       catalog,
		cart:          cart,
		addresses:     addresses,
		checkout:      checkout,
		auth:          auth,
		notifications: notifications,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/auth/login", h.login)
		v1.POST("/auth/register", h.register)
		v1.POST("/auth/logout", h.logout)

		v1.GET("/products", h.listProducts)
		v1.POST("/products/search", h.searchInput)

		v1.GET("/cart", h.getCart)
		v1.POST("/cart", h.updateCart)

		v1.GET("/addresses", h.listAddresses)
		v1.POST("/addresses", h.addAddress)
		v1.DELETE("/addresses/:id", h.deleteAddress)
		v1.PUT("/addresses/:id/select", h.selectAddress)

		v1.POST("/checkout", h.placeOrder)

		v1.GET("/notifications", h.drainNotifications)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

func (h *Handler) login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.auth.Login(c.Request.Context(), req.Username, req.Password); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "logged_in"})
}

func (h *Handler) register(c *gin.Context) {
	var req struct {
		Username        string `json:"username"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirm_password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.auth.Register(c.Request.Context(), req.Username, req.Password, req.ConfirmPassword); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "registered"})
}

func (h *Handler) logout(c *gin.Context) {
	if err := h.auth.Logout(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "logged_out"})
}

// listProducts returns the current catalog snapshot, fetching it first if
// the snapshot is still empty
func (h *Handler) listProducts(c *gin.Context) {
	products := h.catalog.Snapshot()
	if len(products) == 0 {
		if err := h.catalog.Refresh(c.Request.Context()); err != nil {
			respondError(c, err)
			return
		}
		products = h.catalog.Snapshot()
	}
	c.JSON(http.StatusOK, products)
}

// searchInput feeds one keystroke into the debounced search; the result
// lands in the snapshot after the quiescence window
func (h *Handler) searchInput(c *gin.Context) {
	var req struct {
		Value string `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	h.catalog.SearchInput(c.Request.Context(), req.Value)
	c.JSON(http.StatusAccepted, gin.H{"status": "scheduled"})
}

func (h *Handler) getCart(c *gin.Context) {
	if err := h.cart.Refresh(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}

	lines := h.cart.Lines()
	c.JSON(http.StatusOK, gin.H{
		"lines":   lines,
		"summary": service.Summarize(lines),
	})
}

func (h *Handler) updateCart(c *gin.Context) {
	var req struct {
		ProductID        string `json:"product_id" binding:"required"`
		Qty              int    `json:"qty"`
		PreventDuplicate bool   `json:"prevent_duplicate"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.cart.Update(c.Request.Context(), req.ProductID, req.Qty, req.PreventDuplicate); err != nil {
		respondError(c, err)
		return
	}

	lines := h.cart.Lines()
	c.JSON(http.StatusOK, gin.H{
		"lines":   lines,
		"summary": service.Summarize(lines),
	})
}

func (h *Handler) listAddresses(c *gin.Context) {
	if err := h.addresses.Refresh(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.addresses.State())
}

func (h *Handler) addAddress(c *gin.Context) {
	var req struct {
		Address string `json:"address" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.addresses.Add(c.Request.Context(), req.Address); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.addresses.State())
}

func (h *Handler) deleteAddress(c *gin.Context) {
	if err := h.addresses.Remove(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.addresses.State())
}

func (h *Handler) selectAddress(c *gin.Context) {
	if err := h.addresses.Select(c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.addresses.State())
}

func (h *Handler) placeOrder(c *gin.Context) {
	if err := h.checkout.PlaceOrder(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "placed"})
}

// drainNotifications returns the queued user-visible notifications, in
// order, and clears the queue
func (h *Handler) drainNotifications(c *gin.Context) {
	c.JSON(http.StatusOK, h.notifications.Drain())
}

// respondError maps service errors to HTTP statuses. The user-facing text
// travels through the notification queue, not the error body.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotLoggedIn):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "login required"})
	case errors.Is(err, service.ErrUpdateInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": "update in flight"})
	case errors.Is(err, service.ErrDuplicateItem),
		errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrInsufficientBalance),
		errors.Is(err, service.ErrNoAddresses),
		errors.Is(err, service.ErrNoAddressSelected),
		errors.Is(err, service.ErrBackendRejected):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrBackendUnreached):
		c.JSON(http.StatusBadGateway, gin.H{"error": "backend unreachable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
