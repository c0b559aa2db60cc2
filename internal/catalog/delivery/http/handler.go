package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tair/smart-inventory/internal/catalog/domain"
	"github.com/tair/smart-inventory/internal/catalog/usecase/command"
	"github.com/tair/smart-inventory/internal/catalog/usecase/query"
	"github.com/tair/smart-inventory/pkg/logger"
)

// CatalogHandler handles HTTP requests for the catalog using CQRS pattern
type CatalogHandler struct {
	// Command handlers
	addProductHandler    *command.AddProductHandler
	updateProductHandler *command.UpdateProductHandler
	deleteProductHandler *command.DeleteProductHandler
	addCategoryHandler   *command.AddCategoryHandler
	createBillHandler    *command.CreateBillHandler
	updateBillHandler    *command.UpdateBillHandler

	// Query handlers
	getProductHandler     *query.GetProductHandler
	listProductsHandler   *query.ListProductsHandler
	getBillHandler        *query.GetBillHandler
	listBillsHandler      *query.ListBillsHandler
	listCategoriesHandler *query.ListCategoriesHandler
	statsHandler          *query.GetStatsHandler
	monthlyHandler        *query.MonthlyReportHandler
	salesSeriesHandler    *query.SalesSeriesHandler
	breakdownHandler      *query.CategoryBreakdownHandler
	activityHandler       *query.RecentActivityHandler

	repo domain.Repository

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	requestSummary *prometheus.SummaryVec
	totalProducts  prometheus.Gauge
	totalStock     prometheus.Gauge
	lowStockCount  prometheus.Gauge
}

// NewCatalogHandler creates a new catalog handler with all command and query
// handlers wired to the repository.
func NewCatalogHandler(repo domain.Repository) *CatalogHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_service_requests_total",
			Help: "Total number of requests to catalog service",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_service_request_duration_seconds",
			Help:    "Duration of catalog service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	requestSummary := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name: "catalog_service_request_duration_summary",
			Help: "Summary of request durations with percentiles (client-side quantiles)",
			Objectives: map[float64]float64{
				0.5:  0.05,
				0.9:  0.01,
				0.95: 0.01,
				0.99: 0.001,
			},
			MaxAge: 10 * time.Minute,
		},
		[]string{"method", "endpoint"},
	)

	totalProducts := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_service_total_products",
		Help: "Total number of products in the catalog",
	})
	totalStock := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_service_total_stock_units",
		Help: "Total stock units across all products",
	})
	lowStockCount := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_service_low_stock_products",
		Help: "Number of products currently classified as low stock",
	})

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(requestSummary)
	prometheus.MustRegister(totalProducts)
	prometheus.MustRegister(totalStock)
	prometheus.MustRegister(lowStockCount)

	return &CatalogHandler{
		addProductHandler:     command.NewAddProductHandler(repo),
		updateProductHandler:  command.NewUpdateProductHandler(repo),
		deleteProductHandler:  command.NewDeleteProductHandler(repo),
		addCategoryHandler:    command.NewAddCategoryHandler(repo),
		createBillHandler:     command.NewCreateBillHandler(repo),
		updateBillHandler:     command.NewUpdateBillHandler(repo),
		getProductHandler:     query.NewGetProductHandler(repo),
		listProductsHandler:   query.NewListProductsHandler(repo),
		getBillHandler:        query.NewGetBillHandler(repo),
		listBillsHandler:      query.NewListBillsHandler(repo),
		listCategoriesHandler: query.NewListCategoriesHandler(repo),
		statsHandler:          query.NewGetStatsHandler(repo),
		monthlyHandler:        query.NewMonthlyReportHandler(repo),
		salesSeriesHandler:    query.NewSalesSeriesHandler(repo),
		breakdownHandler:      query.NewCategoryBreakdownHandler(repo),
		activityHandler:       query.NewRecentActivityHandler(repo),
		repo:                  repo,
		requestCounter:        requestCounter,
		requestLatency:        requestLatency,
		requestSummary:        requestSummary,
		totalProducts:         totalProducts,
		totalStock:            totalStock,
		lowStockCount:         lowStockCount,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *CatalogHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestSummary.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

func (h *CatalogHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/products", h.metricsMiddleware("/api/products", h.ListProducts)).Methods("GET")
	router.HandleFunc("/api/products", h.metricsMiddleware("/api/products", h.AddProduct)).Methods("POST")
	router.HandleFunc("/api/products/{id}", h.metricsMiddleware("/api/products/{id}", h.GetProduct)).Methods("GET")
	router.HandleFunc("/api/products/{id}", h.metricsMiddleware("/api/products/{id}", h.UpdateProduct)).Methods("PUT")
	router.HandleFunc("/api/products/{id}", h.metricsMiddleware("/api/products/{id}", h.DeleteProduct)).Methods("DELETE")

	router.HandleFunc("/api/categories", h.metricsMiddleware("/api/categories", h.ListCategories)).Methods("GET")
	router.HandleFunc("/api/categories", h.metricsMiddleware("/api/categories", h.AddCategory)).Methods("POST")

	router.HandleFunc("/api/bills", h.metricsMiddleware("/api/bills", h.ListBills)).Methods("GET")
	router.HandleFunc("/api/bills", h.metricsMiddleware("/api/bills", h.CreateBill)).Methods("POST")
	router.HandleFunc("/api/bills/{id}", h.metricsMiddleware("/api/bills/{id}", h.GetBill)).Methods("GET")
	router.HandleFunc("/api/bills/{id}", h.metricsMiddleware("/api/bills/{id}", h.UpdateBill)).Methods("PUT")

	router.HandleFunc("/api/dashboard/stats", h.metricsMiddleware("/api/dashboard/stats", h.GetStats)).Methods("GET")
	router.HandleFunc("/api/dashboard/monthly", h.metricsMiddleware("/api/dashboard/monthly", h.GetMonthlyReport)).Methods("GET")
	router.HandleFunc("/api/dashboard/sales", h.metricsMiddleware("/api/dashboard/sales", h.GetSalesSeries)).Methods("GET")
	router.HandleFunc("/api/dashboard/categories", h.metricsMiddleware("/api/dashboard/categories", h.GetCategoryBreakdown)).Methods("GET")
	router.HandleFunc("/api/dashboard/activity", h.metricsMiddleware("/api/dashboard/activity", h.GetRecentActivity)).Methods("GET")
}

// RegisterHealthCheck registers the health check endpoint
func (h *CatalogHandler) RegisterHealthCheck(router *mux.Router) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if _, err := h.repo.Snapshot(r.Context()); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, Response{
				Success: false,
				Error:   "Catalog state unavailable",
			})
			return
		}
		respondJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "Catalog service is healthy",
		})
	}).Methods("GET")
}

type productRequest struct {
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Description  string  `json:"description"`
	Supplier     string  `json:"supplier"`
	CostPrice    float64 `json:"costPrice"`
	SellingPrice float64 `json:"sellingPrice"`
	Stock        int     `json:"stock"`
}

type billItemRequest struct {
	ProductID    string  `json:"productId"`
	ProductName  string  `json:"productName"`
	Quantity     int     `json:"quantity"`
	DefaultPrice float64 `json:"defaultPrice"`
	FinalPrice   float64 `json:"finalPrice"`
}

type billRequest struct {
	CustomerName string            `json:"customerName"`
	Date         string            `json:"date"`
	Items        []billItemRequest `json:"items"`
}

// AddProduct handles POST /api/products
func (h *CatalogHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	product, err := h.addProductHandler.Handle(r.Context(), command.AddProductCommand{
		Name:         req.Name,
		Category:     req.Category,
		Description:  req.Description,
		Supplier:     req.Supplier,
		CostPrice:    req.CostPrice,
		SellingPrice: req.SellingPrice,
		Stock:        req.Stock,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to add product")
		respondDomainError(w, err)
		return
	}

	h.updateCatalogMetrics(r)
	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Product added successfully",
		Data:    product,
	})
}

// UpdateProduct handles PUT /api/products/{id}
func (h *CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	product, err := h.updateProductHandler.Handle(r.Context(), command.UpdateProductCommand{
		ID:           id,
		Name:         req.Name,
		Category:     req.Category,
		Description:  req.Description,
		Supplier:     req.Supplier,
		CostPrice:    req.CostPrice,
		SellingPrice: req.SellingPrice,
		Stock:        req.Stock,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Str("product_id", id).Msg("Failed to update product")
		respondDomainError(w, err)
		return
	}

	h.updateCatalogMetrics(r)
	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Product updated successfully",
		Data:    product,
	})
}

// DeleteProduct handles DELETE /api/products/{id}
func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.deleteProductHandler.Handle(r.Context(), command.DeleteProductCommand{ID: id}); err != nil {
		logger.Logger.Error().Err(err).Str("product_id", id).Msg("Failed to delete product")
		respondDomainError(w, err)
		return
	}

	h.updateCatalogMetrics(r)
	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Product deleted successfully",
	})
}

// GetProduct handles GET /api/products/{id}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	product, err := h.getProductHandler.Handle(r.Context(), query.GetProductQuery{ID: id})
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: product})
}

// ListProducts handles GET /api/products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.listProductsHandler.Handle(r.Context(), query.ListProductsQuery{
		Search:   r.URL.Query().Get("search"),
		Category: r.URL.Query().Get("category"),
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: products})
}

// ListCategories handles GET /api/categories
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.listCategoriesHandler.Handle(r.Context(), query.ListCategoriesQuery{})
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: categories})
}

// AddCategory handles POST /api/categories
func (h *CatalogHandler) AddCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	if err := h.addCategoryHandler.Handle(r.Context(), command.AddCategoryCommand{Name: req.Name}); err != nil {
		logger.Logger.Error().Err(err).Str("category", req.Name).Msg("Failed to add category")
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Category added successfully",
	})
}

// CreateBill handles POST /api/bills
func (h *CatalogHandler) CreateBill(w http.ResponseWriter, r *http.Request) {
	var req billRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	bill, err := h.createBillHandler.Handle(r.Context(), command.CreateBillCommand{
		CustomerName: req.CustomerName,
		Date:         req.Date,
		Items:        billItems(req.Items),
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to create bill")
		respondDomainError(w, err)
		return
	}

	h.updateCatalogMetrics(r)
	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Bill created successfully",
		Data:    bill,
	})
}

// UpdateBill handles PUT /api/bills/{id}
func (h *CatalogHandler) UpdateBill(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req billRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	bill, err := h.updateBillHandler.Handle(r.Context(), command.UpdateBillCommand{
		ID:           id,
		CustomerName: req.CustomerName,
		Date:         req.Date,
		Items:        billItems(req.Items),
	})
	if err != nil {
		logger.Logger.Error().Err(err).Str("bill_id", id).Msg("Failed to update bill")
		respondDomainError(w, err)
		return
	}

	h.updateCatalogMetrics(r)
	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Bill updated successfully",
		Data:    bill,
	})
}

// GetBill handles GET /api/bills/{id}
func (h *CatalogHandler) GetBill(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	bill, err := h.getBillHandler.Handle(r.Context(), query.GetBillQuery{ID: id})
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: bill})
}

// ListBills handles GET /api/bills
func (h *CatalogHandler) ListBills(w http.ResponseWriter, r *http.Request) {
	bills, err := h.listBillsHandler.Handle(r.Context(), query.ListBillsQuery{
		Customer: r.URL.Query().Get("customer"),
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: bills})
}

// GetStats handles GET /api/dashboard/stats
func (h *CatalogHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsHandler.Handle(r.Context(), query.GetStatsQuery{})
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: stats})
}

// GetMonthlyReport handles GET /api/dashboard/monthly
func (h *CatalogHandler) GetMonthlyReport(w http.ResponseWriter, r *http.Request) {
	month, _ := strconv.Atoi(r.URL.Query().Get("month"))
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))

	report, err := h.monthlyHandler.Handle(r.Context(), query.MonthlyReportQuery{
		Month: time.Month(month),
		Year:  year,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: report})
}

// GetSalesSeries handles GET /api/dashboard/sales
func (h *CatalogHandler) GetSalesSeries(w http.ResponseWriter, r *http.Request) {
	months, _ := strconv.Atoi(r.URL.Query().Get("months"))

	series, err := h.salesSeriesHandler.Handle(r.Context(), query.SalesSeriesQuery{Months: months})
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: series})
}

// GetCategoryBreakdown handles GET /api/dashboard/categories
func (h *CatalogHandler) GetCategoryBreakdown(w http.ResponseWriter, r *http.Request) {
	breakdown, err := h.breakdownHandler.Handle(r.Context(), query.CategoryBreakdownQuery{})
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: breakdown})
}

// GetRecentActivity handles GET /api/dashboard/activity
func (h *CatalogHandler) GetRecentActivity(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	activities, err := h.activityHandler.Handle(r.Context(), query.RecentActivityQuery{Limit: limit})
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: activities})
}

// updateCatalogMetrics refreshes the business gauges after a mutation
func (h *CatalogHandler) updateCatalogMetrics(r *http.Request) {
	stats, err := h.statsHandler.Handle(r.Context(), query.GetStatsQuery{})
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("Failed to refresh catalog metrics")
		return
	}
	h.totalProducts.Set(float64(stats.TotalProducts))
	h.totalStock.Set(float64(stats.TotalStock))
	h.lowStockCount.Set(float64(stats.LowStockCount))
}

func billItems(reqs []billItemRequest) []command.BillItemInput {
	items := make([]command.BillItemInput, len(reqs))
	for i, req := range reqs {
		items[i] = command.BillItemInput{
			ProductID:    req.ProductID,
			ProductName:  req.ProductName,
			Quantity:     req.Quantity,
			DefaultPrice: req.DefaultPrice,
			FinalPrice:   req.FinalPrice,
		}
	}
	return items
}

// respondDomainError maps domain errors to HTTP status codes
func respondDomainError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrInsufficientStock):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrDuplicateCategory):
		status = http.StatusConflict
	}
	respondJSON(w, status, Response{Success: false, Error: err.Error()})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
