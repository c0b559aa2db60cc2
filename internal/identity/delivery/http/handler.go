package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tair/smart-inventory/internal/identity/domain"
	"github.com/tair/smart-inventory/internal/identity/usecase/command"
	"github.com/tair/smart-inventory/internal/identity/usecase/query"
	"github.com/tair/smart-inventory/pkg/logger"
)

// IdentityHandler handles HTTP requests for authentication and profiles
type IdentityHandler struct {
	registerHandler *command.RegisterUserHandler
	loginHandler    *command.LoginUserHandler
	logoutHandler   *command.LogoutUserHandler
	profileHandler  *command.UpdateProfileHandler
	sessionHandler  *query.GetSessionHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	loginFailures  prometheus.Counter
}

// NewIdentityHandler creates a new identity handler
func NewIdentityHandler(repo domain.Repository) *IdentityHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "identity_service_requests_total",
			Help: "Total number of requests to identity service",
		},
		[]string{"method", "endpoint", "status"},
	)
	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "identity_service_request_duration_seconds",
			Help:    "Duration of identity service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
	loginFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "identity_service_login_failures_total",
		Help: "Total number of refused login attempts",
	})

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(loginFailures)

	return &IdentityHandler{
		registerHandler: command.NewRegisterUserHandler(repo),
		loginHandler:    command.NewLoginUserHandler(repo),
		logoutHandler:   command.NewLogoutUserHandler(repo),
		profileHandler:  command.NewUpdateProfileHandler(repo),
		sessionHandler:  query.NewGetSessionHandler(repo),
		requestCounter:  requestCounter,
		requestLatency:  requestLatency,
		loginFailures:   loginFailures,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (h *IdentityHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

func (h *IdentityHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/auth/register", h.metricsMiddleware("/api/auth/register", h.Register)).Methods("POST")
	router.HandleFunc("/api/auth/login", h.metricsMiddleware("/api/auth/login", h.Login)).Methods("POST")
	router.HandleFunc("/api/auth/logout", h.metricsMiddleware("/api/auth/logout", h.Logout)).Methods("POST")
	router.HandleFunc("/api/auth/profile", h.metricsMiddleware("/api/auth/profile", h.UpdateProfile)).Methods("PUT")
	router.HandleFunc("/api/auth/session", h.metricsMiddleware("/api/auth/session", h.GetSession)).Methods("GET")
}

type registerRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone"`
	StoreName string `json:"storeName"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	Pincode   string `json:"pincode"`
}

// Register handles POST /api/auth/register
func (h *IdentityHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	result, err := h.registerHandler.Handle(r.Context(), command.RegisterUserCommand{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		Phone:     req.Phone,
		StoreName: req.StoreName,
		Address:   req.Address,
		City:      req.City,
		State:     req.State,
		Pincode:   req.Pincode,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to register user")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Registration failed"})
		return
	}
	if !result.Success {
		respondJSON(w, http.StatusConflict, Response{Success: false, Message: result.Message})
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Registration successful",
		Data:    result.User,
	})
}

// Login handles POST /api/auth/login
func (h *IdentityHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	result, err := h.loginHandler.Handle(r.Context(), command.LoginUserCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to process login")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Login failed"})
		return
	}
	if !result.Success {
		h.loginFailures.Inc()
		logger.Logger.Warn().Str("email", req.Email).Msg("Login refused")
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Message: result.Message})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Login successful",
		Data:    result.User,
	})
}

// Logout handles POST /api/auth/logout
func (h *IdentityHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.logoutHandler.Handle(r.Context(), command.LogoutUserCommand{}); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to process logout")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Logout failed"})
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Logged out"})
}

// UpdateProfile handles PUT /api/auth/profile
func (h *IdentityHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	result, err := h.profileHandler.Handle(r.Context(), command.UpdateProfileCommand{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		StoreName: req.StoreName,
		Address:   req.Address,
		City:      req.City,
		State:     req.State,
		Pincode:   req.Pincode,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to update profile")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Profile update failed"})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Profile updated",
		Data:    result.User,
	})
}

// GetSession handles GET /api/auth/session
func (h *IdentityHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessionHandler.Handle(r.Context(), query.GetSessionQuery{})
	if err != nil {
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Session unavailable"})
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: session})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
