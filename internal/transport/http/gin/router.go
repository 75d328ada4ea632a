package httpgin

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/auth"
	"github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/domain"
	redisrepo "github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/repository/redis"
	"github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/service"
	"github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/service/availability"
	"github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/service/boarding"
	"github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/service/cancellation"
	"github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/service/catalog"
	"github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/service/sales"
)

func NewRouter(
	svcs *service.Services,
	authSvc *auth.Service,
	tokens *auth.Manager,
	idem *redisrepo.IdempotencyStore,
	logger *slog.Logger,
	middlewares ...gin.HandlerFunc,
) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery(), LoggingMiddleware(logger), RequestIDMiddleware(), CORS())
	for _, m := range middlewares {
		if m != nil {
			r.Use(m)
		}
	}

	// Swagger UI
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// health
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/auth/login", handleLogin(authSvc))

	authed := r.Group("", JWTAuth(tokens))

	authed.GET("/disponibilidad/:embarcacion/:ruta/:fecha/:hora", handleAvailability(svcs))

	ventas := authed.Group("/ventas", RequireRole(domain.RoleAdmin, domain.RoleSeller))
	{
		ventas.POST("", handleCreateSale(svcs, idem))
		ventas.GET("/:id", handleGetSale(svcs))
		ventas.POST("/:id/anular", handleCancelSale(svcs))
	}

	embarque := authed.Group("/embarque", RequireRole(domain.RoleOperator))
	{
		embarque.GET("/pasajeros/:fecha/:hora", handleBoardingPassengers(svcs))
		embarque.PUT("/:id/estado", handleBoardingSetState(svcs))
		embarque.GET("/estadisticas/:fecha/:hora", handleBoardingStats(svcs))
	}

	admin := authed.Group("/admin", RequireRole(domain.RoleAdmin))
	{
		admin.POST("/rutas", handleCreateRoute(svcs))
		admin.GET("/rutas", handleListRoutes(svcs))
		admin.PUT("/rutas/:id", handleUpdateRoute(svcs))
		admin.DELETE("/rutas/:id", handleDeleteRoute(svcs))

		admin.POST("/embarcaciones", handleCreateVessel(svcs))
		admin.GET("/embarcaciones", handleListVessels(svcs))
		admin.PUT("/embarcaciones/:id", handleUpdateVessel(svcs))
		admin.DELETE("/embarcaciones/:id", handleDeleteVessel(svcs))

		admin.POST("/horarios", handleCreateSchedule(svcs))
		admin.GET("/horarios", handleListSchedules(svcs))

		admin.POST("/operadores/asignar", handleAssignOperator(svcs))
	}

	return r
}

// --- Handlers with Swagger annotations ---

// @Summary  Login
// @Param    req body  LoginRequest true "credentials"
// @Success  200 {object} auth.LoginResult
// @Failure  401 {object} ErrorResponse
// @Router   /auth/login [post]
func handleLogin(authSvc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		res, err := authSvc.Login(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// @Summary  Check seat availability for one departure
// @Param    embarcacion path  int     true  "Vessel ID"
// @Param    ruta        path  int     true  "Route ID"
// @Param    fecha       path  string  true  "Travel date (YYYY-MM-DD)"
// @Param    hora        path  string  true  "Departure time (HH:MM)"
// @Param    pasajeros   query int     false "Requested seats (default 1)"
// @Success  200 {object} domain.Availability
// @Failure  404 {object} ErrorResponse
// @Router   /disponibilidad/{embarcacion}/{ruta}/{fecha}/{hora} [get]
func handleAvailability(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		vesselID, ok := parseInt64Param(c, "embarcacion")
		if !ok {
			return
		}
		routeID, ok := parseInt64Param(c, "ruta")
		if !ok {
			return
		}
		date, err := parseDate(c.Param("fecha"))
		if err != nil {
			badRequest(c, "invalid fecha (YYYY-MM-DD)")
			return
		}
		requested := parseIntDefault(c.Query("pasajeros"), 1)

		av, err := svcs.Availability.Check(c.Request.Context(), domain.Occurrence{
			VesselID:   vesselID,
			RouteID:    routeID,
			TravelDate: date,
			TravelTime: c.Param("hora"),
		}, requested)
		if err != nil {
			respondErr(c, err)
			return
		}
		// ETag + Cache-Control 15s; advisory data, the sale path re-checks
		writeJSONWithCache(c, http.StatusOK, av, "public, max-age=15", true)
	}
}

// @Summary  Create sale (idempotent)
// @Param    Idempotency-Key header string false "retry-safe key"
// @Param    req body  CreateSaleRequest true "payload"
// @Success  201 {object} domain.Sale
// @Failure  400 {object} ErrorResponse
// @Failure  409 {object} ErrorResponse "no availability / idem in progress"
// @Failure  429 {object} ErrorResponse "rate limited"
// @Router   /ventas [post]
func handleCreateSale(
	svcs *service.Services,
	idem *redisrepo.IdempotencyStore,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing bearer token"})
			return
		}

		var req CreateSaleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		date, err := parseDate(req.TravelDate)
		if err != nil {
			badRequest(c, "invalid fecha_viaje (YYYY-MM-DD)")
			return
		}

		idemKey := strings.TrimSpace(c.GetHeader("Idempotency-Key"))
		var idemStorageKey string
		if idem != nil && idemKey != "" {
			idemStorageKey = redisrepo.KeyIdemSale(claims.UserID, idemKey)

			if payload, ok, _ := idem.GetResult(c.Request.Context(), idemStorageKey); ok {
				c.Header("Idempotency-Key", idemKey)
				c.Data(http.StatusCreated, "application/json; charset=utf-8", []byte(payload))
				return
			}

			locked, err := idem.AcquireLock(c.Request.Context(), idemStorageKey, 60*time.Second)
			if err != nil {
				respondErr(c, err)
				return
			}
			if !locked {
				if payload, ok, _ := idem.GetResult(c.Request.Context(), idemStorageKey); ok {
					c.Header("Idempotency-Key", idemKey)
					c.Data(http.StatusCreated, "application/json; charset=utf-8", []byte(payload))
					return
				}
				c.Header("Retry-After", "1")
				c.JSON(http.StatusConflict, ErrorResponse{Error: "idempotency key in progress"})
				return
			}
		}

		rlKey := "ip:" + c.ClientIP()

		sale, err := svcs.Sales.Create(c.Request.Context(), claims.UserID, sales.CreateInput{
			Customer: sales.CustomerInput{
				DNI:         req.Customer.DNI,
				Name:        req.Customer.Name,
				Surname:     req.Customer.Surname,
				Phone:       req.Customer.Phone,
				Email:       req.Customer.Email,
				Nationality: req.Customer.Nationality,
				Address:     req.Customer.Address,
			},
			RouteID:        req.RouteID,
			VesselID:       req.VesselID,
			TravelDate:     date,
			TravelTime:     req.TravelTime,
			BoardingTime:   req.BoardingTime,
			BoardingPortID: req.BoardingPortID,
			PassengerCount: req.PassengerCount,
			PaymentMethod:  req.PaymentMethod,
			Notes:          req.Notes,
		}, rlKey)
		if err != nil {
			if idemStorageKey != "" && idem != nil {
				_ = idem.Release(c.Request.Context(), idemStorageKey)
			}
			if isRateLimitedErr(err) {
				c.Header("Retry-After", "60")
				c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: err.Error()})
				return
			}
			respondErr(c, err)
			return
		}

		if idemStorageKey != "" && idem != nil {
			b, _ := json.Marshal(sale)
			_ = idem.SaveResult(c.Request.Context(), idemStorageKey, string(b))
			c.Header("Idempotency-Key", idemKey)
		}

		c.JSON(http.StatusCreated, sale)
	}
}

// @Summary  Get sale with customer
// @Param    id  path  string  true  "Sale ID (uuid)"
// @Success  200 {object} domain.SaleWithCustomer
// @Failure  404 {object} ErrorResponse
// @Router   /ventas/{id} [get]
func handleGetSale(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		saleID, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		out, err := svcs.Sales.Get(c.Request.Context(), saleID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// @Summary  Cancel or refund a sale
// @Param    id  path  string  true  "Sale ID (uuid)"
// @Param    req body  CancelSaleRequest true "payload"
// @Success  200 {object} domain.CancelResult
// @Failure  403 {object} ErrorResponse "not the seller / trip departed"
// @Failure  409 {object} ErrorResponse "already cancelled"
// @Router   /ventas/{id}/anular [post]
func handleCancelSale(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing bearer token"})
			return
		}
		saleID, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		var req CancelSaleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		res, err := svcs.Cancellation.Cancel(
			c.Request.Context(),
			saleID,
			cancellation.Caller{ID: claims.UserID, Role: claims.Role},
			cancellation.Request{
				Type:       domain.CancellationType(strings.ToUpper(strings.TrimSpace(req.Type))),
				Reason:     req.Reason,
				Notes:      req.Notes,
				RefundCent: req.RefundCent,
			},
		)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// @Summary  Passenger list for the operator's vessel at one departure
// @Param    fecha path  string true  "Travel date (YYYY-MM-DD)"
// @Param    hora  path  string true  "Departure time (HH:MM)"
// @Param    ruta  query int    false "Route ID filter"
// @Success  200 {array} domain.PassengerView
// @Failure  403 {object} ErrorResponse
// @Router   /embarque/pasajeros/{fecha}/{hora} [get]
func handleBoardingPassengers(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing bearer token"})
			return
		}
		date, err := parseDate(c.Param("fecha"))
		if err != nil {
			badRequest(c, "invalid fecha (YYYY-MM-DD)")
			return
		}
		routeID := int64(parseIntDefault(c.Query("ruta"), 0))

		views, err := svcs.Boarding.ListPassengers(
			c.Request.Context(),
			claims.UserID,
			routeID,
			date,
			c.Param("hora"),
		)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, views)
	}
}

// @Summary  Mark a boarding record EMBARCADO or NO_EMBARCADO
// @Param    id  path  string  true  "Boarding record ID (uuid)"
// @Param    req body  BoardingStateRequest true "payload"
// @Success  200 {object} domain.BoardingControl
// @Failure  409 {object} ErrorResponse "already registered / trip closed"
// @Router   /embarque/{id}/estado [put]
func handleBoardingSetState(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing bearer token"})
			return
		}
		controlID, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		var req BoardingStateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		ctrl, err := svcs.Boarding.SetState(
			c.Request.Context(),
			claims.UserID,
			controlID,
			domain.BoardingState(strings.ToUpper(strings.TrimSpace(req.State))),
			req.Notes,
		)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, ctrl)
	}
}

// @Summary  Boarding statistics for the operator's vessel at one departure
// @Param    fecha path  string true  "Travel date (YYYY-MM-DD)"
// @Param    hora  path  string true  "Departure time (HH:MM)"
// @Param    ruta  query int    false "Route ID filter"
// @Success  200 {object} domain.OccurrenceStats
// @Router   /embarque/estadisticas/{fecha}/{hora} [get]
func handleBoardingStats(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing bearer token"})
			return
		}
		date, err := parseDate(c.Param("fecha"))
		if err != nil {
			badRequest(c, "invalid fecha (YYYY-MM-DD)")
			return
		}
		routeID := int64(parseIntDefault(c.Query("ruta"), 0))

		stats, err := svcs.Boarding.OccurrenceStats(
			c.Request.Context(),
			claims.UserID,
			routeID,
			date,
			c.Param("hora"),
		)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

// @Summary  Create route
// @Param    req body  RouteRequest true "payload"
// @Success  201 {object} domain.Route
// @Failure  409 {object} ErrorResponse "duplicate name or trajectory"
// @Router   /admin/rutas [post]
func handleCreateRoute(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RouteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		rt, err := svcs.Catalog.CreateRoute(c.Request.Context(), routeInput(req))
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, rt)
	}
}

// @Summary  List routes
// @Param    activas query bool false "only active routes"
// @Success  200 {array} domain.Route
// @Router   /admin/rutas [get]
func handleListRoutes(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		onlyActive := c.Query("activas") == "true"
		out, err := svcs.Catalog.ListRoutes(c.Request.Context(), onlyActive)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// @Summary  Update route
// @Param    id  path  int  true  "Route ID"
// @Param    req body  RouteRequest true "payload"
// @Success  200 {object} domain.Route
// @Router   /admin/rutas/{id} [put]
func handleUpdateRoute(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		var req RouteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		rt, err := svcs.Catalog.UpdateRoute(c.Request.Context(), id, routeInput(req))
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, rt)
	}
}

// @Summary  Delete route (soft when referenced)
// @Param    id  path  int  true  "Route ID"
// @Success  200 {object} map[string]bool
// @Router   /admin/rutas/{id} [delete]
func handleDeleteRoute(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		err := svcs.Catalog.DeleteRoute(c.Request.Context(), id)
		if errors.Is(err, catalog.ErrInUse) {
			// referenced by sales or schedules: deactivate instead
			if err := svcs.Catalog.DeactivateRoute(c.Request.Context(), id); err != nil {
				respondErr(c, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{"eliminada": false, "desactivada": true})
			return
		}
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"eliminada": true, "desactivada": false})
	}
}

// @Summary  Create vessel
// @Param    req body  VesselRequest true "payload"
// @Success  201 {object} domain.Vessel
// @Failure  409 {object} ErrorResponse "duplicate name"
// @Router   /admin/embarcaciones [post]
func handleCreateVessel(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VesselRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		v, err := svcs.Catalog.CreateVessel(c.Request.Context(), vesselInput(req))
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, v)
	}
}

// @Summary  List vessels
// @Success  200 {array} domain.Vessel
// @Router   /admin/embarcaciones [get]
func handleListVessels(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := svcs.Catalog.ListVessels(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// @Summary  Update vessel
// @Param    id  path  int  true  "Vessel ID"
// @Param    req body  VesselRequest true "payload"
// @Success  200 {object} domain.Vessel
// @Router   /admin/embarcaciones/{id} [put]
func handleUpdateVessel(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		var req VesselRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		v, err := svcs.Catalog.UpdateVessel(c.Request.Context(), id, vesselInput(req))
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, v)
	}
}

// @Summary  Delete vessel (soft when referenced)
// @Param    id  path  int  true  "Vessel ID"
// @Success  200 {object} map[string]bool
// @Router   /admin/embarcaciones/{id} [delete]
func handleDeleteVessel(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		err := svcs.Catalog.DeleteVessel(c.Request.Context(), id)
		if errors.Is(err, catalog.ErrInUse) {
			if err := svcs.Catalog.DeactivateVessel(c.Request.Context(), id); err != nil {
				respondErr(c, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{"eliminada": false, "desactivada": true})
			return
		}
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"eliminada": true, "desactivada": false})
	}
}

// @Summary  Assign a vessel to a route with a schedule
// @Param    req body  ScheduleRequest true "payload"
// @Success  201 {object} domain.VesselRoute
// @Failure  409 {object} ErrorResponse "active assignment exists"
// @Router   /admin/horarios [post]
func handleCreateSchedule(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ScheduleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		vr, err := svcs.Catalog.AssignVesselRoute(c.Request.Context(), catalog.ScheduleInput{
			VesselID:       req.VesselID,
			RouteID:        req.RouteID,
			DepartureTimes: req.DepartureTimes,
			OperatingDays:  req.OperatingDays,
		})
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, vr)
	}
}

// @Summary  List schedule assignments
// @Param    embarcacion query int false "Vessel ID filter"
// @Success  200 {array} domain.VesselRoute
// @Router   /admin/horarios [get]
func handleListSchedules(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		vesselID := int64(parseIntDefault(c.Query("embarcacion"), 0))
		out, err := svcs.Catalog.ListVesselRoutes(c.Request.Context(), vesselID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// @Summary  Assign an operator to a vessel
// @Param    req body  AssignOperatorRequest true "payload"
// @Success  200 {object} map[string]bool
// @Failure  409 {object} ErrorResponse "vessel already has an operator"
// @Router   /admin/operadores/asignar [post]
func handleAssignOperator(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AssignOperatorRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		if err := svcs.Catalog.AssignOperator(c.Request.Context(), req.UserID, req.VesselID); err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"asignado": true})
	}
}

// --- Helpers ---

func routeInput(req RouteRequest) catalog.RouteInput {
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	return catalog.RouteInput{
		Name:          req.Name,
		Origin:        req.Origin,
		Destination:   req.Destination,
		PriceCentimos: req.PriceCentimos,
		Active:        active,
	}
}

func vesselInput(req VesselRequest) catalog.VesselInput {
	return catalog.VesselInput{
		Name:     req.Name,
		Capacity: req.Capacity,
		Type:     req.Type,
		State:    domain.VesselState(strings.ToUpper(strings.TrimSpace(req.State))),
	}
}

func parseInt64Param(c *gin.Context, name string) (int64, bool) {
	s := c.Param(name)
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return v, true
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	v, err := uuid.Parse(c.Param(name))
	if err != nil {
		badRequest(c, "invalid "+name)
		return uuid.Nil, false
	}
	return v, true
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

func isRateLimitedErr(err error) bool {
	return err != nil && strings.Contains(err.Error(), "rate limited")
}

func respondErr(c *gin.Context, err error) {
	if err == nil {
		c.Status(http.StatusNoContent)
		return
	}

	switch {
	// auth service
	case errors.Is(err, auth.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"})
		return
	case errors.Is(err, auth.ErrUserDisabled):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "account disabled"})
		return
	case errors.Is(err, auth.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid or expired token"})
		return
	// availability service
	case errors.Is(err, availability.ErrBadRequest):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid availability query"})
		return
	case errors.Is(err, availability.ErrVesselNotFound),
		errors.Is(err, availability.ErrRouteNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "vessel or route not found"})
		return
	// sales service
	case errors.Is(err, sales.ErrInvalidDNI),
		errors.Is(err, sales.ErrInvalidPassengers),
		errors.Is(err, sales.ErrPastTravelDate),
		errors.Is(err, sales.ErrInvalidTravelTime),
		errors.Is(err, sales.ErrInvalidPayment):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	case errors.Is(err, sales.ErrRouteNotFound),
		errors.Is(err, sales.ErrVesselNotFound),
		errors.Is(err, sales.ErrPortNotFound),
		errors.Is(err, sales.ErrSaleNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	case errors.Is(err, sales.ErrRouteInactive),
		errors.Is(err, sales.ErrVesselUnavailable):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		return
	case errors.Is(err, sales.ErrNoAvailability):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "insufficient availability"})
		return
	// cancellation service
	case errors.Is(err, cancellation.ErrSaleNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "sale not found"})
		return
	case errors.Is(err, cancellation.ErrInvalidState),
		errors.Is(err, cancellation.ErrAlreadyCancelled):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		return
	case errors.Is(err, cancellation.ErrForbidden),
		errors.Is(err, cancellation.ErrTripDeparted):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
		return
	case errors.Is(err, cancellation.ErrInvalidType),
		errors.Is(err, cancellation.ErrInvalidReason),
		errors.Is(err, cancellation.ErrInvalidRefund):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	// boarding service
	case errors.Is(err, boarding.ErrControlNotFound),
		errors.Is(err, boarding.ErrVesselNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	case errors.Is(err, boarding.ErrNotActiveOperator),
		errors.Is(err, boarding.ErrWrongVessel):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
		return
	case errors.Is(err, boarding.ErrTripClosed),
		errors.Is(err, boarding.ErrInvalidTransition):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		return
	case errors.Is(err, boarding.ErrInvalidState),
		errors.Is(err, boarding.ErrBadRequest):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	// catalog service
	case errors.Is(err, catalog.ErrRouteNotFound),
		errors.Is(err, catalog.ErrVesselNotFound),
		errors.Is(err, catalog.ErrUserNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	case errors.Is(err, catalog.ErrRouteConflict),
		errors.Is(err, catalog.ErrVesselConflict),
		errors.Is(err, catalog.ErrScheduleConflict),
		errors.Is(err, catalog.ErrOperatorConflict),
		errors.Is(err, catalog.ErrInUse):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		return
	case errors.Is(err, catalog.ErrInvalidRoute),
		errors.Is(err, catalog.ErrInvalidPrice),
		errors.Is(err, catalog.ErrInvalidVessel),
		errors.Is(err, catalog.ErrInvalidCapacity),
		errors.Is(err, catalog.ErrInvalidState),
		errors.Is(err, catalog.ErrInvalidSchedule):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}
