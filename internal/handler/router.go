package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"eventgo-ticketing/internal/domain/user"
	"eventgo-ticketing/internal/handler/api"
	"eventgo-ticketing/internal/handler/middleware"
	"eventgo-ticketing/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Health       *api.HealthHandler
	Seat         *api.SeatHandler
	Ticket       *api.TicketHandler
	Payment      *api.PaymentHandler
	SplitPayment *api.SplitPaymentHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", h.Health.Check)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	requireAuth := authMiddleware.RequireAuth()

	events := engine.Group("/events")
	{
		addRoutes(events, []route{
			{Method: http.MethodGet, Path: "/:event_id/booked-seats", Handler: h.Seat.BookedSeats},
			{Method: http.MethodGet, Path: "/:event_id/seats", Handler: h.Seat.Seats},
		})
	}

	tickets := engine.Group("/tickets")
	tickets.Use(requireAuth)
	{
		addRoutes(tickets, []route{
			{Method: http.MethodPost, Path: "/reserve", Handler: h.Ticket.Reserve},
			{Method: http.MethodPost, Path: "/purchase", Handler: h.Ticket.Purchase},
			{Method: http.MethodGet, Path: "/me", Handler: h.Ticket.Mine},
		})
	}

	// Payment routes keep the flat paths the frontend already calls.
	addRoutes(&engine.RouterGroup, []route{
		{Method: http.MethodPost, Path: "/validate-payment", Handler: h.Payment.Validate},
		{Method: http.MethodGet, Path: "/payment-status/:payment_intent_id", Handler: h.Payment.Status},
		{Method: http.MethodGet, Path: "/split-payments/:id", Handler: h.SplitPayment.Status},

		{Method: http.MethodPatch, Path: "/confirm-payment", Handler: h.Payment.Confirm, Mw: []gin.HandlerFunc{requireAuth}},
		{Method: http.MethodPost, Path: "/create-payment-intent", Handler: h.Payment.CreateIntent, Mw: []gin.HandlerFunc{requireAuth}},
		{Method: http.MethodPost, Path: "/create-payment-link", Handler: h.Payment.CreateLink, Mw: []gin.HandlerFunc{requireAuth}},
		{Method: http.MethodPost, Path: "/create-split-payment", Handler: h.SplitPayment.Create, Mw: []gin.HandlerFunc{requireAuth}},
		{
			Method:  http.MethodPost,
			Path:    "/refund",
			Handler: h.Payment.Refund,
			Mw:      []gin.HandlerFunc{requireAuth, authMiddleware.RequireRoleAtLeast(user.RoleStaff)},
		},
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
