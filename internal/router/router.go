package router

import (
	"time"

	"pizzapos/internal/config"
	"pizzapos/internal/handler"
	"pizzapos/internal/middleware"
	"pizzapos/internal/repository"
	"pizzapos/internal/service"
	"pizzapos/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	empleadoRepo := repository.NewEmpleadoRepository(db)
	metodoPagoRepo := repository.NewMetodoPagoRepository(db)
	cajaRepo := repository.NewCajaRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	compraRepo := repository.NewCompraRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(empleadoRepo, cfg)
	cajaSvc := service.NewCajaService(cajaRepo, metodoPagoRepo, rdb, dispatcher)
	ventaSvc := service.NewVentaService(ventaRepo, metodoPagoRepo, cajaSvc)
	compraSvc := service.NewCompraService(compraRepo, metodoPagoRepo, cajaSvc)
	metodoPagoSvc := service.NewMetodoPagoService(metodoPagoRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	cajaH := handler.NewCajaHandler(cajaSvc)
	ventasH := handler.NewVentaHandler(ventaSvc)
	comprasH := handler.NewCompraHandler(compraSvc)
	empleadosH := handler.NewEmpleadoHandler(authSvc)
	metodosH := handler.NewMetodoPagoHandler(metodoPagoSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		todos := middleware.RequireRole("cajero", "supervisor", "administrador")

		caja := v1.Group("/caja")
		{
			caja.POST("/abrir", todos, cajaH.Abrir)
			caja.POST("/cerrar", todos, cajaH.Cerrar)
			caja.POST("/movimiento", todos, cajaH.RegistrarMovimiento)
			caja.GET("/abierta", todos, cajaH.ResumenTurno)
			caja.GET("/totales-hoy", todos, cajaH.TotalesHoy)
			// Session archaeology is supervisor territory
			caja.GET("/historial", middleware.RequireRole("supervisor", "administrador"), cajaH.Historial)
			caja.GET("/:id", middleware.RequireRole("supervisor", "administrador"), cajaH.Detalle)
		}

		v1.POST("/ventas", todos, ventasH.Registrar)
		v1.GET("/ventas", todos, ventasH.Listar)
		v1.POST("/ventas/:id/anular", middleware.RequireRole("supervisor", "administrador"), ventasH.Anular)

		v1.POST("/compras", todos, comprasH.Registrar)
		v1.GET("/compras", todos, comprasH.Listar)

		v1.GET("/metodos-pago", todos, metodosH.Listar)
		v1.POST("/metodos-pago", middleware.RequireRole("administrador"), metodosH.Crear)

		empleados := v1.Group("/empleados", middleware.RequireRole("administrador"))
		{
			empleados.POST("", empleadosH.Crear)
			empleados.GET("", empleadosH.Listar)
			empleados.PUT("/:id", empleadosH.Actualizar)
			empleados.DELETE("/:id", empleadosH.Desactivar)
			empleados.POST("/:id/reactivar", empleadosH.Reactivar)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
