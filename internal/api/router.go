package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/lexfirma/case-management/docs"
	"github.com/lexfirma/case-management/internal/api/handler"
	"github.com/lexfirma/case-management/internal/api/middleware"
	"github.com/lexfirma/case-management/internal/core/domain"
	"github.com/lexfirma/case-management/internal/core/service"
	"github.com/lexfirma/case-management/internal/infrastructure/crypto"
	mongodb "github.com/lexfirma/case-management/internal/infrastructure/db/mongo"
	"github.com/lexfirma/case-management/internal/infrastructure/storage"
)

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, jwtSecret string, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("legalcases"))

	// --- Repositories ---
	rolRepo := mongodb.NewRolRepository(db)
	usuarioRepo := mongodb.NewUsuarioRepository(db, rolRepo)
	clienteRepo := mongodb.NewClienteRepository(db)
	empleadoRepo := mongodb.NewEmpleadoRepository(db)
	casoRepo := mongodb.NewCasoRepository(db, empleadoRepo)
	documentoRepo := mongodb.NewDocumentoRepository(db)

	gridfs, err := storage.NewGridFSStorage(db)
	if err != nil {
		return nil, err
	}

	// --- Services ---
	hasher := crypto.NewBcryptHasher(0)
	authService := service.NewAuthService(usuarioRepo, hasher, jwtSecret, 24*time.Hour, log)
	usuarioService := service.NewUsuarioService(usuarioRepo, rolRepo, hasher, log)
	clienteService := service.NewClienteService(clienteRepo, usuarioRepo, rolRepo, hasher, log)
	empleadoService := service.NewEmpleadoService(empleadoRepo, log)
	casoService := service.NewCasoService(casoRepo, empleadoRepo, log)
	documentoService := service.NewDocumentoService(documentoRepo, gridfs, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	usuarioHandler := handler.NewUsuarioHandler(usuarioService)
	rolHandler := handler.NewRolHandler(rolRepo)
	clienteHandler := handler.NewClienteHandler(clienteService)
	empleadoHandler := handler.NewEmpleadoHandler(empleadoService)
	casoHandler := handler.NewCasoHandler(casoService)
	documentoHandler := handler.NewDocumentoHandler(documentoService)

	// --- Health probes and operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Auth ---
	e.POST("/api/auth/login", authHandler.Login)

	authMW := middleware.Auth(jwtSecret)
	soloAdmin := middleware.RBAC(domain.RolAdministrador)
	personal := middleware.RBAC(domain.RolAdministrador, domain.RolEmpleado)
	portal := middleware.RBAC(domain.RolCliente)

	api := e.Group("/api", authMW)

	// Reference data: any authenticated user.
	api.GET("/roles", rolHandler.List)
	api.GET("/roles/:id", rolHandler.Get)

	// User administration: administrators only.
	usuarios := api.Group("/usuarios", soloAdmin)
	usuarios.GET("", usuarioHandler.List)
	usuarios.GET("/:id", usuarioHandler.Get)
	usuarios.POST("", usuarioHandler.Create)
	usuarios.PUT("/:id", usuarioHandler.Update)
	usuarios.DELETE("/:id", usuarioHandler.Delete)

	// Back-office resources: administrators and employees.
	clientes := api.Group("/clientes", personal)
	clientes.GET("", clienteHandler.List)
	clientes.GET("/:id", clienteHandler.Get)
	clientes.POST("", clienteHandler.Create)
	clientes.PUT("/:id", clienteHandler.Update)
	clientes.DELETE("/:id", clienteHandler.Delete)

	empleados := api.Group("/empleados", personal)
	empleados.GET("", empleadoHandler.List)
	empleados.GET("/:id", empleadoHandler.Get)
	empleados.POST("", empleadoHandler.Create)
	empleados.PUT("/:id", empleadoHandler.Update)
	empleados.DELETE("/:id", empleadoHandler.Delete)

	casos := api.Group("/casos", personal)
	casos.GET("", casoHandler.List)
	casos.GET("/:id", casoHandler.Get)
	casos.POST("", casoHandler.Create)
	casos.PUT("/:id", casoHandler.Update)
	casos.DELETE("/:id", casoHandler.Delete)
	casos.GET("/:id/equipo", casoHandler.ListEquipo)
	casos.POST("/:id/equipo", casoHandler.AsignarEmpleado)
	casos.DELETE("/:id/equipo/:empleadoID", casoHandler.DesasignarEmpleado)

	documentos := api.Group("/documentos", personal)
	documentos.GET("", documentoHandler.List)
	documentos.GET("/:id", documentoHandler.Get)
	documentos.POST("", documentoHandler.Upload)
	documentos.GET("/:id/descargar", documentoHandler.Download)
	documentos.DELETE("/:id", documentoHandler.Delete)

	// Client portal: scoped, read-only view of the client's own cases.
	api.GET("/portal/casos", casoHandler.ListPortal, portal)

	return e, nil
}
