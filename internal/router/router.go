package router

import (
	"time"

	"retailpos/internal/config"
	"retailpos/internal/handler"
	"retailpos/internal/middleware"
	"retailpos/internal/repository"
	"retailpos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
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
	r.Use(middleware.RateLimiter(cfg.RateLimitPerMin, time.Minute))

	// ── Repositories ─────────────────────────────────────────────────────────
	productoRepo := repository.NewProductoRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	sucursalRepo := repository.NewSucursalRepository(db)
	categoriaRepo := repository.NewCategoriaRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	codigoSvc := service.NewCodigoService(productoRepo, ventaRepo)
	inventarioSvc := service.NewInventarioService(productoRepo)
	categoriaSvc := service.NewCategoriaService(categoriaRepo)
	productoSvc := service.NewProductoService(productoRepo, codigoSvc, rdb)
	importacionSvc := service.NewImportacionService(productoRepo, categoriaSvc, codigoSvc)
	ventaSvc := service.NewVentaService(ventaRepo, productoRepo, clienteRepo, sucursalRepo, inventarioSvc, codigoSvc)
	clienteSvc := service.NewClienteService(clienteRepo)
	sucursalSvc := service.NewSucursalService(sucursalRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	ventasH := handler.NewVentasHandler(ventaSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	inventarioH := handler.NewInventarioHandler(importacionSvc, inventarioSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	sucursalesH := handler.NewSucursalesHandler(sucursalSvc)
	categoriasH := handler.NewCategoriasHandler(categoriaSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// All business routes require the tenant header set by the gateway.
	v1 := r.Group("/v1", middleware.TenantContext())
	{
		v1.POST("/ventas", ventasH.RegistrarVenta)
		v1.GET("/ventas", ventasH.Listar)
		v1.GET("/ventas/:id", ventasH.ObtenerPorID)
		v1.POST("/ventas/:id/anular", ventasH.AnularVenta)

		v1.POST("/productos", productosH.Crear)
		v1.GET("/productos", productosH.Listar)
		v1.GET("/productos/precio/:sku", productosH.ConsultaPrecio)
		v1.GET("/productos/:id", productosH.ObtenerPorID)
		v1.DELETE("/productos/:id", productosH.Eliminar)

		v1.POST("/inventario/importar", inventarioH.ImportarLote)
		v1.GET("/inventario/alertas", inventarioH.AlertasStockBajo)

		v1.POST("/clientes", clientesH.Crear)
		v1.GET("/clientes", clientesH.Listar)
		v1.GET("/clientes/:id", clientesH.ObtenerPorID)

		v1.POST("/sucursales", sucursalesH.Crear)
		v1.GET("/sucursales", sucursalesH.Listar)
		v1.GET("/sucursales/:id", sucursalesH.ObtenerPorID)

		v1.POST("/categorias", categoriasH.Crear)
		v1.GET("/categorias", categoriasH.Listar)
	}

	return r
}
