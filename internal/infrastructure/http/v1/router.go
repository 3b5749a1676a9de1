package v1

import (
	"context"

	"github.com/gin-gonic/gin"

	"coatline/internal/core/id"
	"coatline/internal/domain"
	"coatline/internal/domain/auth"
	"coatline/internal/domain/catalogs/operations"
	"coatline/internal/domain/catalogs/partner"
	"coatline/internal/domain/catalogs/rawsitem"
	"coatline/internal/domain/catalogs/salesitem"
	"coatline/internal/domain/documents/rawinbound"
	"coatline/internal/domain/documents/rawoutbound"
	"coatline/internal/domain/documents/salesinbound"
	"coatline/internal/domain/documents/salesoutbound"
	"coatline/internal/domain/registers/inventory"
	"coatline/internal/domain/reports"
	"coatline/internal/infrastructure/http/v1/handlers"
	"coatline/internal/infrastructure/http/v1/middleware"
	"coatline/internal/infrastructure/storage/postgres"
	"coatline/internal/infrastructure/storage/postgres/catalog_repo"
	"coatline/internal/infrastructure/storage/postgres/document_repo"
	"coatline/internal/infrastructure/storage/postgres/register_repo"
	"coatline/internal/infrastructure/storage/postgres/report_repo"
	"coatline/pkg/logger"
	"coatline/pkg/numerator"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Pool is the database connection pool (health checks, pool stats)
	Pool *postgres.Pool

	// TxManager provides transactional access for repositories
	TxManager *postgres.TxManager

	// Logger for request logging
	Logger *logger.Logger

	// JWTValidator for token validation
	JWTValidator middleware.JWTValidator

	// AuthService for authentication endpoints
	AuthService *auth.Service

	// Numerator for document number generation
	Numerator *numerator.Service

	// Audit records master data changes; optional
	Audit *postgres.AuditService
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	v1 := router.Group("/api/v1")
	{
		registerAuthRoutes(v1, cfg)

		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))

		registerCatalogRoutes(protected, cfg)
		registerDocumentRoutes(protected, cfg)
		registerReportRoutes(protected, cfg)
	}

	return router
}

// registerAuthRoutes registers authentication endpoints.
func registerAuthRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.AuthService == nil {
		return
	}

	baseHandler := handlers.NewBaseHandler()
	authHandler := handlers.NewAuthHandler(baseHandler, cfg.AuthService)

	public := rg.Group("/auth")
	public.POST("/login", authHandler.Login)

	private := rg.Group("/auth")
	private.Use(middleware.Auth(cfg.JWTValidator))
	private.GET("/me", authHandler.Me)
}

// registerCatalogRoutes registers master data endpoints.
func registerCatalogRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	baseHandler := handlers.NewBaseHandler()

	partnerRepo := catalog_repo.NewPartnerRepo(cfg.TxManager)
	rawsItemRepo := catalog_repo.NewRawsItemRepo(cfg.TxManager)
	salesItemRepo := catalog_repo.NewSalesItemRepo(cfg.TxManager)
	operationRepo := catalog_repo.NewOperationRepo(cfg.TxManager)

	// --- PARTNERS ---
	{
		service := partner.NewService(partnerRepo, cfg.TxManager, cfg.Numerator)
		registerAuditHooks(service.Hooks(), cfg.Audit, "partner")
		handler := handlers.NewPartnerHandler(baseHandler, service)
		RegisterCatalogRoutes(rg.Group("/partners"), handler)
	}

	// --- RAWS ITEMS ---
	{
		service := rawsitem.NewService(rawsItemRepo, partnerRepo, cfg.TxManager)
		registerAuditHooks(service.Hooks(), cfg.Audit, "raws_item")
		handler := handlers.NewRawsItemHandler(baseHandler, service)
		group := rg.Group("/raws-items")
		RegisterCatalogRoutes(group, handler)
		group.GET("/eligible", handler.Eligible)
	}

	// --- SALES ITEMS ---
	{
		service := salesitem.NewService(salesItemRepo, partnerRepo, cfg.TxManager)
		registerAuditHooks(service.Hooks(), cfg.Audit, "sales_item")
		handler := handlers.NewSalesItemHandler(baseHandler, service)
		group := rg.Group("/sales-items")
		RegisterCatalogRoutes(group, handler)
		group.GET("/:id/routing", handler.GetRouting)
		group.PUT("/:id/routing", handler.ReplaceRouting)
	}

	// --- OPERATIONS ---
	{
		service := operations.NewService(operationRepo, cfg.TxManager, cfg.Numerator)
		registerAuditHooks(service.Hooks(), cfg.Audit, "operation")
		handler := handlers.NewOperationHandler(baseHandler, service)
		group := rg.Group("/operations")
		RegisterCatalogRoutes(group, handler)
		group.GET("/ordered", handler.ListOrdered)
		group.PATCH("/order", handler.Reorder)
		group.POST("/start-next", handler.StartNext)
	}
}

// registerDocumentRoutes registers transaction document endpoints.
func registerDocumentRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	baseHandler := handlers.NewBaseHandler()

	rawsItemRepo := catalog_repo.NewRawsItemRepo(cfg.TxManager)
	salesItemRepo := catalog_repo.NewSalesItemRepo(cfg.TxManager)
	inventoryRepo := register_repo.NewInventoryRepo(cfg.TxManager)
	stockService := inventory.NewService(inventoryRepo)

	// --- RAW INBOUND ---
	{
		repo := document_repo.NewRawInboundRepo(cfg.TxManager)
		service := rawinbound.NewService(repo, rawsItemRepo, stockService, cfg.TxManager, cfg.Numerator)
		handler := handlers.NewRawInboundHandler(baseHandler, service)
		group := rg.Group("/raw-inbound")
		group.POST("", handler.Register)
		group.GET("/eligible-items", handler.EligibleItems)
		group.GET("/history", handler.History)
	}

	// --- RAW OUTBOUND ---
	{
		repo := document_repo.NewRawOutboundRepo(cfg.TxManager)
		service := rawoutbound.NewService(repo, stockService, cfg.TxManager, cfg.Numerator)
		handler := handlers.NewRawOutboundHandler(baseHandler, service)
		group := rg.Group("/raw-outbound")
		group.GET("", handler.StockList)
		group.POST("", handler.Register)
		group.GET("/history", handler.History)
	}

	// --- SALES INBOUND (lots) ---
	lotRepo := document_repo.NewSalesInboundRepo(cfg.TxManager)
	lotService := salesinbound.NewService(lotRepo, salesItemRepo, cfg.TxManager, cfg.Numerator)
	{
		partnerRepo := catalog_repo.NewPartnerRepo(cfg.TxManager)
		itemService := salesitem.NewService(salesItemRepo, partnerRepo, cfg.TxManager)
		itemHandler := handlers.NewSalesItemHandler(baseHandler, itemService)

		handler := handlers.NewSalesInboundHandler(baseHandler, lotService)
		group := rg.Group("/sales-inbound")
		group.GET("/eligible-items", itemHandler.List)
		group.POST("", handler.Register)
		group.GET("/history", handler.History)
		group.GET("/history/:id", handler.Detail)
		group.PUT("/history/:id", handler.Update)
		group.PATCH("/history/:id/cancel", handler.Cancel)
	}

	// --- SALES OUTBOUND (shipments) ---
	{
		repo := document_repo.NewSalesOutboundRepo(cfg.TxManager)
		service := salesoutbound.NewService(repo, lotRepo, cfg.TxManager, cfg.Numerator)
		handler := handlers.NewSalesOutboundHandler(baseHandler, service, lotService)
		group := rg.Group("/order")
		group.GET("/outbound/list", handler.OpenLots)
		group.POST("/outbound/list/register", handler.Register)
		group.GET("/history/outbound", handler.History)
		group.PUT("/history/outbound/:id", handler.Update)
		group.PATCH("/history/outbound/:id/cancel", handler.Cancel)
	}
}

// registerReportRoutes registers read-only report endpoints.
func registerReportRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	baseHandler := handlers.NewBaseHandler()

	// --- RAW STOCK STATUS ---
	{
		repo := register_repo.NewInventoryRepo(cfg.TxManager)
		service := inventory.NewService(repo)
		handler := handlers.NewInventoryHandler(baseHandler, service)
		rg.GET("/inventory/raw", handler.Status)
	}

	// --- WORK ORDER SHEET ---
	{
		partnerRepo := catalog_repo.NewPartnerRepo(cfg.TxManager)
		salesItemRepo := catalog_repo.NewSalesItemRepo(cfg.TxManager)
		itemService := salesitem.NewService(salesItemRepo, partnerRepo, cfg.TxManager)
		repo := report_repo.NewReportRepo(cfg.TxManager)
		service := reports.NewService(repo, itemService)
		handler := handlers.NewWorkOrderHandler(baseHandler, service)
		rg.GET("/work-order/:id", handler.Get)
	}
}

// registerAuditHooks appends an audit row after every catalog create
// and update with a full column snapshot of the record.
func registerAuditHooks[T interface{ GetID() id.ID }](
	hooks *domain.HookRegistry[T],
	audit *postgres.AuditService,
	entityType string,
) {
	if audit == nil {
		return
	}

	hooks.OnAfterCreate(func(ctx context.Context, e T) error {
		return audit.LogChange(ctx, entityType, e.GetID(), postgres.AuditActionCreate, postgres.StructToMap(e))
	})
	hooks.OnAfterUpdate(func(ctx context.Context, e T) error {
		return audit.LogChange(ctx, entityType, e.GetID(), postgres.AuditActionUpdate, postgres.StructToMap(e))
	})
}
