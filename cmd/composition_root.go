package cmd

import (
	"log/slog"
	"time"

	httpin "orderintake/internal/adapters/in/http"
	"orderintake/internal/adapters/out/cache"
	"orderintake/internal/adapters/out/natsbus"
	"orderintake/internal/adapters/out/postgres"
	"orderintake/internal/adapters/out/postgres/orderrepo"
	"orderintake/internal/adapters/out/postgres/pickuprepo"
	"orderintake/internal/adapters/out/postgres/pincoderepo"
	"orderintake/internal/adapters/out/zone"
	"orderintake/internal/core/application/usecases/commands"
	"orderintake/internal/core/application/usecases/queries"
	"orderintake/internal/core/application/validation"
	"orderintake/internal/core/ports"
	"orderintake/internal/jobs"
	"orderintake/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	logger     *slog.Logger
	registry   *prometheus.Registry
	uowFactory postgres.GormUnitOfWorkFactory

	pincodes      *cache.PincodeCache
	cacheMetrics  *metrics.CacheMetrics
	intakeMetrics *metrics.IntakeMetrics
	httpMetrics   *metrics.HTTPMetrics
	publisher     ports.EventPublisher
}

// NewCompositionRoot wires the shared, long lived collaborators. natsConn may
// be nil, in which case no events are published.
func NewCompositionRoot(configs Config, gormDB *gorm.DB, natsConn natsbus.MsgPublisher, logger *slog.Logger) CompositionRoot {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	cacheMetrics := metrics.NewCacheMetrics(registry, configs.MetricsNamespace, "pincode")
	pincodes := cache.NewPincodeCache(
		pincoderepo.NewGormPincodeDirectory(gormDB),
		cache.PincodeCacheConfig{TTL: configs.PincodeCacheTTL, MaxEntries: configs.PincodeCacheSize},
		cacheMetrics,
	)

	var publisher ports.EventPublisher
	if natsConn != nil {
		publisher = natsbus.NewOrderEventPublisher(natsConn, configs.NATSOrderCreatedSubject)
	}

	return CompositionRoot{
		configs:       configs,
		gormDB:        gormDB,
		logger:        logger,
		registry:      registry,
		uowFactory:    *postgres.NewGormUnitOfWorkFactory(gormDB),
		pincodes:      pincodes,
		cacheMetrics:  cacheMetrics,
		intakeMetrics: metrics.NewIntakeMetrics(registry, configs.MetricsNamespace),
		httpMetrics:   metrics.NewHTTPMetrics(registry, configs.MetricsNamespace),
		publisher:     publisher,
	}
}

func (c *CompositionRoot) CreateValidationEngine() *validation.Engine {
	return validation.NewEngine(
		c.pincodes,
		pickuprepo.NewGormPickupLocationRegistry(c.gormDB),
		orderrepo.NewGormOrderRepository(c.gormDB, nil),
		time.Now,
		c.logger,
	)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(commands.CreateOrderDependencies{
		UoWFactory: f,
		Validator:  c.CreateValidationEngine(),
		Pickups:    pickuprepo.NewGormPickupLocationRegistry(c.gormDB),
		Zones:      zone.NewDirectoryZoneCalculator(c.pincodes, c.logger),
		Publisher:  c.publisher,
		Recorder:   c.intakeMetrics,
		Timeouts: commands.Timeouts{
			Zone:    c.configs.ZoneTimeout,
			Persist: c.configs.PersistTimeout,
		},
		Now:    time.Now,
		Logger: c.logger,
	})
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(jobs.Schedules{
		CacheStats: c.configs.CacheStatsSchedule,
		CachePurge: c.configs.CachePurgeSchedule,
	}, c.pincodes, c.cacheMetrics, c.logger)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	createHandler := c.CreateCreateOrderCommandHandler()
	return httpin.NewServer(&createHandler, c.CreateGetOrderQueryHandler())
}

// RouterConfig lists everything the echo router mounts. validator may be nil.
func (c *CompositionRoot) RouterConfig(validator *httpin.RequestValidator) httpin.RouterConfig {
	return httpin.RouterConfig{
		Server:    c.CreateHTTPServer(),
		Validator: validator,
		Metrics:   c.httpMetrics,
		Gatherer:  c.registry,
		Swagger:   true,
		Logger:    c.logger,
	}
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
