package cmd

import (
	"context"
	"io"

	"haulage/internal/adapters/out/events"
	"haulage/internal/adapters/out/evidence"
	"haulage/internal/adapters/out/postgres"
	"haulage/internal/core/application/usecases/commands"
	"haulage/internal/core/application/usecases/queries"
	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/ports"
	"haulage/internal/jobs"
	"haulage/internal/pkg/auth"
	"haulage/internal/pkg/errs"
	"haulage/internal/pkg/logger"
	"haulage/internal/pkg/metrics"

	httpadapter "haulage/internal/adapters/in/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type publisher interface {
	ports.EventPublisher
	io.Closer
}

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     zerolog.Logger

	registry  *prometheus.Registry
	metrics   *metrics.Metrics
	publisher publisher
	store     *evidence.FSStore
	tokens    *auth.Tokens
	engine    commands.Engine
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, log zerolog.Logger) (*CompositionRoot, error) {
	registry := prometheus.NewRegistry()
	m, err := metrics.New(registry)
	if err != nil {
		return nil, err
	}
	tokens, err := auth.NewTokens(auth.Config{Secret: cfg.JWTSecret, Issuer: cfg.JWTIssuer, TTL: cfg.JWTTTL})
	if err != nil {
		return nil, err
	}
	store, err := evidence.NewFSStore(cfg.EvidenceDir)
	if err != nil {
		return nil, err
	}

	var pub publisher
	if cfg.NATSURL != "" {
		pub, err = events.NewNATSPublisher(cfg.NATSURL, cfg.NATSSubjectPrefix, logger.Component(log, "nats_publisher"))
		if err != nil {
			return nil, err
		}
	} else {
		pub = events.NewLogPublisher(logger.Component(log, "event_log"))
	}

	return &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     log,
		registry:   registry,
		metrics:    m,
		publisher:  pub,
		store:      store,
		tokens:     tokens,
		engine: commands.Engine{
			Clock:     kernel.SystemClock(),
			Publisher: pub,
			Metrics:   m,
			Logger:    logger.Component(log, "dispatch_engine"),
		},
	}, nil
}

func (c *CompositionRoot) Tokens() *auth.Tokens { return c.tokens }

func (c *CompositionRoot) Metrics() *metrics.Metrics { return c.metrics }

func (c *CompositionRoot) Registry() *prometheus.Registry { return c.registry }

// Close releases the event connection. The database is owned by the caller.
func (c *CompositionRoot) Close() error {
	return c.publisher.Close()
}

func (c *CompositionRoot) uow() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) truckUoW() commands.TruckUoWFactory {
	return FuncTruckUoWFactory(func() commands.TruckUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) customerUoW() commands.CustomerUoWFactory {
	return FuncCustomerUoWFactory(func() commands.CustomerUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) materialUoW() commands.MaterialUoWFactory {
	return FuncMaterialUoWFactory(func() commands.MaterialUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) userUoW() commands.UserUoWFactory {
	return FuncUserUoWFactory(func() commands.UserUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) mediaUoW() commands.MediaUoWFactory {
	return FuncMediaUoWFactory(func() commands.MediaUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) exceptionUoW() commands.ExceptionUoWFactory {
	return FuncExceptionUoWFactory(func() commands.ExceptionUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) evidenceRecorder() *commands.EvidenceRecorder {
	return commands.NewEvidenceRecorder(c.store, c.mediaUoW(), c.engine, c.cfg.UploadConcurrency)
}

func (c *CompositionRoot) CreateCreateTruckCommandHandler() commands.CreateTruckCommandHandler {
	return commands.NewCreateTruckCommandHandler(c.truckUoW())
}

func (c *CompositionRoot) CreateSaveCustomerCommandHandler() commands.SaveCustomerCommandHandler {
	return commands.NewSaveCustomerCommandHandler(c.customerUoW())
}

func (c *CompositionRoot) CreateCreateMaterialCommandHandler() commands.CreateMaterialCommandHandler {
	return commands.NewCreateMaterialCommandHandler(c.materialUoW())
}

func (c *CompositionRoot) CreateCreateUserCommandHandler() commands.CreateUserCommandHandler {
	return commands.NewCreateUserCommandHandler(c.userUoW())
}

func (c *CompositionRoot) CreateListUsersQueryHandler() queries.ListUsersQueryHandler {
	return queries.NewListUsersQueryHandler(c.gormDB)
}

// Handlers builds every use case the HTTP adapter serves.
func (c *CompositionRoot) Handlers() httpadapter.Handlers {
	recorder := c.evidenceRecorder()
	return httpadapter.Handlers{
		CreateTruck:       c.CreateCreateTruckCommandHandler(),
		UpdateTruck:       commands.NewUpdateTruckCommandHandler(c.truckUoW()),
		ChangeTruckStatus: commands.NewChangeTruckStatusCommandHandler(c.truckUoW()),
		SaveCustomer:      c.CreateSaveCustomerCommandHandler(),
		CreateUser:        c.CreateCreateUserCommandHandler(),

		CreateMaterial:      c.CreateCreateMaterialCommandHandler(),
		AdjustMaterialStock: commands.NewAdjustMaterialStockCommandHandler(c.materialUoW(), c.engine),

		CreateOrder:       commands.NewCreateOrderCommandHandler(c.uow(), c.engine),
		ChangeOrderStatus: commands.NewChangeOrderStatusCommandHandler(c.uow()),
		DeleteOrder:       commands.NewDeleteOrderCommandHandler(c.uow(), c.engine),

		CreateDispatch:          commands.NewCreateDispatchCommandHandler(c.uow(), c.engine),
		DeleteDispatch:          commands.NewDeleteDispatchCommandHandler(c.uow(), c.engine),
		ApplyDispatchTransition: commands.NewApplyDispatchTransitionCommandHandler(c.uow(), recorder, c.engine),
		ForceDispatchStatus:     commands.NewForceDispatchStatusCommandHandler(c.uow(), c.engine),
		CancelDispatch:          commands.NewCancelDispatchCommandHandler(c.uow(), c.engine),
		AssignOperator:          commands.NewAssignOperatorCommandHandler(c.uow()),
		UploadDispatchMedia:     commands.NewUploadDispatchMediaCommandHandler(c.mediaUoW(), recorder),
		OpenException:           commands.NewOpenExceptionCommandHandler(c.exceptionUoW()),
		ResolveException:        commands.NewResolveExceptionCommandHandler(c.exceptionUoW(), c.engine.Clock),

		ListTrucks:        queries.NewListTrucksQueryHandler(c.gormDB),
		GetTruck:          queries.NewGetTruckQueryHandler(c.gormDB),
		ListCustomers:     queries.NewListCustomersQueryHandler(c.gormDB),
		ListMaterials:     queries.NewListMaterialsQueryHandler(c.gormDB),
		ListOrders:        queries.NewListOrdersQueryHandler(c.gormDB),
		GetOrder:          queries.NewGetOrderQueryHandler(c.gormDB),
		ListDispatches:    queries.NewListDispatchesQueryHandler(c.gormDB),
		GetDispatch:       queries.NewGetDispatchQueryHandler(c.gormDB),
		ListDispatchMedia: queries.NewListDispatchMediaQueryHandler(c.gormDB),
		ListExceptions:    queries.NewListExceptionsQueryHandler(c.gormDB),
		ListUsers:         c.CreateListUsersQueryHandler(),
	}
}

// RouterConfig wires the HTTP server over Handlers. The caller adds the
// metrics endpoint.
func (c *CompositionRoot) RouterConfig() httpadapter.RouterConfig {
	return httpadapter.RouterConfig{
		Server:  httpadapter.NewServer(c.Handlers(), c.cfg.LowStockThreshold),
		Tokens:  c.tokens,
		Metrics: c.metrics,
		Logger:  logger.Component(c.logger, "http"),
	}
}

func (c *CompositionRoot) JobManager() *jobs.JobManager {
	watch := jobs.NewLowStockWatchJob(
		queries.NewListMaterialsQueryHandler(c.gormDB),
		c.metrics,
		c.cfg.LowStockThreshold,
		c.cfg.LowStockSchedule,
		c.logger,
	)
	return jobs.NewJobManager(c.logger, watch)
}

// FindUser looks a user up by username through the directory query.
func (c *CompositionRoot) FindUser(ctx context.Context, username string) (queries.UserView, error) {
	q, err := queries.NewListUsersQuery(nil)
	if err != nil {
		return queries.UserView{}, err
	}
	users, err := c.CreateListUsersQueryHandler().Handle(ctx, q)
	if err != nil {
		return queries.UserView{}, err
	}
	for _, u := range users {
		if u.Username == username {
			return u, nil
		}
	}
	return queries.UserView{}, errs.NewObjectNotFoundError("user", username)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncTruckUoWFactory func() commands.TruckUoW

func (f FuncTruckUoWFactory) Create() commands.TruckUoW {
	return f()
}

type FuncCustomerUoWFactory func() commands.CustomerUoW

func (f FuncCustomerUoWFactory) Create() commands.CustomerUoW {
	return f()
}

type FuncMaterialUoWFactory func() commands.MaterialUoW

func (f FuncMaterialUoWFactory) Create() commands.MaterialUoW {
	return f()
}

type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}

type FuncMediaUoWFactory func() commands.MediaUoW

func (f FuncMediaUoWFactory) Create() commands.MediaUoW {
	return f()
}

type FuncExceptionUoWFactory func() commands.ExceptionUoW

func (f FuncExceptionUoWFactory) Create() commands.ExceptionUoW {
	return f()
}
