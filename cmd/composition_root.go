package cmd

import (
	"fmt"
	"log/slog"

	"shopfloor/internal/adapters/in/http"
	"shopfloor/internal/adapters/out/natspub"
	"shopfloor/internal/adapters/out/postgres"
	"shopfloor/internal/core/application/usecases/commands"
	"shopfloor/internal/core/application/usecases/queries"
	"shopfloor/internal/core/domain/model/station"
	"shopfloor/internal/core/domain/services"
	"shopfloor/internal/core/ports"
	"shopfloor/internal/jobs"
	"shopfloor/internal/pkg/keymutex"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	pipeline   station.Pipeline
	aggregator services.OrderStatusAggregator
	partLocks  *keymutex.KeyMutex
	publisher  ports.MessagePublisher
	topic      string
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) (CompositionRoot, error) {
	defs, err := config.PipelineDefinitions()
	if err != nil {
		return CompositionRoot{}, err
	}

	pipeline, err := station.NewPipeline(defs)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("invalid pipeline configuration: %w", err)
	}

	aggregator, err := services.NewOrderStatusAggregator(pipeline)
	if err != nil {
		return CompositionRoot{}, err
	}

	var publisher ports.MessagePublisher
	if config.NatsURL != "" {
		natsPublisher, err := natspub.NewPublisher(config.NatsURL)
		if err != nil {
			return CompositionRoot{}, err
		}
		publisher = natsPublisher
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		pipeline:   pipeline,
		aggregator: aggregator,
		partLocks:  keymutex.New(),
		publisher:  publisher,
		topic:      config.NatsOrderStatusTopic,
	}, nil
}

func (c *CompositionRoot) CreateRecordScanCommandHandler() commands.RecordScanCommandHandler {
	var f commands.LedgerUoWFactory = FuncLedgerUoWFactory(func() commands.LedgerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecordScanCommandHandler(f, c.pipeline, c.aggregator, c.partLocks, c.publisher, c.topic)
}

func (c *CompositionRoot) CreateCreateBatchCommandHandler() commands.CreateBatchCommandHandler {
	return commands.NewCreateBatchCommandHandler(c.createUoWFactory())
}

func (c *CompositionRoot) CreateStartBatchCommandHandler() commands.StartBatchCommandHandler {
	return commands.NewStartBatchCommandHandler(c.createUoWFactory(), c.pipeline, c.partLocks)
}

func (c *CompositionRoot) CreatePauseBatchCommandHandler() commands.PauseBatchCommandHandler {
	return commands.NewPauseBatchCommandHandler(c.createBatchUoWFactory())
}

func (c *CompositionRoot) CreateCompleteBatchCommandHandler() commands.CompleteBatchCommandHandler {
	return commands.NewCompleteBatchCommandHandler(c.createBatchUoWFactory())
}

func (c *CompositionRoot) CreateDeleteBatchCommandHandler() commands.DeleteBatchCommandHandler {
	return commands.NewDeleteBatchCommandHandler(c.createBatchUoWFactory())
}

func (c *CompositionRoot) CreateCheckBatchCompletionCommandHandler() commands.CheckBatchCompletionCommandHandler {
	return commands.NewCheckBatchCompletionCommandHandler(c.createUoWFactory(), c.aggregator)
}

func (c *CompositionRoot) CreateGetPartTrackQueryHandler() queries.GetPartTrackQueryHandler {
	return queries.NewGetPartTrackQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderStatusQueryHandler() queries.GetOrderStatusQueryHandler {
	return queries.NewGetOrderStatusQueryHandler(c.gormDB, c.aggregator)
}

func (c *CompositionRoot) CreateGetBatchBoardQueryHandler() queries.GetBatchBoardQueryHandler {
	return queries.NewGetBatchBoardQueryHandler(c.gormDB, c.aggregator)
}

func (c *CompositionRoot) CreateGetUnbatchedOrdersQueryHandler() queries.GetUnbatchedOrdersQueryHandler {
	return queries.NewGetUnbatchedOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *http.Server {
	return http.NewServer(
		c.CreateRecordScanCommandHandler(),
		c.CreateCreateBatchCommandHandler(),
		c.CreateStartBatchCommandHandler(),
		c.CreatePauseBatchCommandHandler(),
		c.CreateCompleteBatchCommandHandler(),
		c.CreateDeleteBatchCommandHandler(),
		c.CreateCheckBatchCompletionCommandHandler(),
		c.CreateGetPartTrackQueryHandler(),
		c.CreateGetOrderStatusQueryHandler(),
		c.CreateGetBatchBoardQueryHandler(),
		c.CreateGetUnbatchedOrdersQueryHandler(),
	)
}

func (c *CompositionRoot) CreateJobManager(logger *slog.Logger) *jobs.JobManager {
	return jobs.NewJobManager(c.CreateCheckBatchCompletionCommandHandler(), logger)
}

// Close releases external connections held by the root.
func (c *CompositionRoot) Close() {
	if natsPublisher, ok := c.publisher.(*natspub.Publisher); ok {
		natsPublisher.Close()
	}
}

func (c *CompositionRoot) createUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) createBatchUoWFactory() commands.BatchUoWFactory {
	return FuncBatchUoWFactory(func() commands.BatchUoW {
		return c.uowFactory.Create()
	})
}

type FuncLedgerUoWFactory func() commands.LedgerUoW

func (f FuncLedgerUoWFactory) Create() commands.LedgerUoW {
	return f()
}

type FuncBatchUoWFactory func() commands.BatchUoW

func (f FuncBatchUoWFactory) Create() commands.BatchUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
