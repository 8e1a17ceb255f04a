package http

import (
	"context"
	"fmt"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	sfUsecases "github.com/hotline-inc/hotline/internal/application/savedfield/usecases"
	ticketdto "github.com/hotline-inc/hotline/internal/application/ticket/dto"
	"github.com/hotline-inc/hotline/internal/domain/shared/events"
	"github.com/hotline-inc/hotline/internal/infrastructure/config"
	"github.com/hotline-inc/hotline/internal/infrastructure/pubsub"
	"github.com/hotline-inc/hotline/internal/infrastructure/scheduler"
	"github.com/hotline-inc/hotline/internal/infrastructure/storage"
	"github.com/hotline-inc/hotline/internal/interfaces/http/middleware"
	"github.com/hotline-inc/hotline/internal/shared/biztime"
	"github.com/hotline-inc/hotline/internal/shared/db"
	"github.com/hotline-inc/hotline/internal/shared/logger"
)

// Container holds all infrastructure components, repositories, use cases,
// handlers and background services. It wires everything together and
// provides Shutdown() for graceful termination.
type Container struct {
	// Core infrastructure
	engine     *gin.Engine
	db         *gorm.DB
	cfg        *config.Config
	log        logger.Interface
	redis      *redis.Client
	normalizer *biztime.Normalizer
	txMgr      *db.TransactionManager
	images     *storage.ImageStore
	dispatcher *events.SyncEventDispatcher
	presenter  *ticketdto.Presenter

	savedFieldCache sfUsecases.Cache

	// Repositories
	repos *repositories

	// Use cases
	ucs *allUseCases

	// Handlers
	hdlrs *allHandlers

	// Middlewares
	actorMiddleware *middleware.ActorMiddleware
	rateLimiter     *middleware.RateLimiter

	// Background services
	cron        *scheduler.Scheduler
	relay       *pubsub.RedisTicketEventRelay
	relayCancel context.CancelFunc
	relayDone   <-chan struct{}
	relayMu     sync.Mutex
}

// NewContainer creates a Container with all dependencies wired together.
func NewContainer(ctx context.Context, gdb *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     gdb,
		cfg:    cfg,
		log:    log,
	}

	// Section 1: Infrastructure - clock, Redis, storage, repositories
	if err := c.initInfrastructure(ctx); err != nil {
		return nil, err
	}

	// Section 2: Use cases
	c.ucs = newUseCases(c)

	// Section 3: Event subscribers - saved-field memoizer, Redis relay
	if err := c.initEvents(); err != nil {
		c.Shutdown()
		return nil, err
	}

	// Section 4: Handlers and middlewares
	c.initHandlers()

	// Section 5: Archive sweeper
	if err := c.initScheduler(); err != nil {
		c.Shutdown()
		return nil, fmt.Errorf("failed to initialize scheduler: %w", err)
	}

	return c, nil
}

// Engine returns the Gin engine.
func (c *Container) Engine() *gin.Engine {
	return c.engine
}

// Normalizer returns the business-time normalizer.
func (c *Container) Normalizer() *biztime.Normalizer {
	return c.normalizer
}

// ArchiveSweeper returns the archival sweep job, also run by the scheduler.
func (c *Container) ArchiveSweeper() scheduler.BatchJob {
	return c.ucs.archiveSweepUC
}

// HasScheduler reports whether the archive sweeper is scheduled.
func (c *Container) HasScheduler() bool {
	return c.cron != nil
}

// Start launches the scheduler and the cross-instance event subscriber.
func (c *Container) Start(ctx context.Context) {
	if c.cron != nil {
		c.cron.Start()
	}
	c.startRelaySubscriber(ctx)
}

// Shutdown stops background services and releases connections. The
// database is owned by the caller.
func (c *Container) Shutdown() {
	if c.cron != nil {
		if err := c.cron.Stop(); err != nil {
			c.log.Errorw("failed to stop scheduler", "error", err)
		}
	}

	c.relayMu.Lock()
	if c.relayCancel != nil {
		c.relayCancel()
		<-c.relayDone
		c.relayCancel = nil
	}
	c.relayMu.Unlock()

	if c.images != nil {
		if err := c.images.Close(); err != nil {
			c.log.Warnw("failed to close image storage", "error", err)
		}
	}

	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close redis client", "error", err)
		}
	}
}
