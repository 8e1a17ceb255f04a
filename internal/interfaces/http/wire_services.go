package http

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	sfUsecases "github.com/hotline-inc/hotline/internal/application/savedfield/usecases"
	ticketdto "github.com/hotline-inc/hotline/internal/application/ticket/dto"
	"github.com/hotline-inc/hotline/internal/domain/shared/events"
	"github.com/hotline-inc/hotline/internal/domain/ticket"
	"github.com/hotline-inc/hotline/internal/infrastructure/cache"
	"github.com/hotline-inc/hotline/internal/infrastructure/config"
	"github.com/hotline-inc/hotline/internal/infrastructure/pubsub"
	"github.com/hotline-inc/hotline/internal/infrastructure/scheduler"
	"github.com/hotline-inc/hotline/internal/infrastructure/storage"
	"github.com/hotline-inc/hotline/internal/shared/biztime"
	"github.com/hotline-inc/hotline/internal/shared/db"
	"github.com/hotline-inc/hotline/internal/shared/goroutine"
	"github.com/hotline-inc/hotline/internal/shared/logger"
	"github.com/hotline-inc/hotline/internal/shared/services/markdown"
)

// relayedEventTypes are forwarded to other instances when Redis is enabled.
var relayedEventTypes = []string{
	ticket.EventTypeTicketCreated,
	ticket.EventTypeTicketEdited,
	ticket.EventTypeTicketArchived,
	ticket.EventTypeTicketDeleted,
	ticket.EventTypeMessageAppended,
}

// ============================================================
// Section 1: Infrastructure - clock, Redis, storage, repositories
// ============================================================

func (c *Container) initInfrastructure(ctx context.Context) error {
	cfg := c.cfg
	log := c.log

	normalizer, err := NewNormalizer(cfg)
	if err != nil {
		return err
	}
	c.normalizer = normalizer
	log.Infow("business time configured", "timezone", normalizer.Location().String(), "conversion", string(normalizer.Mode()))

	if cfg.Redis.Enabled {
		client, err := InitRedis(ctx, cfg, log)
		if err != nil {
			return err
		}
		c.redis = client
		c.savedFieldCache = cache.NewRedisSavedFieldCache(client, cache.DefaultSavedFieldTTL, log)
	} else {
		c.savedFieldCache = cache.NewLocalSavedFieldCache(cache.DefaultSavedFieldTTL)
	}

	images, err := storage.Open(ctx, cfg.Storage, log)
	if err != nil {
		return err
	}
	c.images = images

	c.txMgr = db.NewTransactionManager(c.db)
	c.repos = newRepositories(c.db)
	c.dispatcher = events.NewSyncEventDispatcher(log)
	c.presenter = ticketdto.NewPresenter(normalizer, markdown.NewRenderer(), log)
	return nil
}

// NewNormalizer builds the business-time normalizer from the time section.
func NewNormalizer(cfg *config.Config) (*biztime.Normalizer, error) {
	mode, err := biztime.ParseConversionMode(cfg.Time.Conversion)
	if err != nil {
		return nil, err
	}
	n, err := biztime.NewNormalizer(cfg.Time.Timezone, mode, biztime.SystemClock{})
	if err != nil {
		return nil, fmt.Errorf("invalid time configuration: %w", err)
	}
	return n, nil
}

// InitRedis creates the Redis client and checks the connection.
func InitRedis(ctx context.Context, cfg *config.Config, log logger.Interface) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Infow("Redis connection established successfully", "addr", cfg.Redis.GetAddr())
	return client, nil
}

// ============================================================
// Section 3: Event subscribers
// ============================================================

// initEvents subscribes the saved-field memoizer and, with Redis, the
// cross-instance relay to the dispatcher.
func (c *Container) initEvents() error {
	memoizer := sfUsecases.NewMemoizeTicketFieldsHandler(c.ucs.rememberUC, c.log)
	for _, eventType := range memoizer.EventTypes() {
		if err := c.dispatcher.Subscribe(eventType, memoizer); err != nil {
			return fmt.Errorf("failed to subscribe saved-field memoizer: %w", err)
		}
	}

	if c.redis == nil {
		return nil
	}

	c.relay = pubsub.NewRedisTicketEventRelay(c.redis, c.log)
	for _, eventType := range relayedEventTypes {
		if err := c.dispatcher.Subscribe(eventType, c.relay); err != nil {
			return fmt.Errorf("failed to subscribe ticket event relay: %w", err)
		}
	}
	return nil
}

func (c *Container) startRelaySubscriber(ctx context.Context) {
	if c.relay == nil {
		return
	}

	c.relayMu.Lock()
	defer c.relayMu.Unlock()
	if c.relayCancel != nil {
		return
	}

	subCtx, cancel := context.WithCancel(ctx)
	c.relayCancel = cancel
	c.relayDone = goroutine.SafeGo(c.log, "ticket-event-subscriber", func() {
		if err := c.relay.Subscribe(subCtx, c.onRemoteTicketEvent); err != nil && subCtx.Err() == nil {
			c.log.Errorw("ticket event subscriber stopped", "error", err)
		}
	})
}

// onRemoteTicketEvent reacts to ticket changes made by other instances.
// Another instance may have remembered new saved fields, so the listing
// cache is dropped.
func (c *Container) onRemoteTicketEvent(ctx context.Context, msg pubsub.TicketEventMessage) {
	c.log.Debugw("received ticket event from peer",
		"type", msg.Type,
		"ticket_id", msg.TicketID,
		"origin", msg.Origin,
	)

	switch msg.Type {
	case ticket.EventTypeTicketCreated, ticket.EventTypeTicketEdited:
		if err := c.savedFieldCache.Invalidate(ctx); err != nil {
			c.log.Warnw("failed to invalidate saved field cache", "error", err)
		}
	}
}

// ============================================================
// Section 5: Archive sweeper
// ============================================================

func (c *Container) initScheduler() error {
	if !c.cfg.Archive.Enabled {
		c.log.Infow("archive sweeper disabled")
		return nil
	}

	m, err := scheduler.New(c.normalizer.Location(), c.log)
	if err != nil {
		return err
	}
	if err := m.RegisterArchiveJob(c.ucs.archiveSweepUC, c.cfg.Archive); err != nil {
		return err
	}
	c.cron = m
	return nil
}
