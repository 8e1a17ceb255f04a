package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/hotline-inc/hotline/internal/domain/ticket"
	"github.com/hotline-inc/hotline/internal/infrastructure/persistence/mappers"
	"github.com/hotline-inc/hotline/internal/infrastructure/persistence/models"
	"github.com/hotline-inc/hotline/internal/shared/biztime"
	db "github.com/hotline-inc/hotline/internal/shared/db"
)

const (
	// sidChunkSize bounds the number of ids bound into a single IN clause.
	sidChunkSize = 500
	// messageLoadWorkers bounds concurrent message queries for ticket lists.
	messageLoadWorkers = 4
)

// editableTicketColumns are written by Update. id, sid, created_at and
// created_by are set once at insert; the archive columns belong to
// MarkArchived and ArchiveCreatedBefore so an edit never reverts an archive.
var editableTicketColumns = []string{
	"caller",
	"reason",
	"tags",
	"status",
	"is_glpi",
	"is_blocking",
	"last_modified_by",
	"last_modified_at",
}

type TicketRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *TicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	tx := db.FromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create ticket: %w", err)
	}
	return nil
}

func (r *TicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	tx := db.FromContext(ctx, r.db)

	result := tx.
		Model(&models.TicketModel{}).
		Where("sid = ?", t.ID()).
		Select(editableTicketColumns).
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update ticket: %w", result.Error)
	}

	// Note: RowsAffected may be 0 on MySQL when updated values are identical
	// to existing values, so it is not used as an existence check.

	return nil
}

// MarkArchived writes the archive state of t in one statement, leaving the
// editable fields alone.
func (r *TicketRepository) MarkArchived(ctx context.Context, t *ticket.Ticket) error {
	result := db.FromContext(ctx, r.db).
		Model(&models.TicketModel{}).
		Where("sid = ?", t.ID()).
		Updates(map[string]any{
			"is_archived": true,
			"archived_at": t.ArchivedAt().UnixMilli(),
			"archived_by": t.ArchivedBy(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to archive ticket: %w", result.Error)
	}
	return nil
}

func (r *TicketRepository) GetByID(ctx context.Context, id string) (*ticket.Ticket, error) {
	var model models.TicketModel
	tx := db.FromContext(ctx, r.db)

	if err := tx.Where("sid = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("ticket %s: %w", id, ticket.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}

	t, err := r.mapper.ToDomain(&model)
	if err != nil {
		return nil, err
	}

	messages, err := r.ListMessages(ctx, id)
	if err != nil {
		return nil, err
	}
	t.AttachMessages(messages)

	return t, nil
}

func (r *TicketRepository) Delete(ctx context.Context, id string) (bool, error) {
	tx := db.FromContext(ctx, r.db)
	result := tx.Where("sid = ?", id).Delete(&models.TicketModel{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete ticket: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *TicketRepository) List(ctx context.Context, filter ticket.Filter) ([]*ticket.Ticket, error) {
	tx := db.FromContext(ctx, r.db)
	query := tx.Model(&models.TicketModel{}).Scopes(db.ArchiveState(filter.Archived))

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + escapeLike(strings.ToLower(search)) + "%"
		query = query.Where(
			tx.Where("LOWER(caller) LIKE ? ESCAPE '!'", pattern).
				Or("LOWER(reason) LIKE ? ESCAPE '!'", pattern).
				Or(datatypes.JSONArrayQuery("tags").Contains(search)),
		)
	}
	query = query.Scopes(db.CreatedWithin(optionalMillis(filter.CreatedFrom), optionalMillis(filter.CreatedTo)))

	var ticketModels []models.TicketModel
	if err := query.Order("created_at DESC").Order("id DESC").Find(&ticketModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}

	tickets, err := r.toDomainList(ticketModels)
	if err != nil {
		return nil, err
	}

	if filter.WithMessages {
		if err := r.attachMessages(ctx, tickets); err != nil {
			return nil, err
		}
	}

	return tickets, nil
}

func (r *TicketRepository) ArchiveCreatedBefore(
	ctx context.Context,
	cutoff biztime.Instant,
	actor string,
	now biztime.Instant,
) ([]string, error) {
	var archived []string

	err := db.FromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		var sids []string
		if err := tx.Model(&models.TicketModel{}).
			Where("is_archived = ? AND created_at < ?", false, cutoff.UnixMilli()).
			Order("id ASC").
			Pluck("sid", &sids).Error; err != nil {
			return fmt.Errorf("failed to select expired tickets: %w", err)
		}

		stamp := now.UnixMilli()
		for _, chunk := range chunkStrings(sids, sidChunkSize) {
			result := tx.Model(&models.TicketModel{}).
				Where("sid IN ? AND is_archived = ?", chunk, false).
				Updates(map[string]any{
					"is_archived": true,
					"archived_at": stamp,
					"archived_by": actor,
				})
			if result.Error != nil {
				return fmt.Errorf("failed to archive tickets: %w", result.Error)
			}
			if result.RowsAffected == 0 {
				continue
			}

			// A ticket archived by hand after the select keeps its own stamp
			// and is not reported.
			var changed []string
			if err := tx.Model(&models.TicketModel{}).
				Where("sid IN ? AND archived_at = ? AND archived_by = ?", chunk, stamp, actor).
				Order("id ASC").
				Pluck("sid", &changed).Error; err != nil {
				return fmt.Errorf("failed to read archived tickets: %w", err)
			}
			archived = append(archived, changed...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return archived, nil
}

func (r *TicketRepository) CreatedBetween(ctx context.Context, from, to biztime.Instant) ([]*ticket.Ticket, error) {
	var ticketModels []models.TicketModel
	tx := db.FromContext(ctx, r.db)

	if err := tx.
		Scopes(db.CreatedWithin(from.UnixMilli(), to.UnixMilli())).
		Order("created_at ASC").
		Find(&ticketModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list tickets by creation date: %w", err)
	}

	return r.toDomainList(ticketModels)
}

func (r *TicketRepository) CreateMessage(ctx context.Context, m *ticket.Message) error {
	model := r.mapper.MessageToModel(m)
	tx := db.FromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

func (r *TicketRepository) ListMessages(ctx context.Context, ticketID string) ([]*ticket.Message, error) {
	var messageModels []models.MessageModel
	tx := db.FromContext(ctx, r.db)

	if err := tx.
		Where("ticket_sid = ?", ticketID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&messageModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	messages := make([]*ticket.Message, 0, len(messageModels))
	for i := range messageModels {
		m, err := r.mapper.MessageToDomain(&messageModels[i])
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, nil
}

func (r *TicketRepository) DeleteMessages(ctx context.Context, ticketID string) (int64, error) {
	tx := db.FromContext(ctx, r.db)
	result := tx.Where("ticket_sid = ?", ticketID).Delete(&models.MessageModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete messages: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *TicketRepository) toDomainList(ticketModels []models.TicketModel) ([]*ticket.Ticket, error) {
	tickets := make([]*ticket.Ticket, 0, len(ticketModels))
	for i := range ticketModels {
		t, err := r.mapper.ToDomain(&ticketModels[i])
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, nil
}

// attachMessages loads messages for all tickets with one query per chunk of
// ticket ids, running chunks concurrently.
func (r *TicketRepository) attachMessages(ctx context.Context, tickets []*ticket.Ticket) error {
	if len(tickets) == 0 {
		return nil
	}

	sids := make([]string, len(tickets))
	for i, t := range tickets {
		sids[i] = t.ID()
	}

	var (
		mu     sync.Mutex
		byTick = make(map[string][]models.MessageModel, len(tickets))
	)

	g, gctx := errgroup.WithContext(ctx)
	if db.InTransaction(ctx) {
		// A transaction holds a single connection.
		g.SetLimit(1)
	} else {
		g.SetLimit(messageLoadWorkers)
	}

	for _, chunk := range chunkStrings(sids, sidChunkSize) {
		g.Go(func() error {
			var rows []models.MessageModel
			if err := db.FromContext(gctx, r.db).
				Where("ticket_sid IN ?", chunk).
				Order("created_at ASC").
				Order("id ASC").
				Find(&rows).Error; err != nil {
				return fmt.Errorf("failed to load messages: %w", err)
			}

			mu.Lock()
			defer mu.Unlock()
			for _, row := range rows {
				byTick[row.TicketSID] = append(byTick[row.TicketSID], row)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	for _, t := range tickets {
		rows := byTick[t.ID()]
		messages := make([]*ticket.Message, 0, len(rows))
		for i := range rows {
			m, err := r.mapper.MessageToDomain(&rows[i])
			if err != nil {
				return err
			}
			messages = append(messages, m)
		}
		t.AttachMessages(messages)
	}

	return nil
}

func optionalMillis(i biztime.Instant) int64 {
	if i.IsZero() {
		return 0
	}
	return i.UnixMilli()
}

// escapeLike escapes LIKE wildcards using '!' as the escape character.
func escapeLike(s string) string {
	return strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(s)
}

func chunkStrings(items []string, size int) [][]string {
	var chunks [][]string
	for size < len(items) {
		items, chunks = items[size:], append(chunks, items[:size])
	}
	if len(items) > 0 {
		chunks = append(chunks, items)
	}
	return chunks
}
