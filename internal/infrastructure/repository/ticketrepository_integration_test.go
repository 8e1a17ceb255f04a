package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hotline-inc/hotline/internal/domain/ticket"
	vo "github.com/hotline-inc/hotline/internal/domain/ticket/valueobjects"
	"github.com/hotline-inc/hotline/internal/infrastructure/migration"
	"github.com/hotline-inc/hotline/internal/shared/biztime"
	db "github.com/hotline-inc/hotline/internal/shared/db"
	"github.com/hotline-inc/hotline/internal/shared/logger"
)

var baseTime = biztime.NewInstant(time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC))

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	m, err := migration.NewMigrator(gdb, "sqlite", logger.NewNop())
	require.NoError(t, err)
	require.NoError(t, m.Up(context.Background()))

	return gdb
}

var ticketSeq int

func createTestTicket(t *testing.T, repo *TicketRepository, d ticket.Details, createdAt biztime.Instant) *ticket.Ticket {
	t.Helper()
	ticketSeq++
	tk, err := ticket.NewTicket(fmt.Sprintf("tk_test%06d", ticketSeq), d, "alice", createdAt)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), tk))
	return tk
}

func appendTestMessage(t *testing.T, repo *TicketRepository, ticketID, content string, at biztime.Instant) *ticket.Message {
	t.Helper()
	ticketSeq++
	m, err := ticket.NewMessage(fmt.Sprintf("msg_test%06d", ticketSeq), ticketID, content, vo.MessageTypeText, "alice", at)
	require.NoError(t, err)
	require.NoError(t, repo.CreateMessage(context.Background(), m))
	return m
}

func TestTicketRepository_CreateAndGet(t *testing.T) {
	repo := NewTicketRepository(setupTestDB(t))
	ctx := context.Background()

	t.Run("round trip keeps every field", func(t *testing.T) {
		tk := createTestTicket(t, repo, ticket.Details{
			Caller:     "Mme Dupont",
			Reason:     "Imprimante HS",
			Tags:       []string{"printer", "urgent"},
			IsBlocking: true,
		}, baseTime)

		found, err := repo.GetByID(ctx, tk.ID())
		require.NoError(t, err)

		assert.Equal(t, "Mme Dupont", found.Caller())
		assert.Equal(t, "Imprimante HS", found.Reason())
		assert.Equal(t, []string{"printer", "urgent"}, found.Tags())
		assert.Equal(t, vo.StatusOpen, found.Status())
		assert.True(t, found.IsBlocking())
		assert.False(t, found.IsArchived())
		assert.Equal(t, "alice", found.CreatedBy())
		assert.True(t, baseTime.Equal(found.CreatedAt()))
		assert.True(t, found.LastModifiedAt().IsZero())
		assert.True(t, found.ArchivedAt().IsZero())
		assert.Empty(t, found.Messages())
	})

	t.Run("unknown id wraps ErrNotFound", func(t *testing.T) {
		_, err := repo.GetByID(ctx, "tk_missing")
		assert.ErrorIs(t, err, ticket.ErrNotFound)
	})

	t.Run("duplicate id fails", func(t *testing.T) {
		tk := createTestTicket(t, repo, ticket.Details{Caller: "A", Reason: "B"}, baseTime)
		dup, err := ticket.NewTicket(tk.ID(), ticket.Details{Caller: "C", Reason: "D"}, "bob", baseTime)
		require.NoError(t, err)
		assert.Error(t, repo.Create(ctx, dup))
	})
}

func TestTicketRepository_Update(t *testing.T) {
	repo := NewTicketRepository(setupTestDB(t))
	ctx := context.Background()

	tk := createTestTicket(t, repo, ticket.Details{Caller: "Bob", Reason: "VPN", Tags: []string{"network"}}, baseTime)

	editedAt := baseTime.Add(time.Hour)
	require.NoError(t, tk.Edit(ticket.Details{Caller: "Bob", IsGLPI: true, Status: vo.StatusClosed}, "carol", editedAt))
	require.NoError(t, repo.Update(ctx, tk))

	found, err := repo.GetByID(ctx, tk.ID())
	require.NoError(t, err)
	assert.True(t, found.IsGLPI())
	assert.Empty(t, found.Reason())
	assert.Empty(t, found.Tags())
	assert.Equal(t, vo.StatusClosed, found.Status())
	assert.Equal(t, "carol", found.LastModifiedBy())
	assert.True(t, editedAt.Equal(found.LastModifiedAt()))
	assert.True(t, baseTime.Equal(found.CreatedAt()), "createdAt must not change")
	assert.Equal(t, "alice", found.CreatedBy())
}

func TestTicketRepository_ListActiveAndArchived(t *testing.T) {
	repo := NewTicketRepository(setupTestDB(t))
	ctx := context.Background()

	older := createTestTicket(t, repo, ticket.Details{Caller: "Old", Reason: "r"}, baseTime)
	newer := createTestTicket(t, repo, ticket.Details{Caller: "New", Reason: "r"}, baseTime.Add(time.Minute))
	archived := createTestTicket(t, repo, ticket.Details{Caller: "Gone", Reason: "r"}, baseTime.Add(2*time.Minute))

	archived.Archive("alice", baseTime.Add(time.Hour))
	require.NoError(t, repo.MarkArchived(ctx, archived))

	appendTestMessage(t, repo, older.ID(), "first", baseTime.Add(time.Second))
	appendTestMessage(t, repo, older.ID(), "second", baseTime.Add(2*time.Second))

	active, err := repo.List(ctx, ticket.Filter{WithMessages: true})
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, newer.ID(), active[0].ID())
	assert.Equal(t, older.ID(), active[1].ID())
	assert.Empty(t, active[0].Messages())
	require.Len(t, active[1].Messages(), 2)
	assert.Equal(t, "first", active[1].Messages()[0].Content())

	arch, err := repo.List(ctx, ticket.Filter{Archived: true})
	require.NoError(t, err)
	require.Len(t, arch, 1)
	assert.Equal(t, archived.ID(), arch[0].ID())
	assert.Equal(t, "alice", arch[0].ArchivedBy())
}

func TestTicketRepository_ListArchivedFilters(t *testing.T) {
	repo := NewTicketRepository(setupTestDB(t))
	ctx := context.Background()

	archive := func(tk *ticket.Ticket) {
		tk.Archive("alice", baseTime.Add(48*time.Hour))
		require.NoError(t, repo.MarkArchived(ctx, tk))
	}

	printer := createTestTicket(t, repo, ticket.Details{Caller: "Jean", Reason: "Imprimante bloquée", Tags: []string{"printer"}}, baseTime)
	vpn := createTestTicket(t, repo, ticket.Details{Caller: "PRINTER room", Reason: "VPN", Tags: []string{"network"}}, baseTime.Add(24*time.Hour))
	tagged := createTestTicket(t, repo, ticket.Details{Caller: "Paul", Reason: "Écran", Tags: []string{"Imprimante"}}, baseTime.Add(-24*time.Hour))
	percent := createTestTicket(t, repo, ticket.Details{Caller: "Zoé", Reason: "quota 100%"}, baseTime)
	for _, tk := range []*ticket.Ticket{printer, vpn, tagged, percent} {
		archive(tk)
	}

	ids := func(tickets []*ticket.Ticket) []string {
		out := make([]string, len(tickets))
		for i, tk := range tickets {
			out[i] = tk.ID()
		}
		return out
	}

	t.Run("search matches caller or reason case-insensitively", func(t *testing.T) {
		got, err := repo.List(ctx, ticket.Filter{Archived: true, Search: "printer"})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{printer.ID(), vpn.ID()}, ids(got))
	})

	t.Run("search matches a tag exactly", func(t *testing.T) {
		got, err := repo.List(ctx, ticket.Filter{Archived: true, Search: "Imprimante"})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{printer.ID(), tagged.ID()}, ids(got))
	})

	t.Run("wildcards are literal", func(t *testing.T) {
		got, err := repo.List(ctx, ticket.Filter{Archived: true, Search: "100%"})
		require.NoError(t, err)
		assert.Equal(t, []string{percent.ID()}, ids(got))

		got, err = repo.List(ctx, ticket.Filter{Archived: true, Search: "%"})
		require.NoError(t, err)
		assert.Equal(t, []string{percent.ID()}, ids(got))
	})

	t.Run("date range is inclusive and combines with search", func(t *testing.T) {
		start, end := biztime.DayBounds(baseTime)
		got, err := repo.List(ctx, ticket.Filter{Archived: true, CreatedFrom: start, CreatedTo: end})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{printer.ID(), percent.ID()}, ids(got))

		got, err = repo.List(ctx, ticket.Filter{Archived: true, CreatedFrom: start, CreatedTo: end, Search: "jean"})
		require.NoError(t, err)
		assert.Equal(t, []string{printer.ID()}, ids(got))
	})

	t.Run("results are newest first", func(t *testing.T) {
		got, err := repo.List(ctx, ticket.Filter{Archived: true})
		require.NoError(t, err)
		require.Len(t, got, 4)
		assert.Equal(t, vpn.ID(), got[0].ID())
		assert.Equal(t, tagged.ID(), got[3].ID())
	})
}

func TestTicketRepository_ArchiveCreatedBefore(t *testing.T) {
	repo := NewTicketRepository(setupTestDB(t))
	ctx := context.Background()

	now := baseTime
	stale := createTestTicket(t, repo, ticket.Details{Caller: "Stale", Reason: "r"}, now.Add(-25*time.Hour))
	fresh := createTestTicket(t, repo, ticket.Details{Caller: "Fresh", Reason: "r"}, now.Add(-time.Hour))
	done := createTestTicket(t, repo, ticket.Details{Caller: "Done", Reason: "r"}, now.Add(-72*time.Hour))
	done.Archive("bob", now.Add(-48*time.Hour))
	require.NoError(t, repo.MarkArchived(ctx, done))

	ids, err := repo.ArchiveCreatedBefore(ctx, now.Add(-24*time.Hour), ticket.SystemActor, now)
	require.NoError(t, err)
	assert.Equal(t, []string{stale.ID()}, ids)

	got, err := repo.GetByID(ctx, stale.ID())
	require.NoError(t, err)
	assert.True(t, got.IsArchived())
	assert.Equal(t, ticket.SystemActor, got.ArchivedBy())
	assert.True(t, now.Equal(got.ArchivedAt()))

	got, err = repo.GetByID(ctx, fresh.ID())
	require.NoError(t, err)
	assert.False(t, got.IsArchived())

	got, err = repo.GetByID(ctx, done.ID())
	require.NoError(t, err)
	assert.Equal(t, "bob", got.ArchivedBy(), "already archived tickets are left alone")

	ids, err = repo.ArchiveCreatedBefore(ctx, now.Add(-24*time.Hour), ticket.SystemActor, now)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestTicketRepository_CreatedBetween(t *testing.T) {
	repo := NewTicketRepository(setupTestDB(t))
	ctx := context.Background()

	start, end := biztime.DayBounds(baseTime)
	inDay := createTestTicket(t, repo, ticket.Details{Caller: "A", Reason: "r"}, start)
	lastMs := createTestTicket(t, repo, ticket.Details{Caller: "B", Reason: "r"}, end)
	createTestTicket(t, repo, ticket.Details{Caller: "C", Reason: "r"}, end.Add(time.Millisecond))

	inDay.Archive("alice", baseTime)
	require.NoError(t, repo.MarkArchived(ctx, inDay))

	got, err := repo.CreatedBetween(ctx, start, end)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, inDay.ID(), got[0].ID())
	assert.Equal(t, lastMs.ID(), got[1].ID())
}

func TestTicketRepository_Messages(t *testing.T) {
	repo := NewTicketRepository(setupTestDB(t))
	ctx := context.Background()

	tk := createTestTicket(t, repo, ticket.Details{Caller: "A", Reason: "r"}, baseTime)
	other := createTestTicket(t, repo, ticket.Details{Caller: "B", Reason: "r"}, baseTime)

	// Same timestamp: insertion order breaks the tie.
	m1 := appendTestMessage(t, repo, tk.ID(), "one", baseTime)
	m2 := appendTestMessage(t, repo, tk.ID(), "two", baseTime)
	appendTestMessage(t, repo, other.ID(), "elsewhere", baseTime)

	messages, err := repo.ListMessages(ctx, tk.ID())
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, m1.ID(), messages[0].ID())
	assert.Equal(t, m2.ID(), messages[1].ID())

	n, err := repo.DeleteMessages(ctx, tk.ID())
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	messages, err = repo.ListMessages(ctx, other.ID())
	require.NoError(t, err)
	assert.Len(t, messages, 1)
}

func TestTicketRepository_DeleteInTransaction(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewTicketRepository(gdb)
	tm := db.NewTransactionManager(gdb)
	ctx := context.Background()

	tk := createTestTicket(t, repo, ticket.Details{Caller: "A", Reason: "r"}, baseTime)
	appendTestMessage(t, repo, tk.ID(), "note", baseTime)

	t.Run("rollback keeps the ticket", func(t *testing.T) {
		err := tm.RunInTransaction(ctx, func(txCtx context.Context) error {
			_, err := repo.DeleteMessages(txCtx, tk.ID())
			require.NoError(t, err)
			_, err = repo.Delete(txCtx, tk.ID())
			require.NoError(t, err)
			return fmt.Errorf("abort")
		})
		require.Error(t, err)

		got, err := repo.GetByID(ctx, tk.ID())
		require.NoError(t, err)
		assert.Len(t, got.Messages(), 1)
	})

	t.Run("commit removes ticket and messages", func(t *testing.T) {
		var existed bool
		err := tm.RunInTransaction(ctx, func(txCtx context.Context) error {
			if _, err := repo.DeleteMessages(txCtx, tk.ID()); err != nil {
				return err
			}
			var err error
			existed, err = repo.Delete(txCtx, tk.ID())
			return err
		})
		require.NoError(t, err)
		assert.True(t, existed)

		_, err = repo.GetByID(ctx, tk.ID())
		assert.ErrorIs(t, err, ticket.ErrNotFound)

		messages, err := repo.ListMessages(ctx, tk.ID())
		require.NoError(t, err)
		assert.Empty(t, messages)
	})

	t.Run("deleting an unknown ticket reports false", func(t *testing.T) {
		existed, err := repo.Delete(ctx, "tk_missing")
		require.NoError(t, err)
		assert.False(t, existed)
	})
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, "100!%", escapeLike("100%"))
	assert.Equal(t, "a!_b", escapeLike("a_b"))
	assert.Equal(t, "wow!!", escapeLike("wow!"))
}

func TestChunkStrings(t *testing.T) {
	assert.Nil(t, chunkStrings(nil, 2))
	assert.Equal(t, [][]string{{"a", "b"}, {"c"}}, chunkStrings([]string{"a", "b", "c"}, 2))
}

func TestTicketRepository_StaleEditKeepsArchive(t *testing.T) {
	repo := NewTicketRepository(setupTestDB(t))
	ctx := context.Background()

	created := createTestTicket(t, repo, ticket.Details{Caller: "Ann", Reason: "printer"}, baseTime.Add(-48*time.Hour))

	// The edit loads its copy before the sweep archives the row.
	loaded, err := repo.GetByID(ctx, created.ID())
	require.NoError(t, err)

	ids, err := repo.ArchiveCreatedBefore(ctx, baseTime.Add(-24*time.Hour), ticket.SystemActor, baseTime)
	require.NoError(t, err)
	require.Equal(t, []string{created.ID()}, ids)

	require.NoError(t, loaded.Edit(ticket.Details{Caller: "Ann Lee", Reason: "printer"}, "bob", baseTime.Add(time.Minute)))
	require.NoError(t, repo.Update(ctx, loaded))

	got, err := repo.GetByID(ctx, created.ID())
	require.NoError(t, err)
	assert.Equal(t, "Ann Lee", got.Caller())
	assert.Equal(t, "bob", got.LastModifiedBy())
	assert.True(t, got.IsArchived())
	assert.Equal(t, ticket.SystemActor, got.ArchivedBy())
	assert.True(t, baseTime.Equal(got.ArchivedAt()))

	active, err := repo.List(ctx, ticket.Filter{})
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestTicketRepository_MarkArchivedKeepsFields(t *testing.T) {
	repo := NewTicketRepository(setupTestDB(t))
	ctx := context.Background()

	created := createTestTicket(t, repo, ticket.Details{Caller: "Ann", Reason: "printer"}, baseTime)
	stale, err := repo.GetByID(ctx, created.ID())
	require.NoError(t, err)

	edited, err := repo.GetByID(ctx, created.ID())
	require.NoError(t, err)
	require.NoError(t, edited.Edit(ticket.Details{Caller: "Ann Lee", Reason: "scanner"}, "bob", baseTime.Add(time.Minute)))
	require.NoError(t, repo.Update(ctx, edited))

	stale.Archive("carol", baseTime.Add(time.Hour))
	require.NoError(t, repo.MarkArchived(ctx, stale))

	got, err := repo.GetByID(ctx, created.ID())
	require.NoError(t, err)
	assert.True(t, got.IsArchived())
	assert.Equal(t, "carol", got.ArchivedBy())
	assert.Equal(t, "Ann Lee", got.Caller())
	assert.Equal(t, "scanner", got.Reason())
}

func TestTicketRepository_ArchiveCreatedBefore_SkipsManualArchiveMidSweep(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewTicketRepository(gdb)
	ctx := context.Background()

	stale := createTestTicket(t, repo, ticket.Details{Caller: "Stale", Reason: "r"}, baseTime.Add(-72*time.Hour))
	manual := createTestTicket(t, repo, ticket.Details{Caller: "Manual", Reason: "r"}, baseTime.Add(-48*time.Hour))
	manualAt := baseTime.Add(-time.Minute)

	// Archive one selected ticket by hand just before the sweep's UPDATE runs.
	fired := false
	require.NoError(t, gdb.Callback().Update().Before("gorm:update").Register("test:manual_archive", func(tx *gorm.DB) {
		if fired {
			return
		}
		fired = true
		require.NoError(t, tx.Session(&gorm.Session{NewDB: true}).Exec(
			"UPDATE tickets SET is_archived = ?, archived_by = ?, archived_at = ? WHERE sid = ?",
			true, "carol", manualAt.UnixMilli(), manual.ID(),
		).Error)
	}))

	ids, err := repo.ArchiveCreatedBefore(ctx, baseTime.Add(-24*time.Hour), ticket.SystemActor, baseTime)
	require.NoError(t, err)
	assert.True(t, fired)
	assert.Equal(t, []string{stale.ID()}, ids)

	got, err := repo.GetByID(ctx, manual.ID())
	require.NoError(t, err)
	assert.Equal(t, "carol", got.ArchivedBy())
	assert.True(t, manualAt.Equal(got.ArchivedAt()))
}
