package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotline-inc/hotline/internal/application/ticket/dto"
	"github.com/hotline-inc/hotline/internal/domain/ticket"
	vo "github.com/hotline-inc/hotline/internal/domain/ticket/valueobjects"
	"github.com/hotline-inc/hotline/internal/shared/biztime"
	apperrors "github.com/hotline-inc/hotline/internal/shared/errors"
	"github.com/hotline-inc/hotline/internal/shared/logger"
)

func TestDailyReportUseCase_Execute(t *testing.T) {
	archived, err := ticket.ReconstructTicket("tk_3", ticket.Details{Caller: "Bob", Status: vo.StatusClosed, IsGLPI: true},
		true, "alice", testNow, "", biztime.Instant{}, "system", testNow)
	require.NoError(t, err)

	stored := []*ticket.Ticket{
		newStoredTicket("tk_1", ticket.Details{Caller: "Alice", Reason: "jam", Tags: []string{"printer", "hardware"}, IsBlocking: true}, testNow),
		newStoredTicket("tk_2", ticket.Details{Caller: "Alice", Reason: "toner", Tags: []string{"printer"}}, testNow),
		archived,
	}

	var gotFrom, gotTo biztime.Instant
	repo := &mockTicketRepository{
		CreatedBetweenFunc: func(ctx context.Context, from, to biztime.Instant) ([]*ticket.Ticket, error) {
			gotFrom, gotTo = from, to
			return stored, nil
		},
	}

	uc := NewDailyReportUseCase(repo, newTestNormalizer(), logger.NewNop())
	// 00:30 in Paris on 16 March is 23:30 UTC on 15 March.
	report, err := uc.Execute(context.Background(), DailyReportQuery{At: "2024-03-16T00:30", Style: biztime.StyleLocal})

	require.NoError(t, err)
	assert.True(t, gotFrom.Equal(biztime.NewInstant(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))))
	assert.True(t, gotTo.Equal(biztime.NewInstant(time.Date(2024, 3, 15, 23, 59, 59, int(999*time.Millisecond), time.UTC))))

	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 2, report.Open)
	assert.Equal(t, 1, report.Closed)
	assert.Equal(t, 1, report.Blocking)
	assert.Equal(t, 1, report.GLPI)
	assert.Equal(t, 1, report.Archived)
	assert.Equal(t, []dto.CountDTO{{Key: "printer", Count: 2}, {Key: "hardware", Count: 1}}, report.ByTag)
	assert.Equal(t, []dto.CountDTO{{Key: "Alice", Count: 2}, {Key: "Bob", Count: 1}}, report.ByCaller)
	require.NotNil(t, report.DayStartDisplay)
	assert.Equal(t, report.DayStartDisplay.Local, report.DayStartDisplay.Preferred)
}

func TestDailyReportUseCase_Execute_DefaultsToNow(t *testing.T) {
	var gotFrom biztime.Instant
	repo := &mockTicketRepository{
		CreatedBetweenFunc: func(ctx context.Context, from, to biztime.Instant) ([]*ticket.Ticket, error) {
			gotFrom = from
			return nil, nil
		},
	}

	uc := NewDailyReportUseCase(repo, newTestNormalizer(), logger.NewNop())
	report, err := uc.Execute(context.Background(), DailyReportQuery{})

	require.NoError(t, err)
	assert.Zero(t, report.Total)
	assert.Empty(t, report.ByTag)
	assert.True(t, gotFrom.Equal(biztime.NewInstant(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))))
}

func TestDailyReportUseCase_Execute_InvalidAt(t *testing.T) {
	uc := NewDailyReportUseCase(&mockTicketRepository{}, newTestNormalizer(), logger.NewNop())
	_, err := uc.Execute(context.Background(), DailyReportQuery{At: "yesterday"})

	require.Error(t, err)
	assert.True(t, apperrors.IsValidationError(err))
}

func TestDayBounds_Example(t *testing.T) {
	start, end := biztime.DayBounds(testNow)
	assert.Equal(t, "2024-03-15T00:00:00.000Z", start.Time().Format("2006-01-02T15:04:05.000Z07:00"))
	assert.Equal(t, "2024-03-15T23:59:59.999Z", end.Time().Format("2006-01-02T15:04:05.000Z07:00"))
}
