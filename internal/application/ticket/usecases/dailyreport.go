package usecases

import (
	"context"
	"sort"
	"strings"

	"github.com/hotline-inc/hotline/internal/application/ticket/dto"
	"github.com/hotline-inc/hotline/internal/domain/ticket"
	"github.com/hotline-inc/hotline/internal/shared/biztime"
	apperrors "github.com/hotline-inc/hotline/internal/shared/errors"
	"github.com/hotline-inc/hotline/internal/shared/logger"
)

// DailyReportQuery names the day by a wall-clock reading in the business
// zone. An empty At means now.
type DailyReportQuery struct {
	At    string
	Style biztime.Style
}

type DailyReportUseCase struct {
	ticketRepo ticket.Repository
	normalizer *biztime.Normalizer
	logger     logger.Interface
}

func NewDailyReportUseCase(ticketRepo ticket.Repository, normalizer *biztime.Normalizer, logger logger.Interface) *DailyReportUseCase {
	return &DailyReportUseCase{ticketRepo: ticketRepo, normalizer: normalizer, logger: logger}
}

func (uc *DailyReportUseCase) Execute(ctx context.Context, query DailyReportQuery) (*dto.DailyReportDTO, error) {
	wall := uc.normalizer.NowWallClock()
	if at := strings.TrimSpace(query.At); at != "" {
		parsed, err := biztime.ParseLocalWallClock(at)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid report time", err.Error())
		}
		wall = parsed
	}

	start, end := biztime.DayBounds(uc.normalizer.ToUTC(wall))

	tickets, err := uc.ticketRepo.CreatedBetween(ctx, start, end)
	if err != nil {
		uc.logger.Errorw("failed to load tickets for report", "day", uc.normalizer.FormatUTC(start), "error", err)
		return nil, translateError(err, "build daily report")
	}

	report := &dto.DailyReportDTO{
		DayStart:        start,
		DayStartDisplay: uc.normalizer.Display(start, query.Style),
		DayEnd:          end,
		DayEndDisplay:   uc.normalizer.Display(end, query.Style),
		Total:           len(tickets),
	}

	byTag := make(map[string]int)
	byCaller := make(map[string]int)
	for _, t := range tickets {
		if t.Status().IsOpen() {
			report.Open++
		} else {
			report.Closed++
		}
		if t.IsBlocking() {
			report.Blocking++
		}
		if t.IsGLPI() {
			report.GLPI++
		}
		if t.IsArchived() {
			report.Archived++
		}
		for _, tag := range t.Tags() {
			byTag[tag]++
		}
		byCaller[t.Caller()]++
	}
	report.ByTag = sortedCounts(byTag)
	report.ByCaller = sortedCounts(byCaller)

	uc.logger.Debugw("daily report built", "day", uc.normalizer.FormatUTC(start), "total", report.Total)
	return report, nil
}

// sortedCounts orders buckets by count descending, then key.
func sortedCounts(m map[string]int) []dto.CountDTO {
	out := make([]dto.CountDTO, 0, len(m))
	for k, v := range m {
		out = append(out, dto.CountDTO{Key: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	return out
}
