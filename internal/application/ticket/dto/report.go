package dto

import "github.com/hotline-inc/hotline/internal/shared/biztime"

// DailyReportDTO summarizes the tickets created during one UTC day.
type DailyReportDTO struct {
	DayStart        biztime.Instant  `json:"day_start"`
	DayStartDisplay *biztime.Display `json:"day_start_display,omitempty"`
	DayEnd          biztime.Instant  `json:"day_end"`
	DayEndDisplay   *biztime.Display `json:"day_end_display,omitempty"`
	Total           int              `json:"total"`
	Open            int              `json:"open"`
	Closed          int              `json:"closed"`
	Blocking        int              `json:"blocking"`
	GLPI            int              `json:"glpi"`
	Archived        int              `json:"archived"`
	ByTag           []CountDTO       `json:"by_tag"`
	ByCaller        []CountDTO       `json:"by_caller"`
}

// CountDTO is one bucket of a breakdown, largest first.
type CountDTO struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}
