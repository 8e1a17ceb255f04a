package ticket

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hotline-inc/hotline/internal/application/ticket/usecases"
	"github.com/hotline-inc/hotline/internal/shared/logger"
	"github.com/hotline-inc/hotline/internal/shared/utils"
)

type ReportHandler struct {
	dailyReportUC usecases.DailyReportExecutor
	logger        logger.Interface
}

func NewReportHandler(dailyReportUC usecases.DailyReportExecutor, logger logger.Interface) *ReportHandler {
	return &ReportHandler{dailyReportUC: dailyReportUC, logger: logger}
}

// DailyReport handles GET /api/reports/daily?at=2006-01-02T15:04
func (h *ReportHandler) DailyReport(c *gin.Context) {
	query := usecases.DailyReportQuery{
		At:    c.Query("at"),
		Style: displayStyle(c),
	}

	result, err := h.dailyReportUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
