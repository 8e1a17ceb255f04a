package savedfield

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hotline-inc/hotline/internal/application/savedfield/usecases"
	"github.com/hotline-inc/hotline/internal/shared/logger"
	"github.com/hotline-inc/hotline/internal/shared/utils"
)

type RememberRequest struct {
	Type  string `json:"type" binding:"required,oneof=caller reason tag"`
	Value string `json:"value" binding:"notblank,max=500"`
}

type Handler struct {
	rememberUC usecases.RememberExecutor
	forgetUC   usecases.ForgetExecutor
	listUC     usecases.ListSavedFieldsExecutor
	logger     logger.Interface
}

func NewHandler(
	rememberUC usecases.RememberExecutor,
	forgetUC usecases.ForgetExecutor,
	listUC usecases.ListSavedFieldsExecutor,
	logger logger.Interface,
) *Handler {
	return &Handler{
		rememberUC: rememberUC,
		forgetUC:   forgetUC,
		listUC:     listUC,
		logger:     logger,
	}
}

// List handles GET /api/saved-fields
func (h *Handler) List(c *gin.Context) {
	result, err := h.listUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Remember handles POST /api/saved-fields
func (h *Handler) Remember(c *gin.Context) {
	var req RememberRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for remember saved field", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	inserted, err := h.rememberUC.Execute(c.Request.Context(), usecases.RememberCommand{Type: req.Type, Value: req.Value})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	data := gin.H{"type": req.Type, "value": req.Value, "inserted": inserted}
	if inserted {
		utils.CreatedResponse(c, data, "Saved field remembered")
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Saved field already known", data)
}

// Forget handles DELETE /api/saved-fields/:type/:value
func (h *Handler) Forget(c *gin.Context) {
	cmd := usecases.ForgetCommand{Type: c.Param("type"), Value: c.Param("value")}
	if _, err := h.forgetUC.Execute(c.Request.Context(), cmd); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.NoContentResponse(c)
}
