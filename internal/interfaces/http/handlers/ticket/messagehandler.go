package ticket

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hotline-inc/hotline/internal/application/ticket/dto"
	"github.com/hotline-inc/hotline/internal/application/ticket/usecases"
	"github.com/hotline-inc/hotline/internal/interfaces/http/middleware"
	"github.com/hotline-inc/hotline/internal/shared/errors"
	"github.com/hotline-inc/hotline/internal/shared/logger"
	"github.com/hotline-inc/hotline/internal/shared/utils"
)

// UploadFormField is the multipart field carrying the image.
const UploadFormField = "file"

type MessageHandler struct {
	appendMessageUC   usecases.AppendMessageExecutor
	listMessagesUC    usecases.ListMessagesExecutor
	reorderMessagesUC usecases.ReorderMessagesExecutor
	uploadImageUC     usecases.UploadImageExecutor
	maxUploadBytes    int64
	presenter         *dto.Presenter
	logger            logger.Interface
}

func NewMessageHandler(
	appendMessageUC usecases.AppendMessageExecutor,
	listMessagesUC usecases.ListMessagesExecutor,
	reorderMessagesUC usecases.ReorderMessagesExecutor,
	uploadImageUC usecases.UploadImageExecutor,
	maxUploadBytes int64,
	presenter *dto.Presenter,
	logger logger.Interface,
) *MessageHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = usecases.DefaultMaxImageBytes
	}
	return &MessageHandler{
		appendMessageUC:   appendMessageUC,
		listMessagesUC:    listMessagesUC,
		reorderMessagesUC: reorderMessagesUC,
		uploadImageUC:     uploadImageUC,
		maxUploadBytes:    maxUploadBytes,
		presenter:         presenter,
		logger:            logger,
	}
}

// ListMessages handles GET /api/tickets/:id/messages
func (h *MessageHandler) ListMessages(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listMessagesUC.Execute(c.Request.Context(), usecases.ListMessagesQuery{TicketID: ticketID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", h.presenter.Messages(result, displayStyle(c)))
}

// AppendMessage handles POST /api/tickets/:id/messages
func (h *MessageHandler) AppendMessage(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AppendMessageRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for append message", "ticket_id", ticketID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.AppendMessageCommand{
		TicketID: ticketID,
		Content:  req.Content,
		Type:     req.Type,
		Actor:    middleware.Actor(c),
	}
	result, err := h.appendMessageUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, h.presenter.Message(result, displayStyle(c)), "Message added successfully")
}

// UploadImage handles POST /api/tickets/:id/messages/image (multipart, field "file")
func (h *MessageHandler) UploadImage(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	data, err := h.readUpload(c)
	if err != nil {
		h.logger.Warnw("invalid image upload", "ticket_id", ticketID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.UploadImageCommand{TicketID: ticketID, Data: data, Actor: middleware.Actor(c)}
	result, err := h.uploadImageUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, h.presenter.Message(result, displayStyle(c)), "Image uploaded successfully")
}

// readUpload reads at most one byte past the limit so the use case can
// reject oversized files without buffering all of them.
func (h *MessageHandler) readUpload(c *gin.Context) ([]byte, error) {
	header, err := c.FormFile(UploadFormField)
	if err != nil {
		return nil, errors.NewValidationError("image file is required", err.Error())
	}
	if header.Size > h.maxUploadBytes {
		return nil, errors.NewValidationError("image file is too large")
	}

	f, err := header.Open()
	if err != nil {
		return nil, errors.WrapInternal(err, "failed to open uploaded file")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.maxUploadBytes+1))
	if err != nil {
		return nil, errors.WrapInternal(err, "failed to read uploaded file")
	}
	return data, nil
}

// ReorderMessages handles PUT /api/tickets/:id/messages/order. The order is
// accepted but not persisted.
func (h *MessageHandler) ReorderMessages(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ReorderMessagesRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.ReorderMessagesCommand{
		TicketID:   ticketID,
		MessageIDs: req.MessageIDs,
		Actor:      middleware.Actor(c),
	}
	if err := h.reorderMessagesUC.Execute(c.Request.Context(), cmd); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Message order accepted", nil)
}
