package usecases

import (
	"context"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/hotline-inc/hotline/internal/domain/shared/events"
	"github.com/hotline-inc/hotline/internal/domain/ticket"
	vo "github.com/hotline-inc/hotline/internal/domain/ticket/valueobjects"
	"github.com/hotline-inc/hotline/internal/shared/biztime"
	apperrors "github.com/hotline-inc/hotline/internal/shared/errors"
	"github.com/hotline-inc/hotline/internal/shared/logger"
)

// DefaultMaxImageBytes caps an upload when no limit is configured.
const DefaultMaxImageBytes int64 = 10 << 20

type UploadImageCommand struct {
	TicketID string
	Data     []byte
	Actor    string
}

type UploadImageUseCase struct {
	ticketRepo ticket.Repository
	images     ImageStore
	publisher  events.EventPublisher
	normalizer *biztime.Normalizer
	maxBytes   int64
	logger     logger.Interface
}

func NewUploadImageUseCase(
	ticketRepo ticket.Repository,
	images ImageStore,
	publisher events.EventPublisher,
	normalizer *biztime.Normalizer,
	maxBytes int64,
	logger logger.Interface,
) *UploadImageUseCase {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxImageBytes
	}
	return &UploadImageUseCase{
		ticketRepo: ticketRepo,
		images:     images,
		publisher:  publisher,
		normalizer: normalizer,
		maxBytes:   maxBytes,
		logger:     logger,
	}
}

// MaxBytes is the largest accepted upload.
func (uc *UploadImageUseCase) MaxBytes() int64 {
	return uc.maxBytes
}

// Execute stores the image and appends its key as an image message. The
// stored object is removed again if the message cannot be appended.
func (uc *UploadImageUseCase) Execute(ctx context.Context, cmd UploadImageCommand) (*ticket.Message, error) {
	uc.logger.Infow("executing upload image use case", "ticket_id", cmd.TicketID, "size", len(cmd.Data), "actor", cmd.Actor)

	if len(cmd.Data) == 0 {
		return nil, apperrors.NewValidationError("image file is empty")
	}
	if int64(len(cmd.Data)) > uc.maxBytes {
		return nil, apperrors.NewValidationError("image file is too large")
	}

	mt := mimetype.Detect(cmd.Data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return nil, apperrors.NewValidationError("file is not an image", mt.String())
	}

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		return nil, translateError(err, "get ticket")
	}
	if !t.AcceptsMessages() {
		return nil, apperrors.NewNotFoundError("ticket not found")
	}

	key, err := uc.images.PutImage(ctx, t.ID(), mt.Extension(), cmd.Data, mt.String())
	if err != nil {
		uc.logger.Errorw("failed to store image", "ticket_id", t.ID(), "error", err)
		return nil, apperrors.WrapInternal(err, "failed to store image")
	}

	m, err := appendToTicket(ctx, uc.ticketRepo, uc.publisher, uc.normalizer, uc.logger, t, key, vo.MessageTypeImage, cmd.Actor)
	if err != nil {
		if delErr := uc.images.DeleteFile(ctx, key); delErr != nil {
			uc.logger.Warnw("failed to remove orphaned image", "key", key, "error", delErr)
		}
		return nil, err
	}

	return m, nil
}
