package http

import (
	sfUsecases "github.com/hotline-inc/hotline/internal/application/savedfield/usecases"
	ticketUsecases "github.com/hotline-inc/hotline/internal/application/ticket/usecases"
	userUsecases "github.com/hotline-inc/hotline/internal/application/user/usecases"
)

// allUseCases holds all use case instances used by the application.
type allUseCases struct {
	// Ticket
	createTicketUC  *ticketUsecases.CreateTicketUseCase
	editTicketUC    *ticketUsecases.EditTicketUseCase
	archiveTicketUC *ticketUsecases.ArchiveTicketUseCase
	getTicketUC     *ticketUsecases.GetTicketUseCase
	deleteTicketUC  *ticketUsecases.DeleteTicketUseCase
	listTicketsUC   *ticketUsecases.ListTicketsUseCase
	dailyReportUC   *ticketUsecases.DailyReportUseCase
	archiveSweepUC  *ticketUsecases.ArchiveExpiredTicketsUseCase

	// Message
	appendMessageUC   *ticketUsecases.AppendMessageUseCase
	listMessagesUC    *ticketUsecases.ListMessagesUseCase
	reorderMessagesUC *ticketUsecases.ReorderMessagesUseCase
	uploadImageUC     *ticketUsecases.UploadImageUseCase

	// Saved fields
	rememberUC        *sfUsecases.RememberUseCase
	forgetUC          *sfUsecases.ForgetUseCase
	listSavedFieldsUC *sfUsecases.ListSavedFieldsUseCase

	// User
	loginUC *userUsecases.LoginUseCase
}

func newUseCases(c *Container) *allUseCases {
	repos := c.repos
	log := c.log
	n := c.normalizer
	pub := c.dispatcher

	return &allUseCases{
		createTicketUC:  ticketUsecases.NewCreateTicketUseCase(repos.ticketRepo, pub, n, log),
		editTicketUC:    ticketUsecases.NewEditTicketUseCase(repos.ticketRepo, pub, n, log),
		archiveTicketUC: ticketUsecases.NewArchiveTicketUseCase(repos.ticketRepo, pub, n, log),
		getTicketUC:     ticketUsecases.NewGetTicketUseCase(repos.ticketRepo, log),
		deleteTicketUC:  ticketUsecases.NewDeleteTicketUseCase(repos.ticketRepo, c.txMgr, c.images, pub, n, log),
		listTicketsUC:   ticketUsecases.NewListTicketsUseCase(repos.ticketRepo, log),
		dailyReportUC:   ticketUsecases.NewDailyReportUseCase(repos.ticketRepo, n, log),
		archiveSweepUC:  ticketUsecases.NewArchiveExpiredTicketsUseCase(repos.ticketRepo, pub, n, c.cfg.Archive.MaxAge, log),

		appendMessageUC:   ticketUsecases.NewAppendMessageUseCase(repos.ticketRepo, pub, n, log),
		listMessagesUC:    ticketUsecases.NewListMessagesUseCase(repos.ticketRepo, log),
		reorderMessagesUC: ticketUsecases.NewReorderMessagesUseCase(repos.ticketRepo, log),
		uploadImageUC:     ticketUsecases.NewUploadImageUseCase(repos.ticketRepo, c.images, pub, n, c.cfg.Storage.MaxUploadBytes, log),

		rememberUC:        sfUsecases.NewRememberUseCase(repos.savedFieldRepo, c.savedFieldCache, log),
		forgetUC:          sfUsecases.NewForgetUseCase(repos.savedFieldRepo, c.savedFieldCache, log),
		listSavedFieldsUC: sfUsecases.NewListSavedFieldsUseCase(repos.savedFieldRepo, c.savedFieldCache, log),

		loginUC: userUsecases.NewLoginUseCase(repos.userRepo, n, log),
	}
}
