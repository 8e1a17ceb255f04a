package http

import (
	"gorm.io/gorm"

	"github.com/hotline-inc/hotline/internal/domain/savedfield"
	"github.com/hotline-inc/hotline/internal/domain/ticket"
	"github.com/hotline-inc/hotline/internal/domain/user"
	"github.com/hotline-inc/hotline/internal/infrastructure/repository"
)

// repositories holds all repository instances used by the application.
type repositories struct {
	ticketRepo     ticket.Repository
	savedFieldRepo savedfield.Repository
	userRepo       user.Repository
}

// newRepositories creates all repository instances from the database connection.
func newRepositories(db *gorm.DB) *repositories {
	return &repositories{
		ticketRepo:     repository.NewTicketRepository(db),
		savedFieldRepo: repository.NewSavedFieldRepository(db),
		userRepo:       repository.NewUserRepository(db),
	}
}
