package dto

import (
	"github.com/hotline-inc/hotline/internal/domain/user"
	"github.com/hotline-inc/hotline/internal/shared/biztime"
)

type UserDTO struct {
	Username         string           `json:"username"`
	LastLogin        biztime.Instant  `json:"last_login"`
	LastLoginDisplay *biztime.Display `json:"last_login_display,omitempty"`
	CreatedAt        biztime.Instant  `json:"created_at"`
}

func ToUserDTO(u *user.User, n *biztime.Normalizer, style biztime.Style) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		Username:         u.Username(),
		LastLogin:        u.LastLogin(),
		LastLoginDisplay: n.Display(u.LastLogin(), style),
		CreatedAt:        u.CreatedAt(),
	}
}
