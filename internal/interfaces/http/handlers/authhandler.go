package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hotline-inc/hotline/internal/application/user/dto"
	"github.com/hotline-inc/hotline/internal/application/user/usecases"
	"github.com/hotline-inc/hotline/internal/shared/biztime"
	"github.com/hotline-inc/hotline/internal/shared/logger"
	"github.com/hotline-inc/hotline/internal/shared/utils"
)

type LoginRequest struct {
	Username string `json:"username" binding:"notblank,max=64"`
}

type AuthHandler struct {
	loginUC    usecases.LoginExecutor
	normalizer *biztime.Normalizer
	logger     logger.Interface
}

func NewAuthHandler(loginUC usecases.LoginExecutor, normalizer *biztime.Normalizer, logger logger.Interface) *AuthHandler {
	return &AuthHandler{loginUC: loginUC, normalizer: normalizer, logger: logger}
}

// Login handles POST /api/auth/login. The upstream session layer has already
// authenticated the user; this records the login and creates the user once.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.loginUC.Execute(c.Request.Context(), usecases.LoginCommand{Username: req.Username})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	style := biztime.PreferredStyle(c.GetHeader("Accept-Language"))
	userDTO := dto.ToUserDTO(result.User, h.normalizer, style)
	if result.Created {
		utils.CreatedResponse(c, userDTO, "User created")
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Login recorded", userDTO)
}
