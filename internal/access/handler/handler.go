package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-backoffice-service/internal/access"
	"github.com/fekuna/omnipos-backoffice-service/internal/auth"
	"github.com/fekuna/omnipos-backoffice-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AccessHandler struct {
	gate   access.Gate
	logger logger.ZapLogger
}

func NewAccessHandler(gate access.Gate, log logger.ZapLogger) *AccessHandler {
	return &AccessHandler{
		gate:   gate,
		logger: log,
	}
}

func (h *AccessHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/userInfo", auth.RequireSession(), h.UserInfo)
}

// UserInfo reports the caller's grants so the UI can hide what it cannot use.
func (h *AccessHandler) UserInfo(c *gin.Context) {
	session := auth.GetSession(c.Request.Context())

	roles, err := h.gate.AllGrantedLabels(c.Request.Context(), session.Email)
	if err != nil {
		h.logger.Error("failed to load roles", zap.String("email", session.Email), zap.Error(err))
	}
	if roles == nil {
		roles = []string{}
	}

	c.JSON(http.StatusOK, gin.H{
		"email": session.Email,
		"roles": roles,
	})
}
