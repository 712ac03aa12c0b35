package handlers

import (
	"log"
	"net/http"

	"webcharge_api/internal/adapter/http/dto/request"
	"webcharge_api/internal/adapter/http/dto/response"

	"github.com/gin-gonic/gin"
)

// ITokenIssuer hands out bearer tokens to a known application id.

type ITokenIssuer interface {
	Issue(appID string) (string, error)
}

type AuthHandler struct {
	tokens ITokenIssuer
}

func NewAuthHandler(tokens ITokenIssuer) *AuthHandler {
	return &AuthHandler{tokens: tokens}
}

func (h *AuthHandler) Token(c *gin.Context) {
	var payload request.TokenRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidRequest)
		return
	}
	token, err := h.tokens.Issue(payload.AppID)
	if err != nil {
		log.Printf("[auth][handler] token refused app_id=%q err=%v", payload.AppID, err)
		writeError(c, mapUseCaseError(err))
		return
	}
	log.Printf("[auth][handler] token issued app_id=%q", payload.AppID)
	c.JSON(http.StatusOK, response.TokenResponse{ReturnCode: 1, Token: token, Msg: "Token generation successful"})
}
