package handlers

import (
	"log"
	"net/http"

	"webcharge_api/internal/adapter/http/dto/request"
	"webcharge_api/internal/adapter/http/dto/response"
	"webcharge_api/internal/domain/entities"
	"webcharge_api/internal/usecase"

	"github.com/gin-gonic/gin"
)

const orderHistoryLimit = 50

// StoreHandler serves the player-facing store pages.
type StoreHandler struct {
	usecase usecase.IStoreUseCase
}

func NewStoreHandler(uc usecase.IStoreUseCase) *StoreHandler {
	return &StoreHandler{usecase: uc}
}

func (h *StoreHandler) Login(c *gin.Context) {
	var q request.LoginQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeError(c, errInvalidRequest)
		return
	}
	profile, err := h.usecase.Login(c.Request.Context(), entities.LoginType(q.LoginType), q.LoginID, q.LoginCode)
	if err != nil {
		log.Printf("[store][handler] login failed login_type=%d err=%v", q.LoginType, err)
		writeError(c, mapUseCaseError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromProfile(profile, "Login successful"))
}

func (h *StoreHandler) Refresh(c *gin.Context) {
	uid, ok := bindUID(c)
	if !ok {
		return
	}
	profile, err := h.usecase.Refresh(c.Request.Context(), uid)
	if err != nil {
		writeError(c, mapUseCaseError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromProfile(profile, "User info refreshed successfully"))
}

func (h *StoreHandler) StoreItems(c *gin.Context) {
	uid, ok := bindUID(c)
	if !ok {
		return
	}
	items, err := h.usecase.StoreItems(c.Request.Context(), uid)
	if err != nil {
		log.Printf("[store][handler] store items failed uid=%d err=%v", uid, err)
		writeError(c, mapUseCaseError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromListings(items))
}

func (h *StoreHandler) OrderHistory(c *gin.Context) {
	uid, ok := bindUID(c)
	if !ok {
		return
	}
	orders, err := h.usecase.OrderHistory(c.Request.Context(), uid, orderHistoryLimit)
	if err != nil {
		log.Printf("[store][handler] order history failed uid=%d err=%v", uid, err)
		writeError(c, mapUseCaseError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromOrders(orders))
}

func bindUID(c *gin.Context) (int64, bool) {
	var payload request.UIDRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidRequest)
		return 0, false
	}
	uid, err := request.ParseUID(payload.UID)
	if err != nil {
		writeError(c, errInvalidUID)
		return 0, false
	}
	return uid, true
}
