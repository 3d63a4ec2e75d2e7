package public

import (
	"strconv"

	"github.com/shopworks/storefront/internal/http/response"
	"github.com/shopworks/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// CardRequest 绑卡请求
type CardRequest struct {
	Number    string `json:"number" binding:"required"`
	ExpMonth  int    `json:"exp_month" binding:"required"`
	ExpYear   int    `json:"exp_year" binding:"required"`
	IsDefault bool   `json:"is_default"`
}

// ListCards 卡列表
func (h *Handler) ListCards(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	cards, err := h.CardService.List(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "list cards failed", err)
		return
	}
	response.Success(c, gin.H{"cards": cards})
}

// CreateCard 绑定新卡
func (h *Handler) CreateCard(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	card, err := h.CardService.Create(uid, service.CardInput{
		Number:    req.Number,
		ExpMonth:  req.ExpMonth,
		ExpYear:   req.ExpYear,
		IsDefault: req.IsDefault,
	})
	if err != nil {
		respondWithMappedError(c, err, cardErrorRules, response.CodeInternal, "create card failed")
		return
	}
	response.Success(c, card)
}

// SetDefaultCard 设置默认卡
func (h *Handler) SetDefaultCard(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	cardID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || cardID == 0 {
		respondError(c, response.CodeBadRequest, "invalid card id", nil)
		return
	}
	card, err := h.CardService.SetDefault(uid, uint(cardID))
	if err != nil {
		respondWithMappedError(c, err, cardErrorRules, response.CodeInternal, "set default card failed")
		return
	}
	response.Success(c, card)
}

// DeleteCard 解绑卡片
func (h *Handler) DeleteCard(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	cardID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || cardID == 0 {
		respondError(c, response.CodeBadRequest, "invalid card id", nil)
		return
	}
	if err := h.CardService.Delete(uid, uint(cardID)); err != nil {
		respondWithMappedError(c, err, cardErrorRules, response.CodeInternal, "delete card failed")
		return
	}
	response.Success(c, nil)
}
