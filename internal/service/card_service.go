package service

import (
	"strings"
	"time"

	"github.com/shopworks/storefront/internal/constants"
	"github.com/shopworks/storefront/internal/models"
	"github.com/shopworks/storefront/internal/repository"

	"github.com/google/uuid"
)

// CardService 支付卡服务
// 卡号不落库，仅保存模拟 token 与末四位
type CardService struct {
	cardRepo repository.CardRepository
}

// NewCardService 创建支付卡服务
func NewCardService(cardRepo repository.CardRepository) *CardService {
	return &CardService{cardRepo: cardRepo}
}

// CardInput 绑卡参数
type CardInput struct {
	Number    string
	ExpMonth  int
	ExpYear   int
	IsDefault bool
}

// List 用户卡列表
func (s *CardService) List(userID uint) ([]models.Card, error) {
	return s.cardRepo.ListByUser(userID)
}

// Get 获取用户卡
func (s *CardService) Get(userID, cardID uint) (*models.Card, error) {
	card, err := s.cardRepo.GetByIDAndUser(cardID, userID)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, ErrCardNotFound
	}
	return card, nil
}

// Create 绑定新卡（模拟 tokenization）
func (s *CardService) Create(userID uint, input CardInput) (*models.Card, error) {
	number := normalizeCardNumber(input.Number)
	if len(number) < 12 || len(number) > 19 {
		return nil, ErrCardInvalid
	}
	if input.ExpMonth < 1 || input.ExpMonth > 12 {
		return nil, ErrCardInvalid
	}
	now := time.Now()
	if input.ExpYear < now.Year() ||
		(input.ExpYear == now.Year() && input.ExpMonth < int(now.Month())) {
		return nil, ErrCardInvalid
	}

	existing, err := s.cardRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	card := &models.Card{
		UserID:    userID,
		Brand:     inferCardBrand(number),
		Last4:     number[len(number)-4:],
		ExpMonth:  input.ExpMonth,
		ExpYear:   input.ExpYear,
		Token:     constants.CardTokenPrefix + uuid.NewString(),
		IsDefault: input.IsDefault || len(existing) == 0,
	}
	if card.IsDefault {
		if err := s.cardRepo.ClearDefault(userID); err != nil {
			return nil, err
		}
	}
	if err := s.cardRepo.Create(card); err != nil {
		return nil, err
	}
	return card, nil
}

// SetDefault 设为默认卡
func (s *CardService) SetDefault(userID, cardID uint) (*models.Card, error) {
	card, err := s.Get(userID, cardID)
	if err != nil {
		return nil, err
	}
	if err := s.cardRepo.ClearDefault(userID); err != nil {
		return nil, err
	}
	if err := s.cardRepo.SetDefault(card.ID); err != nil {
		return nil, err
	}
	card.IsDefault = true
	return card, nil
}

// Delete 解绑卡片
func (s *CardService) Delete(userID, cardID uint) error {
	card, err := s.Get(userID, cardID)
	if err != nil {
		return err
	}
	if err := s.cardRepo.Delete(card.ID); err != nil {
		return err
	}
	if !card.IsDefault {
		return nil
	}
	// 删除默认卡后把最近一张卡提升为默认
	rest, err := s.cardRepo.ListByUser(userID)
	if err != nil {
		return err
	}
	if len(rest) == 0 {
		return nil
	}
	return s.cardRepo.SetDefault(rest[0].ID)
}

func normalizeCardNumber(number string) string {
	var b strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func inferCardBrand(number string) string {
	switch {
	case strings.HasPrefix(number, "4"):
		return "visa"
	case strings.HasPrefix(number, "5"):
		return "mastercard"
	case strings.HasPrefix(number, "3"):
		return "amex"
	default:
		return "unknown"
	}
}
