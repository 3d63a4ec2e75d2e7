package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopworks/storefront/internal/constants"
	"github.com/shopworks/storefront/internal/repository"

	"gorm.io/gorm"
)

func newCardTestService(t *testing.T, name string) (*CardService, *gorm.DB) {
	t.Helper()
	db := newServiceTestDB(t, name)
	return NewCardService(repository.NewCardRepository(db)), db
}

func TestCardCreateTokenizes(t *testing.T) {
	svc, db := newCardTestService(t, "card_tokenize")
	user := createTestUser(t, db, "card@test.local")

	card, err := svc.Create(user.ID, CardInput{
		Number:   "4242 4242 4242 4242",
		ExpMonth: 11,
		ExpYear:  time.Now().Year() + 1,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if !strings.HasPrefix(card.Token, constants.CardTokenPrefix) {
		t.Fatalf("expected token prefix %s, got %s", constants.CardTokenPrefix, card.Token)
	}
	if card.Last4 != "4242" {
		t.Fatalf("expected last4 4242, got %s", card.Last4)
	}
	if card.Brand != "visa" {
		t.Fatalf("expected brand visa, got %s", card.Brand)
	}
	// 首张卡自动设为默认
	if !card.IsDefault {
		t.Fatalf("expected first card default")
	}
}

func TestCardCreateValidation(t *testing.T) {
	svc, db := newCardTestService(t, "card_validate")
	user := createTestUser(t, db, "card-validate@test.local")
	year := time.Now().Year()

	cases := []CardInput{
		{Number: "1234", ExpMonth: 12, ExpYear: year + 1},
		{Number: "4242424242424242", ExpMonth: 0, ExpYear: year + 1},
		{Number: "4242424242424242", ExpMonth: 13, ExpYear: year + 1},
		{Number: "4242424242424242", ExpMonth: 12, ExpYear: year - 1},
	}
	for idx, input := range cases {
		if _, err := svc.Create(user.ID, input); !errors.Is(err, ErrCardInvalid) {
			t.Fatalf("case %d: expected ErrCardInvalid, got %v", idx, err)
		}
	}
}

func TestCardSetDefaultFlips(t *testing.T) {
	svc, db := newCardTestService(t, "card_default_flip")
	user := createTestUser(t, db, "card-default@test.local")
	year := time.Now().Year() + 1

	first, err := svc.Create(user.ID, CardInput{Number: "4000000000000002", ExpMonth: 6, ExpYear: year})
	if err != nil {
		t.Fatalf("create first card error: %v", err)
	}
	second, err := svc.Create(user.ID, CardInput{Number: "5500000000000004", ExpMonth: 6, ExpYear: year})
	if err != nil {
		t.Fatalf("create second card error: %v", err)
	}
	if second.IsDefault {
		t.Fatalf("expected second card not default")
	}

	if _, err := svc.SetDefault(user.ID, second.ID); err != nil {
		t.Fatalf("SetDefault error: %v", err)
	}
	cards, err := svc.List(user.ID)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(cards) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(cards))
	}
	for _, card := range cards {
		switch card.ID {
		case first.ID:
			if card.IsDefault {
				t.Fatalf("expected first card demoted")
			}
		case second.ID:
			if !card.IsDefault {
				t.Fatalf("expected second card default")
			}
		}
	}
}

func TestCardDeletePromotesRemaining(t *testing.T) {
	svc, db := newCardTestService(t, "card_delete_promote")
	user := createTestUser(t, db, "card-delete@test.local")
	year := time.Now().Year() + 1

	first, err := svc.Create(user.ID, CardInput{Number: "4000000000000002", ExpMonth: 6, ExpYear: year})
	if err != nil {
		t.Fatalf("create first card error: %v", err)
	}
	second, err := svc.Create(user.ID, CardInput{Number: "5500000000000004", ExpMonth: 6, ExpYear: year})
	if err != nil {
		t.Fatalf("create second card error: %v", err)
	}

	if err := svc.Delete(user.ID, first.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	cards, err := svc.List(user.ID)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(cards) != 1 || cards[0].ID != second.ID {
		t.Fatalf("expected only second card, got %+v", cards)
	}
	if !cards[0].IsDefault {
		t.Fatalf("expected remaining card promoted to default")
	}
}

func TestCardScopedToUser(t *testing.T) {
	svc, db := newCardTestService(t, "card_scoped")
	owner := createTestUser(t, db, "card-owner@test.local")
	other := createTestUser(t, db, "card-stranger@test.local")

	card, err := svc.Create(owner.ID, CardInput{Number: "4242424242424242", ExpMonth: 3, ExpYear: time.Now().Year() + 1})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if _, err := svc.Get(other.ID, card.ID); !errors.Is(err, ErrCardNotFound) {
		t.Fatalf("expected ErrCardNotFound for other user, got %v", err)
	}
	if err := svc.Delete(other.ID, card.ID); !errors.Is(err, ErrCardNotFound) {
		t.Fatalf("expected delete denied, got %v", err)
	}
}
