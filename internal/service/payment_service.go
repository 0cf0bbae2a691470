package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/sefazor/ourmatches-backend/internal/models"
	"github.com/sefazor/ourmatches-backend/internal/repository"
	"github.com/sefazor/ourmatches-backend/pkg/payment"
	"github.com/stripe/stripe-go/v74"
)

type PaymentService struct {
	stripeService *payment.StripeService
	userRepo      *repository.UserRepository
}

func NewPaymentService(stripeService *payment.StripeService, userRepo *repository.UserRepository) *PaymentService {
	return &PaymentService{
		stripeService: stripeService,
		userRepo:      userRepo,
	}
}

// CreatePremiumCheckout starts a Stripe checkout for the premium membership.
func (s *PaymentService) CreatePremiumCheckout(userID uint) (*models.CheckoutSession, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if user.IsPremium {
		return nil, errors.New("you already have a premium membership")
	}

	session, err := s.stripeService.CreatePremiumCheckoutSession(
		user.Username,
		map[string]string{
			"user_id": fmt.Sprintf("%d", userID),
		},
	)
	if err != nil {
		return nil, err
	}

	return &models.CheckoutSession{
		ID:  session.ID,
		URL: session.URL,
	}, nil
}

// HandleStripeWebhook flips the premium flag when checkout completes.
func (s *PaymentService) HandleStripeWebhook(event *stripe.Event) error {
	switch event.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return err
		}

		userIDStr := session.Metadata["user_id"]
		userID, err := strconv.ParseUint(userIDStr, 10, 32)
		if err != nil {
			return fmt.Errorf("invalid user_id in session metadata: %q", userIDStr)
		}

		user, err := s.userRepo.GetByID(uint(userID))
		if err != nil {
			return err
		}

		user.IsPremium = true
		return s.userRepo.Update(user)
	}

	return nil
}
