package application

import (
	"context"
	"strconv"

	"github.com/sirupsen/logrus"

	repo "github.com/mentorbit/lms-api/internal/domain/repository"
	"github.com/mentorbit/lms-api/pkg/payment"
)

// PaymentService wires checkout requests to the payment provider. Provider
// errors propagate unchanged; there is no retry or reconciliation here.
type PaymentService struct {
	Courses repo.CourseRepository
	Promos  repo.PromoRepository
	Pay     *payment.Client
	Logger  *logrus.Logger
}

// CreateIntent builds a payment intent for a course. Amount comes from the
// course's discount price when set, otherwise its price; a promo code, when
// supplied and valid, applies its percentage. Fractional results are
// truncated to integer currency units.
func (s *PaymentService) CreateIntent(ctx context.Context, courseID, userID, currency, promoID string) (*payment.Intent, error) {
	c, err := s.Courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	amount := c.Price
	if c.DiscountPrice > 0 && c.DiscountPrice < amount {
		amount = c.DiscountPrice
	}
	if promoID != "" {
		p, err := s.Promos.GetByID(ctx, promoID)
		if err != nil {
			return nil, err
		}
		if p.CourseID == courseID {
			amount = int64(float64(amount) * float64(100-p.Percentage) / 100)
		}
	}

	meta := map[string]string{
		"course_id": courseID,
		"user_id":   userID,
		"amount":    strconv.FormatInt(amount, 10),
	}
	return s.Pay.CreateIntent(amount, currency, meta)
}

// UpdateIntent adjusts an existing intent's amount.
func (s *PaymentService) UpdateIntent(ctx context.Context, intentID string, amount int64) (*payment.Intent, error) {
	return s.Pay.UpdateIntent(intentID, amount, map[string]string{"amount": strconv.FormatInt(amount, 10)})
}
