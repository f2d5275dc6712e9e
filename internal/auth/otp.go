// Package auth implements the one-time-code login flow. Codes are generated
// on demand, stored on the user record with a short expiry, and cleared on
// successful verification. Delivery is mocked: the code is logged and
// returned to the caller, which is acceptable for the demo flow only.
package auth

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/dvloznov/financewise/internal/domain"
	"github.com/dvloznov/financewise/internal/ingest"
	"github.com/dvloznov/financewise/internal/store"
)

const (
	otpDigits = 6
	otpTTL    = 5 * time.Minute
)

var (
	// ErrInvalidOTP is returned when the submitted code does not match.
	ErrInvalidOTP = errors.New("invalid OTP")
	// ErrExpiredOTP is returned when the code matched but has expired.
	ErrExpiredOTP = errors.New("OTP expired")
)

// UserStore is the slice of the user repository the auth flow needs.
// *store.UserRepository satisfies it.
type UserStore interface {
	Insert(ctx context.Context, user *domain.User) error
	FindByPhone(ctx context.Context, phone string) (*domain.User, error)
	SetOTP(ctx context.Context, phone, otp string, expiry time.Time) error
	ClearOTP(ctx context.Context, phone string) error
}

// TransactionCounter reports how many transactions a user has.
// *store.TransactionRepository satisfies it.
type TransactionCounter interface {
	CountByUser(ctx context.Context, userID string) (int64, error)
}

// SampleSource generates demo data for first-time users.
// *ingest.SampleGenerator satisfies it.
type SampleSource interface {
	Generate(ctx context.Context, userID string) (*ingest.SampleResult, error)
}

// Service runs the send/verify OTP flow.
type Service struct {
	users   UserStore
	txns    TransactionCounter
	samples SampleSource
	rng     *rand.Rand
	log     zerolog.Logger
}

// NewService creates an auth service over the given collaborators.
func NewService(users UserStore, txns TransactionCounter, samples SampleSource, log zerolog.Logger) *Service {
	return &Service{
		users:   users,
		txns:    txns,
		samples: samples,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		log:     log,
	}
}

// SendOTP issues a fresh code for the phone number, creating the user record
// on first contact. The code is returned so the demo client can display it;
// a production build would send an SMS instead.
func (s *Service) SendOTP(ctx context.Context, phone string) (string, error) {
	code := s.generateCode()
	expiry := time.Now().UTC().Add(otpTTL)

	_, err := s.users.FindByPhone(ctx, phone)
	switch {
	case err == nil:
		if err := s.users.SetOTP(ctx, phone, code, expiry); err != nil {
			return "", fmt.Errorf("SendOTP: %w", err)
		}
	case errors.Is(err, store.ErrNotFound):
		user := domain.NewUser(phone)
		user.OTP = code
		user.OTPExpiry = &expiry
		if err := s.users.Insert(ctx, user); err != nil {
			return "", fmt.Errorf("SendOTP: creating user: %w", err)
		}
	default:
		return "", fmt.Errorf("SendOTP: %w", err)
	}

	s.log.Info().Str("phone", phone).Str("otp", code).Msg("OTP issued")
	return code, nil
}

// VerifyOTP checks the submitted code and logs the user in. First-time users
// with no transactions get sample data generated synchronously before the
// call returns.
func (s *Service) VerifyOTP(ctx context.Context, phone, code string) (*domain.User, error) {
	user, err := s.users.FindByPhone(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("VerifyOTP: %w", err)
	}

	if user.OTP == "" || user.OTP != code {
		return nil, ErrInvalidOTP
	}
	if user.OTPExpiry != nil && time.Now().UTC().After(*user.OTPExpiry) {
		return nil, ErrExpiredOTP
	}

	if err := s.users.ClearOTP(ctx, phone); err != nil {
		return nil, fmt.Errorf("VerifyOTP: clearing OTP: %w", err)
	}

	count, err := s.txns.CountByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("VerifyOTP: counting transactions: %w", err)
	}
	if count == 0 {
		result, err := s.samples.Generate(ctx, user.ID)
		if err != nil {
			return nil, fmt.Errorf("VerifyOTP: generating sample data: %w", err)
		}
		s.log.Info().
			Str("user_id", user.ID).
			Int("transactions", result.Transactions).
			Msg("Sample data generated for first login")
	}

	return user, nil
}

func (s *Service) generateCode() string {
	code := make([]byte, otpDigits)
	for i := range code {
		code[i] = byte('0' + s.rng.Intn(10))
	}
	return string(code)
}
