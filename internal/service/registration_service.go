package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"log"
	"math/big"
	"regexp"
	"strings"
	"time"

	"github.com/yourusername/hostpanel-api/internal/domain/entity"
	"github.com/yourusername/hostpanel-api/internal/domain/repository"
	apperrors "github.com/yourusername/hostpanel-api/internal/pkg/errors"
)

// Registration audiences: which entity namespace an OTP challenge belongs to.
const (
	AudienceUser    = "user"
	AudiencePartner = "partner"
)

var emailShapeRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// SendCodeResult is the outcome of RequestCode. A failed delivery is a soft
// success: the challenge stands, and the code is surfaced to the caller when
// the deployment allows it, so registration can proceed without a working
// mail gateway. That trade-off favors completion over delivery guarantees.
type SendCodeResult struct {
	DeliveryFailed bool
	CodeForTesting string
}

// UserRegistrationInput содержит все данные для регистрации пользователя
type UserRegistrationInput struct {
	Email    string
	FullName string
	Password string
	Phone    string
	Company  string
	Address  string
	City     string
	Country  string
}

// PartnerRegistrationInput содержит все данные заявки партнёра
type PartnerRegistrationInput struct {
	Email       string
	CompanyName string
	ContactName string
	Phone       string
	Website     string
	Address     string
	City        string
	Country     string
	TaxNumber   string
}

// RegistrationService drives the OTP-gated registration flow:
// request a code, verify it, then submit the full form. No registrant row is
// ever created before the email passed verification, and a code validates at
// most once. State lives entirely in the record store, keyed by email, so the
// flow survives process restarts and horizontal scaling.
type RegistrationService struct {
	userRepo      repository.UserRepository
	partnerRepo   repository.PartnerRepository
	challengeRepo repository.OtpChallengeRepository
	emailService  EmailService

	codeTTL             time.Duration
	verifiedWindow      time.Duration
	maxAttempts         int
	exposeCodeOnFailure bool
}

func NewRegistrationService(
	userRepo repository.UserRepository,
	partnerRepo repository.PartnerRepository,
	challengeRepo repository.OtpChallengeRepository,
	emailService EmailService,
	codeTTL time.Duration,
	verifiedWindow time.Duration,
	maxAttempts int,
	exposeCodeOnFailure bool,
) (*RegistrationService, error) {
	if userRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if partnerRepo == nil {
		return nil, fmt.Errorf("partner repository is required")
	}
	if challengeRepo == nil {
		return nil, fmt.Errorf("otp challenge repository is required")
	}
	if emailService == nil {
		return nil, fmt.Errorf("email service is required")
	}
	if codeTTL <= 0 {
		codeTTL = 10 * time.Minute
	}
	if verifiedWindow <= 0 {
		verifiedWindow = 30 * time.Minute
	}
	if maxAttempts <= 0 {
		maxAttempts = 5
	}

	return &RegistrationService{
		userRepo:            userRepo,
		partnerRepo:         partnerRepo,
		challengeRepo:       challengeRepo,
		emailService:        emailService,
		codeTTL:             codeTTL,
		verifiedWindow:      verifiedWindow,
		maxAttempts:         maxAttempts,
		exposeCodeOnFailure: exposeCodeOnFailure,
	}, nil
}

// RequestCode issues a fresh OTP challenge for the email and mails the code.
// A new challenge supersedes any previous unconsumed one for the same email,
// so of two concurrent requests only the most recent code can ever verify.
// The duplicate check runs first: no code is wasted on an address that cannot
// register anyway.
func (s *RegistrationService) RequestCode(ctx context.Context, email, audience string) (*SendCodeResult, error) {
	email = normalizeEmail(email)
	if !emailShapeRe.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email format", apperrors.ErrValidation)
	}
	if audience != AudienceUser && audience != AudiencePartner {
		return nil, fmt.Errorf("%w: audience must be %q or %q", apperrors.ErrValidation, AudienceUser, AudiencePartner)
	}

	if err := s.checkEmailAvailable(email, audience); err != nil {
		return nil, err
	}

	code, err := generateOtpCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate otp code: %w", err)
	}

	now := time.Now()
	challenge := &entity.OtpChallenge{
		Email:       email,
		Code:        code,
		Audience:    audience,
		IssuedAt:    now,
		ExpiresAt:   now.Add(s.codeTTL),
		MaxAttempts: s.maxAttempts,
	}
	if err := s.challengeRepo.Create(challenge); err != nil {
		return nil, fmt.Errorf("failed to create otp challenge: %w", err)
	}

	idempotencyKey := fmt.Sprintf("reg-otp:%s:%d", email, challenge.ID)
	if err := s.emailService.SendOtpCode(ctx, email, code, idempotencyKey); err != nil {
		log.Printf("[RegistrationService] не удалось отправить код на %s: %v", email, err)
		result := &SendCodeResult{DeliveryFailed: true}
		if s.exposeCodeOnFailure {
			result.CodeForTesting = code
		}
		return result, nil
	}

	return &SendCodeResult{}, nil
}

// VerifyCode validates the code against the active challenge for the email and
// consumes it. Consumption is one-time: the same code can never validate
// again. A mismatch does not consume the challenge, the caller may retry until
// the attempt cap.
func (s *RegistrationService) VerifyCode(ctx context.Context, email, code string) error {
	email = normalizeEmail(email)
	code = strings.TrimSpace(code)
	if len(code) != otpCodeLength || !isDigits(code) {
		return fmt.Errorf("%w: otp code must be %d digits", apperrors.ErrValidation, otpCodeLength)
	}

	challenge, err := s.challengeRepo.GetActiveByEmail(email)
	if err != nil {
		if err == apperrors.ErrNotFound {
			return ErrNoActiveChallenge
		}
		return fmt.Errorf("failed to load otp challenge: %w", err)
	}

	now := time.Now()
	if challenge.IsConsumed() {
		return ErrChallengeConsumed
	}
	if challenge.IsExpired(now) {
		return ErrChallengeExpired
	}
	if challenge.AttemptCount >= challenge.MaxAttempts {
		return ErrTooManyAttempts
	}

	if subtle.ConstantTimeCompare([]byte(code), []byte(challenge.Code)) != 1 {
		if err := s.challengeRepo.IncrementAttempts(challenge.ID); err != nil {
			log.Printf("[RegistrationService] не удалось увеличить счётчик попыток для challenge %d: %v", challenge.ID, err)
		}
		if challenge.AttemptCount+1 >= challenge.MaxAttempts {
			return ErrTooManyAttempts
		}
		return ErrCodeMismatch
	}

	// Условный UPDATE: из двух одновременных verify победит ровно один
	if err := s.challengeRepo.MarkConsumed(challenge.ID, now); err != nil {
		if err == apperrors.ErrConflict {
			return ErrChallengeConsumed
		}
		return fmt.Errorf("failed to consume otp challenge: %w", err)
	}
	return nil
}

// VerifiedEmail reports whether the email passed OTP verification recently
// enough to submit the registration form. Submit handlers never trust a
// client-claimed email on its own.
func (s *RegistrationService) VerifiedEmail(ctx context.Context, email, audience string) (bool, error) {
	email = normalizeEmail(email)
	challenge, err := s.challengeRepo.LatestConsumedByEmail(email)
	if err != nil {
		if err == apperrors.ErrNotFound {
			return false, nil
		}
		return false, fmt.Errorf("failed to load consumed otp challenge: %w", err)
	}
	if challenge.Audience != audience {
		return false, nil
	}
	if challenge.ConsumedAt == nil {
		return false, nil
	}
	return time.Since(*challenge.ConsumedAt) <= s.verifiedWindow, nil
}

// RegisterUser creates the user once the email passed OTP verification.
// Uniqueness is re-checked at creation time: the proactive check in
// RequestCode does not protect against a race, the unique index does.
func (s *RegistrationService) RegisterUser(ctx context.Context, input UserRegistrationInput) (*entity.User, error) {
	input.Email = normalizeEmail(input.Email)
	input.FullName = strings.TrimSpace(input.FullName)

	if input.FullName == "" {
		return nil, fmt.Errorf("%w: full_name is required", apperrors.ErrValidation)
	}
	if len(input.Password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", apperrors.ErrValidation)
	}

	verified, err := s.VerifiedEmail(ctx, input.Email, AudienceUser)
	if err != nil {
		return nil, err
	}
	if !verified {
		return nil, ErrEmailNotVerified
	}

	if _, err := s.userRepo.GetByEmail(input.Email); err == nil {
		return nil, ErrDuplicateEmail
	} else if err != apperrors.ErrNotFound {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	now := time.Now()
	user := &entity.User{
		FullName:        input.FullName,
		Email:           input.Email,
		Password:        input.Password,
		Phone:           strings.TrimSpace(input.Phone),
		Company:         strings.TrimSpace(input.Company),
		Address:         strings.TrimSpace(input.Address),
		City:            strings.TrimSpace(input.City),
		Country:         strings.TrimSpace(input.Country),
		Role:            "user",
		EmailVerifiedAt: &now,
	}
	if err := s.userRepo.Create(user); err != nil {
		if err == apperrors.ErrConflict {
			// Гонка двух submit за один email: уникальный индекс решает
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Printf("[RegistrationService] пользователь ID=%d (%s) зарегистрирован", user.ID, user.Email)
	return user, nil
}

// RegisterPartner creates the partner application in PENDING_APPROVAL once
// the email passed OTP verification. Same uniqueness rules as users.
func (s *RegistrationService) RegisterPartner(ctx context.Context, input PartnerRegistrationInput) (*entity.Partner, error) {
	input.Email = normalizeEmail(input.Email)
	input.CompanyName = strings.TrimSpace(input.CompanyName)
	input.ContactName = strings.TrimSpace(input.ContactName)

	if input.CompanyName == "" {
		return nil, fmt.Errorf("%w: company_name is required", apperrors.ErrValidation)
	}
	if input.ContactName == "" {
		return nil, fmt.Errorf("%w: contact_name is required", apperrors.ErrValidation)
	}

	verified, err := s.VerifiedEmail(ctx, input.Email, AudiencePartner)
	if err != nil {
		return nil, err
	}
	if !verified {
		return nil, ErrEmailNotVerified
	}

	if _, err := s.partnerRepo.GetByEmail(input.Email); err == nil {
		return nil, ErrDuplicateEmail
	} else if err != apperrors.ErrNotFound {
		return nil, fmt.Errorf("failed to check existing partner: %w", err)
	}

	now := time.Now()
	partner := &entity.Partner{
		CompanyName:     input.CompanyName,
		ContactName:     input.ContactName,
		Email:           input.Email,
		Phone:           strings.TrimSpace(input.Phone),
		Website:         strings.TrimSpace(input.Website),
		Address:         strings.TrimSpace(input.Address),
		City:            strings.TrimSpace(input.City),
		Country:         strings.TrimSpace(input.Country),
		TaxNumber:       strings.TrimSpace(input.TaxNumber),
		Status:          entity.PartnerStatusPendingApproval,
		EmailVerifiedAt: &now,
	}
	if err := s.partnerRepo.Create(partner); err != nil {
		if err == apperrors.ErrConflict {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create partner: %w", err)
	}

	log.Printf("[RegistrationService] заявка партнёра ID=%d (%s) создана", partner.ID, partner.Email)
	return partner, nil
}

// SweepExpired removes challenges that are past both their expiry and the
// verified window. Pure hygiene: expiry is always enforced by timestamp.
func (s *RegistrationService) SweepExpired(ctx context.Context) (int64, error) {
	cutoff := time.Now().Add(-s.verifiedWindow)
	return s.challengeRepo.DeleteExpiredBefore(cutoff)
}

func (s *RegistrationService) checkEmailAvailable(email, audience string) error {
	var err error
	switch audience {
	case AudienceUser:
		_, err = s.userRepo.GetByEmail(email)
	case AudiencePartner:
		_, err = s.partnerRepo.GetByEmail(email)
	}
	if err == nil {
		return ErrDuplicateEmail
	}
	if err != apperrors.ErrNotFound {
		return fmt.Errorf("failed to check existing registrant: %w", err)
	}
	return nil
}

const otpCodeLength = 6

func generateOtpCode() (string, error) {
	max := big.NewInt(1000000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
