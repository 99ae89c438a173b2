package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/terraincognita07/gymbro/internal/models"
	"github.com/terraincognita07/gymbro/internal/security"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrAuthEmailExists           = errors.New("an account with this email already exists")
	ErrAuthInvalidCredentials    = errors.New("invalid email or password")
	ErrAuthUserNotFound          = errors.New("user not found")
	ErrAuthCurrentPasswordWrong  = errors.New("current password is incorrect")
	ErrAuthNewPasswordMustDiffer = errors.New("new password must differ from the current one")
	ErrAuthUnavailable           = errors.New("authentication is temporarily unavailable")
	ErrAuthMailFailed            = errors.New("failed to send email")
)

type AuthService struct {
	users     UserRepository
	mailer    Mailer
	secretKey []byte
	publicURL string
}

func NewAuthService(users UserRepository, mailer Mailer, secretKey []byte, publicURL string) *AuthService {
	if mailer == nil {
		mailer = NewLogMailer(nil)
	}
	return &AuthService{
		users:     users,
		mailer:    mailer,
		secretKey: secretKey,
		publicURL: strings.TrimRight(strings.TrimSpace(publicURL), "/"),
	}
}

func (service *AuthService) FindByID(userID string) (models.User, error) {
	user, err := service.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrAuthUserNotFound
		}
		return models.User{}, ErrAuthUnavailable
	}
	return user, nil
}

func (service *AuthService) Register(emailRaw string, password string, confirm string, now time.Time) (models.User, error) {
	email := NormalizeAuthEmail(emailRaw)
	if email == "" {
		return models.User{}, ErrAuthEmailInvalid
	}
	if err := ValidateNewPassword(password, confirm); err != nil {
		return models.User{}, err
	}

	exists, err := service.users.ExistsByNormalizedEmail(email)
	if err != nil {
		return models.User{}, ErrAuthUnavailable
	}
	if exists {
		return models.User{}, ErrAuthEmailExists
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, ErrAuthUnavailable
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(passwordHash),
		AuthProvider: models.AuthProviderPassword,
		CreatedAt:    now.UTC(),
	}
	if err := service.users.Create(&user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.User{}, ErrAuthEmailExists
		}
		return models.User{}, ErrAuthUnavailable
	}
	return user, nil
}

func (service *AuthService) Authenticate(emailRaw string, passwordRaw string) (models.User, error) {
	email, password, err := NormalizeCredentialsInput(emailRaw, passwordRaw)
	if err != nil {
		return models.User{}, ErrAuthInvalidCredentials
	}

	user, err := service.users.FindByNormalizedEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrAuthInvalidCredentials
		}
		return models.User{}, ErrAuthUnavailable
	}
	if user.PasswordHash == "" {
		return models.User{}, ErrAuthInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrAuthInvalidCredentials
	}
	return user, nil
}

// RequestMagicLink mails a sign-in link, creating a password-less account on
// first use.
func (service *AuthService) RequestMagicLink(ctx context.Context, emailRaw string, now time.Time) error {
	email := NormalizeAuthEmail(emailRaw)
	if email == "" {
		return ErrAuthEmailInvalid
	}

	user, err := service.findOrCreate(email, models.AuthProviderMagicLink, now)
	if err != nil {
		return err
	}

	token, err := BuildEmailLinkToken(service.secretKey, TokenPurposeMagicLink, user.ID, user.PasswordHash, MagicLinkTokenTTL, now)
	if err != nil {
		return ErrAuthUnavailable
	}

	link := service.link("/api/auth/magic-link/verify", token)
	message := MailMessage{
		To:      user.Email,
		Subject: "Your Gymbro sign-in link",
		Body:    fmt.Sprintf("Sign in to Gymbro with this link (valid for %d minutes):\n%s\n", int(MagicLinkTokenTTL.Minutes()), link),
	}
	if err := service.mailer.Send(ctx, message); err != nil {
		return ErrAuthMailFailed
	}
	return nil
}

func (service *AuthService) VerifyMagicLink(rawToken string, now time.Time) (models.User, error) {
	claims, err := ParseEmailLinkToken(service.secretKey, rawToken, TokenPurposeMagicLink, now)
	if err != nil {
		return models.User{}, err
	}
	user, err := service.FindByID(claims.UserID)
	if err != nil {
		return models.User{}, ErrAuthTokenInvalid
	}
	if !IsPasswordStateFingerprintMatch(claims.PasswordState, user.ID, user.PasswordHash) {
		return models.User{}, ErrAuthTokenInvalidPasswordState
	}
	return user, nil
}

// RequestPasswordReset mails a reset link when the account exists. Unknown
// addresses return nil as well so callers cannot probe for accounts.
func (service *AuthService) RequestPasswordReset(ctx context.Context, emailRaw string, now time.Time) error {
	email := NormalizeAuthEmail(emailRaw)
	if email == "" {
		return ErrAuthEmailInvalid
	}

	user, err := service.users.FindByNormalizedEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return ErrAuthUnavailable
	}

	token, err := BuildEmailLinkToken(service.secretKey, TokenPurposePasswordReset, user.ID, user.PasswordHash, PasswordResetTokenTTL, now)
	if err != nil {
		return ErrAuthUnavailable
	}

	link := service.link("/reset-password", token)
	message := MailMessage{
		To:      user.Email,
		Subject: "Reset your Gymbro password",
		Body:    fmt.Sprintf("Choose a new password with this link (valid for %d minutes):\n%s\n", int(PasswordResetTokenTTL.Minutes()), link),
	}
	if err := service.mailer.Send(ctx, message); err != nil {
		return ErrAuthMailFailed
	}
	return nil
}

func (service *AuthService) ResetPassword(rawToken string, password string, confirm string, now time.Time) (models.User, error) {
	claims, err := ParseEmailLinkToken(service.secretKey, rawToken, TokenPurposePasswordReset, now)
	if err != nil {
		return models.User{}, err
	}
	if err := ValidateNewPassword(password, confirm); err != nil {
		return models.User{}, err
	}

	user, err := service.FindByID(claims.UserID)
	if err != nil {
		return models.User{}, ErrAuthTokenInvalid
	}
	if !IsPasswordStateFingerprintMatch(claims.PasswordState, user.ID, user.PasswordHash) {
		return models.User{}, ErrAuthTokenInvalidPasswordState
	}

	return service.storePassword(user, password, false)
}

// ChangePassword replaces the password of a signed-in user and clears a
// pending forced change.
func (service *AuthService) ChangePassword(userID string, current string, password string, confirm string) (models.User, error) {
	user, err := service.FindByID(userID)
	if err != nil {
		return models.User{}, err
	}
	if user.PasswordHash != "" && bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return models.User{}, ErrAuthCurrentPasswordWrong
	}
	if err := ValidateNewPassword(password, confirm); err != nil {
		return models.User{}, err
	}
	if current == password {
		return models.User{}, ErrAuthNewPasswordMustDiffer
	}
	return service.storePassword(user, password, false)
}

// SignInWithProvider finds or creates the account behind an e-mail address
// confirmed by an external identity provider.
func (service *AuthService) SignInWithProvider(emailRaw string, provider string, now time.Time) (models.User, error) {
	email := NormalizeAuthEmail(emailRaw)
	if email == "" {
		return models.User{}, ErrAuthEmailInvalid
	}
	return service.findOrCreate(email, provider, now)
}

// IssueTemporaryPassword replaces the password with a random one that must be
// changed on the next sign-in.
func (service *AuthService) IssueTemporaryPassword(emailRaw string) (string, error) {
	user, err := service.findExisting(emailRaw)
	if err != nil {
		return "", err
	}

	temporaryPassword, err := GenerateTemporaryPassword(12)
	if err != nil {
		return "", ErrAuthUnavailable
	}
	if _, err := service.storePassword(user, temporaryPassword, true); err != nil {
		return "", err
	}
	return temporaryPassword, nil
}

func (service *AuthService) SetPassword(emailRaw string, password string) error {
	user, err := service.findExisting(emailRaw)
	if err != nil {
		return err
	}
	if err := ValidatePasswordStrength(password); err != nil {
		return err
	}
	_, err = service.storePassword(user, password, false)
	return err
}

func GenerateTemporaryPassword(length int) (string, error) {
	if length < 8 {
		length = 8
	}
	for {
		candidate, err := security.RandomString(length, security.ReadableAlphabet)
		if err != nil {
			return "", err
		}
		if ValidatePasswordStrength(candidate) == nil {
			return candidate, nil
		}
	}
}

func (service *AuthService) findExisting(emailRaw string) (models.User, error) {
	email := NormalizeAuthEmail(emailRaw)
	if email == "" {
		return models.User{}, ErrAuthEmailInvalid
	}
	user, err := service.users.FindByNormalizedEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrAuthUserNotFound
		}
		return models.User{}, ErrAuthUnavailable
	}
	return user, nil
}

func (service *AuthService) findOrCreate(email string, provider string, now time.Time) (models.User, error) {
	user, err := service.users.FindByNormalizedEmail(email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrAuthUnavailable
	}

	user = models.User{Email: email, AuthProvider: provider, CreatedAt: now.UTC()}
	if err := service.users.Create(&user); err != nil {
		return models.User{}, ErrAuthUnavailable
	}
	return user, nil
}

func (service *AuthService) storePassword(user models.User, password string, mustChange bool) (models.User, error) {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, ErrAuthUnavailable
	}
	if err := service.users.UpdatePassword(user.ID, string(passwordHash), mustChange); err != nil {
		return models.User{}, ErrAuthUnavailable
	}
	user.PasswordHash = string(passwordHash)
	user.MustChangePassword = mustChange
	return user, nil
}

func (service *AuthService) link(path string, token string) string {
	return service.publicURL + path + "?token=" + url.QueryEscape(token)
}
