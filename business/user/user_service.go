package user

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pobyzaarif/goshortcute"

	"shopmarket/domain"
	"shopmarket/internal/repository/redis"
	"shopmarket/pkg/logger"
	"shopmarket/pkg/utils"
)

// UserRepository contract interface
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uint) error
	UpdateEmailVerification(ctx context.Context, id uint, isVerified bool) error
}

// EmailRepository contract interface
type EmailRepository interface {
	SendEmail(ctx context.Context, toName, toEmail, subject, body string) error
}

// SessionRepository stores issued tokens so they can be revoked early.
type SessionRepository interface {
	StoreSession(ctx context.Context, data redis.SessionData, ttl time.Duration) error
	ValidateTokenFromRedis(ctx context.Context, token string) (string, error)
	DeleteSession(ctx context.Context, userID, token string) error
}

const (
	RoleCustomer = "customer"
	RoleSeller   = "seller"

	verificationCodeTTL      = 5 * time.Minute
	sessionTTL               = 24 * time.Hour
	subjectRegisterAccount   = "Activate your account"
	emailBodyRegisterAccount = "Hi %v, activate your account by opening the link below.\n\n%v\n\nNote: the link is only valid for %v minutes."
)

type userService struct {
	userRepo                UserRepository
	validate                *validator.Validate
	emailRepo               EmailRepository
	sessionRepo             SessionRepository
	appEmailVerificationKey string
	appDeploymentUrl        string
}

func NewUserService(
	userRepo UserRepository,
	validate *validator.Validate,
	emailRepo EmailRepository,
	sessionRepo SessionRepository,
	appEmailVerificationKey string,
	appDeploymentUrl string,
) *userService {
	return &userService{
		userRepo:                userRepo,
		validate:                validate,
		emailRepo:               emailRepo,
		sessionRepo:             sessionRepo,
		appEmailVerificationKey: appEmailVerificationKey,
		appDeploymentUrl:        appDeploymentUrl,
	}
}

func (s *userService) Register(ctx context.Context, user *domain.User) (domain.User, error) {
	if err := s.validate.Var(user.Email, "required,email"); err != nil {
		return domain.User{}, fmt.Errorf("%w: invalid email format", domain.ErrValidation)
	}

	if err := s.validate.Var(user.Password, "required,min=6"); err != nil {
		return domain.User{}, fmt.Errorf("%w: password must be at least 6 characters", domain.ErrValidation)
	}

	existingUser, err := s.userRepo.FindByEmail(ctx, user.Email)
	if err == nil && existingUser.ID > 0 {
		return domain.User{}, fmt.Errorf("%w: email already exists", domain.ErrConflict)
	}

	passwordHash, err := utils.HashPassword(user.Password)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return domain.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser := domain.User{
		FullName:   user.FullName,
		Email:      user.Email,
		Password:   passwordHash,
		IsVerified: false,
		Role:       RoleCustomer,
	}

	if err := s.userRepo.Create(ctx, &newUser); err != nil {
		logger.Error("Failed to create new user", err)
		return domain.User{}, err
	}

	s.sendVerificationEmail(ctx, newUser)

	newUser.Password = ""
	return newUser, nil
}

func (s *userService) sendVerificationEmail(ctx context.Context, user domain.User) {
	expAt := time.Now().Add(verificationCodeTTL).Unix()

	verificationCode := fmt.Sprintf("%v|%v", user.Email, expAt)
	verificationCodeEncrypt, err := goshortcute.AESCBCEncrypt([]byte(verificationCode), []byte(s.appEmailVerificationKey))
	if err != nil {
		logger.Error("Failed to encrypt verification code", err)
		return
	}

	strEncode := goshortcute.StringtoBase64Encode(verificationCodeEncrypt)
	activationLink := s.appDeploymentUrl + "/api/v1/users/email-verification/" + strEncode

	body := fmt.Sprintf(emailBodyRegisterAccount, user.FullName, activationLink, int(verificationCodeTTL.Minutes()))
	if err := s.emailRepo.SendEmail(ctx, user.FullName, user.Email, subjectRegisterAccount, body); err != nil {
		logger.Warn("Failed to send verification email", err)
	}
}

func (s *userService) VerifyEmail(ctx context.Context, verificationCodeEncrypt string) error {
	strDecode := goshortcute.StringtoBase64Decode(verificationCodeEncrypt)
	verificationCodeDecrypt, err := goshortcute.AESCBCDecrypt([]byte(strDecode), []byte(s.appEmailVerificationKey))
	if err != nil {
		return fmt.Errorf("%w: invalid or expired url", domain.ErrValidation)
	}

	verificationCode := strings.Split(verificationCodeDecrypt, "|")
	if len(verificationCode) != 2 {
		return fmt.Errorf("%w: invalid or expired url", domain.ErrValidation)
	}

	email := verificationCode[0]
	ts, err := strconv.ParseInt(verificationCode[1], 10, 64)
	if err != nil {
		return fmt.Errorf("%w: invalid or expired url", domain.ErrValidation)
	}

	if time.Now().After(time.Unix(ts, 0)) {
		return fmt.Errorf("%w: invalid or expired url", domain.ErrValidation)
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		logger.Error("Failed to resolve user for verification", err)
		return err
	}

	if user.IsVerified {
		return fmt.Errorf("%w: invalid or expired url", domain.ErrValidation)
	}

	if err := s.userRepo.UpdateEmailVerification(ctx, user.ID, true); err != nil {
		logger.Error("Failed to mark email verified", err)
		return err
	}

	logger.Info("Email verified", "user_id", user.ID)

	return nil
}

func (s *userService) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		logger.Error("Invalid user credentials", err)
		return "", domain.User{}, fmt.Errorf("%w: invalid credentials", domain.ErrPermissionDenied)
	}

	if !utils.CheckPassword(password, user.Password) {
		return "", domain.User{}, fmt.Errorf("%w: invalid credentials", domain.ErrPermissionDenied)
	}

	if !user.IsVerified {
		return "", domain.User{}, fmt.Errorf("%w: email address has not been verified", domain.ErrPermissionDenied)
	}

	userIDStr := strconv.FormatUint(uint64(user.ID), 10)
	token, err := utils.GenerateJWT(userIDStr, user.Role)
	if err != nil {
		logger.Error("Failed to generate token", err)
		return "", domain.User{}, fmt.Errorf("failed to generate token: %w", err)
	}

	now := time.Now()
	session := redis.SessionData{
		UserID:    userIDStr,
		Role:      user.Role,
		Token:     token,
		IssuedAt:  now,
		ExpiresAt: now.Add(sessionTTL),
	}
	if err := s.sessionRepo.StoreSession(ctx, session, sessionTTL); err != nil {
		logger.Error("Failed to store session", err)
		return "", domain.User{}, err
	}

	user.Password = ""
	return token, user, nil
}

func (s *userService) ValidateTokenFromRedis(ctx context.Context, token string) (string, error) {
	return s.sessionRepo.ValidateTokenFromRedis(ctx, token)
}

func (s *userService) Logout(ctx context.Context, userID uint, token string) error {
	return s.sessionRepo.DeleteSession(ctx, strconv.FormatUint(uint64(userID), 10), token)
}

func (s *userService) GetUserByID(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Failed to get user by ID", err)
		return domain.User{}, err
	}

	user.Password = ""
	return user, nil
}

func (s *userService) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to get all users", err)
		return nil, err
	}

	for i := range users {
		users[i].Password = ""
	}

	return users, nil
}

func (s *userService) UpdateUser(ctx context.Context, id uint, updateData *domain.User) (domain.User, error) {
	existingUser, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("User not found for update", err)
		return domain.User{}, err
	}

	if updateData.FullName != "" {
		existingUser.FullName = updateData.FullName
	}

	if updateData.Email != "" {
		if err := s.validate.Var(updateData.Email, "required,email"); err != nil {
			return domain.User{}, fmt.Errorf("%w: invalid email format", domain.ErrValidation)
		}

		userWithEmail, err := s.userRepo.FindByEmail(ctx, updateData.Email)
		if err == nil && userWithEmail.ID != id {
			return domain.User{}, fmt.Errorf("%w: email already exists", domain.ErrConflict)
		}

		existingUser.Email = updateData.Email
	}

	if updateData.Password != "" {
		if err := s.validate.Var(updateData.Password, "required,min=6"); err != nil {
			return domain.User{}, fmt.Errorf("%w: password must be at least 6 characters", domain.ErrValidation)
		}

		passwordHash, err := utils.HashPassword(updateData.Password)
		if err != nil {
			logger.Error("Failed to hash password", err)
			return domain.User{}, fmt.Errorf("failed to hash password: %w", err)
		}

		existingUser.Password = passwordHash
	}

	if err := s.userRepo.Update(ctx, &existingUser); err != nil {
		logger.Error("Failed to update user", err)
		return domain.User{}, err
	}

	existingUser.Password = ""
	return existingUser, nil
}

func (s *userService) DeleteUser(ctx context.Context, id uint) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		logger.Error("Failed to delete user", err)
		return err
	}

	logger.Info("User deleted", "user_id", id)

	return nil
}
