package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"workspace/internal/auth"
	"workspace/internal/errors"
	"workspace/internal/model"
	"workspace/internal/repository"
)

const bcryptCost = 10

// now is the service clock. Stored times are UTC.
var now = func() time.Time { return time.Now().UTC() }

var comparePassword = bcrypt.CompareHashAndPassword

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// burnPasswordCheck spends the same bcrypt work as a real comparison so
// that unknown accounts are not distinguishable by response time.
func burnPasswordCheck(password string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("workspace-dummy-password"), bcryptCost)
	})
	_ = comparePassword(dummyHash, []byte(password))
}

// AuthService handles sign-up, sign-in and session resolution.
type AuthService interface {
	SignUp(ctx context.Context, email, password, name string) (*model.User, error)
	SignIn(ctx context.Context, email, password string) (*model.Identity, error)
	SignOut(ctx context.Context, token string) error
	ResolveSession(ctx context.Context, token string) (*model.Identity, error)
}

type authService struct {
	users       repository.UserRepository
	credentials repository.CredentialRepository
	sessions    repository.SessionRepository
	revocations auth.RevocationListInterface
	sessionTTL  time.Duration
	logger      *zap.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	users repository.UserRepository,
	credentials repository.CredentialRepository,
	sessions repository.SessionRepository,
	revocations auth.RevocationListInterface,
	sessionTTL time.Duration,
	logger *zap.Logger,
) AuthService {
	return &authService{
		users:       users,
		credentials: credentials,
		sessions:    sessions,
		revocations: revocations,
		sessionTTL:  sessionTTL,
		logger:      logger,
	}
}

// SignUp creates a user with a hashed password credential.
func (s *authService) SignUp(ctx context.Context, email, password, name string) (*model.User, error) {
	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, errors.ErrUserAlreadyExists
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email: email,
		Name:  name,
	}
	if err := s.users.CreateWithCredential(ctx, user, string(hashedPassword)); err != nil {
		if err == gorm.ErrDuplicatedKey {
			return nil, errors.ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// SignIn verifies the email/password pair and opens a session. Unknown
// emails, missing credentials and wrong passwords all yield
// ErrInvalidCredentials.
func (s *authService) SignIn(ctx context.Context, email, password string) (*model.Identity, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			s.logger.Debug("sign-in failed: unknown email", zap.String("email", email))
			burnPasswordCheck(password)
			return nil, errors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	credential, err := s.credentials.FindByUser(ctx, user.ID, model.ProviderCredential)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			s.logger.Debug("sign-in failed: no password credential", zap.String("user_id", user.ID.String()))
			burnPasswordCheck(password)
			return nil, errors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find credential: %w", err)
	}

	if err := comparePassword([]byte(credential.PasswordHash), []byte(password)); err != nil {
		s.logger.Debug("sign-in failed: password mismatch", zap.String("user_id", user.ID.String()))
		return nil, errors.ErrInvalidCredentials
	}

	token, err := auth.NewToken()
	if err != nil {
		return nil, fmt.Errorf("generate session token: %w", err)
	}

	session := &model.Session{
		UserID:    user.ID,
		TokenHash: auth.HashToken(token),
		ExpiresAt: now().Add(s.sessionTTL),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	return &model.Identity{
		User:    *user,
		Session: model.SessionInfo{Token: token, ExpiresAt: session.ExpiresAt},
	}, nil
}

// SignOut deletes the session behind token and marks it revoked. Unknown
// tokens are ignored.
func (s *authService) SignOut(ctx context.Context, token string) error {
	hash := auth.HashToken(token)
	if err := s.sessions.DeleteByTokenHash(ctx, hash); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return s.revocations.Revoke(ctx, hash, s.sessionTTL)
}

// ResolveSession returns the identity behind token, or nil when the token is
// unknown, revoked or expired. The session row is read on every call; a
// revocation marker can only short-circuit a denial. Errors are store
// failures only.
func (s *authService) ResolveSession(ctx context.Context, token string) (*model.Identity, error) {
	if token == "" {
		return nil, nil
	}
	hash := auth.HashToken(token)

	if revoked, _ := s.revocations.IsRevoked(ctx, hash); revoked {
		return nil, nil
	}

	session, err := s.sessions.FindByTokenHash(ctx, hash)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("find session: %w", err)
	}
	if session.Expired(now()) || session.User == nil {
		return nil, nil
	}

	return &model.Identity{
		User:    *session.User,
		Session: model.SessionInfo{Token: token, ExpiresAt: session.ExpiresAt},
	}, nil
}
