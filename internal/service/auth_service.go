package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/abhishek972986/porter-managment/internal/apierror"
	"github.com/abhishek972986/porter-managment/internal/config"
	"github.com/abhishek972986/porter-managment/internal/dto"
	"github.com/abhishek972986/porter-managment/internal/model"
	"github.com/abhishek972986/porter-managment/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"

	BcryptCost = 12
)

// TokenClaims are embedded in both token kinds. They carry no role; the
// role is read from the user row on every request.
type TokenClaims struct {
	UserID string `json:"user_id"`
	Type   string `json:"typ"`
	jwt.RegisteredClaims
}

// TokenStore remembers revoked refresh tokens until they expire.
type TokenStore interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.AuthResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	Profile(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
	// Authenticate validates an access token and returns the active user.
	Authenticate(ctx context.Context, accessToken string) (*model.User, error)
}

type authService struct {
	repo     repository.UserRepository
	tokens   TokenStore // optional
	activity ActivityService
	cfg      *config.Config
}

func NewAuthService(repo repository.UserRepository, tokens TokenStore, activity ActivityService, cfg *config.Config) AuthService {
	return &authService{repo: repo, tokens: tokens, activity: activity, cfg: cfg}
}

var errInvalidCredentials = apierror.Unauthorized("invalid email or password")

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, apierror.Conflict("a user with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), BcryptCost)
	if err != nil {
		return nil, err
	}
	role := req.Role
	if role == "" {
		role = model.RoleViewer
	}
	user := &model.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Active:       true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Conflict("a user with this email already exists")
		}
		return nil, err
	}
	return s.issue(user)
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errInvalidCredentials
	}
	if !user.Active {
		return nil, apierror.Unauthorized("account is inactive")
	}

	resp, err := s.issue(user)
	if err != nil {
		return nil, err
	}
	s.activity.Record(ctx, user.ID, model.ActivityUserLogin, user.Name+" logged in", map[string]any{"email": user.Email})
	return resp, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	claims, err := s.parse(refreshToken, s.cfg.JWTRefreshSecret, tokenTypeRefresh)
	if err != nil {
		return nil, apierror.Unauthorized("invalid or expired refresh token")
	}
	if s.tokens != nil {
		revoked, err := s.tokens.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, apierror.Unauthorized("refresh token has been revoked")
		}
	}

	user, err := s.activeUser(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	// Rotate: the presented refresh token cannot be used twice.
	s.revoke(ctx, claims)
	return s.issue(user)
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	claims, err := s.parse(refreshToken, s.cfg.JWTRefreshSecret, tokenTypeRefresh)
	if err != nil {
		// Nothing to revoke.
		return nil
	}
	s.revoke(ctx, claims)
	return nil
}

func (s *authService) Profile(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "user not found")
	}
	resp := mapUser(*user)
	return &resp, nil
}

func (s *authService) Authenticate(ctx context.Context, accessToken string) (*model.User, error) {
	claims, err := s.parse(accessToken, s.cfg.JWTAccessSecret, tokenTypeAccess)
	if err != nil {
		return nil, apierror.Unauthorized("invalid or expired token")
	}
	return s.activeUser(ctx, claims.UserID)
}

// ── helpers ──────────────────────────────────────────────────────────────────

func (s *authService) activeUser(ctx context.Context, rawID string) (*model.User, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, apierror.Unauthorized("malformed token")
	}
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Unauthorized("user not found")
		}
		return nil, err
	}
	if !user.Active {
		return nil, apierror.Unauthorized("account is inactive")
	}
	return user, nil
}

func (s *authService) revoke(ctx context.Context, claims *TokenClaims) {
	if s.tokens == nil || claims.ExpiresAt == nil {
		return
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return
	}
	if err := s.tokens.Revoke(ctx, claims.ID, ttl); err != nil {
		log.Warn().Err(err).Msg("refresh token revocation failed")
	}
}

func (s *authService) accessTTL() time.Duration {
	return time.Duration(s.cfg.JWTAccessMinutes) * time.Minute
}

func (s *authService) refreshTTL() time.Duration {
	return time.Duration(s.cfg.JWTRefreshHours) * time.Hour
}

func (s *authService) issue(user *model.User) (*dto.AuthResponse, error) {
	access, err := generateToken(user, tokenTypeAccess, s.cfg.JWTAccessSecret, s.accessTTL())
	if err != nil {
		return nil, err
	}
	refresh, err := generateToken(user, tokenTypeRefresh, s.cfg.JWTRefreshSecret, s.refreshTTL())
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		User:         mapUser(*user),
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int(s.accessTTL().Seconds()),
	}, nil
}

func (s *authService) parse(tokenStr, secret, typ string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Type != typ {
		return nil, errors.New("wrong token type")
	}
	return claims, nil
}

func generateToken(user *model.User, typ, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		UserID: user.ID.String(),
		Type:   typ,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func mapUser(u model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
	}
}
