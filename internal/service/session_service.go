package service

import (
	"context"
	"errors"
	"fmt"

	"hospital-management/internal/domain/entity"
	"hospital-management/pkg/jwt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidSession = errors.New("invalid or expired session")
	ErrSessionRevoked = errors.New("session has been revoked")
)

const sessionKeyPrefix = "session:"

// SessionService issues signed session tokens and keeps a whitelist of the
// live ones in Redis, so a logout takes effect before the token expires.
type SessionService interface {
	Create(ctx context.Context, user *entity.User) (string, error)
	Validate(ctx context.Context, token string) (*jwt.Claims, error)
	Revoke(ctx context.Context, claims *jwt.Claims) error
}

type sessionService struct {
	log         *logrus.Logger
	jwtService  *jwt.JWTService
	redisClient *redis.Client
}

func NewSessionService(log *logrus.Logger, jwtService *jwt.JWTService, redisClient *redis.Client) SessionService {
	return &sessionService{
		log:         log,
		jwtService:  jwtService,
		redisClient: redisClient,
	}
}

func sessionKey(userID uint, tokenID string) string {
	return fmt.Sprintf("%s%d:%s", sessionKeyPrefix, userID, tokenID)
}

func (s *sessionService) Create(ctx context.Context, user *entity.User) (string, error) {
	token, tokenID, err := s.jwtService.GenerateSessionToken(jwt.Subject{
		UserID:   user.ID,
		Username: user.Username,
		RoleID:   user.RoleID,
		IsStaff:  user.IsStaff,
	})
	if err != nil {
		s.log.Warnf("Failed to generate session token: %+v", err)
		return "", err
	}

	if err := s.redisClient.Set(ctx, sessionKey(user.ID, tokenID), "valid", s.jwtService.GetExpiry()).Err(); err != nil {
		s.log.Warnf("Failed to store session in Redis: %+v", err)
		return "", err
	}

	return token, nil
}

func (s *sessionService) Validate(ctx context.Context, token string) (*jwt.Claims, error) {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return nil, ErrInvalidSession
	}

	exists, err := s.redisClient.Exists(ctx, sessionKey(claims.UserID, claims.TokenID)).Result()
	if err != nil {
		s.log.Warnf("Failed to check session in Redis: %+v", err)
		return nil, err
	}
	if exists == 0 {
		return nil, ErrSessionRevoked
	}

	return claims, nil
}

func (s *sessionService) Revoke(ctx context.Context, claims *jwt.Claims) error {
	if err := s.redisClient.Del(ctx, sessionKey(claims.UserID, claims.TokenID)).Err(); err != nil {
		s.log.Warnf("Failed to delete session: %+v", err)
		return err
	}
	return nil
}
