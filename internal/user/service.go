package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/saulo-duarte/taskflow/internal/auth"
	"github.com/saulo-duarte/taskflow/internal/config"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrInvalidAuthCode  = errors.New("invalid authorization code")
	ErrEncryptionFailed = errors.New("failed to encrypt google token")
)

const DefaultRole = "user"

type UserService interface {
	AuthCodeURL(state string) string
	LoginWithCode(ctx context.Context, code string) (*LoginResponse, error)
	GetCurrent(ctx context.Context) (*UserResponse, error)
}

type userService struct {
	repo     UserRepository
	provider GoogleProvider
}

func NewService(repo UserRepository, provider GoogleProvider) UserService {
	return &userService{repo: repo, provider: provider}
}

func (s *userService) AuthCodeURL(state string) string {
	return s.provider.AuthCodeURL(state)
}

func (s *userService) LoginWithCode(ctx context.Context, code string) (*LoginResponse, error) {
	log := config.WithContext(ctx)

	if code == "" {
		return nil, ErrInvalidAuthCode
	}

	token, err := s.provider.Exchange(ctx, code)
	if err != nil {
		log.WithError(err).Warn("Failed to exchange Google authorization code")
		return nil, fmt.Errorf("%w: %v", ErrInvalidAuthCode, err)
	}

	profile, err := s.provider.Profile(ctx, token)
	if err != nil {
		log.WithError(err).Error("Failed to fetch Google profile")
		return nil, err
	}

	u, err := s.upsert(ctx, log, profile, token)
	if err != nil {
		return nil, err
	}

	jwtToken, err := auth.GenerateJWTWithName(u.ID.String(), u.Role, u.Name, auth.SessionDuration)
	if err != nil {
		log.WithError(err).Error("Failed to sign session token")
		return nil, err
	}

	log.WithField("user_id", u.ID).Info("User logged in with Google")
	return &LoginResponse{Token: jwtToken, User: ToResponse(u)}, nil
}

func (s *userService) upsert(ctx context.Context, log *logrus.Entry, p *GoogleProfile, token *oauth2.Token) (*User, error) {
	u, err := s.repo.GetByGoogleID(ctx, p.ID)
	if err != nil {
		log.WithError(err).Error("Failed to look up user by Google ID")
		return nil, err
	}

	isNew := u == nil
	if isNew {
		u = &User{ID: uuid.New(), GoogleID: p.ID, Role: DefaultRole}
	}
	u.Email = p.Email
	u.Name = p.Name
	u.Picture = p.Picture

	access, err := config.Encrypt(token.AccessToken)
	if err != nil {
		log.WithError(err).Error("Failed to encrypt access token")
		return nil, ErrEncryptionFailed
	}
	u.EncryptedGoogleAccessToken = access

	// Google only sends a refresh token on first consent; keep the stored one otherwise.
	if token.RefreshToken != "" {
		refresh, err := config.Encrypt(token.RefreshToken)
		if err != nil {
			log.WithError(err).Error("Failed to encrypt refresh token")
			return nil, ErrEncryptionFailed
		}
		u.EncryptedGoogleRefreshToken = refresh
	}

	if isNew {
		err = s.repo.Create(ctx, u)
	} else {
		err = s.repo.Update(ctx, u)
	}
	if err != nil {
		log.WithError(err).WithFields(logrus.Fields{
			"google_id": p.ID,
			"new_user":  isNew,
		}).Error("Failed to persist user")
		return nil, err
	}
	return u, nil
}

func (s *userService) GetCurrent(ctx context.Context) (*UserResponse, error) {
	log := config.WithContext(ctx)

	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		log.WithError(err).Warn("Malformed user id in claims")
		return nil, ErrUserNotFound
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Error("Failed to load current user")
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	resp := ToResponse(u)
	return &resp, nil
}
