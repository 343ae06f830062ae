package service

import (
	"context"
	"errors"
	"time"

	"storefront-service/internal/backend"
	"storefront-service/internal/models"
	"storefront-service/internal/notify"
	"storefront-service/internal/session"
	"storefront-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrInvalidInput marks a local pre-flight validation failure; no backend
// call is made for these.
var ErrInvalidInput = errors.New("invalid input")

const minCredentialLen = 6

// AuthService drives login, registration and logout against the backend
// and owns the session lifecycle in the session store.
type AuthService struct {
	backend  AuthBackend
	sessions session.Store
	events   LoginEvents
	notifier notify.Notifier
	logger   *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(backend AuthBackend, sessions session.Store, events LoginEvents, notifier notify.Notifier) *AuthService {
	return &AuthService{
		backend:  backend,
		sessions: sessions,
		events:   events,
		notifier: notifier,
		logger:   util.GetLogger(),
	}
}

// Login authenticates and persists the returned session
func (s *AuthService) Login(ctx context.Context, username, password string) error {
	ctx, span := util.StartSpan(ctx, "AuthService.Login")
	defer span.End()

	if username == "" {
		s.notifier.Notify(notify.LevelError, notify.MsgUsernameRequired)
		return ErrInvalidInput
	}
	if password == "" {
		s.notifier.Notify(notify.LevelError, notify.MsgPasswordRequired)
		return ErrInvalidInput
	}

	sess, err := s.backend.Login(ctx, username, password)
	if err != nil {
		if be, ok := backend.AsBusiness(err); ok {
			s.notifier.Notify(notify.LevelWarning, be.Message)
			return ErrBackendRejected
		}
		s.logger.Error("Login failed", zap.String("username", username), zap.Error(err))
		s.notifier.Notify(notify.LevelError, notify.MsgBackendUnreachable)
		return ErrBackendUnreached
	}

	if err := s.sessions.Save(ctx, sess); err != nil {
		return err
	}

	s.logger.Info("User logged in", zap.String("username", sess.Username))
	s.notifier.Notify(notify.LevelSuccess, notify.MsgLoggedIn)

	if s.events != nil {
		event := &models.UserLoginEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypeUserLogin,
				Timestamp: time.Now(),
			},
			Username: sess.Username,
		}
		if err := s.events.PublishUserLogin(ctx, event); err != nil {
			s.logger.Error("Failed to publish UserLogin event", zap.Error(err))
		}
	}

	return nil
}

// Register creates a new account. The confirmation password is checked
// locally; the backend never sees it.
func (s *AuthService) Register(ctx context.Context, username, password, confirmPassword string) error {
	ctx, span := util.StartSpan(ctx, "AuthService.Register")
	defer span.End()

	if err := s.validateRegistration(username, password, confirmPassword); err != nil {
		return err
	}

	if err := s.backend.Register(ctx, username, password); err != nil {
		if be, ok := backend.AsBusiness(err); ok {
			s.notifier.Notify(notify.LevelWarning, be.Message)
			return ErrBackendRejected
		}
		s.logger.Error("Registration failed", zap.String("username", username), zap.Error(err))
		s.notifier.Notify(notify.LevelError, notify.MsgBackendUnreachable)
		return ErrBackendUnreached
	}

	s.notifier.Notify(notify.LevelSuccess, notify.MsgRegistered)
	return nil
}

// Logout clears the persisted session
func (s *AuthService) Logout(ctx context.Context) error {
	ctx, span := util.StartSpan(ctx, "AuthService.Logout")
	defer span.End()
	return s.sessions.Clear(ctx)
}

func (s *AuthService) validateRegistration(username, password, confirmPassword string) error {
	switch {
	case username == "":
		s.notifier.Notify(notify.LevelError, notify.MsgUsernameRequired)
	case len(username) < minCredentialLen:
		s.notifier.Notify(notify.LevelError, notify.MsgUsernameTooShort)
	case password == "":
		s.notifier.Notify(notify.LevelError, notify.MsgPasswordRequired)
	case len(password) < minCredentialLen:
		s.notifier.Notify(notify.LevelError, notify.MsgPasswordTooShort)
	case password != confirmPassword:
		s.notifier.Notify(notify.LevelError, notify.MsgPasswordsMismatch)
	default:
		return nil
	}
	return ErrInvalidInput
}
