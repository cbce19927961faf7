package application

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sngm3741/medibook-services/api/internal/public/domain"
	"go.uber.org/zap"
)

// FormConfig defines dependencies required by the form service.
type FormConfig struct {
	Validator *Validator
	Logger    *zap.Logger
	Clock     func() time.Time
	NewID     func() uuid.UUID
}

type formService struct {
	validator *Validator
	logger    *zap.Logger
	now       func() time.Time
	newID     func() uuid.UUID
}

// NewFormService creates a FormService.
func NewFormService(cfg FormConfig) FormService {
	s := &formService{
		validator: cfg.Validator,
		logger:    cfg.Logger,
		now:       cfg.Clock,
		newID:     cfg.NewID,
	}
	if s.validator == nil {
		s.validator = NewValidator()
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.New
	}
	return s
}

func (s *formService) SubmitContact(_ context.Context, cmd ContactCommand) (*domain.ContactMessage, error) {
	cmd.Name = strings.TrimSpace(cmd.Name)
	cmd.Email = strings.TrimSpace(cmd.Email)
	cmd.Phone = strings.TrimSpace(cmd.Phone)
	cmd.Subject = strings.TrimSpace(cmd.Subject)
	cmd.Message = strings.TrimSpace(cmd.Message)
	if err := s.validator.Struct(cmd); err != nil {
		return nil, err
	}

	msg := &domain.ContactMessage{
		TicketID:    s.newID().String(),
		Name:        cmd.Name,
		Email:       cmd.Email,
		Phone:       cmd.Phone,
		Subject:     cmd.Subject,
		Message:     cmd.Message,
		SubmittedAt: s.now().UTC(),
	}
	s.logger.Info("contact message received",
		zap.String("ticketId", msg.TicketID),
		zap.String("subject", msg.Subject),
	)
	return msg, nil
}

// Register はフォームの検証のみを行う。アカウントは作成しない。
func (s *formService) Register(_ context.Context, cmd RegisterCommand) error {
	cmd.FullName = strings.TrimSpace(cmd.FullName)
	cmd.Email = strings.TrimSpace(cmd.Email)
	cmd.Phone = strings.TrimSpace(cmd.Phone)
	if err := s.validator.Struct(cmd); err != nil {
		return err
	}
	s.logger.Info("registration form accepted")
	return nil
}

// Login はフォームの検証のみを行う。セッションは発行しない。
func (s *formService) Login(_ context.Context, cmd LoginCommand) error {
	cmd.Email = strings.TrimSpace(cmd.Email)
	if err := s.validator.Struct(cmd); err != nil {
		return err
	}
	s.logger.Info("login form accepted")
	return nil
}
