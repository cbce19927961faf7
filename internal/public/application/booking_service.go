package application

import (
	"context"
	"encoding/binary"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sngm3741/medibook-services/api/internal/public/domain"
	"go.uber.org/zap"
)

// BookingConfig defines dependencies required by the booking service.
type BookingConfig struct {
	Directory *domain.Directory
	Validator *Validator
	Logger    *zap.Logger
	Location  *time.Location
	Clock     func() time.Time
	NewID     func() uuid.UUID
}

// bookingService implements BookingService.
type bookingService struct {
	directory *domain.Directory
	validator *Validator
	logger    *zap.Logger
	location  *time.Location
	now       func() time.Time
	newID     func() uuid.UUID
}

// NewBookingService creates a BookingService. Unset optional fields fall back to defaults.
func NewBookingService(cfg BookingConfig) BookingService {
	s := &bookingService{
		directory: cfg.Directory,
		validator: cfg.Validator,
		logger:    cfg.Logger,
		location:  cfg.Location,
		now:       cfg.Clock,
		newID:     cfg.NewID,
	}
	if s.validator == nil {
		s.validator = NewValidator()
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.location == nil {
		s.location = time.UTC
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.New
	}
	return s
}

// Book は予約フォームを検証し、確認情報を返す。予約内容は保存せずログに残すのみ。
func (s *bookingService) Book(_ context.Context, cmd BookAppointmentCommand) (*domain.Confirmation, error) {
	cmd = normalizeBooking(cmd)
	if err := s.validator.Struct(cmd); err != nil {
		return nil, err
	}

	doctorID, ok := domain.ParseDoctorID(cmd.DoctorID)
	if !ok {
		return nil, ErrDoctorNotFound
	}
	doctor, ok := s.directory.FindDoctorByID(doctorID)
	if !ok {
		return nil, ErrDoctorNotFound
	}

	now := s.now().In(s.location)
	date, err := time.ParseInLocation("2006-01-02", cmd.Date, s.location)
	if err != nil {
		return nil, fieldError("date", "Date must be in YYYY-MM-DD format")
	}
	// 予約できるのは翌日以降。当日は受け付けない。
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.location)
	if !date.After(today) {
		return nil, fieldError("date", "Please select a date after today")
	}

	ref := s.newID()
	appointment := domain.Appointment{
		Reference:   ref.String(),
		DoctorID:    doctor.ID,
		Date:        date,
		Time:        cmd.Time,
		PatientName: cmd.Name,
		Email:       cmd.Email,
		Phone:       cmd.Phone,
		Message:     cmd.Message,
		RequestedAt: now,
	}

	s.logger.Info("appointment accepted",
		zap.String("reference", appointment.Reference),
		zap.Int("doctorId", appointment.DoctorID),
		zap.String("date", cmd.Date),
		zap.String("time", appointment.Time),
	)

	return &domain.Confirmation{
		Reference:          appointment.Reference,
		ConfirmationNumber: confirmationNumber(now, ref),
		DoctorName:         doctor.Name,
		Specialty:          doctor.Specialty,
		Hospital:           doctor.Hospital,
		Date:               appointment.Date.Format("Monday, January 2, 2006"),
		Time:               appointment.Time,
		PatientName:        appointment.PatientName,
		Email:              appointment.Email,
		Phone:              appointment.Phone,
	}, nil
}

func normalizeBooking(cmd BookAppointmentCommand) BookAppointmentCommand {
	cmd.DoctorID = strings.TrimSpace(cmd.DoctorID)
	cmd.Date = strings.TrimSpace(cmd.Date)
	cmd.Time = strings.TrimSpace(cmd.Time)
	cmd.Name = strings.TrimSpace(cmd.Name)
	cmd.Email = strings.TrimSpace(cmd.Email)
	cmd.Phone = strings.TrimSpace(cmd.Phone)
	cmd.Message = strings.TrimSpace(cmd.Message)
	return cmd
}

// confirmationNumber は APT-<年>-<6 桁> 形式の確認番号を参照 ID から導出する。
func confirmationNumber(at time.Time, ref uuid.UUID) string {
	return fmt.Sprintf("APT-%d-%06d", at.Year(), binary.BigEndian.Uint32(ref[:4])%1000000)
}
