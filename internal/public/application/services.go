package application

import (
	"context"
	"errors"

	"github.com/sngm3741/medibook-services/api/internal/public/domain"
)

// ErrDoctorNotFound is returned by commands that reference an unknown doctor.
var ErrDoctorNotFound = errors.New("doctor not found")

// DirectorySource loads the directory snapshot once at start-up.
// DirectorySource はシード/MongoDB いずれかからスナップショットを読み込むポート。
type DirectorySource interface {
	Load(ctx context.Context) (*domain.Directory, error)
}

// DoctorFilter expresses listing criteria. Empty values and "all" mean no filter.
type DoctorFilter struct {
	Search    string
	Specialty string
	Location  string
}

// FilterOptions lists the distinct filter values in first-seen order.
type FilterOptions struct {
	Specialties []string
	Locations   []string
}

// DoctorProfile joins a doctor with its slots and reviews.
type DoctorProfile struct {
	Doctor  domain.Doctor
	Slots   []domain.AvailableSlot
	Reviews []domain.Review
}

// DirectoryQueryService describes read use-cases.
// DirectoryQueryService はディレクトリを参照する画面向けのリーダーモデル。
type DirectoryQueryService interface {
	ListDoctors(filter DoctorFilter) []domain.Doctor
	FilterOptions() FilterOptions
	Doctor(id int) (domain.Doctor, bool)
	Slots(doctorID int) []domain.AvailableSlot
	Reviews(doctorID int) []domain.Review
	Profile(id int) (DoctorProfile, bool)
}

// BookingService accepts appointment requests. Nothing is persisted.
type BookingService interface {
	Book(ctx context.Context, cmd BookAppointmentCommand) (*domain.Confirmation, error)
}

// FormService handles the contact and auth forms. Nothing is persisted.
type FormService interface {
	SubmitContact(ctx context.Context, cmd ContactCommand) (*domain.ContactMessage, error)
	Register(ctx context.Context, cmd RegisterCommand) error
	Login(ctx context.Context, cmd LoginCommand) error
}

// BookAppointmentCommand captures the booking form.
type BookAppointmentCommand struct {
	DoctorID string `json:"doctorId" validate:"required"`
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	Time     string `json:"time" validate:"required,timelabel"`
	Name     string `json:"name" validate:"required,max=120"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Phone    string `json:"phone" validate:"required,max=32"`
	Message  string `json:"message" validate:"max=2000"`
}

// ContactCommand captures the contact form.
type ContactCommand struct {
	Name    string `json:"name" validate:"required,max=120"`
	Email   string `json:"email" validate:"required,email,max=254"`
	Phone   string `json:"phone" validate:"required,max=32"`
	Subject string `json:"subject" validate:"required,subject"`
	Message string `json:"message" validate:"required,max=4000"`
}

// RegisterCommand captures the registration form.
type RegisterCommand struct {
	FullName        string `json:"fullName" validate:"required,max=120"`
	Email           string `json:"email" validate:"required,email,max=254"`
	Phone           string `json:"phone" validate:"required,phone"`
	Password        string `json:"password" validate:"required,min=6,max=128"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	Terms           bool   `json:"terms" validate:"required"`
}

// LoginCommand captures the login form.
type LoginCommand struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=6,max=128"`
}
