package public

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	publicapp "github.com/sngm3741/medibook-services/api/internal/public/application"
	"go.uber.org/zap"
)

// Handler wires public HTTP endpoints to application services.
type Handler struct {
	logger    *zap.Logger
	directory publicapp.DirectoryQueryService
	bookings  publicapp.BookingService
	forms     publicapp.FormService
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger    *zap.Logger
	Directory publicapp.DirectoryQueryService
	Bookings  publicapp.BookingService
	Forms     publicapp.FormService
}

// NewHandler constructs a public HTTP handler set.
func NewHandler(cfg Config) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		logger:    logger,
		directory: cfg.Directory,
		bookings:  cfg.Bookings,
		forms:     cfg.Forms,
	}
}

// Register mounts all public routes onto the router.
// formLimiter はフォーム送信 (POST) にのみ適用する。
func (h *Handler) Register(r chi.Router, formLimiter func(http.Handler) http.Handler) {
	if formLimiter == nil {
		formLimiter = func(next http.Handler) http.Handler { return next }
	}

	r.Get("/doctors", h.doctorListHandler())
	r.Get("/doctors/filters", h.doctorFiltersHandler())
	r.Get("/doctors/{id}", h.doctorDetailHandler())
	r.Get("/doctors/{id}/profile", h.doctorProfileHandler())
	r.Get("/doctors/{id}/slots", h.doctorSlotsHandler())
	r.Get("/doctors/{id}/reviews", h.doctorReviewsHandler())

	r.Group(func(r chi.Router) {
		r.Use(formLimiter)
		r.Post("/appointments", h.appointmentCreateHandler())
		r.Post("/contact", h.contactHandler())
		r.Post("/auth/register", h.registerHandler())
		r.Post("/auth/login", h.loginHandler())
	})
}
