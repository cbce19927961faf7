package public

import (
	"errors"
	"net/http"

	"github.com/sngm3741/medibook-services/api/internal/interfaces/http/common"
	publicapp "github.com/sngm3741/medibook-services/api/internal/public/application"
	publicdomain "github.com/sngm3741/medibook-services/api/internal/public/domain"
	"go.uber.org/zap"
)

const (
	badgeAvailable = "Available"
	badgeBusy      = "Busy"
)

// buildDoctorResponse は Doctor ドメインモデルを表示用 DTO に変換する。
func buildDoctorResponse(doctor publicdomain.Doctor) doctorResponse {
	badge := badgeBusy
	if doctor.AvailableToday() {
		badge = badgeAvailable
	}
	return doctorResponse{
		ID:             doctor.ID,
		Name:           doctor.Name,
		Specialty:      doctor.Specialty,
		Hospital:       doctor.Hospital,
		Experience:     doctor.Experience,
		Rating:         doctor.Rating,
		ReviewCount:    doctor.ReviewCount,
		Location:       doctor.Location,
		Image:          doctor.Image,
		Fees:           doctor.Fees,
		About:          doctor.About,
		Education:      nonNil(doctor.Education),
		Certifications: nonNil(doctor.Certifications),
		Languages:      nonNil(doctor.Languages),
		Availability:   doctor.Availability,
		AvailableToday: doctor.AvailableToday(),
		Badge:          badge,
	}
}

func buildDoctorResponses(doctors []publicdomain.Doctor) []doctorResponse {
	items := make([]doctorResponse, 0, len(doctors))
	for _, doctor := range doctors {
		items = append(items, buildDoctorResponse(doctor))
	}
	return items
}

func buildSlotResponses(slots []publicdomain.AvailableSlot) []slotResponse {
	items := make([]slotResponse, 0, len(slots))
	for _, slot := range slots {
		items = append(items, slotResponse{
			DoctorID: slot.DoctorID,
			Date:     slot.Date,
			Times:    nonNil(slot.Times),
		})
	}
	return items
}

func buildReviewResponses(reviews []publicdomain.Review) []reviewResponse {
	items := make([]reviewResponse, 0, len(reviews))
	for _, review := range reviews {
		items = append(items, reviewResponse{
			DoctorID: review.DoctorID,
			Patient:  review.Patient,
			Rating:   review.Rating,
			Comment:  review.Comment,
			Date:     review.Date,
		})
	}
	return items
}

func buildConfirmationResponse(c publicdomain.Confirmation) confirmationResponse {
	return confirmationResponse{
		Reference:          c.Reference,
		ConfirmationNumber: c.ConfirmationNumber,
		DoctorName:         c.DoctorName,
		Specialty:          c.Specialty,
		Hospital:           c.Hospital,
		Date:               c.Date,
		Time:               c.Time,
		PatientName:        c.PatientName,
		Email:              c.Email,
		Phone:              c.Phone,
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return append([]string{}, values...)
}

// writeServiceError はアプリケーション層のエラーを HTTP ステータスへ対応付ける。
func (h *Handler) writeServiceError(w http.ResponseWriter, op string, err error) {
	var verr *publicapp.ValidationError
	switch {
	case errors.As(err, &verr):
		common.WriteFieldErrors(h.logger, w, verr.Fields)
	case errors.Is(err, publicapp.ErrDoctorNotFound):
		common.WriteError(h.logger, w, http.StatusNotFound, "doctor not found")
	default:
		h.logger.Error(op+" failed", zap.Error(err))
		common.WriteError(h.logger, w, http.StatusInternalServerError, "internal server error")
	}
}

func (h *Handler) writeDecodeError(w http.ResponseWriter, err error) {
	if errors.Is(err, common.ErrEmptyBody) {
		common.WriteError(h.logger, w, http.StatusBadRequest, "request body is required")
		return
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		common.WriteError(h.logger, w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}
	common.WriteError(h.logger, w, http.StatusBadRequest, "invalid request body")
}
