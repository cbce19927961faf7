package public

import (
	"context"
	"net/http"

	"github.com/sngm3741/medibook-services/api/internal/interfaces/http/common"
	publicapp "github.com/sngm3741/medibook-services/api/internal/public/application"
)

// appointmentCreateHandler は予約フォームを受け付け、確認情報を 201 で返す。
// 予約は保存されない。
func (h *Handler) appointmentCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		var req bookingRequest
		if err := common.DecodeJSON(w, r, &req); err != nil {
			h.writeDecodeError(w, err)
			return
		}

		confirmation, err := h.bookings.Book(ctx, publicapp.BookAppointmentCommand{
			DoctorID: string(req.DoctorID),
			Date:     req.Date,
			Time:     req.Time,
			Name:     req.Name,
			Email:    req.Email,
			Phone:    req.Phone,
			Message:  req.Message,
		})
		if err != nil {
			h.writeServiceError(w, "appointment booking", err)
			return
		}

		common.WriteJSON(h.logger, w, http.StatusCreated, buildConfirmationResponse(*confirmation))
	}
}
