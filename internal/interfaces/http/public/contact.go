package public

import (
	"context"
	"net/http"

	"github.com/sngm3741/medibook-services/api/internal/interfaces/http/common"
	publicapp "github.com/sngm3741/medibook-services/api/internal/public/application"
)

func (h *Handler) contactHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		var cmd publicapp.ContactCommand
		if err := common.DecodeJSON(w, r, &cmd); err != nil {
			h.writeDecodeError(w, err)
			return
		}

		msg, err := h.forms.SubmitContact(ctx, cmd)
		if err != nil {
			h.writeServiceError(w, "contact submission", err)
			return
		}

		common.WriteJSON(h.logger, w, http.StatusAccepted, contactResponse{
			Status:   "received",
			TicketID: msg.TicketID,
		})
	}
}
