package public

import (
	"context"
	"net/http"

	"github.com/sngm3741/medibook-services/api/internal/interfaces/http/common"
	publicapp "github.com/sngm3741/medibook-services/api/internal/public/application"
)

// registerHandler は登録フォームの検証結果だけを返す。アカウントは作られない。
func (h *Handler) registerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		var cmd publicapp.RegisterCommand
		if err := common.DecodeJSON(w, r, &cmd); err != nil {
			h.writeDecodeError(w, err)
			return
		}
		if err := h.forms.Register(ctx, cmd); err != nil {
			h.writeServiceError(w, "registration", err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusAccepted, statusResponse{Status: "accepted"})
	}
}

// loginHandler はログインフォームの検証結果だけを返す。セッションは発行しない。
func (h *Handler) loginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		var cmd publicapp.LoginCommand
		if err := common.DecodeJSON(w, r, &cmd); err != nil {
			h.writeDecodeError(w, err)
			return
		}
		if err := h.forms.Login(ctx, cmd); err != nil {
			h.writeServiceError(w, "login", err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusAccepted, statusResponse{Status: "accepted"})
	}
}
