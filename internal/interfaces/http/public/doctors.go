package public

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sngm3741/medibook-services/api/internal/interfaces/http/common"
	publicapp "github.com/sngm3741/medibook-services/api/internal/public/application"
	publicdomain "github.com/sngm3741/medibook-services/api/internal/public/domain"
)

// doctorListHandler は検索・診療科・地域で絞り込んだ医師一覧を返す。
// "all" は診療科・地域の選択肢でのみ絞り込みなしを意味し、検索語では通常の文字列として扱う。
func (h *Handler) doctorListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		filter := publicapp.DoctorFilter{
			Search:    strings.TrimSpace(query.Get("search")),
			Specialty: common.NormalizeFilter(query.Get("specialty")),
			Location:  common.NormalizeFilter(query.Get("location")),
		}

		doctors := h.directory.ListDoctors(filter)
		common.WriteJSON(h.logger, w, http.StatusOK, doctorListResponse{
			Items: buildDoctorResponses(doctors),
			Total: len(doctors),
		})
	}
}

func (h *Handler) doctorFiltersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		opts := h.directory.FilterOptions()
		common.WriteJSON(h.logger, w, http.StatusOK, filterOptionsResponse{
			Specialties: common.WithAllOption(opts.Specialties),
			Locations:   common.WithAllOption(opts.Locations),
		})
	}
}

// doctorDetailHandler は ID に一致する医師を返す。数値でない ID も存在しない医師と同じ 404。
func (h *Handler) doctorDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := doctorIDParam(r)
		if !ok {
			common.WriteError(h.logger, w, http.StatusNotFound, "doctor not found")
			return
		}
		doctor, ok := h.directory.Doctor(id)
		if !ok {
			common.WriteError(h.logger, w, http.StatusNotFound, "doctor not found")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, buildDoctorResponse(doctor))
	}
}

func (h *Handler) doctorProfileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := doctorIDParam(r)
		if !ok {
			common.WriteError(h.logger, w, http.StatusNotFound, "doctor not found")
			return
		}
		profile, ok := h.directory.Profile(id)
		if !ok {
			common.WriteError(h.logger, w, http.StatusNotFound, "doctor not found")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, profileResponse{
			Doctor:  buildDoctorResponse(profile.Doctor),
			Slots:   buildSlotResponses(profile.Slots),
			Reviews: buildReviewResponses(profile.Reviews),
		})
	}
}

// doctorSlotsHandler は空き枠を返す。該当なしは 404 ではなく空配列。
func (h *Handler) doctorSlotsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var slots []publicdomain.AvailableSlot
		if id, ok := doctorIDParam(r); ok {
			slots = h.directory.Slots(id)
		}
		common.WriteJSON(h.logger, w, http.StatusOK, buildSlotResponses(slots))
	}
}

func (h *Handler) doctorReviewsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var reviews []publicdomain.Review
		if id, ok := doctorIDParam(r); ok {
			reviews = h.directory.Reviews(id)
		}
		common.WriteJSON(h.logger, w, http.StatusOK, buildReviewResponses(reviews))
	}
}

func doctorIDParam(r *http.Request) (int, bool) {
	return publicdomain.ParseDoctorID(chi.URLParam(r, "id"))
}
