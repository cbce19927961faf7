package public

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sngm3741/medibook-services/api/internal/infrastructure/seed"
	"github.com/sngm3741/medibook-services/api/internal/interfaces/http/common"
	publicapp "github.com/sngm3741/medibook-services/api/internal/public/application"
	"github.com/sngm3741/medibook-services/api/internal/public/domain"
)

func seedDirectory(t *testing.T) *domain.Directory {
	t.Helper()
	dir, err := seed.NewSource().Load(context.Background())
	require.NoError(t, err)
	return dir
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	dir := seedDirectory(t)
	clock := func() time.Time { return time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC) }
	id := func() uuid.UUID { return uuid.MustParse("0001e240-0000-4000-8000-000000000000") }

	h := NewHandler(Config{
		Directory: publicapp.NewDirectoryQueryService(dir),
		Bookings: publicapp.NewBookingService(publicapp.BookingConfig{
			Directory: dir,
			Clock:     clock,
			NewID:     id,
		}),
		Forms: publicapp.NewFormService(publicapp.FormConfig{Clock: clock, NewID: id}),
	})
	r := chi.NewRouter()
	h.Register(r, nil)
	return r
}

func do(t *testing.T, router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestDoctorList(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name   string
		target string
		want   []int
	}{
		{name: "all doctors", target: "/doctors", want: []int{1, 2, 3, 4, 5, 6}},
		{name: "all sentinel", target: "/doctors?specialty=all&location=all", want: []int{1, 2, 3, 4, 5, 6}},
		{name: "specialty", target: "/doctors?specialty=Cardiology", want: []int{1, 6}},
		{name: "location", target: "/doctors?location=Chicago,%20IL", want: []int{3, 6}},
		{name: "search", target: "/doctors?search=neuro", want: []int{5}},
		{name: "no match", target: "/doctors?search=dentist", want: []int{}},
		{name: "search all is literal", target: "/doctors?search=all", want: []int{}},
		{name: "search ALL is literal", target: "/doctors?search=ALL&specialty=all", want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, router, http.MethodGet, tt.target, "")
			require.Equal(t, http.StatusOK, rec.Code)

			body := decode[doctorListResponse](t, rec)
			ids := make([]int, 0, len(body.Items))
			for _, item := range body.Items {
				ids = append(ids, item.ID)
			}
			assert.Equal(t, tt.want, ids)
			assert.Equal(t, len(tt.want), body.Total)
		})
	}
}

func TestDoctorListEmptyItemsIsArray(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/doctors?search=dentist", "")
	assert.JSONEq(t, `{"items":[],"total":0}`, rec.Body.String())
}

func TestDoctorFilters(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/doctors/filters", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[filterOptionsResponse](t, rec)
	assert.Equal(t, []string{"all", "Cardiology", "Dermatology", "Pediatrics", "Orthopedics", "Neurology"}, body.Specialties)
	assert.Equal(t, []string{"all", "New York, NY", "Los Angeles, CA", "Chicago, IL"}, body.Locations)
}

func TestDoctorDetail(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/doctors/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	doctor := decode[doctorResponse](t, rec)
	assert.Equal(t, "Dr. Sarah Johnson", doctor.Name)
	assert.True(t, doctor.AvailableToday)
	assert.Equal(t, "Available", doctor.Badge)

	rec = do(t, router, http.MethodGet, "/doctors/2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Busy", decode[doctorResponse](t, rec).Badge)

	for _, id := range []string{"999", "0", "abc", "NaN", "1.5"} {
		rec = do(t, router, http.MethodGet, "/doctors/"+id, "")
		assert.Equal(t, http.StatusNotFound, rec.Code, id)
		assert.Equal(t, "doctor not found", decode[common.ErrorResponse](t, rec).Error)
	}
}

func TestDoctorProfile(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/doctors/1/profile", "")
	require.Equal(t, http.StatusOK, rec.Code)
	profile := decode[profileResponse](t, rec)
	assert.Equal(t, 1, profile.Doctor.ID)
	assert.Len(t, profile.Slots, 2)
	assert.Len(t, profile.Reviews, 3)

	rec = do(t, router, http.MethodGet, "/doctors/6/profile", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"slots":[]`)
	assert.Contains(t, rec.Body.String(), `"reviews":[]`)

	rec = do(t, router, http.MethodGet, "/doctors/999/profile", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDoctorSlotsAndReviews(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/doctors/1/slots", "")
	require.Equal(t, http.StatusOK, rec.Code)
	slots := decode[[]slotResponse](t, rec)
	require.Len(t, slots, 2)
	assert.Equal(t, "2024-06-13", slots[0].Date)
	assert.Equal(t, "2024-06-14", slots[1].Date)

	for _, target := range []string{"/doctors/999/slots", "/doctors/abc/slots", "/doctors/6/slots", "/doctors/6/reviews", "/doctors/abc/reviews"} {
		rec = do(t, router, http.MethodGet, target, "")
		assert.Equal(t, http.StatusOK, rec.Code, target)
		assert.JSONEq(t, `[]`, rec.Body.String(), target)
	}

	rec = do(t, router, http.MethodGet, "/doctors/1/reviews", "")
	assert.Len(t, decode[[]reviewResponse](t, rec), 3)
}

func TestAppointmentCreate(t *testing.T) {
	router := newTestRouter(t)

	body := `{"doctorId":1,"date":"2024-06-13","time":"09:30 AM","name":"John Doe","email":"john@example.com","phone":"+1 555 123 4567"}`
	rec := do(t, router, http.MethodPost, "/appointments", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	confirmation := decode[confirmationResponse](t, rec)
	assert.Equal(t, "APT-2024-123456", confirmation.ConfirmationNumber)
	assert.Equal(t, "Dr. Sarah Johnson", confirmation.DoctorName)
	assert.Equal(t, "Thursday, June 13, 2024", confirmation.Date)

	// 文字列の ID も受け付ける
	body = strings.Replace(body, `"doctorId":1`, `"doctorId":"3"`, 1)
	rec = do(t, router, http.MethodPost, "/appointments", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Dr. Emily Davis", decode[confirmationResponse](t, rec).DoctorName)
}

func TestAppointmentCreateErrors(t *testing.T) {
	router := newTestRouter(t)
	valid := `{"doctorId":"%s","date":"2024-06-13","time":"09:30 AM","name":"John Doe","email":"john@example.com","phone":"5551234567"}`

	tests := []struct {
		name   string
		body   string
		status int
		field  string
	}{
		{name: "unknown doctor", body: strings.Replace(valid, "%s", "999", 1), status: http.StatusNotFound},
		{name: "non-numeric doctor", body: strings.Replace(valid, "%s", "abc", 1), status: http.StatusNotFound},
		{name: "missing doctor", body: strings.Replace(valid, "%s", "", 1), status: http.StatusBadRequest, field: "doctorId"},
		{name: "past date", body: strings.Replace(strings.Replace(valid, "%s", "1", 1), "2024-06-13", "2024-06-01", 1), status: http.StatusBadRequest, field: "date"},
		{name: "bad email", body: strings.Replace(strings.Replace(valid, "%s", "1", 1), "john@example.com", "john", 1), status: http.StatusBadRequest, field: "email"},
		{name: "unknown field", body: `{"doctorId":"1","admin":true}`, status: http.StatusBadRequest},
		{name: "malformed", body: `{"doctorId":`, status: http.StatusBadRequest},
		{name: "boolean id", body: `{"doctorId":true}`, status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, router, http.MethodPost, "/appointments", tt.body)
			require.Equal(t, tt.status, rec.Code, rec.Body.String())
			if tt.field != "" {
				assert.Contains(t, decode[common.ErrorResponse](t, rec).Fields, tt.field)
			}
		})
	}
}

func TestAppointmentCreateEmptyBody(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodPost, "/appointments", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "request body is required", decode[common.ErrorResponse](t, rec).Error)
}

func TestContact(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/contact", `{"name":"Jane","email":"jane@example.com","phone":"5551234567","subject":"general","message":"Hello"}`)
	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())
	body := decode[contactResponse](t, rec)
	assert.Equal(t, "received", body.Status)
	assert.Equal(t, "0001e240-0000-4000-8000-000000000000", body.TicketID)

	rec = do(t, router, http.MethodPost, "/contact", `{"name":"Jane","email":"jane@example.com","phone":"5551234567","subject":"spam","message":"Hello"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Please select a valid subject", decode[common.ErrorResponse](t, rec).Fields["subject"])
}

func TestAuthForms(t *testing.T) {
	router := newTestRouter(t)

	register := `{"fullName":"John Doe","email":"john@example.com","phone":"+15551234567","password":"secret1","confirmPassword":"secret1","terms":true}`
	rec := do(t, router, http.MethodPost, "/auth/register", register)
	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"status":"accepted"}`, rec.Body.String())

	mismatch := strings.Replace(register, `"confirmPassword":"secret1"`, `"confirmPassword":"secret2"`, 1)
	rec = do(t, router, http.MethodPost, "/auth/register", mismatch)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Passwords do not match", decode[common.ErrorResponse](t, rec).Fields["confirmPassword"])

	rec = do(t, router, http.MethodPost, "/auth/login", `{"email":"john@example.com","password":"secret1"}`)
	assert.Equal(t, http.StatusAccepted, rec.Code)

	rec = do(t, router, http.MethodPost, "/auth/login", `{"email":"john@example.com","password":"123"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFormLimiterOnlyWrapsPostRoutes(t *testing.T) {
	dir := seedDirectory(t)
	h := NewHandler(Config{
		Directory: publicapp.NewDirectoryQueryService(dir),
		Bookings:  publicapp.NewBookingService(publicapp.BookingConfig{Directory: dir}),
		Forms:     publicapp.NewFormService(publicapp.FormConfig{}),
	})
	blocked := func(http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})
	}
	r := chi.NewRouter()
	h.Register(r, blocked)

	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/doctors", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, do(t, r, http.MethodPost, "/contact", `{}`).Code)
}
