package public

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type doctorResponse struct {
	ID             int      `json:"id"`
	Name           string   `json:"name"`
	Specialty      string   `json:"specialty"`
	Hospital       string   `json:"hospital"`
	Experience     string   `json:"experience"`
	Rating         float64  `json:"rating"`
	ReviewCount    int      `json:"reviewCount"`
	Location       string   `json:"location"`
	Image          string   `json:"image"`
	Fees           string   `json:"fees"`
	About          string   `json:"about"`
	Education      []string `json:"education"`
	Certifications []string `json:"certifications"`
	Languages      []string `json:"languages"`
	Availability   string   `json:"availability"`
	AvailableToday bool     `json:"availableToday"`
	Badge          string   `json:"badge"`
}

type doctorListResponse struct {
	Items []doctorResponse `json:"items"`
	Total int              `json:"total"`
}

type filterOptionsResponse struct {
	Specialties []string `json:"specialties"`
	Locations   []string `json:"locations"`
}

type slotResponse struct {
	DoctorID int      `json:"doctorId"`
	Date     string   `json:"date"`
	Times    []string `json:"times"`
}

type reviewResponse struct {
	DoctorID int    `json:"doctorId"`
	Patient  string `json:"patient"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
	Date     string `json:"date"`
}

type profileResponse struct {
	Doctor  doctorResponse   `json:"doctor"`
	Slots   []slotResponse   `json:"slots"`
	Reviews []reviewResponse `json:"reviews"`
}

type bookingRequest struct {
	DoctorID flexibleID `json:"doctorId"`
	Date     string     `json:"date"`
	Time     string     `json:"time"`
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Phone    string     `json:"phone"`
	Message  string     `json:"message"`
}

type confirmationResponse struct {
	Reference          string `json:"reference"`
	ConfirmationNumber string `json:"confirmationNumber"`
	DoctorName         string `json:"doctorName"`
	Specialty          string `json:"specialty"`
	Hospital           string `json:"hospital"`
	Date               string `json:"date"`
	Time               string `json:"time"`
	PatientName        string `json:"patientName"`
	Email              string `json:"email"`
	Phone              string `json:"phone"`
}

type contactResponse struct {
	Status   string `json:"status"`
	TicketID string `json:"ticketId"`
}

type statusResponse struct {
	Status string `json:"status"`
}

// flexibleID はフォームから文字列・数値どちらで届いても受け付ける ID。
type flexibleID string

func (id *flexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = flexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("doctorId must be a string or a number: %w", err)
	}
	// 1.5 のような値はそのまま渡し、ID 解決で NotFound になる
	*id = flexibleID(n.String())
	return nil
}
