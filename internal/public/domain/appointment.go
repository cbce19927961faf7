package domain

import "time"

// StandardTimeLabels lists the time labels offered by the booking form.
var StandardTimeLabels = []string{
	"09:00 AM", "09:30 AM", "10:00 AM", "10:30 AM", "11:00 AM", "11:30 AM",
	"02:00 PM", "02:30 PM", "03:00 PM", "03:30 PM", "04:00 PM", "04:30 PM",
}

// ContactSubjects lists the subjects accepted by the contact form.
var ContactSubjects = []string{"general", "appointment", "technical", "billing"}

// Appointment is a validated booking request. It is never stored.
type Appointment struct {
	Reference   string
	DoctorID    int
	Date        time.Time
	Time        string
	PatientName string
	Email       string
	Phone       string
	Message     string
	RequestedAt time.Time
}

// Confirmation is the view shown after a booking has been accepted.
type Confirmation struct {
	Reference          string
	ConfirmationNumber string
	DoctorName         string
	Specialty          string
	Hospital           string
	Date               string
	Time               string
	PatientName        string
	Email              string
	Phone              string
}

// ContactMessage is a validated contact form submission.
type ContactMessage struct {
	TicketID    string
	Name        string
	Email       string
	Phone       string
	Subject     string
	Message     string
	SubmittedAt time.Time
}
