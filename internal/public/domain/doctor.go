package domain

import "strings"

// Doctor represents a publicly listed doctor.
type Doctor struct {
	ID             int
	Name           string
	Specialty      string
	Hospital       string
	Experience     string
	Rating         float64
	ReviewCount    int
	Location       string
	Image          string
	Fees           string
	About          string
	Education      []string
	Certifications []string
	Languages      []string
	Availability   string
}

// AvailableToday reports whether the availability descriptor mentions today.
func (d Doctor) AvailableToday() bool {
	return strings.Contains(d.Availability, "today")
}

// AvailableSlot is a bookable day of a doctor.
type AvailableSlot struct {
	DoctorID int
	Date     string
	Times    []string
}

// Review is patient feedback on a doctor.
type Review struct {
	DoctorID int
	Patient  string
	Rating   int
	Comment  string
	Date     string
}

func cloneDoctor(d Doctor) Doctor {
	d.Education = cloneStrings(d.Education)
	d.Certifications = cloneStrings(d.Certifications)
	d.Languages = cloneStrings(d.Languages)
	return d
}

func cloneSlot(s AvailableSlot) AvailableSlot {
	s.Times = cloneStrings(s.Times)
	return s
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	return append([]string{}, values...)
}
