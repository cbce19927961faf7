package application

import (
	"strings"

	"github.com/sngm3741/medibook-services/api/internal/public/domain"
)

// filterAll is the sentinel the listing page sends for "no filter".
const filterAll = "all"

// directoryQueryService is the concrete implementation of DirectoryQueryService.
type directoryQueryService struct {
	directory *domain.Directory
}

// NewDirectoryQueryService creates a query service over the given snapshot.
func NewDirectoryQueryService(directory *domain.Directory) DirectoryQueryService {
	return &directoryQueryService{directory: directory}
}

// ListDoctors は検索語(名前または診療科の部分一致)、診療科、所在地で医師を絞り込む。
// 絞り込みはコアではなくこの利用側の責務。
func (s *directoryQueryService) ListDoctors(filter DoctorFilter) []domain.Doctor {
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	specialty := normalizeFilterValue(filter.Specialty)
	location := normalizeFilterValue(filter.Location)

	result := make([]domain.Doctor, 0)
	for _, doctor := range s.directory.Doctors() {
		if search != "" &&
			!strings.Contains(strings.ToLower(doctor.Name), search) &&
			!strings.Contains(strings.ToLower(doctor.Specialty), search) {
			continue
		}
		if specialty != "" && doctor.Specialty != specialty {
			continue
		}
		if location != "" && doctor.Location != location {
			continue
		}
		result = append(result, doctor)
	}
	return result
}

func (s *directoryQueryService) FilterOptions() FilterOptions {
	doctors := s.directory.Doctors()
	specialties := make([]string, 0)
	locations := make([]string, 0)
	seenSpecialty := make(map[string]struct{})
	seenLocation := make(map[string]struct{})
	for _, doctor := range doctors {
		if _, ok := seenSpecialty[doctor.Specialty]; !ok {
			seenSpecialty[doctor.Specialty] = struct{}{}
			specialties = append(specialties, doctor.Specialty)
		}
		if _, ok := seenLocation[doctor.Location]; !ok {
			seenLocation[doctor.Location] = struct{}{}
			locations = append(locations, doctor.Location)
		}
	}
	return FilterOptions{Specialties: specialties, Locations: locations}
}

func (s *directoryQueryService) Doctor(id int) (domain.Doctor, bool) {
	return s.directory.FindDoctorByID(id)
}

func (s *directoryQueryService) Slots(doctorID int) []domain.AvailableSlot {
	return s.directory.FindSlotsByDoctor(doctorID)
}

func (s *directoryQueryService) Reviews(doctorID int) []domain.Review {
	return s.directory.FindReviewsByDoctor(doctorID)
}

func (s *directoryQueryService) Profile(id int) (DoctorProfile, bool) {
	doctor, ok := s.directory.FindDoctorByID(id)
	if !ok {
		return DoctorProfile{}, false
	}
	return DoctorProfile{
		Doctor:  doctor,
		Slots:   s.directory.FindSlotsByDoctor(id),
		Reviews: s.directory.FindReviewsByDoctor(id),
	}, true
}

func normalizeFilterValue(value string) string {
	value = strings.TrimSpace(value)
	if strings.EqualFold(value, filterAll) {
		return ""
	}
	return value
}
