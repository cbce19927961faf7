package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Directory is an immutable snapshot of doctors, slots and reviews.
// Directory は起動時に一度だけ構築され、以降は読み取り専用として全ハンドラから共有される。
type Directory struct {
	doctors []Doctor
	slots   []AvailableSlot
	reviews []Review
}

// NewDirectory builds a snapshot from the given collections.
// 医師 ID の重複のみを不変条件として検査する。スロット/レビューの doctorId は参照先の存在を検証しない。
func NewDirectory(doctors []Doctor, slots []AvailableSlot, reviews []Review) (*Directory, error) {
	seen := make(map[int]struct{}, len(doctors))
	for _, doctor := range doctors {
		if _, ok := seen[doctor.ID]; ok {
			return nil, fmt.Errorf("duplicate doctor id: %d", doctor.ID)
		}
		seen[doctor.ID] = struct{}{}
	}

	dir := &Directory{
		doctors: make([]Doctor, 0, len(doctors)),
		slots:   make([]AvailableSlot, 0, len(slots)),
		reviews: append(make([]Review, 0, len(reviews)), reviews...),
	}
	for _, doctor := range doctors {
		dir.doctors = append(dir.doctors, cloneDoctor(doctor))
	}
	for _, slot := range slots {
		dir.slots = append(dir.slots, cloneSlot(slot))
	}
	return dir, nil
}

// Doctors returns every doctor in insertion order.
func (d *Directory) Doctors() []Doctor {
	result := make([]Doctor, 0, len(d.doctors))
	for _, doctor := range d.doctors {
		result = append(result, cloneDoctor(doctor))
	}
	return result
}

// Slots returns every availability slot in insertion order.
func (d *Directory) Slots() []AvailableSlot {
	result := make([]AvailableSlot, 0, len(d.slots))
	for _, slot := range d.slots {
		result = append(result, cloneSlot(slot))
	}
	return result
}

// Reviews returns every review in insertion order.
func (d *Directory) Reviews() []Review {
	return append(make([]Review, 0, len(d.reviews)), d.reviews...)
}

// FindDoctorByID returns the first doctor whose id matches.
// 見つからない場合は false を返す。エラーではない。
func (d *Directory) FindDoctorByID(id int) (Doctor, bool) {
	for _, doctor := range d.doctors {
		if doctor.ID == id {
			return cloneDoctor(doctor), true
		}
	}
	return Doctor{}, false
}

// FindSlotsByDoctor returns the doctor's slots in original order. Never nil.
func (d *Directory) FindSlotsByDoctor(id int) []AvailableSlot {
	result := make([]AvailableSlot, 0)
	for _, slot := range d.slots {
		if slot.DoctorID == id {
			result = append(result, cloneSlot(slot))
		}
	}
	return result
}

// FindReviewsByDoctor returns the doctor's reviews in original order. Never nil.
func (d *Directory) FindReviewsByDoctor(id int) []Review {
	result := make([]Review, 0)
	for _, review := range d.reviews {
		if review.DoctorID == id {
			result = append(result, review)
		}
	}
	return result
}

// ParseDoctorID interprets untrusted input as a doctor identifier.
// 数値として解釈できない入力は false となり、呼び出し側は NotFound と同じ扱いをする。
func ParseDoctorID(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return id, true
}
