// Package seed は埋め込み YAML から初期ディレクトリ(医師・空き枠・レビュー)を読み込む。
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"

	"github.com/sngm3741/medibook-services/api/internal/public/domain"
	"gopkg.in/yaml.v3"
)

//go:embed directory.yaml
var directoryYAML []byte

type directoryFile struct {
	Doctors []doctorEntry `yaml:"doctors"`
	Slots   []slotEntry   `yaml:"slots"`
	Reviews []reviewEntry `yaml:"reviews"`
}

type doctorEntry struct {
	ID             int      `yaml:"id"`
	Name           string   `yaml:"name"`
	Specialty      string   `yaml:"specialty"`
	Hospital       string   `yaml:"hospital"`
	Experience     string   `yaml:"experience"`
	Rating         float64  `yaml:"rating"`
	ReviewCount    int      `yaml:"reviewCount"`
	Location       string   `yaml:"location"`
	Image          string   `yaml:"image"`
	Fees           string   `yaml:"fees"`
	About          string   `yaml:"about"`
	Education      []string `yaml:"education"`
	Certifications []string `yaml:"certifications"`
	Languages      []string `yaml:"languages"`
	Availability   string   `yaml:"availability"`
}

type slotEntry struct {
	DoctorID int      `yaml:"doctorId"`
	Date     string   `yaml:"date"`
	Times    []string `yaml:"times"`
}

type reviewEntry struct {
	DoctorID int    `yaml:"doctorId"`
	Patient  string `yaml:"patient"`
	Rating   int    `yaml:"rating"`
	Comment  string `yaml:"comment"`
	Date     string `yaml:"date"`
}

// Source は埋め込みシードをディレクトリの読み込み元として提供する。
type Source struct{}

// NewSource returns the embedded seed source.
func NewSource() *Source {
	return &Source{}
}

// Load decodes the embedded seed file.
func (Source) Load(_ context.Context) (*domain.Directory, error) {
	return Decode(bytes.NewReader(directoryYAML))
}

// Decode は YAML 形式のディレクトリ定義を読み込み、スナップショットを構築する。
func Decode(r io.Reader) (*domain.Directory, error) {
	var file directoryFile
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("シードファイルの読み込みに失敗: %w", err)
	}

	doctors := make([]domain.Doctor, 0, len(file.Doctors))
	for _, entry := range file.Doctors {
		doctors = append(doctors, domain.Doctor{
			ID:             entry.ID,
			Name:           entry.Name,
			Specialty:      entry.Specialty,
			Hospital:       entry.Hospital,
			Experience:     entry.Experience,
			Rating:         entry.Rating,
			ReviewCount:    entry.ReviewCount,
			Location:       entry.Location,
			Image:          entry.Image,
			Fees:           entry.Fees,
			About:          entry.About,
			Education:      entry.Education,
			Certifications: entry.Certifications,
			Languages:      entry.Languages,
			Availability:   entry.Availability,
		})
	}

	slots := make([]domain.AvailableSlot, 0, len(file.Slots))
	for _, entry := range file.Slots {
		slots = append(slots, domain.AvailableSlot{
			DoctorID: entry.DoctorID,
			Date:     entry.Date,
			Times:    entry.Times,
		})
	}

	reviews := make([]domain.Review, 0, len(file.Reviews))
	for _, entry := range file.Reviews {
		reviews = append(reviews, domain.Review{
			DoctorID: entry.DoctorID,
			Patient:  entry.Patient,
			Rating:   entry.Rating,
			Comment:  entry.Comment,
			Date:     entry.Date,
		})
	}

	return domain.NewDirectory(doctors, slots, reviews)
}
