package mongo

import (
	"context"
	"fmt"

	"github.com/sngm3741/medibook-services/api/internal/public/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DirectoryRepository は医師・空き枠・レビューの 3 コレクションからディレクトリを読み込むリポジトリ。
// 読み込みは起動時の 1 回のみで、以降はスナップショットを参照する。
type DirectoryRepository struct {
	doctors *mongo.Collection
	slots   *mongo.Collection
	reviews *mongo.Collection
}

// NewDirectoryRepository binds the three collections.
func NewDirectoryRepository(db *mongo.Database, doctorCollection, slotCollection, reviewCollection string) *DirectoryRepository {
	return &DirectoryRepository{
		doctors: db.Collection(doctorCollection),
		slots:   db.Collection(slotCollection),
		reviews: db.Collection(reviewCollection),
	}
}

// Load は全件を投入順で読み出し、ドメインのスナップショットへ変換する。
func (r *DirectoryRepository) Load(ctx context.Context) (*domain.Directory, error) {
	doctorDocs, err := findAll[DoctorDocument](ctx, r.doctors, "seq")
	if err != nil {
		return nil, fmt.Errorf("医師コレクションの読み込みに失敗: %w", err)
	}
	slotDocs, err := findAll[SlotDocument](ctx, r.slots, "seq")
	if err != nil {
		return nil, fmt.Errorf("空き枠コレクションの読み込みに失敗: %w", err)
	}
	reviewDocs, err := findAll[ReviewDocument](ctx, r.reviews, "seq")
	if err != nil {
		return nil, fmt.Errorf("レビューコレクションの読み込みに失敗: %w", err)
	}

	doctors := make([]domain.Doctor, 0, len(doctorDocs))
	for _, doc := range doctorDocs {
		doctors = append(doctors, mapDoctorDocument(doc))
	}
	slots := make([]domain.AvailableSlot, 0, len(slotDocs))
	for _, doc := range slotDocs {
		slots = append(slots, domain.AvailableSlot{
			DoctorID: doc.DoctorID,
			Date:     doc.Date,
			Times:    append([]string{}, doc.Times...),
		})
	}
	reviews := make([]domain.Review, 0, len(reviewDocs))
	for _, doc := range reviewDocs {
		reviews = append(reviews, domain.Review{
			DoctorID: doc.DoctorID,
			Patient:  doc.Patient,
			Rating:   doc.Rating,
			Comment:  doc.Comment,
			Date:     doc.Date,
		})
	}

	return domain.NewDirectory(doctors, slots, reviews)
}

// Replace はコレクションを空にしてからスナップショットの内容を投入する。seed コマンドから利用する。
func (r *DirectoryRepository) Replace(ctx context.Context, dir *domain.Directory) error {
	for _, coll := range []*mongo.Collection{r.doctors, r.slots, r.reviews} {
		if _, err := coll.DeleteMany(ctx, bson.D{}); err != nil {
			return fmt.Errorf("%s の削除に失敗: %w", coll.Name(), err)
		}
	}

	doctorDocs := make([]any, 0)
	for i, doctor := range dir.Doctors() {
		doc := toDoctorDocument(doctor)
		doc.Seq = i
		doctorDocs = append(doctorDocs, doc)
	}
	slotDocs := make([]any, 0)
	for i, slot := range dir.Slots() {
		slotDocs = append(slotDocs, SlotDocument{
			Seq:      i,
			DoctorID: slot.DoctorID,
			Date:     slot.Date,
			Times:    slot.Times,
		})
	}
	reviewDocs := make([]any, 0)
	for i, review := range dir.Reviews() {
		reviewDocs = append(reviewDocs, ReviewDocument{
			Seq:      i,
			DoctorID: review.DoctorID,
			Patient:  review.Patient,
			Rating:   review.Rating,
			Comment:  review.Comment,
			Date:     review.Date,
		})
	}

	if err := insertAll(ctx, r.doctors, doctorDocs); err != nil {
		return err
	}
	if err := insertAll(ctx, r.slots, slotDocs); err != nil {
		return err
	}
	return insertAll(ctx, r.reviews, reviewDocs)
}

// EnsureIndexes は読み込み順の seq と doctorId での参照用インデックスを作成する。
func (r *DirectoryRepository) EnsureIndexes(ctx context.Context) error {
	if _, err := r.doctors.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "seq", Value: 1}},
	}); err != nil {
		return fmt.Errorf("%s のインデックス作成に失敗: %w", r.doctors.Name(), err)
	}
	for _, coll := range []*mongo.Collection{r.slots, r.reviews} {
		_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: "doctorId", Value: 1}, {Key: "seq", Value: 1}},
		})
		if err != nil {
			return fmt.Errorf("%s のインデックス作成に失敗: %w", coll.Name(), err)
		}
	}
	return nil
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, sortKey string) ([]T, error) {
	opts := options.Find().SetSort(bson.D{{Key: sortKey, Value: 1}})
	cursor, err := coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	result := make([]T, 0)
	for cursor.Next(ctx) {
		var doc T
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		result = append(result, doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func insertAll(ctx context.Context, coll *mongo.Collection, docs []any) error {
	if len(docs) == 0 {
		return nil
	}
	if _, err := coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("%s への投入に失敗: %w", coll.Name(), err)
	}
	return nil
}

func mapDoctorDocument(doc DoctorDocument) domain.Doctor {
	return domain.Doctor{
		ID:             doc.ID,
		Name:           doc.Name,
		Specialty:      doc.Specialty,
		Hospital:       doc.Hospital,
		Experience:     doc.Experience,
		Rating:         doc.Rating,
		ReviewCount:    doc.ReviewCount,
		Location:       doc.Location,
		Image:          doc.Image,
		Fees:           doc.Fees,
		About:          doc.About,
		Education:      append([]string{}, doc.Education...),
		Certifications: append([]string{}, doc.Certifications...),
		Languages:      append([]string{}, doc.Languages...),
		Availability:   doc.Availability,
	}
}

func toDoctorDocument(doctor domain.Doctor) DoctorDocument {
	return DoctorDocument{
		ID:             doctor.ID,
		Name:           doctor.Name,
		Specialty:      doctor.Specialty,
		Hospital:       doctor.Hospital,
		Experience:     doctor.Experience,
		Rating:         doctor.Rating,
		ReviewCount:    doctor.ReviewCount,
		Location:       doctor.Location,
		Image:          doctor.Image,
		Fees:           doctor.Fees,
		About:          doctor.About,
		Education:      doctor.Education,
		Certifications: doctor.Certifications,
		Languages:      doctor.Languages,
		Availability:   doctor.Availability,
	}
}
