package mongo

// DoctorDocument は MongoDB 上での医師スキーマを Go 構造体として表現したもの。
// _id には医師の整数 ID をそのまま使い、一覧の並びは seq で保持する。
type DoctorDocument struct {
	ID             int      `bson:"_id"`
	Seq            int      `bson:"seq"`
	Name           string   `bson:"name"`
	Specialty      string   `bson:"specialty,omitempty"`
	Hospital       string   `bson:"hospital,omitempty"`
	Experience     string   `bson:"experience,omitempty"`
	Rating         float64  `bson:"rating"`
	ReviewCount    int      `bson:"reviewCount"`
	Location       string   `bson:"location,omitempty"`
	Image          string   `bson:"image,omitempty"`
	Fees           string   `bson:"fees,omitempty"`
	About          string   `bson:"about,omitempty"`
	Education      []string `bson:"education,omitempty"`
	Certifications []string `bson:"certifications,omitempty"`
	Languages      []string `bson:"languages,omitempty"`
	Availability   string   `bson:"availability,omitempty"`
}

// SlotDocument は医師 1 日分の空き枠。seq は投入順を保持するための連番。
type SlotDocument struct {
	Seq      int      `bson:"seq"`
	DoctorID int      `bson:"doctorId"`
	Date     string   `bson:"date"`
	Times    []string `bson:"times"`
}

// ReviewDocument は患者レビュー 1 件分のスキーマ。
type ReviewDocument struct {
	Seq      int    `bson:"seq"`
	DoctorID int    `bson:"doctorId"`
	Patient  string `bson:"patient"`
	Rating   int    `bson:"rating"`
	Comment  string `bson:"comment"`
	Date     string `bson:"date"`
}
