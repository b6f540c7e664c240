package domain

// CREATE TABLE public.taxonomy_entries (
//     id         BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     category   TEXT NOT NULL,
//     value      TEXT NOT NULL,
//     keywords   TEXT NOT NULL
// );

// TaxonomyEntry defines one allowed (category, value) tag and the
// comma-separated keywords that map free text onto it. The taxonomy is loaded
// once at startup and treated as static configuration.
type TaxonomyEntry struct {
	ID       uint64 `gorm:"primaryKey;column:id;autoIncrement" json:"id"`
	Category string `gorm:"column:category;not null" json:"category"`
	Value    string `gorm:"column:value;not null" json:"value"`
	Keywords string `gorm:"column:keywords;not null" json:"keywords"`
}

func (TaxonomyEntry) TableName() string {
	return "taxonomy_entries"
}

const (
	TagCategoryGenre    = "genre"
	TagCategoryStyle    = "style"
	TagCategoryAmbiance = "ambiance"
	TagCategoryPublic   = "public"
)
