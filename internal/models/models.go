package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

// GettingStartedSlug is the reserved lesson slug pinned to the first
// position of every kit regardless of its numeric order.
const GettingStartedSlug = "getting-started"

type Wiki struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Slug          string     `gorm:"uniqueIndex;not null" json:"slug"`
	DisplayName   string     `gorm:"not null" json:"displayName"`
	Domains       StringList `gorm:"type:jsonb" json:"domains,omitempty"`
	DefaultLocale string     `gorm:"type:varchar(8);default:'en'" json:"defaultLocale,omitempty"`
	ResourcesURL  string     `json:"resourcesUrl,omitempty"`
	IsLocked      bool       `gorm:"default:false" json:"isLocked,omitempty"`

	Kits []Kit `gorm:"foreignKey:WikiSlug;references:Slug" json:"kits,omitempty"`
}

type Kit struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Slug       string `gorm:"uniqueIndex;not null" json:"slug"`
	WikiSlug   string `gorm:"index;not null" json:"wikiSlug"`
	TitleEn    string `json:"title_en"`
	TitleAr    string `json:"title_ar"`
	HeroImage  string `json:"heroImage"`
	OverviewEn string `gorm:"type:text" json:"overview_en"`
	OverviewAr string `gorm:"type:text" json:"overview_ar"`
}

// Lesson is the persisted record produced and consumed by the transcoding
// engine. The JSON field names are stable wire surface shared with stored
// lesson files; do not rename them.
type Lesson struct {
	ID        string    `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`

	Slug     string `gorm:"uniqueIndex;not null" json:"slug"`
	WikiSlug string `gorm:"index;not null" json:"wikiSlug"`
	Order    int    `gorm:"default:0" json:"order"`

	TitleEn     string `gorm:"not null" json:"title_en"`
	TitleAr     string `json:"title_ar"`
	DurationMin int    `gorm:"default:30" json:"duration_min"`
	Difficulty  string `gorm:"default:'Beginner'" json:"difficulty"`

	PrerequisitesEn StringList   `gorm:"type:jsonb" json:"prerequisites_en"`
	PrerequisitesAr StringList   `gorm:"type:jsonb" json:"prerequisites_ar"`
	Materials       MaterialList `gorm:"type:jsonb" json:"materials"`

	Body LessonBody `gorm:"type:jsonb" json:"body"`
}

// IsGettingStarted reports whether this is the reserved pinned lesson.
func (l *Lesson) IsGettingStarted() bool {
	return l.Slug == GettingStartedSlug
}

type Material struct {
	Qty    int    `json:"qty"`
	NameEn string `json:"name_en"`
	NameAr string `json:"name_ar"`
	SKU    string `json:"sku,omitempty"`
}

type StringList []string

func (sl StringList) Value() (driver.Value, error) {
	if sl == nil {
		sl = StringList{}
	}
	return json.Marshal(sl)
}

func (sl *StringList) Scan(value interface{}) error {
	if value == nil {
		*sl = StringList{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan StringList")
	}

	return json.Unmarshal(bytes, sl)
}

type MaterialList []Material

func (ml MaterialList) Value() (driver.Value, error) {
	if ml == nil {
		ml = MaterialList{}
	}
	return json.Marshal(ml)
}

func (ml *MaterialList) Scan(value interface{}) error {
	if value == nil {
		*ml = MaterialList{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan MaterialList")
	}

	return json.Unmarshal(bytes, ml)
}

type SaveLessonRequest struct {
	ID              string        `json:"id"`
	Slug            string        `json:"slug"`
	WikiSlug        string        `json:"wikiSlug" binding:"required"`
	Order           int           `json:"order"`
	TitleEn         string        `json:"title_en"`
	TitleAr         string        `json:"title_ar"`
	DurationMin     int           `json:"duration_min"`
	Difficulty      string        `json:"difficulty"`
	PrerequisitesEn []string      `json:"prerequisites_en"`
	PrerequisitesAr []string      `json:"prerequisites_ar"`
	Materials       []Material    `json:"materials"`
	Body            []LessonBlock `json:"body"`
	ForceNew        bool          `json:"forceNew"`
}

type SaveLessonResponse struct {
	OK       bool           `json:"ok"`
	IsUpdate bool           `json:"isUpdate"`
	Lesson   SavedLessonRef `json:"lesson"`
	Warning  string         `json:"warning,omitempty"`
}

// SavedLessonRef reports the possibly-renamed identity after conflict
// disambiguation.
type SavedLessonRef struct {
	ID    string `json:"id"`
	Slug  string `json:"slug"`
	Order int    `json:"order"`
}

type ReorderLessonsRequest struct {
	WikiSlug string   `json:"wikiSlug" binding:"required"`
	Slugs    []string `json:"slugs" binding:"required"`
}

type CreateWikiRequest struct {
	Slug        string   `json:"slug" binding:"required,slug"`
	DisplayName string   `json:"displayName" binding:"required"`
	Domains     []string `json:"domains"`
}
