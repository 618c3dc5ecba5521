package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// LocalizedText maps a language code to its translation. French is the
// reference language and is always expected to be present.
type LocalizedText map[string]string

// In returns the text for lang, falling back to French.
func (t LocalizedText) In(lang string) string {
	if v, ok := t[lang]; ok && v != "" {
		return v
	}
	return t["fr"]
}

// Value stores the text as a JSONB document.
func (t LocalizedText) Value() (driver.Value, error) {
	if t == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(map[string]string(t))
}

// Scan reads a JSONB document.
func (t *LocalizedText) Scan(src any) error {
	var b []byte
	switch v := src.(type) {
	case nil:
		*t = LocalizedText{}
		return nil
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return errors.New("localized text: unsupported source type")
	}
	m := map[string]string{}
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	*t = m
	return nil
}

type Sector struct {
	ID              string        `json:"id"`
	Name            LocalizedText `json:"name"`
	Description     LocalizedText `json:"description"`
	Icon            string        `json:"icon"`
	Color           string        `json:"color"`
	BackgroundImage string        `json:"backgroundImage,omitempty"`
	Growth          float64       `json:"growth"`
	JobCount        int           `json:"jobCount"`
	IsActive        bool          `json:"isActive"`
	CreatedAt       time.Time     `json:"createdAt"`
}

type Job struct {
	ID               string        `json:"id"`
	Title            LocalizedText `json:"title"`
	SectorID         string        `json:"sector"`
	Description      LocalizedText `json:"description"`
	Education        StringList    `json:"education"`
	SalaryMin        int           `json:"salaryMin"`
	SalaryMax        int           `json:"salaryMax"`
	SalaryCurrency   string        `json:"salaryCurrency"`
	HiringRate       float64       `json:"hiringRate"`
	GrowthProjection string        `json:"growthProjection,omitempty"`
	Skills           StringList    `json:"skills"`
	CompanyIDs       StringList    `json:"companies"`
	TrainingIDs      StringList    `json:"training"`
	Requirements     LocalizedText `json:"requirements,omitempty"`
	WorkEnvironment  LocalizedText `json:"workEnvironment,omitempty"`
	CareerPath       LocalizedText `json:"careerPath,omitempty"`
	IsActive         bool          `json:"isActive"`
	CreatedAt        time.Time     `json:"createdAt"`
	UpdatedAt        time.Time     `json:"updatedAt"`
}

// JobDetail is a Job joined with its companies, trainings and approved
// testimonials.
type JobDetail struct {
	Job
	Companies    []*Company     `json:"companies"`
	Trainings    []*Training    `json:"training"`
	Testimonials []*Testimonial `json:"testimonials"`
}

// JobFilter narrows GET /jobs.
type JobFilter struct {
	SectorID string
	Search   string
	Skip     int
	Limit    int
}

type Company struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description LocalizedText `json:"description"`
	Logo        string        `json:"logo,omitempty"`
	Website     string        `json:"website,omitempty"`
	Location    string        `json:"location"`
	SectorID    string        `json:"sector"`
	Size        string        `json:"size,omitempty"`
	IsActive    bool          `json:"isActive"`
	CreatedAt   time.Time     `json:"createdAt"`
}

type Training struct {
	ID           string        `json:"id"`
	Name         LocalizedText `json:"name"`
	Provider     string        `json:"provider"`
	Description  LocalizedText `json:"description"`
	Duration     string        `json:"duration"`
	Cost         string        `json:"cost"`
	Level        string        `json:"level"`
	Format       string        `json:"format"`
	ExternalLink string        `json:"externalLink,omitempty"`
	Skills       StringList    `json:"skills"`
	Certificate  bool          `json:"certificate"`
	IsActive     bool          `json:"isActive"`
	CreatedAt    time.Time     `json:"createdAt"`
}

type Testimonial struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Position   string        `json:"position"`
	Company    string        `json:"company"`
	Quote      LocalizedText `json:"quote"`
	JobID      string        `json:"jobId"`
	AuthorID   string        `json:"authorId,omitempty"`
	IsVerified bool          `json:"isVerified"`
	IsApproved bool          `json:"isApproved"`
	CreatedAt  time.Time     `json:"createdAt"`
}

// StringList is a list of strings stored as a JSONB array.
type StringList []string

// Value stores the list as a JSONB array; nil becomes [].
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

// Scan reads a JSONB array.
func (l *StringList) Scan(src any) error {
	var b []byte
	switch v := src.(type) {
	case nil:
		*l = StringList{}
		return nil
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return errors.New("string list: unsupported source type")
	}
	out := []string{}
	if err := json.Unmarshal(b, &out); err != nil {
		return err
	}
	*l = out
	return nil
}

// Contains reports whether s is in the list.
func (l StringList) Contains(s string) bool {
	for _, v := range l {
		if v == s {
			return true
		}
	}
	return false
}
