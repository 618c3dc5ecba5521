package models

// LocalizedText maps a language code to text.
type LocalizedText map[string]string

// In returns the text for lang, falling back to French, then English, then
// any translation.
func (t LocalizedText) In(lang string) string {
	for _, l := range []string{lang, "fr", "en"} {
		if v := t[l]; v != "" {
			return v
		}
	}
	for _, v := range t {
		if v != "" {
			return v
		}
	}
	return ""
}

type Sector struct {
	ID          string        `json:"id"`
	Name        LocalizedText `json:"name"`
	Description LocalizedText `json:"description"`
	Growth      float64       `json:"growth"`
	JobCount    int           `json:"jobCount"`
}

type Job struct {
	ID             string        `json:"id"`
	Title          LocalizedText `json:"title"`
	SectorID       string        `json:"sector"`
	Description    LocalizedText `json:"description"`
	Education      []string      `json:"education"`
	SalaryMin      int           `json:"salaryMin"`
	SalaryMax      int           `json:"salaryMax"`
	SalaryCurrency string        `json:"salaryCurrency"`
	HiringRate     float64       `json:"hiringRate"`
	Skills         []string      `json:"skills"`
}

// JobQuery narrows GET /jobs.
type JobQuery struct {
	Sector string
	Search string
	Skip   int
	Limit  int
}
