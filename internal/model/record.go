package model

// RawPersonRecord is the unmodified person-search index record. The schema is
// declared once here and validated at ingestion; no layer other than the
// extractor and the alumni verifier reads these fields.
type RawPersonRecord struct {
	ID          string       `json:"id"`
	FirstName   string       `json:"first_name"`
	LastName    string       `json:"last_name"`
	FullName    string       `json:"full_name"`
	JobTitle    string       `json:"job_title"`
	JobCompany  string       `json:"job_company_name"`
	// JobCompanyWebsite lets email resolution derive the sending domain
	// without a lookup when the index already knows the employer's site.
	JobCompanyWebsite string `json:"job_company_website"`
	LocationCity    string   `json:"location_locality"`
	LocationRegion  string   `json:"location_region"`
	LocationCountry string   `json:"location_country"`
	LinkedInURL     string   `json:"linkedin_url"`
	WorkEmail       string   `json:"work_email"`
	PersonalEmails  []string `json:"personal_emails"`
	MobilePhone     string   `json:"mobile_phone"`

	// Summary of the record's primary (most recent degree-granting) education,
	// as precomputed by the index. May be empty.
	PrimaryEducation string `json:"primary_education"`

	Experience []ExperienceEntry `json:"experience"`
	Education  []EducationEntry  `json:"education"`
}

// ExperienceEntry is one job in a record's work history.
type ExperienceEntry struct {
	CompanyName string `json:"company_name"`
	Title       string `json:"title"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	IsPrimary   bool   `json:"is_primary"`
}

// EducationEntry is one school in a record's education history.
type EducationEntry struct {
	SchoolName string   `json:"school_name"`
	Degrees    []string `json:"degrees"`
	Majors     []string `json:"majors"`
	StartDate  string   `json:"start_date"`
	EndDate    string   `json:"end_date"`
}

// HasDegreeEvidence reports whether this entry looks like a degree-granting
// program rather than a certificate or one-off course: an explicit degree,
// both start and end dates, or a declared major.
func (e EducationEntry) HasDegreeEvidence() bool {
	if len(e.Degrees) > 0 {
		return true
	}
	if e.StartDate != "" && e.EndDate != "" {
		return true
	}
	return len(e.Majors) > 0
}

// Valid reports whether the record carries enough identity to be usable.
// Records without a first and last name cannot be deduplicated or emailed.
func (r RawPersonRecord) Valid() bool {
	return r.FirstName != "" && r.LastName != ""
}

// CurrentCompany returns the company of the record's primary experience entry,
// falling back to the top-level job company.
func (r RawPersonRecord) CurrentCompany() string {
	for _, exp := range r.Experience {
		if exp.IsPrimary && exp.CompanyName != "" {
			return exp.CompanyName
		}
	}
	for _, exp := range r.Experience {
		if exp.EndDate == "" && exp.CompanyName != "" {
			return exp.CompanyName
		}
	}
	return r.JobCompany
}
