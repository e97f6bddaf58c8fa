package model

import "strings"

// EmailUnavailable is the sentinel address used when every resolution step
// failed. Callers can filter on it without nil checks.
const EmailUnavailable = "unavailable"

// EmailSource identifies which resolution step produced an address.
type EmailSource string

const (
	EmailSourceIndex   EmailSource = "source_index"
	EmailSourceFinder  EmailSource = "finder"
	EmailSourcePattern EmailSource = "pattern"
	EmailSourceNone    EmailSource = "none"
)

// EmailCandidate is the outcome of email resolution for one contact.
type EmailCandidate struct {
	Address  string      `json:"address"`
	Source   EmailSource `json:"source"`
	Verified bool        `json:"verified"`
}

// Contact is the normalized entity produced by extraction. All fields except
// the email ones are fixed at extraction time; the resolver fills Email,
// WorkEmail, PersonalEmail, EmailSource and EmailVerified in a single pass.
type Contact struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Title     string `json:"title"`
	Company   string `json:"company"`
	City      string `json:"city"`
	State     string `json:"state"`
	College   string `json:"college"`
	Phone     string `json:"phone"`

	Email         string      `json:"email"`
	WorkEmail     string      `json:"work_email"`
	PersonalEmail string      `json:"personal_email"`
	EmailSource   EmailSource `json:"email_source"`
	EmailVerified bool        `json:"email_verified"`

	LinkedIn         string `json:"linkedin"`
	EducationSummary string `json:"education_summary"`
	WorkSummary      string `json:"work_summary"`

	// IsCurrentlyAtTarget is true when the record's inferred current employer
	// matches the search's target company.
	IsCurrentlyAtTarget bool `json:"is_currently_at_target"`
}

// Identity returns the contact's stable dedup key. Email never participates:
// it is filled late and varies across sources for the same person.
func (c Contact) Identity() ContactIdentity {
	return NewContactIdentity(c.FirstName, c.LastName, c.Company)
}

// HasAnyEmail reports whether resolution produced a usable address.
func (c Contact) HasAnyEmail() bool {
	return c.Email != "" && c.Email != EmailUnavailable
}

// ContactIdentity is the (first, last, company) tuple used for deduplication
// and cross-request exclusion. All components are lower-cased.
type ContactIdentity struct {
	FirstName string
	LastName  string
	Company   string
}

// NewContactIdentity builds a normalized identity key.
func NewContactIdentity(first, last, company string) ContactIdentity {
	return ContactIdentity{
		FirstName: strings.ToLower(strings.TrimSpace(first)),
		LastName:  strings.ToLower(strings.TrimSpace(last)),
		Company:   strings.ToLower(strings.TrimSpace(company)),
	}
}

// SearchMeta describes how a search concluded, for caller-visible reporting.
type SearchMeta struct {
	RunID        string `json:"run_id"`
	StrategyUsed string `json:"strategy_used"`
	Pages        int    `json:"pages"`
	Attempted    int    `json:"attempted"`
	Returned     int    `json:"returned"`
}
