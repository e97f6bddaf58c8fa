// Package enrich turns raw index records into ranked, email-resolved
// contacts: extraction, identity dedup, ranking and the orchestration
// pipeline behind the search and profile-resolution operations.
package enrich

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/deenabandi004-byte/Final-offerloop-sub001/internal/model"
)

// Index records carry lower-cased names.
var titleCaser = cases.Title(language.English, cases.NoLower)

func title(s string) string {
	return titleCaser.String(s)
}

// maxSummaryEntries bounds the work and education summaries on a contact.
const maxSummaryEntries = 5

// Extract maps one raw record to a Contact. Pure; the email fields stay
// empty for the resolver. targetCompany drives the current-employer check
// and is also what the contact's Company falls back to when the record has
// no usable employer of its own.
func Extract(rec model.RawPersonRecord, targetCompany string) model.Contact {
	company := rec.CurrentCompany()
	if company == "" {
		company = targetCompany
	}

	return model.Contact{
		FirstName:           title(rec.FirstName),
		LastName:            title(rec.LastName),
		Title:               rec.JobTitle,
		Company:             company,
		City:                title(rec.LocationCity),
		State:               title(rec.LocationRegion),
		College:             collegeOf(rec),
		Phone:               rec.MobilePhone,
		LinkedIn:            rec.LinkedInURL,
		EducationSummary:    educationSummary(rec),
		WorkSummary:         workSummary(rec),
		IsCurrentlyAtTarget: sameCompany(rec.CurrentCompany(), targetCompany),
	}
}

// collegeOf picks the record's most credible school: the first
// degree-bearing education entry, then any education entry, then the
// index's primary-education summary.
func collegeOf(rec model.RawPersonRecord) string {
	for _, edu := range rec.Education {
		if edu.SchoolName != "" && edu.HasDegreeEvidence() {
			return edu.SchoolName
		}
	}
	for _, edu := range rec.Education {
		if edu.SchoolName != "" {
			return edu.SchoolName
		}
	}
	return rec.PrimaryEducation
}

func educationSummary(rec model.RawPersonRecord) string {
	var parts []string
	for _, edu := range rec.Education {
		if edu.SchoolName == "" {
			continue
		}
		entry := edu.SchoolName
		if len(edu.Degrees) > 0 {
			entry += " (" + strings.Join(edu.Degrees, ", ") + ")"
		}
		parts = append(parts, entry)
		if len(parts) >= maxSummaryEntries {
			break
		}
	}
	return strings.Join(parts, "; ")
}

func workSummary(rec model.RawPersonRecord) string {
	var parts []string
	for _, exp := range rec.Experience {
		if exp.CompanyName == "" {
			continue
		}
		entry := exp.CompanyName
		if exp.Title != "" {
			entry = exp.Title + " at " + exp.CompanyName
		}
		parts = append(parts, entry)
		if len(parts) >= maxSummaryEntries {
			break
		}
	}
	return strings.Join(parts, "; ")
}

// sameCompany compares employers loosely: normalized equality or one name
// containing the other, so "Google" matches "Google LLC".
func sameCompany(a, b string) bool {
	na, nb := model.NormalizeName(a), model.NormalizeName(b)
	if na == "" || nb == "" {
		return false
	}
	return na == nb || strings.Contains(na, nb) || strings.Contains(nb, na)
}
