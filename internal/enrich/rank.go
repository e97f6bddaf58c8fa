package enrich

import (
	"sort"
	"strings"

	"github.com/deenabandi004-byte/Final-offerloop-sub001/internal/model"
)

// finderFriendly lists employers whose addresses the email finder resolves
// reliably. Membership is a ranking nudge, never a filter.
var finderFriendly = map[string]struct{}{
	"google": {}, "microsoft": {}, "amazon": {}, "apple": {}, "meta": {},
	"netflix": {}, "salesforce": {}, "oracle": {}, "ibm": {}, "intel": {},
	"nvidia": {}, "adobe": {}, "linkedin": {}, "uber": {}, "airbnb": {},
	"goldman sachs": {}, "morgan stanley": {}, "jpmorgan chase": {},
	"mckinsey & company": {}, "boston consulting group": {}, "bain & company": {},
	"deloitte": {}, "accenture": {}, "pwc": {}, "ey": {}, "kpmg": {},
}

// rankScore estimates how likely a record is to yield a usable, verifiable
// email. Used only to order resolution attempts, never to drop candidates.
func rankScore(rec model.RawPersonRecord, targetTitle string) int {
	score := 0

	recTitle := model.NormalizeName(rec.JobTitle)
	wantTitle := model.NormalizeName(targetTitle)
	if wantTitle != "" && recTitle != "" {
		if recTitle == wantTitle {
			score += 30
		} else {
			want := strings.Fields(wantTitle)
			have := map[string]struct{}{}
			for _, tok := range strings.Fields(recTitle) {
				have[tok] = struct{}{}
			}
			for _, tok := range want {
				if _, ok := have[tok]; ok {
					score += 10
				}
			}
		}
	}

	if rec.WorkEmail != "" {
		score += 25
	} else if len(rec.PersonalEmails) > 0 {
		score += 5
	}
	if rec.LinkedInURL != "" {
		score += 10
	}
	if _, ok := finderFriendly[model.NormalizeName(rec.CurrentCompany())]; ok {
		score += 15
	}

	return score
}

// Rank orders records by descending score. The tie-break on name then index
// ID makes the order total: re-ranking an already ranked list with no new
// information returns the same order.
func Rank(records []model.RawPersonRecord, targetTitle string) {
	scores := make(map[string]int, len(records))
	// Company is part of the key so ID-less records for same-named people
	// at different employers keep separate scores.
	key := func(rec model.RawPersonRecord) string {
		return rec.ID + "|" + rec.FullName + "|" + rec.FirstName + " " + rec.LastName + "|" + model.NormalizeName(rec.CurrentCompany())
	}
	for _, rec := range records {
		scores[key(rec)] = rankScore(rec, targetTitle)
	}

	sort.SliceStable(records, func(i, j int) bool {
		ki, kj := key(records[i]), key(records[j])
		if scores[ki] != scores[kj] {
			return scores[ki] > scores[kj]
		}
		return ki < kj
	})
}
