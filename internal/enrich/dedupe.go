package enrich

import "github.com/deenabandi004-byte/Final-offerloop-sub001/internal/model"

// Dedupe collapses records sharing a (first, last, current company)
// identity, keeping the first occurrence. It runs before extraction so
// duplicate records never cost an email resolution. Idempotent: applying it
// to its own output is a no-op.
func Dedupe(records []model.RawPersonRecord) []model.RawPersonRecord {
	seen := make(map[model.ContactIdentity]struct{}, len(records))
	out := make([]model.RawPersonRecord, 0, len(records))
	for _, rec := range records {
		id := recordIdentity(rec)
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, rec)
	}
	return out
}

func recordIdentity(rec model.RawPersonRecord) model.ContactIdentity {
	return model.NewContactIdentity(rec.FirstName, rec.LastName, rec.CurrentCompany())
}
