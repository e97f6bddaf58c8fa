package email

import "strings"

// GenerateFromPattern expands a send-pattern template such as
// "{first}.{last}" or "{f}{last}" into an address on domain. Unknown
// placeholders yield "" so a malformed pattern never produces a garbage
// address.
func GenerateFromPattern(pattern, first, last, domain string) string {
	first = sanitizeNamePart(first)
	last = sanitizeNamePart(last)
	if first == "" || last == "" || domain == "" || pattern == "" {
		return ""
	}

	local := pattern
	replacements := [][2]string{
		{"{first}", first},
		{"{last}", last},
		{"{f}", first[:1]},
		{"{l}", last[:1]},
	}
	for _, r := range replacements {
		local = strings.ReplaceAll(local, r[0], r[1])
	}
	if strings.ContainsAny(local, "{}") {
		return ""
	}
	return local + "@" + domain
}

// DefaultAddress is the fixed first-initial + last-name fallback.
func DefaultAddress(first, last, domain string) string {
	first = sanitizeNamePart(first)
	last = sanitizeNamePart(last)
	if first == "" || last == "" || domain == "" {
		return ""
	}
	return first[:1] + last + "@" + domain
}

// sanitizeNamePart lowercases and strips everything that cannot appear in an
// address local part. "O'Brien" becomes "obrien".
func sanitizeNamePart(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// addressDomain returns the lower-cased domain of an address, or "".
func addressDomain(addr string) string {
	at := strings.LastIndex(addr, "@")
	if at < 0 || at == len(addr)-1 {
		return ""
	}
	return strings.ToLower(addr[at+1:])
}
