package domain

import "strings"

// NormalizeEmail canonicalizes an email address so that equivalent
// addresses map to a single identity. The whole address is lower-cased.
// Gmail ignores dots in the local part, so for Gmail domains those dots
// are stripped as well. Malformed input (no "@") is returned lower-cased
// unchanged; emptiness is validated at the request boundary.
func NormalizeEmail(raw string) string {
	lowered := strings.ToLower(raw)

	local, dom, found := strings.Cut(lowered, "@")
	if !found {
		return lowered
	}

	if dom == "gmail.com" || dom == "googlemail.com" {
		local = strings.ReplaceAll(local, ".", "")
	}

	return local + "@" + dom
}
