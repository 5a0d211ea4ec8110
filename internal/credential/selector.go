package credential

import "sort"

// selectAccount picks exactly one account id for a resolution. With an
// identity, the match against UserName is exact and case-sensitive. With
// no identity, a single declared account is the implicit default;
// otherwise defaultID (the value of DefaultAccountKey) must name an
// existing account. Pure; no fallback from a failed identity lookup to
// the default account.
func selectAccount(accounts map[string]*AccountRecord, identity, defaultID string) (string, error) {
	if identity != "" {
		// Lexicographic scan keeps selection deterministic if two accounts
		// carry the same UserName.
		for _, id := range sortedIDs(accounts) {
			if accounts[id].Get(FieldUserName) == identity {
				return id, nil
			}
		}
		return "", &MissingCredentialError{Identity: identity}
	}

	if len(accounts) == 1 {
		for id := range accounts {
			return id, nil
		}
	}
	if defaultID != "" {
		if _, ok := accounts[defaultID]; ok {
			return defaultID, nil
		}
	}
	return "", &MissingCredentialError{}
}

func sortedIDs(accounts map[string]*AccountRecord) []string {
	ids := make([]string, 0, len(accounts))
	for id := range accounts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
