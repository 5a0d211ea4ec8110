package credential

import "strings"

// DefaultAccountKey is the bare configuration key whose value names the
// account to use when no identity is requested and more than one account
// is declared. A dot-free key can never collide with per-account fields.
const DefaultAccountKey = "defaultAccount"

// indexAccounts partitions a flat key space into per-account field sets.
// Keys without a dot separator, with empty segments, or with unrecognized
// field names are ignored; unknown names are forward-compatible, not
// errors. Validation of the resulting records is deferred to the factory.
func indexAccounts(values map[string]string) map[string]*AccountRecord {
	accounts := make(map[string]*AccountRecord)
	for key, value := range values {
		id, name, ok := strings.Cut(key, ".")
		if !ok || id == "" || name == "" {
			continue
		}
		field, ok := parseField(name)
		if !ok {
			continue
		}
		rec := accounts[id]
		if rec == nil {
			rec = &AccountRecord{ID: id, Fields: make(map[Field]string)}
			accounts[id] = rec
		}
		rec.Fields[field] = value
	}
	return accounts
}
