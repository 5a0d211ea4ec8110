package credential

import "fmt"

// MissingCredentialError reports that no account record could be selected:
// the requested identity matched no account's UserName, or no default
// account was determinable. Terminal; configuration errors are not
// transient.
type MissingCredentialError struct {
	// Identity is the requested identity. Empty for a failed default lookup.
	Identity string
}

func (e *MissingCredentialError) Error() string {
	if e.Identity == "" {
		return "no default credential configured"
	}
	return fmt.Sprintf("no account configured for identity %q", e.Identity)
}

// InvalidCredentialError reports that an account record was selected but
// its field set cannot produce a valid credential.
type InvalidCredentialError struct {
	AccountID string
	Reason    string
}

func (e *InvalidCredentialError) Error() string {
	return fmt.Sprintf("account %q: %s", e.AccountID, e.Reason)
}
