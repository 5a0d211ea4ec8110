// Package credential resolves named account identities out of a flat
// configuration namespace into typed credential objects for outbound API
// calls. Accounts are declared as dotted keys of the form
// <accountId>.<fieldName>; resolution selects one account (by identity or
// default policy) and validates its field set into exactly one credential
// variant.
package credential

import "fmt"

// Kind tags the credential variant produced by a resolution. Callers
// branch on the tag to build the authentication payload for a call.
type Kind string

const (
	// KindSignature authenticates with a three-token API signature.
	KindSignature Kind = "signature"
	// KindCertificate authenticates with a client certificate on disk.
	KindCertificate Kind = "certificate"
)

// Credential is the typed result of a successful resolution. Exactly one
// concrete variant is produced per resolution; variants are mutually
// exclusive.
type Credential interface {
	Kind() Kind
	// Auth returns the username and password shared by all variants.
	Auth() (username, password string)
	// Masked returns a log-safe description that never includes secret material.
	Masked() string
}

// SignatureCredential authenticates with username, password and an API
// signature issued for a third-party subject.
type SignatureCredential struct {
	Username  string
	Password  string
	Signature string
	Subject   string
}

func (SignatureCredential) Kind() Kind { return KindSignature }

func (c SignatureCredential) Auth() (string, string) { return c.Username, c.Password }

func (c SignatureCredential) Masked() string {
	return fmt.Sprintf("signature credential for %s", c.Username)
}

// CertificateCredential authenticates with username, password and a client
// certificate. Subject is optional for this variant.
type CertificateCredential struct {
	Username string
	Password string
	CertPath string
	CertKey  string
	Subject  string
}

func (CertificateCredential) Kind() Kind { return KindCertificate }

func (c CertificateCredential) Auth() (string, string) { return c.Username, c.Password }

func (c CertificateCredential) Masked() string {
	return fmt.Sprintf("certificate credential for %s (cert: %s)", c.Username, c.CertPath)
}

// Field enumerates the recognized per-account configuration field names.
// Unrecognized names are rejected at indexing time.
type Field string

const (
	FieldUserName  Field = "UserName"
	FieldPassword  Field = "Password"
	FieldSignature Field = "Signature"
	FieldSubject   Field = "Subject"
	FieldCertPath  Field = "CertPath"
	FieldCertKey   Field = "CertKey"
)

var recognizedFields = map[string]Field{
	"UserName":  FieldUserName,
	"Password":  FieldPassword,
	"Signature": FieldSignature,
	"Subject":   FieldSubject,
	"CertPath":  FieldCertPath,
	"CertKey":   FieldCertKey,
}

// parseField maps a raw field name to its typed form. Field names are
// case-sensitive.
func parseField(name string) (Field, bool) {
	f, ok := recognizedFields[name]
	return f, ok
}

// AccountRecord is one logical account's pre-filtered field set, derived
// fresh from a configuration snapshot. ID is never empty.
type AccountRecord struct {
	ID     string
	Fields map[Field]string
}

// Get returns the value of a field, or "" when absent.
func (r *AccountRecord) Get(f Field) string { return r.Fields[f] }
