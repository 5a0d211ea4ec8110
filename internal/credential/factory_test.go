package credential

import (
	"errors"
	"testing"
)

func record(id string, fields map[Field]string) *AccountRecord {
	return &AccountRecord{ID: id, Fields: fields}
}

func TestBuildCredential_Signature(t *testing.T) {
	cred, err := BuildCredential(record("acct1", map[Field]string{
		FieldUserName:  "jb_us_seller",
		FieldPassword:  "password1",
		FieldSignature: "signature1",
		FieldSubject:   "subject1",
	}))
	if err != nil {
		t.Fatalf("expected signature credential, got error: %v", err)
	}
	if cred.Kind() != KindSignature {
		t.Fatalf("expected kind %q, got %q", KindSignature, cred.Kind())
	}
	sig, ok := cred.(SignatureCredential)
	if !ok {
		t.Fatalf("expected SignatureCredential, got %T", cred)
	}
	if sig.Username != "jb_us_seller" || sig.Password != "password1" ||
		sig.Signature != "signature1" || sig.Subject != "subject1" {
		t.Fatalf("unexpected field values: %+v", sig)
	}
}

func TestBuildCredential_Certificate(t *testing.T) {
	cred, err := BuildCredential(record("acct1", map[Field]string{
		FieldUserName: "jb_us_seller",
		FieldPassword: "password1",
		FieldCertPath: "certPath1",
		FieldCertKey:  "certKey1",
		FieldSubject:  "subject1",
	}))
	if err != nil {
		t.Fatalf("expected certificate credential, got error: %v", err)
	}
	if cred.Kind() != KindCertificate {
		t.Fatalf("expected kind %q, got %q", KindCertificate, cred.Kind())
	}
	cert, ok := cred.(CertificateCredential)
	if !ok {
		t.Fatalf("expected CertificateCredential, got %T", cred)
	}
	if cert.CertPath != "certPath1" || cert.CertKey != "certKey1" || cert.Subject != "subject1" {
		t.Fatalf("unexpected field values: %+v", cert)
	}
}

func TestBuildCredential_CertificateWithoutSubject(t *testing.T) {
	cred, err := BuildCredential(record("acct1", map[Field]string{
		FieldUserName: "u",
		FieldPassword: "p",
		FieldCertPath: "cp",
		FieldCertKey:  "ck",
	}))
	if err != nil {
		t.Fatalf("subject is optional for certificates, got error: %v", err)
	}
	if cred.(CertificateCredential).Subject != "" {
		t.Fatalf("expected empty subject")
	}
}

func TestBuildCredential_SignatureWinsOverCertificate(t *testing.T) {
	cred, err := BuildCredential(record("acct1", map[Field]string{
		FieldUserName:  "u",
		FieldPassword:  "p",
		FieldSignature: "s",
		FieldSubject:   "subj",
		FieldCertPath:  "cp",
		FieldCertKey:   "ck",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cred.Kind() != KindSignature {
		t.Fatalf("signature must win the tie-break, got %q", cred.Kind())
	}
}

func TestBuildCredential_IncompleteRecord(t *testing.T) {
	_, err := BuildCredential(record("acct1", map[Field]string{
		FieldUserName: "jb_us_seller",
		FieldPassword: "password1",
	}))
	var invalid *InvalidCredentialError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidCredentialError, got %v", err)
	}
	if invalid.AccountID != "acct1" {
		t.Fatalf("expected account id in error, got %+v", invalid)
	}
}

func TestBuildCredential_MissingUsernameOrPassword(t *testing.T) {
	cases := []struct {
		name   string
		fields map[Field]string
	}{
		{"no password", map[Field]string{FieldUserName: "u", FieldSignature: "s", FieldSubject: "x"}},
		{"no username", map[Field]string{FieldPassword: "p", FieldSignature: "s", FieldSubject: "x"}},
		{"empty password", map[Field]string{FieldUserName: "u", FieldPassword: "", FieldSignature: "s", FieldSubject: "x"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := BuildCredential(record("acct1", tc.fields))
			var invalid *InvalidCredentialError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected InvalidCredentialError, got %v", err)
			}
		})
	}
}

func TestBuildCredential_PartialSchemes(t *testing.T) {
	// Signature without Subject and CertPath without CertKey both fail to
	// determine a scheme.
	cases := []struct {
		name   string
		fields map[Field]string
	}{
		{"signature without subject", map[Field]string{FieldUserName: "u", FieldPassword: "p", FieldSignature: "s"}},
		{"subject without signature", map[Field]string{FieldUserName: "u", FieldPassword: "p", FieldSubject: "x"}},
		{"certpath without certkey", map[Field]string{FieldUserName: "u", FieldPassword: "p", FieldCertPath: "cp"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var invalid *InvalidCredentialError
			if _, err := BuildCredential(record("acct1", tc.fields)); !errors.As(err, &invalid) {
				t.Fatalf("expected InvalidCredentialError, got %v", err)
			}
		})
	}
}
