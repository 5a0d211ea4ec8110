package credential

// BuildCredential validates one account's field set and constructs the
// concrete variant. The record must carry non-empty UserName and Password,
// plus either Signature+Subject or CertPath+CertKey. Exported so the
// validation step is directly testable and usable on records assembled
// outside a configuration snapshot.
func BuildCredential(rec *AccountRecord) (Credential, error) {
	username := rec.Get(FieldUserName)
	password := rec.Get(FieldPassword)
	if username == "" || password == "" {
		return nil, &InvalidCredentialError{
			AccountID: rec.ID,
			Reason:    "record is missing UserName or Password",
		}
	}

	// Signature wins when a record erroneously carries both schemes.
	if sig, subj := rec.Get(FieldSignature), rec.Get(FieldSubject); sig != "" && subj != "" {
		return SignatureCredential{
			Username:  username,
			Password:  password,
			Signature: sig,
			Subject:   subj,
		}, nil
	}

	if certPath, certKey := rec.Get(FieldCertPath), rec.Get(FieldCertKey); certPath != "" && certKey != "" {
		return CertificateCredential{
			Username: username,
			Password: password,
			CertPath: certPath,
			CertKey:  certKey,
			Subject:  rec.Get(FieldSubject),
		}, nil
	}

	return nil, &InvalidCredentialError{
		AccountID: rec.ID,
		Reason:    "no credential scheme: need Signature+Subject or CertPath+CertKey",
	}
}
