package errors

import "errors"

// Private key envelope errors.
var (
	// ErrPrivateKeyLength indicates the envelope is not valid base64 or does
	// not decode to exactly 84 bytes.
	ErrPrivateKeyLength = errors.New("invalid private key length")

	// ErrPrivateKeyFormat indicates the envelope carries an unknown version tag.
	ErrPrivateKeyFormat = errors.New("invalid private key version")
)

// Cryptographic errors.
var (
	// ErrChaPolyDecrypt indicates ChaCha20-Poly1305 authentication failed.
	// For a locked private key this almost always means a wrong password.
	ErrChaPolyDecrypt = errors.New("chacha20-poly1305 decryption failed")

	// ErrInvalidKeyLength indicates a symmetric key or nonce has the wrong size.
	ErrInvalidKeyLength = errors.New("invalid key length")

	// ErrKeyPairMismatch indicates an unlocked private key does not produce
	// the public key stored alongside it.
	ErrKeyPairMismatch = errors.New("private key does not match public key")
)

// Public key errors.
var (
	// ErrPublicKeyLength indicates the public key is not valid base64 or does
	// not decode to exactly 36 bytes.
	ErrPublicKeyLength = errors.New("invalid public key length")

	// ErrPublicKeyChecksum indicates the public key checksum did not match.
	ErrPublicKeyChecksum = errors.New("public key checksum failed, public key may be corrupted")
)

// Keyring errors.
var (
	// ErrContactNotFound indicates no contact has the given name.
	ErrContactNotFound = errors.New("contact not found")

	// ErrContactExists indicates a contact with the same name already exists.
	ErrContactExists = errors.New("contact already exists")

	// ErrInvalidContactName indicates the contact name is empty or too long.
	ErrInvalidContactName = errors.New("invalid contact name")

	// ErrNotAnIdentity indicates the contact has no private key.
	ErrNotAnIdentity = errors.New("contact has no private key")

	// ErrIdentityPublicKey indicates an attempt to replace the public key of
	// a contact that owns a private key.
	ErrIdentityPublicKey = errors.New("public key of an identity cannot be replaced")

	// ErrInvalidKeyringFile indicates the keyring file is malformed.
	ErrInvalidKeyringFile = errors.New("keyring file is invalid")

	// ErrInvalidImportFile indicates a contacts file to import is not a
	// JSON array of contacts.
	ErrInvalidImportFile = errors.New("import file is invalid")

	// ErrIdentityRequired indicates a command needs an identity but none was
	// named, no default is configured, and the keyring holds more than one.
	ErrIdentityRequired = errors.New("no identity selected")

	// ErrNoIdentities indicates the keyring holds no identities at all.
	ErrNoIdentities = errors.New("keyring has no identities")
)

// Input errors.
var (
	// ErrEmptyPassword indicates an empty password was supplied.
	ErrEmptyPassword = errors.New("password must not be empty")

	// ErrPasswordMismatch indicates the password confirmation did not match.
	ErrPasswordMismatch = errors.New("passwords do not match")

	// ErrUnsupportedFormat indicates an unknown export format was requested.
	ErrUnsupportedFormat = errors.New("unsupported export format")

	// ErrNoChanges indicates an edit was requested without anything to change.
	ErrNoChanges = errors.New("nothing to change")

	// ErrConfirmationRequired indicates a destructive operation was not
	// confirmed, such as deleting an identity without --yes.
	ErrConfirmationRequired = errors.New("confirmation required")

	// ErrInvalidDateFormat indicates a date filter is not in YYYY-MM-DD form.
	ErrInvalidDateFormat = errors.New("invalid date format")
)

// Kind strings for the envelope and public key errors.
const (
	KindPrivateKeyLength  = "PrivateKeyLength"
	KindPrivateKeyFormat  = "PrivateKeyFormat"
	KindChaPolyDecrypt    = "ChaPolyDecryptError"
	KindPublicKeyLength   = "PublicKeyLength"
	KindPublicKeyChecksum = "PublicKeyChecksum"
)

var kinds = []struct {
	err  error
	kind string
}{
	{ErrPrivateKeyLength, KindPrivateKeyLength},
	{ErrPrivateKeyFormat, KindPrivateKeyFormat},
	{ErrChaPolyDecrypt, KindChaPolyDecrypt},
	{ErrPublicKeyLength, KindPublicKeyLength},
	{ErrPublicKeyChecksum, KindPublicKeyChecksum},
}

// Kind returns the kind string of the first codec error found in err's chain,
// or the empty string if err is not a codec error.
func Kind(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return ""
}
