package workflows

import (
	"context"
	"fmt"
	"strings"

	"github.com/kestrel-crypto/kestrel/internal/audit"
	"github.com/kestrel-crypto/kestrel/internal/configs"
	"github.com/kestrel-crypto/kestrel/internal/contacts"
	kerrors "github.com/kestrel-crypto/kestrel/internal/errors"
)

// AddOptions configures the add workflow.
type AddOptions struct {
	// Name is the contact name.
	Name string

	// PublicKey is the encoded public key (base64 with checksum).
	PublicKey string
}

// AddResult contains the outcome of an add operation.
type AddResult struct {
	Contact contacts.Contact
}

// AddContact stores a contact that has only a public key.
//
// Returns ErrInvalidContactName or ErrContactExists for a bad name.
// Returns ErrPublicKeyLength or ErrPublicKeyChecksum for a bad public key.
func AddContact(ctx context.Context, opts AddOptions) (*AddResult, error) {
	k, err := openKeyring(newCodec())
	if err != nil {
		return nil, err
	}

	c, err := k.Add(contacts.Contact{Name: opts.Name, PublicKey: opts.PublicKey})
	if err != nil {
		return nil, err
	}

	if err := saveKeyring(k); err != nil {
		return nil, err
	}

	auditEntry := audit.LogWithUser("add")
	auditEntry.Contact = c.Name
	auditEntry.ContactID = c.ID
	audit.Log(auditEntry)

	return &AddResult{Contact: c}, nil
}

// EditOptions configures the edit workflow.
type EditOptions struct {
	// Name selects the contact to edit.
	Name string

	// NewName renames the contact when set.
	NewName string

	// PublicKey replaces the contact's public key when set.
	PublicKey string
}

// EditResult contains the outcome of an edit operation.
type EditResult struct {
	Contact    contacts.Contact
	Renamed    bool
	KeyChanged bool
}

// EditContact renames a contact and/or replaces its public key. An
// identity's public key is derived from its private key and cannot be
// replaced. Renaming the default identity updates the user config.
//
// Returns ErrNoChanges if neither NewName nor PublicKey is set.
// Returns ErrContactNotFound if no contact has the name.
// Returns ErrIdentityPublicKey when replacing an identity's public key.
func EditContact(ctx context.Context, opts EditOptions) (*EditResult, error) {
	if opts.NewName == "" && opts.PublicKey == "" {
		return nil, kerrors.ErrNoChanges
	}

	k, err := openKeyring(newCodec())
	if err != nil {
		return nil, err
	}

	old, err := k.Get(opts.Name)
	if err != nil {
		return nil, err
	}

	updated := old
	if opts.NewName != "" {
		updated.Name = opts.NewName
	}
	if opts.PublicKey != "" {
		updated.PublicKey = opts.PublicKey
	}

	c, err := k.Update(old.Name, updated)
	if err != nil {
		return nil, err
	}

	result := &EditResult{
		Contact:    c,
		Renamed:    c.Name != old.Name,
		KeyChanged: c.PublicKey != old.PublicKey,
	}
	if !result.Renamed && !result.KeyChanged {
		return nil, kerrors.ErrNoChanges
	}

	if err := saveKeyring(k); err != nil {
		return nil, err
	}

	if result.Renamed && c.IsIdentity() {
		userConfig, err := configs.LoadUserConfig()
		if err != nil {
			return nil, err
		}
		if strings.EqualFold(userConfig.User.DefaultIdentity, old.Name) {
			if err := setDefaultIdentity(c.Name); err != nil {
				return nil, err
			}
		}
	}

	auditEntry := audit.LogWithUser("edit")
	auditEntry.Contact = old.Name
	auditEntry.ContactID = c.ID
	if result.Renamed {
		auditEntry.NewName = c.Name
	}
	audit.Log(auditEntry)

	return result, nil
}

// DeleteOptions configures the delete workflow.
type DeleteOptions struct {
	Name string

	// AllowIdentity must be set to delete a contact that holds a private key.
	AllowIdentity bool
}

// DeleteResult contains the outcome of a delete operation.
type DeleteResult struct {
	Contact contacts.Contact

	// WasDefault indicates the deleted contact was the default identity.
	WasDefault bool
}

// DeleteContact removes a contact. Deleting the default identity clears the
// default.
//
// Returns ErrContactNotFound if no contact has the name.
// Returns ErrConfirmationRequired for an identity unless AllowIdentity is set.
func DeleteContact(ctx context.Context, opts DeleteOptions) (*DeleteResult, error) {
	k, err := openKeyring(newCodec())
	if err != nil {
		return nil, err
	}

	c, err := k.Get(opts.Name)
	if err != nil {
		return nil, err
	}
	if c.IsIdentity() && !opts.AllowIdentity {
		return nil, fmt.Errorf("%w: %s holds a private key", kerrors.ErrConfirmationRequired, c.Name)
	}

	removed, err := k.Remove(c.Name)
	if err != nil {
		return nil, err
	}

	if err := saveKeyring(k); err != nil {
		return nil, err
	}

	result := &DeleteResult{Contact: removed}

	if removed.IsIdentity() {
		userConfig, err := configs.LoadUserConfig()
		if err != nil {
			return nil, err
		}
		if strings.EqualFold(userConfig.User.DefaultIdentity, removed.Name) {
			if err := setDefaultIdentity(""); err != nil {
				return nil, err
			}
			result.WasDefault = true
		}
	}

	auditEntry := audit.LogWithUser("delete")
	auditEntry.Contact = removed.Name
	auditEntry.ContactID = removed.ID
	audit.Log(auditEntry)

	return result, nil
}

// ListOptions configures the list workflow.
type ListOptions struct {
	// IdentitiesOnly limits the result to contacts with a private key.
	IdentitiesOnly bool
}

// ListResult contains the outcome of a list operation.
type ListResult struct {
	// Contacts are sorted by name.
	Contacts []contacts.Contact

	// DefaultIdentity is the configured default identity, if any.
	DefaultIdentity string
}

// ListContacts returns the contacts in the keyring.
func ListContacts(ctx context.Context, opts ListOptions) (*ListResult, error) {
	k, err := openKeyring(newCodec())
	if err != nil {
		return nil, err
	}

	userConfig, err := configs.LoadUserConfig()
	if err != nil {
		return nil, err
	}

	result := &ListResult{DefaultIdentity: userConfig.User.DefaultIdentity}
	if opts.IdentitiesOnly {
		result.Contacts = k.Identities()
	} else {
		result.Contacts = k.List()
	}

	return result, nil
}

// SetDefaultOptions configures the set-default workflow.
type SetDefaultOptions struct {
	Name string
}

// SetDefaultResult contains the outcome of a set-default operation.
type SetDefaultResult struct {
	Contact contacts.Contact
}

// SetDefault makes the named identity the default.
//
// Returns ErrContactNotFound if no contact has the name.
// Returns ErrNotAnIdentity if the contact has no private key.
func SetDefault(ctx context.Context, opts SetDefaultOptions) (*SetDefaultResult, error) {
	k, err := openKeyring(newCodec())
	if err != nil {
		return nil, err
	}

	c, err := k.Get(opts.Name)
	if err != nil {
		return nil, err
	}
	if !c.IsIdentity() {
		return nil, kerrors.ErrNotAnIdentity
	}

	if err := setDefaultIdentity(c.Name); err != nil {
		return nil, err
	}

	return &SetDefaultResult{Contact: c}, nil
}
