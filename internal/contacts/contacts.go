package contacts

import (
	"fmt"
	"slices"
	"strings"
	"time"

	kerrors "github.com/kestrel-crypto/kestrel/internal/errors"
	"github.com/kestrel-crypto/kestrel/internal/keyring"
	"github.com/kestrel-crypto/kestrel/internal/utils"

	"github.com/google/uuid"
)

// Contact is a named public key, optionally with a locked private key.
type Contact struct {
	ID         string    `toml:"id" json:"id" yaml:"id"`
	Name       string    `toml:"name" json:"name" yaml:"name"`
	PublicKey  string    `toml:"public_key" json:"public_key" yaml:"public_key"`
	PrivateKey string    `toml:"private_key,omitempty" json:"private_key,omitempty" yaml:"private_key,omitempty"`
	CreatedAt  time.Time `toml:"created_at" json:"created_at" yaml:"created_at"`
	UpdatedAt  time.Time `toml:"updated_at" json:"updated_at" yaml:"updated_at"`
}

// IsIdentity reports whether the contact holds a private key.
func (c Contact) IsIdentity() bool {
	return c.PrivateKey != ""
}

// PublicKeyDecoder validates encoded public keys. *keyring.Codec satisfies it.
type PublicKeyDecoder interface {
	DecodePublicKey(encoded string) ([keyring.PublicKeySize]byte, error)
}

// Keyring is an in-memory, name-sorted set of contacts.
// It is not safe for concurrent use.
type Keyring struct {
	decoder  PublicKeyDecoder
	contacts []Contact
	now      func() time.Time
}

// New returns a keyring holding existing. Stored contacts are trusted and
// not re-validated, so one damaged entry does not hide the others.
func New(decoder PublicKeyDecoder, existing []Contact) *Keyring {
	k := &Keyring{
		decoder:  decoder,
		contacts: slices.Clone(existing),
		now:      func() time.Time { return time.Now().UTC() },
	}
	k.sort()
	return k
}

// Add validates c and inserts it. An ID and timestamps are assigned when
// missing. The stored contact is returned.
//
// Returns ErrInvalidContactName if the name is empty or malformed.
// Returns ErrContactExists if the name is already taken.
// Returns ErrPublicKeyLength or ErrPublicKeyChecksum for a bad public key.
// Returns ErrPrivateKeyLength or ErrPrivateKeyFormat for a bad envelope.
func (k *Keyring) Add(c Contact) (Contact, error) {
	c, err := k.validate(c)
	if err != nil {
		return Contact{}, err
	}
	if k.index(c.Name) >= 0 {
		return Contact{}, fmt.Errorf("%w: %s", kerrors.ErrContactExists, c.Name)
	}

	now := k.now()
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now

	k.contacts = append(k.contacts, c)
	k.sort()
	return c, nil
}

// Update replaces the contact named oldName with c, keeping its ID and
// creation time. The public key of an identity cannot change.
func (k *Keyring) Update(oldName string, c Contact) (Contact, error) {
	i := k.index(oldName)
	if i < 0 {
		return Contact{}, fmt.Errorf("%w: %s", kerrors.ErrContactNotFound, oldName)
	}
	old := k.contacts[i]

	c, err := k.validate(c)
	if err != nil {
		return Contact{}, err
	}
	if j := k.index(c.Name); j >= 0 && j != i {
		return Contact{}, fmt.Errorf("%w: %s", kerrors.ErrContactExists, c.Name)
	}
	if old.IsIdentity() && c.PublicKey != old.PublicKey {
		return Contact{}, kerrors.ErrIdentityPublicKey
	}

	c.ID = old.ID
	c.CreatedAt = old.CreatedAt
	c.UpdatedAt = k.now()

	k.contacts[i] = c
	k.sort()
	return c, nil
}

// Remove deletes the contact named name and returns it.
func (k *Keyring) Remove(name string) (Contact, error) {
	i := k.index(name)
	if i < 0 {
		return Contact{}, fmt.Errorf("%w: %s", kerrors.ErrContactNotFound, name)
	}
	removed := k.contacts[i]
	k.contacts = slices.Delete(k.contacts, i, i+1)
	return removed, nil
}

// Get returns the contact named name. Names match case-insensitively.
func (k *Keyring) Get(name string) (Contact, error) {
	i := k.index(name)
	if i < 0 {
		return Contact{}, fmt.Errorf("%w: %s", kerrors.ErrContactNotFound, name)
	}
	return k.contacts[i], nil
}

// List returns a copy of all contacts, sorted by name.
func (k *Keyring) List() []Contact {
	return slices.Clone(k.contacts)
}

// Identities returns the contacts that hold a private key.
func (k *Keyring) Identities() []Contact {
	var ids []Contact
	for _, c := range k.contacts {
		if c.IsIdentity() {
			ids = append(ids, c)
		}
	}
	return ids
}

// Names returns all contact names in keyring order.
func (k *Keyring) Names() []string {
	names := make([]string, len(k.contacts))
	for i, c := range k.contacts {
		names[i] = c.Name
	}
	return names
}

// Len returns the number of contacts.
func (k *Keyring) Len() int {
	return len(k.contacts)
}

func (k *Keyring) validate(c Contact) (Contact, error) {
	c.Name = utils.SanitizeContactName(c.Name)
	if !utils.IsValidContactName(c.Name) {
		return Contact{}, fmt.Errorf("%w: %q", kerrors.ErrInvalidContactName, c.Name)
	}

	c.PublicKey = strings.TrimSpace(c.PublicKey)
	if _, err := k.decoder.DecodePublicKey(c.PublicKey); err != nil {
		return Contact{}, fmt.Errorf("public key for %s: %w", c.Name, err)
	}

	c.PrivateKey = strings.TrimSpace(c.PrivateKey)
	if c.PrivateKey != "" {
		if err := keyring.CheckPrivateKeyEnvelope(c.PrivateKey); err != nil {
			return Contact{}, fmt.Errorf("private key for %s: %w", c.Name, err)
		}
	}

	return c, nil
}

func (k *Keyring) index(name string) int {
	name = utils.SanitizeContactName(name)
	for i, c := range k.contacts {
		if strings.EqualFold(c.Name, name) {
			return i
		}
	}
	return -1
}

func (k *Keyring) sort() {
	slices.SortStableFunc(k.contacts, func(a, b Contact) int {
		return strings.Compare(a.Name, b.Name)
	})
}
