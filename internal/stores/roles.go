package stores

import (
	"context"
	"errors"
	"fmt"

	"github.com/MrEthical07/goAccess/bitmap"
)

// ErrCorruptEntry is returned when a stored bitmap payload does not decode to
// the configured capacity. It indicates a mixed-capacity deployment or a
// foreign writer on the key namespace.
var ErrCorruptEntry = errors.New("role store entry corrupt")

// RoleStore persists the two principal-keyed bitmap associations: held roles
// and administered roles. Reads materialize absent entries as zero bitmaps;
// writes reinsert the full encoded bitmap (copy-on-write at the store
// boundary, matching the read-modify-write shape of the backend).
type RoleStore struct {
	backend  Backend
	prefix   string
	capacity int
}

// NewRoleStore creates a RoleStore over the given backend. prefix namespaces
// the keys; capacity is the bitmap width every entry must decode to.
func NewRoleStore(backend Backend, prefix string, capacity int) *RoleStore {
	if prefix == "" {
		prefix = "ac"
	}
	return &RoleStore{
		backend:  backend,
		prefix:   prefix,
		capacity: capacity,
	}
}

func (s *RoleStore) roleKey(principal string) string {
	return s.prefix + ":r:" + principal
}

func (s *RoleStore) adminKey(principal string) string {
	return s.prefix + ":a:" + principal
}

// Roles returns the principal's role bitmap. An absent entry decodes to an
// all-zero bitmap of the configured capacity.
func (s *RoleStore) Roles(ctx context.Context, principal string) (*bitmap.Map, error) {
	return s.load(ctx, s.roleKey(principal))
}

// AdminRoles returns the principal's administered-role bitmap, zero if absent.
func (s *RoleStore) AdminRoles(ctx context.Context, principal string) (*bitmap.Map, error) {
	return s.load(ctx, s.adminKey(principal))
}

// SaveRoles reinserts the principal's role bitmap.
func (s *RoleStore) SaveRoles(ctx context.Context, principal string, m *bitmap.Map) error {
	return s.backend.Put(ctx, s.roleKey(principal), bitmap.Encode(m))
}

// SaveAdminRoles reinserts the principal's administered-role bitmap.
func (s *RoleStore) SaveAdminRoles(ctx context.Context, principal string, m *bitmap.Map) error {
	return s.backend.Put(ctx, s.adminKey(principal), bitmap.Encode(m))
}

func (s *RoleStore) load(ctx context.Context, key string) (*bitmap.Map, error) {
	data, ok, err := s.backend.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		m, err := bitmap.New(s.capacity)
		if err != nil {
			return nil, err
		}
		return m, nil
	}

	m, err := bitmap.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptEntry, err)
	}
	if m.Capacity() != s.capacity {
		return nil, fmt.Errorf("%w: capacity %d, store configured for %d",
			ErrCorruptEntry, m.Capacity(), s.capacity)
	}

	return m, nil
}
