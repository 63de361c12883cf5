package profile

import (
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/mtlprog/fxcompare/internal/domain"
)

// Catalog is the ordered union of built-in and user profiles: built-ins first
// in curated order, then user profiles in insertion order.
type Catalog struct {
	entries []domain.Profile
}

// NewCatalog builds a catalog from the built-ins followed by the given user profiles.
func NewCatalog(users []domain.Profile) *Catalog {
	c := &Catalog{entries: Builtins()}
	for _, p := range users {
		c.put(p)
	}
	return c
}

// NormalizeKey lowercases a key and replaces spaces with underscores.
func NormalizeKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), " ", "_")
}

// List returns all profiles in catalog order.
func (c *Catalog) List() []domain.Profile {
	return slices.Clone(c.entries)
}

// Keys returns all profile keys in catalog order.
func (c *Catalog) Keys() []string {
	return lo.Map(c.entries, func(p domain.Profile, _ int) string { return p.Key })
}

// Len returns the number of profiles.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Get looks up a profile by key.
func (c *Catalog) Get(key string) (domain.Profile, bool) {
	i := c.index(key)
	if i < 0 {
		return domain.Profile{}, false
	}
	return c.entries[i], true
}

// First returns the first profile in catalog order. The catalog always holds
// the built-ins, so it is never empty.
func (c *Catalog) First() domain.Profile {
	return c.entries[0]
}

// Builtins returns the built-in entries.
func (c *Catalog) Builtins() []domain.Profile {
	return lo.Filter(c.entries, func(p domain.Profile, _ int) bool { return p.IsBuiltin() })
}

// Users returns the user-defined entries in insertion order.
func (c *Catalog) Users() []domain.Profile {
	return lo.Filter(c.entries, func(p domain.Profile, _ int) bool { return !p.IsBuiltin() })
}

// put adds a user profile or replaces an existing user profile in place.
// Built-in keys are never replaced; put reports whether the profile was stored.
func (c *Catalog) put(p domain.Profile) bool {
	p.Origin = domain.OriginUser
	i := c.index(p.Key)
	switch {
	case i < 0:
		c.entries = append(c.entries, p)
	case c.entries[i].IsBuiltin():
		return false
	default:
		c.entries[i] = p
	}
	return true
}

// remove deletes a user profile. Built-in and unknown keys are left alone.
func (c *Catalog) remove(key string) bool {
	i := c.index(key)
	if i < 0 || c.entries[i].IsBuiltin() {
		return false
	}
	c.entries = slices.Delete(c.entries, i, i+1)
	return true
}

func (c *Catalog) index(key string) int {
	return slices.IndexFunc(c.entries, func(p domain.Profile) bool { return p.Key == key })
}
