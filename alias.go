// File: lixenwraith/layers/alias.go
package layers

import "fmt"

// RegisterAlias makes alias resolve to target at lookup time. Both keys
// are normalized to lowercase form first; registering an alias that
// points at itself fails with ErrSelfAlias and stores nothing. A prior
// mapping for the same alias is overwritten. Cycles created across two
// registrations are legal here and only detected when the chain is
// walked during a lookup.
func (r *Registry) RegisterAlias(alias, target string) error {
	aliasKey := r.normalizeKey(alias)
	targetKey := r.normalizeKey(target)
	if aliasKey == targetKey {
		return fmt.Errorf("%w: %q", ErrSelfAlias, aliasKey)
	}
	r.aliases[aliasKey] = targetKey
	return nil
}

// resolveAlias follows the alias chain from key to its canonical key,
// supporting chains of arbitrary length. Revisiting a key fails with
// ErrCircularAlias. A key with no alias entry resolves to itself.
func (r *Registry) resolveAlias(key string) (string, error) {
	visited := make(map[string]bool)
	for {
		target, aliased := r.aliases[key]
		if !aliased {
			return key, nil
		}
		if visited[key] {
			return "", fmt.Errorf("%w: %q", ErrCircularAlias, key)
		}
		visited[key] = true
		key = target
	}
}
