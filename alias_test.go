// File: lixenwraith/layers/alias_test.go
package layers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAlias(t *testing.T) {
	t.Run("BasicResolution", func(t *testing.T) {
		reg := New()
		reg.Set("database.host", "myhost")
		require.NoError(t, reg.RegisterAlias("db.host", "database.host"))
		assert.Equal(t, "myhost", reg.GetString("db.host"))
	})

	t.Run("SelfAliasFails", func(t *testing.T) {
		reg := New()
		err := reg.RegisterAlias("key", "key")
		assert.ErrorIs(t, err, ErrSelfAlias)
	})

	t.Run("SelfAliasAfterNormalization", func(t *testing.T) {
		reg := New()
		err := reg.RegisterAlias("Key", "KEY")
		assert.ErrorIs(t, err, ErrSelfAlias)
		// nothing stored
		assert.Empty(t, reg.aliases)
	})

	t.Run("CaseInsensitiveRegistration", func(t *testing.T) {
		reg := New()
		reg.Set("real.key", 42)
		require.NoError(t, reg.RegisterAlias("Shortcut", "Real.Key"))
		assert.Equal(t, 42, reg.Get("SHORTCUT"))
	})

	t.Run("ReRegistrationOverwrites", func(t *testing.T) {
		reg := New()
		reg.Set("first", 1)
		reg.Set("second", 2)
		require.NoError(t, reg.RegisterAlias("a", "first"))
		require.NoError(t, reg.RegisterAlias("a", "second"))
		assert.Equal(t, 2, reg.Get("a"))
	})
}

func TestAliasChains(t *testing.T) {
	t.Run("TwoHops", func(t *testing.T) {
		reg := New()
		require.NoError(t, reg.RegisterAlias("a", "b"))
		require.NoError(t, reg.RegisterAlias("b", "c"))
		reg.Set("c", "target")
		assert.Equal(t, "target", reg.GetString("a"))
		assert.Equal(t, "target", reg.GetString("b"))
	})

	t.Run("CycleDetectedAtLookup", func(t *testing.T) {
		reg := New()
		// registration order can create a cycle only once both halves
		// exist, so both calls succeed
		require.NoError(t, reg.RegisterAlias("a", "b"))
		require.NoError(t, reg.RegisterAlias("b", "a"))

		_, err := reg.Find("a")
		assert.ErrorIs(t, err, ErrCircularAlias)
		assert.Nil(t, reg.Get("a"))
		assert.False(t, reg.IsSet("a"))
	})

	t.Run("LongerCycle", func(t *testing.T) {
		reg := New()
		require.NoError(t, reg.RegisterAlias("a", "b"))
		require.NoError(t, reg.RegisterAlias("b", "c"))
		require.NoError(t, reg.RegisterAlias("c", "a"))
		_, err := reg.Find("b")
		assert.True(t, errors.Is(err, ErrCircularAlias))
	})

	t.Run("UnaliasedKeyResolvesToItself", func(t *testing.T) {
		reg := New()
		canonical, err := reg.resolveAlias("plain.key")
		require.NoError(t, err)
		assert.Equal(t, "plain.key", canonical)
	})
}
