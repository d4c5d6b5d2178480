package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVersion(t *testing.T) {
	t.Run("Should create valid version from string", func(t *testing.T) {
		version, err := NewVersion("1.2.3")
		require.NoError(t, err)
		assert.NotNil(t, version)
		assert.Equal(t, "1.2.3", version.String())
	})
	t.Run("Should handle version with v prefix", func(t *testing.T) {
		version, err := NewVersion("v1.2.3")
		require.NoError(t, err)
		assert.Equal(t, "1.2.3", version.String())
	})
	t.Run("Should parse rc counter from prerelease", func(t *testing.T) {
		version, err := NewVersion("2.0.0-rc4")
		require.NoError(t, err)
		assert.Equal(t, uint64(4), version.RC())
		assert.True(t, version.IsPrerelease())
	})
	t.Run("Should treat missing rc digits as zero", func(t *testing.T) {
		version, err := NewVersion("2.0.0-rc")
		require.NoError(t, err)
		assert.Equal(t, uint64(0), version.RC())
		assert.False(t, version.IsPrerelease())
	})
	t.Run("Should treat foreign prerelease as zero rc", func(t *testing.T) {
		version, err := NewVersion("2.0.0-alpha.1")
		require.NoError(t, err)
		assert.Equal(t, uint64(0), version.RC())
	})
	t.Run("Should return malformed version error for invalid string", func(t *testing.T) {
		version, err := NewVersion("invalid")
		assert.ErrorIs(t, err, ErrMalformedVersion)
		assert.Nil(t, version)
	})
	t.Run("Should reject incomplete version", func(t *testing.T) {
		_, err := NewVersion("1.2")
		assert.ErrorIs(t, err, ErrMalformedVersion)
	})
}

func TestVersion_Bump(t *testing.T) {
	t.Run("Should reset minor patch and rc when bumping major", func(t *testing.T) {
		version, err := NewVersion("1.5.8-rc2")
		require.NoError(t, err)
		assert.Equal(t, "2.0.0", version.Bump(ComponentMajor).String())
	})
	t.Run("Should reset patch and rc when bumping minor", func(t *testing.T) {
		version, err := NewVersion("1.2.5-rc1")
		require.NoError(t, err)
		assert.Equal(t, "1.3.0", version.Bump(ComponentMinor).String())
	})
	t.Run("Should increment patch and clear rc when bumping patch", func(t *testing.T) {
		version, err := NewVersion("1.2.3-rc1")
		require.NoError(t, err)
		assert.Equal(t, "1.2.4", version.Bump(ComponentPatch).String())
	})
	t.Run("Should increment rc without touching other components", func(t *testing.T) {
		version, err := NewVersion("1.2.3-rc1")
		require.NoError(t, err)
		bumped := version.Bump(ComponentRC)
		assert.Equal(t, "1.2.3-rc2", bumped.String())
		assert.Equal(t, uint64(1), bumped.Major())
		assert.Equal(t, uint64(2), bumped.Minor())
		assert.Equal(t, uint64(3), bumped.Patch())
	})
	t.Run("Should start rc counter from one", func(t *testing.T) {
		version, err := NewVersion("1.2.3")
		require.NoError(t, err)
		assert.Equal(t, "1.2.3-rc1", version.Bump(ComponentRC).String())
	})
	t.Run("Should not mutate the receiver", func(t *testing.T) {
		version, err := NewVersion("1.2.3")
		require.NoError(t, err)
		_ = version.Bump(ComponentMajor)
		assert.Equal(t, "1.2.3", version.String())
	})
	t.Run("Should zero all lower priority components for every target", func(t *testing.T) {
		version := NewVersionFromComponents(3, 4, 5, 6)
		for _, c := range []Component{ComponentMajor, ComponentMinor, ComponentPatch, ComponentRC} {
			bumped := version.Bump(c)
			switch c {
			case ComponentMajor:
				assert.Zero(t, bumped.Minor())
				assert.Zero(t, bumped.Patch())
				assert.Zero(t, bumped.RC())
			case ComponentMinor:
				assert.Equal(t, version.Major(), bumped.Major())
				assert.Zero(t, bumped.Patch())
				assert.Zero(t, bumped.RC())
			case ComponentPatch:
				assert.Equal(t, version.Minor(), bumped.Minor())
				assert.Zero(t, bumped.RC())
			case ComponentRC:
				assert.Equal(t, version.Patch(), bumped.Patch())
				assert.Equal(t, version.RC()+1, bumped.RC())
			}
		}
	})
}

func TestVersion_String(t *testing.T) {
	t.Run("Should omit rc suffix when rc is zero", func(t *testing.T) {
		version := NewVersionFromComponents(1, 2, 3, 0)
		assert.Equal(t, "1.2.3", version.String())
	})
	t.Run("Should append rc suffix when rc is positive", func(t *testing.T) {
		version := NewVersionFromComponents(1, 2, 3, 7)
		assert.Equal(t, "1.2.3-rc7", version.String())
	})
	t.Run("Should round trip through parse and serialize", func(t *testing.T) {
		for _, s := range []string{"0.0.1", "1.2.3", "10.20.30-rc5"} {
			version, err := NewVersion(s)
			require.NoError(t, err)
			again, err := NewVersion(version.String())
			require.NoError(t, err)
			assert.Equal(t, version.String(), again.String())
		}
	})
	t.Run("Should prefix tag name with v", func(t *testing.T) {
		version := NewVersionFromComponents(2, 0, 0, 1)
		assert.Equal(t, "v2.0.0-rc1", version.TagName())
	})
}

func TestVersion_Compare(t *testing.T) {
	t.Run("Should order prerelease before release", func(t *testing.T) {
		rc, err := NewVersion("2.0.0-rc1")
		require.NoError(t, err)
		final, err := NewVersion("2.0.0")
		require.NoError(t, err)
		assert.Equal(t, -1, rc.Compare(final))
		assert.Equal(t, 1, final.Compare(rc))
	})
}

func TestParseComponent(t *testing.T) {
	t.Run("Should parse all known components", func(t *testing.T) {
		for i, name := range ComponentNames {
			c, err := ParseComponent(name)
			require.NoError(t, err)
			assert.Equal(t, Component(i), c)
			assert.Equal(t, name, c.String())
		}
	})
	t.Run("Should reject unknown component", func(t *testing.T) {
		_, err := ParseComponent("hotfix")
		assert.Error(t, err)
	})
}
