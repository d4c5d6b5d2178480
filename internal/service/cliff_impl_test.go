package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCliffService_SanitizeTag(t *testing.T) {
	svc, ok := NewCliffService(".config/cliff.toml", "CHANGELOG.md").(*cliffService)
	require.True(t, ok)
	t.Run("Should accept release and release-candidate tags", func(t *testing.T) {
		assert.NoError(t, svc.sanitizeTag("v1.2.3"))
		assert.NoError(t, svc.sanitizeTag("v1.2.3-rc1"))
		assert.NoError(t, svc.sanitizeTag("v2.0.0"))
	})
	t.Run("Should reject empty tags", func(t *testing.T) {
		assert.Error(t, svc.sanitizeTag(""))
	})
	t.Run("Should reject shell metacharacters", func(t *testing.T) {
		assert.Error(t, svc.sanitizeTag("v1.2.3;rm -rf /"))
		assert.Error(t, svc.sanitizeTag("v1.2.3$(whoami)"))
		assert.Error(t, svc.sanitizeTag("v1.2.3 --help"))
	})
	t.Run("Should reject directory traversal", func(t *testing.T) {
		assert.Error(t, svc.sanitizeTag("v1..2.3"))
	})
	t.Run("Should reject overlong tags", func(t *testing.T) {
		assert.Error(t, svc.sanitizeTag("v"+strings.Repeat("1", 255)))
	})
}
