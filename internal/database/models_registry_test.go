package database

import (
	"testing"

	modelspkg "hackswipe/internal/models"

	"github.com/stretchr/testify/require"
)

func TestPersistentModels_IncludesNotificationReads(t *testing.T) {
	found := false
	for _, model := range PersistentModels() {
		if _, ok := model.(*modelspkg.NotificationRead); ok {
			found = true
			break
		}
	}
	require.True(t, found, "PersistentModels should include NotificationRead")
}
