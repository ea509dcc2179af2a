package database

import "hackswipe/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Session{},
		&models.Profile{},
		&models.Post{},
		&models.Swipe{},
		&models.Match{},
		&models.Inquiry{},
		&models.Conversation{},
		&models.ConversationParticipant{},
		&models.Message{},
		&models.NotificationRead{},
	}
}
