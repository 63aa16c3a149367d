package specification

import (
	"gorm.io/gorm"
)

type BySessionID struct {
	SessionID string
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionID)
}

// Chronological orders records oldest first, breaking ties by insertion order.
type Chronological struct {
	Desc bool
}

func (s Chronological) Apply(db *gorm.DB) *gorm.DB {
	if s.Desc {
		return db.Order("timestamp DESC").Order("id DESC")
	}
	return db.Order("timestamp ASC").Order("id ASC")
}
