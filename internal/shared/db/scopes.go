package db

import (
	"gorm.io/gorm"
)

// ArchiveState is a GORM scope that filters rows on the is_archived column.
//
// Example usage:
//
//	db.Model(&Model{}).Scopes(db.ArchiveState(false)).Find(&results)
func ArchiveState(archived bool) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("is_archived = ?", archived)
	}
}

// CreatedWithin is a GORM scope bounding created_at (Unix milliseconds)
// inclusively. A zero bound is ignored.
func CreatedWithin(fromMillis, toMillis int64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if fromMillis != 0 {
			db = db.Where("created_at >= ?", fromMillis)
		}
		if toMillis != 0 {
			db = db.Where("created_at <= ?", toMillis)
		}
		return db
	}
}
