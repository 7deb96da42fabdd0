package crafts

import (
	"kalaconnect-backend/internal/domain/crafts"

	"gorm.io/gorm"
)

func ownerCraftsQuery(db *gorm.DB, userID uint) *gorm.DB {
	return db.Model(&crafts.Craft{}).
		Where("user_id = ?", userID).
		Order("created_at DESC")
}

// regionStatusQuery is served by the composite (region, status) index.
func regionStatusQuery(db *gorm.DB, region string, status crafts.Status) *gorm.DB {
	return db.Model(&crafts.Craft{}).
		Where("region = ? AND status = ?", region, status).
		Order("created_at DESC")
}

func featuredQuery(db *gorm.DB, limit int) *gorm.DB {
	return db.Model(&crafts.Craft{}).
		Where("status = ?", crafts.StatusCompleted).
		Order("created_at DESC").
		Limit(limit)
}
