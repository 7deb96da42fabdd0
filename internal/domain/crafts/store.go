package crafts

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Store is the record-store surface the processing pipeline depends on.
// Handlers talk to the database directly; the pipeline goes through this
// interface so its driver can be tested without Postgres.
type Store interface {
	GetByID(ctx context.Context, id string) (*Craft, error)

	// BeginProcessing takes the per-craft pipeline lease: a compare-and-swap
	// from uploading to processing. A craft that is already past uploading
	// yields ErrConflict, a missing craft ErrNotFound.
	BeginProcessing(ctx context.Context, id string) error

	// PatchAI applies a partial update of AI-derived fields. Nil patch fields
	// are left untouched.
	PatchAI(ctx context.Context, id string, patch AIPatch) error

	// Finish moves a processing craft to a terminal status, validated against
	// the transition table.
	Finish(ctx context.Context, id string, to Status) error
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) GetByID(ctx context.Context, id string) (*Craft, error) {
	var craft Craft
	err := s.db.WithContext(ctx).First(&craft, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &craft, nil
}

func (s *GormStore) BeginProcessing(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Model(&Craft{}).
		Where("id = ? AND status = ?", id, StatusUploading).
		Updates(map[string]interface{}{
			"status":  StatusProcessing,
			"version": gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var n int64
		if err := s.db.WithContext(ctx).Model(&Craft{}).Where("id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		return ErrConflict
	}
	return nil
}

func (s *GormStore) PatchAI(ctx context.Context, id string, patch AIPatch) error {
	if patch.Empty() {
		return nil
	}

	var row Craft
	var cols []string
	if patch.TranscribedText != nil {
		row.TranscribedText = patch.TranscribedText
		cols = append(cols, "transcribed_text")
	}
	if patch.TranslatedText != nil {
		row.TranslatedText = patch.TranslatedText
		cols = append(cols, "translated_text")
	}
	if patch.ProductDescription != nil {
		row.ProductDescription = patch.ProductDescription
		cols = append(cols, "product_description")
	}
	if patch.SocialCaption != nil {
		row.SocialCaption = patch.SocialCaption
		cols = append(cols, "social_caption")
	}
	if patch.AITags != nil {
		row.AITags = patch.AITags
		cols = append(cols, "ai_tags")
	}
	if patch.EnhancedPhoto != nil {
		row.EnhancedPhoto = patch.EnhancedPhoto
		cols = append(cols, "enhanced_photo")
	}
	if patch.Language != nil {
		row.Language = patch.Language
		cols = append(cols, "language")
	}
	if patch.TargetLanguage != nil {
		row.TargetLanguage = patch.TargetLanguage
		cols = append(cols, "target_language")
	}

	res := s.db.WithContext(ctx).Model(&Craft{}).
		Where("id = ?", id).
		Select(cols).
		Updates(&row)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) Finish(ctx context.Context, id string, to Status) error {
	craft, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := ValidateTransition(craft.Status, to); err != nil {
		return err
	}
	if craft.Status == to {
		return nil
	}
	res := s.db.WithContext(ctx).Model(&Craft{}).
		Where("id = ? AND status = ?", id, craft.Status).
		Updates(map[string]interface{}{
			"status":  to,
			"version": gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}
	return nil
}
