package crafts

import (
	"time"
)

// Craft is one artisan submission: the two files captured on the upload form
// plus everything the processing pipeline derives from them.
type Craft struct {
	ID     string `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID uint   `gorm:"not null;index" json:"user_id"`

	ArtisanName string `gorm:"not null" json:"artisan_name"`

	// Opaque blob-store object keys. Both are set at creation and never change.
	CraftPhoto string `gorm:"not null" json:"craft_photo"`
	VoiceNote  string `gorm:"not null" json:"voice_note"`

	WhatsappNumber *string `json:"whatsapp_number,omitempty"`

	// Optional secondary references attached by the owner after creation.
	AudioFileID *string `json:"audio_file_id,omitempty"`
	ImageFileID *string `json:"image_file_id,omitempty"`

	// AI-derived fields, written by the pipeline one stage at a time.
	TranscribedText    *string    `json:"transcribed_text,omitempty"`
	TranslatedText     *string    `json:"translated_text,omitempty"`
	ProductDescription *string    `json:"product_description,omitempty"`
	SocialCaption      *string    `json:"social_caption,omitempty"`
	AITags             StringList `gorm:"type:jsonb;serializer:json" json:"ai_tags,omitempty"`
	EnhancedPhoto      *string    `json:"enhanced_photo,omitempty"`
	Language           *string    `json:"language,omitempty"`
	TargetLanguage     *string    `json:"target_language,omitempty"`

	Region *string `gorm:"index;index:idx_crafts_region_status,priority:1" json:"region,omitempty"`

	Status Status `gorm:"type:text;not null;default:'uploading';index;index:idx_crafts_region_status,priority:2" json:"status"`

	// Bumped on every pipeline-owned status write; the compare-and-swap in
	// BeginProcessing keys off (id, status) so two concurrent pipeline runs
	// cannot both take the lease.
	Version int `gorm:"not null;default:0" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StringList is stored as a jsonb array, preserving tag order.
type StringList []string

// AIPatch is a partial update of the AI-derived fields. Nil fields are left
// untouched, they are never nulled out.
type AIPatch struct {
	TranscribedText    *string
	TranslatedText     *string
	ProductDescription *string
	SocialCaption      *string
	AITags             StringList
	EnhancedPhoto      *string
	Language           *string
	TargetLanguage     *string
}

// Empty reports whether the patch would touch nothing.
func (p AIPatch) Empty() bool {
	return p.TranscribedText == nil &&
		p.TranslatedText == nil &&
		p.ProductDescription == nil &&
		p.SocialCaption == nil &&
		p.AITags == nil &&
		p.EnhancedPhoto == nil &&
		p.Language == nil &&
		p.TargetLanguage == nil
}
