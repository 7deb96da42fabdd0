package crafts

import (
	"context"
	"fmt"

	"kalaconnect-backend/internal/domain/crafts"
)

// URLResolver is the slice of the blob store the read surface needs: turning
// stored object keys into fetchable URLs. A missing key resolves to nil.
type URLResolver interface {
	ResolveURL(ctx context.Context, key string) (*string, error)
}

// CraftDTO is a craft record with its file references resolved to URLs.
type CraftDTO struct {
	crafts.Craft
	CraftPhotoURL    *string `json:"craft_photo_url"`
	VoiceNoteURL     *string `json:"voice_note_url,omitempty"`
	EnhancedPhotoURL *string `json:"enhanced_photo_url"`
}

// FeaturedCraftDTO is the trimmed public projection used by the storefront
// carousel: completed crafts only, one display image each.
type FeaturedCraftDTO struct {
	ID          string  `json:"id"`
	ArtisanName string  `json:"artisan_name"`
	ProductName string  `json:"product_name"`
	ImageURL    *string `json:"image_url"`
	Region      *string `json:"region,omitempty"`
}

func toCraftDTO(ctx context.Context, resolver URLResolver, craft crafts.Craft, includeVoice bool) (CraftDTO, error) {
	dto := CraftDTO{Craft: craft}

	photoURL, err := resolver.ResolveURL(ctx, craft.CraftPhoto)
	if err != nil {
		return CraftDTO{}, err
	}
	dto.CraftPhotoURL = photoURL

	if includeVoice {
		voiceURL, err := resolver.ResolveURL(ctx, craft.VoiceNote)
		if err != nil {
			return CraftDTO{}, err
		}
		dto.VoiceNoteURL = voiceURL
	}

	if craft.EnhancedPhoto != nil {
		enhancedURL, err := resolver.ResolveURL(ctx, *craft.EnhancedPhoto)
		if err != nil {
			return CraftDTO{}, err
		}
		dto.EnhancedPhotoURL = enhancedURL
	}
	return dto, nil
}

func toFeaturedDTO(ctx context.Context, resolver URLResolver, craft crafts.Craft) (FeaturedCraftDTO, error) {
	imageURL, err := resolver.ResolveURL(ctx, displayImageKey(craft))
	if err != nil {
		return FeaturedCraftDTO{}, err
	}
	return FeaturedCraftDTO{
		ID:          craft.ID,
		ArtisanName: craft.ArtisanName,
		ProductName: displayProductName(craft.AITags),
		ImageURL:    imageURL,
		Region:      craft.Region,
	}, nil
}

// displayImageKey prefers the AI-enhanced photo and falls back to the
// original upload.
func displayImageKey(craft crafts.Craft) string {
	if craft.EnhancedPhoto != nil && *craft.EnhancedPhoto != "" {
		return *craft.EnhancedPhoto
	}
	return craft.CraftPhoto
}

// displayProductName derives a placeholder product name from the first
// generated tag until artisans can name listings themselves.
func displayProductName(tags crafts.StringList) string {
	if len(tags) == 0 || tags[0] == "" {
		return "Handcrafted piece"
	}
	return fmt.Sprintf("Handcrafted %s", tags[0])
}
