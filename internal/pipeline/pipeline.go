// Package pipeline turns raw artisan input into AI-derived display content.
//
// The run is strictly sequential: transcribe, translate, generate copy, tag
// the photo. Each stage's output is persisted as soon as the stage completes,
// so work done before a later-stage failure survives it. Entry is guarded by
// a compare-and-swap on the craft's status, which rejects a second concurrent
// run for the same craft.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"strings"

	"kalaconnect-backend/internal/domain/crafts"
	"kalaconnect-backend/internal/infra/ai"
	"kalaconnect-backend/internal/infra/events"
)

type Pipeline struct {
	store          crafts.Store
	ai             ai.Suite
	events         events.Publisher
	targetLanguage string
}

func New(store crafts.Store, suite ai.Suite, pub events.Publisher, targetLanguage string) *Pipeline {
	if targetLanguage == "" {
		targetLanguage = "en"
	}
	if pub == nil {
		pub = events.NopPublisher{}
	}
	return &Pipeline{store: store, ai: suite, events: pub, targetLanguage: targetLanguage}
}

// Run processes one craft end to end. crafts.ErrConflict means another run
// already holds the lease; callers should treat that as a no-op.
func (p *Pipeline) Run(ctx context.Context, craftID string) error {
	if craftID == "" {
		return crafts.ErrInvalidArgument
	}

	if err := p.store.BeginProcessing(ctx, craftID); err != nil {
		return err
	}
	p.publish(ctx, craftID, crafts.StatusUploading, crafts.StatusProcessing)

	craft, err := p.store.GetByID(ctx, craftID)
	if err != nil {
		return p.fail(ctx, craftID, err)
	}

	// Stage 1: speech to text. Skipped when there is no audio reference;
	// silent audio comes back as an empty transcript, not an error.
	transcript := ""
	if craft.VoiceNote != "" {
		transcript, err = p.ai.Speech.Transcribe(ctx, craft.VoiceNote)
		if err != nil {
			return p.fail(ctx, craftID, fmt.Errorf("transcribe: %w", err))
		}
		if transcript != "" {
			if err := p.checkpoint(ctx, craftID, crafts.AIPatch{TranscribedText: &transcript}); err != nil {
				return p.fail(ctx, craftID, err)
			}
		}
	}

	// Stage 2: translation, only when there is something to translate.
	translated := ""
	if transcript != "" {
		out, err := p.ai.Translate.Translate(ctx, transcript, p.targetLanguage)
		if err != nil {
			return p.fail(ctx, craftID, fmt.Errorf("translate: %w", err))
		}
		translated = out.Text
		if translated != "" {
			patch := crafts.AIPatch{
				TranslatedText: &translated,
				TargetLanguage: &p.targetLanguage,
			}
			if out.SourceLanguage != "" {
				patch.Language = &out.SourceLanguage
			}
			if err := p.checkpoint(ctx, craftID, patch); err != nil {
				return p.fail(ctx, craftID, err)
			}
		}
	}

	// Stage 3: marketing copy. Runs whenever there is translated text or at
	// least an artisan name to build a fallback prompt from.
	if translated != "" || craft.ArtisanName != "" {
		basis := translated
		if basis == "" {
			basis = fmt.Sprintf("A handcrafted piece made by %s.", craft.ArtisanName)
		}
		copyOut, err := p.ai.Generate.Generate(ctx, basis, craft.ArtisanName)
		if err != nil {
			return p.fail(ctx, craftID, fmt.Errorf("generate copy: %w", err))
		}
		patch := crafts.AIPatch{
			ProductDescription: &copyOut.ProductDescription,
			SocialCaption:      &copyOut.SocialCaption,
		}
		if err := p.checkpoint(ctx, craftID, patch); err != nil {
			return p.fail(ctx, craftID, err)
		}
	}

	// Stage 4: image tagging. The photo is required at creation, but the
	// stage stays skippable rather than failing a craft without one.
	if craft.CraftPhoto != "" {
		tags, err := p.ai.Tag.Tag(ctx, craft.CraftPhoto)
		if err != nil {
			return p.fail(ctx, craftID, fmt.Errorf("tag image: %w", err))
		}
		if tags = NormalizeTags(tags); len(tags) > 0 {
			if err := p.checkpoint(ctx, craftID, crafts.AIPatch{AITags: tags}); err != nil {
				return p.fail(ctx, craftID, err)
			}
		}
	}

	if err := p.store.Finish(ctx, craftID, crafts.StatusCompleted); err != nil {
		return err
	}
	p.publish(ctx, craftID, crafts.StatusProcessing, crafts.StatusCompleted)
	return nil
}

// TranscribeQuick runs the speech-to-text stage in isolation. It never writes
// back to a craft record.
func (p *Pipeline) TranscribeQuick(ctx context.Context, audioKey string) (string, error) {
	if audioKey == "" {
		return "", crafts.ErrInvalidArgument
	}
	return p.ai.Speech.Transcribe(ctx, audioKey)
}

func (p *Pipeline) checkpoint(ctx context.Context, craftID string, patch crafts.AIPatch) error {
	if err := p.store.PatchAI(ctx, craftID, patch); err != nil {
		return fmt.Errorf("persist stage output: %w", err)
	}
	return nil
}

// fail marks the craft failed and returns the original cause. Earlier stage
// checkpoints are deliberately left in place.
func (p *Pipeline) fail(ctx context.Context, craftID string, cause error) error {
	if err := p.store.Finish(ctx, craftID, crafts.StatusFailed); err != nil {
		log.Printf("pipeline: could not mark craft %s failed: %v", craftID, err)
	} else {
		p.publish(ctx, craftID, crafts.StatusProcessing, crafts.StatusFailed)
	}
	return cause
}

func (p *Pipeline) publish(ctx context.Context, craftID string, from, to crafts.Status) {
	if err := p.events.CraftStatusChanged(ctx, craftID, from, to); err != nil {
		log.Printf("pipeline: event publish failed for craft %s: %v", craftID, err)
	}
}

// NormalizeTags lowercases and trims tags, drops empties, and caps the list
// at ai.MaxTags while preserving order.
func NormalizeTags(in []string) crafts.StringList {
	var out crafts.StringList
	for _, tag := range in {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		out = append(out, tag)
		if len(out) == ai.MaxTags {
			break
		}
	}
	return out
}
