// Package ai defines the four vendor capabilities the processing pipeline
// depends on. Each is swappable without touching pipeline structure; today
// only the fixture adapter is wired (AI_PROVIDER=mock), real vendor adapters
// slot in behind the same interfaces.
package ai

import (
	"context"
	"fmt"

	"kalaconnect-backend/config"
)

// SpeechToText turns a stored voice note into UTF-8 text. Silent or empty
// audio yields an empty string, not an error.
type SpeechToText interface {
	Transcribe(ctx context.Context, audioKey string) (string, error)
}

// Translation is the translator's output: target-language text plus the
// detected ISO-639-1-ish source language code.
type Translation struct {
	Text           string
	SourceLanguage string
}

type Translator interface {
	Translate(ctx context.Context, text string, targetLanguage string) (Translation, error)
}

// GeneratedCopy is the marketing copy produced for one craft.
type GeneratedCopy struct {
	ProductDescription string
	SocialCaption      string
}

type ContentGenerator interface {
	Generate(ctx context.Context, text string, artisanName string) (GeneratedCopy, error)
}

// ImageTagger returns an ordered list of short lowercase descriptive tags.
// Implementations should cap the list (MaxTags).
type ImageTagger interface {
	Tag(ctx context.Context, imageKey string) ([]string, error)
}

// MaxTags bounds tag lists regardless of what a vendor returns.
const MaxTags = 20

// Suite bundles the four capabilities the pipeline is constructed with.
type Suite struct {
	Speech    SpeechToText
	Translate Translator
	Generate  ContentGenerator
	Tag       ImageTagger
}

// FromConfig selects the adapter set named by AI_PROVIDER.
func FromConfig() (Suite, error) {
	switch config.AI_PROVIDER {
	case "mock":
		f := NewFixture()
		return Suite{Speech: f, Translate: f, Generate: f, Tag: f}, nil
	default:
		return Suite{}, fmt.Errorf("unknown AI provider %q", config.AI_PROVIDER)
	}
}
