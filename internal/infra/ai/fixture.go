package ai

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Fixture is the stand-in adapter used until the real vendor integrations
// land. Outputs are canned but shaped like real responses so the rest of the
// system can be built and demoed against them.
type Fixture struct {
	// Latency is applied once per call to mimic a network round trip.
	// Zero (the default) keeps tests fast.
	Latency time.Duration
}

func NewFixture() *Fixture {
	return &Fixture{}
}

func (f *Fixture) pause(ctx context.Context) error {
	if f.Latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(f.Latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (f *Fixture) Transcribe(ctx context.Context, audioKey string) (string, error) {
	if err := f.pause(ctx); err != nil {
		return "", err
	}
	if audioKey == "" {
		return "", nil
	}
	return "यह एक सुंदर हस्तशिल्प है जो मैंने बनाया है। इसमें पारंपरिक कला का उपयोग किया गया है।", nil
}

func (f *Fixture) Translate(ctx context.Context, text string, targetLanguage string) (Translation, error) {
	if err := f.pause(ctx); err != nil {
		return Translation{}, err
	}
	if strings.TrimSpace(text) == "" {
		return Translation{}, nil
	}
	return Translation{
		Text:           "This is a beautiful handicraft that I have made. It uses traditional art techniques.",
		SourceLanguage: "hi",
	}, nil
}

func (f *Fixture) Generate(ctx context.Context, text string, artisanName string) (GeneratedCopy, error) {
	if err := f.pause(ctx); err != nil {
		return GeneratedCopy{}, err
	}
	if artisanName == "" {
		artisanName = "Artisan"
	}
	return GeneratedCopy{
		ProductDescription: fmt.Sprintf(
			"Discover the artistry of %s in this exquisite handcrafted piece. "+
				"This beautiful handicraft showcases traditional techniques passed down through generations. "+
				"Each detail reflects the dedication and skill of the artisan, making it a unique addition to any collection.",
			artisanName),
		SocialCaption: fmt.Sprintf(
			"✨ Handcrafted with love by %s ✨\n\n#HandmadeWithLove #TraditionalCraft #ArtisanMade #SupportLocal",
			artisanName),
	}, nil
}

func (f *Fixture) Tag(ctx context.Context, imageKey string) ([]string, error) {
	if err := f.pause(ctx); err != nil {
		return nil, err
	}
	if imageKey == "" {
		return nil, nil
	}
	return []string{"handmade", "terracotta", "pottery", "traditional", "artisan"}, nil
}
