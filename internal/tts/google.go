package tts

import (
	"context"
	"fmt"
	"strings"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	ttspb "cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"google.golang.org/api/option"

	"github.com/memoirly/memoirly-web/internal/logger"
)

// GoogleNarrator synthesizes memory narration through Google Cloud
// Text-to-Speech. Credentials come from the configured service account
// file, or GOOGLE_APPLICATION_CREDENTIALS when none is set.
type GoogleNarrator struct {
	client *texttospeech.Client
	logger *logger.Log
}

func NewGoogleNarrator(credentialsFile string) (*GoogleNarrator, error) {
	ctx := context.Background()

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := texttospeech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google TTS client: %w", err)
	}

	return &GoogleNarrator{
		client: client,
		logger: logger.New(),
	}, nil
}

// Extract language code from model name (e.g., "en-US-Chirp-HD-F" -> "en-US")
func (g *GoogleNarrator) extractLanguageCode(modelName string) string {
	parts := strings.Split(modelName, "-")
	if len(parts) >= 2 {
		return fmt.Sprintf("%s-%s", parts[0], parts[1])
	}
	// Fallback to en-US if we can't parse
	return "en-US"
}

// GenerateAudio synthesizes MP3 narration for a memory.
func (g *GoogleNarrator) GenerateAudio(ctx context.Context, text string, voice Voice) ([]byte, error) {
	if text == "" {
		return nil, fmt.Errorf("text cannot be empty")
	}

	languageCode := g.extractLanguageCode(voice.Model)

	req := &ttspb.SynthesizeSpeechRequest{
		Input: &ttspb.SynthesisInput{
			InputSource: &ttspb.SynthesisInput_Text{Text: text},
		},
		Voice: &ttspb.VoiceSelectionParams{
			LanguageCode: languageCode,
			Name:         voice.Model,
		},
		AudioConfig: &ttspb.AudioConfig{
			AudioEncoding: ttspb.AudioEncoding_MP3, // MP3 for web compatibility
			// Memoir narration reads a touch slower than conversation
			SpeakingRate:    0.95,
			Pitch:           0.0,
			VolumeGainDb:    0.0,
			SampleRateHertz: 22050,
		},
	}

	g.logger.Debug(fmt.Sprintf("Generating narration with voice: %s, language: %s", voice.Model, languageCode))

	resp, err := g.client.SynthesizeSpeech(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to synthesize speech: %w", err)
	}

	if len(resp.AudioContent) == 0 {
		return nil, fmt.Errorf("empty audio content received from Google TTS")
	}

	g.logger.Debug(fmt.Sprintf("Generated %d bytes of MP3 narration", len(resp.AudioContent)))
	return resp.AudioContent, nil
}

func (g *GoogleNarrator) Name() string {
	return "Google Cloud Text-to-Speech"
}

func (g *GoogleNarrator) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}
