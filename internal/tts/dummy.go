package tts

import (
	"context"
	"fmt"

	"github.com/memoirly/memoirly-web/internal/logger"
)

type DummyNarrator struct {
}

func NewDummyNarrator() *DummyNarrator {
	return &DummyNarrator{}
}

func (d *DummyNarrator) GenerateAudio(_ context.Context, text string, _ Voice) ([]byte, error) {
	logger.New().Debug("no narration engine configured, ignoring request")
	return nil, fmt.Errorf("narration is not configured")
}

func (d *DummyNarrator) Name() string {
	return "dummy"
}
