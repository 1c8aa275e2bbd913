package intent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "embed"

	"oscesim/app/config"

	"github.com/samber/do"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

//go:embed intent_prompt.txt
var intentPromptTemplate string

const maxClassifyDuration = 15 * time.Second

// Label is the trainee-utterance category used to steer answer brevity.
type Label string

const (
	LabelGreeting   Label = "greeting"
	LabelSymptom    Label = "symptom"
	LabelMedication Label = "medication"
	LabelHistory    Label = "history"
	LabelClosing    Label = "closing"
	LabelOther      Label = "other"
)

var knownLabels = map[Label]bool{
	LabelGreeting:   true,
	LabelSymptom:    true,
	LabelMedication: true,
	LabelHistory:    true,
	LabelClosing:    true,
	LabelOther:      true,
}

type Service struct {
	cfg   *config.Config
	model llms.Model
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)

	model, err := openai.New(
		openai.WithToken(cfg.OpenAI.Intent.Token),
		openai.WithModel(cfg.OpenAI.Intent.Model),
		openai.WithBaseURL(cfg.OpenAI.Intent.BaseURL),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create intent model: %w", err)
	}

	return &Service{
		cfg:   cfg,
		model: model,
	}, nil
}

// Classify labels a trainee utterance. Classification is advisory: any
// failure or unrecognized model output coerces to LabelOther.
func (s *Service) Classify(ctx context.Context, utterance string) Label {
	prompt := strings.ReplaceAll(intentPromptTemplate, "{utterance}", utterance)

	ctx, cancel := context.WithTimeout(ctx, maxClassifyDuration)
	defer cancel()

	out, err := llms.GenerateFromSinglePrompt(ctx, s.model, prompt,
		llms.WithTemperature(0),
		llms.WithMaxTokens(8),
	)
	if err != nil {
		slog.Warn("Intent classification failed", "error", err)
		return LabelOther
	}

	return Normalize(out)
}

// Normalize coerces raw model output to a known label.
func Normalize(raw string) Label {
	label := Label(strings.ToLower(strings.Trim(strings.TrimSpace(raw), `."'`)))

	if !knownLabels[label] {
		return LabelOther
	}

	return label
}
