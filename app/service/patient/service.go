package patient

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"oscesim/app/client/llm"
	"oscesim/app/client/tts"
	"oscesim/app/config"
	"oscesim/app/service/caseinfo"
	"oscesim/app/service/catalog"
	"oscesim/app/service/extract"
	"oscesim/app/service/intent"
	"oscesim/app/util/apperr"

	"github.com/samber/do"
	"golang.org/x/sync/errgroup"
)

const (
	backgroundTemperature  = 0.3
	personaTemperature     = 0.5
	caseSummaryTemperature = 0.3
	greetingTemperature    = 0.5
	replyTemperature       = 0.4
	summaryTemperature     = 0.3

	greetingMaxTokens = 60
	replyMaxTokens    = 60
	summaryMaxTokens  = 200

	noSummarySentinel = "none"
)

// Classifier labels a trainee utterance to steer answer brevity.
type Classifier interface {
	Classify(ctx context.Context, utterance string) intent.Label
}

// Renderer turns answer text into an audio asset.
type Renderer interface {
	Render(ctx context.Context, text, voice string) (string, error)
}

// Service owns the single (case, session) slot and runs the ask cycle.
// All external calls happen outside the state lock; the lock is held only
// around snapshot and commit.
type Service struct {
	cfg        *config.Config
	replyGen   llm.Generator
	personaGen llm.Generator
	summaryGen llm.Generator
	classifier Classifier
	renderer   Renderer
	catalogSvc *catalog.Service

	state State
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)

	return &Service{
		cfg:        cfg,
		replyGen:   llm.NewClient(cfg.OpenAI.Reply),
		personaGen: llm.NewClient(cfg.OpenAI.Persona),
		summaryGen: llm.NewClient(cfg.OpenAI.Summary),
		classifier: do.MustInvoke[*intent.Service](di),
		renderer:   do.MustInvoke[*tts.Client](di),
		catalogSvc: do.MustInvoke[*catalog.Service](di),
	}, nil
}

// LoadCase builds a fresh case context from an uploaded document and
// atomically replaces the active slot, emptying the session.
func (s *Service) LoadCase(ctx context.Context, data []byte, declaredType string) (*CaseSummaryView, error) {
	text, err := extract.Text(data, declaredType)
	if err != nil {
		return nil, err
	}

	return s.buildCase(ctx, text)
}

// LoadPredefinedCase builds a case from the on-disk catalog.
func (s *Service) LoadPredefinedCase(ctx context.Context, collection, item string) (*CaseSummaryView, error) {
	data, declaredType, err := s.catalogSvc.Read(collection, item)
	if err != nil {
		return nil, err
	}

	return s.LoadCase(ctx, data, declaredType)
}

func (s *Service) buildCase(ctx context.Context, text string) (*CaseSummaryView, error) {
	facts := caseinfo.Extract(text)
	if facts.Gender == "" {
		facts.Gender = caseinfo.InferGenderFromName(facts.Name)
	}

	var background, persona, caseSummary string

	// The three synthesis calls are independent of each other; a failure
	// of any one fails the whole build, no partial context is exposed.
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		background, err = s.personaGen.Generate(gctx, llm.Request{
			System:      backgroundPrompt,
			User:        text,
			Temperature: backgroundTemperature,
		})
		return err
	})

	g.Go(func() error {
		var err error
		persona, err = s.personaGen.Generate(gctx, llm.Request{
			System:      personaPrompt,
			User:        text,
			Temperature: personaTemperature,
		})
		return err
	})

	g.Go(func() error {
		var err error
		caseSummary, err = s.summaryGen.Generate(gctx, llm.Request{
			System:      caseSummaryPrompt,
			User:        text,
			Temperature: caseSummaryTemperature,
		})
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("case synthesis: %w", err)
	}

	references := caseinfo.ExtractReferences(text)

	s.state.mu.Lock()
	s.state.caseSeq++
	s.state.caseCtx = CaseContext{
		Raw:     text,
		Facts:   facts,
		Summary: background,
		Persona: persona,
		Gender:  facts.Gender,
	}
	s.state.session.reset()
	s.state.mu.Unlock()

	slog.Info("Case loaded",
		"gender", facts.Gender,
		"facts", formatFacts(facts),
	)

	return &CaseSummaryView{
		CaseSummary: caseSummary,
		Summary:     background,
		Persona:     persona,
		Facts:       facts,
		References:  references,
	}, nil
}

// StartGreeting makes the patient speak first and seeds the session with
// that single opening line.
func (s *Service) StartGreeting(ctx context.Context) (string, error) {
	s.state.mu.Lock()
	if !s.state.caseCtx.loaded() {
		s.state.mu.Unlock()
		return "", fmt.Errorf("%w: load a case before greeting", apperr.ErrNotReady)
	}

	seq := s.state.caseSeq
	caseCtx := s.state.caseCtx
	s.state.mu.Unlock()

	system := renderTemplate(greetingPromptTemplate, map[string]any{
		"persona":    caseCtx.Persona,
		"facts":      formatFacts(caseCtx.Facts),
		"background": caseCtx.Summary,
	})

	greeting, err := s.replyGen.Generate(ctx, llm.Request{
		System:      system,
		Temperature: greetingTemperature,
		MaxTokens:   greetingMaxTokens,
	})
	if err != nil {
		return "", err
	}

	s.state.mu.Lock()
	if s.state.caseSeq == seq {
		s.state.session.seed(Turn{Role: RolePatient, Content: greeting})
	}
	s.state.mu.Unlock()

	return greeting, nil
}

// Ask runs one question/answer cycle against the active case.
func (s *Service) Ask(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", fmt.Errorf("%w: empty question", apperr.ErrInvalidInput)
	}

	s.state.mu.Lock()
	if !s.state.caseCtx.loaded() {
		s.state.mu.Unlock()
		return "", fmt.Errorf("%w: load a case before asking", apperr.ErrNotReady)
	}

	seq := s.state.caseSeq
	caseCtx := s.state.caseCtx
	runningSummary := s.state.session.runningSummary
	recent := s.state.session.recent(recentWindow)
	s.state.mu.Unlock()

	label := s.classifier.Classify(ctx, question)

	system := renderTemplate(replyPromptTemplate, map[string]any{
		"style_hint":      styleHint(label),
		"persona":         caseCtx.Persona,
		"facts":           formatFacts(caseCtx.Facts),
		"background":      caseCtx.Summary,
		"running_summary": orSentinel(runningSummary),
	})

	history := make([]llm.Message, 0, len(recent))
	for _, turn := range recent {
		history = append(history, llm.Message{Role: turn.Role, Content: turn.Content})
	}

	answer, err := s.replyGen.Generate(ctx, llm.Request{
		System:      system,
		History:     history,
		User:        question,
		Temperature: replyTemperature,
		MaxTokens:   replyMaxTokens,
	})
	if err != nil {
		return "", err
	}

	s.state.mu.Lock()
	if s.state.caseSeq == seq {
		s.state.session.append(Turn{Role: RoleTrainee, Content: question})
		s.state.session.append(Turn{Role: RolePatient, Content: answer})
	}
	s.state.mu.Unlock()

	s.updateRunningSummary(ctx, seq, runningSummary, question, answer)

	return answer, nil
}

// updateRunningSummary is best-effort maintenance: a failure keeps the
// previous summary and never affects the delivered answer.
func (s *Service) updateRunningSummary(ctx context.Context, seq uint64, previous, question, answer string) {
	prompt := renderTemplate(summaryPromptTemplate, map[string]any{
		"previous_summary": orSentinel(previous),
		"question":         question,
		"answer":           answer,
	})

	newSummary, err := s.summaryGen.Generate(ctx, llm.Request{
		System:      prompt,
		Temperature: summaryTemperature,
		MaxTokens:   summaryMaxTokens,
	})
	if err != nil {
		slog.Warn("Running summary update failed", "error", err)
		return
	}

	s.state.mu.Lock()
	if s.state.caseSeq == seq {
		s.state.session.runningSummary = newSummary
	}
	s.state.mu.Unlock()
}

// Speak renders text with the voice matching the active case's gender tag.
// Works without a loaded case: the selector is total and an empty tag maps
// to the default voice.
func (s *Service) Speak(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: empty text", apperr.ErrInvalidInput)
	}

	s.state.mu.Lock()
	gender := s.state.caseCtx.Gender
	s.state.mu.Unlock()

	voice := tts.SelectVoice(gender, s.cfg.Speech.FemaleVoice, s.cfg.Speech.MaleVoice)

	return s.renderer.Render(ctx, text, voice)
}

// Reset forces the slot back to idle: zero case, empty session.
func (s *Service) Reset() {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	s.state.caseSeq++
	s.state.caseCtx = CaseContext{}
	s.state.session.reset()
}

func styleHint(label intent.Label) string {
	switch label {
	case intent.LabelGreeting, intent.LabelClosing:
		return "The trainee is exchanging pleasantries; one short sentence is enough."
	case intent.LabelSymptom:
		return "Describe how it feels in plain words, no medical terminology."
	default:
		return ""
	}
}

func orSentinel(summary string) string {
	if summary == "" {
		return noSummarySentinel
	}

	return summary
}
