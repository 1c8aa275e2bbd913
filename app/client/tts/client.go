package tts

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"oscesim/app/config"
	"oscesim/app/util/apperr"

	"github.com/google/uuid"
	"github.com/samber/do"
	"github.com/sashabaranov/go-openai"
)

const maxRenderDuration = 60 * time.Second

// SelectVoice maps a normalized gender tag to a synthesis voice. Total:
// anything that is not exactly "female" gets the male voice.
func SelectVoice(gender, femaleVoice, maleVoice string) string {
	if gender == "female" {
		return femaleVoice
	}

	return maleVoice
}

type Client struct {
	cfg    *config.Config
	client *openai.Client
}

func NewClient(di *do.Injector) (*Client, error) {
	cfg := do.MustInvoke[*config.Config](di)

	if err := os.MkdirAll(cfg.Server.MediaDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create media dir: %w", err)
	}

	clientConfig := openai.DefaultConfig(cfg.OpenAI.Reply.Token)
	clientConfig.BaseURL = cfg.OpenAI.Reply.BaseURL
	clientConfig.HTTPClient = &http.Client{
		Timeout: maxRenderDuration,
	}

	return &Client{
		cfg:    cfg,
		client: openai.NewClientWithConfig(clientConfig),
	}, nil
}

// VoiceFor resolves the configured voice for a gender tag.
func (c *Client) VoiceFor(gender string) string {
	return SelectVoice(gender, c.cfg.Speech.FemaleVoice, c.cfg.Speech.MaleVoice)
}

// Render synthesizes text into an mp3 asset in the media dir and returns
// the asset's file name.
func (c *Client) Render(ctx context.Context, text, voice string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, maxRenderDuration)
	defer cancel()

	resp, err := c.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model: openai.SpeechModel(c.cfg.Speech.Model),
		Input: text,
		Voice: openai.SpeechVoice(voice),
	})
	if err != nil {
		return "", fmt.Errorf("%w: speech synthesis: %v", apperr.ErrUpstreamFailure, err)
	}
	defer resp.Close()

	name := fmt.Sprintf("voice_%s.mp3", uuid.NewString())

	file, err := os.Create(filepath.Join(c.cfg.Server.MediaDir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create audio file: %w", err)
	}
	defer file.Close()

	if _, err = io.Copy(file, resp); err != nil {
		return "", fmt.Errorf("%w: streaming audio: %v", apperr.ErrUpstreamFailure, err)
	}

	return name, nil
}
