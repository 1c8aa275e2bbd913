package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Log    Log    `yaml:"log"`
	Server Server `yaml:"server"`
	OpenAI OpenAI `yaml:"openai"`
	Speech Speech `yaml:"speech"`
}

type OpenAI struct {
	Reply   ModelConfig `yaml:"reply" validate:"required"`
	Persona ModelConfig `yaml:"persona" validate:"required"`
	Summary ModelConfig `yaml:"summary" validate:"required"`
	Intent  ModelConfig `yaml:"intent" validate:"required"`
}

type ModelConfig struct {
	// OpenAI base url
	BaseURL string `yaml:"base_url" example:"https://api.openai.com/v1" validate:"required"`
	// OpenAI token
	Token string `yaml:"token" example:"sk-proj-abc123456789DEF789ghi012JKL345mno678PQR901stu234VWX" validate:"required"`
	// OpenAI model
	Model string `yaml:"model" example:"gpt-4o-mini" validate:"required"`
}

type Speech struct {
	// Speech synthesis model
	Model string `yaml:"model" example:"tts-1"`
	// Voice used when the active case's patient is female
	FemaleVoice string `yaml:"female_voice" example:"alloy"`
	// Voice used for everything else
	MaleVoice string `yaml:"male_voice" example:"onyx"`
}

type Server struct {
	// Listen address of the HTTP API
	Listen string `yaml:"listen" example:":8080"`
	// Directory for rendered audio assets
	MediaDir string `yaml:"media_dir" example:"media"`
	// Root directory of the predefined case catalog
	CasesDir string `yaml:"cases_dir" example:"cases"`
}

type Log struct {
	// Telegram logging config
	Telegram TelegramLog `yaml:"telegram"`
}

type TelegramLog struct {
	// Chat bot token, obtain it via BotFather
	Token string `yaml:"token" example:"1234567890:ABCdefGHIjklMNopQRstUVwxyZ-123456789"`
	// Chat ID to send messages to
	ChatID string `yaml:"chat_id" example:"1001234567890"`
}

func Load() (*Config, error) {
	var result Config

	data, err := os.ReadFile("config.yaml")
	if err != nil {
		return nil, oops.Errorf("failed to read config file: %w", err)
	}

	if err = yaml.Unmarshal(data, &result); err != nil {
		return nil, oops.Errorf("failed to parse YAML config: %w", err)
	}

	if result.Server.Listen == "" {
		result.Server.Listen = ":8080"
	}
	if result.Server.MediaDir == "" {
		result.Server.MediaDir = "media"
	}
	if result.Server.CasesDir == "" {
		result.Server.CasesDir = "cases"
	}
	if result.Speech.Model == "" {
		result.Speech.Model = "tts-1"
	}
	if result.Speech.FemaleVoice == "" {
		result.Speech.FemaleVoice = "alloy"
	}
	if result.Speech.MaleVoice == "" {
		result.Speech.MaleVoice = "onyx"
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(result); err != nil {
		return nil, oops.Errorf("failed to validate config: %w", err)
	}

	return &result, nil
}
