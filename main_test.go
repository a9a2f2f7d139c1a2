package main

import (
	"testing"

	"github.com/anuntech/racaforte-backend-sub000/config"
	"github.com/anuntech/racaforte-backend-sub000/services"
	"github.com/stretchr/testify/assert"
)

func TestLLMConfig_PicksProviderCredentials(t *testing.T) {
	s := &config.Settings{
		OpenAIAPIKey: "sk-openai", OpenAIModel: "gpt-4o-mini",
		GeminiAPIKey: "gm-key", GeminiModel: "gemini-1.5-flash",
		GrokAPIKey: "xai-key", GrokModel: "grok-2-latest",
	}

	tests := []struct {
		provider  string
		wantKey   string
		wantModel string
	}{
		{services.ProviderOpenAI, "sk-openai", "gpt-4o-mini"},
		{services.ProviderGemini, "gm-key", "gemini-1.5-flash"},
		{services.ProviderGrok, "xai-key", "grok-2-latest"},
		{"", "sk-openai", "gpt-4o-mini"},
	}
	for _, tt := range tests {
		s.LLMProvider = tt.provider
		cfg := llmConfig(s)
		assert.Equal(t, tt.provider, cfg.Provider)
		assert.Equal(t, tt.wantKey, cfg.APIKey, tt.provider)
		assert.Equal(t, tt.wantModel, cfg.Model, tt.provider)
	}
}
