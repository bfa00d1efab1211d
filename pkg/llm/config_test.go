package llm

import (
	"os"
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"LLM_PROVIDER", "LLM_MODEL", "LLM_API_KEY", "LLM_API_URL", "LLM_MAX_TOKENS"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := LoadConfig()

	if cfg.Provider != "openai" {
		t.Errorf("Provider = %q, want %q", cfg.Provider, "openai")
	}
	if cfg.Model != "" {
		t.Errorf("Model = %q, want empty", cfg.Model)
	}
	if cfg.MaxTokens != 0 {
		t.Errorf("MaxTokens = %d, want 0", cfg.MaxTokens)
	}
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "deepseek")
	t.Setenv("LLM_MODEL", "deepseek-chat")
	t.Setenv("LLM_API_KEY", "sk-ds")
	t.Setenv("LLM_API_URL", "")
	t.Setenv("LLM_MAX_TOKENS", "1000")

	cfg := LoadConfig()

	if cfg.Provider != "deepseek" {
		t.Errorf("Provider = %q, want %q", cfg.Provider, "deepseek")
	}
	if cfg.Model != "deepseek-chat" {
		t.Errorf("Model = %q, want %q", cfg.Model, "deepseek-chat")
	}
	if cfg.APIKey != "sk-ds" {
		t.Errorf("APIKey = %q, want %q", cfg.APIKey, "sk-ds")
	}
	if cfg.MaxTokens != 1000 {
		t.Errorf("MaxTokens = %d, want 1000", cfg.MaxTokens)
	}
}

func TestNewProvider(t *testing.T) {
	cases := []struct {
		provider string
		wantErr  bool
	}{
		{"openai", false},
		{"OpenAI", false},
		{"anthropic", false},
		{"deepseek", false},
		{"ollama", false},
		{"mystery", true},
	}
	for _, tc := range cases {
		p, err := NewProvider(Config{Provider: tc.provider, Model: "m"})
		if tc.wantErr {
			if err == nil {
				t.Errorf("NewProvider(%q): expected error", tc.provider)
			}
			continue
		}
		if err != nil {
			t.Errorf("NewProvider(%q): %v", tc.provider, err)
		}
		if p == nil {
			t.Errorf("NewProvider(%q): nil provider", tc.provider)
		}
	}
}
