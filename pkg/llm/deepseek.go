package llm

import (
	"context"
	"strings"
)

// DeepSeekProvider speaks the OpenAI-compatible chat API hosted at
// api.deepseek.com.
type DeepSeekProvider struct {
	openai *OpenAIProvider
}

func NewDeepSeekProvider(cfg Config) *DeepSeekProvider {
	cfgCopy := cfg
	if strings.TrimSpace(cfgCopy.APIURL) == "" {
		cfgCopy.APIURL = "https://api.deepseek.com/v1"
	}
	return &DeepSeekProvider{
		openai: NewOpenAIProvider(cfgCopy),
	}
}

func (p *DeepSeekProvider) Complete(ctx context.Context, messages []Message, opts Options) (string, error) {
	return p.openai.Complete(ctx, messages, opts)
}
