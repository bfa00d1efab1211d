package composer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"testing"

	"cryptosocialbot/internal/bot"
	"cryptosocialbot/internal/prompts"
	"cryptosocialbot/pkg/llm"
	"cryptosocialbot/pkg/logging"
)

type providerFunc func(ctx context.Context, messages []llm.Message, opts llm.Options) (string, error)

func (f providerFunc) Complete(ctx context.Context, messages []llm.Message, opts llm.Options) (string, error) {
	return f(ctx, messages, opts)
}

func newTestComposer(provider llm.Provider) *Composer {
	logger := logging.NewLogger()
	logger.SetOutput(io.Discard)
	return NewComposer(Config{
		LLM:     provider,
		Prompts: prompts.NewLibrary(prompts.Config{Rand: rand.New(rand.NewSource(1))}),
		Logger:  logger,
		Rand:    rand.New(rand.NewSource(1)),
	})
}

func userPromptOf(messages []llm.Message) string {
	for _, m := range messages {
		if m.Role == "user" {
			return m.Content
		}
	}
	return ""
}

func fedjaReferenceOf(t *testing.T, text string) string {
	t.Helper()
	for _, ref := range fedjaReferences {
		if strings.HasSuffix(text, ref) {
			return ref
		}
	}
	t.Fatalf("expected a $FEDJA reference suffix, got %q", text)
	return ""
}

func TestComposeReturnsProviderText(t *testing.T) {
	provider := providerFunc(func(ctx context.Context, messages []llm.Message, opts llm.Options) (string, error) {
		return "Hello", nil
	})

	text, err := newTestComposer(provider).Compose(context.Background(), bot.CategoryGeneral, nil)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	if text != "Hello" {
		t.Errorf("expected Hello, got %q", text)
	}
}

func TestComposeRequestShape(t *testing.T) {
	var gotOpts llm.Options
	var gotSystem string
	deadlineSet := false
	provider := providerFunc(func(ctx context.Context, messages []llm.Message, opts llm.Options) (string, error) {
		gotOpts = opts
		_, deadlineSet = ctx.Deadline()
		for _, m := range messages {
			if m.Role == "system" {
				gotSystem = m.Content
			}
		}
		return "gm", nil
	})

	if _, err := newTestComposer(provider).Compose(context.Background(), bot.CategoryGeneral, nil); err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	if gotOpts.Temperature != 0.7 || gotOpts.TopP != 0.9 || gotOpts.MaxTokens != 1000 {
		t.Errorf("unexpected options %+v", gotOpts)
	}
	if gotSystem != "You are a helpful assistant." {
		t.Errorf("unexpected system prompt %q", gotSystem)
	}
	if !deadlineSet {
		t.Error("expected a deadline on the provider context")
	}
}

func TestComposeFedjaAppendsReference(t *testing.T) {
	provider := providerFunc(func(ctx context.Context, messages []llm.Message, opts llm.Options) (string, error) {
		return "Fedja ate my homework", nil
	})

	text, err := newTestComposer(provider).Compose(context.Background(), bot.CategoryFedja, nil)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	if !strings.HasPrefix(text, "Fedja ate my homework\n\n") {
		t.Errorf("expected draft then reference, got %q", text)
	}
	fedjaReferenceOf(t, text)
	if len(text) > maxTweetLength {
		t.Errorf("tweet exceeds limit: %d", len(text))
	}
}

func TestComposeFedjaTruncatesForReference(t *testing.T) {
	draft := strings.TrimSpace(strings.Repeat("fedja moon ", 25))
	provider := providerFunc(func(ctx context.Context, messages []llm.Message, opts llm.Options) (string, error) {
		return draft, nil
	})

	text, err := newTestComposer(provider).Compose(context.Background(), bot.CategoryFedja, nil)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	if len(text) > maxTweetLength {
		t.Errorf("tweet exceeds limit: %d", len(text))
	}

	ref := fedjaReferenceOf(t, text)
	kept := strings.TrimSuffix(text, ref)
	if !strings.HasPrefix(draft, kept) {
		t.Errorf("kept text is not a prefix of the draft: %q", kept)
	}
	if len(kept) >= len(draft) {
		t.Error("expected the draft to be truncated")
	}
	if draft[len(kept)] != ' ' {
		t.Errorf("expected truncation at a word boundary, got %q", draft[:len(kept)+1])
	}
}

func TestComposeSummarizesOverlongDraft(t *testing.T) {
	calls := 0
	provider := providerFunc(func(ctx context.Context, messages []llm.Message, opts llm.Options) (string, error) {
		calls++
		if calls == 1 {
			return strings.Repeat("x", 300), nil
		}
		if !strings.Contains(userPromptOf(messages), "Summarize the following text") {
			t.Errorf("expected a summarize prompt, got %q", userPromptOf(messages))
		}
		return "Short and sweet.", nil
	})

	text, err := newTestComposer(provider).Compose(context.Background(), bot.CategoryGeneral, nil)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	if text != "Short and sweet." {
		t.Errorf("expected the summary, got %q", text)
	}
	if calls != 2 {
		t.Errorf("expected 2 provider calls, got %d", calls)
	}
}

func TestComposeSummaryFailureFallsBackToLibrary(t *testing.T) {
	calls := 0
	provider := providerFunc(func(ctx context.Context, messages []llm.Message, opts llm.Options) (string, error) {
		calls++
		if calls == 1 {
			return strings.Repeat("x", 300), nil
		}
		return "", errors.New("model unavailable")
	})

	text, err := newTestComposer(provider).Compose(context.Background(), bot.CategoryGeneral, nil)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	if text == "" || len(text) > maxTweetLength {
		t.Errorf("expected a postable fallback, got %q", text)
	}
}

func TestComposeProviderError(t *testing.T) {
	provider := providerFunc(func(ctx context.Context, messages []llm.Message, opts llm.Options) (string, error) {
		return "", errors.New("connection refused")
	})

	_, err := newTestComposer(provider).Compose(context.Background(), bot.CategoryGeneral, nil)
	if err == nil {
		t.Fatal("expected error")
	}

	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %T", err)
	}
	if genErr.Stage != "draft" {
		t.Errorf("expected draft stage, got %q", genErr.Stage)
	}
}

func TestComposeHeadlines(t *testing.T) {
	var gotPrompt string
	provider := providerFunc(func(ctx context.Context, messages []llm.Message, opts llm.Options) (string, error) {
		gotPrompt = userPromptOf(messages)
		return "Markets in shambles, devs undeterred.", nil
	})

	headlines := []string{"BTC smashes through resistance", "ETH upgrade ships early"}
	text, err := newTestComposer(provider).Compose(context.Background(), bot.CategoryGeneral, headlines)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	if text != "Markets in shambles, devs undeterred." {
		t.Errorf("unexpected text %q", text)
	}
	for _, headline := range headlines {
		if !strings.Contains(gotPrompt, headline) {
			t.Errorf("expected prompt to carry %q, got %q", headline, gotPrompt)
		}
	}
	if !strings.Contains(gotPrompt, "mildly sarcastic") {
		t.Errorf("expected the summary framing, got %q", gotPrompt)
	}
}

func TestComposeOverlongHeadlineSummaryFallsThrough(t *testing.T) {
	calls := 0
	provider := providerFunc(func(ctx context.Context, messages []llm.Message, opts llm.Options) (string, error) {
		calls++
		if calls == 1 {
			return strings.Repeat("y", 300), nil
		}
		return "Plan B worked.", nil
	})

	text, err := newTestComposer(provider).Compose(context.Background(), bot.CategoryGeneral, []string{"BTC news"})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	if text != "Plan B worked." {
		t.Errorf("expected the prompt-library draft, got %q", text)
	}
	if calls != 2 {
		t.Errorf("expected 2 provider calls, got %d", calls)
	}
}

func TestChunkText(t *testing.T) {
	chunks := chunkText(strings.Repeat("a", 2500), 1000)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	if len(chunks[0]) != 1000 || len(chunks[1]) != 1000 || len(chunks[2]) != 500 {
		t.Errorf("unexpected chunk sizes %d/%d/%d", len(chunks[0]), len(chunks[1]), len(chunks[2]))
	}

	short := chunkText("short", 1000)
	if len(short) != 1 || short[0] != "short" {
		t.Errorf("expected a single chunk, got %v", short)
	}
}

func TestTruncateAtWord(t *testing.T) {
	cases := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"the quick brown fox jumps", 14, "the quick"},
		{"short", 10, "short"},
		{strings.Repeat("a", 30), 10, strings.Repeat("a", 10)},
	}
	for _, tc := range cases {
		if got := truncateAtWord(tc.in, tc.maxLen); got != tc.want {
			t.Errorf("truncateAtWord(%q, %d) = %q, want %q", tc.in, tc.maxLen, got, tc.want)
		}
	}
}

func TestGenerationErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("timeout")
	err := &GenerationError{Stage: "draft", Err: cause}
	if !errors.Is(err, cause) {
		t.Error("expected Unwrap to expose the cause")
	}
	if !strings.Contains(err.Error(), "draft") {
		t.Errorf("expected stage in message, got %q", err.Error())
	}
}
