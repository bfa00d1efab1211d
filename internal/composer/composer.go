package composer

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"cryptosocialbot/internal/bot"
	"cryptosocialbot/internal/prompts"
	"cryptosocialbot/pkg/llm"
	"cryptosocialbot/pkg/logging"
)

const (
	maxTweetLength   = 280
	composeTimeout   = 30 * time.Second
	summaryChunkSize = 1000

	defaultTemperature = 0.7
	defaultTopP        = 0.9
	defaultMaxTokens   = 1000
)

const systemPrompt = "You are a helpful assistant."

// fedjaReferences close out FEDJA posts, one picked at random. The reference
// always survives truncation intact.
var fedjaReferences = []string{
	"\n\n$FEDJA | 9oDw3Q36a8mVHfPCSmxYBXE9iLeJjsCYu97JGpPwDvVZ 🐕 #FedjaFren",
	"\n\nCheck out @Fedja_SOL for more info! 🐕 #FedjaMoon",
}

// GenerationError is a failed attempt to produce post text. The caller's
// policy is to log it and skip the cycle.
type GenerationError struct {
	Stage string
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed during %s: %v", e.Stage, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

type Config struct {
	LLM       llm.Provider
	Prompts   *prompts.Library
	Logger    logging.Logger
	MaxTokens int
	Rand      *rand.Rand
}

// Composer turns a category and optional headlines into a postable tweet.
// An overlong draft degrades through summarization, then a library prompt,
// then a ready tweet, so a successful completion always yields text within
// the tweet limit.
type Composer struct {
	llm       llm.Provider
	prompts   *prompts.Library
	logger    logging.Logger
	maxTokens int
	rng       *rand.Rand
}

func NewComposer(cfg Config) *Composer {
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewLogger()
	}
	return &Composer{
		llm:       cfg.LLM,
		prompts:   cfg.Prompts,
		logger:    logger,
		maxTokens: maxTokens,
		rng:       rng,
	}
}

func (c *Composer) Compose(ctx context.Context, category bot.Category, headlines []string) (string, error) {
	if c.llm == nil {
		return "", &GenerationError{Stage: "setup", Err: errors.New("LLM provider not configured")}
	}

	if category == bot.CategoryGeneral && len(headlines) > 0 {
		text, err := c.composeFromHeadlines(ctx, headlines)
		if err == nil {
			return text, nil
		}
		c.logger.WithError(err).Warn("Headline summary failed, using prompt library")
	}

	return c.composeFromPrompt(ctx, category)
}

func (c *Composer) composeFromHeadlines(ctx context.Context, headlines []string) (string, error) {
	prompt := fmt.Sprintf(
		"Summarize the following trending crypto topics into a single, witty, mildly sarcastic paragraph under %d characters:\n%s\n#CryptoChat",
		maxTweetLength, strings.Join(headlines, "\n"),
	)
	text, err := c.generate(ctx, prompt)
	if err != nil {
		return "", &GenerationError{Stage: "headline summary", Err: err}
	}
	if text == "" || len(text) > maxTweetLength {
		return "", &GenerationError{Stage: "headline summary", Err: fmt.Errorf("draft length %d outside tweet limits", len(text))}
	}
	return text, nil
}

func (c *Composer) composeFromPrompt(ctx context.Context, category bot.Category) (string, error) {
	text, err := c.generate(ctx, c.prompts.Pick(category))
	if err != nil {
		return "", &GenerationError{Stage: "draft", Err: err}
	}
	if text == "" {
		c.logger.Warn("Empty completion, using prompt library")
		text = c.prompts.Pick(category)
	}
	if len(text) > maxTweetLength {
		text = c.shorten(ctx, text, category)
	}
	if category == bot.CategoryFedja {
		text = c.addFedjaReference(text)
	}
	return text, nil
}

// shorten compresses an overlong draft, degrading to a library prompt and
// finally a ready tweet. It always returns something postable.
func (c *Composer) shorten(ctx context.Context, text string, category bot.Category) string {
	summary, err := c.summarize(ctx, text)
	if err != nil {
		c.logger.WithError(err).Warn("Summarization failed, using prompt library")
		summary = c.prompts.Pick(category)
	}
	if summary == "" || len(summary) > maxTweetLength {
		summary = c.prompts.ReadyTweet()
	}
	return summary
}

// summarize condenses text with the model, chunking long input so each
// request stays within a safe prompt size.
func (c *Composer) summarize(ctx context.Context, text string) (string, error) {
	var summaries []string
	for _, chunk := range chunkText(text, summaryChunkSize) {
		prompt := fmt.Sprintf("Summarize the following text in %d characters or less: %s", maxTweetLength, chunk)
		summary, err := c.generate(ctx, prompt)
		if err != nil {
			return "", err
		}
		if summary != "" {
			summaries = append(summaries, summary)
		}
	}

	combined := strings.Join(summaries, " ")
	if combined == "" {
		return "", errors.New("summary was empty")
	}
	if len(combined) > maxTweetLength {
		combined = truncateAtWord(combined, maxTweetLength)
	}
	return combined, nil
}

func (c *Composer) generate(ctx context.Context, userPrompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, composeTimeout)
	defer cancel()

	text, err := c.llm.Complete(ctx, []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: userPrompt},
	}, llm.Options{
		Temperature: defaultTemperature,
		TopP:        defaultTopP,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// addFedjaReference appends the contract or community line. When the draft
// plus reference would exceed the limit, the draft is cut at a word boundary
// so the reference stays whole.
func (c *Composer) addFedjaReference(text string) string {
	ref := fedjaReferences[c.rng.Intn(len(fedjaReferences))]
	if len(text)+len(ref) <= maxTweetLength {
		return text + ref
	}
	return truncateAtWord(text, maxTweetLength-len(ref)) + ref
}

func truncateAtWord(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	truncated := s[:maxLen]
	lastSpace := strings.LastIndex(truncated, " ")
	if lastSpace > maxLen/2 {
		return truncated[:lastSpace]
	}
	return truncated
}

func chunkText(s string, size int) []string {
	runes := []rune(s)
	if size <= 0 || len(runes) <= size {
		return []string{s}
	}
	var chunks []string
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}
