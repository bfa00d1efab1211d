package prompts

import (
	"bufio"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"cryptosocialbot/internal/bot"
	"cryptosocialbot/pkg/logging"
)

const (
	defaultFedjaPrompt   = "Create a detailed, positive, and witty paragraph about $FEDJA, a memecoin on Solana. Discuss its potential, community, and recent developments. Keep it under 280 characters. #FedjaFren"
	defaultGeneralPrompt = "Create a detailed paragraph about the current state of crypto, AI, or DeFi in {year}. Discuss key trends and developments."
)

// Built-in prompt pools, used when the prompt files are missing or empty.
var (
	memePrompts = []string{
		"What's the most interesting crypto meme you've seen this week? Describe it briefly.",
		"Crypto memes are the best! What's your favorite and why?",
		"The crypto community loves memes. What's the funniest one you've seen recently?",
		"Memes are taking over crypto Twitter. What's your take on it?",
		"What's the latest crypto meme trend? Let's discuss!",
	}
	defiPrompts = []string{
		"What's the latest development in DeFi? Let's talk about it!",
		"DeFi is changing finance. What's your favorite platform and why?",
		"What's the most exciting DeFi project right now?",
		"DeFi is the future. What's your favorite DeFi platform?",
		"What's new in the world of decentralized finance?",
	}
	aiPrompts = []string{
		"AI is revolutionizing crypto. What's the most exciting development?",
		"What's the impact of AI on the crypto market?",
		"AI and crypto are a powerful combo. What's your favorite application?",
		"How is AI changing the crypto landscape?",
		"What's the latest AI tool in crypto you can't live without?",
	}
	generalPrompts = []string{
		"What's your favorite cryptocurrency and why?",
		"What's the most interesting thing about crypto today?",
		"What's your take on the current crypto market?",
		"What's the best thing about crypto?",
		"What's the most surprising thing about crypto in {year}?",
	}
)

// Ready tweets, posted as-is when every generated candidate stays overlong.
var readyTweets = []string{
	"Crypto is wild today! 🚀 #CryptoChat",
	"AI is changing everything! 🤖 #CryptoTech",
	"DeFi is the future! 📈 #DeFiInsight",
	"Memecoins are here to stay! 🐕 #MemeCoins",
}

// Load reads one prompt per non-blank line. A missing or unreadable file is
// logged and yields nil so the built-in pools serve instead.
func Load(path string, logger logging.Logger) []string {
	if path == "" {
		return nil
	}
	file, err := os.Open(path)
	if err != nil {
		if logger != nil {
			logger.WithError(err).WithField("path", path).Error("Failed to read prompt file")
		}
		return nil
	}
	defer file.Close()

	var prompts []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			prompts = append(prompts, line)
		}
	}
	if err := scanner.Err(); err != nil {
		if logger != nil {
			logger.WithError(err).WithField("path", path).Error("Failed to read prompt file")
		}
		return nil
	}
	return prompts
}

type Config struct {
	FedjaPath   string
	GeneralPath string
	Rand        *rand.Rand
	Logger      logging.Logger
}

// Library hands out prompts per category, preferring file-loaded prompts over
// the built-in pools.
type Library struct {
	fedja   []string
	general []string
	rng     *rand.Rand
}

func NewLibrary(cfg Config) *Library {
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Library{
		fedja:   Load(cfg.FedjaPath, cfg.Logger),
		general: Load(cfg.GeneralPath, cfg.Logger),
		rng:     rng,
	}
}

// Pick returns a random prompt for the category with {year} substituted.
func (l *Library) Pick(category bot.Category) string {
	var pool []string
	switch category {
	case bot.CategoryFedja:
		pool = l.fedja
		if len(pool) == 0 {
			pool = memePrompts
		}
	default:
		pool = l.general
		if len(pool) == 0 {
			pool = append(append(append([]string{}, defiPrompts...), aiPrompts...), generalPrompts...)
		}
	}
	if len(pool) == 0 {
		if category == bot.CategoryFedja {
			return substituteYear(defaultFedjaPrompt)
		}
		return substituteYear(defaultGeneralPrompt)
	}
	return substituteYear(pool[l.rng.Intn(len(pool))])
}

// ReadyTweet returns a short postable tweet for the last-resort fallback.
func (l *Library) ReadyTweet() string {
	return readyTweets[l.rng.Intn(len(readyTweets))]
}

func substituteYear(prompt string) string {
	return strings.ReplaceAll(prompt, "{year}", strconv.Itoa(time.Now().Year()))
}
