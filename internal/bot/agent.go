package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"cryptosocialbot/pkg/logging"
)

const (
	defaultFedjaInterval   = 12 * time.Hour
	defaultGeneralInterval = 30 * time.Minute
)

// Composer produces the post text for a category.
type Composer interface {
	Compose(ctx context.Context, category Category, headlines []string) (string, error)
}

// HeadlineSource supplies trending headlines for general posts.
type HeadlineSource interface {
	Trending(ctx context.Context) ([]string, error)
}

// MediaPicker selects an image path to attach.
type MediaPicker interface {
	Pick() (string, error)
}

// Publisher sends a finished post to the platform and returns its ID.
type Publisher interface {
	Publish(ctx context.Context, post Post) (string, error)
}

type AgentConfig struct {
	FedjaInterval   time.Duration
	GeneralInterval time.Duration
	Selector        *Selector
	Composer        Composer
	Headlines       HeadlineSource
	Media           MediaPicker
	Publisher       Publisher
	Metrics         *Metrics
	Logger          logging.Logger
}

// Agent runs the posting loop. Each cycle is stateless: select a category,
// compose, optionally attach media, publish, then sleep the category's
// interval.
type Agent struct {
	fedjaInterval   time.Duration
	generalInterval time.Duration
	selector        *Selector
	composer        Composer
	headlines       HeadlineSource
	media           MediaPicker
	publisher       Publisher
	metrics         *Metrics
	logger          logging.Logger
}

func NewAgent(cfg AgentConfig) *Agent {
	fedjaInterval := cfg.FedjaInterval
	if fedjaInterval <= 0 {
		fedjaInterval = defaultFedjaInterval
	}
	generalInterval := cfg.GeneralInterval
	if generalInterval <= 0 {
		generalInterval = defaultGeneralInterval
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewLogger()
	}
	return &Agent{
		fedjaInterval:   fedjaInterval,
		generalInterval: generalInterval,
		selector:        cfg.Selector,
		composer:        cfg.Composer,
		headlines:       cfg.Headlines,
		media:           cfg.Media,
		publisher:       cfg.Publisher,
		metrics:         cfg.Metrics,
		logger:          logger,
	}
}

// Start runs the first cycle immediately, then keeps cycling until ctx is
// done. The sleep between cycles depends on the category just attempted.
func (a *Agent) Start(ctx context.Context) {
	if a == nil {
		return
	}
	timer := time.NewTimer(a.runCycle(ctx))
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			timer.Reset(a.runCycle(ctx))
		}
	}
}

// runCycle attempts one post and returns the delay until the next cycle.
// Errors end the cycle; they never propagate past the agent.
func (a *Agent) runCycle(ctx context.Context) (delay time.Duration) {
	start := time.Now()
	category := a.selector.Next()
	delay = a.interval(category)

	defer func() {
		if r := recover(); r != nil {
			a.logger.WithField("panic", fmt.Sprint(r)).Error("Posting cycle panic")
			a.metrics.observe(category, "panic", time.Since(start).Seconds())
		}
	}()

	logger := a.logger.WithFields(logging.Fields{
		"cycle_id": uuid.New().String(),
		"category": string(category),
	})
	logger.Info("Posting cycle started")

	var headlines []string
	if category == CategoryGeneral && a.headlines != nil {
		trending, err := a.headlines.Trending(ctx)
		if err != nil {
			logger.WithError(err).Warn("Failed to fetch trending headlines")
		} else {
			headlines = trending
		}
	}

	text, err := a.composer.Compose(ctx, category, headlines)
	if err != nil {
		logger.WithError(err).Warn("Failed to compose post")
		a.metrics.observe(category, "compose_error", time.Since(start).Seconds())
		return delay
	}

	post := Post{Category: category, Text: text}
	if category == CategoryFedja && a.media != nil {
		mediaPath, mediaErr := a.media.Pick()
		if mediaErr != nil {
			logger.WithError(mediaErr).Warn("No image attached, posting text-only")
		} else {
			post.MediaPath = mediaPath
		}
	}

	postID, err := a.publisher.Publish(ctx, post)
	if err != nil {
		logger.WithError(err).Warn("Failed to publish post")
		a.metrics.observe(category, "publish_error", time.Since(start).Seconds())
		return delay
	}

	a.metrics.observe(category, "published", time.Since(start).Seconds())
	a.metrics.markPosted(category)
	logger.WithFields(logging.Fields{
		"post_id":    postID,
		"length":     len(post.Text),
		"has_media":  post.MediaPath != "",
		"next_cycle": delay.String(),
	}).Info("Post published")
	return delay
}

func (a *Agent) interval(category Category) time.Duration {
	if category == CategoryFedja {
		return a.fedjaInterval
	}
	return a.generalInterval
}
