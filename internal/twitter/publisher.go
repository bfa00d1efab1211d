package twitter

import (
	"context"
	"os"

	"cryptosocialbot/internal/bot"
	"cryptosocialbot/pkg/logging"
)

// Publisher posts composed content to Twitter, uploading the attached image
// first when the post carries one. A failed upload degrades the post to
// text-only rather than dropping it.
type Publisher struct {
	client *Client
	logger logging.Logger
}

func NewPublisher(client *Client, logger logging.Logger) *Publisher {
	return &Publisher{client: client, logger: logger}
}

func (p *Publisher) Publish(ctx context.Context, post bot.Post) (string, error) {
	var mediaIDs []string
	if post.MediaPath != "" {
		if mediaID, ok := p.uploadImage(ctx, post.MediaPath); ok {
			mediaIDs = append(mediaIDs, mediaID)
		}
	}

	return p.client.CreateTweet(ctx, post.Text, mediaIDs)
}

func (p *Publisher) uploadImage(ctx context.Context, path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		p.logger.WithError(err).WithField("path", path).Warn("Failed to read image, posting text-only")
		return "", false
	}

	mediaID, err := p.client.UploadMedia(ctx, path, data)
	if err != nil {
		p.logger.WithError(err).WithField("path", path).Warn("Failed to upload image, posting text-only")
		return "", false
	}

	return mediaID, true
}
