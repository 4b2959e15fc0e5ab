package news

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/sirupsen/logrus"
)

// RSSFetcher читает настроенные RSS/Atom ленты
type RSSFetcher struct {
	feeds   []string
	parser  *gofeed.Parser
	timeout time.Duration
	logger  *logrus.Logger
}

func NewRSSFetcher(feeds []string, timeout time.Duration, logger *logrus.Logger) *RSSFetcher {
	return &RSSFetcher{
		feeds:   feeds,
		parser:  gofeed.NewParser(),
		timeout: timeout,
		logger:  logger,
	}
}

// Fetch читает все ленты; ошибка одной ленты не мешает остальным
func (f *RSSFetcher) Fetch(ctx context.Context) ([]Article, error) {
	articles := make([]Article, 0)
	var errs []error
	for _, url := range f.feeds {
		items, err := f.fetchFeed(ctx, url)
		if err != nil {
			f.logger.WithError(err).WithField("feed", url).Warn("Failed to fetch feed")
			errs = append(errs, err)
			continue
		}
		articles = append(articles, items...)
	}
	if len(articles) == 0 && len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return articles, nil
}

func (f *RSSFetcher) fetchFeed(ctx context.Context, url string) ([]Article, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	feed, err := f.parser.ParseURLWithContext(url, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed %s: %w", url, err)
	}

	articles := make([]Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item.Link == "" || item.Title == "" {
			continue
		}
		published := time.Now().UTC()
		if item.PublishedParsed != nil {
			published = item.PublishedParsed.UTC()
		}
		summary := item.Description
		if summary == "" {
			summary = item.Content
		}
		articles = append(articles, Article{
			ID:          ArticleID(item.Link),
			Title:       item.Title,
			URL:         item.Link,
			Source:      feed.Title,
			Summary:     summary,
			PublishedAt: published,
		})
	}
	return articles, nil
}
