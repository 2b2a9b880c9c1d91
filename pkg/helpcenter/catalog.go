package helpcenter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/helpcenter-tools/hc-export/pkg/logging"
	"github.com/helpcenter-tools/hc-export/pkg/pagination"
)

// Loader fetches the help-center catalog and per-article sub-resources.
type Loader struct {
	fetcher pagination.Getter
	walker  *pagination.Walker
	baseURL string
	logger  zerolog.Logger
}

// NewLoader creates a loader for the help-center instance at baseURL.
func NewLoader(fetcher pagination.Getter, baseURL string) *Loader {
	return &Loader{
		fetcher: fetcher,
		walker:  pagination.NewWalker(fetcher),
		baseURL: baseURL,
		logger:  logging.NewLogger("catalog"),
	}
}

// Categories loads all categories, indexed by id for O(1) breadcrumb
// lookup. If two categories share an id, the last one wins.
func (l *Loader) Categories(ctx context.Context) (map[int64]Category, error) {
	items, err := l.walker.All(ctx, l.baseURL+"/api/v2/help_center/categories.json", "categories")
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}

	categories := make(map[int64]Category, len(items))
	for _, item := range items {
		var category Category
		if err := decodeInto(item, &category); err != nil {
			return nil, fmt.Errorf("decode category: %w", err)
		}
		categories[category.ID] = category
	}
	return categories, nil
}

// Sections loads all sections, indexed by id. Last-write-wins on
// duplicate ids.
func (l *Loader) Sections(ctx context.Context) (map[int64]Section, error) {
	items, err := l.walker.All(ctx, l.baseURL+"/api/v2/help_center/sections.json", "sections")
	if err != nil {
		return nil, fmt.Errorf("load sections: %w", err)
	}

	sections := make(map[int64]Section, len(items))
	for _, item := range items {
		var section Section
		if err := decodeInto(item, &section); err != nil {
			return nil, fmt.Errorf("decode section: %w", err)
		}
		sections[section.ID] = section
	}
	return sections, nil
}

// Articles enumerates all articles in listing order.
func (l *Loader) Articles(ctx context.Context) ([]Article, error) {
	items, err := l.walker.All(ctx, l.baseURL+"/api/v2/help_center/articles.json?include=users", "articles")
	if err != nil {
		return nil, fmt.Errorf("load articles: %w", err)
	}

	articles := make([]Article, 0, len(items))
	for _, item := range items {
		var article Article
		if err := decodeInto(item, &article); err != nil {
			return nil, fmt.Errorf("decode article: %w", err)
		}
		articles = append(articles, article)
	}
	return articles, nil
}

// Translations fetches the locale translations for an article.
// Translations are best-effort: on any fetch error an empty slice is
// returned and the error is logged, never propagated. A missing
// translation must not abort export of the base article.
func (l *Loader) Translations(ctx context.Context, articleID int64) []Translation {
	url := fmt.Sprintf("%s/api/v2/help_center/articles/%d/translations.json", l.baseURL, articleID)
	data, err := l.fetcher.GetJSON(ctx, url, nil)
	if err != nil {
		l.logger.Warn().
			Err(err).
			Int64("article_id", articleID).
			Msg("Translation fetch failed, continuing without translations")
		return nil
	}

	items, _ := data["translations"].([]any)
	translations := make([]Translation, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		var translation Translation
		if err := decodeInto(obj, &translation); err != nil {
			l.logger.Warn().
				Err(err).
				Int64("article_id", articleID).
				Msg("Skipping undecodable translation")
			continue
		}
		translations = append(translations, translation)
	}
	return translations
}

// Attachments fetches attachment metadata for an article. Same
// best-effort contract as Translations.
func (l *Loader) Attachments(ctx context.Context, articleID int64) []Attachment {
	url := fmt.Sprintf("%s/api/v2/help_center/articles/%d/attachments.json", l.baseURL, articleID)
	data, err := l.fetcher.GetJSON(ctx, url, nil)
	if err != nil {
		l.logger.Warn().
			Err(err).
			Int64("article_id", articleID).
			Msg("Attachment fetch failed, continuing without attachments")
		return nil
	}

	items, _ := data["article_attachments"].([]any)
	attachments := make([]Attachment, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		var attachment Attachment
		if err := decodeInto(obj, &attachment); err != nil {
			l.logger.Warn().
				Err(err).
				Int64("article_id", articleID).
				Msg("Skipping undecodable attachment")
			continue
		}
		attachments = append(attachments, attachment)
	}
	return attachments
}

// decodeInto converts a decoded JSON object into a typed struct.
func decodeInto(obj map[string]any, target any) error {
	raw, err := json.Marshal(obj)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, target)
}
