package export

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/helpcenter-tools/hc-export/pkg/helpcenter"
	"github.com/helpcenter-tools/hc-export/pkg/htmlmd"
	"github.com/helpcenter-tools/hc-export/pkg/logging"
)

// Breadcrumb is the resolved (category, section) pair for an article.
// Fields are independently nullable: the section reference may be
// dangling, and a found section's category reference may be dangling too.
type Breadcrumb struct {
	CategoryID   *int64
	CategoryName *string
	SectionID    *int64
	SectionName  *string
}

// Normalizer combines an article, its translations, and the catalog
// indexes into one output record per locale. It never fails: all lookups
// are null-safe and markdown conversion degrades to tag stripping.
type Normalizer struct {
	sections   map[int64]helpcenter.Section
	categories map[int64]helpcenter.Category
	converter  htmlmd.Converter
	baseURL    string
	logger     zerolog.Logger
}

// NewNormalizer creates a normalizer over read-only catalog indexes.
func NewNormalizer(
	sections map[int64]helpcenter.Section,
	categories map[int64]helpcenter.Category,
	converter htmlmd.Converter,
	baseURL string,
) *Normalizer {
	return &Normalizer{
		sections:   sections,
		categories: categories,
		converter:  converter,
		baseURL:    baseURL,
		logger:     logging.NewLogger("normalizer"),
	}
}

// Breadcrumb resolves the article's section and category names.
func (n *Normalizer) Breadcrumb(article helpcenter.Article) Breadcrumb {
	var bc Breadcrumb

	section, ok := n.sections[article.SectionID]
	if !ok {
		return bc
	}
	sectionID := section.ID
	sectionName := section.Name
	bc.SectionID = &sectionID
	bc.SectionName = &sectionName

	category, ok := n.categories[section.CategoryID]
	if !ok {
		return bc
	}
	categoryID := category.ID
	categoryName := category.Name
	bc.CategoryID = &categoryID
	bc.CategoryName = &categoryName

	return bc
}

// Records emits one record per distinct locale: the article's own locale
// plus every translation locale, deduplicated, base locale first. For
// each locale, title and body fall back per field to the base article's
// values when the translation entry leaves them empty.
func (n *Normalizer) Records(
	article helpcenter.Article,
	translations []helpcenter.Translation,
	attachments []helpcenter.Attachment,
) []Record {
	bc := n.Breadcrumb(article)

	byLocale := make(map[string]helpcenter.Translation, len(translations))
	locales := []string{article.Locale}
	seen := map[string]bool{article.Locale: true}
	for _, t := range translations {
		byLocale[t.Locale] = t
		if !seen[t.Locale] {
			seen[t.Locale] = true
			locales = append(locales, t.Locale)
		}
	}

	records := make([]Record, 0, len(locales))
	for _, locale := range locales {
		title := article.Title
		body := article.Body
		if t, ok := byLocale[locale]; ok {
			if t.Title != "" {
				title = t.Title
			}
			if t.Body != "" {
				body = t.Body
			}
		}

		markdown, err := n.converter.Convert(body)
		if err != nil {
			n.logger.Warn().
				Err(err).
				Int64("article_id", article.ID).
				Str("locale", locale).
				Msg("Markdown conversion failed, stripping tags instead")
			markdown = htmlmd.StripTags(body)
		}

		records = append(records, Record{
			ArticleID:        article.ID,
			ArticleHTMLURL:   article.HTMLURL,
			Title:            title,
			Locale:           locale,
			Labels:           article.LabelNames,
			Draft:            article.Draft,
			Promoted:         article.Promoted,
			Position:         article.Position,
			AuthorID:         article.AuthorID,
			Permissions:      article.PermissionGroupID,
			CreatedAt:        article.CreatedAt,
			UpdatedAt:        article.UpdatedAt,
			Outdated:         article.Outdated,
			CommentsDisabled: article.CommentsDisabled,
			UserSegmentID:    article.UserSegmentID,
			SourceLocale:     article.SourceLocale,
			CategoryID:       bc.CategoryID,
			CategoryName:     bc.CategoryName,
			SectionID:        bc.SectionID,
			SectionName:      bc.SectionName,
			BodyHTML:         body,
			BodyMarkdown:     markdown,
			Attachments:      attachments,
			URL:              fmt.Sprintf("%s/hc/%s/articles/%d", n.baseURL, locale, article.ID),
		})
	}

	return records
}

// buildChunk derives a chunk record from its parent article record.
// doc_id is "{article_id}:{locale}"; chunk_id appends the 0-based index.
func buildChunk(rec Record, index int, text string) Chunk {
	docID := fmt.Sprintf("%d:%s", rec.ArticleID, rec.Locale)
	return Chunk{
		DocID:        docID,
		ChunkID:      fmt.Sprintf("%s:%d", docID, index),
		Title:        rec.Title,
		URL:          rec.URL,
		Locale:       rec.Locale,
		CategoryName: rec.CategoryName,
		SectionName:  rec.SectionName,
		Labels:       rec.Labels,
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    rec.UpdatedAt,
		Draft:        rec.Draft,
		Outdated:     rec.Outdated,
		Text:         text,
		Breadcrumbs:  joinBreadcrumbs(rec.CategoryName, rec.SectionName, rec.Title),
	}
}

// joinBreadcrumbs joins the non-empty parts with " > " for hybrid search.
func joinBreadcrumbs(categoryName, sectionName *string, title string) string {
	var parts []string
	if categoryName != nil && *categoryName != "" {
		parts = append(parts, *categoryName)
	}
	if sectionName != nil && *sectionName != "" {
		parts = append(parts, *sectionName)
	}
	if title != "" {
		parts = append(parts, title)
	}
	return strings.Join(parts, " > ")
}
