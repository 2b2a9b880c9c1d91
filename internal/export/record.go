// Package export normalizes help-center articles into per-locale records
// and emits the article and chunk NDJSON streams.
package export

import (
	"github.com/helpcenter-tools/hc-export/pkg/helpcenter"
)

// Record is the full-article output unit, one per (article, locale) pair.
// Breadcrumb fields are independently nullable: a dangling section
// reference yields null section and category fields rather than an error.
type Record struct {
	ArticleID        int64                   `json:"article_id"`
	ArticleHTMLURL   string                  `json:"article_html_url"`
	Title            string                  `json:"title"`
	Locale           string                  `json:"locale"`
	Labels           []string                `json:"labels"`
	Draft            bool                    `json:"draft"`
	Promoted         bool                    `json:"promoted"`
	Position         int                     `json:"position"`
	AuthorID         int64                   `json:"author_id"`
	Permissions      *int64                  `json:"permissions"`
	CreatedAt        string                  `json:"created_at"`
	UpdatedAt        string                  `json:"updated_at"`
	Outdated         bool                    `json:"outdated"`
	CommentsDisabled bool                    `json:"comments_disabled"`
	UserSegmentID    *int64                  `json:"user_segment_id"`
	SourceLocale     string                  `json:"source_locale"`
	CategoryID       *int64                  `json:"category_id"`
	CategoryName     *string                 `json:"category_name"`
	SectionID        *int64                  `json:"section_id"`
	SectionName      *string                 `json:"section_name"`
	BodyHTML         string                  `json:"body_html"`
	BodyMarkdown     string                  `json:"body_markdown"`
	Attachments      []helpcenter.Attachment `json:"attachments"`
	URL              string                  `json:"url"`
}

// Chunk is one retrieval unit of a record's markdown body. Chunks are
// immutable once created and ordered within their document by the index
// carried in ChunkID.
type Chunk struct {
	DocID        string   `json:"doc_id"`
	ChunkID      string   `json:"chunk_id"`
	Title        string   `json:"title"`
	URL          string   `json:"url"`
	Locale       string   `json:"locale"`
	CategoryName *string  `json:"category_name"`
	SectionName  *string  `json:"section_name"`
	Labels       []string `json:"labels"`
	CreatedAt    string   `json:"created_at"`
	UpdatedAt    string   `json:"updated_at"`
	Draft        bool     `json:"draft"`
	Outdated     bool     `json:"outdated"`
	Text         string   `json:"text"`
	Breadcrumbs  string   `json:"breadcrumbs"`
}
