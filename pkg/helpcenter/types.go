// Package helpcenter models the help-center content API (categories,
// sections, articles, translations, attachments) and loads it into memory
// for one export run.
package helpcenter

// Category is a top-level navigation unit. Immutable once fetched.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Section groups articles under one category. The category reference may
// be dangling and must be resolved null-safely.
type Section struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	CategoryID int64  `json:"category_id"`
}

// Article is the source content object as returned by the API. Body holds
// raw HTML in the article's own locale.
type Article struct {
	ID                int64    `json:"id"`
	Title             string   `json:"title"`
	Body              string   `json:"body"`
	Locale            string   `json:"locale"`
	SectionID         int64    `json:"section_id"`
	LabelNames        []string `json:"label_names"`
	Draft             bool     `json:"draft"`
	Promoted          bool     `json:"promoted"`
	Position          int      `json:"position"`
	AuthorID          int64    `json:"author_id"`
	PermissionGroupID *int64   `json:"permission_group_id"`
	CreatedAt         string   `json:"created_at"`
	UpdatedAt         string   `json:"updated_at"`
	Outdated          bool     `json:"outdated"`
	CommentsDisabled  bool     `json:"comments_disabled"`
	UserSegmentID     *int64   `json:"user_segment_id"`
	SourceLocale      string   `json:"source_locale"`
	HTMLURL           string   `json:"html_url"`
}

// Translation carries one locale's title/body override for an article.
// Either field may be empty, in which case the base article's value applies.
type Translation struct {
	Locale string `json:"locale"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// Attachment is file metadata attached to an article, independent of locale.
type Attachment struct {
	ID          int64  `json:"id"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	ContentURL  string `json:"content_url"`
	Size        int64  `json:"size"`
}
