package export

import (
	"errors"
	"strings"
	"testing"

	"github.com/helpcenter-tools/hc-export/pkg/helpcenter"
)

// identityConverter passes body text through unchanged.
type identityConverter struct{}

func (identityConverter) Convert(htmlInput string) (string, error) {
	return htmlInput, nil
}

// failingConverter always fails, forcing the tag-strip fallback.
type failingConverter struct{}

func (failingConverter) Convert(string) (string, error) {
	return "", errors.New("converter broken")
}

func testCatalog() (map[int64]helpcenter.Section, map[int64]helpcenter.Category) {
	sections := map[int64]helpcenter.Section{
		100: {ID: 100, Name: "Install", CategoryID: 10},
		101: {ID: 101, Name: "Orphan", CategoryID: 999}, // dangling category
	}
	categories := map[int64]helpcenter.Category{
		10: {ID: 10, Name: "Guides"},
	}
	return sections, categories
}

func testArticle() helpcenter.Article {
	return helpcenter.Article{
		ID:         7,
		Title:      "Getting started",
		Body:       "<p>Hello</p>",
		Locale:     "en-us",
		SectionID:  100,
		LabelNames: []string{"intro"},
		CreatedAt:  "2024-01-01T00:00:00Z",
		UpdatedAt:  "2024-06-01T00:00:00Z",
		HTMLURL:    "https://acme.zendesk.com/hc/en-us/articles/7",
	}
}

func TestNormalizer_Breadcrumb(t *testing.T) {
	sections, categories := testCatalog()
	n := NewNormalizer(sections, categories, identityConverter{}, "https://acme.zendesk.com")

	t.Run("fully resolved", func(t *testing.T) {
		bc := n.Breadcrumb(testArticle())
		if bc.SectionName == nil || *bc.SectionName != "Install" {
			t.Errorf("SectionName = %v, want Install", bc.SectionName)
		}
		if bc.CategoryName == nil || *bc.CategoryName != "Guides" {
			t.Errorf("CategoryName = %v, want Guides", bc.CategoryName)
		}
	})

	t.Run("dangling section", func(t *testing.T) {
		article := testArticle()
		article.SectionID = 404
		bc := n.Breadcrumb(article)
		if bc.SectionName != nil || bc.CategoryName != nil {
			t.Errorf("breadcrumb = %+v, want all nil", bc)
		}
	})

	t.Run("dangling category", func(t *testing.T) {
		article := testArticle()
		article.SectionID = 101
		bc := n.Breadcrumb(article)
		if bc.SectionName == nil || *bc.SectionName != "Orphan" {
			t.Errorf("SectionName = %v, want Orphan", bc.SectionName)
		}
		if bc.CategoryName != nil {
			t.Errorf("CategoryName = %v, want nil", bc.CategoryName)
		}
	})
}

func TestNormalizer_Records_LocaleUnion(t *testing.T) {
	sections, categories := testCatalog()
	n := NewNormalizer(sections, categories, identityConverter{}, "https://acme.zendesk.com")

	translations := []helpcenter.Translation{
		{Locale: "fr", Title: "Bienvenue", Body: "<p>Salut</p>"},
		{Locale: "de", Title: "Willkommen", Body: "<p>Hallo</p>"},
		{Locale: "en-us", Title: "", Body: ""}, // duplicate of base locale
	}

	records := n.Records(testArticle(), translations, nil)
	if len(records) != 3 {
		t.Fatalf("records = %d, want 3 (en-us, fr, de)", len(records))
	}
	if records[0].Locale != "en-us" {
		t.Errorf("records[0].Locale = %q, want base locale first", records[0].Locale)
	}
	if records[1].Locale != "fr" || records[1].Title != "Bienvenue" {
		t.Errorf("records[1] = %q/%q", records[1].Locale, records[1].Title)
	}
	if records[2].Locale != "de" || records[2].BodyHTML != "<p>Hallo</p>" {
		t.Errorf("records[2] = %q/%q", records[2].Locale, records[2].BodyHTML)
	}
}

func TestNormalizer_Records_PerFieldFallback(t *testing.T) {
	sections, categories := testCatalog()
	n := NewNormalizer(sections, categories, identityConverter{}, "https://acme.zendesk.com")

	// Translation overrides the title only; the body falls back to base.
	translations := []helpcenter.Translation{
		{Locale: "fr", Title: "Bienvenue", Body: ""},
	}

	records := n.Records(testArticle(), translations, nil)
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	fr := records[1]
	if fr.Title != "Bienvenue" {
		t.Errorf("Title = %q, want translated", fr.Title)
	}
	if fr.BodyHTML != "<p>Hello</p>" {
		t.Errorf("BodyHTML = %q, want base body", fr.BodyHTML)
	}
}

func TestNormalizer_Records_URLPerLocale(t *testing.T) {
	sections, categories := testCatalog()
	n := NewNormalizer(sections, categories, identityConverter{}, "https://acme.zendesk.com")

	translations := []helpcenter.Translation{{Locale: "fr", Title: "T", Body: "B"}}
	records := n.Records(testArticle(), translations, nil)

	if records[0].URL != "https://acme.zendesk.com/hc/en-us/articles/7" {
		t.Errorf("URL = %q", records[0].URL)
	}
	if records[1].URL != "https://acme.zendesk.com/hc/fr/articles/7" {
		t.Errorf("URL = %q", records[1].URL)
	}
}

func TestNormalizer_Records_ConverterFailureFallsBack(t *testing.T) {
	sections, categories := testCatalog()
	n := NewNormalizer(sections, categories, failingConverter{}, "https://acme.zendesk.com")

	records := n.Records(testArticle(), nil, nil)
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	if records[0].BodyMarkdown != "Hello" {
		t.Errorf("BodyMarkdown = %q, want tag-stripped body", records[0].BodyMarkdown)
	}
}

func TestNormalizer_Records_Attachments(t *testing.T) {
	sections, categories := testCatalog()
	n := NewNormalizer(sections, categories, identityConverter{}, "https://acme.zendesk.com")

	attachments := []helpcenter.Attachment{{ID: 55, FileName: "diagram.png"}}
	records := n.Records(testArticle(), nil, attachments)

	if len(records[0].Attachments) != 1 || records[0].Attachments[0].FileName != "diagram.png" {
		t.Errorf("Attachments = %+v", records[0].Attachments)
	}
}

func TestBuildChunk(t *testing.T) {
	sections, categories := testCatalog()
	n := NewNormalizer(sections, categories, identityConverter{}, "https://acme.zendesk.com")

	rec := n.Records(testArticle(), nil, nil)[0]
	chunk := buildChunk(rec, 2, "chunk text")

	if chunk.DocID != "7:en-us" {
		t.Errorf("DocID = %q, want 7:en-us", chunk.DocID)
	}
	if chunk.ChunkID != "7:en-us:2" {
		t.Errorf("ChunkID = %q, want 7:en-us:2", chunk.ChunkID)
	}
	if chunk.Text != "chunk text" {
		t.Errorf("Text = %q", chunk.Text)
	}
	if chunk.Breadcrumbs != "Guides > Install > Getting started" {
		t.Errorf("Breadcrumbs = %q", chunk.Breadcrumbs)
	}
	if chunk.URL != rec.URL || chunk.Locale != "en-us" {
		t.Errorf("chunk = %+v", chunk)
	}
}

func TestJoinBreadcrumbs(t *testing.T) {
	guides := "Guides"
	install := "Install"
	empty := ""

	tests := []struct {
		name     string
		category *string
		section  *string
		title    string
		want     string
	}{
		{"all parts", &guides, &install, "Setup", "Guides > Install > Setup"},
		{"no category", nil, &install, "Setup", "Install > Setup"},
		{"title only", nil, nil, "Setup", "Setup"},
		{"empty strings skipped", &empty, &install, "Setup", "Install > Setup"},
		{"nothing", nil, nil, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := joinBreadcrumbs(tt.category, tt.section, tt.title); got != tt.want {
				t.Errorf("joinBreadcrumbs = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizer_Records_NoTranslations(t *testing.T) {
	sections, categories := testCatalog()
	n := NewNormalizer(sections, categories, identityConverter{}, "https://acme.zendesk.com")

	records := n.Records(testArticle(), nil, nil)
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1 (base locale only)", len(records))
	}
	rec := records[0]
	if rec.ArticleID != 7 || rec.Locale != "en-us" || rec.Title != "Getting started" {
		t.Errorf("record = %+v", rec)
	}
	if !strings.Contains(rec.BodyMarkdown, "Hello") {
		t.Errorf("BodyMarkdown = %q", rec.BodyMarkdown)
	}
}
