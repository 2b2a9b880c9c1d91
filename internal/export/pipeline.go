package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/helpcenter-tools/hc-export/pkg/chunker"
	"github.com/helpcenter-tools/hc-export/pkg/helpcenter"
	"github.com/helpcenter-tools/hc-export/pkg/htmlmd"
	"github.com/helpcenter-tools/hc-export/pkg/logging"
)

// Prometheus metrics for the export pipeline.
var (
	articlesProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hc_export_articles_processed_total",
		Help: "Total articles fully exported",
	})

	articlesSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hc_export_articles_skipped_total",
		Help: "Total articles skipped by reason",
	}, []string{"reason"})

	recordsWritten = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hc_export_records_total",
		Help: "Total per-locale article records written",
	})

	chunksWritten = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hc_export_chunks_total",
		Help: "Total chunk records written",
	})
)

// Output file names within the output directory.
const (
	ArticlesFile = "articles.jsonl"
	ChunksFile   = "chunks.jsonl"
)

// progressEvery is the article interval between progress reports; each
// report is followed by a short pause to reduce upstream load.
const progressEvery = 25

// Summary describes one completed export run.
type Summary struct {
	Articles     int
	Exported     int
	Filtered     int
	Failed       int
	Records      int
	Chunks       int
	ArticlesPath string
	ChunksPath   string
}

// Pipeline orchestrates the export: load catalog, then per article
// resolve translations, normalize, filter, chunk, and write. Processing
// is sequential; output order follows the article listing and, within an
// article, locale-then-chunk-index order.
type Pipeline struct {
	loader    *helpcenter.Loader
	converter htmlmd.Converter
	chunker   *chunker.Chunker
	filter    Filter
	baseURL   string
	outDir    string
	pause     time.Duration
	logger    zerolog.Logger
}

// NewPipeline creates a pipeline writing to outDir.
func NewPipeline(
	loader *helpcenter.Loader,
	converter htmlmd.Converter,
	textChunker *chunker.Chunker,
	filter Filter,
	baseURL string,
	outDir string,
) *Pipeline {
	return &Pipeline{
		loader:    loader,
		converter: converter,
		chunker:   textChunker,
		filter:    filter,
		baseURL:   baseURL,
		outDir:    outDir,
		pause:     200 * time.Millisecond,
		logger:    logging.NewLogger("pipeline"),
	}
}

// SetPause overrides the politeness pause (for testing).
func (p *Pipeline) SetPause(d time.Duration) {
	p.pause = d
}

// Run executes one export. A single article's failure is logged and
// skipped; only catalog-level failures abort the run.
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	if err := os.MkdirAll(p.outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	summary := &Summary{
		ArticlesPath: filepath.Join(p.outDir, ArticlesFile),
		ChunksPath:   filepath.Join(p.outDir, ChunksFile),
	}

	articlesOut, err := NewWriter(summary.ArticlesPath)
	if err != nil {
		return nil, err
	}
	defer articlesOut.Close()

	chunksOut, err := NewWriter(summary.ChunksPath)
	if err != nil {
		return nil, err
	}
	defer chunksOut.Close()

	p.logger.Info().Msg("Fetching categories, sections, and articles")

	categories, err := p.loader.Categories(ctx)
	if err != nil {
		return nil, err
	}
	sections, err := p.loader.Sections(ctx)
	if err != nil {
		return nil, err
	}
	articles, err := p.loader.Articles(ctx)
	if err != nil {
		return nil, err
	}
	summary.Articles = len(articles)

	p.logger.Info().
		Int("categories", len(categories)).
		Int("sections", len(sections)).
		Int("articles", len(articles)).
		Msg("Catalog loaded")

	normalizer := NewNormalizer(sections, categories, p.converter, p.baseURL)

	for i, article := range articles {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		if err := p.processArticle(ctx, normalizer, article, summary, articlesOut, chunksOut); err != nil {
			p.logger.Error().
				Err(err).
				Int64("article_id", article.ID).
				Msg("Article failed, skipping")
			articlesSkipped.WithLabelValues("error").Inc()
			summary.Failed++
			continue
		}

		if (i+1)%progressEvery == 0 {
			p.logger.Info().
				Int("processed", i+1).
				Int("total", len(articles)).
				Msg("Export progress")
			time.Sleep(p.pause)
		}
	}

	if err := articlesOut.Close(); err != nil {
		return summary, fmt.Errorf("close article stream: %w", err)
	}
	if err := chunksOut.Close(); err != nil {
		return summary, fmt.Errorf("close chunk stream: %w", err)
	}

	summary.Records = articlesOut.Lines()
	summary.Chunks = chunksOut.Lines()

	p.logger.Info().
		Int("articles", summary.Articles).
		Int("exported", summary.Exported).
		Int("filtered", summary.Filtered).
		Int("failed", summary.Failed).
		Int("records", summary.Records).
		Int("chunks", summary.Chunks).
		Str("articles_file", summary.ArticlesPath).
		Str("chunks_file", summary.ChunksPath).
		Msg("Export complete")

	return summary, nil
}

// processArticle handles one article end to end: sub-resources,
// normalization, allow-list filter, record and chunk writes.
func (p *Pipeline) processArticle(
	ctx context.Context,
	normalizer *Normalizer,
	article helpcenter.Article,
	summary *Summary,
	articlesOut, chunksOut *Writer,
) error {
	translations := p.loader.Translations(ctx, article.ID)
	attachments := p.loader.Attachments(ctx, article.ID)

	bc := normalizer.Breadcrumb(article)
	if !p.filter.Allow(bc.CategoryName, bc.SectionName) {
		p.logger.Debug().
			Int64("article_id", article.ID).
			Msg("Article excluded by allow-list")
		articlesSkipped.WithLabelValues("filtered").Inc()
		summary.Filtered++
		return nil
	}

	for _, rec := range normalizer.Records(article, translations, attachments) {
		if err := articlesOut.Write(rec); err != nil {
			return err
		}
		recordsWritten.Inc()

		for idx, text := range p.chunker.Chunk(rec.BodyMarkdown) {
			if err := chunksOut.Write(buildChunk(rec, idx, text)); err != nil {
				return err
			}
			chunksWritten.Inc()
		}
	}

	summary.Exported++
	articlesProcessed.Inc()
	return nil
}
