package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"famtree/internal/catalog"
	"famtree/internal/config"
	"famtree/internal/fileutil"
	"famtree/internal/gedcom"
	"famtree/internal/kinship"
	"famtree/internal/layout"
	"famtree/internal/logging"
	"famtree/internal/manifest"
	"famtree/internal/records"
	"famtree/internal/site"
	"famtree/internal/store"
	"famtree/internal/views"
)

// ErrLocked is returned when another run holds the state lock.
var ErrLocked = errors.New("another generator run is in progress")

// Options tune a single run.
type Options struct {
	// Clean removes the people and surname directories before writing.
	Clean bool
	// Workers overrides cfg.Render.Workers when positive.
	Workers int
}

// Summary reports the outcome of a run.
type Summary struct {
	RunID              string
	OutputDir          string
	People             int
	Surnames           int
	Documents          int
	FallbackLinks      int
	Duplicates         []string
	Collisions         []string
	AlternativeParents int
	Duration           time.Duration
	Drift              *store.DriftReport
}

// Generator produces a site from the configured GEDCOM file.
type Generator struct {
	cfg    *config.Config
	logger *slog.Logger
}

// New returns a generator. A nil logger discards output.
func New(cfg *config.Config, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Generator{cfg: cfg, logger: logging.NewComponentLogger(logger, "generator")}
}

// Run executes one generation while holding the state lock.
func (g *Generator) Run(ctx context.Context, opts Options) (*Summary, error) {
	if err := g.cfg.EnsureDirectories(); err != nil {
		return nil, err
	}

	lock := flock.New(g.cfg.LockPath())
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (lock %s)", ErrLocked, g.cfg.LockPath())
	}
	defer func() { _ = lock.Unlock() }()

	run := store.Run{
		ID:         uuid.NewString(),
		StartedAt:  time.Now(),
		GEDCOMPath: g.cfg.Paths.GEDCOMFile,
		OutputDir:  g.cfg.Paths.OutputDir,
	}
	ctx = logging.WithRunID(ctx, run.ID)
	logger := logging.WithContext(ctx, g.logger)
	logger.Info("generation started",
		logging.String("gedcom", run.GEDCOMPath),
		logging.String("output", run.OutputDir),
	)

	summary, table, genErr := g.generate(ctx, logger, &run, opts)
	run.FinishedAt = time.Now()

	if genErr != nil {
		run.Status = store.StatusFailed
		run.ErrorMessage = genErr.Error()
		logger.Error("generation failed", logging.Error(genErr))
		if g.cfg.History.Enabled {
			if _, err := g.record(ctx, run, nil); err != nil {
				logger.Warn("failed to record failed run", logging.Error(err))
			}
		}
		return nil, genErr
	}

	run.Status = store.StatusSucceeded
	summary.Duration = run.FinishedAt.Sub(run.StartedAt)
	if g.cfg.History.Enabled {
		report, err := g.record(ctx, run, table.Entries())
		if err != nil {
			return nil, err
		}
		summary.Drift = report
		g.reportDrift(logger, report)
	}

	logger.Info("generation complete",
		logging.Int("people", summary.People),
		logging.Int("surnames", summary.Surnames),
		logging.Int("documents", summary.Documents),
		logging.Int("fallback_links", summary.FallbackLinks),
		logging.Duration("duration", summary.Duration),
	)
	return summary, nil
}

func (g *Generator) generate(ctx context.Context, logger *slog.Logger, run *store.Run, opts Options) (*Summary, *catalog.Table, error) {
	digest, _, err := fileutil.HashFile(g.cfg.Paths.GEDCOMFile)
	if err != nil {
		return nil, nil, fmt.Errorf("hash gedcom: %w", err)
	}
	run.GEDCOMSHA256 = digest

	src, err := gedcom.Load(g.cfg.Paths.GEDCOMFile)
	if err != nil {
		return nil, nil, err
	}
	policy, err := kinship.ParsePolicy(g.cfg.Site.ParentPolicy)
	if err != nil {
		return nil, nil, err
	}

	table := catalog.Build(src, g.planner())
	for _, pointer := range table.Duplicates() {
		logging.WarnWithContext(logger, "duplicate individual pointer", "duplicate_pointer",
			logging.String(logging.FieldPointer, pointer),
			logging.String(logging.FieldImpact, "only the first record is published"),
		)
	}
	for _, pointer := range table.Collisions() {
		entry, _ := table.Lookup(pointer)
		logging.WarnWithContext(logger, "link path collision", "path_collision",
			logging.String(logging.FieldPointer, pointer),
			logging.String("link_path", entry.LinkPath),
			logging.String(logging.FieldImpact, "person moved to the identifier path"),
		)
	}
	logger.Info("catalog built", logging.Int("people", table.Len()))

	if opts.Clean {
		if err := fileutil.RemoveDirs(g.cfg.Paths.OutputDir, g.cfg.Site.PeopleDir, g.cfg.Site.SurnamesDir); err != nil {
			return nil, nil, fmt.Errorf("clean output: %w", err)
		}
		logger.Info("output cleaned")
	}

	renderer, err := site.New(site.Options{Markdown: g.cfg.Site.NotesMarkdown, Generated: run.StartedAt})
	if err != nil {
		return nil, nil, err
	}

	var fallbacks atomic.Int64
	builder := views.NewBuilder(table, kinship.NewResolver(src, policy), views.Options{
		Title:       g.cfg.Site.Title,
		Generations: g.cfg.Site.AncestorGenerations,
		OnFallback: func(doc string, target *records.Person) {
			fallbacks.Add(1)
			logging.WarnWithContext(logger, "link target missing from table", "fallback_link",
				logging.String("document", doc),
				logging.String(logging.FieldPointer, target.Pointer),
			)
		},
	})

	var alternatives atomic.Int64
	entries := table.Entries()
	jobs := make([]job, 0, len(entries))
	for _, entry := range entries {
		p, ok := src.Individual(entry.Pointer)
		if !ok {
			continue
		}
		jobs = append(jobs, func(ctx context.Context) error {
			view := builder.Person(p)
			if view.Parents != nil && view.Parents.Alternatives > 0 {
				alternatives.Add(1)
				logging.WarnWithContext(logger, "person has several parent unions", "multiple_parent_unions",
					logging.String(logging.FieldPointer, p.Pointer),
					logging.Int("alternatives", view.Parents.Alternatives),
					logging.String(logging.FieldImpact, "parents chosen by the configured policy"),
				)
			}
			if err := renderer.WritePerson(view); err != nil {
				return fmt.Errorf("person %s: %w", p.Pointer, err)
			}
			return nil
		})
	}
	if err := runPool(ctx, g.workers(opts), jobs); err != nil {
		return nil, nil, err
	}
	logger.Info("person pages written", logging.Int("pages", len(jobs)))

	if err := renderer.WriteRoster(builder.Roster()); err != nil {
		return nil, nil, err
	}
	if err := renderer.WriteSurnameIndex(builder.SurnameIndex()); err != nil {
		return nil, nil, err
	}
	pages := builder.SurnamePages()
	for _, page := range pages {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		if err := renderer.WriteSurnamePage(page); err != nil {
			return nil, nil, fmt.Errorf("surname %s: %w", page.Key, err)
		}
	}
	planner := table.Planner()
	if err := site.WriteStylesheet(planner.OutputPath(views.DefaultStylePath)); err != nil {
		return nil, nil, err
	}

	if g.cfg.Site.WriteManifest {
		m := manifest.FromTable(table)
		m.RunID = run.ID
		m.GeneratedAt = run.StartedAt.UTC()
		m.Title = g.cfg.Site.Title
		m.Source = g.cfg.Paths.GEDCOMFile
		m.SourceSHA256 = digest
		m.Stylesheet = views.DefaultStylePath
		if err := manifest.Write(planner.OutputPath(manifest.FileName), m); err != nil {
			return nil, nil, err
		}
	}

	run.People = len(jobs)
	run.Surnames = len(pages)
	run.FallbackLinks = int(fallbacks.Load())

	return &Summary{
		RunID:              run.ID,
		OutputDir:          g.cfg.Paths.OutputDir,
		People:             run.People,
		Surnames:           run.Surnames,
		Documents:          run.People + run.Surnames + 2,
		FallbackLinks:      run.FallbackLinks,
		Duplicates:         table.Duplicates(),
		Collisions:         table.Collisions(),
		AlternativeParents: int(alternatives.Load()),
	}, table, nil
}

func (g *Generator) record(ctx context.Context, run store.Run, entries []catalog.Entry) (*store.DriftReport, error) {
	st, err := store.Open(g.cfg)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	defer st.Close()

	if err := st.RecordRun(ctx, run, entries); err != nil {
		return nil, err
	}
	if run.Status != store.StatusSucceeded {
		return nil, nil
	}
	return st.Drift(ctx)
}

func (g *Generator) reportDrift(logger *slog.Logger, report *store.DriftReport) {
	if report == nil || len(report.Changes) == 0 {
		return
	}
	attrs := []logging.Attr{
		logging.String("previous_run", report.Previous.ID),
		logging.Int("changes", len(report.Changes)),
	}
	if report.SameInput() {
		logging.WarnWithContext(logger, "link paths changed for identical input", "link_drift",
			append(attrs, logging.String(logging.FieldImpact, "external links to these pages may break"))...)
		return
	}
	logger.Info("link paths changed since previous run", logging.Args(attrs...)...)
}

func (g *Generator) planner() *layout.Planner {
	return layout.NewPlanner(
		g.cfg.Paths.OutputDir,
		g.cfg.Site.PeopleDir,
		g.cfg.Site.SurnamesDir,
		g.cfg.Site.Extension,
		g.cfg.Site.IDPrefixLength,
	)
}

func (g *Generator) workers(opts Options) int {
	if opts.Workers > 0 {
		return opts.Workers
	}
	return max(g.cfg.Render.Workers, 1)
}

// Inspection is the resolved state of one person without writing anything.
type Inspection struct {
	Entry catalog.Entry
	View  views.PersonView
}

// Inspect loads the GEDCOM file and resolves the person with pointer. The
// pointer may be given with or without its '@' delimiters.
func (g *Generator) Inspect(pointer string) (*Inspection, error) {
	src, err := gedcom.Load(g.cfg.Paths.GEDCOMFile)
	if err != nil {
		return nil, err
	}
	policy, err := kinship.ParsePolicy(g.cfg.Site.ParentPolicy)
	if err != nil {
		return nil, err
	}
	pointer = "@" + strings.Trim(strings.TrimSpace(pointer), "@") + "@"
	p, ok := src.Individual(pointer)
	if !ok {
		return nil, fmt.Errorf("individual %s not found", pointer)
	}
	table := catalog.Build(src, g.planner())
	builder := views.NewBuilder(table, kinship.NewResolver(src, policy), views.Options{
		Title:       g.cfg.Site.Title,
		Generations: g.cfg.Site.AncestorGenerations,
	})
	entry, _ := table.Lookup(pointer)
	return &Inspection{Entry: entry, View: builder.Person(p)}, nil
}
