// Package importer reconciles the recruitment spreadsheet tabs with the
// stored candidates.
package importer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"candidate-sync/internal/runlock"
	"candidate-sync/internal/sheet"
	"candidate-sync/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrLoadFailed aborts a run before any write: there is no baseline to
	// merge against.
	ErrLoadFailed = errors.New("load existing candidates")
	// ErrRunInProgress is returned when another run holds the run lock.
	ErrRunInProgress = errors.New("import run already in progress")
)

// Fetcher returns the CSV text of one sheet tab.
type Fetcher interface {
	FetchTab(ctx context.Context, sheetName string) (string, error)
}

type Config struct {
	Layouts    []TabLayout
	BatchSize  int
	BatchPause time.Duration
}

// Importer drives one reconciliation pass over all configured tabs.
type Importer struct {
	cfg     Config
	store   storage.Store
	fetcher Fetcher
	lock    runlock.Lock
	reports *ReportStore
	logger  *zap.Logger
	now     func() time.Time
}

// New builds an importer. reports may be nil.
func New(cfg Config, st storage.Store, f Fetcher, lock runlock.Lock, reports *ReportStore, logger *zap.Logger) *Importer {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 25
	}
	if len(cfg.Layouts) == 0 {
		cfg.Layouts = DefaultLayouts()
	}
	if lock == nil {
		lock = &runlock.Local{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{
		cfg:     cfg,
		store:   st,
		fetcher: f,
		lock:    lock,
		reports: reports,
		logger:  logger,
		now:     time.Now,
	}
}

type fetched struct {
	body string
	err  error
}

// Run imports every tab once. Per-row, per-tab and per-write failures are
// recorded in the report; only a failure to start returns an error.
func (imp *Importer) Run(ctx context.Context) (*Report, error) {
	release, err := imp.lock.Acquire(ctx)
	if errors.Is(err, runlock.ErrHeld) {
		return nil, ErrRunInProgress
	}
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	defer release()

	report := &Report{RunID: uuid.NewString(), StartedAt: imp.now()}
	log := imp.logger.With(zap.String("run_id", report.RunID))
	log.Info("Import started", zap.Int("tabs", len(imp.cfg.Layouts)))

	existing, err := imp.store.List(ctx, storage.OrderCreatedAsc)
	if err != nil {
		log.Error("Failed to load existing candidates", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}
	log.Info("Loaded existing candidates", zap.Int("count", len(existing)))

	results := imp.fetchAll(ctx)

	merger := NewMerger(existing)
	var plan Plan
	tabs := make(map[string]*TabReport, len(imp.cfg.Layouts))
	order := make([]*TabReport, 0, len(imp.cfg.Layouts))
	for i, l := range imp.cfg.Layouts {
		tr := newTabReport(l)
		tabs[l.Tab] = tr
		order = append(order, tr)
		imp.processTab(l, results[i], existing, merger, &plan, tr, log)
	}

	log.Info("Reconciled sheet rows",
		zap.Int("to_create", len(plan.ToCreate)),
		zap.Int("to_update", len(plan.ToUpdate)))

	imp.dispatchUpdates(ctx, plan.ToUpdate, tabs, report, log)
	imp.dispatchCreates(ctx, plan.ToCreate, tabs, report, log)

	for _, tr := range order {
		report.Tabs = append(report.Tabs, *tr)
	}
	report.total()
	report.FinishedAt = imp.now()

	if imp.reports != nil {
		if err := imp.reports.Save(ctx, report); err != nil {
			log.Warn("Failed to store import report", zap.Error(err))
		}
	}

	log.Info("Import finished",
		zap.Int("created", report.Created),
		zap.Int("updated", report.Updated),
		zap.Int("unchanged", report.Unchanged),
		zap.Int("skipped", report.Skipped),
		zap.Int("errors", report.Errors),
		zap.Duration("took", report.FinishedAt.Sub(report.StartedAt)))
	return report, nil
}

// fetchAll downloads all tabs concurrently. Results keep layout order.
func (imp *Importer) fetchAll(ctx context.Context) []fetched {
	results := make([]fetched, len(imp.cfg.Layouts))
	var g errgroup.Group
	for i, l := range imp.cfg.Layouts {
		g.Go(func() error {
			body, err := imp.fetcher.FetchTab(ctx, l.SheetName)
			results[i] = fetched{body: body, err: err}
			return nil
		})
	}
	g.Wait() //nolint:errcheck
	return results
}

func (imp *Importer) processTab(l TabLayout, res fetched, existing []storage.Candidate, merger *Merger, plan *Plan, tr *TabReport, log *zap.Logger) {
	log = log.With(zap.String("tab", l.Tab))

	if res.err != nil {
		log.Warn("Tab unavailable, skipping", zap.Error(res.err))
		tr.fail(ReasonFetchFailed, 0)
		return
	}

	rows, err := sheet.Tokenizer{SkipBlankRows: l.SkipBlankRows, Strict: l.StrictQuotes}.Parse(res.body)
	if err != nil {
		log.Warn("Tab could not be parsed", zap.Error(err))
		tr.fail(ReasonMalformedCSV, 0)
		return
	}
	if len(rows) < 2 {
		log.Info("No data rows")
		tr.fail(ReasonNoDataRows, 0)
		return
	}
	tr.FetchedRows = len(rows) - 1

	ci := Resolve(l, rows[0])
	if ci.missingRequired(l.Kind) {
		log.Warn("Required columns not found", zap.Strings("headers", sheet.NormalizeHeaders(rows[0])))
		tr.fail(ReasonMissingRequiredColumns, tr.FetchedRows)
		return
	}

	for n, row := range rows[1:] {
		if l.Kind == KindCVLinks {
			link, reason := MapCVRow(row, ci)
			if reason != "" {
				tr.skipRow(reason)
				continue
			}
			u, ok := MatchCVLink(existing, link, l.Tab)
			if !ok {
				log.Info("No candidate for CV link", zap.String("name", link.Name), zap.String("job_title", link.JobTitle))
				tr.skipRow(ReasonNoMatch)
				continue
			}
			if u.Update.Empty() {
				tr.Unchanged++
				continue
			}
			plan.ToUpdate = append(plan.ToUpdate, u)
			continue
		}

		in, reason := MapRow(row, ci, l)
		if reason != "" {
			log.Debug("Row dropped", zap.Int("row", n+2), zap.String("reason", string(reason)))
			tr.skipRow(reason)
			continue
		}
		switch d := merger.Decide(in); d.Action {
		case ActionCreate:
			plan.ToCreate = append(plan.ToCreate, d.Create)
		case ActionUpdate:
			plan.ToUpdate = append(plan.ToUpdate, d.Update)
		case ActionUnchanged:
			tr.Unchanged++
		case ActionSkipDeleted:
			tr.skipRow(ReasonDeletedByApp)
		case ActionDuplicate:
			tr.skipRow(ReasonDuplicate)
		}
	}
}

// dispatchUpdates writes updates one by one; a failed update is counted and
// the next one proceeds.
func (imp *Importer) dispatchUpdates(ctx context.Context, updates []PendingUpdate, tabs map[string]*TabReport, report *Report, log *zap.Logger) {
	for _, u := range updates {
		if _, err := imp.store.Update(ctx, u.ID, u.Update); err != nil {
			report.Errors++
			log.Warn("Update failed", zap.String("id", u.ID), zap.String("name", u.Name), zap.Error(err))
			continue
		}
		if tr := tabs[u.Tab]; tr != nil {
			tr.Updated++
		}
	}
}

// dispatchCreates bulk-creates in batches with a pause between batches. A
// failed batch counts as one error and the next batch proceeds.
func (imp *Importer) dispatchCreates(ctx context.Context, creates []storage.Candidate, tabs map[string]*TabReport, report *Report, log *zap.Logger) {
	size := imp.cfg.BatchSize
	for start := 0; start < len(creates); start += size {
		end := start + size
		if end > len(creates) {
			end = len(creates)
		}
		batch := creates[start:end]

		if _, err := imp.store.BulkCreate(ctx, batch); err != nil {
			report.Errors++
			log.Warn("Batch create failed", zap.Int("batch", start/size+1), zap.Int("size", len(batch)), zap.Error(err))
		} else {
			for _, c := range batch {
				if tr := tabs[c.Position]; tr != nil {
					tr.Created++
				}
			}
		}

		if end < len(creates) {
			pause(ctx, imp.cfg.BatchPause)
		}
	}
}

func pause(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
