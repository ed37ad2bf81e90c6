package minimize

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/MattePalte/Bugs-Quantum-Computing-Platforms/pkg/textutil"
)

// Metrics receives pipeline counters. The observability package provides a
// Prometheus-backed implementation; the zero pipeline uses a no-op.
type Metrics interface {
	CommitProcessed(status Status)
	FileExcluded(reason ExclusionReason)
	RecordsEmitted(records, changeUnits int)
}

type nopMetrics struct{}

func (nopMetrics) CommitProcessed(Status)       {}
func (nopMetrics) FileExcluded(ExclusionReason) {}
func (nopMetrics) RecordsEmitted(int, int)      {}

// Pipeline wires the per-file stages together: classify, normalize,
// resolve, count. Every stage is a pure function of its inputs, so file
// pairs are evaluated in parallel; results are assembled in path order,
// which keeps the emitted record set byte-identical for any worker count.
type Pipeline struct {
	classifier *Classifier
	normalizer *Normalizer
	resolver   *Resolver
	counter    *Counter

	workers int
	logger  *slog.Logger
	metrics Metrics
}

// NewPipeline builds a pipeline with the given path rules and parallelism.
// A non-positive workers value defaults to the CPU count; nil logger and
// metrics default to discards.
func NewPipeline(rules *PathRules, workers int, logger *slog.Logger, metrics Metrics) *Pipeline {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	if logger == nil {
		logger = slog.Default()
	}

	if metrics == nil {
		metrics = nopMetrics{}
	}

	return &Pipeline{
		classifier: NewClassifier(rules),
		normalizer: NewNormalizer(),
		resolver:   NewResolver(),
		counter:    NewCounter(),
		workers:    workers,
		logger:     logger,
		metrics:    metrics,
	}
}

// fileEval is the per-pair evaluation result, indexed by the pair's
// position in the sorted order.
type fileEval struct {
	outcome   Outcome
	verdict   Verdict
	warning   *Warning
	skipped   bool
	ambiguous bool
}

// Run processes one commit and returns its result. Only a zero-file
// non-merge commit fails outright; per-file problems degrade the status to
// partial and skip just the affected file.
func (p *Pipeline) Run(ctx context.Context, commit *Commit) (*CommitResult, error) {
	result := &CommitResult{
		CommitID:      commit.ID(),
		Repo:          commit.Repo,
		Hash:          commit.Hash,
		Status:        StatusOk,
		FilesExcluded: make(map[ExclusionReason]int),
	}

	pairs := commit.SortedPairs()

	if len(pairs) == 0 {
		if !commit.IsMerge {
			result.Status = StatusFailed
			result.FailureReason = ErrZeroFileCommit.Error()
			p.metrics.CommitProcessed(result.Status)

			return result, fmt.Errorf("commit %s: %w", commit.ID(), ErrZeroFileCommit)
		}

		p.metrics.CommitProcessed(result.Status)

		return result, nil
	}

	evals := make([]fileEval, len(pairs))

	p.evalAll(ctx, commit, pairs, evals)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("commit %s: %w", commit.ID(), err)
	}

	p.assemble(commit, pairs, evals, result)

	p.metrics.CommitProcessed(result.Status)

	return result, nil
}

func (p *Pipeline) evalAll(ctx context.Context, commit *Commit, pairs []FilePair, evals []fileEval) {
	indexes := make(chan int)

	var wg sync.WaitGroup

	for range p.workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for i := range indexes {
				evals[i] = p.evalPair(commit, pairs[i])
			}
		}()
	}

	for i := range pairs {
		select {
		case indexes <- i:
		case <-ctx.Done():
			close(indexes)
			wg.Wait()

			return
		}
	}

	close(indexes)
	wg.Wait()
}

func (p *Pipeline) evalPair(commit *Commit, pair FilePair) fileEval {
	if warning := missingSide(pair); warning != nil {
		p.logger.Warn("skipping file with missing side",
			"commit", commit.ID(), "path", pair.Path)

		return fileEval{skipped: true, warning: warning}
	}

	if warning := undecodable(pair); warning != nil {
		p.logger.Warn("excluding undecodable file",
			"commit", commit.ID(), "path", pair.Path)

		return fileEval{outcome: Excluded(ReasonEncoding), warning: warning}
	}

	outcome := p.classifier.Classify(pair, commit.BugInTestCode)
	if !outcome.Included {
		return fileEval{outcome: outcome}
	}

	normalized, ambiguous := p.normalizer.Normalize(pair, commit.BugInTestCode)

	eval := fileEval{
		outcome:   outcome,
		verdict:   p.resolver.Resolve(normalized),
		ambiguous: ambiguous,
	}

	if ambiguous {
		// The line count tells the curator how much manual review the
		// flagged file will take.
		p.logger.Warn("unknown language, conservative normalization applied",
			"commit", commit.ID(), "path", pair.Path, "language", pair.Language,
			"lines", textutil.CountLines([]byte(pair.After)))

		eval.warning = &Warning{
			Path:    pair.Path,
			Message: "ambiguous language: comments not stripped, review manually",
		}
	}

	return eval
}

func (p *Pipeline) assemble(commit *Commit, pairs []FilePair, evals []fileEval, result *CommitResult) {
	var verdicts []FileVerdict

	for i := range evals {
		if evals[i].warning != nil {
			result.Warnings = append(result.Warnings, *evals[i].warning)
			result.Status = StatusPartial
		}

		if evals[i].skipped {
			continue
		}

		if !evals[i].outcome.Included {
			result.FilesExcluded[evals[i].outcome.Reason]++
			p.metrics.FileExcluded(evals[i].outcome.Reason)

			continue
		}

		result.FilesIncluded++

		verdicts = append(verdicts, FileVerdict{Path: pairs[i].Path, Verdict: evals[i].verdict})
	}

	result.Records = p.counter.Count(commit, verdicts)
	result.TotalChangeUnits = Total(result.Records)

	for _, record := range result.Records {
		result.TotalModifiedLines += record.ModifiedLines
	}

	p.metrics.RecordsEmitted(len(result.Records), result.TotalChangeUnits)
}

// missingSide reports a mining defect: a side is absent although the pair
// is not a pure addition or deletion.
func missingSide(pair FilePair) *Warning {
	if pair.HasBefore == pair.HasAfter {
		return nil
	}

	if !pair.HasBefore && !pair.PureAddition {
		return &Warning{Path: pair.Path, Message: ErrMissingSide.Error()}
	}

	if !pair.HasAfter && !pair.PureDeletion {
		return &Warning{Path: pair.Path, Message: ErrMissingSide.Error()}
	}

	return nil
}

// undecodable reports files that cannot be treated as text under the
// expected encoding. Kept distinct from the empty exclusion so the curator
// can inspect them.
func undecodable(pair FilePair) *Warning {
	for _, side := range []string{pair.Before, pair.After} {
		if side == "" {
			continue
		}

		if !textutil.IsText([]byte(side)) {
			return &Warning{Path: pair.Path, Message: "file is not valid text"}
		}
	}

	return nil
}
