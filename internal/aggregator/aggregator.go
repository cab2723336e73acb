// Package aggregator fetches all sources, extracts their items and writes them as a single combined document.
package aggregator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"runtime/debug"
	"time"

	logging "github.com/KonishchevDmitry/go-easy-logging"
	"golang.org/x/sync/errgroup"

	"github.com/KonishchevDmitry/feedmerge/internal/util"
	"github.com/KonishchevDmitry/feedmerge/pkg/cache"
	"github.com/KonishchevDmitry/feedmerge/pkg/extract"
	"github.com/KonishchevDmitry/feedmerge/pkg/feed"
	"github.com/KonishchevDmitry/feedmerge/pkg/fetch"
	"github.com/KonishchevDmitry/feedmerge/pkg/storage"
)

type Aggregator struct {
	sources []feed.Source
	options options
	storage *storage.Dir
	metrics
}

func New(sources *feed.Registry, opts ...Option) *Aggregator {
	options := getOptions(opts)
	return &Aggregator{
		sources: sources.Sources(),
		options: options,
		storage: storage.New(options.dir),
		metrics: makeMetrics(),
	}
}

// Run executes the whole pipeline once. In strict mode the first failure is returned and the combined output isn't
// written. In contain mode the combined output is written from the sources which succeeded and the returned error
// combines all failures. Failures to write the combined output are always fatal.
func (a *Aggregator) Run(ctx context.Context) (*Report, error) {
	startTime := time.Now()
	a.startTime.Set(float64(startTime.Unix()))
	defer func() {
		a.runTime.Set(time.Since(startTime).Seconds())
	}()

	report := newReport()

	logging.L(ctx).Infof("Fetching %d feeds...", len(a.sources))
	documents := cache.New[[]byte]()
	fetched, err := a.forEachSource(ctx, report, nil, func(ctx context.Context, index int, source feed.Source) *Failure {
		return a.fetch(ctx, documents, index, source)
	})
	if err != nil {
		return report, err
	}
	if hits := documents.Hits(); hits != 0 {
		logging.L(ctx).Debugf("%d documents are shared between feeds and have been fetched once.", hits)
	}

	results := make([][]extract.Item, len(a.sources))
	parsed, err := a.forEachSource(ctx, report, fetched, func(ctx context.Context, index int, source feed.Source) *Failure {
		items, failure := a.parse(ctx, index, source)
		results[index] = items
		return failure
	})
	if err != nil {
		return report, err
	}

	var items []extract.Item
	for index, source := range a.sources {
		if parsed[index] {
			report.SourceItems[source.Name] = len(results[index])
			items = append(items, results[index]...)
		}
	}
	report.Items = len(items)
	a.items.Set(float64(len(items)))

	data, err := Marshal(items)
	if err != nil {
		return report, fmt.Errorf("failed to serialize the combined feed: %w", err)
	}

	if err := a.storage.Write(a.options.output, data); err != nil {
		return report, err
	}
	logging.L(ctx).Infof("%d items from %d feeds saved to %s.", len(items), len(report.SourceItems), a.storage.Path(a.options.output))

	return report, report.Err()
}

// forEachSource runs the stage for the selected sources (all of them if selection is nil) and returns which of
// them have succeeded.
func (a *Aggregator) forEachSource(
	ctx context.Context, report *Report, selection []bool,
	stage func(ctx context.Context, index int, source feed.Source) *Failure,
) ([]bool, error) {
	succeeded := make([]bool, len(a.sources))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(a.options.concurrency)

	for index, source := range a.sources {
		if selection != nil && !selection[index] {
			continue
		}

		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			failure := stage(groupCtx, index, source)
			if failure == nil {
				succeeded[index] = true
				return nil
			}

			if a.options.mode == ModeStrict {
				return failure
			}

			report.addFailure(failure)
			if util.IsTemporaryError(failure) {
				logging.L(ctx).Warnf("%s. Skipping it.", failure)
			} else {
				logging.L(ctx).Errorf("%s. Skipping it.", failure)
			}

			return nil
		})
	}

	err := group.Wait()

	// Only the failure which has stopped the run is reported in strict mode
	var failure *Failure
	if errors.As(err, &failure) {
		report.addFailure(failure)
	}

	return succeeded, err
}

func (a *Aggregator) fetch(ctx context.Context, documents *cache.Cache[[]byte], index int, source feed.Source) *Failure {
	observers := a.observers(source.Name)
	ctx = fetch.WithContext(ctx, observers.fetchDuration)

	data, err := documents.Cached(ctx, source.URL, func(ctx context.Context, url *url.URL) ([]byte, error) {
		return fetch.Document(ctx, url, a.options.fetchOptions...)
	})
	observers.sourceStatus.WithLabelValues(string(StageFetch), util.ErrorStatus(err)).Inc()
	if err != nil {
		return &Failure{Stage: StageFetch, Source: source.Name, Err: err, index: index}
	}

	if err := a.storage.Write(source.Name, data); err != nil {
		observers.sourceStatus.WithLabelValues(string(StageSave), util.StatusError).Inc()
		return &Failure{Stage: StageSave, Source: source.Name, Err: err, index: index}
	}

	logging.L(ctx).Infof("Feed from %s saved to %s.", source.URL, a.storage.Path(source.Name))
	return nil
}

func (a *Aggregator) parse(ctx context.Context, index int, source feed.Source) (_ []extract.Item, retFailure *Failure) {
	observers := a.observers(source.Name)

	data, err := a.storage.Read(source.Name)
	if err != nil {
		observers.sourceStatus.WithLabelValues(string(StageRead), util.StatusError).Inc()
		return nil, &Failure{Stage: StageRead, Source: source.Name, Err: err, index: index}
	}

	defer func() {
		if err := recover(); err != nil {
			stack := debug.Stack()
			retFailure = &Failure{
				Stage:  StageParse,
				Source: source.Name,
				Err:    fmt.Errorf("item extraction has panicked: %v\n%s", err, bytes.TrimRight(stack, "\n")),
				index:  index,
			}
			observers.sourceStatus.WithLabelValues(string(StageParse), util.StatusError).Inc()
		}
	}()

	items, err := extract.Document(data, a.options.extractOptions...)
	observers.sourceStatus.WithLabelValues(string(StageParse), util.ErrorStatus(err)).Inc()
	if err != nil {
		return nil, &Failure{Stage: StageParse, Source: source.Name, Err: err, index: index}
	}

	observers.sourceItems.Set(float64(len(items)))
	logging.L(ctx).Debugf("%d items extracted from %s.", len(items), source.Name)

	return items, nil
}
