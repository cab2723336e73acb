package aggregator

import (
	"cmp"
	"fmt"
	"slices"

	"go.uber.org/multierr"

	"github.com/KonishchevDmitry/feedmerge/internal/util"
)

type Stage string

const (
	StageFetch Stage = "fetch"
	StageSave  Stage = "save"
	StageRead  Stage = "read"
	StageParse Stage = "parse"
)

// Failure is an error of a single source at a single stage of the pipeline.
type Failure struct {
	Stage  Stage
	Source string
	Err    error

	index int
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s stage has failed for %s: %s", f.Stage, f.Source, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

type Report struct {
	// Items is the number of items in the combined output.
	Items int
	// SourceItems is the number of items extracted from each parsed source.
	SourceItems map[string]int
	// Failures are ordered by source position.
	Failures []*Failure

	lock util.GuardedLock
}

func newReport() *Report {
	return &Report{SourceItems: make(map[string]int)}
}

func (r *Report) addFailure(failure *Failure) {
	r.lock.Do(func() {
		r.Failures = append(r.Failures, failure)
		slices.SortStableFunc(r.Failures, func(a, b *Failure) int {
			return cmp.Compare(a.index, b.index)
		})
	})
}

// Err combines all failures into one error or returns nil if there are no failures.
func (r *Report) Err() error {
	lock := r.lock.Lock()
	defer lock.Unlock()

	var err error
	for _, failure := range r.Failures {
		err = multierr.Append(err, failure)
	}
	return err
}
