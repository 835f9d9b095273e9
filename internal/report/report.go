// Package report is the presentation layer: core components emit progress
// events through the Reporter interface and never print on their own.
package report

// Reporter consumes progress events from the pipeline. Implementations must
// be cheap; events fire once per pair and once per target file.
type Reporter interface {
	// PhaseStarted announces a pipeline phase. total is the number of items
	// the phase will process, or -1 when unknown.
	PhaseStarted(name string, total int)

	// PairMapped fires for every recorded old->new correlation.
	PairMapped(stem, old, new string)

	// FileProcessed fires for every target file the substitution engine
	// visited.
	FileProcessed(path string, modified bool, err error)

	// RunFinished reports the final counts.
	RunFinished(mappings, processed, modified, failed int)
}

// Nop is a Reporter that discards all events. Useful in tests and when the
// tool runs non-interactively.
type Nop struct{}

func (Nop) PhaseStarted(string, int)          {}
func (Nop) PairMapped(string, string, string) {}
func (Nop) FileProcessed(string, bool, error) {}
func (Nop) RunFinished(int, int, int, int)    {}
