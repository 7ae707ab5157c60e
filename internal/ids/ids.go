// Package ids assigns stable hierarchical identifiers of the form
// "{fileIndex}.{unitIndex}" to emitted units.
package ids

import "fmt"

// Assigner owns the counter pair for one output stream. fileIndex advances
// once per input record; unitIndex restarts at 1 per record and advances
// per emitted unit. Assigners carry no cross-stream state, so independent
// streams can be numbered concurrently, each with its own instance.
type Assigner struct {
	file int
	unit int
}

// NextFile advances to the next input record and resets the unit counter.
func (a *Assigner) NextFile() {
	a.file++
	a.unit = 0
}

// NextUnit returns the identifier for the next unit of the current record.
func (a *Assigner) NextUnit() string {
	a.unit++
	return fmt.Sprintf("%d.%d", a.file, a.unit)
}

// FileIndex returns the current 1-based file index, 0 before the first
// NextFile call.
func (a *Assigner) FileIndex() int {
	return a.file
}
