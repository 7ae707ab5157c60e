package ids

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssigner(t *testing.T) {
	var a Assigner

	assert.Equal(t, 0, a.FileIndex())

	a.NextFile()
	assert.Equal(t, 1, a.FileIndex())
	assert.Equal(t, "1.1", a.NextUnit())
	assert.Equal(t, "1.2", a.NextUnit())

	a.NextFile()
	assert.Equal(t, "2.1", a.NextUnit())
}

func TestAssignerSkippedRecord(t *testing.T) {
	var a Assigner

	a.NextFile()
	a.NextFile() // record with no emitted units still consumes an index
	a.NextFile()
	assert.Equal(t, "3.1", a.NextUnit())
}
