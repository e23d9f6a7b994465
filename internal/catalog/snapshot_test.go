package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoard_LastWriteWins(t *testing.T) {
	var b Board
	assert.Nil(t, b.Current())

	stale := b.Begin()
	fresh := b.Begin()

	assert.True(t, b.Publish(&Snapshot{Generation: fresh}))
	assert.False(t, b.Publish(&Snapshot{Generation: stale}), "superseded batch must be ignored")
	assert.Equal(t, fresh, b.Current().Generation)
}

func TestBoard_SupersededBeforePublish(t *testing.T) {
	var b Board
	old := b.Begin()
	b.Begin()

	assert.False(t, b.Publish(&Snapshot{Generation: old}))
	assert.Nil(t, b.Current())
}

func TestBoard_SequentialPublishes(t *testing.T) {
	var b Board
	for i := 0; i < 3; i++ {
		g := b.Begin()
		assert.True(t, b.Publish(&Snapshot{Generation: g}))
	}
	assert.Equal(t, uint64(3), b.Current().Generation)
}
