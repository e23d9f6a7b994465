package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%galaxy%", likePattern("galaxy"))
	assert.Equal(t, `%50\%\_off\\%`, likePattern(`50%_off\`))
}
