package ids

import (
	"testing"

	"github.com/google/uuid"
	"github.com/segmentio/ksuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsUniqueUUID(t *testing.T) {
	a, b := New(), New()
	assert.NotEqual(t, a, b)

	_, err := uuid.Parse(a)
	require.NoError(t, err)
}

func TestNewSortableParses(t *testing.T) {
	id := NewSortable()
	parsed, err := ksuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, parsed.String())
	assert.NotEqual(t, id, NewSortable())
}
