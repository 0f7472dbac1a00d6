package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nkwe-logistics/fleetflow-api/internal/domain/entity"
)

func TestLoadStatusSets(t *testing.T) {
	all := []string{
		entity.LoadPending,
		entity.LoadAssigned,
		entity.LoadInTransit,
		entity.LoadDelivered,
		entity.LoadCancelled,
	}
	for _, s := range all {
		assert.NotEqual(t, entity.LoadStatusActive(s), entity.LoadStatusTerminal(s), s)
	}
	for _, s := range entity.ActiveLoadStatuses {
		assert.True(t, entity.LoadStatusActive(s), s)
	}
	assert.Len(t, entity.ActiveLoadStatuses, 3)
	assert.False(t, entity.LoadStatusActive("unknown"))
	assert.False(t, entity.LoadStatusTerminal("unknown"))
}
