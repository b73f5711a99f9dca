package service

import (
	"testing"

	"github.com/haatos/provider-ci/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestScheduler_TriggerJobDefinition(t *testing.T) {
	t.Run("success - weekly and daily triggers", func(t *testing.T) {
		weekly, err := triggerJobDefinition(&types.Trigger{Weekday: "Saturday", Hour: 23})
		assert.NoError(t, err)
		assert.NotNil(t, weekly)

		daily, err := triggerJobDefinition(&types.Trigger{Hour: 2, Minute: 30})
		assert.NoError(t, err)
		assert.NotNil(t, daily)
	})
	t.Run("failure - unknown weekday", func(t *testing.T) {
		definition, err := triggerJobDefinition(&types.Trigger{Weekday: "Caturday"})

		assert.Nil(t, definition)
		assert.Error(t, err)
	})
}
