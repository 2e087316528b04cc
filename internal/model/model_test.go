package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The API speaks camelCase; no snake_case field names may leak onto
// the wire.
func TestWireFormatIsCamelCase(t *testing.T) {
	for _, v := range []interface{}{
		Booking{},
		Layout{},
		UnavailableMark{},
		Holiday{},
		ArchivedTrainee{},
		ArchivedBooking{},
	} {
		bs, err := json.Marshal(v)
		require.NoError(t, err)
		assert.NotContains(t, string(bs), "_", "%T", v)
	}
}

func TestBookingTimestampTag(t *testing.T) {
	bs, err := json.Marshal(Booking{})
	require.NoError(t, err)
	assert.Contains(t, string(bs), `"createdAt"`)

	ls, err := json.Marshal(Layout{})
	require.NoError(t, err)
	assert.Contains(t, string(ls), `"createdAt"`)
	assert.Contains(t, string(ls), `"updatedAt"`)
}
