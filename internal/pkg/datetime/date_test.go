package datetime

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormats(t *testing.T) {
	want := time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC)

	for _, in := range []string{"2025-03-14", "2025-03-14T18:30:00Z", "1741975800000"} {
		d, err := Parse(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(d.Time), in)
	}

	_, err := Parse("14/03/2025")
	require.Error(t, err)
}

func TestJSON(t *testing.T) {
	var payload struct {
		TargetDate  *Date `json:"targetDate"`
		DateOfBirth *Date `json:"dateOfBirth"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"targetDate":"2025-12-31","dateOfBirth":null}`), &payload))
	require.NotNil(t, payload.TargetDate)
	assert.Nil(t, payload.DateOfBirth)
	assert.Equal(t, "2025-12-31", payload.TargetDate.String())

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"targetDate":"2025-12-31","dateOfBirth":null}`, string(out))
}

func TestTimeConversions(t *testing.T) {
	assert.Nil(t, FromTime(nil))
	assert.Nil(t, ToTime(nil))

	ts := time.Date(2001, time.July, 9, 23, 15, 0, 0, time.UTC)
	d := FromTime(&ts)
	require.NotNil(t, d)
	assert.Equal(t, "2001-07-09", d.String())
	assert.Equal(t, 0, ToTime(d).Hour())
}
