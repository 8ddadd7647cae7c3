package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func Test_RawRecordJSON(t *testing.T) {
	t.Run("tuple with nulls", func(t *testing.T) {
		raw := `["2018-05-31", 12000, 0.9, null, 1.1, 1.0]`

		var record RawRecord
		require.NoError(t, json.Unmarshal([]byte(raw), &record))

		volume := 12000.0
		low := 0.9
		open := 1.1
		close := 1.0
		require.Equal(t, "", cmp.Diff(RawRecord{
			Date:   "2018-05-31",
			Volume: &volume,
			Low:    &low,
			High:   nil,
			Open:   &open,
			Close:  &close,
		}, record))
	})

	t.Run("round trip", func(t *testing.T) {
		volume := 50000.0
		price := 12.5
		record := RawRecord{Date: "2018-01-02", Volume: &volume, Low: &price, High: &price, Open: &price, Close: &price}

		b, err := json.Marshal(record)
		require.NoError(t, err)

		var decoded RawRecord
		require.NoError(t, json.Unmarshal(b, &decoded))
		require.Equal(t, "", cmp.Diff(record, decoded))
	})

	t.Run("wrong arity fails", func(t *testing.T) {
		var record RawRecord
		require.Error(t, json.Unmarshal([]byte(`["2018-01-02", 1]`), &record))
	})

	t.Run("missing date fails", func(t *testing.T) {
		var record RawRecord
		require.Error(t, json.Unmarshal([]byte(`[null, 1, 2, 3, 4, 5]`), &record))
	})
}

func Test_PriceMatrix(t *testing.T) {
	m := NewPriceMatrix(3, 2)
	require.Equal(t, 3, m.Dates())
	require.Equal(t, 2, m.Symbols())

	_, ok := m.At(0, 0)
	require.False(t, ok)

	m[1][1] = 42
	price, ok := m.At(1, 1)
	require.True(t, ok)
	require.Equal(t, 42.0, price)
}
