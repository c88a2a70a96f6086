package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriod(t *testing.T) {
	testCases := []struct {
		name      string
		start     string
		end       string
		wantStart time.Time
		wantEnd   time.Time
		wantErr   string
	}{
		{"DayFirst", "01/03/2024", "31/03/2024", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), ""},
		{"ISO", "2024-03-01", "2024-03-01", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), ""},
		{"MissingStart", "", "31/03/2024", time.Time{}, time.Time{}, "Por favor, preencha ambas as datas."},
		{"Malformed", "31-03-2024", "31/03/2024", time.Time{}, time.Time{}, "Datas inválidas. Use o formato dd/mm/aaaa."},
		{"Inverted", "02/03/2024", "01/03/2024", time.Time{}, time.Time{}, "A data inicial não pode ser maior que a final."},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := ParsePeriod(tc.start, tc.end)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidPeriod))
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantStart, p.Start)
			assert.Equal(t, tc.wantEnd, p.End)
		})
	}
}

func TestPeriod_ContainsIsInclusive(t *testing.T) {
	p, err := NewPeriod(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.True(t, p.Contains(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, p.Contains(time.Date(2024, 3, 5, 23, 59, 0, 0, time.UTC)))
	assert.False(t, p.Contains(time.Date(2024, 2, 29, 23, 59, 0, 0, time.UTC)))
	assert.False(t, p.Contains(time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC)))
}

func TestLedgerLine_Record(t *testing.T) {
	line := LedgerLine{
		Account:     "1139008",
		Routing:     "1",
		ClassA:      "10",
		ClassB:      "101",
		SubCode:     "0A",
		AmountCents: -1234,
		Flag:        "N",
		Description: "Doc.1 - 05/03/2024 - 1/1",
	}
	assert.Equal(t, []string{"1139008", "1", "10", "101", "0A", "-1234", "N", "Doc.1 - 05/03/2024 - 1/1"}, line.Record())
	assert.Equal(t, []string{"5112", "", "", "", "", "", "", ""}, ControlRecord("5112"))
}

func TestReadError_MatchesSentinel(t *testing.T) {
	cause := errors.New("zip: not a valid zip file")
	err := error(&ReadError{File: "cielo.xlsx", Err: cause})

	assert.True(t, errors.Is(err, ErrReadError))
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "cielo.xlsx")
}
