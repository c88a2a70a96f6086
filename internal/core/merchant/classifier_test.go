package merchant

import (
	"errors"
	"testing"

	"conciliacao-service/internal/core/spreadsheet"
	"conciliacao-service/internal/core/spreadsheet/spreadsheettest"
	"conciliacao-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_KnownMerchants(t *testing.T) {
	testCases := []struct {
		id             string
		accountingCode string
		controlCode    string
	}{
		{"1049143393", "1", "5112"},
		{"2889751230", "6", "5112"},
		{"1030032510", "5", "5124"},
		{"1109206094", "6", "5124"},
		{"2809433369", "1", "5124"},
	}

	c := NewClassifier()
	for _, tc := range testCases {
		t.Run(tc.id, func(t *testing.T) {
			routing, err := c.Resolve(tc.id)
			require.NoError(t, err)
			assert.Equal(t, tc.id, routing.MerchantID)
			assert.Equal(t, tc.accountingCode, routing.AccountingCode)
			assert.Equal(t, tc.controlCode, routing.ControlCode)
		})
	}
}

func TestResolve_NumericCellWithDecimals(t *testing.T) {
	routing, err := NewClassifier().Resolve("1.049143393E9")
	require.NoError(t, err)
	assert.Equal(t, "1", routing.AccountingCode)
}

func TestResolve_Unrecognized(t *testing.T) {
	c := NewClassifier()

	for _, id := range []string{"1049143394", "", "nan", "0000000000"} {
		_, err := c.Resolve(id)
		require.Error(t, err, id)
		assert.True(t, errors.Is(err, domain.ErrUnrecognizedMerchant), id)
	}
}

func TestResolve_UnrecognizedSuggestsClosest(t *testing.T) {
	_, err := NewClassifier().Resolve("1049143394")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mais próximo")
}

func TestKnown(t *testing.T) {
	assert.Equal(t, []string{"1030032510", "1049143393", "1109206094", "2809433369", "2889751230"}, Known())
}

func TestClassify(t *testing.T) {
	c := NewClassifier()

	t.Run("FirstDataRow", func(t *testing.T) {
		data := spreadsheettest.Cielo(t,
			[]interface{}{"06/03/2024", "05/03/2024", 1, 10.0, 9.0, "06/03/2024", 1, 1, 1030032510},
			[]interface{}{"06/03/2024", "05/03/2024", 2, 10.0, 9.0, "06/03/2024", 1, 1, 1049143393},
		)
		routing, err := c.Classify(spreadsheet.BytesSource("cielo.xlsx", data))
		require.NoError(t, err)
		assert.Equal(t, "5", routing.AccountingCode)
		assert.Equal(t, "5124", routing.ControlCode)
	})

	t.Run("EmptyFile", func(t *testing.T) {
		_, err := c.Classify(spreadsheet.BytesSource("cielo.xlsx", spreadsheettest.Cielo(t)))
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrEmptyInput))
	})

	t.Run("UnknownMerchant", func(t *testing.T) {
		data := spreadsheettest.Cielo(t,
			[]interface{}{"06/03/2024", "05/03/2024", 1, 10.0, 9.0, "06/03/2024", 1, 1, "9999999999"},
		)
		_, err := c.Classify(spreadsheet.BytesSource("cielo.xlsx", data))
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrUnrecognizedMerchant))
	})

	t.Run("Unreadable", func(t *testing.T) {
		_, err := c.Classify(spreadsheet.BytesSource("cielo.xlsx", []byte("corrompido")))
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrReadError))
	})
}
