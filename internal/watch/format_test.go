package watch

import (
	"testing"

	"trade_watch/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldNames(n models.Notification) []string {
	out := make([]string, 0, len(n.Fields))
	for _, f := range n.Fields {
		out = append(out, f.Name)
	}
	return out
}

func TestFormatOrderCreated(t *testing.T) {
	o := order(1, "XAUUSD", models.OrderKindBuyLimit, 1900, 0, 0)
	n := Format(models.Event{Kind: models.EventOrderCreated, Ticket: 1, Order: &o})

	assert.Equal(t, "Pending Order Placed", n.Title)
	assert.Equal(t, models.SeveritySuccess, n.Severity)
	// SL/TP не выставлены — полей нет
	assert.Equal(t, []string{"Symbol", "Type", "Price"}, fieldNames(n))
	assert.Equal(t, "XAUUSD", n.Fields[0].Value)
	assert.Equal(t, "Buy Limit", n.Fields[1].Value)
	assert.Equal(t, "1900", n.Fields[2].Value)
}

func TestFormatOrderCreatedSeverity(t *testing.T) {
	cases := []struct {
		kind models.OrderKind
		want models.Severity
	}{
		{models.OrderKindBuyLimit, models.SeveritySuccess},
		{models.OrderKindBuyStop, models.SeveritySuccess},
		{models.OrderKindSellLimit, models.SeverityDanger},
		{models.OrderKindSellStop, models.SeverityDanger},
		{models.OrderKindUnknown, models.SeverityInfo},
	}
	for _, tc := range cases {
		o := order(1, "XAUUSD", tc.kind, 1900, 0, 0)
		n := Format(models.Event{Kind: models.EventOrderCreated, Order: &o})
		assert.Equal(t, tc.want, n.Severity, tc.kind.String())
	}
}

func TestFormatOrderCreatedWithLevels(t *testing.T) {
	o := order(1, "XAUUSD", models.OrderKindSellStop, 1880, 1890, 1860)
	n := Format(models.Event{Kind: models.EventOrderCreated, Order: &o})

	assert.Equal(t, []string{"Symbol", "Type", "Price", "SL", "TP"}, fieldNames(n))
}

func TestFormatOrderModified(t *testing.T) {
	o := order(1, "XAUUSD", models.OrderKindBuyLimit, 1900, 1895, 0)
	n := Format(models.Event{
		Kind:  models.EventOrderModified,
		Order: &o,
		Changes: []models.FieldChange{
			{Name: "SL", Value: 1895},
			{Name: "TP", Value: 0},
		},
	})

	assert.Equal(t, models.SeverityInfo, n.Severity)
	require.Equal(t, []string{"Symbol", "Type", "Price", "New SL", "New TP"}, fieldNames(n))
	assert.Equal(t, "1895", n.Fields[3].Value)
	// снятый уровень репортим словом, а не нулём
	assert.Equal(t, "removed", n.Fields[4].Value)
}

func TestFormatOrderDeleted(t *testing.T) {
	o := order(1, "XAUUSD", models.OrderKindBuyLimit, 1900, 0, 0)
	n := Format(models.Event{Kind: models.EventOrderDeleted, Order: &o})

	assert.Equal(t, "Pending Order Deleted", n.Title)
	assert.Equal(t, models.SeverityDanger, n.Severity)
}

func TestFormatPositionOpened(t *testing.T) {
	p := position(5, "XAUUSD", models.SideSell, 1900, 1899, 0.5, 0, 1880)
	n := Format(models.Event{Kind: models.EventPositionOpened, Position: &p})

	assert.Equal(t, "Position Opened", n.Title)
	assert.Equal(t, models.SeverityDanger, n.Severity)
	assert.Equal(t, []string{"Symbol", "Type", "Price", "Volume", "TP"}, fieldNames(n))
	assert.Equal(t, "Sell", n.Fields[1].Value)
}

func TestFormatPositionModified(t *testing.T) {
	p := position(5, "XAUUSD", models.SideBuy, 1900, 1905, 1.0, 1895, 1920)
	n := Format(models.Event{
		Kind:     models.EventPositionModified,
		Position: &p,
		Changes: []models.FieldChange{
			{Name: "SL", Value: 1895, Pips: -500, HasPips: true},
		},
	})

	assert.Equal(t, models.SeverityInfo, n.Severity)
	require.Equal(t, []string{"Symbol", "Type", "Entry", "New SL"}, fieldNames(n))
	assert.Equal(t, "1895 (-500.00 pips from entry)", n.Fields[3].Value)
}

func TestFormatPartialClose(t *testing.T) {
	p := position(5, "XAUUSD", models.SideBuy, 1900, 1912, 0.4, 0, 0)

	t.Run("ok", func(t *testing.T) {
		n := Format(models.Event{
			Kind:       models.EventPositionPartialClose,
			Position:   &p,
			OldVolume:  1.0,
			ClosedPct:  60,
			ClosedPips: 1200,
		})

		assert.Equal(t, "Position Partially Closed", n.Title)
		assert.Equal(t, models.SeverityWarning, n.Severity)
		require.Equal(t, []string{"Symbol", "Type", "Closed", "Approx. Pips", "Volume"}, fieldNames(n))
		assert.Equal(t, "60.00%", n.Fields[2].Value)
		assert.Equal(t, "+1200.00", n.Fields[3].Value)
		assert.Equal(t, "0.4 (was 1)", n.Fields[4].Value)
	})

	t.Run("volume anomaly", func(t *testing.T) {
		n := Format(models.Event{
			Kind:     models.EventPositionPartialClose,
			Position: &p,
			PctErr:   assert.AnError,
		})
		assert.Equal(t, "n/a (old volume 0)", n.Fields[2].Value)
	})
}

func TestFormatPositionClosed(t *testing.T) {
	p := position(9, "XAUUSD", models.SideBuy, 1900, 1912.3, 1.0, 0, 0)
	n := Format(models.Event{
		Kind:       models.EventPositionClosed,
		Position:   &p,
		ClosePrice: 1912.3,
		ClosedPips: 1230,
	})

	assert.Equal(t, "Position Closed", n.Title)
	assert.Equal(t, models.SeverityDanger, n.Severity)
	// цена закрытия — приближение, и это видно в самом поле
	assert.Equal(t, "Close Price", n.Fields[2].Name)
	assert.Equal(t, "~1912.3 (approx.)", n.Fields[2].Value)
}
