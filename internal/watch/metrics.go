package watch

import (
	"trade_watch/internal/models"

	"github.com/pkg/errors"
)

// PipDistance — расстояние уровня от опорной цены в пунктах.
// Отрицательное значение — уровень ниже опоры.
func PipDistance(level, ref, point float64) float64 {
	return (level - ref) / point
}

// PartialClosePct — какая доля позиции закрыта, в процентах.
func PartialClosePct(oldVol, newVol float64) (float64, error) {
	if oldVol == 0 {
		return 0, errors.New("old volume is zero")
	}
	return (oldVol - newVol) / oldVol * 100, nil
}

// PartialClosePips — примерный результат закрытой части в пунктах.
// Считаем по текущей рыночной цене: цену исполнения частичного закрытия
// терминал в срезе не отдаёт, так что это оценка, а не точный P&L.
func PartialClosePips(side models.PositionSide, open, current, point float64) float64 {
	if side == models.SideSell {
		return (open - current) / point
	}
	return (current - open) / point
}
