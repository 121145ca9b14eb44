package models

// Сущности торгового счёта MT5: отложенные ордера и открытые позиции.
// Ticket — уникальный идентификатор, который терминал присваивает сущности;
// стабилен между опросами, внутри сессии не переиспользуется.

type OrderKind int

const (
	OrderKindUnknown OrderKind = iota
	OrderKindBuyLimit
	OrderKindSellLimit
	OrderKindBuyStop
	OrderKindSellStop
)

// OrderKindFromCode мапит числовой код ORDER_TYPE_* терминала.
// Незнакомый код — явный Unknown, без молчаливого дефолта.
func OrderKindFromCode(code int) OrderKind {
	switch code {
	case 2:
		return OrderKindBuyLimit
	case 3:
		return OrderKindSellLimit
	case 4:
		return OrderKindBuyStop
	case 5:
		return OrderKindSellStop
	default:
		return OrderKindUnknown
	}
}

func (k OrderKind) String() string {
	switch k {
	case OrderKindBuyLimit:
		return "Buy Limit"
	case OrderKindSellLimit:
		return "Sell Limit"
	case OrderKindBuyStop:
		return "Buy Stop"
	case OrderKindSellStop:
		return "Sell Stop"
	default:
		return "Unknown"
	}
}

// IsBuy — лонговый ли тип (нужно для окраски уведомления).
func (k OrderKind) IsBuy() bool {
	return k == OrderKindBuyLimit || k == OrderKindBuyStop
}

type PositionSide int

const (
	SideBuy PositionSide = iota
	SideSell
)

// PositionSideFromCode мапит POSITION_TYPE_* терминала (0 = buy, 1 = sell).
func PositionSideFromCode(code int) PositionSide {
	if code == 1 {
		return SideSell
	}
	return SideBuy
}

func (s PositionSide) String() string {
	if s == SideSell {
		return "Sell"
	}
	return "Buy"
}

// PendingOrder — отложенный ордер. SL/TP == 0 означает "не выставлен",
// валидной ценой ноль быть не может.
type PendingOrder struct {
	Ticket    int64
	Symbol    string
	Kind      OrderKind
	OpenPrice float64
	SL        float64
	TP        float64
}

// Position — открытая позиция. Volume между опросами может только
// уменьшаться (частичное закрытие), остальные поля терминал меняет как хочет.
type Position struct {
	Ticket       int64
	Symbol       string
	Side         PositionSide
	OpenPrice    float64
	CurrentPrice float64
	Volume       float64
	SL           float64
	TP           float64
}

// Snapshot — полный срез ордеров и позиций счёта на один момент времени.
type Snapshot struct {
	Orders    map[int64]PendingOrder
	Positions map[int64]Position
}

func NewSnapshot() Snapshot {
	return Snapshot{
		Orders:    make(map[int64]PendingOrder),
		Positions: make(map[int64]Position),
	}
}
