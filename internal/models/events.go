package models

type EventKind int

const (
	EventOrderCreated EventKind = iota
	EventOrderModified
	EventOrderDeleted
	EventPositionOpened
	EventPositionModified
	EventPositionPartialClose
	EventPositionClosed
)

// String — машинное имя события; используется как ключ mute-фильтра
// и как тег в трейсинге.
func (k EventKind) String() string {
	switch k {
	case EventOrderCreated:
		return "order_created"
	case EventOrderModified:
		return "order_modified"
	case EventOrderDeleted:
		return "order_deleted"
	case EventPositionOpened:
		return "position_opened"
	case EventPositionModified:
		return "position_modified"
	case EventPositionPartialClose:
		return "position_partial_close"
	case EventPositionClosed:
		return "position_closed"
	default:
		return "unknown"
	}
}

// FieldChange — изменение защитного уровня (SL/TP).
// Value == 0 означает, что уровень сняли.
type FieldChange struct {
	Name    string  // "SL" / "TP"
	Value   float64 // новое значение, 0 = снят
	Pips    float64 // дистанция от цены входа в пунктах (только позиции)
	HasPips bool
}

// Event — одно классифицированное изменение между двумя срезами.
// Живёт один цикл: построили, отформатировали, отправили, забыли.
type Event struct {
	Kind   EventKind
	Ticket int64

	// Ордерные события. Для Deleted — последнее известное состояние.
	Order *PendingOrder
	// Позиционные события. Для Closed — состояние из предыдущего среза.
	Position *Position

	Changes []FieldChange // только для Modified

	// Частичное закрытие.
	OldVolume  float64
	ClosedPct  float64
	ClosedPips float64
	PctErr     error // old volume == 0 — считаем аномалией данных, не падаем

	// Полное закрытие: последняя виденная цена, НЕ фактическая цена
	// исполнения — терминал её в срезе не отдаёт.
	ClosePrice float64
}

type Severity int

const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityDanger
	SeverityWarning
)

// Field — пара имя/значение; порядок полей в уведомлении фиксированный.
type Field struct {
	Name  string
	Value string
}

type Notification struct {
	Title    string
	Severity Severity
	Fields   []Field
}
