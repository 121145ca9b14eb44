package service

// Ответы REST-бриджа терминала. Числовые коды типов отдаём дальше
// только через мапперы models.OrderKindFromCode / PositionSideFromCode.

type apiError struct {
	Ok    bool   `json:"ok"`
	Error string `json:"error"`
}

type connectRequest struct {
	Login    int64  `json:"login"`
	Password string `json:"password"`
	Server   string `json:"server"`
}

type orderDTO struct {
	Ticket    int64   `json:"ticket"`
	Symbol    string  `json:"symbol"`
	Type      int     `json:"type"` // ORDER_TYPE_*
	PriceOpen float64 `json:"price_open"`
	SL        float64 `json:"sl"`
	TP        float64 `json:"tp"`
}

type ordersResponse struct {
	Ok     bool       `json:"ok"`
	Error  string     `json:"error"`
	Orders []orderDTO `json:"orders"`
}

type positionDTO struct {
	Ticket       int64   `json:"ticket"`
	Symbol       string  `json:"symbol"`
	Type         int     `json:"type"` // POSITION_TYPE_*: 0 buy / 1 sell
	PriceOpen    float64 `json:"price_open"`
	PriceCurrent float64 `json:"price_current"`
	Volume       float64 `json:"volume"`
	SL           float64 `json:"sl"`
	TP           float64 `json:"tp"`
}

type positionsResponse struct {
	Ok        bool          `json:"ok"`
	Error     string        `json:"error"`
	Positions []positionDTO `json:"positions"`
}

type symbolInfoResponse struct {
	Ok    bool   `json:"ok"`
	Error string `json:"error"`
	Info  struct {
		Symbol string  `json:"symbol"`
		Point  float64 `json:"point"`
		Digits int     `json:"digits"`
	} `json:"info"`
}
