package structs

const (
	EventOrderAccepted  = "ORDER_ACCEPTED"
	EventOrderCancelled = "ORDER_CANCELLED"
	EventOrderReplaced  = "ORDER_REPLACED"
	EventLocateFilled   = "LOCATE_FILLED"

	SideBuy   = "BUY"
	SideSell  = "SELL"
	SideShort = "SHORT"

	OrderTypeMarket       = "MARKET"
	OrderTypeLimit        = "LIMIT"
	OrderTypeStop         = "STOP"
	OrderTypeStopLimit    = "STOP_LIMIT"
	OrderTypeTrailingStop = "TRAILING_STOP"

	// Bridge liveness probes run as SPY orders on TESTROUTE and must
	// never be replicated.
	ProbeSymbol = "SPY"
	ProbeRoute  = "TESTROUTE"
)

type MasterOrderEvent struct {
	Type        string  `json:"type"`
	OrderID     int64   `json:"orderId"`
	Symbol      string  `json:"symbol"`
	Side        string  `json:"side"`
	Quantity    int64   `json:"quantity"`
	Price       float64 `json:"price"`
	StopPrice   float64 `json:"stopPrice"`
	TrailAmount float64 `json:"trailAmount"`
	TimeInForce string  `json:"timeInForce"`
	OrderType   string  `json:"orderType"`
	Route       string  `json:"route"`

	// Set on ORDER_REPLACED events only.
	NewQuantity int64   `json:"newQuantity"`
	NewPrice    float64 `json:"newPrice"`

	// Set on LOCATE_FILLED events only.
	LocateQty   int64   `json:"locateQty"`
	LocatePrice float64 `json:"locatePrice"`

	Time int64 `json:"time"`
}

func (e *MasterOrderEvent) IsShortSale() bool {
	return e.Type == EventOrderAccepted && e.Side == SideShort
}

func (e *MasterOrderEvent) IsProbe() bool {
	return e.Symbol == ProbeSymbol && e.Route == ProbeRoute
}

type OrderRequest struct {
	Symbol      string  `json:"symbol"`
	Side        string  `json:"side"`
	Quantity    int64   `json:"quantity"`
	Price       float64 `json:"price"`
	StopPrice   float64 `json:"stopPrice"`
	TrailAmount float64 `json:"trailAmount"`
	TimeInForce string  `json:"timeInForce"`
	OrderType   string  `json:"orderType"`
}

type Position struct {
	Symbol   string `json:"symbol"`
	Quantity int64  `json:"quantity"`
}

func (p *Position) IsShort() bool {
	return p.Quantity < 0
}

type LocateResult struct {
	Symbol    string  `json:"symbol"`
	FilledQty int64   `json:"filledQty"`
	AvgPrice  float64 `json:"avgPrice"`
}
