package limitless

import "github.com/shopspring/decimal"

// apiMarket is one market record from GET /markets.
type apiMarket struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Active bool   `json:"active"`
}

// bookLevel is one resting price level.
type bookLevel struct {
	Price decimal.Decimal `json:"price"`
	Size  decimal.Decimal `json:"size"`
}

// outcomeBook is one outcome's side of the orderbook.
type outcomeBook struct {
	Asks []bookLevel `json:"asks"`
	Bids []bookLevel `json:"bids"`
}

// apiOrderbook is the response from GET /markets/{id}/orderbook.
type apiOrderbook struct {
	Yes outcomeBook `json:"yes"`
	No  outcomeBook `json:"no"`
}

// apiOrder is the request body for POST /orders.
type apiOrder struct {
	MarketID      string `json:"market_id"`
	Outcome       string `json:"outcome"`
	Side          string `json:"side"`
	Amount        string `json:"amount"`
	Price         string `json:"price"`
	Type          string `json:"type"`
	ClientOrderID string `json:"client_order_id"`
}

// apiOrderResponse is the venue's acknowledgement of an accepted order.
type apiOrderResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// apiError is the venue's error envelope on non-2xx responses.
type apiError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// best returns the price of the first level, or zero when the side is empty.
func best(levels []bookLevel) decimal.Decimal {
	if len(levels) == 0 {
		return decimal.Decimal{}
	}
	return levels[0].Price
}
