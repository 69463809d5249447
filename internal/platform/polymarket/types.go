package polymarket

import "github.com/shopspring/decimal"

// apiToken is one outcome token of a market.
type apiToken struct {
	TokenID string `json:"token_id"`
	Outcome string `json:"outcome"`
}

// apiMarket is one market record from GET /markets.
type apiMarket struct {
	ConditionID string     `json:"condition_id"`
	Question    string     `json:"question"`
	Active      bool       `json:"active"`
	Closed      bool       `json:"closed"`
	Tokens      []apiToken `json:"tokens"`
}

// apiMarketsPage is the cursor-paginated envelope for GET /markets.
type apiMarketsPage struct {
	Data       []apiMarket `json:"data"`
	NextCursor string      `json:"next_cursor"`
}

// apiLevel is one resting price level.
type apiLevel struct {
	Price decimal.Decimal `json:"price"`
	Size  decimal.Decimal `json:"size"`
}

// apiBook is one outcome token's book.
type apiBook struct {
	Asks []apiLevel `json:"asks"`
	Bids []apiLevel `json:"bids"`
}

// apiMarketBook is the response from GET /book?market=...; books are keyed by
// outcome index, "1" for yes and "0" for no.
type apiMarketBook struct {
	Yes apiBook `json:"1"`
	No  apiBook `json:"0"`
}

// apiOrderResult is the CLOB's response to POST /order.
type apiOrderResult struct {
	Success  bool   `json:"success"`
	OrderID  string `json:"orderID"`
	Status   string `json:"status"`
	ErrorMsg string `json:"errorMsg"`
}

// top returns the price of the first level, or zero when the side is empty.
func top(levels []apiLevel) decimal.Decimal {
	if len(levels) == 0 {
		return decimal.Decimal{}
	}
	return levels[0].Price
}
