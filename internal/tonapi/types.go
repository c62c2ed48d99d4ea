package tonapi

// TokenTON names native TON in transfers and rates.
const TokenTON = "TON"

type Event struct {
	EventID    string   `json:"event_id"`
	Timestamp  int64    `json:"timestamp"`
	Actions    []Action `json:"actions"`
	IsScam     bool     `json:"is_scam"`
	InProgress bool     `json:"in_progress"`
}

type Action struct {
	Type           string          `json:"type"`
	Status         string          `json:"status"`
	TonTransfer    *TonTransfer    `json:"TonTransfer,omitempty"`
	JettonTransfer *JettonTransfer `json:"JettonTransfer,omitempty"`
}

type TonTransfer struct {
	Sender    Account `json:"sender"`
	Recipient Account `json:"recipient"`
	Amount    int64   `json:"amount"` // nanoTON
	Comment   string  `json:"comment,omitempty"`
}

type JettonTransfer struct {
	Sender    *Account   `json:"sender,omitempty"`
	Recipient *Account   `json:"recipient,omitempty"`
	Amount    string     `json:"amount"` // jetton units
	Jetton    JettonInfo `json:"jetton"`
}

type JettonInfo struct {
	Address  string `json:"address"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals int    `json:"decimals"`
}

type Account struct {
	Address  string `json:"address"`
	Name     string `json:"name,omitempty"`
	IsScam   bool   `json:"is_scam,omitempty"`
	IsWallet bool   `json:"is_wallet,omitempty"`
}

type EventsResponse struct {
	Events []Event `json:"events"`
}

type JettonBalance struct {
	Balance string     `json:"balance"`
	Jetton  JettonInfo `json:"jetton"`
}

type RatesResponse struct {
	Rates map[string]TokenRates `json:"rates"`
}

type TokenRates struct {
	Prices map[string]float64 `json:"prices"`
}

// Transfer is a successful incoming transfer found in an event, in the token's smallest units.
type Transfer struct {
	EventID   string
	Sender    string
	Recipient string
	Amount    int64
	Token     string
	Timestamp int64
}
