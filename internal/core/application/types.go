package application

import (
	"github.com/escrow-network/escrowd/internal/core/domain"
)

// TradeStatusInfo is the compact state/count projection of a trade.
type TradeStatusInfo struct {
	TradeId        uint64 `json:"trade_id"`
	Status         string `json:"status"`
	DepositedCount int    `json:"deposited_count"`
	TotalCount     int    `json:"total_count"`
	ConfirmedCount int    `json:"confirmed_count"`
	Deadline       int64  `json:"deadline"`
}

// AssetInfo projects a committed manifest entry.
type AssetInfo struct {
	Kind        string `json:"kind"`
	Reference   string `json:"reference"`
	UnitId      uint64 `json:"unit_id"`
	Quantity    uint64 `json:"quantity"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Deposited   bool   `json:"deposited"`
}

// TradeInfo is the full projection of a trade, kept queryable after
// termination.
type TradeInfo struct {
	TradeStatusInfo
	Participants []string    `json:"participants"`
	Assets       []AssetInfo `json:"assets"`
	Confirmed    []string    `json:"confirmed"`
	CreatedAt    int64       `json:"created_at"`
}

// FeeInfo projects the global fee ledger.
type FeeInfo struct {
	FlatFee     uint64 `json:"flat_fee"`
	Recipient   string `json:"recipient"`
	Accumulated uint64 `json:"accumulated"`
}

// Notification payloads published on the corresponding topics.
type depositNotification struct {
	TradeId   uint64    `json:"trade_id"`
	Depositor string    `json:"depositor"`
	Asset     AssetInfo `json:"asset"`
}

type confirmNotification struct {
	TradeId        uint64 `json:"trade_id"`
	Participant    string `json:"participant"`
	ConfirmedCount int    `json:"confirmed_count"`
}

type reclaimNotification struct {
	TradeId     uint64 `json:"trade_id"`
	Participant string `json:"participant"`
	AssetCount  int    `json:"asset_count"`
	TradeStatus string `json:"trade_status"`
}

type feeNotification struct {
	TradeId     uint64 `json:"trade_id"`
	Participant string `json:"participant"`
	Amount      uint64 `json:"amount"`
}

type feeRateNotification struct {
	FlatFee uint64 `json:"flat_fee"`
}

type feeRecipientNotification struct {
	Recipient string `json:"recipient"`
}

func assetInfo(a domain.Asset) AssetInfo {
	return AssetInfo{
		Kind:        a.Kind.String(),
		Reference:   a.Reference,
		UnitId:      a.UnitId,
		Quantity:    a.Quantity,
		Source:      a.Source,
		Destination: a.Destination,
		Deposited:   a.Deposited,
	}
}

func tradeStatusInfo(t *domain.Trade) *TradeStatusInfo {
	return &TradeStatusInfo{
		TradeId:        t.Id,
		Status:         t.Status.String(),
		DepositedCount: t.DepositedCount,
		TotalCount:     t.TotalCount,
		ConfirmedCount: t.ConfirmedCount(),
		Deadline:       t.Deadline,
	}
}

func tradeInfo(t *domain.Trade) *TradeInfo {
	assets := make([]AssetInfo, 0, t.TotalCount)
	for _, p := range t.Participants {
		for _, a := range t.Assets[p] {
			assets = append(assets, assetInfo(a))
		}
	}
	confirmed := make([]string, 0)
	for _, p := range t.Participants {
		if t.Confirmed[p] {
			confirmed = append(confirmed, p)
		}
	}
	return &TradeInfo{
		TradeStatusInfo: *tradeStatusInfo(t),
		Participants:    t.Participants,
		Assets:          assets,
		Confirmed:       confirmed,
		CreatedAt:       t.CreatedAt,
	}
}
