package models

import (
	"math/rand/v2"
	"time"
)

var orderStatuses = []string{"open", "completed", "expired", "cancelled"}

// AssetAmount é uma quantidade de um ativo negociado.
type AssetAmount struct {
	Amount int    `json:"amount"`
	Type   string `json:"type"`
}

// AssetPair é o par (primeiro, segundo) de uma oferta.
type AssetPair struct {
	First  AssetAmount `json:"first"`
	Second AssetAmount `json:"second"`
}

func randomPair(rng *rand.Rand, first, second string) AssetPair {
	return AssetPair{
		First:  AssetAmount{Amount: RandInt(rng, 1, 1000), Type: first},
		Second: AssetAmount{Amount: RandInt(rng, 1, 1000), Type: second},
	}
}

// Tick é uma entrada do livro de ofertas.
type Tick struct {
	TraderID    string
	OrderNumber int
	Assets      AssetPair
	Timeout     int
	Timestamp   int64
	Traded      int
	BlockHash   string
	IsAsk       bool
}

// NewTick cria uma oferta para o par de ativos informado.
func NewTick(rng *rand.Rand, first, second string, isAsk bool) *Tick {
	return &Tick{
		TraderID:    RandomHex(rng, 20),
		OrderNumber: RandInt(rng, 1, 50),
		Assets:      randomPair(rng, first, second),
		Timeout:     3600,
		Timestamp:   time.Now().Unix() - int64(RandInt(rng, 0, 3600)),
		Traded:      RandInt(rng, 0, 10),
		BlockHash:   RandomHex(rng, 32),
		IsAsk:       isAsk,
	}
}

func (t *Tick) ToJSON() map[string]interface{} {
	return map[string]interface{}{
		"trader_id":    t.TraderID,
		"order_number": t.OrderNumber,
		"assets":       t.Assets,
		"timeout":      t.Timeout,
		"timestamp":    t.Timestamp,
		"traded":       t.Traded,
		"block_hash":   t.BlockHash,
	}
}

// OrderBook agrupa ofertas de venda (asks) e compra (bids).
type OrderBook struct {
	Asks []*Tick
	Bids []*Tick
}

// Order é uma ordem do próprio usuário.
type Order struct {
	TraderID         string
	OrderNumber      int
	Assets           AssetPair
	ReservedQuantity int
	Traded           int
	Timeout          int
	Timestamp        int64
	IsAsk            bool
	Status           string
}

// NewOrder cria uma ordem para o par de ativos informado.
func NewOrder(rng *rand.Rand, first, second string) *Order {
	return &Order{
		TraderID:         RandomHex(rng, 20),
		OrderNumber:      RandInt(rng, 1, 50),
		Assets:           randomPair(rng, first, second),
		ReservedQuantity: RandInt(rng, 0, 100),
		Traded:           RandInt(rng, 0, 100),
		Timeout:          3600,
		Timestamp:        time.Now().Unix() - int64(RandInt(rng, 0, 3600*24)),
		IsAsk:            rng.IntN(2) == 0,
		Status:           orderStatuses[rng.IntN(len(orderStatuses))],
	}
}

func (o *Order) ToJSON() map[string]interface{} {
	return map[string]interface{}{
		"trader_id":         o.TraderID,
		"order_number":      o.OrderNumber,
		"assets":            o.Assets,
		"reserved_quantity": o.ReservedQuantity,
		"traded":            o.Traded,
		"timeout":           o.Timeout,
		"timestamp":         o.Timestamp,
		"is_ask":            o.IsAsk,
		"cancelled":         o.Status == "cancelled",
		"status":            o.Status,
	}
}

// Transaction é uma negociação entre o usuário e um parceiro.
type Transaction struct {
	TraderID           string
	OrderNumber        int
	PartnerTraderID    string
	PartnerOrderNumber int
	TransactionNumber  int
	Assets             AssetPair
	Transferred        AssetPair
	Timestamp          int64
	PaymentComplete    bool
	Status             string
}

// NewTransaction cria uma transação para o par de ativos informado.
func NewTransaction(rng *rand.Rand, first, second string) *Transaction {
	assets := randomPair(rng, first, second)
	transferred := AssetPair{
		First:  AssetAmount{Amount: RandInt(rng, 0, assets.First.Amount), Type: first},
		Second: AssetAmount{Amount: RandInt(rng, 0, assets.Second.Amount), Type: second},
	}
	complete := transferred == assets
	status := "pending"
	if complete {
		status = "completed"
	}
	return &Transaction{
		TraderID:           RandomHex(rng, 20),
		OrderNumber:        RandInt(rng, 1, 50),
		PartnerTraderID:    RandomHex(rng, 20),
		PartnerOrderNumber: RandInt(rng, 1, 50),
		TransactionNumber:  RandInt(rng, 1, 1000),
		Assets:             assets,
		Transferred:        transferred,
		Timestamp:          time.Now().Unix() - int64(RandInt(rng, 0, 3600*24)),
		PaymentComplete:    complete,
		Status:             status,
	}
}

func (t *Transaction) ToJSON() map[string]interface{} {
	return map[string]interface{}{
		"trader_id":            t.TraderID,
		"order_number":         t.OrderNumber,
		"partner_trader_id":    t.PartnerTraderID,
		"partner_order_number": t.PartnerOrderNumber,
		"transaction_number":   t.TransactionNumber,
		"assets":               t.Assets,
		"transferred":          t.Transferred,
		"timestamp":            t.Timestamp,
		"payment_complete":     t.PaymentComplete,
		"status":               t.Status,
	}
}
