package models

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math/rand/v2"
	"time"
)

// GenesisIndex marca um bloco sem predecessor.
const GenesisIndex = -1

// BlockHash identifica um bloco do ledger.
type BlockHash [32]byte

// GenesisHash é o sentinela usado como previous_hash do primeiro bloco.
var GenesisHash BlockHash

func (h BlockHash) String() string {
	return hex.EncodeToString(h[:])
}

// LedgerTransaction são os contadores de troca de dados registrados em um bloco.
type LedgerTransaction struct {
	Up        int64 `json:"up"`
	Down      int64 `json:"down"`
	TotalUp   int64 `json:"total_up"`
	TotalDown int64 `json:"total_down"`
}

// LedgerBlock é um elo da cadeia. O predecessor é referenciado pelo índice
// na cadeia (arena), nunca por ponteiro.
type LedgerBlock struct {
	OwnerID        HashID
	Timestamp      time.Time
	SequenceNumber uint64
	PreviousIndex  int
	PreviousHash   BlockHash
	Hash           BlockHash
	Transaction    LedgerTransaction
}

// NewLedgerBlock cria um bloco ligado a prev. Com prev nil, cria o bloco gênese.
// prevIndex é a posição de prev na cadeia.
func NewLedgerBlock(rng *rand.Rand, owner HashID, ts time.Time, prev *LedgerBlock, prevIndex int) *LedgerBlock {
	b := &LedgerBlock{
		OwnerID:        owner,
		Timestamp:      ts,
		SequenceNumber: 1,
		PreviousIndex:  GenesisIndex,
		PreviousHash:   GenesisHash,
	}

	up := int64(RandInt(rng, 0, 1024*1024*100))
	down := int64(RandInt(rng, 0, 1024*1024*100))
	b.Transaction = LedgerTransaction{Up: up, Down: down, TotalUp: up, TotalDown: down}

	if prev != nil {
		b.SequenceNumber = prev.SequenceNumber + 1
		b.PreviousIndex = prevIndex
		b.PreviousHash = prev.Hash
		b.Transaction.TotalUp += prev.Transaction.TotalUp
		b.Transaction.TotalDown += prev.Transaction.TotalDown
	}

	b.Hash = b.computeHash()
	return b
}

func (b *LedgerBlock) computeHash() BlockHash {
	h := sha256.New()
	h.Write(b.OwnerID[:])
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], b.SequenceNumber)
	h.Write(buf[:])
	binary.BigEndian.PutUint64(buf[:], uint64(b.Timestamp.UnixNano()))
	h.Write(buf[:])
	h.Write(b.PreviousHash[:])
	var out BlockHash
	copy(out[:], h.Sum(nil))
	return out
}

// ToJSON serializa o bloco no formato do endpoint de trustchain.
func (b *LedgerBlock) ToJSON() map[string]interface{} {
	return map[string]interface{}{
		"public_key":      b.OwnerID.String(),
		"sequence_number": b.SequenceNumber,
		"previous_hash":   b.PreviousHash.String(),
		"hash":            b.Hash.String(),
		"timestamp":       b.Timestamp.Unix(),
		"insert_time":     b.Timestamp.UTC().Format("2006-01-02 15:04:05"),
		"transaction":     b.Transaction,
	}
}
