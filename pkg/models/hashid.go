package models

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math/rand/v2"
)

// HashIDLength é o tamanho fixo (em bytes) de infohashes e chaves públicas.
const HashIDLength = 20

// ErrInvalidHashID indica um identificador que não é hex válido de 40 caracteres.
var ErrInvalidHashID = errors.New("invalid identifier")

// HashID representa um identificador binário de 20 bytes (infohash ou chave pública).
// No wire ele sempre trafega como hex minúsculo.
type HashID [HashIDLength]byte

func (h HashID) String() string {
	return hex.EncodeToString(h[:])
}

// ParseHashID decodifica exatamente 40 caracteres hex.
func ParseHashID(s string) (HashID, error) {
	var h HashID
	if len(s) != HashIDLength*2 {
		return h, fmt.Errorf("%w: expected %d hex characters, got %d", ErrInvalidHashID, HashIDLength*2, len(s))
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return h, fmt.Errorf("%w: %v", ErrInvalidHashID, err)
	}
	copy(h[:], b)
	return h, nil
}

// RandomHashID gera um identificador a partir do rng informado.
func RandomHashID(rng *rand.Rand) HashID {
	var h HashID
	for i := range h {
		h[i] = byte(rng.IntN(256))
	}
	return h
}
