package models

import (
	"fmt"
	"math/rand/v2"
)

// Channel agrupa um subconjunto do pool de torrents sob uma chave pública.
type Channel struct {
	ID          int
	PublicKey   HashID
	Name        string
	Description string
	Torrents    []*Torrent
	Subscribed  bool
	Votes       int
	Updated     int64
}

// NewChannel cria o canal de índice id com o nome e a descrição padrão.
func NewChannel(rng *rand.Rand, id int, torrents []*Torrent) *Channel {
	return &Channel{
		ID:          id,
		PublicKey:   RandomHashID(rng),
		Name:        fmt.Sprintf("Channel %d", id),
		Description: fmt.Sprintf("Description of channel %d", id),
		Torrents:    torrents,
		Votes:       RandInt(rng, 0, 1000),
		Updated:     int64(RandInt(rng, 1400000000, 1500000000)),
	}
}

// ToJSON serializa o canal. mine indica se este é o canal do próprio usuário.
func (c *Channel) ToJSON(mine bool) map[string]interface{} {
	state := "Complete"
	if mine {
		state = "Personal"
	}
	return map[string]interface{}{
		"id":          c.ID,
		"public_key":  c.PublicKey.String(),
		"name":        c.Name,
		"description": c.Description,
		"subscribed":  c.Subscribed,
		"torrents":    len(c.Torrents),
		"votes":       c.Votes,
		"updated":     c.Updated,
		"state":       state,
	}
}
