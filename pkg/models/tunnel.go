package models

import (
	"math/rand/v2"
	"time"
)

var circuitStates = []string{"READY", "EXTENDING", "TO_BE_EXTENDED", "CLOSING"}
var circuitTypes = []string{"DATA", "IP", "RP", "RENDEZVOUS"}

// Circuit é um circuito anônimo iniciado por este nó.
type Circuit struct {
	CircuitID    uint32
	GoalHops     int
	ActualHops   int
	VerifiedHops int
	Type         string
	State        string
	BytesUp      int64
	BytesDown    int64
	CreationTime int64
}

func NewCircuit(rng *rand.Rand) *Circuit {
	goal := RandInt(rng, 1, 3)
	actual := RandInt(rng, 0, goal)
	return &Circuit{
		CircuitID:    rng.Uint32(),
		GoalHops:     goal,
		ActualHops:   actual,
		VerifiedHops: actual,
		Type:         circuitTypes[rng.IntN(len(circuitTypes))],
		State:        circuitStates[rng.IntN(len(circuitStates))],
		BytesUp:      int64(RandInt(rng, 0, 10*1024*1024)),
		BytesDown:    int64(RandInt(rng, 0, 10*1024*1024)),
		CreationTime: time.Now().Unix() - int64(RandInt(rng, 0, 3600)),
	}
}

func (c *Circuit) ToJSON() map[string]interface{} {
	return map[string]interface{}{
		"circuit_id":    c.CircuitID,
		"goal_hops":     c.GoalHops,
		"actual_hops":   c.ActualHops,
		"verified_hops": c.VerifiedHops,
		"type":          c.Type,
		"state":         c.State,
		"bytes_up":      c.BytesUp,
		"bytes_down":    c.BytesDown,
		"creation_time": c.CreationTime,
	}
}

// Relay repassa tráfego entre dois circuitos.
type Relay struct {
	CircuitFrom  uint32
	CircuitTo    uint32
	IsRendezvous bool
	BytesUp      int64
	BytesDown    int64
	CreationTime int64
}

func NewRelay(rng *rand.Rand) *Relay {
	return &Relay{
		CircuitFrom:  rng.Uint32(),
		CircuitTo:    rng.Uint32(),
		IsRendezvous: rng.IntN(2) == 0,
		BytesUp:      int64(RandInt(rng, 0, 10*1024*1024)),
		BytesDown:    int64(RandInt(rng, 0, 10*1024*1024)),
		CreationTime: time.Now().Unix() - int64(RandInt(rng, 0, 3600)),
	}
}

func (r *Relay) ToJSON() map[string]interface{} {
	return map[string]interface{}{
		"circuit_from":  r.CircuitFrom,
		"circuit_to":    r.CircuitTo,
		"is_rendezvous": r.IsRendezvous,
		"bytes_up":      r.BytesUp,
		"bytes_down":    r.BytesDown,
		"creation_time": r.CreationTime,
	}
}

// ExitSocket é a saída de um circuito para a internet.
type ExitSocket struct {
	CircuitFrom    uint32
	Enabled        bool
	BytesUp        int64
	BytesDown      int64
	CreationTime   int64
	IsIntroduction bool
	IsRendezvous   bool
}

func NewExitSocket(rng *rand.Rand) *ExitSocket {
	return &ExitSocket{
		CircuitFrom:    rng.Uint32(),
		Enabled:        rng.IntN(2) == 0,
		BytesUp:        int64(RandInt(rng, 0, 10*1024*1024)),
		BytesDown:      int64(RandInt(rng, 0, 10*1024*1024)),
		CreationTime:   time.Now().Unix() - int64(RandInt(rng, 0, 3600)),
		IsIntroduction: rng.IntN(2) == 0,
		IsRendezvous:   rng.IntN(2) == 0,
	}
}

func (e *ExitSocket) ToJSON() map[string]interface{} {
	return map[string]interface{}{
		"circuit_from":    e.CircuitFrom,
		"enabled":         e.Enabled,
		"bytes_up":        e.BytesUp,
		"bytes_down":      e.BytesDown,
		"creation_time":   e.CreationTime,
		"is_introduction": e.IsIntroduction,
		"is_rendezvous":   e.IsRendezvous,
	}
}
