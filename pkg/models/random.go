package models

import (
	"encoding/hex"
	"fmt"
	"math/rand/v2"
	"strings"
)

var (
	filenameWords = []string{
		"ubuntu", "debian", "archive", "lecture", "podcast", "concert", "sintel", "bunny",
		"documentary", "holiday", "dataset", "backup", "album", "episode", "report", "manual",
		"open", "source", "live", "remaster", "collection", "summer", "winter", "session",
	}
	filenameExtensions = []string{"mkv", "avi", "mp4", "mp3", "flac", "pdf", "epub", "iso", "zip", "txt"}
)

// RandInt retorna um inteiro em [lo, hi], inclusivo nas duas pontas.
func RandInt(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.IntN(hi-lo+1)
}

// RandomFilename monta um nome de arquivo plausível (ex: "summer_concert_live.mkv").
func RandomFilename(rng *rand.Rand) string {
	n := RandInt(rng, 1, 3)
	parts := make([]string, n)
	for i := range parts {
		parts[i] = filenameWords[rng.IntN(len(filenameWords))]
	}
	ext := filenameExtensions[rng.IntN(len(filenameExtensions))]
	return fmt.Sprintf("%s.%s", strings.Join(parts, "_"), ext)
}

// RandomHex retorna n bytes aleatórios codificados em hex.
func RandomHex(rng *rand.Rand, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(rng.IntN(256))
	}
	return hex.EncodeToString(b)
}
