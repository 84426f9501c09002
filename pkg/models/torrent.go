package models

import (
	"math/rand/v2"
	"time"
)

// Status de um torrent dentro de um canal.
const (
	StatusCommitted = "committed"
	StatusNew       = "new"
	StatusToDelete  = "todelete"
)

// Categories é o conjunto fechado de categorias de torrent.
var Categories = []string{"document", "audio", "video", "xxx"}

// TorrentFile é uma entrada do manifesto de arquivos do torrent.
type TorrentFile struct {
	Path   string `json:"path"`
	Length int64  `json:"length"`
}

// Torrent é compartilhado entre o pool global, canais e downloads.
// O tamanho total não é a soma dos arquivos: ambos são sorteados de forma independente.
type Torrent struct {
	Infohash       HashID
	Name           string
	Length         int64
	Category       string
	Files          []TorrentFile
	Status         string
	NumSeeders     int
	NumLeechers    int
	RelevanceScore float64
	TimeAdded      int64
}

// RandomTorrent cria um torrent com 1 a 20 arquivos.
func RandomTorrent(rng *rand.Rand) *Torrent {
	t := &Torrent{
		Infohash:       RandomHashID(rng),
		Name:           RandomFilename(rng),
		Length:         int64(RandInt(rng, 1024, 1024*3000)),
		Category:       Categories[rng.IntN(len(Categories))],
		Status:         StatusCommitted,
		RelevanceScore: rng.Float64() * 20,
		TimeAdded:      int64(RandInt(rng, 1200000000, 1460000000)),
	}

	// metade dos torrents nunca teve resposta de tracker
	if rng.IntN(2) == 0 {
		t.NumSeeders = RandInt(rng, 0, 500)
	}
	if rng.IntN(2) == 0 {
		t.NumLeechers = RandInt(rng, 0, 500)
	}

	numFiles := RandInt(rng, 1, 20)
	t.Files = make([]TorrentFile, 0, numFiles)
	for i := 0; i < numFiles; i++ {
		t.Files = append(t.Files, TorrentFile{
			Path:   RandomFilename(rng),
			Length: int64(RandInt(rng, 1024, 1024*3000)),
		})
	}
	return t
}

// ToJSON devolve o mapeamento de wire usado pelas listagens.
func (t *Torrent) ToJSON(includeStatus bool) map[string]interface{} {
	result := map[string]interface{}{
		"name":               t.Name,
		"infohash":           t.Infohash.String(),
		"size":               t.Length,
		"category":           t.Category,
		"relevance_score":    t.RelevanceScore,
		"num_seeders":        t.NumSeeders,
		"num_leechers":       t.NumLeechers,
		"last_tracker_check": time.Now().Unix(),
	}
	if includeStatus {
		result["status"] = t.Status
	}
	return result
}

// DetailJSON acrescenta o manifesto de arquivos ao mapeamento de listagem.
func (t *Torrent) DetailJSON(includeStatus bool) map[string]interface{} {
	result := t.ToJSON(includeStatus)
	files := make([]TorrentFile, len(t.Files))
	copy(files, t.Files)
	result["files"] = files
	result["time_added"] = t.TimeAdded
	return result
}
