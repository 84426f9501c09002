package models

import (
	"math/rand/v2"
	"time"
)

var downloadStatuses = []string{
	"DLSTATUS_DOWNLOADING",
	"DLSTATUS_SEEDING",
	"DLSTATUS_STOPPED",
	"DLSTATUS_HASHCHECKING",
	"DLSTATUS_METADATA",
}

// DownloadFile é um arquivo como visto pelo download (progresso e seleção).
type DownloadFile struct {
	Name     string  `json:"name"`
	Size     int64   `json:"size"`
	Progress float64 `json:"progress"`
	Included bool    `json:"included"`
	Index    int     `json:"index"`
}

// Download referencia um torrent do pool sem ser dono dele.
// Files, quando não vazio, substitui o manifesto do torrent (ex: download de mídia).
type Download struct {
	Torrent           *Torrent
	IsCreditMining    bool
	IsChannelDownload bool
	Files             []DownloadFile

	Progress    float64
	Status      string
	SpeedDown   int
	SpeedUp     int
	NumPeers    int
	NumSeeds    int
	TotalUp     int64
	TotalDown   int64
	Hops        int
	ETA         int
	TimeAdded   int64
	SafeSeeding bool
}

// DownloadOption ajusta um download na criação.
type DownloadOption func(*Download)

// WithCreditMining marca o download como mineração de crédito.
func WithCreditMining() DownloadOption {
	return func(d *Download) { d.IsCreditMining = true }
}

// WithChannelDownload marca o download como download de canal.
func WithChannelDownload() DownloadOption {
	return func(d *Download) { d.IsChannelDownload = true }
}

// WithMediaFile adiciona um arquivo de vídeo completo, para que o fluxo de "play" funcione.
func WithMediaFile(name string, size int64) DownloadOption {
	return func(d *Download) {
		d.Files = append(d.Files, DownloadFile{
			Name:     name,
			Size:     size,
			Progress: 1.0,
			Included: true,
			Index:    len(d.Files),
		})
	}
}

// NewDownload inicia um download do torrent com estatísticas sorteadas.
func NewDownload(rng *rand.Rand, t *Torrent, opts ...DownloadOption) *Download {
	d := &Download{
		Torrent:     t,
		Progress:    rng.Float64(),
		Status:      downloadStatuses[rng.IntN(len(downloadStatuses))],
		SpeedDown:   RandInt(rng, 0, 1024*1024*4),
		SpeedUp:     RandInt(rng, 0, 1024*1024),
		NumPeers:    RandInt(rng, 0, 50),
		NumSeeds:    RandInt(rng, 0, 50),
		TotalUp:     int64(RandInt(rng, 0, 1024*1024*1024)),
		TotalDown:   int64(RandInt(rng, 0, 1024*1024*1024)),
		Hops:        RandInt(rng, 0, 3),
		ETA:         RandInt(rng, 0, 3600*24),
		TimeAdded:   time.Now().Unix(),
		SafeSeeding: rng.IntN(2) == 0,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// ToJSON serializa o download no formato do cliente.
func (d *Download) ToJSON() map[string]interface{} {
	ratio := 0.0
	if d.TotalDown > 0 {
		ratio = float64(d.TotalUp) / float64(d.TotalDown)
	}
	return map[string]interface{}{
		"name":             d.Torrent.Name,
		"infohash":         d.Torrent.Infohash.String(),
		"size":             d.Torrent.Length,
		"progress":         d.Progress,
		"status":           d.Status,
		"speed_down":       d.SpeedDown,
		"speed_up":         d.SpeedUp,
		"num_peers":        d.NumPeers,
		"num_seeds":        d.NumSeeds,
		"total_up":         d.TotalUp,
		"total_down":       d.TotalDown,
		"ratio":            ratio,
		"eta":              d.ETA,
		"hops":             d.Hops,
		"anon_download":    d.Hops > 0,
		"safe_seeding":     d.SafeSeeding,
		"destination":      "/Users/tribleruser/Downloads",
		"time_added":       d.TimeAdded,
		"credit_mining":    d.IsCreditMining,
		"channel_download": d.IsChannelDownload,
		"vod_mode":         false,
		"error":            "",
		"files":            d.files(),
	}
}

func (d *Download) files() []DownloadFile {
	if len(d.Files) > 0 {
		out := make([]DownloadFile, len(d.Files))
		copy(out, d.Files)
		return out
	}
	out := make([]DownloadFile, 0, len(d.Torrent.Files))
	for i, f := range d.Torrent.Files {
		out = append(out, DownloadFile{
			Name:     f.Path,
			Size:     f.Length,
			Progress: d.Progress,
			Included: true,
			Index:    i,
		})
	}
	return out
}
