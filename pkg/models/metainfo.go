package models

import (
	"bytes"
	"crypto/sha1"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/jackpal/bencode-go"
)

const (
	metainfoPieceLength = 256 * 1024
	metainfoAnnounce    = "udp://tracker.emulator.local:6969/announce"
)

type metainfoFile struct {
	Length int64    `bencode:"length"`
	Path   []string `bencode:"path"`
}

type metainfoInfo struct {
	Files       []metainfoFile `bencode:"files"`
	Name        string         `bencode:"name"`
	PieceLength int64          `bencode:"piece length"`
	Pieces      string         `bencode:"pieces"`
}

type metainfo struct {
	Announce     string       `bencode:"announce"`
	CreatedBy    string       `bencode:"created by"`
	CreationDate int64        `bencode:"creation date"`
	Info         metainfoInfo `bencode:"info"`
}

// Metainfo codifica o torrent como um arquivo .torrent (bencode).
// Os hashes das peças são derivados do infohash, não do conteúdo.
func (t *Torrent) Metainfo() ([]byte, error) {
	var total int64
	files := make([]metainfoFile, 0, len(t.Files))
	for _, f := range t.Files {
		files = append(files, metainfoFile{Length: f.Length, Path: strings.Split(f.Path, "/")})
		total += f.Length
	}

	numPieces := (total + metainfoPieceLength - 1) / metainfoPieceLength
	pieces := make([]byte, 0, numPieces*sha1.Size)
	var idx [8]byte
	for i := int64(0); i < numPieces; i++ {
		binary.BigEndian.PutUint64(idx[:], uint64(i))
		sum := sha1.Sum(append(t.Infohash[:], idx[:]...))
		pieces = append(pieces, sum[:]...)
	}

	mi := metainfo{
		Announce:     metainfoAnnounce,
		CreatedBy:    "tribler-emulator",
		CreationDate: t.TimeAdded,
		Info: metainfoInfo{
			Files:       files,
			Name:        t.Name,
			PieceLength: metainfoPieceLength,
			Pieces:      string(pieces),
		},
	}

	var buf bytes.Buffer
	if err := bencode.Marshal(&buf, mi); err != nil {
		return nil, fmt.Errorf("falha ao codificar metainfo de %s: %w", t.Infohash, err)
	}
	return buf.Bytes(), nil
}
