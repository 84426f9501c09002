package dataset

import (
	"math/rand/v2"

	"github.com/raywall/tribler-emulator/pkg/models"
)

// buildSettings monta o payload estático de /settings.
func buildSettings(rng *rand.Rand) map[string]interface{} {
	videoPort := models.RandInt(rng, 1024, 65535)

	return map[string]interface{}{
		"settings": map[string]interface{}{
			"general": map[string]interface{}{
				"family_filter": true,
				"minport":       1234,
				"log_dir":       "/Users/tribleruser/log",
			},
			"video_server": map[string]interface{}{
				"enabled": true,
				"port":    "-1",
			},
			"libtorrent": map[string]interface{}{
				"enabled":                  true,
				"port":                     1234,
				"proxy_type":               0,
				"proxy_server":             nil,
				"proxy_auth":               nil,
				"utp":                      true,
				"max_upload_rate":          100,
				"max_download_rate":        200,
				"max_connections_download": 5,
			},
			"watch_folder": map[string]interface{}{
				"enabled":   true,
				"directory": "/Users/tribleruser/watchfolder",
			},
			"download_defaults": map[string]interface{}{
				"seeding_mode":        "ratio",
				"seeding_time":        60,
				"seeding_ratio":       2.0,
				"saveas":              "bla",
				"number_hops":         1,
				"anonymity_enabled":   true,
				"safeseeding_enabled": true,
			},
			"ipv8": map[string]interface{}{
				"enabled":     true,
				"use_testnet": false,
				"statistics":  true,
			},
			"trustchain":       map[string]interface{}{"enabled": true},
			"tunnel_community": map[string]interface{}{"exitnode_enabled": true},
			"search_community": map[string]interface{}{"enabled": true},
			"credit_mining": map[string]interface{}{
				"enabled":        true,
				"sources":        []string{},
				"max_disk_space": 100,
			},
			"resource_monitor": map[string]interface{}{"enabled": true},
			"chant": map[string]interface{}{
				"enabled":      true,
				"channel_edit": true,
			},
		},
		"ports": map[string]interface{}{
			"video_server~port": videoPort,
		},
	}
}
