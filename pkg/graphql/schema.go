package graphql

import (
	"fmt"
	"strings"

	"github.com/graphql-go/graphql"
)

// typeDef descreve um tipo objeto: campo -> tipo na notação SDL (ex: "[Torrent]", "Int!").
type typeDef struct {
	description string
	fields      map[string]string
}

// objectTypes são os tipos expostos. Os nomes dos campos são os mesmos da API REST,
// de modo que o resolver padrão lê direto dos mapeamentos de wire.
var objectTypes = map[string]typeDef{
	"Channel": {
		description: "Canal com o seu subconjunto de torrents",
		fields: map[string]string{
			"id":          "Int!",
			"public_key":  "String!",
			"name":        "String",
			"description": "String",
			"subscribed":  "Boolean",
			"torrents":    "Int",
			"votes":       "Int",
			"updated":     "Float",
			"state":       "String",
		},
	},
	"Torrent": {
		fields: map[string]string{
			"infohash":           "String!",
			"name":               "String",
			"size":               "Float",
			"category":           "String",
			"relevance_score":    "Float",
			"num_seeders":        "Int",
			"num_leechers":       "Int",
			"last_tracker_check": "Float",
			"status":             "String",
		},
	},
	"Download": {
		fields: map[string]string{
			"infohash":         "String!",
			"name":             "String",
			"size":             "Float",
			"progress":         "Float",
			"status":           "String",
			"speed_down":       "Int",
			"speed_up":         "Int",
			"num_peers":        "Int",
			"num_seeds":        "Int",
			"hops":             "Int",
			"eta":              "Int",
			"credit_mining":    "Boolean",
			"channel_download": "Boolean",
		},
	},
	"Block": {
		description: "Bloco do ledger de trustchain",
		fields: map[string]string{
			"public_key":      "String!",
			"sequence_number": "Int!",
			"previous_hash":   "String",
			"hash":            "String",
			"timestamp":       "Float",
			"insert_time":     "String",
		},
	},
	"ChannelPage": {
		fields: map[string]string{
			"channels": "[Channel]",
			"total":    "Int!",
		},
	},
	"TorrentPage": {
		fields: map[string]string{
			"torrents": "[Torrent]",
			"total":    "Int!",
		},
	},
}

// buildObjects cria os tipos em duas fases (declaração e campos) para permitir referências cruzadas.
func buildObjects() (map[string]*graphql.Object, error) {
	objects := make(map[string]*graphql.Object, len(objectTypes))

	// 1. Declara objetos
	for name, def := range objectTypes {
		objects[name] = graphql.NewObject(graphql.ObjectConfig{
			Name:        name,
			Description: def.description,
			Fields:      graphql.Fields{},
		})
	}

	// 2. Preenche campos
	for name, def := range objectTypes {
		obj := objects[name]
		for fieldName, typeStr := range def.fields {
			gqlType, err := resolveType(typeStr, objects)
			if err != nil {
				return nil, fmt.Errorf("erro tipo %s.%s: %w", name, fieldName, err)
			}
			obj.AddFieldConfig(fieldName, &graphql.Field{Type: gqlType})
		}
	}
	return objects, nil
}

func resolveType(typeStr string, objects map[string]*graphql.Object) (graphql.Output, error) {
	typeStr = strings.TrimSpace(typeStr)

	if strings.HasSuffix(typeStr, "!") {
		inner, err := resolveType(typeStr[:len(typeStr)-1], objects)
		if err != nil {
			return nil, err
		}
		return graphql.NewNonNull(inner), nil
	}

	if strings.HasPrefix(typeStr, "[") && strings.HasSuffix(typeStr, "]") {
		inner, err := resolveType(typeStr[1:len(typeStr)-1], objects)
		if err != nil {
			return nil, err
		}
		return graphql.NewList(inner), nil
	}

	switch typeStr {
	case "String":
		return graphql.String, nil
	case "Int":
		return graphql.Int, nil
	case "Float":
		return graphql.Float, nil
	case "Boolean":
		return graphql.Boolean, nil
	case "ID":
		return graphql.ID, nil
	}
	if obj, ok := objects[typeStr]; ok {
		return obj, nil
	}
	return nil, fmt.Errorf("tipo desconhecido: %s", typeStr)
}

// listArgs são os argumentos das consultas paginadas.
func listArgs(extra graphql.FieldConfigArgument) graphql.FieldConfigArgument {
	args := graphql.FieldConfigArgument{
		"first":    &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 1},
		"last":     &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 50},
		"sort_by":  &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
		"sort_asc": &graphql.ArgumentConfig{Type: graphql.Boolean, DefaultValue: true},
		"filter":   &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
	}
	for k, v := range extra {
		args[k] = v
	}
	return args
}
