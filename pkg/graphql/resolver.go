package graphql

import (
	"fmt"

	"github.com/graphql-go/graphql"
	"github.com/raywall/tribler-emulator/pkg/models"
	"github.com/raywall/tribler-emulator/pkg/query"
)

func (ge *GraphQLEngine) resolveChannels(p graphql.ResolveParams) (interface{}, error) {
	page, total := ge.world.QueryChannels(toParams(p.Args), toBool(p.Args["subscribed"]))
	return map[string]interface{}{"channels": page, "total": total}, nil
}

func (ge *GraphQLEngine) resolveTorrents(p graphql.ResolveParams) (interface{}, error) {
	params := toParams(p.Args)

	raw, scoped := p.Args["channel"].(string)
	if !scoped || raw == "" {
		page, total := ge.world.QueryTorrents(params)
		return map[string]interface{}{"torrents": page, "total": total}, nil
	}

	pk, err := models.ParseHashID(raw)
	if err != nil {
		return nil, fmt.Errorf("channel inválido: %w", err)
	}
	page, total, err := ge.world.ChannelTorrents(pk, params)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"torrents": page, "total": total}, nil
}

func (ge *GraphQLEngine) resolveChannel(p graphql.ResolveParams) (interface{}, error) {
	pk, err := models.ParseHashID(toString(p.Args["public_key"]))
	if err != nil {
		return nil, fmt.Errorf("public_key inválida: %w", err)
	}
	return ge.world.Channel(pk)
}

func (ge *GraphQLEngine) resolveMyChannel(p graphql.ResolveParams) (interface{}, error) {
	return ge.world.MyChannel()
}

func (ge *GraphQLEngine) resolveDownloads(p graphql.ResolveParams) (interface{}, error) {
	return ge.world.Downloads(), nil
}

func (ge *GraphQLEngine) resolveBlocks(p graphql.ResolveParams) (interface{}, error) {
	return ge.world.LedgerBlocks(), nil
}

// Funções Auxiliares

// toParams converte os argumentos da consulta nos parâmetros do motor de consulta.
func toParams(args map[string]interface{}) query.Params {
	p := query.DefaultParams()
	if v, ok := args["first"].(int); ok {
		p.First = v
	}
	if v, ok := args["last"].(int); ok {
		p.Last = v
	}
	if v, ok := args["sort_asc"].(bool); ok {
		p.SortAsc = v
	}
	if v, ok := args["sort_by"].(string); ok {
		p.SortBy = v
	}
	if v, ok := args["filter"].(string); ok {
		p.Filter = v
	}
	return p
}

func toBool(v interface{}) bool {
	b, _ := v.(bool)
	return b
}

func toString(v interface{}) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}
