// Package graphql expõe uma visão somente leitura do dataset via GraphQL.
// As consultas paginadas passam pelo mesmo motor de consulta da API REST.
package graphql

import (
	"context"

	"github.com/graphql-go/graphql"
	"github.com/raywall/tribler-emulator/pkg/dataset"
)

type GraphQLEngine struct {
	Schema graphql.Schema
	world  *dataset.World
}

func NewGraphQLEngine(world *dataset.World) (*GraphQLEngine, error) {
	engine := &GraphQLEngine{world: world}

	schema, err := engine.buildSchema()
	if err != nil {
		return nil, err
	}

	engine.Schema = schema
	return engine, nil
}

func (ge *GraphQLEngine) Execute(ctx context.Context, query string, variables map[string]interface{}) *graphql.Result {
	params := graphql.Params{
		Schema:         ge.Schema,
		RequestString:  query,
		VariableValues: variables,
		Context:        ctx,
	}
	return graphql.Do(params)
}

func (ge *GraphQLEngine) buildSchema() (graphql.Schema, error) {
	objects, err := buildObjects()
	if err != nil {
		return graphql.Schema{}, err
	}

	rootQueryFields := graphql.Fields{
		"channels": &graphql.Field{
			Type: objects["ChannelPage"],
			Args: listArgs(graphql.FieldConfigArgument{
				"subscribed": &graphql.ArgumentConfig{Type: graphql.Boolean, DefaultValue: false},
			}),
			Resolve: ge.resolveChannels,
		},
		"torrents": &graphql.Field{
			Type:        objects["TorrentPage"],
			Description: "Torrents do pool, ou de um canal quando channel é informado",
			Args: listArgs(graphql.FieldConfigArgument{
				"channel": &graphql.ArgumentConfig{Type: graphql.String},
			}),
			Resolve: ge.resolveTorrents,
		},
		"channel": &graphql.Field{
			Type: objects["Channel"],
			Args: graphql.FieldConfigArgument{
				"public_key": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: ge.resolveChannel,
		},
		"mychannel": &graphql.Field{
			Type:    objects["Channel"],
			Resolve: ge.resolveMyChannel,
		},
		"downloads": &graphql.Field{
			Type:    graphql.NewList(objects["Download"]),
			Resolve: ge.resolveDownloads,
		},
		"blocks": &graphql.Field{
			Type:    graphql.NewList(objects["Block"]),
			Resolve: ge.resolveBlocks,
		},
	}

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: graphql.NewObject(graphql.ObjectConfig{
			Name:   "Query",
			Fields: rootQueryFields,
		}),
	})
}
