// Copyright 2025 Raywall Malheiros de Souza
// Licensed under the Mozilla Public License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	https://www.mozilla.org/en-US/MPL/2.0/
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// Package tribleremulator é um emulador da API REST de controle do Tribler,
// usado para desenvolver e testar clientes (GUI, scripts) sem um nó real.
//
// Visão Geral:
// Na inicialização um dataset sintético é gerado em memória (canais, torrents,
// downloads, ledger de trustchain, mercado, túneis e DHT). As requisições são
// atendidas a partir desse dataset; apenas assinaturas de canais e novos
// downloads alteram o estado durante a execução.
//
// Sub-Pacotes Principais:
//
// 1. pkg/dataset:
//   - Geração do World com tamanhos configuráveis e seed reprodutível.
//   - Mutações (Subscribe, StartDownload) sob lock, com verificação de invariantes.
//
// 2. pkg/query:
//   - Filtro por substring em "name", ordenação estável e paginação 1-based.
//
// 3. pkg/router e pkg/endpoints:
//   - Árvore de rotas com segmentos estáticos e dinâmicos (chaves em hex).
//   - Erros 400/404/405 em JSON, no mesmo formato do cliente real.
//
// 4. pkg/transport, pkg/graphql, pkg/config:
//   - Servidor HTTP (gorilla/mux) com middleware de observabilidade.
//   - Visão GraphQL somente leitura e stubs configuráveis.
//   - Configuração YAML (arquivo ou s3://) com overrides de ambiente.
//
// Exemplo de Início Rápido:
//
//	EMULATOR_CONFIG_PATH=emulator.yaml EMULATOR_SEED=42 go run ./cmd/emulator
//
//	curl 'localhost:8085/channels?first=1&last=10&sort_by=votes&sort_asc=0'
//	curl -X POST -d subscribe=1 localhost:8085/channels/<public_key>
//	curl -X PUT -d infohash=<infohash> localhost:8085/downloads
//
// Para validar um arquivo sem subir o servidor:
//
//	go run ./cmd/toolkit validate -file emulator.yaml
//	go run ./cmd/toolkit generate -file emulator.yaml -seed 42
package tribleremulator
