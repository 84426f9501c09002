package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/raywall/tribler-emulator/pkg/config"
	"github.com/raywall/tribler-emulator/pkg/dataset"
)

func main() {
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	validateFile := validateCmd.String("file", "", "Caminho do arquivo YAML ou URI s3://")

	generateCmd := flag.NewFlagSet("generate", flag.ExitOnError)
	generateFile := generateCmd.String("file", config.DefaultPath, "Caminho do arquivo YAML ou URI s3://")
	generateSeed := generateCmd.Uint64("seed", 0, "Sobrescreve dataset.seed")

	if len(os.Args) < 2 {
		fmt.Println("Comandos esperados: validate | generate")
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "validate":
		validateCmd.Parse(os.Args[2:])
		if *validateFile == "" {
			fmt.Println("Erro: flag -file é obrigatória")
			os.Exit(1)
		}
		err = runValidate(*validateFile, os.Stdout)
	case "generate":
		generateCmd.Parse(os.Args[2:])
		err = runGenerate(*generateFile, *generateSeed, os.Stdout)
	default:
		fmt.Println("Comando desconhecido")
		os.Exit(1)
	}

	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1) // Falha no CI
	}
}

// runValidate carrega o arquivo, aplicando as validações estruturais e semânticas.
func runValidate(path string, out io.Writer) error {
	fmt.Fprintf(out, "🔍 Analisando configuração: %s ...\n", path)

	cfg, err := config.NewLoader().Load(context.Background(), path)
	if err != nil {
		return fmt.Errorf("erro de carregamento/estrutura:\n%w", err)
	}

	// Output JSON para integração com outras ferramentas
	if os.Getenv("OUTPUT_FORMAT") == "json" {
		jsonOutput, err := json.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("falha ao serializar configuração: %w", err)
		}
		fmt.Fprintln(out, string(jsonOutput))
		return nil
	}
	fmt.Fprintln(out, "✅ Configuração válida")
	return nil
}

// runGenerate gera o dataset sem subir o servidor e imprime o tamanho de cada coleção.
func runGenerate(path string, seed uint64, out io.Writer) error {
	cfg, err := config.NewLoader().Load(context.Background(), path)
	if err != nil {
		return fmt.Errorf("erro de carregamento/estrutura:\n%w", err)
	}
	if seed != 0 {
		cfg.Dataset.Seed = seed
	}
	// seed zero vira relógio; o relatório mostra a seed efetiva para reprodução
	cfg.Dataset.Seed = dataset.EffectiveSeed(cfg.Dataset.Seed)

	world, err := dataset.Generate(cfg.Dataset, dataset.NewRNG(cfg.Dataset.Seed))
	if err != nil {
		return fmt.Errorf("falha ao gerar o dataset: %w", err)
	}

	report := map[string]interface{}{
		"seed":   cfg.Dataset.Seed,
		"counts": world.Counts(),
	}
	return json.NewEncoder(out).Encode(report)
}
