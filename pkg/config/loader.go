package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// DefaultPath é usado quando EMULATOR_CONFIG_PATH não está definido.
const DefaultPath = "emulator.yaml"

// --- Interfaces para Mocking ---

type S3Downloader interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Loader suporta múltiplas fontes de configuração (Local e S3).
type Loader struct {
	validator *ConfigValidator
	s3Client  S3Downloader
}

// NewLoader cria uma nova instância. O cliente S3 só é criado se uma fonte s3:// for usada.
func NewLoader() *Loader {
	return &Loader{
		validator: NewValidator(),
	}
}

// WithS3Client injeta um cliente S3 (útil em testes).
func (l *Loader) WithS3Client(client S3Downloader) *Loader {
	l.s3Client = client
	return l
}

// Load resolve a fonte a partir do ambiente (EMULATOR_CONFIG_PATH) e carrega a configuração.
// Se a fonte padrão não existir, os valores default são usados para não quebrar a inicialização.
func Load(ctx context.Context) (*EmulatorConfig, error) {
	source := os.Getenv("EMULATOR_CONFIG_PATH")
	loader := NewLoader()

	if source == "" {
		cfg, err := loader.Load(ctx, DefaultPath)
		if errors.Is(err, fs.ErrNotExist) {
			log.Warn().Msgf("Aviso: %s não encontrado, iniciando com a configuração padrão", DefaultPath)
			return loader.Finalize(Default())
		}
		return cfg, err
	}

	return loader.Load(ctx, source)
}

// Load detecta o esquema da fonte e carrega a configuração.
func (l *Loader) Load(ctx context.Context, source string) (*EmulatorConfig, error) {
	var rawData []byte
	var err error

	if strings.HasPrefix(source, "s3://") {
		client := l.s3Client
		if client == nil {
			awsCfg, cfgErr := awsconfig.LoadDefaultConfig(ctx)
			if cfgErr != nil {
				return nil, fmt.Errorf("falha ao carregar credenciais AWS: %w", cfgErr)
			}
			client = s3.NewFromConfig(awsCfg)
		}
		rawData, err = l.loadFromS3(ctx, client, source)
	} else {
		rawData, err = l.loadFromFile(source)
	}

	if err != nil {
		return nil, fmt.Errorf("falha leitura config (%s): %w", source, err)
	}

	return l.parse(rawData)
}

func (l *Loader) loadFromFile(path string) ([]byte, error) {
	// Suporta tanto "file://emulator.yaml" quanto apenas "emulator.yaml"
	cleanPath := strings.TrimPrefix(path, "file://")
	return os.ReadFile(cleanPath)
}

func (l *Loader) loadFromS3(ctx context.Context, client S3Downloader, uri string) ([]byte, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("URL S3 inválida: %w", err)
	}
	bucket := u.Host
	key := strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return nil, fmt.Errorf("URL S3 inválida: bucket e chave são obrigatórios em %q", uri)
	}

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	})
	if err != nil {
		return nil, err
	}
	defer out.Body.Close()

	return io.ReadAll(out.Body)
}

// parse aplica o YAML sobre os defaults, depois o ambiente, e valida.
func (l *Loader) parse(data []byte) (*EmulatorConfig, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("YAML malformado: %w", err)
	}
	return l.Finalize(cfg)
}

// Finalize aplica as variáveis de ambiente e valida a configuração.
func (l *Loader) Finalize(cfg *EmulatorConfig) (*EmulatorConfig, error) {
	if err := ApplyEnv(cfg); err != nil {
		return nil, fmt.Errorf("falha na injeção de variáveis: %w", err)
	}

	if l.validator != nil {
		if err := l.validator.Validate(cfg); err != nil {
			return nil, fmt.Errorf("validação da configuração falhou: %w", err)
		}
	}

	return cfg, nil
}
