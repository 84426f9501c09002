package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

type ConfigValidator struct {
	validate *validator.Validate
}

// NewValidator cria uma nova instância do validador
func NewValidator() *ConfigValidator {
	return &ConfigValidator{
		validate: validator.New(),
	}
}

// Validate realiza validações estruturais (tags) e semânticas (lógica)
func (cv *ConfigValidator) Validate(cfg *EmulatorConfig) error {
	// 1. Validação Estrutural (Tags do struct: required, oneof, etc)
	if err := cv.validate.Struct(cfg); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			var errMsgs []string
			for _, e := range validationErrors {
				errMsgs = append(errMsgs, fmt.Sprintf("Campo '%s' falhou na regra '%s'", e.Namespace(), e.Tag()))
			}
			return fmt.Errorf("erros de validação estrutural:\n- %s", strings.Join(errMsgs, "\n- "))
		}
		return fmt.Errorf("erro de validação estrutural: %w", err)
	}

	// 2. Validação Semântica
	if err := cv.validateSemantics(cfg); err != nil {
		return fmt.Errorf("erro de validação semântica: %w", err)
	}

	return nil
}

func (cv *ConfigValidator) validateSemantics(cfg *EmulatorConfig) error {
	// 1. Stubs não podem repetir método+rota
	seen := make(map[string]bool)
	for _, stub := range cfg.Stubs {
		key := strings.ToUpper(stub.Method) + " " + stub.Path
		if seen[key] {
			return fmt.Errorf("stub duplicado detectado: '%s'", key)
		}
		seen[key] = true
	}

	// 2. O canal próprio exige ao menos um canal gerado
	if cfg.Dataset.CreateMyChannel && cfg.Dataset.Channels.Min == 0 {
		return fmt.Errorf("dataset inválido: 'create_my_channel' exige 'channels.min' maior que zero")
	}

	// 3. A rota GraphQL é obrigatória quando habilitada e não pode colidir com um stub
	if cfg.GraphQL.Enabled {
		if cfg.GraphQL.Route == "" {
			return fmt.Errorf("graphql habilitado sem 'route'")
		}
		for _, stub := range cfg.Stubs {
			if stub.Path == cfg.GraphQL.Route {
				return fmt.Errorf("stub '%s' colide com a rota GraphQL", stub.Path)
			}
		}
	}

	return nil
}
