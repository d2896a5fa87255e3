package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/diillson/aws-ops-scripts-go/internal/domain/repository"
	"github.com/diillson/aws-ops-scripts-go/internal/shared/types"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

type decodeFunc func(data []byte, v interface{}) error

var decoders = map[string]decodeFunc{
	".toml": toml.Unmarshal,
	".yaml": yaml.Unmarshal,
	".yml":  yaml.Unmarshal,
	".json": json.Unmarshal,
}

// ConfigRepositoryImpl implementa o ConfigRepository.
type ConfigRepositoryImpl struct{}

// NewConfigRepository cria uma nova implementação do ConfigRepository.
func NewConfigRepository() repository.ConfigRepository {
	return &ConfigRepositoryImpl{}
}

// LoadConfigFile lê um arquivo TOML, YAML ou JSON e aplica seus valores sobre os padrões.
// Um caminho vazio devolve apenas os padrões.
func (r *ConfigRepositoryImpl) LoadConfigFile(filePath string) (*types.Config, error) {
	cfg := types.DefaultConfig()
	if filePath == "" {
		return cfg, nil
	}

	ext := strings.ToLower(filepath.Ext(filePath))
	decode, ok := decoders[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported config file format: %s", ext)
	}

	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error accessing config file: %w", err)
	}
	if fileInfo.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", filePath)
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var fromFile types.Config
	if err := decode(fileData, &fromFile); err != nil {
		return nil, fmt.Errorf("error parsing %s file: %w", strings.ToUpper(strings.TrimPrefix(ext, ".")), err)
	}

	cfg.Merge(&fromFile)
	return cfg, nil
}
