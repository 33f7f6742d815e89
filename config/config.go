package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/shirou/gopsutil/v3/cpu"
	"gopkg.in/yaml.v3"

	"fiber-inspector/internal/domain/entity"
)

// DefaultWorkers число обработчиков пакета по умолчанию.
const DefaultWorkers = 4

type Config struct {
	Analysis AnalysisConfig `yaml:"analysis"`
	Batch    BatchConfig    `yaml:"batch"`
	Storage  StorageConfig  `yaml:"storage"`
	Telegram TelegramConfig `yaml:"telegram"`
	MQTT     MQTTConfig     `yaml:"mqtt"`
	Log      LogConfig      `yaml:"log"`
}

// AnalysisConfig эталонные параметры анализа
type AnalysisConfig struct {
	IdealCoreCladRatio float64 `yaml:"ideal_core_clad_ratio"`
	MaxAllowedDefects  float64 `yaml:"max_allowed_defects"`
	MinDefectArea      float64 `yaml:"min_defect_area"`
	MaxDefectArea      float64 `yaml:"max_defect_area"`
}

type BatchConfig struct {
	Workers int `yaml:"workers"` // 0: по числу физических ядер
}

type StorageConfig struct {
	ResultsDir string `yaml:"results_dir"` // пусто: записи только в памяти
}

type TelegramConfig struct {
	Token string `yaml:"token"`
}

// MQTTConfig публикация результатов, выключена при пустом Broker
type MQTTConfig struct {
	Broker   string `yaml:"broker"`
	Topic    string `yaml:"topic"`
	ClientID string `yaml:"client_id"`
	QoS      byte   `yaml:"qos"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Default возвращает конфигурацию по умолчанию.
func Default() *Config {
	p := entity.DefaultParams()
	return &Config{
		Analysis: AnalysisConfig{
			IdealCoreCladRatio: p.IdealCoreCladRatio,
			MaxAllowedDefects:  p.MaxAllowedDefects,
			MinDefectArea:      p.MinDefectArea,
			MaxDefectArea:      p.MaxDefectArea,
		},
		Batch: BatchConfig{Workers: DefaultWorkers},
		MQTT: MQTTConfig{
			Topic:    "fiber/results",
			ClientID: "fiber-inspector",
			QoS:      1,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load собирает конфигурацию: значения по умолчанию, затем YAML, затем переменные окружения.
// path может быть пустым, тогда берётся FIBER_CONFIG.
func Load(path string) (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := Default()

	if path == "" {
		path = os.Getenv("FIBER_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("TELEGRAM_TOKEN"); v != "" {
		c.Telegram.Token = v
	}
	if v := os.Getenv("FIBER_RESULTS_DIR"); v != "" {
		c.Storage.ResultsDir = v
	}
	if v := os.Getenv("MQTT_BROKER"); v != "" {
		c.MQTT.Broker = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("FIBER_IDEAL_RATIO"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("FIBER_IDEAL_RATIO: %w", err)
		}
		c.Analysis.IdealCoreCladRatio = f
	}
	if v := os.Getenv("FIBER_MAX_DEFECTS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("FIBER_MAX_DEFECTS: %w", err)
		}
		c.Analysis.MaxAllowedDefects = f
	}
	return nil
}

// Validate проверяет значения и подставляет вычисляемые умолчания.
func (c *Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return err
	}
	if c.Batch.Workers < 0 {
		return fmt.Errorf("batch.workers must be >= 0, got %d", c.Batch.Workers)
	}
	if c.Batch.Workers == 0 {
		c.Batch.Workers = autoWorkers()
	}
	if c.MQTT.QoS > 2 {
		return fmt.Errorf("mqtt.qos must be 0, 1 or 2, got %d", c.MQTT.QoS)
	}
	if c.MQTT.Broker != "" && c.MQTT.Topic == "" {
		return errors.New("mqtt.topic is required when mqtt.broker is set")
	}
	return nil
}

// Params параметры анализа в виде доменного значения.
func (c *Config) Params() entity.Params {
	return entity.Params{
		IdealCoreCladRatio: c.Analysis.IdealCoreCladRatio,
		MaxAllowedDefects:  c.Analysis.MaxAllowedDefects,
		MinDefectArea:      c.Analysis.MinDefectArea,
		MaxDefectArea:      c.Analysis.MaxDefectArea,
	}
}

func autoWorkers() int {
	n, err := cpu.Counts(false)
	if err != nil || n <= 0 {
		return DefaultWorkers
	}
	return n
}
