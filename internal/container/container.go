package container

import (
	"context"

	"github.com/sirupsen/logrus"

	"fiber-inspector/config"
	"fiber-inspector/internal/analysis"
	app "fiber-inspector/internal/application"
	"fiber-inspector/internal/domain/entity"
	"fiber-inspector/internal/domain/port"
	"fiber-inspector/internal/infrastructure/emitter"
	"fiber-inspector/internal/infrastructure/imageio"
	"fiber-inspector/internal/infrastructure/render"
	"fiber-inspector/internal/infrastructure/storage"
	"fiber-inspector/internal/infrastructure/vision"
)

type Container struct {
	Config            *config.Config
	Results           port.ResultRepository
	Publisher         *emitter.MQTTPublisher // nil, если MQTT не настроен
	UserService       *app.UserService
	InspectionService *app.InspectionService
	BatchService      *app.BatchService
}

// NewAnalyzer собирает анализатор на gocv-примитивах и растровом холсте.
func NewAnalyzer(params entity.Params, logger logrus.FieldLogger) (*analysis.Analyzer, error) {
	return analysis.NewAnalyzer(analysis.Components{
		Vision:  vision.NewGoCVPrimitives(),
		Painter: render.NewPainter(),
		Logger:  logger,
	}, params)
}

// New собирает сервисы приложения по конфигурации.
// Недоступный MQTT-брокер не мешает запуску: публикация отключается.
func New(ctx context.Context, cfg *config.Config, logger logrus.FieldLogger) (*Container, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	var results port.ResultRepository = storage.NewMemoryResultRepository()
	if cfg.Storage.ResultsDir != "" {
		repo, err := storage.NewFileResultRepository(cfg.Storage.ResultsDir, logger)
		if err != nil {
			return nil, err
		}
		results = repo
	}

	c := &Container{Config: cfg, Results: results}

	var publisher port.ResultPublisher
	if cfg.MQTT.Broker != "" {
		p := emitter.NewMQTTPublisher(emitter.Config{
			Broker:   cfg.MQTT.Broker,
			Topic:    cfg.MQTT.Topic,
			ClientID: cfg.MQTT.ClientID,
			QoS:      cfg.MQTT.QoS,
		}, logger)
		if err := p.Connect(ctx); err != nil {
			logger.WithError(err).Warn("mqtt publishing disabled")
		} else {
			c.Publisher = p
			publisher = p
		}
	}

	params := cfg.Params()
	analyzer, err := NewAnalyzer(params, logger)
	if err != nil {
		return nil, err
	}
	factory := func() (port.FiberAnalyzer, error) {
		return NewAnalyzer(params, logger)
	}

	codec := imageio.NewCodec()
	c.UserService = app.NewUserService(storage.NewMemoryUserRepository())
	c.InspectionService = app.NewInspectionService(c.UserService, analyzer, codec, results, publisher, logger)
	c.BatchService = app.NewBatchService(factory, codec, results, publisher, logger)

	return c, nil
}

// Close освобождает внешние соединения.
func (c *Container) Close() {
	if c.Publisher != nil {
		c.Publisher.Disconnect()
	}
}
