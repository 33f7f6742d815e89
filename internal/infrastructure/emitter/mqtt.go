// Package emitter публикует результаты проверок во внешние системы.
package emitter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/sirupsen/logrus"

	"fiber-inspector/internal/domain/entity"
	"fiber-inspector/internal/domain/port"
	"fiber-inspector/internal/infrastructure/storage"
)

const (
	connectTimeout = 5 * time.Second
	publishTimeout = 2 * time.Second
)

// ErrNotConnected нет соединения с брокером.
var ErrNotConnected = errors.New("mqtt not connected")

// Config параметры подключения к брокеру.
type Config struct {
	Broker   string // host:port или URL со схемой
	Topic    string // базовый топик, к нему добавляется /pass или /fail
	ClientID string
	QoS      byte
}

// MQTTPublisher публикует записи проверок в MQTT.
type MQTTPublisher struct {
	cfg    Config
	logger logrus.FieldLogger
	client mqtt.Client

	mu        sync.RWMutex
	published map[string]uint64 // счётчик по топикам
	errors    uint64
	connected bool
}

// NewMQTTPublisher создаёт публикатор. Соединение открывает Connect.
func NewMQTTPublisher(cfg Config, logger logrus.FieldLogger) *MQTTPublisher {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &MQTTPublisher{
		cfg:       cfg,
		logger:    logger.WithField("component", "mqtt"),
		published: make(map[string]uint64),
	}
}

// BrokerURL добавляет схему tcp://, если она не указана.
func BrokerURL(broker string) string {
	if strings.Contains(broker, "://") {
		return broker
	}
	return "tcp://" + broker
}

// Connect устанавливает соединение с брокером.
func (p *MQTTPublisher) Connect(ctx context.Context) error {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(BrokerURL(p.cfg.Broker))
	opts.SetClientID(p.cfg.ClientID)
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(2 * time.Second)
	opts.SetMaxReconnectInterval(30 * time.Second)

	opts.OnConnect = func(c mqtt.Client) {
		p.setConnected(true)
		p.logger.WithField("broker", p.cfg.Broker).Info("mqtt connection established")
	}
	opts.OnConnectionLost = func(c mqtt.Client, err error) {
		p.setConnected(false)
		p.logger.WithError(err).Warn("mqtt connection lost, will auto-reconnect")
	}

	p.client = mqtt.NewClient(opts)
	p.logger.WithField("broker", p.cfg.Broker).Info("connecting to mqtt broker")

	token := p.client.Connect()
	select {
	case <-token.Done():
	case <-time.After(connectTimeout):
		return errors.New("mqtt connection timeout")
	case <-ctx.Done():
		return ctx.Err()
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt connection failed: %w", err)
	}

	p.setConnected(true)
	return nil
}

// Topic топик для записи: <base>/pass или <base>/fail.
func Topic(base string, rec *entity.InspectionRecord) string {
	verdict := "fail"
	if rec.Result != nil && rec.Result.Acceptable {
		verdict = "pass"
	}
	return strings.TrimSuffix(base, "/") + "/" + verdict
}

// Publish отправляет запись в JSON (без изображения).
func (p *MQTTPublisher) Publish(ctx context.Context, rec *entity.InspectionRecord) error {
	if !p.isConnected() {
		p.countError()
		return ErrNotConnected
	}

	payload, err := storage.MarshalRecord(rec)
	if err != nil {
		p.countError()
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	topic := Topic(p.cfg.Topic, rec)

	token := p.client.Publish(topic, p.cfg.QoS, false, payload)
	select {
	case <-token.Done():
	case <-time.After(publishTimeout):
		p.countError()
		return errors.New("publish timeout")
	case <-ctx.Done():
		p.countError()
		return ctx.Err()
	}
	if err := token.Error(); err != nil {
		p.countError()
		return fmt.Errorf("publish failed: %w", err)
	}

	p.mu.Lock()
	p.published[topic]++
	p.mu.Unlock()

	p.logger.WithFields(logrus.Fields{
		"topic": topic,
		"qos":   p.cfg.QoS,
		"size":  len(payload),
	}).Debug("inspection record published")
	return nil
}

// Disconnect закрывает соединение.
func (p *MQTTPublisher) Disconnect() {
	if p.client != nil && p.client.IsConnected() {
		p.client.Disconnect(250)
		p.logger.Info("mqtt disconnected")
	}
	p.setConnected(false)
}

// Stats статистика публикаций
type Stats struct {
	Connected bool
	Published map[string]uint64
	Errors    uint64
}

// Stats возвращает копию статистики.
func (p *MQTTPublisher) Stats() Stats {
	p.mu.RLock()
	defer p.mu.RUnlock()

	published := make(map[string]uint64, len(p.published))
	for k, v := range p.published {
		published[k] = v
	}
	return Stats{
		Connected: p.connected,
		Published: published,
		Errors:    p.errors,
	}
}

func (p *MQTTPublisher) isConnected() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.connected
}

func (p *MQTTPublisher) setConnected(v bool) {
	p.mu.Lock()
	p.connected = v
	p.mu.Unlock()
}

func (p *MQTTPublisher) countError() {
	p.mu.Lock()
	p.errors++
	p.mu.Unlock()
}

var _ port.ResultPublisher = (*MQTTPublisher)(nil)
