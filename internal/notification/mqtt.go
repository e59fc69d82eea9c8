package notification

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/faunadex/faunadex-go/internal/conf"
	"github.com/faunadex/faunadex-go/internal/errors"
	"github.com/faunadex/faunadex-go/internal/logging"
)

var mqttLogger = logging.ForService("mqtt")

// MQTTPublisher broadcasts discovery events to an MQTT broker so external
// consumers (home automation, dashboards) can react to sightings.
type MQTTPublisher struct {
	client   mqtt.Client
	settings conf.MQTTSettings
}

// NewMQTTPublisher connects to the configured broker. Connection loss is
// handled by the paho auto reconnect machinery.
func NewMQTTPublisher(settings conf.MQTTSettings) (*MQTTPublisher, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(settings.Broker)
	opts.SetClientID("faunadex-" + uuid.NewString()[:8])
	opts.SetUsername(settings.Username)
	opts.SetPassword(settings.Password)
	opts.SetCleanSession(true)
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		mqttLogger.Warn("broker connection lost", "error", err)
	})
	opts.SetOnConnectHandler(func(mqtt.Client) {
		mqttLogger.Info("connected to broker", "broker", settings.Broker)
	})

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(30 * time.Second) {
		return nil, errors.Newf("mqtt connection timeout").
			Component("mqtt").
			Category(errors.CategoryNetwork).
			Context("broker", settings.Broker).
			Build()
	}
	if err := token.Error(); err != nil {
		return nil, errors.New(fmt.Errorf("mqtt connect: %w", err)).
			Component("mqtt").
			Category(errors.CategoryNetwork).
			Context("broker", settings.Broker).
			Build()
	}

	return &MQTTPublisher{client: client, settings: settings}, nil
}

// PublishDiscovery sends a discovery event to the configured topic.
func (p *MQTTPublisher) PublishDiscovery(event *DiscoveryEvent) error {
	if !p.client.IsConnected() {
		return errors.Newf("not connected to mqtt broker").
			Component("mqtt").
			Category(errors.CategoryMQTTPublish).
			Build()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal discovery event: %w", err)
	}

	token := p.client.Publish(p.settings.Topic, 0, false, payload)
	if !token.WaitTimeout(10 * time.Second) {
		return errors.Newf("mqtt publish timeout").
			Component("mqtt").
			Category(errors.CategoryMQTTPublish).
			Context("topic", p.settings.Topic).
			Build()
	}
	return token.Error()
}

// Close disconnects from the broker.
func (p *MQTTPublisher) Close() {
	if p.client.IsConnected() {
		p.client.Disconnect(250)
	}
}
