package messaging

import (
	"doctor-appointment-service/internal/app/config"
	"net"
	"net/url"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	brokerConnectionName = "doctor-appointment-service"
	brokerHeartbeat      = 10 * time.Second
)

// NewRabbitMQ dials the broker that carries appointment notification mail.
// The connection is named so it can be told apart in the management UI.
func NewRabbitMQ(driverConfig *config.DriverConfig, logger *zap.Logger) *amqp091.Connection {
	brokerURL := brokerURL(driverConfig.RabbitMQ)

	properties := amqp091.NewConnectionProperties()
	properties.SetClientConnectionName(brokerConnectionName)

	conn, err := amqp091.DialConfig(brokerURL.String(), amqp091.Config{
		Heartbeat:  brokerHeartbeat,
		Locale:     "en_US",
		Properties: properties,
	})
	if err != nil {
		logger.Fatal("messaging: cannot reach notification broker",
			zap.String("broker", brokerURL.Redacted()),
			zap.Error(err),
		)
	}

	logger.Info("messaging: notification broker connected",
		zap.String("broker", brokerURL.Redacted()),
		zap.String("connection_name", brokerConnectionName),
	)
	return conn
}

func brokerURL(rabbitConfig config.RabbitMQ) *url.URL {
	return &url.URL{
		Scheme: "amqp",
		User:   url.UserPassword(rabbitConfig.Username, rabbitConfig.Password),
		Host:   net.JoinHostPort(rabbitConfig.Host, rabbitConfig.Port),
		Path:   "/",
	}
}
