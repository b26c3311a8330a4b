package export

import (
	"github.com/IBM/sarama"
	"github.com/code19m/errx"
)

// Config holds the kafka producer settings of the exporter.
type Config struct {
	Enabled bool `yaml:"enabled" default:"false"`

	Brokers      string `yaml:"brokers"       validate:"required_if=Enabled true"`
	Topic        string `yaml:"topic"         default:"agenda.events"`
	SaslUsername string `yaml:"sasl_username"`
	SaslPassword string `yaml:"sasl_password" mask:"true"`

	KafkaVersion string `yaml:"kafka_version" default:"3.6.0"`
}

func (c Config) saramaConfig(clientID string) (*sarama.Config, error) {
	saramaCfg := sarama.NewConfig()
	saramaCfg.ClientID = clientID

	version, err := sarama.ParseKafkaVersion(c.KafkaVersion)
	if err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(errx.D{"kafka_version": c.KafkaVersion}))
	}
	saramaCfg.Version = version

	// Only SASL_PLAINTEXT is supported.
	if c.SaslUsername != "" && c.SaslPassword != "" {
		saramaCfg.Net.SASL.Enable = true
		saramaCfg.Net.SASL.User = c.SaslUsername
		saramaCfg.Net.SASL.Password = c.SaslPassword
		saramaCfg.Net.SASL.Mechanism = sarama.SASLTypePlaintext
	}

	// required by the sync producer
	saramaCfg.Producer.Return.Successes = true
	saramaCfg.Producer.Return.Errors = true
	saramaCfg.Producer.RequiredAcks = sarama.WaitForAll

	return saramaCfg, nil
}
