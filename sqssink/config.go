package sqssink

import (
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
)

const (
	maxDelay      int32 = 900
	maxBuffer     int32 = 10000
	defaultBuffer int32 = 100
)

// Config is used to parse the sink configuration.
type Config struct {
	// AWS credentials and endpoint
	Key          string `mapstructure:"key"`
	Secret       string `mapstructure:"secret"`
	Region       string `mapstructure:"region"`
	SessionToken string `mapstructure:"session_token"`
	Endpoint     string `mapstructure:"endpoint"`

	// get queue url, do not declare
	SkipQueueDeclaration bool `mapstructure:"skip_queue_declaration"`

	// The name of the queue receiving the log events. A FIFO queue name must
	// end with the .fifo suffix; FIFO queues get per-event deduplication ids.
	Queue *string `mapstructure:"queue"`

	// FIFO only: the message group every log event is sent under. Events in
	// one group are delivered in order.
	MessageGroupID string `mapstructure:"message_group_id"`

	// The duration (in seconds) for which to delay every message. Valid
	// values: 0 to 900. Ignored for FIFO queues.
	DelaySeconds int32 `mapstructure:"delay_seconds"`

	// Buffer is the capacity of the flush-loop channel used when the sink
	// runs in asynchronous mode. Defaults to 100.
	Buffer int32 `mapstructure:"buffer"`

	// A map of attributes applied when the queue is declared, lowercase
	// names as in
	// https://docs.aws.amazon.com/AWSSimpleQueueService/latest/APIReference/API_SetQueueAttributes.html
	Attributes map[string]string `mapstructure:"attributes"`

	// Cost allocation tags applied when the queue is declared.
	Tags map[string]string `mapstructure:"tags"`
}

func (c *Config) InitDefault() {
	if c.Queue == nil {
		c.Queue = aws.String("structlog")
	}

	if c.DelaySeconds < 0 {
		// 0 - ignored by AWS
		c.DelaySeconds = 0
	} else if c.DelaySeconds > maxDelay {
		c.DelaySeconds = maxDelay
	}

	if c.Buffer <= 0 {
		c.Buffer = defaultBuffer
	} else if c.Buffer > maxBuffer {
		c.Buffer = maxBuffer
	}

	if c.Attributes != nil {
		newAttr := make(map[string]string, len(c.Attributes))
		toAwsAttributes(c.Attributes, newAttr)
		// clear old map
		for k := range c.Attributes {
			delete(c.Attributes, k)
		}

		c.Attributes = newAttr
	} else {
		c.Attributes = make(map[string]string)
	}

	if c.Tags == nil {
		c.Tags = make(map[string]string)
	}

	// used for the tests
	if str := os.Getenv("SL_TEST_ENV"); str != "" {
		// All parameters are required for the tests to succeed, so we
		// fail fast here if this is not configured correctly.
		if os.Getenv("SL_SQS_TEST_REGION") == "" ||
			os.Getenv("SL_SQS_TEST_KEY") == "" ||
			os.Getenv("SL_SQS_TEST_SECRET") == "" ||
			os.Getenv("SL_SQS_TEST_ENDPOINT") == "" {
			panic("security check: test mode is enabled, but not all sqs environment parameters are set")
		}
		c.Region = os.Getenv("SL_SQS_TEST_REGION")
		c.Key = os.Getenv("SL_SQS_TEST_KEY")
		c.Secret = os.Getenv("SL_SQS_TEST_SECRET")
		c.Endpoint = os.Getenv("SL_SQS_TEST_ENDPOINT")
	}
}
