package sqssink

import (
	"context"
	stderr "errors"
	"strings"
	"sync/atomic"
	"time"
	"unsafe"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/aws/smithy-go"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/roadrunner-server/errors"
	"github.com/structlog-go/structlog"
	jprop "go.opentelemetry.io/contrib/propagators/jaeger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

const (
	tracerName string = "structlog"
	fifoSuffix string = ".fifo"

	StringType string = "String"
	BinaryType string = "Binary"

	// NonExistentQueue AWS error code
	NonExistentQueue string = "AWS.SimpleQueueService.NonExistentQueue"

	// message attribute keys
	AttrEventID string = "SL-Event-Id"
	AttrLevel   string = "SL-Level"
	AttrLogger  string = "SL-Logger"
	AttrHeaders string = "SL-Headers"
)

var _ structlog.Backend = (*Sink)(nil)

type Sink struct {
	log    *zap.Logger
	client *sqs.Client
	tracer *sdktrace.TracerProvider
	prop   propagation.TextMapPropagator

	queue          *string
	queueURL       *string
	messageGroupID string
	delaySeconds   int32

	// queue optional parameters
	attributes map[string]string
	tags       map[string]string

	eventsCh  chan *sqs.SendMessageInput
	pauseCh   chan struct{}
	listeners uint32
	stopped   uint64
}

// New constructs a sink for the configured queue, declaring it unless
// SkipQueueDeclaration is set. Inside AWS the default credential chain is
// used, with config values as overrides; outside it the static credentials
// from the configuration are required.
func New(cfg *Config, log *zap.Logger, tracer *sdktrace.TracerProvider) (*Sink, error) {
	const op = errors.Op("new_sqs_sink")

	if cfg == nil {
		return nil, errors.E(op, errors.Str("no configuration provided"))
	}

	if log == nil {
		log = zap.NewNop()
	}

	if tracer == nil {
		tracer = sdktrace.NewTracerProvider()
	}

	prop := propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}, jprop.Jaeger{})
	otel.SetTextMapPropagator(prop)

	cfg.InitDefault()

	/*
		we need to determine in what environment we are running
		1. Non-AWS - the credentials should come from the global config
		2. AWS - configuration should be obtained from the env
	*/
	insideAWS := isInAWS() || isInAWSIMDSv2()

	client, err := newClient(insideAWS, cfg.Key, cfg.Secret, cfg.SessionToken, cfg.Endpoint, cfg.Region)
	if err != nil {
		return nil, errors.E(op, err)
	}

	s := &Sink{
		log:            log,
		client:         client,
		tracer:         tracer,
		prop:           prop,
		queue:          cfg.Queue,
		messageGroupID: cfg.MessageGroupID,
		delaySeconds:   cfg.DelaySeconds,
		attributes:     cfg.Attributes,
		tags:           cfg.Tags,
		eventsCh:       make(chan *sqs.SendMessageInput, cfg.Buffer),
		pauseCh:        make(chan struct{}, 1),
	}

	switch cfg.SkipQueueDeclaration {
	case true:
		s.queueURL, err = getQueueURL(client, s.queue)
		if err != nil {
			return nil, errors.E(op, err)
		}
	case false:
		s.queueURL, err = createQueue(client, s.queue, s.attributes, s.tags)
		if err != nil {
			return nil, errors.E(op, err)
		}

		// after a queue is created, at least one second has to pass before
		// it can be used
		time.Sleep(time.Second)
	}

	return s, nil
}

// Emit implements structlog.Backend. The event is rendered as JSON and sent
// to the queue, either directly or through the flush loop when Run was
// called.
func (s *Sink) Emit(ctx context.Context, level string, ev structlog.Event) error {
	const op = errors.Op("sqs_sink_emit")

	if atomic.LoadUint64(&s.stopped) == 1 {
		return errors.E(op, errors.Str("sink was stopped"))
	}

	ctx, span := s.tracer.Tracer(tracerName).Start(ctx, "sqs_emit")
	defer span.End()

	msg, err := s.pack(ctx, level, ev)
	if err != nil {
		span.RecordError(err)
		return errors.E(op, err)
	}

	if atomic.LoadUint32(&s.listeners) > 0 {
		s.eventsCh <- msg
		return nil
	}

	if err := s.send(ctx, msg); err != nil {
		span.RecordError(err)
		return errors.E(op, err)
	}

	return nil
}

func (s *Sink) pack(ctx context.Context, level string, ev structlog.Event) (*sqs.SendMessageInput, error) {
	body, err := json.Marshal(ev)
	if err != nil {
		return nil, err
	}

	// propagated trace context travels in a message attribute
	headers := make(map[string][]string, 3)
	s.prop.Inject(ctx, propagation.HeaderCarrier(headers))

	hd, err := json.Marshal(headers)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()

	return &sqs.SendMessageInput{
		MessageBody:            aws.String(bytesToStr(body)),
		QueueUrl:               s.queueURL,
		DelaySeconds:           delay(s.queue, s.delaySeconds),
		MessageDeduplicationId: dedup(id, s.queue),
		// message group used for the FIFO
		MessageGroupId: mgr(s.messageGroupID),
		MessageAttributes: map[string]types.MessageAttributeValue{
			AttrEventID: {DataType: aws.String(StringType), BinaryValue: nil, BinaryListValues: nil, StringListValues: nil, StringValue: aws.String(id)},
			AttrLevel:   {DataType: aws.String(StringType), BinaryValue: nil, BinaryListValues: nil, StringListValues: nil, StringValue: aws.String(level)},
			AttrLogger:  {DataType: aws.String(StringType), BinaryValue: nil, BinaryListValues: nil, StringListValues: nil, StringValue: aws.String(ev.String(structlog.LoggerKey, ""))},
			AttrHeaders: {DataType: aws.String(BinaryType), BinaryValue: hd, BinaryListValues: nil, StringListValues: nil, StringValue: nil},
		},
	}, nil
}

func (s *Sink) send(ctx context.Context, msg *sqs.SendMessageInput) error {
	_, err := s.client.SendMessage(ctx, msg)
	if err == nil {
		return nil
	}

	// in case of NonExistentQueue - recreate the queue and retry once
	apiErr := unwrapAPIError(err)
	if apiErr == nil || apiErr.Code != NonExistentQueue {
		return err
	}

	s.log.Error("send message", zap.String("error code", apiErr.ErrorCode()), zap.String("message", apiErr.ErrorMessage()), zap.String("error fault", apiErr.ErrorFault().String()))

	_, errQ := s.client.CreateQueue(context.Background(), &sqs.CreateQueueInput{QueueName: s.queue, Attributes: s.attributes, Tags: s.tags})
	if errQ != nil {
		s.log.Error("create queue", zap.Error(errQ))
		return err
	}

	// the re-created queue needs a moment before it accepts messages
	time.Sleep(time.Second)

	_, err = s.client.SendMessage(ctx, msg)

	return err
}

func unwrapAPIError(err error) *smithy.GenericAPIError {
	var oErr *smithy.OperationError
	if !stderr.As(err, &oErr) {
		return nil
	}

	var rErr *awshttp.ResponseError
	if !stderr.As(oErr.Err, &rErr) {
		return nil
	}

	var apiErr *smithy.GenericAPIError
	if !stderr.As(rErr.Err, &apiErr) {
		return nil
	}

	return apiErr
}

func createQueue(client *sqs.Client, queueName *string, attributes map[string]string, tags map[string]string) (*string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()

	out, err := client.CreateQueue(ctx, &sqs.CreateQueueInput{QueueName: queueName, Attributes: attributes, Tags: tags})
	if err != nil {
		var qErr *types.QueueNameExists
		if stderr.As(err, &qErr) {
			ctxGet, cancelGet := context.WithTimeout(context.Background(), time.Second*30)
			defer cancelGet()

			res, errQ := client.GetQueueUrl(ctxGet, &sqs.GetQueueUrlInput{QueueName: queueName})
			if errQ != nil {
				return nil, errQ
			}

			return res.QueueUrl, nil
		}

		return nil, err
	}

	return out.QueueUrl, nil
}

func getQueueURL(client *sqs.Client, queueName *string) (*string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()

	out, err := client.GetQueueUrl(ctx, &sqs.GetQueueUrlInput{QueueName: queueName})
	if err != nil {
		return nil, err
	}

	return out.QueueUrl, nil
}

func mgr(gr string) *string {
	if gr == "" {
		return nil
	}

	return aws.String(gr)
}

func dedup(id string, origQueue *string) *string {
	if isFifo(origQueue) {
		return aws.String(id)
	}

	return nil
}

func delay(origQueue *string, d int32) int32 {
	if isFifo(origQueue) {
		return 0
	}

	return d
}

func isFifo(queue *string) bool {
	if queue == nil {
		return false
	}

	return strings.HasSuffix(*queue, fifoSuffix)
}

func bytesToStr(data []byte) string {
	if len(data) == 0 {
		return ""
	}

	return unsafe.String(unsafe.SliceData(data), len(data))
}
