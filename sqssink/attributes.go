package sqssink

// Queue attribute names a log queue may declare, config (lowercase) name to
// its AWS counterpart.
var queueAttributes = map[string]string{ //nolint:gochecknoglobals
	"policy":                        "Policy",
	"visibilitytimeout":             "VisibilityTimeout",
	"maximummessagesize":            "MaximumMessageSize",
	"messageretentionperiod":        "MessageRetentionPeriod",
	"delayseconds":                  "DelaySeconds",
	"receivemessagewaittimeseconds": "ReceiveMessageWaitTimeSeconds",
	"redrivepolicy":                 "RedrivePolicy",
	"redriveallowpolicy":            "RedriveAllowPolicy",
	"fifoqueue":                     "FifoQueue",
	"contentbaseddeduplication":     "ContentBasedDeduplication",
	"kmsmasterkeyid":                "KmsMasterKeyId",
	"kmsdatakeyreuseperiodseconds":  "KmsDataKeyReusePeriodSeconds",
	"sqsmanagedsseenabled":          "SqsManagedSseEnabled",
}

// Attribute values with AWS spellings.
const (
	deduplicationScope  string = "deduplicationscope"
	fifoThroughputLimit string = "fifothroughputlimit"

	messageGroup    string = "messagegroup"
	messageGroupAWS string = "messageGroup"

	perQueue    string = "perqueue"
	perQueueAWS string = "perQueue"

	perMessageGroupID    string = "permessagegroupid"
	perMessageGroupIDAWS string = "perMessageGroupId"
)

// toAwsAttributes maps attributes to their AWS names and values.
func toAwsAttributes(attrs map[string]string, ret map[string]string) {
	for k := range attrs {
		switch k {
		case deduplicationScope:
			// DeduplicationScope - specifies whether message deduplication
			// occurs at the message group or queue level. Valid values are
			// messageGroup and queue.
			if attrs[k] == messageGroup {
				ret["DeduplicationScope"] = messageGroupAWS
			}
		case fifoThroughputLimit:
			// FifoThroughputLimit - specifies whether the FIFO queue
			// throughput quota applies to the entire queue or per message
			// group. perMessageGroupId is allowed only when
			// DeduplicationScope is messageGroup.
			switch attrs[k] {
			case perQueue:
				ret["FifoThroughputLimit"] = perQueueAWS
			case perMessageGroupID:
				ret["FifoThroughputLimit"] = perMessageGroupIDAWS
			}
		default:
			if name, ok := queueAttributes[k]; ok {
				ret[name] = attrs[k]
			}
		}
	}
}
