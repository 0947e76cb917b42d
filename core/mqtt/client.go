// Package mqtt defines the publishing side used to announce finished
// simulation runs.
package mqtt

// DefaultTopicPrefix is prepended to the run id when publishing results.
const DefaultTopicPrefix = "fleetsim/runs"

// Publisher sends a payload to a topic.
type Publisher interface {
	Publish(topic string, payload []byte) error
}

// RunTopic returns the topic a run summary is published on.
func RunTopic(prefix, runID string) string {
	if prefix == "" {
		prefix = DefaultTopicPrefix
	}
	return prefix + "/" + runID
}
