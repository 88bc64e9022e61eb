package queue

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"memory-limit-workload/internal/verdict"
)

// Publisher is the part of *nsq.Producer used to publish verdicts.
type Publisher interface {
	Publish(topic string, body []byte) error
}

type VerdictMessage struct {
	Mode    string           `json:"mode"`
	Verdict *verdict.Verdict `json:"verdict"`
	Limits  verdict.Limits   `json:"limits"`
}

type VerdictPublisher struct {
	producer Publisher
	topic    string
}

func NewVerdictPublisher(producer Publisher, topic string) *VerdictPublisher {
	return &VerdictPublisher{producer: producer, topic: topic}
}

func (p *VerdictPublisher) PublishVerdict(mode string, result *verdict.Verdict, limits verdict.Limits) error {
	if result == nil {
		return errors.New("cannot publish an empty verdict")
	}

	body, err := json.Marshal(VerdictMessage{Mode: mode, Verdict: result, Limits: limits})

	if err != nil {
		return errors.Wrap(err, "failed to encode verdict")
	}

	if err := p.producer.Publish(p.topic, body); err != nil {
		return errors.Wrapf(err, "failed to publish verdict %s", result.ID)
	}

	log.Debug().Str("topic", p.topic).Str("id", result.ID).Msg("published verdict")
	return nil
}
