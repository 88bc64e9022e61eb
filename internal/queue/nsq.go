package queue

import (
	"fmt"

	"github.com/nsqio/go-nsq"
	"github.com/pkg/errors"
)

type NsqParams struct {
	Address string
	Port    int
}

func NewNsqProducer(params *NsqParams) (*nsq.Producer, error) {
	address := fmt.Sprintf("%s:%d", params.Address, params.Port)
	producer, err := nsq.NewProducer(address, nsq.NewConfig())

	if err != nil {
		return nil, errors.Wrap(err, "failed to create NSQ producer")
	}

	if err := producer.Ping(); err != nil {
		producer.Stop()
		return nil, errors.Wrapf(err, "failed to reach nsqd at %s", address)
	}

	return producer, nil
}
