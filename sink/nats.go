package sink

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/domino14/wordpack/realizer"
)

const DefaultNATSSubject = "wordpack.solutions"

// NATS publishes each solution as a JSON message on a subject.
type NATS struct {
	nc      *nats.Conn
	subject string
}

// DialNATS connects to url, retrying with backoff while the server is
// unreachable.
func DialNATS(url, subject string) (*NATS, error) {
	if url == "" {
		url = nats.DefaultURL
	}
	if subject == "" {
		subject = DefaultNATSSubject
	}
	var nc *nats.Conn
	err := retry.Do(
		func() error {
			var err error
			nc, err = nats.Connect(url, nats.Name("wordpack"))
			return err
		},
		retry.Attempts(5),
		retry.Delay(200*time.Millisecond),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			log.Err(err).Uint("n", n).Str("url", url).Msg("nats-connect-failed-try-again")
			return retry.BackOffDelay(n, err, config)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to nats: %w", err)
	}
	return NewNATS(nc, subject), nil
}

func NewNATS(nc *nats.Conn, subject string) *NATS {
	return &NATS{nc: nc, subject: subject}
}

func (n *NATS) Write(s realizer.Solution) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return n.nc.Publish(n.subject, data)
}

func (n *NATS) Close() error {
	defer n.nc.Close()
	if err := n.nc.Flush(); err != nil {
		return fmt.Errorf("flushing nats: %w", err)
	}
	return nil
}
