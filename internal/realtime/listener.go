package realtime

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const channel = "complaints_changed"

// Listen holds a dedicated connection on LISTEN and publishes every
// notification to the hub. Blocks until ctx is cancelled; connection
// failures are retried with a flat backoff.
func Listen(ctx context.Context, pool *pgxpool.Pool, hub *Hub, log zerolog.Logger) {
	for {
		if err := listenOnce(ctx, pool, hub, log); err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Error().Err(err).Msg("change feed interrupted, reconnecting")
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(3 * time.Second):
		}
	}
}

func listenOnce(ctx context.Context, pool *pgxpool.Pool, hub *Hub, log zerolog.Logger) error {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+channel); err != nil {
		return err
	}
	log.Info().Str("channel", channel).Msg("change feed listening")

	for {
		n, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}

		var e Event
		if err := json.Unmarshal([]byte(n.Payload), &e); err != nil {
			// Malformed payload still means the table changed.
			e = Event{Table: "complaints"}
		}
		log.Debug().Str("op", e.Op).Str("id", e.ID).Msg("change event")
		hub.Publish(e)
	}
}
