package redisx

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/domain"
)

// OccurrencesPubSub fans out seat-count changes so other instances can drop
// their cached availability for the affected trip.
type OccurrencesPubSub struct {
	rdb     *redis.Client
	channel string
}

func NewOccurrencesPubSub(rdb *redis.Client) *OccurrencesPubSub {
	return &OccurrencesPubSub{
		rdb:     rdb,
		channel: ChannelOccurrencesChanged(),
	}
}

type occurrenceChangedMsg struct {
	Type       string `json:"type"`
	VesselID   int64  `json:"embarcacion_id"`
	RouteID    int64  `json:"ruta_id"`
	TravelDate string `json:"fecha_viaje"`
	TravelTime string `json:"hora_viaje"`
	TsUnix     int64  `json:"ts_unix"`
}

func (p *OccurrencesPubSub) PublishOccurrenceChanged(ctx context.Context, occ domain.Occurrence) error {
	msg := occurrenceChangedMsg{
		Type:       "occurrence_changed",
		VesselID:   occ.VesselID,
		RouteID:    occ.RouteID,
		TravelDate: occ.TravelDate.Format("2006-01-02"),
		TravelTime: occ.TravelTime,
		TsUnix:     time.Now().Unix(),
	}

	b, _ := json.Marshal(msg)

	return p.rdb.Publish(ctx, p.channel, b).Err()
}

func (p *OccurrencesPubSub) Subscribe(ctx context.Context, handler func(ctx context.Context, occ domain.Occurrence)) error {
	sub := p.rdb.Subscribe(ctx, p.channel)
	defer sub.Close()

	ch := sub.Channel(redis.WithChannelSize(256))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m, ok := <-ch:
			if !ok {
				return nil
			}
			var ev occurrenceChangedMsg
			if err := json.Unmarshal([]byte(m.Payload), &ev); err != nil || ev.VesselID == 0 {
				continue
			}

			date, err := time.Parse("2006-01-02", ev.TravelDate)
			if err != nil {
				continue
			}

			handler(ctx, domain.Occurrence{
				VesselID:   ev.VesselID,
				RouteID:    ev.RouteID,
				TravelDate: date,
				TravelTime: ev.TravelTime,
			})
		}
	}
}
