package prescription

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/clinic/clinic/pkg/domainerr"
)

type repoRedis struct{ rdb *redis.Client }

func NewRepoRedis(rdb *redis.Client) Repository { return &repoRedis{rdb: rdb} }

func recordKey(id uuid.UUID) string {
	return "prescription:" + id.String()
}

func appointmentKey(appointmentID uuid.UUID) string {
	return "prescription:appt:" + appointmentID.String()
}

func (r *repoRedis) Save(ctx context.Context, p *Prescription) error {
	payload, err := json.Marshal(p)
	if err != nil {
		return err
	}
	// The record and its index entry go in one pipeline round trip.
	pipe := r.rdb.TxPipeline()
	pipe.Set(ctx, recordKey(p.ID), payload, 0)
	pipe.SAdd(ctx, appointmentKey(p.AppointmentID), p.ID.String())
	_, err = pipe.Exec(ctx)
	return err
}

func (r *repoRedis) GetByID(ctx context.Context, id uuid.UUID) (*Prescription, error) {
	raw, err := r.rdb.Get(ctx, recordKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domainerr.NotFound("prescription", id.String())
	}
	if err != nil {
		return nil, err
	}
	var p Prescription
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repoRedis) ListByAppointment(ctx context.Context, appointmentID uuid.UUID) ([]*Prescription, error) {
	ids, err := r.rdb.SMembers(ctx, appointmentKey(appointmentID)).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = "prescription:" + id
	}
	values, err := r.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	var items []*Prescription
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			continue
		}
		var p Prescription
		if err := json.Unmarshal([]byte(s), &p); err != nil {
			return nil, err
		}
		items = append(items, &p)
	}
	return items, nil
}

func (r *repoRedis) Delete(ctx context.Context, id uuid.UUID) error {
	p, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	pipe := r.rdb.TxPipeline()
	pipe.Del(ctx, recordKey(id))
	pipe.SRem(ctx, appointmentKey(p.AppointmentID), id.String())
	_, err = pipe.Exec(ctx)
	return err
}
