// Package journal durably records trades and order-lifecycle events
// emitted by a matchcore.Book. It is an external collaborator in the sense
// of the core's persistence Non-goal: it only ever consumes the values
// AddOrder/ModifyOrder/CancelOrder already return or are told, and never
// reaches into the book's internals.
package journal

import (
	"encoding/binary"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"

	"github.com/ticklane/matchcore-engine/pkg/matchcore"
)

const (
	prefixTrade byte = 't'
	prefixEvent byte = 'e'
)

// EventKind distinguishes the order-lifecycle events the journal records
// outside of trades.
type EventKind uint8

const (
	EventAdmitted EventKind = iota
	EventCancelled
	EventPruned
)

// Event is a durable record of something happening to an order other than
// matching.
type Event struct {
	Seq     uint64
	Kind    EventKind
	OrderId matchcore.OrderId
}

// Journal appends trades and lifecycle events to an embedded Pebble store,
// keyed by a monotonically increasing sequence number so replay preserves
// the order they were recorded in.
type Journal struct {
	db  *pebble.DB
	seq atomic.Uint64
}

// Open creates or reopens a journal at path.
func Open(path string) (*Journal, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, errors.Wrapf(err, "open journal at %s", path)
	}
	j := &Journal{db: db}
	for _, prefix := range []byte{prefixTrade, prefixEvent} {
		iter, err := db.NewIter(&pebble.IterOptions{LowerBound: []byte{prefix}, UpperBound: []byte{prefix + 1}})
		if err != nil {
			db.Close()
			return nil, errors.Wrap(err, "open journal iterator")
		}
		if iter.Last() && len(iter.Key()) == 9 {
			if seq := binary.BigEndian.Uint64(iter.Key()[1:]); seq > j.seq.Load() {
				j.seq.Store(seq)
			}
		}
		iter.Close()
	}
	return j, nil
}

// Close flushes and closes the underlying store.
func (j *Journal) Close() error {
	return j.db.Close()
}

// RecordTrades durably appends every trade in trades, in order.
func (j *Journal) RecordTrades(trades matchcore.Trades) error {
	for _, t := range trades {
		seq := j.seq.Add(1)
		val, err := encodeGob(t)
		if err != nil {
			return errors.Wrap(err, "encode trade")
		}
		if err := j.db.Set(seqKey(prefixTrade, seq), val, pebble.Sync); err != nil {
			return errors.Wrap(err, "write trade")
		}
	}
	return nil
}

// RecordEvent durably appends a single lifecycle event.
func (j *Journal) RecordEvent(kind EventKind, id matchcore.OrderId) error {
	seq := j.seq.Add(1)
	evt := Event{Seq: seq, Kind: kind, OrderId: id}
	val, err := encodeGob(evt)
	if err != nil {
		return errors.Wrap(err, "encode event")
	}
	if err := j.db.Set(seqKey(prefixEvent, seq), val, pebble.Sync); err != nil {
		return errors.Wrap(err, "write event")
	}
	return nil
}

// ReplayTrades returns every recorded trade in the order it was written.
func (j *Journal) ReplayTrades() ([]matchcore.Trade, error) {
	iter, err := j.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte{prefixTrade},
		UpperBound: []byte{prefixTrade + 1},
	})
	if err != nil {
		return nil, errors.Wrap(err, "open trade iterator")
	}
	defer iter.Close()

	var out []matchcore.Trade
	for iter.First(); iter.Valid(); iter.Next() {
		var t matchcore.Trade
		if err := decodeGob(iter.Value(), &t); err != nil {
			return nil, errors.Wrap(err, "decode trade")
		}
		out = append(out, t)
	}
	return out, iter.Error()
}

// ReplayEvents returns every recorded lifecycle event in the order it was
// written.
func (j *Journal) ReplayEvents() ([]Event, error) {
	iter, err := j.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte{prefixEvent},
		UpperBound: []byte{prefixEvent + 1},
	})
	if err != nil {
		return nil, errors.Wrap(err, "open event iterator")
	}
	defer iter.Close()

	var out []Event
	for iter.First(); iter.Valid(); iter.Next() {
		var e Event
		if err := decodeGob(iter.Value(), &e); err != nil {
			return nil, errors.Wrap(err, "decode event")
		}
		out = append(out, e)
	}
	return out, iter.Error()
}
