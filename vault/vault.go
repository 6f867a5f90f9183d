// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vault

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/probalance/provault/actions"
	"github.com/probalance/provault/chain"
	"github.com/probalance/provault/codec"
	"github.com/probalance/provault/event"
	"github.com/probalance/provault/genesis"
	"github.com/probalance/provault/state"
	"github.com/probalance/provault/storage"
	"github.com/probalance/provault/tstate"
)

// Vault executes vault actions against a backing store. Every submitted
// action is one atomic state transition: authorization, bookkeeping and
// asset movement commit together or not at all. Submissions against the
// shared record are serialized; the per-operation balance checks run
// inside the transactional view, so a stale pre-check can never
// overdraw.
type Vault struct {
	db      state.Database
	rules   chain.Rules
	log     *zap.Logger
	clock   func() time.Time
	metrics *metrics

	registry *prometheus.Registry

	subLock sync.RWMutex
	subs    []event.Subscription[Event]

	lock sync.Mutex
}

type Option func(*Vault)

func WithLogger(log *zap.Logger) Option {
	return func(v *Vault) { v.log = log }
}

// WithClock overrides the substrate time source (unix seconds are
// derived from it). Used by tests.
func WithClock(clock func() time.Time) Option {
	return func(v *Vault) { v.clock = clock }
}

func New(db state.Database, rules chain.Rules, opts ...Option) (*Vault, error) {
	registry, m, err := newMetrics()
	if err != nil {
		return nil, err
	}
	v := &Vault{
		db:       db,
		rules:    rules,
		log:      zap.NewNop(),
		clock:    time.Now,
		metrics:  m,
		registry: registry,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

// Registry exposes the vault's prometheus metrics for scraping by an
// outer surface.
func (v *Vault) Registry() *prometheus.Registry {
	return v.registry
}

// Subscribe registers a consumer of committed asset-movement events.
func (v *Vault) Subscribe(sub event.Subscription[Event]) {
	v.subLock.Lock()
	defer v.subLock.Unlock()
	v.subs = append(v.subs, sub)
}

// Initialize applies genesis allocations exactly once; a rerun fails
// without double-crediting. The write set commits atomically like any
// other transition.
func (v *Vault) Initialize(ctx context.Context, g *genesis.Genesis) error {
	v.lock.Lock()
	defer v.lock.Unlock()

	ts := tstate.New(v.db)
	applied, err := storage.HasGenesis(ctx, ts)
	if err != nil {
		return err
	}
	if applied {
		return fmt.Errorf("%w: genesis", storage.ErrAlreadyInitialized)
	}
	if err := g.InitializeState(ctx, ts); err != nil {
		return err
	}
	if err := storage.MarkGenesis(ctx, ts); err != nil {
		return err
	}
	if err := ts.Commit(v.db.NewBatch()); err != nil {
		return fmt.Errorf("could not commit genesis: %w", err)
	}
	v.log.Info("initialized genesis state",
		zap.Int("allocations", len(g.CustomAllocation)),
	)
	return nil
}

// Submit executes [action] on behalf of [actor], the signing caller. On
// any failure the backing store is left byte-identical to its pre-call
// state and the error carries a stable discriminator; a nil error always
// means the transition committed, even if a subscriber misbehaved.
func (v *Vault) Submit(ctx context.Context, actor codec.Address, action chain.Action) (codec.Typed, error) {
	v.lock.Lock()
	defer v.lock.Unlock()

	name := actionName(action)
	now := v.clock().Unix()

	ts := tstate.New(v.db)
	output, err := action.Execute(ctx, v.rules, ts, now, actor)
	if err != nil {
		// The view is discarded; nothing reached the store.
		v.metrics.opsRejected.WithLabelValues(name).Inc()
		v.log.Debug("rejected action",
			zap.String("action", name),
			zap.Stringer("actor", actor),
			zap.Error(err),
		)
		return nil, err
	}
	if err := ts.Commit(v.db.NewBatch()); err != nil {
		v.metrics.opsRejected.WithLabelValues(name).Inc()
		return nil, fmt.Errorf("could not commit %s: %w", name, err)
	}

	v.metrics.opsAccepted.WithLabelValues(name).Inc()
	v.observeBalance(output)
	v.log.Info("committed action",
		zap.String("action", name),
		zap.Stringer("actor", actor),
		zap.Int64("time", now),
	)

	if ev, ok := eventFor(action, actor, now); ok {
		v.subLock.RLock()
		subs := v.subs
		v.subLock.RUnlock()
		// The transition is already committed; a failing subscriber must
		// not make it look rejected to the caller.
		if err := event.NotifyAll(ctx, ev, subs...); err != nil {
			v.log.Error("event subscriber failed",
				zap.String("action", name),
				zap.Error(err),
			)
		}
	}
	return output, nil
}

// Close releases subscribers and the backing store.
func (v *Vault) Close() error {
	v.subLock.Lock()
	subs := v.subs
	v.subs = nil
	v.subLock.Unlock()

	for _, sub := range subs {
		if err := sub.Close(); err != nil {
			return err
		}
	}
	return v.db.Close()
}

func (v *Vault) observeBalance(output codec.Typed) {
	switch res := output.(type) {
	case *actions.DepositResult:
		v.metrics.recordedBalance.Set(float64(res.Balance))
	case *actions.WithdrawResult:
		v.metrics.recordedBalance.Set(float64(res.Balance))
	case *actions.SendWithdrawResult:
		v.metrics.recordedBalance.Set(float64(res.Balance))
	}
}

func actionName(action chain.Action) string {
	name := fmt.Sprintf("%T", action)
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return name
}
