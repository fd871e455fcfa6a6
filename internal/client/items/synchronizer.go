// Package items moves items between the client and the remote item
// service. Every call is authorized through the session first, and every
// result, including a panic or an unreadable body, comes back as a
// result.Outcome rather than an error.
package items

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/assettrack/internal/client/metrics"
	"github.com/dmitrijs2005/assettrack/internal/client/models"
	"github.com/dmitrijs2005/assettrack/internal/client/result"
	"github.com/dmitrijs2005/assettrack/internal/client/transport"
	"github.com/dmitrijs2005/assettrack/internal/common"
	"github.com/dmitrijs2005/assettrack/internal/logging"
)

// Transport is the part of transport.Client the synchronizer needs.
type Transport interface {
	Get(ctx context.Context, path string) *transport.RawResponse
	Post(ctx context.Context, path string, body any) *transport.RawResponse
	Put(ctx context.Context, path string, body any) *transport.RawResponse
}

// Authorizer readies the transport for an authorized call. The session
// manager renews an expired token and re-pushes the current one.
type Authorizer interface {
	Authorize(ctx context.Context)
}

type Option func(*Synchronizer)

func WithMetrics(r *metrics.Recorder) Option {
	return func(s *Synchronizer) { s.metrics = r }
}

type Synchronizer struct {
	transport Transport
	auth      Authorizer
	log       logging.Logger
	metrics   *metrics.Recorder
}

func NewSynchronizer(t Transport, auth Authorizer, log logging.Logger, opts ...Option) *Synchronizer {
	s := &Synchronizer{
		transport: t,
		auth:      auth,
		log:       log.With("component", "items"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func itemPath(id int64) string {
	return fmt.Sprintf("%s/%d", common.ItemsPath, id)
}

// finish must be deferred directly so that recover sees the panic.
func (s *Synchronizer) finish(ctx context.Context, op string, outcome *result.Outcome) {
	if r := recover(); r != nil {
		s.log.Error(ctx, "remote call aborted", "operation", op, "panic", r)
		*outcome = result.BadData
	}
	s.metrics.Observe(op, *outcome)
	if *outcome != result.OK {
		s.log.Warn(ctx, "remote call failed", "operation", op, "outcome", outcome.String())
	}
}

// Get fetches one item. The item is nil unless the outcome is OK.
func (s *Synchronizer) Get(ctx context.Context, id int64) (outcome result.Outcome, item *models.Item) {
	outcome = result.BadData
	defer s.finish(ctx, metrics.OpGetItem, &outcome)

	s.auth.Authorize(ctx)
	resp := s.transport.Get(ctx, itemPath(id))
	if outcome = result.FromResponse(resp); outcome != result.OK {
		return outcome, nil
	}

	it, err := decodeItem(resp.Body)
	if err != nil {
		s.log.Warn(ctx, "item response unusable", "id", id, "error", err)
		return result.BadData, nil
	}
	return result.OK, it
}

// Register submits a new item and returns the id the service assigned.
func (s *Synchronizer) Register(ctx context.Context, item *models.Item) (outcome result.Outcome, id int64) {
	outcome = result.BadData
	defer s.finish(ctx, metrics.OpRegister, &outcome)

	s.auth.Authorize(ctx)
	resp := s.transport.Post(ctx, common.ItemsPath, Clean(item))
	if outcome = result.FromResponse(resp); outcome != result.OK {
		return outcome, 0
	}

	id, err := decodeID(resp.Body)
	if err != nil {
		s.log.Warn(ctx, "register response unusable", "error", err)
		return result.BadData, 0
	}
	return result.OK, id
}

// Update replaces the stored item with id item.ID. An item without an id is
// BadData and nothing is sent.
func (s *Synchronizer) Update(ctx context.Context, item *models.Item) (outcome result.Outcome) {
	outcome = result.BadData
	defer s.finish(ctx, metrics.OpUpdate, &outcome)

	if item == nil || item.ID == nil {
		s.log.Warn(ctx, "update refused", "error", common.ErrMissingItemID)
		return result.BadData
	}

	s.auth.Authorize(ctx)
	resp := s.transport.Put(ctx, itemPath(*item.ID), Clean(item))
	outcome = result.FromResponse(resp)
	return outcome
}

// List fetches every item visible to the session.
func (s *Synchronizer) List(ctx context.Context) (outcome result.Outcome, list []models.Item) {
	outcome = result.BadData
	defer s.finish(ctx, metrics.OpList, &outcome)

	s.auth.Authorize(ctx)
	resp := s.transport.Get(ctx, common.ItemsPath)
	if outcome = result.FromResponse(resp); outcome != result.OK {
		return outcome, nil
	}

	list, err := decodeList(resp.Body)
	if err != nil {
		s.log.Warn(ctx, "list response unusable", "error", err)
		return result.BadData, nil
	}
	return result.OK, list
}
