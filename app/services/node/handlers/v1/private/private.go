// Package private maintains the group of handlers for node to node access.
package private

import (
	"context"
	"errors"
	"net/http"

	"github.com/powlabs/ledger/business/web/errs"
	"github.com/powlabs/ledger/foundation/ledger/database"
	"github.com/powlabs/ledger/foundation/ledger/state"
	"github.com/powlabs/ledger/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of node to node endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
}

// Status returns the current status of the node.
func (h Handlers) Status(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	latest := h.State.LatestBlock()

	resp := struct {
		Height      int    `json:"height"`
		LatestIndex uint64 `json:"latest_index"`
		LatestHash  string `json:"latest_hash"`
	}{
		Height:      h.State.Height(),
		LatestIndex: latest.Index,
		LatestHash:  latest.Hash,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// ChainList returns the full committed chain in wire form for another node
// to sync from.
func (h Handlers) ChainList(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.State.Blocks(), http.StatusOK)
}

// ChainSync accepts a candidate chain from another node. The candidate only
// replaces the local chain if it is fully valid and strictly longer; the
// outcome is reported either way and nothing here is fatal.
func (h Handlers) ChainSync(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var candidate []database.Block
	if err := web.Decode(r, &candidate); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	resp := struct {
		Accepted bool   `json:"accepted"`
		Height   int    `json:"height"`
		Reason   string `json:"reason,omitempty"`
	}{
		Accepted: true,
	}

	if err := h.State.SyncFrom(candidate); err != nil {
		if !errors.Is(err, state.ErrCandidateNotLonger) {
			h.Log.Infow("chain sync rejected", "traceid", v.TraceID, "reason", err)
		}
		resp.Accepted = false
		resp.Reason = err.Error()
	}
	resp.Height = h.State.Height()

	return web.Respond(ctx, w, resp, http.StatusOK)
}
