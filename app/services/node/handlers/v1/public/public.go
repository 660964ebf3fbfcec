// Package public maintains the group of handlers for public access.
package public

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/powlabs/ledger/business/sys/validate"
	"github.com/powlabs/ledger/business/web/errs"
	"github.com/powlabs/ledger/foundation/events"
	"github.com/powlabs/ledger/foundation/ledger/database"
	"github.com/powlabs/ledger/foundation/ledger/state"
	"github.com/powlabs/ledger/foundation/ledger/worker"
	"github.com/powlabs/ledger/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of public ledger endpoints.
type Handlers struct {
	Log    *zap.SugaredLogger
	State  *state.State
	Worker *worker.Worker
	WS     websocket.Upgrader
	Evts   *events.Events
}

// Events handles a web socket to provide events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// SubmitTransaction adds a new transaction to the pending pool.
func (h Handlers) SubmitTransaction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var ntx newTx
	if err := web.Decode(r, &ntx); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}
	if err := validate.Check(ntx); err != nil {
		return err
	}

	tx, err := database.NewTx(ntx.Sender, ntx.Recipient, ntx.Amount)
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	h.Log.Infow("add tran", "traceid", v.TraceID, "from", tx.Sender, "to", tx.Recipient, "amount", tx.Amount)
	h.State.SubmitTransaction(tx)

	resp := struct {
		Status string `json:"status"`
	}{
		Status: "transaction added to mempool",
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// SignalMining signals the worker to start a mining round.
func (h Handlers) SignalMining(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	h.Worker.SignalStartMining()

	resp := struct {
		Status string `json:"status"`
	}{
		Status: "mining signaled",
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Genesis returns the chain settings.
func (h Handlers) Genesis(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.State.Genesis(), http.StatusOK)
}

// Mempool returns the set of uncommitted transactions.
func (h Handlers) Mempool(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.State.Mempool(), http.StatusOK)
}

// Blocks returns the committed chain.
func (h Handlers) Blocks(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.State.Blocks(), http.StatusOK)
}

// Valid reports whether the committed chain passes the chain rules.
func (h Handlers) Valid(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	resp := struct {
		Valid  bool   `json:"valid"`
		Reason string `json:"reason,omitempty"`
	}{
		Valid: true,
	}

	if err := h.State.Validate(); err != nil {
		resp.Valid = false
		resp.Reason = err.Error()
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Balances returns the balance of one account or of every known account.
func (h Handlers) Balances(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	account := web.Param(r, "account")

	accounts := h.State.Accounts()
	if account != "" {
		accounts = []string{account}
	}

	bals := make([]balance, 0, len(accounts))
	for _, acct := range accounts {
		bals = append(bals, balance{
			Account: acct,
			Balance: h.State.Balance(acct),
		})
	}

	resp := balances{
		LatestBlock: h.State.LatestBlock().Hash,
		Uncommitted: len(h.State.Mempool()),
		Balances:    bals,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}
