package quotation

import (
	"context"
	"fmt"
	"sync"

	"donorlink/internal/donation"
	"donorlink/internal/logger"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

type Phase string

const (
	PhaseIdle        Phase = "IDLE"
	PhaseSelecting   Phase = "SELECTING"
	PhaseConfirmed   Phase = "CONFIRMED"
	PhaseReconciling Phase = "RECONCILING"
)

// State is the per-request workflow state. QuotationID is set while
// Selecting and after Confirmed.
type State struct {
	Phase       Phase
	QuotationID uint
}

// PriceSetter records the accepted quotation's discounted total on the
// donation request. donation.Service satisfies it.
type PriceSetter interface {
	SetDefaultPrice(ctx context.Context, requestID uint, price float64) (*donation.DonationRequest, error)
}

// Notifier receives user-facing outcome notifications.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Workflow lets a patient accept exactly one quotation per donation
// request. The visible list per request is updated optimistically and
// reconciled against server truth when any step of the sequence fails.
//
// The client side is best effort only: the at-most-one-ACCEPTED rule is
// ultimately the backend's transactional responsibility; here it rests
// on the ordering of three non-transactional calls.
type Workflow struct {
	quotes   Service
	requests PriceSetter
	notify   Notifier

	mu      sync.Mutex
	visible map[uint][]Quotation
	state   map[uint]State
	// inflight covers a whole SelectQuotation invocation, including
	// the reconcile after a failed step; state alone cannot gate it
	// because a failed resync leaves the phase at Reconciling after
	// the invocation has returned.
	inflight map[uint]struct{}
}

func NewWorkflow(quotes Service, requests PriceSetter, notify Notifier) *Workflow {
	return &Workflow{
		quotes:   quotes,
		requests: requests,
		notify:   notify,
		visible:  make(map[uint][]Quotation),
		state:    make(map[uint]State),
		inflight: make(map[uint]struct{}),
	}
}

// LoadRequest fetches the authoritative quotation list for a request
// and resets the visible set to its PENDING and ACCEPTED entries.
func (w *Workflow) LoadRequest(ctx context.Context, requestID uint) ([]Quotation, error) {
	quotes, err := w.quotes.ListByRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	shown := filterVisible(quotes)

	w.mu.Lock()
	w.visible[requestID] = shown
	w.state[requestID] = State{Phase: PhaseIdle}
	w.mu.Unlock()

	return copyQuotations(shown), nil
}

// Visible returns the quotations currently shown for a request.
func (w *Workflow) Visible(requestID uint) []Quotation {
	w.mu.Lock()
	defer w.mu.Unlock()
	return copyQuotations(w.visible[requestID])
}

// StateOf returns the request's workflow state.
func (w *Workflow) StateOf(requestID uint) State {
	w.mu.Lock()
	defer w.mu.Unlock()

	s, ok := w.state[requestID]
	if !ok {
		return State{Phase: PhaseIdle}
	}
	return s
}

// SelectQuotation accepts one quotation for the request: it validates
// the candidate, optimistically marks it ACCEPTED locally, then issues
// three strictly sequential server calls (accept the quotation, set the
// request's default price, reject the remaining pending quotations).
// Partial completion is possible and is not rolled back; any failure
// triggers one authoritative re-read instead.
//
// Mutations on a given requestID are serialized: a second call while
// one is in flight fails with ErrSelectionInFlight. Disjoint requests
// proceed independently.
func (w *Workflow) SelectQuotation(ctx context.Context, requestID, quotationID uint) error {
	w.mu.Lock()

	if _, busy := w.inflight[requestID]; busy {
		w.mu.Unlock()
		return ErrSelectionInFlight
	}

	var selected *Quotation
	for i := range w.visible[requestID] {
		if w.visible[requestID][i].ID == quotationID {
			selected = &w.visible[requestID][i]
			break
		}
	}
	if selected == nil {
		w.mu.Unlock()
		return ErrQuotationNotFound
	}
	if selected.Status != StatusPending {
		w.mu.Unlock()
		return ErrQuotationNotPending
	}
	if err := ValidateDiscount(selected.Discount); err != nil {
		w.mu.Unlock()
		return err
	}

	accepted := *selected
	accepted.Status = StatusAccepted
	accepted.MedicinePrices = append([]MedicinePrice(nil), selected.MedicinePrices...)
	price := DiscountedPrice(accepted)

	// Optimistic update; the control stays responsive while the
	// sequence runs.
	selected.Status = StatusAccepted
	w.state[requestID] = State{Phase: PhaseSelecting, QuotationID: quotationID}
	w.inflight[requestID] = struct{}{}
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		delete(w.inflight, requestID)
		w.mu.Unlock()
	}()

	log := logger.L().With(
		zap.Uint("request_id", requestID),
		zap.Uint("quotation_id", quotationID),
		zap.Float64("discounted_price", price),
	)

	if err := w.runSelection(ctx, accepted, price); err != nil {
		log.Error("quotation selection failed", zap.Error(err))
		w.notify.Error("failed to accept quotation")
		return w.reconcile(ctx, requestID, err)
	}

	w.mu.Lock()
	w.visible[requestID] = []Quotation{accepted}
	w.state[requestID] = State{Phase: PhaseConfirmed, QuotationID: quotationID}
	w.mu.Unlock()

	log.Info("quotation accepted")
	w.notify.Success("quotation accepted")
	return nil
}

func (w *Workflow) runSelection(ctx context.Context, accepted Quotation, price float64) error {
	if _, err := w.quotes.Update(ctx, accepted); err != nil {
		return fmt.Errorf("update quotation: %w", err)
	}
	if _, err := w.requests.SetDefaultPrice(ctx, accepted.RequestID, price); err != nil {
		return fmt.Errorf("set default price: %w", err)
	}
	if err := w.quotes.RejectPending(ctx, accepted.RequestID); err != nil {
		return fmt.Errorf("reject pending: %w", err)
	}
	return nil
}

// reconcile replaces local state with a server-confirmed snapshot. The
// same recovery runs regardless of which step failed.
func (w *Workflow) reconcile(ctx context.Context, requestID uint, cause error) error {
	w.mu.Lock()
	w.state[requestID] = State{Phase: PhaseReconciling}
	w.mu.Unlock()

	quotes, err := w.quotes.ListByRequest(ctx, requestID)
	if err != nil {
		// Server truth is unreachable; stay in Reconciling and
		// surface both failures.
		logger.L().Error("resync after failed selection also failed",
			zap.Uint("request_id", requestID), zap.Error(err))
		return multierr.Append(cause, fmt.Errorf("resync failed: %w", err))
	}

	w.mu.Lock()
	w.visible[requestID] = filterVisible(quotes)
	w.state[requestID] = State{Phase: PhaseIdle}
	w.mu.Unlock()

	return cause
}

func filterVisible(quotes []Quotation) []Quotation {
	shown := make([]Quotation, 0, len(quotes))
	for _, q := range quotes {
		if q.Status == StatusPending || q.Status == StatusAccepted {
			shown = append(shown, q)
		}
	}
	return shown
}

func copyQuotations(quotes []Quotation) []Quotation {
	out := append([]Quotation(nil), quotes...)
	for i := range out {
		out[i].MedicinePrices = append([]MedicinePrice(nil), out[i].MedicinePrices...)
	}
	return out
}
