// Package donation drives a single donation from form submission to the
// point where its certificate can be shown.
//
// The flow is linear: Idle → Processing → Completed → CertificateReady, with
// Failed reachable from Processing when the payment processor rejects the
// donation. Every delayed step runs on a schedule.Scope owned by the
// controller, so Close cancels the whole chain at once.
package donation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"aidconnect/internal/domain"
	"aidconnect/internal/i18n"
	"aidconnect/internal/schedule"
)

// Notifier is the part of the notification queue the flow needs.
type Notifier interface {
	Add(in domain.NotificationInput) int64
}

// Timing holds the staged delays and notice durations.
type Timing struct {
	Processing    time.Duration
	Impact        time.Duration
	SuccessNotice time.Duration
	ImpactNotice  time.Duration
}

func DefaultTiming() Timing {
	return Timing{
		Processing:    2 * time.Second,
		Impact:        2 * time.Second,
		SuccessNotice: 8 * time.Second,
		ImpactNotice:  10 * time.Second,
	}
}

// Options wires a Controller. Queue and Directory are required.
type Options struct {
	Queue     Notifier
	Directory domain.NGODirectory
	Processor PaymentProcessor
	IDs       IDGenerator
	Validator *Validator
	Scheduler schedule.Scheduler
	Timing    Timing
	Locale    language.Tag
	OnStart   func()
	OnReady   func(domain.CompletedDonation)
	Logger    zerolog.Logger
}

// Snapshot is a point-in-time view of the flow.
type Snapshot struct {
	State    domain.FlowState          `json:"state"`
	Donation *domain.CompletedDonation `json:"donation,omitempty"`
	Error    string                    `json:"error,omitempty"`
}

type Controller struct {
	queue     Notifier
	directory domain.NGODirectory
	processor PaymentProcessor
	ids       IDGenerator
	validator *Validator
	sched     schedule.Scheduler
	scope     *schedule.Scope
	timing    Timing
	locale    language.Tag
	onStart   func()
	onReady   func(domain.CompletedDonation)
	logger    zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.Mutex
	state     domain.FlowState
	flow      uint64
	completed *domain.CompletedDonation
	lastErr   error
	closed    bool
}

func NewController(opts Options) (*Controller, error) {
	if opts.Queue == nil {
		return nil, errors.New("donation: notification queue is required")
	}
	if opts.Directory == nil {
		return nil, errors.New("donation: ngo directory is required")
	}
	if opts.Processor == nil {
		opts.Processor = SimulatedProcessor{}
	}
	if opts.IDs == nil {
		opts.IDs = UUIDGenerator{Prefix: DefaultPrefix}
	}
	if opts.Validator == nil {
		opts.Validator = NewValidator()
	}
	if opts.Scheduler == nil {
		opts.Scheduler = schedule.System{}
	}
	if opts.Timing == (Timing{}) {
		opts.Timing = DefaultTiming()
	}
	if opts.Locale == language.Und {
		opts.Locale = i18n.Default
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		queue:     opts.Queue,
		directory: opts.Directory,
		processor: opts.Processor,
		ids:       opts.IDs,
		validator: opts.Validator,
		sched:     opts.Scheduler,
		scope:     schedule.NewScope(opts.Scheduler),
		timing:    opts.Timing,
		locale:    opts.Locale,
		onStart:   opts.OnStart,
		onReady:   opts.OnReady,
		logger:    opts.Logger,
		ctx:       ctx,
		cancel:    cancel,
		state:     domain.FlowIdle,
	}, nil
}

// Submit validates req and starts processing. It returns as soon as the
// processing notice is queued; completion is observed through the queue,
// Snapshot and the OnReady callback. OnStart runs once the previous result
// has been discarded.
func (c *Controller) Submit(ctx context.Context, req domain.DonationRequest) error {
	req.Normalize()
	if err := c.validator.Validate(req, nil); err != nil {
		return err
	}
	ngo, err := c.directory.GetByID(ctx, req.NGOID)
	if err != nil {
		return fmt.Errorf("lookup ngo %q: %w", req.NGOID, err)
	}
	if err := c.validator.Validate(req, ngo); err != nil {
		return err
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return domain.ErrSessionClosed
	}
	if c.state == domain.FlowProcessing {
		c.mu.Unlock()
		return domain.ErrFlowBusy
	}
	c.flow++
	flow := c.flow
	c.state = domain.FlowProcessing
	c.completed = nil
	c.lastErr = nil
	c.mu.Unlock()

	if c.onStart != nil {
		c.onStart()
	}
	c.queue.Add(domain.NotificationInput{
		Type:    domain.NotificationInfo,
		Title:   "Processing Donation",
		Message: "Please wait while we process your donation...",
	})
	c.logger.Info().
		Str("ngo_id", ngo.ID).
		Str("donation_type", string(req.Type)).
		Int64("amount", req.Amount).
		Msg("donation: processing")

	record := *ngo
	if !c.scope.After(c.timing.Processing, func() { c.complete(flow, req, record) }) {
		c.mu.Lock()
		c.state = domain.FlowIdle
		c.mu.Unlock()
		return domain.ErrSessionClosed
	}
	return nil
}

func (c *Controller) complete(flow uint64, req domain.DonationRequest, ngo domain.NGO) {
	donation := domain.CompletedDonation{
		ID:         c.ids.Next(),
		Amount:     req.Amount,
		NGOID:      ngo.ID,
		NGOName:    ngo.Name,
		DonorName:  req.DonorName,
		DonorEmail: req.DonorEmail,
		Type:       req.Type,
		Date:       c.sched.Now().UTC(),
		Status:     domain.DonationCompleted,
	}

	if err := c.processor.Charge(c.ctx, donation); err != nil {
		c.fail(flow, err)
		return
	}

	c.mu.Lock()
	if c.closed || flow != c.flow {
		c.mu.Unlock()
		return
	}
	c.state = domain.FlowCompleted
	c.completed = &donation
	c.mu.Unlock()

	c.queue.Add(domain.NotificationInput{
		Type:     domain.NotificationDonation,
		Title:    "Donation Successful!",
		Message:  c.successMessage(donation),
		Duration: domain.For(c.timing.SuccessNotice),
	})
	impact := c.impactMessage(donation)
	c.scope.After(c.timing.Impact, func() {
		c.queue.Add(domain.NotificationInput{
			Type:     domain.NotificationImpact,
			Title:    "Your Impact",
			Message:  impact,
			Duration: domain.For(c.timing.ImpactNotice),
		})
	})

	c.mu.Lock()
	if c.closed || flow != c.flow {
		c.mu.Unlock()
		return
	}
	c.state = domain.FlowCertificateReady
	onReady := c.onReady
	c.mu.Unlock()

	c.logger.Info().
		Str("donation_id", donation.ID).
		Str("ngo_id", donation.NGOID).
		Msg("donation: completed")
	if onReady != nil {
		onReady(donation)
	}
}

func (c *Controller) fail(flow uint64, err error) {
	c.mu.Lock()
	if c.closed || flow != c.flow {
		c.mu.Unlock()
		return
	}
	c.state = domain.FlowFailed
	c.lastErr = fmt.Errorf("%w: %v", domain.ErrPaymentFailed, err)
	c.mu.Unlock()

	c.logger.Warn().Err(err).Msg("donation: payment failed")
	c.queue.Add(domain.NotificationInput{
		Type:     domain.NotificationError,
		Title:    "Donation Failed",
		Message:  "We could not process your donation. Please try again.",
		Duration: domain.For(0),
	})
}

func (c *Controller) successMessage(d domain.CompletedDonation) string {
	if d.Type.IsMoney() {
		return fmt.Sprintf("Your %s donation to %s has been processed.", i18n.Amount(c.locale, d.Amount), d.NGOName)
	}
	return fmt.Sprintf("Your %s donation to %s has been recorded.", i18n.Title(c.locale, string(d.Type)), d.NGOName)
}

func (c *Controller) impactMessage(d domain.CompletedDonation) string {
	if d.Type.IsMoney() {
		return fmt.Sprintf("Your donation will provide %s meals to children in need!", i18n.Number(c.locale, domain.MealsFunded(d.Amount)))
	}
	return fmt.Sprintf("Your %s donation helps %s reach more people in need!", i18n.Title(c.locale, string(d.Type)), d.NGOName)
}

// State returns the current flow state.
func (c *Controller) State() domain.FlowState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Completed returns the finished donation, if any.
func (c *Controller) Completed() (domain.CompletedDonation, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.completed == nil {
		return domain.CompletedDonation{}, false
	}
	return *c.completed, true
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := Snapshot{State: c.state}
	if c.completed != nil {
		d := *c.completed
		snap.Donation = &d
	}
	if c.lastErr != nil {
		snap.Error = c.lastErr.Error()
	}
	return snap
}

// Close cancels every pending step of the flow. Later Submit calls fail
// with domain.ErrSessionClosed.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.scope.Close()
	c.cancel()
}
