package session

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"aidconnect/internal/certificate"
	"aidconnect/internal/domain"
	"aidconnect/internal/donation"
	"aidconnect/internal/i18n"
	"aidconnect/internal/notify"
	"aidconnect/internal/schedule"
)

const (
	DefaultTTL           = 30 * time.Minute
	DefaultSweepInterval = time.Minute
)

// Config carries the tunables shared by every session.
type Config struct {
	TTL                 time.Duration
	SweepInterval       time.Duration
	NotificationDefault time.Duration
	NotificationExit    time.Duration
	Timing              donation.Timing
	DefaultLocale       language.Tag
}

// Options wires a Registry. Directory and Certificates are required.
type Options struct {
	Config       Config
	Directory    domain.NGODirectory
	Certificates *certificate.Service
	Processor    donation.PaymentProcessor
	Validator    *donation.Validator
	DonationIDs  donation.IDGenerator
	Scheduler    schedule.Scheduler
	NewID        func() string
	Logger       zerolog.Logger
}

// Registry owns all live sessions.
type Registry struct {
	cfg          Config
	directory    domain.NGODirectory
	certificates *certificate.Service
	processor    donation.PaymentProcessor
	validator    *donation.Validator
	donationIDs  donation.IDGenerator
	sched        schedule.Scheduler
	sweeper      *schedule.Scope
	newID        func() string
	logger       zerolog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
	shutdown bool
}

func NewRegistry(opts Options) (*Registry, error) {
	if opts.Directory == nil {
		return nil, errors.New("session: ngo directory is required")
	}
	if opts.Certificates == nil {
		return nil, errors.New("session: certificate service is required")
	}
	cfg := opts.Config
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = DefaultSweepInterval
	}
	if cfg.NotificationDefault <= 0 {
		cfg.NotificationDefault = notify.DefaultDuration
	}
	if cfg.NotificationExit < 0 {
		cfg.NotificationExit = 0
	}
	if cfg.Timing == (donation.Timing{}) {
		cfg.Timing = donation.DefaultTiming()
	}
	if cfg.DefaultLocale == language.Und {
		cfg.DefaultLocale = i18n.Default
	}
	if opts.Scheduler == nil {
		opts.Scheduler = schedule.System{}
	}
	if opts.Validator == nil {
		opts.Validator = donation.NewValidator()
	}
	if opts.DonationIDs == nil {
		opts.DonationIDs = donation.UUIDGenerator{Prefix: donation.DefaultPrefix}
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	return &Registry{
		cfg:          cfg,
		directory:    opts.Directory,
		certificates: opts.Certificates,
		processor:    opts.Processor,
		validator:    opts.Validator,
		donationIDs:  opts.DonationIDs,
		sched:        opts.Scheduler,
		sweeper:      schedule.NewScope(opts.Scheduler),
		newID:        opts.NewID,
		logger:       opts.Logger,
		sessions:     make(map[string]*Session),
	}, nil
}

// Create opens a session. An undetermined locale uses the configured default.
func (r *Registry) Create(locale language.Tag) (*Session, error) {
	if locale == language.Und {
		locale = r.cfg.DefaultLocale
	}
	now := r.sched.Now()
	ctx, cancel := context.WithCancel(context.Background())
	sess := &Session{
		ID:        r.newID(),
		Locale:    locale,
		CreatedAt: now,
		ctx:       ctx,
		cancel:    cancel,
		lastSeen:  now,
	}
	logger := r.logger.With().Str("session_id", sess.ID).Logger()

	sess.Queue = notify.NewQueue(notify.Options{
		DefaultDuration: r.cfg.NotificationDefault,
		ExitDelay:       r.cfg.NotificationExit,
		Scheduler:       r.sched,
		Logger:          logger,
	})
	flow, err := donation.NewController(donation.Options{
		Queue:     sess.Queue,
		Directory: r.directory,
		Processor: r.processor,
		IDs:       r.donationIDs,
		Validator: r.validator,
		Scheduler: r.sched,
		Timing:    r.cfg.Timing,
		Locale:    locale,
		OnStart:   sess.clearCertificate,
		OnReady:   func(d domain.CompletedDonation) { r.issue(sess, d, logger) },
		Logger:    logger,
	})
	if err != nil {
		sess.Queue.Close()
		cancel()
		return nil, err
	}
	sess.Flow = flow

	r.mu.Lock()
	if r.shutdown {
		r.mu.Unlock()
		sess.close()
		return nil, domain.ErrSessionClosed
	}
	r.sessions[sess.ID] = sess
	r.mu.Unlock()

	logger.Debug().Str("locale", locale.String()).Msg("session: created")
	return sess, nil
}

func (r *Registry) issue(sess *Session, d domain.CompletedDonation, logger zerolog.Logger) {
	cert, err := r.certificates.Prepare(d, sess.Locale)
	if err != nil {
		logger.Error().Err(err).Str("donation_id", d.ID).Msg("session: prepare certificate")
		return
	}
	if !sess.setCertificate(cert) {
		logger.Debug().Str("donation_id", d.ID).Msg("session: stale certificate dropped")
	}
}

// Get returns a live session and marks it as recently used.
func (r *Registry) Get(id string) (*Session, error) {
	id = strings.TrimSpace(id)
	r.mu.RLock()
	sess, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, domain.ErrNotFound
	}
	sess.touch(r.sched.Now())
	return sess, nil
}

// Close tears a session down. Unknown ids yield domain.ErrNotFound.
func (r *Registry) Close(id string) error {
	r.mu.Lock()
	sess, ok := r.sessions[strings.TrimSpace(id)]
	if ok {
		delete(r.sessions, sess.ID)
	}
	r.mu.Unlock()
	if !ok {
		return domain.ErrNotFound
	}
	sess.close()
	r.logger.Debug().Str("session_id", sess.ID).Msg("session: closed")
	return nil
}

// Sweep closes sessions idle for longer than the TTL and returns how many
// were removed.
func (r *Registry) Sweep() int {
	cutoff := r.sched.Now().Add(-r.cfg.TTL)
	var expired []*Session
	r.mu.Lock()
	for id, sess := range r.sessions {
		if sess.idleSince().Before(cutoff) {
			expired = append(expired, sess)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, sess := range expired {
		sess.close()
	}
	if len(expired) > 0 {
		r.logger.Info().Int("expired", len(expired)).Msg("session: sweep")
	}
	return len(expired)
}

// Start sweeps idle sessions every SweepInterval until Shutdown.
func (r *Registry) Start() {
	var tick func()
	tick = func() {
		r.Sweep()
		r.sweeper.After(r.cfg.SweepInterval, tick)
	}
	r.sweeper.After(r.cfg.SweepInterval, tick)
}

// Shutdown closes every session and rejects new ones.
func (r *Registry) Shutdown() {
	r.sweeper.Close()
	r.mu.Lock()
	r.shutdown = true
	all := make([]*Session, 0, len(r.sessions))
	for _, sess := range r.sessions {
		all = append(all, sess)
	}
	r.sessions = make(map[string]*Session)
	r.mu.Unlock()

	for _, sess := range all {
		sess.close()
	}
	r.logger.Info().Int("closed", len(all)).Msg("session: registry shut down")
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// IDs lists live session ids in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	ids := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	r.mu.RUnlock()
	sort.Strings(ids)
	return ids
}
