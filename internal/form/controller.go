// Package form implements the settings form: it mirrors the settings of one
// shop, holds the template draft being edited and tracks the state of the
// load and save operations.
package form

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/termii-notify/smsadmin/internal/session"
	"github.com/termii-notify/smsadmin/internal/settings"
	"github.com/termii-notify/smsadmin/internal/shop"
)

// SuccessDisplay is how long the success flag stays set after a save.
const SuccessDisplay = 3 * time.Second

type ControllerParams struct {
	fx.In

	Client settings.Client
	Log    *zap.Logger

	Clock Clock `optional:"true"`
}

// Controller is the settings form of a single shop. Load and Save may run
// concurrently; they are not coordinated and the last write wins.
type Controller struct {
	client settings.Client
	clock  Clock
	log    *zap.Logger

	mu           sync.Mutex
	view         View
	successTimer Timer
	successGen   uint64

	// onIdle runs once the success flag expired on its own.
	onIdle func()
}

func NewController(params ControllerParams) *Controller {
	clock := params.Clock
	if clock == nil {
		clock = RealClock()
	}

	log := params.Log
	if log == nil {
		log = zap.NewNop()
	}

	return &Controller{
		client: params.Client,
		clock:  clock,
		log:    log,
		view: View{
			Draft: DefaultDraft(),
		},
	}
}

// Snapshot returns a copy of the current form state.
func (c *Controller) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.view
}

// SetDraft replaces the templates being edited.
func (c *Controller) SetDraft(draft settings.Draft) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.view.Draft = draft
}

func (c *Controller) DismissError() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.view.Error = ""
}

func (c *Controller) DismissSuccess() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.clearSuccessLocked()
}

// Idle reports whether no operation is in flight and no success flag is
// pending expiry.
func (c *Controller) Idle() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.view.LoadPhase != PhaseInFlight &&
		c.view.SavePhase != PhaseInFlight &&
		!c.view.Success
}

// Close stops pending timers.
func (c *Controller) Close() {
	c.DismissSuccess()
}

// Mount opens the form for a new viewer: the success flag of an earlier save
// is cleared and the settings are loaded.
func (c *Controller) Mount(ctx context.Context, host session.HostContext) error {
	c.DismissSuccess()

	return c.Load(ctx, host)
}

// Load fetches the settings of the host's shop and merges them into the
// form. Failures are recorded in the form state and returned.
func (c *Controller) Load(ctx context.Context, host session.HostContext) (err error) {
	c.mu.Lock()
	c.view.LoadPhase = PhaseInFlight
	c.view.Error = ""
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.view.LoadPhase = phaseOf(err)
		c.mu.Unlock()
	}()

	domain, ok := host.Shop()
	if !ok {
		c.setError(MsgNoShop)
		return shop.ErrUnresolved
	}

	log := c.log.With(zap.String("shop", domain))

	s, err := c.client.Get(ctx, domain)
	if err != nil {
		log.Debug("failed to load settings", zap.Error(err))
		c.setError(errorMessage(err, MsgLoadRejected, MsgLoadFailed))
		return err
	}

	c.mu.Lock()
	c.view.merge(s)
	c.mu.Unlock()

	log.Debug("loaded settings")

	return nil
}

// Save sends the current draft for the host's shop. After the backend
// accepted it, the settings are loaded again and the success flag is set
// for SuccessDisplay.
func (c *Controller) Save(ctx context.Context, host session.HostContext) (err error) {
	c.mu.Lock()
	c.view.SavePhase = PhaseInFlight
	c.view.Error = ""
	c.clearSuccessLocked()
	draft := c.view.Draft
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.view.SavePhase = phaseOf(err)
		c.mu.Unlock()
	}()

	domain, ok := host.Shop()
	if !ok {
		c.setError(MsgNoShop)
		return shop.ErrUnresolved
	}

	log := c.log.With(zap.String("shop", domain))

	if err := c.client.Save(ctx, domain, draft); err != nil {
		log.Debug("failed to save settings", zap.Error(err))
		c.setError(errorMessage(err, MsgSaveRejected, MsgSaveFailed))
		return err
	}

	log.Debug("saved settings")

	// the save itself succeeded, a failed reload only shows its own error
	if err := c.Load(ctx, host); err != nil {
		log.Debug("failed to reload settings after save", zap.Error(err))
	}

	c.mu.Lock()
	c.setSuccessLocked()
	c.mu.Unlock()

	return nil
}

func (c *Controller) setError(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.view.Error = msg
}

func (c *Controller) setSuccessLocked() {
	c.clearSuccessLocked()

	c.view.Success = true

	gen := c.successGen
	c.successTimer = c.clock.AfterFunc(SuccessDisplay, func() {
		c.mu.Lock()
		if c.successGen != gen {
			c.mu.Unlock()
			return
		}

		c.view.Success = false
		c.successTimer = nil
		onIdle := c.onIdle
		c.mu.Unlock()

		if onIdle != nil {
			onIdle()
		}
	})
}

func (c *Controller) clearSuccessLocked() {
	c.successGen++

	if c.successTimer != nil {
		c.successTimer.Stop()
		c.successTimer = nil
	}

	c.view.Success = false
}

// merge applies loaded settings field by field. Absent or empty values keep
// what the form currently holds.
func (v *View) merge(s settings.Settings) {
	if s.TermiiConfigured != nil {
		v.Configured = *s.TermiiConfigured
	}

	if s.TermiiSenderID != "" {
		v.SenderID = s.TermiiSenderID
	}

	if s.OrderConfirmationTemplate != "" {
		v.Draft.OrderConfirmationTemplate = s.OrderConfirmationTemplate
	}

	if s.FulfillmentTemplate != "" {
		v.Draft.FulfillmentTemplate = s.FulfillmentTemplate
	}
}

func phaseOf(err error) Phase {
	if err != nil {
		return PhaseFailed
	}

	return PhaseSucceeded
}

// errorMessage picks the message shown for a failed request: the detail of
// a rejected request, or the rejected / failed fallback.
func errorMessage(err error, rejected, failed string) string {
	var apiErr *settings.APIError
	if !errors.As(err, &apiErr) {
		return failed
	}

	if apiErr.Detail != "" {
		return apiErr.Detail
	}

	return rejected
}
