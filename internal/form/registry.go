package form

import (
	"context"
	"sync"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/termii-notify/smsadmin/internal/settings"
	"github.com/termii-notify/smsadmin/util/conf"
)

type Config struct {
	// Limit is the maximum number of forms kept at once. Forms are dropped
	// as soon as they are idle, so only forms in use or showing a success
	// flag count against it.
	Limit int `conf:"limit"`
}

const DefaultLimit = 1024

var DefaultConfig = conf.DefaultConfig{
	"limit": DefaultLimit,
}

type RegistryParams struct {
	fx.In

	Config Config `optional:"true"`
	Client settings.Client
	Log    *zap.Logger

	Clock Clock `optional:"true"`
}

// Release hands a form back to the registry.
type Release func()

type entry struct {
	form *Controller
	refs int
}

// Registry shares the form of a shop between the requests using it. A form
// is kept while it is in use or its success flag is shown, and dropped once
// idle.
type Registry struct {
	params ControllerParams
	limit  int

	mu    sync.Mutex
	forms map[string]*entry
	log   *zap.Logger
}

func NewRegistry(params RegistryParams) *Registry {
	log := params.Log
	if log == nil {
		log = zap.NewNop()
	}

	limit := params.Config.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	return &Registry{
		params: ControllerParams{
			Client: params.Client,
			Log:    log,
			Clock:  params.Clock,
		},
		limit: limit,
		forms: make(map[string]*entry),
		log:   log,
	}
}

func NewLifecycleRegistry(params RegistryParams, lc fx.Lifecycle) *Registry {
	registry := NewRegistry(params)
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			registry.Close()
			return nil
		},
	})
	return registry
}

// Open returns the form of a shop, creating it when none is kept. The form
// must be released after use. An empty shop, or a full registry, yields a
// form that is not kept.
func (r *Registry) Open(shop string) (*Controller, Release) {
	if shop == "" {
		return r.detached()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.forms[shop]; ok {
		return r.acquireLocked(shop, e)
	}

	if len(r.forms) >= r.limit {
		r.sweepLocked()
	}

	if len(r.forms) >= r.limit {
		r.log.Warn("form limit reached, form is not kept",
			zap.String("shop", shop),
			zap.Int("limit", r.limit),
		)
		return r.detached()
	}

	c := NewController(r.params)
	c.onIdle = func() { r.evict(shop, c) }

	e := &entry{form: c}
	r.forms[shop] = e

	r.log.Debug("opened form", zap.String("shop", shop))

	return r.acquireLocked(shop, e)
}

// Find returns the form kept for a shop, if any. The form must be released
// after use.
func (r *Registry) Find(shop string) (*Controller, Release, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.forms[shop]
	if !ok {
		return nil, func() {}, false
	}

	c, release := r.acquireLocked(shop, e)
	return c, release, true
}

func (r *Registry) acquireLocked(shop string, e *entry) (*Controller, Release) {
	e.refs++

	var once sync.Once
	return e.form, func() {
		once.Do(func() {
			r.mu.Lock()
			e.refs--
			r.mu.Unlock()

			r.evict(shop, e.form)
		})
	}
}

func (r *Registry) detached() (*Controller, Release) {
	c := NewController(r.params)
	return c, c.Close
}

// evict drops the form of shop if it is still c, unused and idle.
func (r *Registry) evict(shop string, c *Controller) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.forms[shop]
	if !ok || e.form != c || e.refs > 0 || !c.Idle() {
		return
	}

	delete(r.forms, shop)
	c.Close()

	r.log.Debug("closed form", zap.String("shop", shop))
}

func (r *Registry) sweepLocked() {
	for shop, e := range r.forms {
		if e.refs == 0 && e.form.Idle() {
			delete(r.forms, shop)
			e.form.Close()
		}
	}
}

// Len returns the number of kept forms.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.forms)
}

// Close closes all forms.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for shop, e := range r.forms {
		e.form.Close()
		delete(r.forms, shop)
	}
}
