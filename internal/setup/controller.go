// Package setup implements the signup flow of the setup screen: it owns the
// screen's mutable state and orchestrates the profile lookup, the backend
// registration, the session commit, and the navigation signal.
package setup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Houeta/devpin/internal/github"
	"github.com/Houeta/devpin/internal/location"
	"github.com/Houeta/devpin/internal/metrics"
	"github.com/Houeta/devpin/internal/models"
	"github.com/Houeta/devpin/internal/registry"
	"github.com/Houeta/devpin/internal/session"
)

// RouteMain is the route the flow navigates to after a successful signup.
const RouteMain = "Main"

// User-facing outcomes of a failed signup run. Only these two strings ever
// reach the error banner; underlying causes stay in the logs.
const (
	// MsgUnknownUsername is shown when the entered username does not exist on GitHub.
	MsgUnknownUsername = "There is no such username on GitHub. Please try again."
	// MsgGenericFailure is shown for every other lookup or registration failure.
	MsgGenericFailure = "Something went wrong. Please try again."
)

// ErrSubmissionInFlight is returned by Submit while a previous run is still busy.
var ErrSubmissionInFlight = errors.New("a signup attempt is already in flight")

// Navigator moves the application to another screen. Replace is an
// irreversible transition: the setup screen is removed from the stack, so
// back-navigation cannot return to it.
type Navigator interface {
	Replace(route string)
}

// State is a copyable snapshot of the screen's observable state: the text
// input value, the marker and viewport, the busy indicator, and the error
// banner (empty string means no banner).
type State struct {
	Username     string
	Marker       models.Coordinates
	Region       models.Region
	MapLocked    bool
	Busy         bool
	ErrorMessage string
}

// Controller owns the setup screen state for the screen's lifetime and runs
// the signup pipeline. All collaborators are injected at construction; in
// particular the session store is an explicit dependency, never ambient
// state. Methods are safe for concurrent use.
type Controller struct {
	log       *slog.Logger
	profiles  github.Interface
	registrar registry.Interface
	store     session.Store
	nav       Navigator
	locator   location.Provider // may be nil: no best-effort position fetch
	metrics   *metrics.Metrics

	mu           sync.Mutex
	username     string
	marker       models.Coordinates
	region       models.Region
	mapLocked    bool
	busy         bool
	errorMessage string
}

// NewController creates a setup flow controller. The marker and viewport
// start at the compile-time defaults and map interaction starts locked.
func NewController(
	log *slog.Logger,
	profiles github.Interface,
	registrar registry.Interface,
	store session.Store,
	nav Navigator,
	locator location.Provider,
	metrics *metrics.Metrics,
) *Controller {
	return &Controller{
		log:       log,
		profiles:  profiles,
		registrar: registrar,
		store:     store,
		nav:       nav,
		locator:   locator,
		metrics:   metrics,
		marker:    models.DefaultCoordinates(),
		region:    models.DefaultRegion(),
		mapLocked: true,
	}
}

// Start kicks off the best-effort position fetch on its own goroutine and
// returns immediately. When no provider is configured the defaults stay.
func (c *Controller) Start(ctx context.Context) {
	if c.locator == nil {
		c.log.DebugContext(ctx, "No location provider configured, keeping default position")
		return
	}
	go c.locate(ctx)
}

// locate overwrites the marker and the viewport center with the provider's
// fix. Failure is a documented no-op: the user never sees it, the defaults
// stay. A fix arriving after ctx is done is dropped, not applied.
func (c *Controller) locate(ctx context.Context) {
	startTime := time.Now()
	coords, err := c.locator.Locate(ctx)
	c.metrics.RequestSeconds.WithLabelValues("locate").Observe(time.Since(startTime).Seconds())

	if err != nil {
		c.metrics.APIErrors.Inc()
		c.log.DebugContext(ctx, "Best-effort location fetch failed, keeping default position", "error", err)
		return
	}
	if ctx.Err() != nil {
		c.log.DebugContext(ctx, "Location fix arrived after teardown, dropping it")
		return
	}

	c.mu.Lock()
	c.marker = *coords
	c.region.Center = *coords
	c.mu.Unlock()

	c.log.DebugContext(ctx, "Initial position acquired", "lat", coords.Latitude, "lon", coords.Longitude)
}

// HandleMapPress records a map press or point-of-interest tap: the pressed
// coordinate unconditionally becomes the marker. No validation, no bounds
// check.
func (c *Controller) HandleMapPress(coordinate models.Coordinates) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.marker = coordinate
}

// SetUsername overwrites the username text. Any edit dismisses a prior
// error banner.
func (c *Controller) SetUsername(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.username = text
	c.errorMessage = ""
}

// Submit runs the signup pipeline: look the username up on GitHub, register
// the profile plus marker with the backend, commit the identity to the
// session store, and signal navigation to the main screen.
//
// While a run is in flight further calls return ErrSubmissionInFlight and
// leave all state untouched. A started run ends with exactly one of the two
// outcomes — a navigation signal or an error banner — and always clears the
// busy flag, whichever way it ends. The returned error mirrors the failure
// for the caller's logging; the banner never carries more than the two fixed
// messages.
//
// When ctx is cancelled mid-run the remaining state mutations are dropped:
// a torn-down screen gets neither a banner nor a navigation signal.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		c.metrics.Signups.WithLabelValues("rejected").Inc()
		c.log.WarnContext(ctx, "Signup rejected, another attempt is in flight")
		return ErrSubmissionInFlight
	}
	c.busy = true
	c.errorMessage = ""
	username := c.username
	marker := c.marker
	c.mu.Unlock()

	c.metrics.InFlight.Inc()
	defer c.metrics.InFlight.Dec()
	defer c.setBusy(false)

	c.log.InfoContext(ctx, "Signup started", "username", username)

	profile, err := c.lookup(ctx, username)
	if err == nil {
		err = c.register(ctx, models.NewRegistration(*profile, marker))
	}

	if ctx.Err() != nil {
		c.log.DebugContext(ctx, "Signup run cancelled, dropping its outcome", "username", username)
		return ctx.Err()
	}

	if err != nil {
		c.fail(ctx, username, err)
		return err
	}

	c.succeed(ctx, username)
	return nil
}

// State returns a snapshot of the observable screen state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		Username:     c.username,
		Marker:       c.marker,
		Region:       c.region,
		MapLocked:    c.mapLocked,
		Busy:         c.busy,
		ErrorMessage: c.errorMessage,
	}
}

// Busy reports whether a signup run is in flight. The front-end derives the
// enabled state of its signup control from this.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// ErrorMessage returns the current error banner text, empty when there is none.
func (c *Controller) ErrorMessage() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errorMessage
}

func (c *Controller) setBusy(busy bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = busy
}

func (c *Controller) lookup(ctx context.Context, username string) (*models.Profile, error) {
	startTime := time.Now()
	profile, err := c.profiles.Lookup(ctx, username)
	c.metrics.RequestSeconds.WithLabelValues("lookup").Observe(time.Since(startTime).Seconds())

	if err != nil {
		c.metrics.APIErrors.Inc()
		return nil, fmt.Errorf("profile lookup failed: %w", err)
	}
	return profile, nil
}

func (c *Controller) register(ctx context.Context, reg models.Registration) error {
	startTime := time.Now()
	err := c.registrar.Register(ctx, reg)
	c.metrics.RequestSeconds.WithLabelValues("register").Observe(time.Since(startTime).Seconds())

	if err != nil {
		c.metrics.APIErrors.Inc()
		return fmt.Errorf("registration failed: %w", err)
	}
	return nil
}

// fail translates a pipeline error into the user-facing banner. The unknown
// username case keeps its specific message; every other cause is hidden
// behind the generic one.
func (c *Controller) fail(ctx context.Context, username string, err error) {
	message := MsgGenericFailure
	result := "failure"
	if errors.Is(err, github.ErrUserNotFound) {
		message = MsgUnknownUsername
		result = "unknown_username"
	}

	c.mu.Lock()
	c.errorMessage = message
	c.mu.Unlock()

	c.metrics.Signups.WithLabelValues(result).Inc()
	c.log.ErrorContext(ctx, "Signup failed", "username", username, "error", err)
}

// succeed commits the identity, unlocks map interaction and signals the
// irreversible navigation to the main screen.
func (c *Controller) succeed(ctx context.Context, username string) {
	c.store.Commit(username)

	c.mu.Lock()
	c.mapLocked = false
	c.mu.Unlock()

	c.nav.Replace(RouteMain)

	c.metrics.Signups.WithLabelValues("success").Inc()
	c.log.InfoContext(ctx, "Signup succeeded", "username", username)
}
