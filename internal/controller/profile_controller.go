package controller

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/fitpro-app/FitProBack/internal/models"
	"github.com/fitpro-app/FitProBack/internal/services"
)

var (
	ErrNoActiveProfile = errors.New("no active profile")
	ErrSaveInProgress  = errors.New("save already in progress")
)

// State is the controller lifecycle phase.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateSaving  State = "saving"
)

type profileStore interface {
	Get(ctx context.Context, userID string) (*models.UserProfile, error)
	Save(ctx context.Context, userID string, update services.ProfileUpdate) (*models.UserProfile, error)
}

// ProfileController drives the profile screen lifecycle for the single active
// identity: Idle -> Loading -> Ready, with a Saving sub-state while a submit
// is in flight. A second submit during Saving fails fast instead of racing
// the first one.
type ProfileController struct {
	profiles profileStore
	now      func() time.Time

	mu       sync.Mutex
	state    State
	identity *models.Identity
	profile  *models.UserProfile
}

func NewProfileController(profiles profileStore) *ProfileController {
	return &ProfileController{
		profiles: profiles,
		now:      time.Now,
		state:    StateIdle,
	}
}

// Start loads the profile for identity. When no record exists yet, a default
// in-memory profile is synthesized from the identity without persisting it.
// Starting again with the already-loaded identity returns the displayed
// profile without reloading.
func (c *ProfileController) Start(ctx context.Context, identity *models.Identity) (*models.UserProfile, error) {
	c.mu.Lock()
	if identity == nil {
		c.mu.Unlock()
		return nil, ErrNoActiveProfile
	}
	if c.identity != nil && c.identity.ID == identity.ID && c.state == StateReady {
		profile := c.profile
		c.mu.Unlock()
		return profile, nil
	}
	if c.state == StateLoading || c.state == StateSaving {
		c.mu.Unlock()
		return nil, ErrSaveInProgress
	}
	c.state = StateLoading
	c.identity = identity
	c.profile = nil
	c.mu.Unlock()

	profile, err := c.profiles.Get(ctx, identity.ID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		if !errors.Is(err, services.ErrProfileNotFound) {
			c.state = StateIdle
			c.identity = nil
			return nil, err
		}
		profile = &models.UserProfile{
			ID:        identity.ID,
			Name:      identity.Name,
			Email:     identity.Email,
			UpdatedAt: c.now().UTC(),
		}
	}
	c.profile = profile
	c.state = StateReady
	return profile, nil
}

// Submit saves the edited fields. The displayed profile keeps the in-progress
// edits while the save is in flight; on success it is replaced with the saved
// record (derived fields included), on failure the edited, unsaved profile
// stays displayed and the error is returned. Either way the controller
// returns to Ready.
func (c *ProfileController) Submit(ctx context.Context, update services.ProfileUpdate) (*models.UserProfile, error) {
	c.mu.Lock()
	if c.state == StateSaving {
		c.mu.Unlock()
		return nil, ErrSaveInProgress
	}
	if c.state != StateReady || c.identity == nil {
		c.mu.Unlock()
		return nil, ErrNoActiveProfile
	}
	c.state = StateSaving
	update.Apply(c.profile)
	submitted := updateFromProfile(c.profile)
	userID := c.identity.ID
	c.mu.Unlock()

	saved, err := c.profiles.Save(ctx, userID, submitted)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateReady
	if err != nil {
		return nil, err
	}
	c.profile = saved
	return saved, nil
}

// updateFromProfile rebuilds the full edited form state for submission, so
// the synthesized default name and email reach the store on the first save.
func updateFromProfile(p *models.UserProfile) services.ProfileUpdate {
	update := services.ProfileUpdate{}
	if p.Name != "" {
		name := p.Name
		update.Name = &name
	}
	if p.Email != "" {
		email := p.Email
		update.Email = &email
	}
	if p.Location != nil {
		v := *p.Location
		update.Location = &v
	}
	if p.Bio != nil {
		v := *p.Bio
		update.Bio = &v
	}
	if p.Phone != nil {
		v := *p.Phone
		update.Phone = &v
	}
	if p.Age != nil {
		v := *p.Age
		update.Age = &v
	}
	if p.Weight != nil {
		v := *p.Weight
		update.Weight = &v
	}
	if p.Height != nil {
		v := *p.Height
		update.Height = &v
	}
	return update
}

// Profile returns the currently displayed profile, or nil before loading
// completes.
func (c *ProfileController) Profile() *models.UserProfile {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.profile
}

// Identity returns the identity the controller is bound to.
func (c *ProfileController) Identity() *models.Identity {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.identity
}

// State returns the current lifecycle phase.
func (c *ProfileController) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Reset returns the controller to Idle, dropping the bound identity and the
// displayed profile. Called on logout.
func (c *ProfileController) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateIdle
	c.identity = nil
	c.profile = nil
}
