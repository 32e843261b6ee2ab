package controller

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fitpro-app/FitProBack/internal/models"
	"github.com/fitpro-app/FitProBack/internal/services"
)

type stubProfileStore struct {
	mu         sync.Mutex
	getResult  *models.UserProfile
	getErr     error
	saveResult *models.UserProfile
	saveErr    error
	lastUpdate services.ProfileUpdate
	saveCalls  int
	saveGate   chan struct{}
}

func (s *stubProfileStore) Get(_ context.Context, _ string) (*models.UserProfile, error) {
	return s.getResult, s.getErr
}

func (s *stubProfileStore) Save(_ context.Context, _ string, update services.ProfileUpdate) (*models.UserProfile, error) {
	s.mu.Lock()
	s.lastUpdate = update
	s.saveCalls++
	gate := s.saveGate
	s.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return s.saveResult, s.saveErr
}

func demoIdentity() *models.Identity {
	return &models.Identity{ID: "u1", Email: "demo@fitpro.test", Name: "Demo User"}
}

func floatPtr(v float64) *float64 { return &v }

func TestStartLoadsExistingProfile(t *testing.T) {
	stored := &models.UserProfile{ID: "u1", Name: "Demo User", Email: "demo@fitpro.test"}
	ctrl := NewProfileController(&stubProfileStore{getResult: stored})

	profile, err := ctrl.Start(context.Background(), demoIdentity())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if profile != stored {
		t.Errorf("Expected the stored profile to be displayed")
	}
	if ctrl.State() != StateReady {
		t.Errorf("Expected Ready, got %s", ctrl.State())
	}
}

func TestStartSynthesizesDefaultWithoutPersisting(t *testing.T) {
	store := &stubProfileStore{getErr: services.ErrProfileNotFound}
	ctrl := NewProfileController(store)

	profile, err := ctrl.Start(context.Background(), demoIdentity())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if profile.ID != "u1" || profile.Name != "Demo User" || profile.Email != "demo@fitpro.test" {
		t.Errorf("Expected default profile from identity, got %+v", profile)
	}
	if profile.UpdatedAt.IsZero() {
		t.Errorf("Expected updatedAt to be stamped")
	}
	if store.saveCalls != 0 {
		t.Errorf("Expected no save for the synthesized default")
	}
	if ctrl.State() != StateReady {
		t.Errorf("Expected Ready, got %s", ctrl.State())
	}
}

func TestStartTwiceWithSameIdentityDoesNotReload(t *testing.T) {
	stored := &models.UserProfile{ID: "u1"}
	store := &stubProfileStore{getResult: stored}
	ctrl := NewProfileController(store)
	ctx := context.Background()

	if _, err := ctrl.Start(ctx, demoIdentity()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	store.getErr = errors.New("should not be called again")
	profile, err := ctrl.Start(ctx, demoIdentity())
	if err != nil {
		t.Fatalf("Expected cached profile, got %v", err)
	}
	if profile != stored {
		t.Errorf("Expected the already-displayed profile")
	}
}

func TestStartFailureReturnsToIdle(t *testing.T) {
	loadErr := errors.New("medium down")
	ctrl := NewProfileController(&stubProfileStore{getErr: loadErr})

	if _, err := ctrl.Start(context.Background(), demoIdentity()); !errors.Is(err, loadErr) {
		t.Fatalf("Expected load error, got %v", err)
	}
	if ctrl.State() != StateIdle {
		t.Errorf("Expected Idle after load failure, got %s", ctrl.State())
	}
}

func TestSubmitReplacesDisplayedProfile(t *testing.T) {
	stored := &models.UserProfile{ID: "u1", Name: "Demo User"}
	bmi := "22.9"
	saved := &models.UserProfile{ID: "u1", Name: "Demo User", BMI: &bmi}
	store := &stubProfileStore{getResult: stored, saveResult: saved}
	ctrl := NewProfileController(store)
	ctx := context.Background()

	if _, err := ctrl.Start(ctx, demoIdentity()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	profile, err := ctrl.Submit(ctx, services.ProfileUpdate{Weight: floatPtr(70), Height: floatPtr(175)})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if profile != saved || ctrl.Profile() != saved {
		t.Errorf("Expected the saved record to replace the display")
	}
	if ctrl.State() != StateReady {
		t.Errorf("Expected Ready after submit, got %s", ctrl.State())
	}
	if store.lastUpdate.Weight == nil || *store.lastUpdate.Weight != 70 {
		t.Errorf("Expected edited fields forwarded to save")
	}
}

func TestSubmitIncludesDisplayedDefaults(t *testing.T) {
	store := &stubProfileStore{getErr: services.ErrProfileNotFound, saveResult: &models.UserProfile{ID: "u1"}}
	ctrl := NewProfileController(store)
	ctx := context.Background()

	if _, err := ctrl.Start(ctx, demoIdentity()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := ctrl.Submit(ctx, services.ProfileUpdate{Weight: floatPtr(70)}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if store.lastUpdate.Name == nil || *store.lastUpdate.Name != "Demo User" {
		t.Errorf("Expected the defaulted name to be submitted, got %v", store.lastUpdate.Name)
	}
	if store.lastUpdate.Email == nil || *store.lastUpdate.Email != "demo@fitpro.test" {
		t.Errorf("Expected the defaulted email to be submitted, got %v", store.lastUpdate.Email)
	}
	if store.lastUpdate.Weight == nil || *store.lastUpdate.Weight != 70 {
		t.Errorf("Expected the edited weight to be submitted, got %v", store.lastUpdate.Weight)
	}
}

func TestSubmitFailureKeepsEditedProfile(t *testing.T) {
	stored := &models.UserProfile{ID: "u1", Name: "Demo User"}
	saveErr := errors.New("medium down")
	ctrl := NewProfileController(&stubProfileStore{getResult: stored, saveErr: saveErr})
	ctx := context.Background()

	if _, err := ctrl.Start(ctx, demoIdentity()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := ctrl.Submit(ctx, services.ProfileUpdate{Weight: floatPtr(70)}); !errors.Is(err, saveErr) {
		t.Fatalf("Expected save error, got %v", err)
	}

	displayed := ctrl.Profile()
	if displayed.Weight == nil || *displayed.Weight != 70 {
		t.Errorf("Expected the edited, unsaved value to stay displayed")
	}
	if ctrl.State() != StateReady {
		t.Errorf("Expected Ready after failed submit, got %s", ctrl.State())
	}
}

func TestSubmitWhileSavingFailsFast(t *testing.T) {
	stored := &models.UserProfile{ID: "u1"}
	gate := make(chan struct{})
	store := &stubProfileStore{getResult: stored, saveResult: stored, saveGate: gate}
	ctrl := NewProfileController(store)
	ctx := context.Background()

	if _, err := ctrl.Start(ctx, demoIdentity()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	firstDone := make(chan error, 1)
	go func() {
		_, err := ctrl.Submit(ctx, services.ProfileUpdate{})
		firstDone <- err
	}()

	// Wait for the first submit to enter Saving.
	deadline := time.Now().Add(time.Second)
	for ctrl.State() != StateSaving {
		if time.Now().After(deadline) {
			t.Fatal("first submit never entered Saving")
		}
		time.Sleep(time.Millisecond)
	}

	if _, err := ctrl.Submit(ctx, services.ProfileUpdate{}); !errors.Is(err, ErrSaveInProgress) {
		t.Errorf("Expected ErrSaveInProgress, got %v", err)
	}

	close(gate)
	if err := <-firstDone; err != nil {
		t.Fatalf("Expected first submit to succeed, got %v", err)
	}
	if store.saveCalls != 1 {
		t.Errorf("Expected exactly one save call, got %d", store.saveCalls)
	}
}

func TestSubmitBeforeStart(t *testing.T) {
	ctrl := NewProfileController(&stubProfileStore{})

	if _, err := ctrl.Submit(context.Background(), services.ProfileUpdate{}); !errors.Is(err, ErrNoActiveProfile) {
		t.Errorf("Expected ErrNoActiveProfile, got %v", err)
	}
}

func TestResetReturnsToIdle(t *testing.T) {
	ctrl := NewProfileController(&stubProfileStore{getResult: &models.UserProfile{ID: "u1"}})

	if _, err := ctrl.Start(context.Background(), demoIdentity()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	ctrl.Reset()
	if ctrl.State() != StateIdle || ctrl.Profile() != nil || ctrl.Identity() != nil {
		t.Errorf("Expected a clean Idle state after reset")
	}
}
