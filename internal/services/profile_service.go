package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/fitpro-app/FitProBack/internal/models"
	"github.com/fitpro-app/FitProBack/internal/storage"
)

var ErrProfileNotFound = errors.New("profile not found")

// profilesKey is the storage namespace holding the whole profile-by-user-id
// map as one JSON value, matching the original local-storage layout.
const profilesKey = "fitpro:profiles"

// ProfileUpdate carries the caller-editable profile fields. Nil means "leave
// the stored value unchanged"; the derived fields are never accepted here.
type ProfileUpdate struct {
	Name     *string
	Email    *string
	Location *string
	Bio      *string
	Phone    *string
	Age      *int
	Weight   *float64
	Height   *float64
}

// Apply overlays every supplied field onto profile.
func (u ProfileUpdate) Apply(profile *models.UserProfile) {
	if u.Name != nil {
		profile.Name = *u.Name
	}
	if u.Email != nil {
		profile.Email = *u.Email
	}
	if u.Location != nil {
		v := *u.Location
		profile.Location = &v
	}
	if u.Bio != nil {
		v := *u.Bio
		profile.Bio = &v
	}
	if u.Phone != nil {
		v := *u.Phone
		profile.Phone = &v
	}
	if u.Age != nil {
		v := *u.Age
		profile.Age = &v
	}
	if u.Weight != nil {
		v := *u.Weight
		profile.Weight = &v
	}
	if u.Height != nil {
		v := *u.Height
		profile.Height = &v
	}
}

// ProfileService is the profile store: a read-modify-write merge over the
// key-value medium, recomputing the derived health metrics on every save.
type ProfileService struct {
	store storage.Store
	now   func() time.Time
}

func NewProfileService(store storage.Store) *ProfileService {
	return &ProfileService{store: store, now: time.Now}
}

// Get returns the stored profile for userID or ErrProfileNotFound. It never
// recomputes derived fields; the stored value is returned as-is.
func (s *ProfileService) Get(ctx context.Context, userID string) (*models.UserProfile, error) {
	profiles, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	profile, ok := profiles[userID]
	if !ok {
		return nil, ErrProfileNotFound
	}
	return &profile, nil
}

// Save merges update over the stored record for userID (an empty record if
// none exists), stamps id and updatedAt, recomputes the derived fields when
// weight and height are both positive, and persists the result.
//
// The read-modify-write is not atomic across concurrent callers; the system
// assumes a single active session per user id, so overlapping saves from a
// second device can lose fields (last write wins on the whole map).
func (s *ProfileService) Save(ctx context.Context, userID string, update ProfileUpdate) (*models.UserProfile, error) {
	profiles, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	merged := profiles[userID]
	update.Apply(&merged)
	merged.ID = userID
	merged.UpdatedAt = s.now().UTC()
	deriveMetrics(&merged)

	profiles[userID] = merged
	if err := s.saveAll(ctx, profiles); err != nil {
		return nil, err
	}
	return &merged, nil
}

func (s *ProfileService) loadAll(ctx context.Context) (map[string]models.UserProfile, error) {
	raw, err := s.store.Get(ctx, profilesKey)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return map[string]models.UserProfile{}, nil
		}
		return nil, fmt.Errorf("unable to read profiles: %w", err)
	}
	profiles := map[string]models.UserProfile{}
	if err := json.Unmarshal(raw, &profiles); err != nil {
		return nil, fmt.Errorf("unable to decode profiles: %w", err)
	}
	return profiles, nil
}

func (s *ProfileService) saveAll(ctx context.Context, profiles map[string]models.UserProfile) error {
	raw, err := json.Marshal(profiles)
	if err != nil {
		return fmt.Errorf("unable to encode profiles: %w", err)
	}
	if err := s.store.Set(ctx, profilesKey, raw); err != nil {
		return fmt.Errorf("unable to write profiles: %w", err)
	}
	return nil
}

const defaultAge = 25

// deriveMetrics recomputes bmi, bmiStatus and dailyCalories when weight and
// height are both set; otherwise the previously stored values are kept.
func deriveMetrics(profile *models.UserProfile) {
	if !profile.HasBodyMetrics() {
		return
	}

	meters := *profile.Height / 100
	value := *profile.Weight / (meters * meters)
	bmi := fmt.Sprintf("%.1f", value)
	status := classifyBMI(value)

	age := defaultAge
	if profile.Age != nil && *profile.Age > 0 {
		age = *profile.Age
	}
	// Harris-Benedict BMR with a fixed moderate-activity multiplier.
	bmr := 10*(*profile.Weight) + 6.25*(*profile.Height) - 5*float64(age) + 5
	calories := int(math.Round(bmr * 1.55))

	profile.BMI = &bmi
	profile.BMIStatus = &status
	profile.DailyCalories = &calories
}

// classifyBMI uses the unrounded value; each band is inclusive on its lower
// bound.
func classifyBMI(value float64) string {
	switch {
	case value < 18.5:
		return "underweight"
	case value < 25:
		return "healthy weight"
	case value < 30:
		return "overweight"
	default:
		return "obesity"
	}
}
