package models

import "time"

// UserProfile is the single persisted profile record for a user. The bmi,
// bmiStatus and dailyCalories fields are derived on save and are either all
// present or all absent.
type UserProfile struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Location      *string   `json:"location,omitempty"`
	Bio           *string   `json:"bio,omitempty"`
	Phone         *string   `json:"phone,omitempty"`
	Age           *int      `json:"age,omitempty"`
	Weight        *float64  `json:"weight,omitempty"`
	Height        *float64  `json:"height,omitempty"`
	BMI           *string   `json:"bmi,omitempty"`
	BMIStatus     *string   `json:"bmiStatus,omitempty"`
	DailyCalories *int      `json:"dailyCalories,omitempty"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// HasBodyMetrics reports whether the record carries the inputs required to
// recompute the derived fields.
func (p *UserProfile) HasBodyMetrics() bool {
	return p.Weight != nil && *p.Weight > 0 && p.Height != nil && *p.Height > 0
}
