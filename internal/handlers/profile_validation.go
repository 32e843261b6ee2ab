package handlers

import "strings"

const (
	maxAgeYears    = 120
	maxWeightKG    = 500
	maxHeightCM    = 260
	maxFreeTextLen = 500
)

func validateUpdateProfileRequest(req updateProfileRequest) string {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return "name must not be empty"
	}
	if req.Age != nil && (*req.Age <= 0 || *req.Age > maxAgeYears) {
		return "age must be between 1 and 120"
	}
	if req.Weight != nil && (*req.Weight <= 0 || *req.Weight > maxWeightKG) {
		return "weight must be between 0 and 500 kg"
	}
	if req.Height != nil && (*req.Height <= 0 || *req.Height > maxHeightCM) {
		return "height must be between 0 and 260 cm"
	}
	if req.Location != nil && len(*req.Location) > maxFreeTextLen {
		return "location is too long"
	}
	if req.Bio != nil && len(*req.Bio) > maxFreeTextLen {
		return "bio is too long"
	}
	if req.Phone != nil && len(*req.Phone) > 32 {
		return "phone is too long"
	}
	return ""
}
