package dto

import "trip-itinerary-service/internal/domain"

type ItineraryResponse struct {
	Itinerary domain.Itinerary `json:"itinerary"`
	Warnings  []string         `json:"warnings,omitempty"`
}

type VersionListResponse struct {
	Versions []domain.Itinerary `json:"versions"`
}

type SuggestionListResponse struct {
	Suggestions []domain.Suggestion `json:"suggestions"`
}

type SuggestionResponse struct {
	Suggestion domain.Suggestion `json:"suggestion"`
}

type RefreshResponse struct {
	Created []domain.Suggestion `json:"created"`
}

type WeightsResponse struct {
	Weights domain.Weights `json:"weights"`
}
