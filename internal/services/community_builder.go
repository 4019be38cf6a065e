package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"trip-itinerary-service/internal/domain"
)

// DefaultHazardRadiusKm is how close a stop must be to an active hazard
// report to be flagged.
const DefaultHazardRadiusKm = 1.5

// CommunityBuilder defers stops near active community hazard reports to
// the end of the flexible sequence, giving the hazard time to clear or
// expire before the visit.
type CommunityBuilder struct {
	RadiusKm float64
	Now      func() time.Time
}

func NewCommunityBuilder(radiusKm float64) CommunityBuilder {
	if radiusKm <= 0 {
		radiusKm = DefaultHazardRadiusKm
	}
	return CommunityBuilder{RadiusKm: radiusKm, Now: time.Now}
}

func (b CommunityBuilder) Trigger() domain.Trigger { return domain.TriggerTraffic }

func (b CommunityBuilder) Evaluate(stops []domain.Stop, itinerary domain.Itinerary, signals domain.Signals) *domain.Suggestion {
	community := signals.Community
	if community == nil || len(community.Reports) == 0 || len(itinerary.Items) == 0 {
		return nil
	}

	now := time.Now()
	if b.Now != nil {
		now = b.Now()
	}

	active := make([]domain.HazardReport, 0, len(community.Reports))
	for _, r := range community.Reports {
		if r.Active(now) {
			active = append(active, r)
		}
	}
	if len(active) == 0 {
		return nil
	}

	byID := stopsByID(stops)
	flagged := make(map[string]bool)
	var nearest domain.HazardReport
	for _, item := range itinerary.Items {
		stop, ok := byID[item.StopID]
		if !ok {
			continue
		}
		for _, r := range active {
			if domain.DistanceKm(stop.Place.Coordinates, r.Location) <= b.RadiusKm {
				flagged[item.StopID] = true
				nearest = r
				break
			}
		}
	}
	if len(flagged) == 0 {
		return nil
	}

	before := copyItems(itinerary.Items)
	after := reorderFlagged(before, flagged, lockedSet(stops), true)
	if sameOrder(before, after) {
		return nil
	}
	after = resequence(after, planAnchor(before))

	reasons := []string{
		fmt.Sprintf("%s hazard reported: %s", nearest.Severity, nearest.Message),
		fmt.Sprintf("%d stop(s) near hazards postponed", len(flagged)),
	}

	return &domain.Suggestion{
		ID:        uuid.NewString(),
		TripID:    itinerary.TripID,
		Kind:      domain.KindReorder,
		Trigger:   domain.TriggerTraffic,
		Reasons:   reasons,
		Before:    before,
		After:     after,
		Status:    domain.StatusPending,
		CreatedAt: time.Now().UTC(),
	}
}
