// Package discovery implements the geo-aware candidate feed. A candidate is
// eligible when any crossing between the requester's points (current location
// plus travel stops) and the candidate's points falls within the travel
// radius.
package discovery

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vanmates/vanmates-backend/internal/domain"
	"github.com/vanmates/vanmates-backend/internal/geo"
	"github.com/vanmates/vanmates-backend/internal/repository"
)

const (
	defaultLimit = 40
	maxLimit     = 100

	// candidateBatchSize bounds the profile scan per request.
	candidateBatchSize = 500

	minDistanceMiles = 1
	maxDistanceMiles = 500
)

// SeenCache filters candidates already served recently. Implemented by
// cache.SeenCache; best-effort, may be nil.
type SeenCache interface {
	Seen(ctx context.Context, requesterID uuid.UUID) (map[uuid.UUID]struct{}, error)
	MarkSeen(ctx context.Context, requesterID uuid.UUID, candidateIDs []uuid.UUID) error
}

type UseCase struct {
	profileRepo repository.ProfileRepository
	stopRepo    repository.TravelStopRepository
	seenCache   SeenCache
	logger      *slog.Logger
	now         func() time.Time
}

func NewUseCase(
	profileRepo repository.ProfileRepository,
	stopRepo repository.TravelStopRepository,
	seenCache SeenCache,
	logger *slog.Logger,
) *UseCase {
	return &UseCase{
		profileRepo: profileRepo,
		stopRepo:    stopRepo,
		seenCache:   seenCache,
		logger:      logger,
		now:         time.Now,
	}
}

// FindCandidatesRequest carries discovery parameters. Zero values fall back
// to the requester's stored preferences and the default page size.
type FindCandidatesRequest struct {
	Mode             domain.DiscoveryMode
	MaxDistanceMiles int
	ExcludeIDs       []uuid.UUID
	Limit            int
	// Basic ignores travel stops entirely and requires current coordinates
	// on both sides.
	Basic bool
}

// Candidate is one discovery feed entry.
type Candidate struct {
	ProfileID     uuid.UUID         `json:"profile_id"`
	DisplayName   string            `json:"display_name"`
	Bio           *string           `json:"bio,omitempty"`
	Age           *int              `json:"age,omitempty"`
	LookingFor    domain.LookingFor `json:"looking_for"`
	DistanceMiles float64           `json:"distance_miles"`
}

// FindCandidates returns up to Limit eligible candidates ordered by nearest
// crossing distance ascending, ties broken by profile id. Read-only.
func (uc *UseCase) FindCandidates(ctx context.Context, requesterID uuid.UUID, req FindCandidatesRequest) ([]Candidate, error) {
	if !validMode(req.Mode) {
		return nil, domain.ErrInvalidDiscoveryMode
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	requester, err := uc.profileRepo.GetByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	radius := req.MaxDistanceMiles
	if radius == 0 {
		radius = requester.PrefMaxDistanceMiles
	}
	if radius < minDistanceMiles || radius > maxDistanceMiles {
		return nil, domain.ErrInvalidDistance
	}

	requesterStops, err := uc.stopRepo.ListByProfile(ctx, requesterID)
	if err != nil {
		return nil, fmt.Errorf("load requester travel stops: %w", err)
	}

	requesterPoints := profilePoints(requester, requesterStops, req.Basic)
	if len(requesterPoints) == 0 {
		// Proximity cannot be verified from nowhere.
		return []Candidate{}, nil
	}

	exclude := make(map[uuid.UUID]struct{}, len(req.ExcludeIDs)+1)
	exclude[requesterID] = struct{}{}
	for _, id := range req.ExcludeIDs {
		exclude[id] = struct{}{}
	}
	if uc.seenCache != nil {
		seen, err := uc.seenCache.Seen(ctx, requesterID)
		if err != nil {
			uc.logger.Warn("seen cache read failed, rotation disabled", "error", err)
		} else {
			for id := range seen {
				exclude[id] = struct{}{}
			}
		}
	}

	profiles, err := uc.profileRepo.ListDiscoverable(ctx, requesterID, candidateBatchSize)
	if err != nil {
		return nil, fmt.Errorf("list discoverable profiles: %w", err)
	}

	var compatible []*domain.Profile
	for _, p := range profiles {
		if _, skip := exclude[p.ID]; skip {
			continue
		}
		if !uc.compatible(requester, p, req.Mode) {
			continue
		}
		compatible = append(compatible, p)
	}

	stopsByProfile := map[uuid.UUID][]*domain.TravelStop{}
	if !req.Basic && len(compatible) > 0 {
		ids := make([]uuid.UUID, len(compatible))
		for i, p := range compatible {
			ids[i] = p.ID
		}
		stopsByProfile, err = uc.stopRepo.ListByProfiles(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("load candidate travel stops: %w", err)
		}
	}

	now := uc.now()
	var results []Candidate
	for _, p := range compatible {
		candidatePoints := profilePoints(p, stopsByProfile[p.ID], req.Basic)
		dist, ok := nearestCrossing(requesterPoints, candidatePoints)
		if !ok || dist > float64(radius) {
			continue
		}
		results = append(results, Candidate{
			ProfileID:     p.ID,
			DisplayName:   p.DisplayName,
			Bio:           p.Bio,
			Age:           p.Age(now),
			LookingFor:    p.LookingFor,
			DistanceMiles: dist,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].DistanceMiles != results[j].DistanceMiles {
			return results[i].DistanceMiles < results[j].DistanceMiles
		}
		return strings.Compare(results[i].ProfileID.String(), results[j].ProfileID.String()) < 0
	})
	if len(results) > limit {
		results = results[:limit]
	}

	if uc.seenCache != nil && len(results) > 0 {
		served := make([]uuid.UUID, len(results))
		for i, c := range results {
			served[i] = c.ProfileID
		}
		if err := uc.seenCache.MarkSeen(ctx, requesterID, served); err != nil {
			uc.logger.Warn("seen cache write failed", "error", err)
		}
	}

	return results, nil
}

// ResetSeen clears the requester's rotation window so exhausted feeds can
// start over.
func (uc *UseCase) ResetSeen(ctx context.Context, requesterID uuid.UUID) error {
	if uc.seenCache == nil {
		return nil
	}
	type resetter interface {
		Reset(ctx context.Context, requesterID uuid.UUID) error
	}
	if r, ok := uc.seenCache.(resetter); ok {
		return r.Reset(ctx, requesterID)
	}
	return nil
}

func (uc *UseCase) compatible(requester, candidate *domain.Profile, mode domain.DiscoveryMode) bool {
	if !mode.Admits(candidate.LookingFor) {
		return false
	}
	if mode == domain.ModeDating {
		if candidate.FriendsOnly {
			return false
		}
		if !matchesGenderPreference(requester.GenderPreference, candidate.Gender) {
			return false
		}
		if age := candidate.Age(uc.now()); age != nil {
			if *age < requester.PrefMinAge || *age > requester.PrefMaxAge {
				return false
			}
		}
	}
	return true
}

func matchesGenderPreference(pref, gender *string) bool {
	if pref == nil || *pref == domain.PrefEveryone {
		return true
	}
	if gender == nil {
		return false
	}
	switch *pref {
	case domain.PrefMen:
		return *gender == "man"
	case domain.PrefWomen:
		return *gender == "woman"
	}
	return true
}

type point struct {
	lat, lon float64
}

// profilePoints gathers the coordinates a profile can be matched from. In
// basic mode only the pinned current location counts.
func profilePoints(p *domain.Profile, stops []*domain.TravelStop, basic bool) []point {
	var points []point
	if p.HasLocation() {
		points = append(points, point{*p.LocationLat, *p.LocationLon})
	}
	if basic {
		return points
	}
	for _, s := range stops {
		if s.HasCoordinates() {
			points = append(points, point{*s.Lat, *s.Lon})
		}
	}
	return points
}

// nearestCrossing returns the minimum distance over the full cross product of
// the two point sets. ok is false when either side has no usable point.
func nearestCrossing(a, b []point) (float64, bool) {
	if len(a) == 0 || len(b) == 0 {
		return 0, false
	}
	best := -1.0
	for _, pa := range a {
		for _, pb := range b {
			d := geo.DistanceMiles(pa.lat, pa.lon, pb.lat, pb.lon)
			if best < 0 || d < best {
				best = d
			}
		}
	}
	return best, true
}

func validMode(m domain.DiscoveryMode) bool {
	return m == domain.ModeDating || m == domain.ModeFriends || m == domain.ModeAny
}
