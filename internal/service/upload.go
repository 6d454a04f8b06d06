package service

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/demand-prediction/backend/internal/domain"
	"github.com/demand-prediction/backend/internal/repo"
	"github.com/demand-prediction/backend/internal/tripfile"
)

// UploadService runs the trip-file ingestion pipeline: aggregate pair
// frequencies, pick the top N, then reconcile each pair into the zone and
// route stores.
//
// The pipeline talks to repos directly rather than going through the CRUD
// services: it has already guaranteed the preconditions those services
// re-check (zones exist, pair is valid) on a per-pair basis.
type UploadService struct {
	zones  repo.ZoneRepo
	routes repo.RouteRepo
	log    *slog.Logger
}

// NewUploadService constructs an UploadService backed by the provided repos.
func NewUploadService(zones repo.ZoneRepo, routes repo.RouteRepo, log *slog.Logger) *UploadService {
	if log == nil {
		log = slog.Default()
	}
	return &UploadService{zones: zones, routes: routes, log: log}
}

// ProcessTripFile ingests one parquet trip file and returns the summary.
//
// Only two failures abort the whole call, both before any store mutation:
// an invalid mode (domain.ErrInvalidInput) and a missing required column or
// unreadable file (domain.ErrSchema). Every per-pair failure afterwards is
// recorded in the summary's error list and processing continues.
func (s *UploadService) ProcessTripFile(r io.ReaderAt, size int64, p domain.UploadParams) (domain.UploadSummary, error) {
	if !p.Mode.Valid() {
		return domain.UploadSummary{}, fmt.Errorf("%w: mode must be %q or %q",
			domain.ErrInvalidInput, domain.ModeCreate, domain.ModeUpdate)
	}

	counts, rowsRead, err := tripfile.ReadPairCounts(r, size, p.LimitRows)
	if err != nil {
		return domain.UploadSummary{}, fmt.Errorf("service.UploadService.ProcessTripFile: %w", err)
	}

	top := tripfile.TopN(counts, p.TopNRoutes)

	summary := domain.UploadSummary{
		FileName:       p.FileName,
		RowsRead:       rowsRead,
		RoutesDetected: len(top),
		Errors:         []string{},
	}

	for _, pc := range top {
		if pc.Pickup <= 0 || pc.Dropoff <= 0 || pc.Pickup == pc.Dropoff {
			// Cannot come out of the aggregation for well-formed TLC data,
			// but a bad pair must not poison the rest of the batch.
			summary.Errors = append(summary.Errors,
				fmt.Sprintf("invalid route pair: pickup=%d, dropoff=%d", pc.Pickup, pc.Dropoff))
			continue
		}

		s.ensureZone(pc.Pickup, p.Mode, &summary)
		s.ensureZone(pc.Dropoff, p.Mode, &summary)
		s.upsertRoute(pc, p.Mode, &summary)
	}

	s.log.Info("trip file processed",
		"file_name", summary.FileName,
		"rows_read", summary.RowsRead,
		"routes_detected", summary.RoutesDetected,
		"routes_created", summary.RoutesCreated,
		"routes_updated", summary.RoutesUpdated,
		"zones_created", summary.ZonesCreated,
		"errors", len(summary.Errors),
	)

	return summary, nil
}

// ensureZone makes sure the zone id exists. Missing zones are created with
// the documented defaults; in update mode an existing inactive zone is
// re-activated.
func (s *UploadService) ensureZone(id int, mode domain.UploadMode, summary *domain.UploadSummary) {
	if !s.zones.Exists(id) {
		_, err := s.zones.Create(domain.Zone{
			ID:          id,
			Borough:     domain.DefaultBorough,
			ZoneName:    fmt.Sprintf("Zone %d", id),
			ServiceZone: domain.DefaultServiceZone,
			Active:      true,
		})
		if err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("failed to create zone %d: %v", id, err))
			return
		}
		summary.ZonesCreated++
		return
	}

	if mode != domain.ModeUpdate {
		return
	}
	zone, err := s.zones.GetByID(id)
	if err != nil || zone.Active {
		return
	}
	zone.Active = true
	if _, err := s.zones.Update(zone); err != nil {
		summary.Errors = append(summary.Errors, fmt.Sprintf("failed to update zone %d: %v", id, err))
		return
	}
	summary.ZonesUpdated++
}

// upsertRoute creates the route for the pair if absent; when it already
// exists, update mode refreshes it and create mode leaves it untouched so
// repeated uploads of the same file stay idempotent.
func (s *UploadService) upsertRoute(pc tripfile.PairCount, mode domain.UploadMode, summary *domain.UploadSummary) {
	name := fmt.Sprintf("Route %d->%d (freq:%d)", pc.Pickup, pc.Dropoff, pc.Count)

	existing, err := s.routes.FindByZonePair(pc.Pickup, pc.Dropoff)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		_, err := s.routes.Create(domain.Route{
			PickupZoneID:  pc.Pickup,
			DropoffZoneID: pc.Dropoff,
			Name:          name,
			Active:        true,
		})
		if err != nil {
			summary.Errors = append(summary.Errors,
				fmt.Sprintf("failed to create route %d->%d: %v", pc.Pickup, pc.Dropoff, err))
			return
		}
		summary.RoutesCreated++

	case err != nil:
		summary.Errors = append(summary.Errors,
			fmt.Sprintf("failed to look up route %d->%d: %v", pc.Pickup, pc.Dropoff, err))

	case mode == domain.ModeUpdate:
		existing.Name = name
		existing.Active = true
		if _, err := s.routes.Update(existing); err != nil {
			summary.Errors = append(summary.Errors,
				fmt.Sprintf("failed to update route %d->%d: %v", pc.Pickup, pc.Dropoff, err))
			return
		}
		summary.RoutesUpdated++
	}
}
