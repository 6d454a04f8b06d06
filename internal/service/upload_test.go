package service_test

import (
	"bytes"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demand-prediction/backend/internal/domain"
	"github.com/demand-prediction/backend/internal/repo"
	"github.com/demand-prediction/backend/internal/service"
)

// tripRecord mirrors the two TLC columns the pipeline reads.
type tripRecord struct {
	PULocationID int64 `parquet:"PULocationID"`
	DOLocationID int64 `parquet:"DOLocationID"`
}

type noDropoffRecord struct {
	PULocationID int64 `parquet:"PULocationID"`
}

type uploadEnv struct {
	zones  repo.ZoneRepo
	routes repo.RouteRepo
	svc    *service.UploadService
}

func newUploadEnv() uploadEnv {
	zones := repo.NewZoneRepo()
	routes := repo.NewRouteRepo()
	return uploadEnv{
		zones:  zones,
		routes: routes,
		svc:    service.NewUploadService(zones, routes, nil),
	}
}

func tripParquet(t *testing.T, pairs ...[2]int64) (*bytes.Reader, int64) {
	t.Helper()

	rows := make([]tripRecord, len(pairs))
	for i, p := range pairs {
		rows[i] = tripRecord{PULocationID: p[0], DOLocationID: p[1]}
	}

	var buf bytes.Buffer
	w := parquet.NewGenericWriter[tripRecord](&buf)
	_, err := w.Write(rows)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return bytes.NewReader(buf.Bytes()), int64(buf.Len())
}

func uploadParams(mode domain.UploadMode) domain.UploadParams {
	return domain.UploadParams{
		FileName:   "yellow_tripdata_2024-01.parquet",
		Mode:       mode,
		LimitRows:  50000,
		TopNRoutes: 50,
	}
}

// The worked end-to-end example: rows [(1,2),(1,2),(1,3),(2,1)] with
// top_n=2. Pair (1,2) wins on count, and the tie between (1,3) and (2,1)
// resolves to (1,3) by first occurrence.
func TestUpload_EndToEndExample(t *testing.T) {
	env := newUploadEnv()
	r, size := tripParquet(t, [2]int64{1, 2}, [2]int64{1, 2}, [2]int64{1, 3}, [2]int64{2, 1})

	p := uploadParams(domain.ModeCreate)
	p.TopNRoutes = 2

	summary, err := env.svc.ProcessTripFile(r, size, p)

	require.NoError(t, err)
	assert.Equal(t, "yellow_tripdata_2024-01.parquet", summary.FileName)
	assert.Equal(t, 4, summary.RowsRead)
	assert.Equal(t, 3, summary.ZonesCreated)
	assert.Equal(t, 0, summary.ZonesUpdated)
	assert.Equal(t, 2, summary.RoutesDetected)
	assert.Equal(t, 2, summary.RoutesCreated)
	assert.Equal(t, 0, summary.RoutesUpdated)
	assert.Empty(t, summary.Errors)

	// Zones 1, 2, 3 were auto-created with the documented defaults.
	for _, id := range []int{1, 2, 3} {
		zone, err := env.zones.GetByID(id)
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultBorough, zone.Borough)
		assert.Equal(t, domain.DefaultServiceZone, zone.ServiceZone)
		assert.True(t, zone.Active)
	}
	zone, err := env.zones.GetByID(3)
	require.NoError(t, err)
	assert.Equal(t, "Zone 3", zone.ZoneName)

	routes := env.routes.List(domain.RouteFilter{})
	require.Len(t, routes, 2)
	assert.Equal(t, "Route 1->2 (freq:2)", routes[0].Name)
	assert.Equal(t, "Route 1->3 (freq:1)", routes[1].Name)
}

func TestUpload_UpdateModeIsIdempotent(t *testing.T) {
	env := newUploadEnv()
	pairs := [][2]int64{{1, 2}, {1, 2}, {3, 4}}

	r, size := tripParquet(t, pairs...)
	first, err := env.svc.ProcessTripFile(r, size, uploadParams(domain.ModeUpdate))
	require.NoError(t, err)
	assert.Equal(t, 2, first.RoutesCreated)

	before := env.routes.List(domain.RouteFilter{})

	r, size = tripParquet(t, pairs...)
	second, err := env.svc.ProcessTripFile(r, size, uploadParams(domain.ModeUpdate))
	require.NoError(t, err)

	assert.Equal(t, 0, second.RoutesCreated, "all routes already exist on the second run")
	assert.Equal(t, 2, second.RoutesUpdated)
	assert.Equal(t, 0, second.ZonesCreated)

	after := env.routes.List(domain.RouteFilter{})
	assert.Equal(t, before, after, "running the same file twice must not change the final records")
}

func TestUpload_CreateModeSkipsExistingRoutes(t *testing.T) {
	env := newUploadEnv()

	r, size := tripParquet(t, [2]int64{1, 2})
	_, err := env.svc.ProcessTripFile(r, size, uploadParams(domain.ModeCreate))
	require.NoError(t, err)

	r, size = tripParquet(t, [2]int64{1, 2})
	second, err := env.svc.ProcessTripFile(r, size, uploadParams(domain.ModeCreate))
	require.NoError(t, err)

	assert.Equal(t, 1, second.RoutesDetected)
	assert.Equal(t, 0, second.RoutesCreated)
	assert.Equal(t, 0, second.RoutesUpdated)
}

func TestUpload_UpdateModeReactivatesInactiveZone(t *testing.T) {
	env := newUploadEnv()

	inactive := domain.Zone{ID: 1, Borough: "Queens", ZoneName: "Astoria", Active: false}
	_, err := env.zones.Create(inactive)
	require.NoError(t, err)

	r, size := tripParquet(t, [2]int64{1, 2})
	summary, err := env.svc.ProcessTripFile(r, size, uploadParams(domain.ModeUpdate))
	require.NoError(t, err)

	assert.Equal(t, 1, summary.ZonesUpdated)
	assert.Equal(t, 1, summary.ZonesCreated, "zone 2 is still auto-created")

	zone, err := env.zones.GetByID(1)
	require.NoError(t, err)
	assert.True(t, zone.Active)
	assert.Equal(t, "Astoria", zone.ZoneName, "re-activation must not clobber zone data")
}

func TestUpload_RowLimit(t *testing.T) {
	env := newUploadEnv()
	r, size := tripParquet(t, [2]int64{1, 2}, [2]int64{3, 4}, [2]int64{5, 6}, [2]int64{7, 8})

	p := uploadParams(domain.ModeCreate)
	p.LimitRows = 3

	summary, err := env.svc.ProcessTripFile(r, size, p)

	require.NoError(t, err)
	assert.Equal(t, 3, summary.RowsRead)
	assert.Equal(t, 3, summary.RoutesDetected)
}

func TestUpload_TopNCapsDetectedRoutes(t *testing.T) {
	env := newUploadEnv()
	r, size := tripParquet(t, [2]int64{1, 2}, [2]int64{3, 4}, [2]int64{5, 6})

	p := uploadParams(domain.ModeCreate)
	p.TopNRoutes = 1

	summary, err := env.svc.ProcessTripFile(r, size, p)

	require.NoError(t, err)
	assert.Equal(t, 1, summary.RoutesDetected)
	assert.Equal(t, 1, summary.RoutesCreated)
}

func TestUpload_MissingColumnAbortsWithoutMutations(t *testing.T) {
	env := newUploadEnv()

	var buf bytes.Buffer
	w := parquet.NewGenericWriter[noDropoffRecord](&buf)
	_, err := w.Write([]noDropoffRecord{{PULocationID: 1}})
	require.NoError(t, err)
	require.NoError(t, w.Close())

	_, err = env.svc.ProcessTripFile(bytes.NewReader(buf.Bytes()), int64(buf.Len()), uploadParams(domain.ModeCreate))

	assert.ErrorIs(t, err, domain.ErrSchema)
	assert.Empty(t, env.zones.List(domain.ZoneFilter{}), "no zone may be created on schema failure")
	assert.Empty(t, env.routes.List(domain.RouteFilter{}), "no route may be created on schema failure")
}

func TestUpload_InvalidModeRejectedBeforeReading(t *testing.T) {
	env := newUploadEnv()

	p := uploadParams("replace")

	// A nil reader proves the mode check happens before any file access.
	_, err := env.svc.ProcessTripFile(nil, 0, p)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// A pair that survives aggregation with pickup == dropoff is recorded as a
// per-pair error and does not abort the batch.
func TestUpload_SelfPairRecordedAsError(t *testing.T) {
	env := newUploadEnv()
	r, size := tripParquet(t, [2]int64{5, 5}, [2]int64{1, 2})

	summary, err := env.svc.ProcessTripFile(r, size, uploadParams(domain.ModeCreate))

	require.NoError(t, err)
	assert.Equal(t, 2, summary.RoutesDetected)
	assert.Equal(t, 1, summary.RoutesCreated, "the good pair is still processed")
	require.Len(t, summary.Errors, 1)
	assert.Contains(t, summary.Errors[0], "invalid route pair")
}
