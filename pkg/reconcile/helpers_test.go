package reconcile_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/agentstation/factmap/pkg/entity"
	"github.com/agentstation/factmap/pkg/fields"
	"github.com/agentstation/factmap/pkg/logging"
	"github.com/agentstation/factmap/pkg/reconcile"
	"github.com/agentstation/factmap/pkg/reliability"
	"github.com/agentstation/factmap/pkg/types"
)

// fullRecord fills every known field with non-empty content.
func fullRecord() fields.Record {
	start := time.Date(2025, 8, 15, 21, 0, 0, 0, time.UTC)
	end := start.Add(3 * time.Hour)
	return fields.Record{
		Title:        fields.Text{"es": "Fiesta del Peñón", "en": "Peñón Festival"},
		Description:  fields.Text{"es": "Música y fuegos artificiales"},
		StartDate:    &start,
		EndDate:      &end,
		Location:     fields.Location{Name: fields.Ptr("Playa de la Fossa"), Address: fields.Ptr("Av. Europa 1"), City: fields.Ptr("Calpe")},
		Category:     fields.Ptr("festival"),
		URL:          fields.Ptr("https://calpe.es/fiesta"),
		Organizer:    fields.Ptr("Ajuntament de Calp"),
		Coordinates:  &fields.Coordinates{Lat: 38.64, Lng: 0.07},
		OpeningHours: map[string]any{"fri": "21:00-00:00"},
		Images:       []string{"fiesta.jpg"},
		Price:        fields.Ptr(0.0),
		Capacity:     fields.Ptr(5000),
	}
}

func snapshot(id string, verified bool, r fields.Record) entity.Snapshot {
	return entity.Snapshot{
		SourceID:    types.SourceID(id),
		Record:      r,
		Verified:    verified,
		LastChecked: time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC),
	}
}

func newEntity(id string, snaps ...entity.Snapshot) *entity.Entity {
	return &entity.Entity{ID: id, Kind: types.EntityKindEvent, Snapshots: snaps}
}

func testRegistry(t *testing.T, weights map[types.SourceID]int) *reliability.Registry {
	t.Helper()
	r, err := reliability.New(weights, reliability.DefaultWeight)
	require.NoError(t, err)
	return r
}

func newEngine(t *testing.T, opts ...reconcile.Option) *reconcile.Engine {
	t.Helper()
	opts = append([]reconcile.Option{reconcile.WithLogger(logging.NewNopLogger())}, opts...)
	e, err := reconcile.New(opts...)
	require.NoError(t, err)
	return e
}
