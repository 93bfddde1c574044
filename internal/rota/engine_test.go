package rota_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hallmoor/binduty/internal/models"
	"github.com/hallmoor/binduty/internal/rota"
	"github.com/hallmoor/binduty/internal/store"
	"github.com/hallmoor/binduty/internal/store/storetest"
)

func seedRoster(t *testing.T, s store.Store, names ...string) []models.Resident {
	t.Helper()
	roster := store.NewCollection[models.Resident](s, store.KeyFlats)
	flats := make([]models.Resident, 0, len(names))
	for i, name := range names {
		flats = append(flats, models.Resident{
			ID:         string(rune('a' + i)),
			Name:       name,
			FlatNumber: name + "-flat",
		})
	}
	require.NoError(t, roster.Replace(context.Background(), flats))
	return flats
}

func loadRoster(t *testing.T, s store.Store) []models.Resident {
	t.Helper()
	roster := store.NewCollection[models.Resident](s, store.KeyFlats)
	flats, err := roster.Load(context.Background())
	require.NoError(t, err)
	return flats
}

func names(flats []models.Resident) []string {
	out := make([]string, 0, len(flats))
	for _, r := range flats {
		out = append(out, r.Name)
	}
	return out
}

func TestAdvance_MovesHeadToTail(t *testing.T) {
	s := storetest.New()
	seedRoster(t, s, "A", "B", "C")
	engine := rota.NewEngine(s)

	moved, err := engine.Advance(context.Background())
	require.NoError(t, err)
	require.Equal(t, "A", moved)
	require.Equal(t, []string{"B", "C", "A"}, names(loadRoster(t, s)))
}

func TestAdvance_PreservesRelativeOrder(t *testing.T) {
	s := storetest.New()
	seedRoster(t, s, "A", "B", "C", "D", "E")
	engine := rota.NewEngine(s)

	_, err := engine.Advance(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"B", "C", "D", "E", "A"}, names(loadRoster(t, s)))
}

func TestAdvance_TooFewResidents(t *testing.T) {
	for _, roster := range [][]string{{}, {"A"}} {
		s := storetest.New()
		seedRoster(t, s, roster...)
		engine := rota.NewEngine(s)

		_, err := engine.Advance(context.Background())
		require.ErrorIs(t, err, rota.ErrNotEnoughResidents)
		require.Equal(t, roster, append([]string{}, names(loadRoster(t, s))...))
	}
}

func TestAdvance_NTimesPerformsNRotations(t *testing.T) {
	s := storetest.New()
	seedRoster(t, s, "A", "B", "C")
	engine := rota.NewEngine(s)

	for i := 0; i < 3; i++ {
		_, err := engine.Advance(context.Background())
		require.NoError(t, err)
	}
	require.Equal(t, []string{"A", "B", "C"}, names(loadRoster(t, s)))
}

func TestSkip_ReportsSkippedName(t *testing.T) {
	s := storetest.New()
	seedRoster(t, s, "A", "B", "C")
	engine := rota.NewEngine(s)

	skipped, err := engine.Skip(context.Background())
	require.NoError(t, err)
	require.Equal(t, "A", skipped)
	require.Equal(t, []string{"B", "C", "A"}, names(loadRoster(t, s)))
}

func TestSkip_TooFewResidents(t *testing.T) {
	s := storetest.New()
	engine := rota.NewEngine(s)

	_, err := engine.Skip(context.Background())
	require.ErrorIs(t, err, rota.ErrNoResidents)

	seedRoster(t, s, "A")
	_, err = engine.Skip(context.Background())
	require.ErrorIs(t, err, rota.ErrNotEnoughResidents)
	require.Equal(t, []string{"A"}, names(loadRoster(t, s)))
}

func TestSetCurrent_MovesResidentToFront(t *testing.T) {
	s := storetest.New()
	flats := seedRoster(t, s, "A", "B", "C")
	engine := rota.NewEngine(s)

	name, err := engine.SetCurrent(context.Background(), flats[1].ID)
	require.NoError(t, err)
	require.Equal(t, "B", name)
	require.Equal(t, []string{"B", "A", "C"}, names(loadRoster(t, s)))
}

func TestSetCurrent_PreservesLengthAndMembers(t *testing.T) {
	s := storetest.New()
	flats := seedRoster(t, s, "A", "B", "C", "D")
	engine := rota.NewEngine(s)

	_, err := engine.SetCurrent(context.Background(), flats[3].ID)
	require.NoError(t, err)

	after := loadRoster(t, s)
	require.Len(t, after, len(flats))
	require.Equal(t, []string{"D", "A", "B", "C"}, names(after))
}

func TestSetCurrent_HeadIsNoopReorder(t *testing.T) {
	s := storetest.New()
	flats := seedRoster(t, s, "A", "B", "C")
	engine := rota.NewEngine(s)

	name, err := engine.SetCurrent(context.Background(), flats[0].ID)
	require.NoError(t, err)
	require.Equal(t, "A", name)
	require.Equal(t, []string{"A", "B", "C"}, names(loadRoster(t, s)))
}

func TestSetCurrent_UnknownID(t *testing.T) {
	s := storetest.New()
	seedRoster(t, s, "A", "B", "C")
	engine := rota.NewEngine(s)

	_, err := engine.SetCurrent(context.Background(), "missing")
	require.ErrorIs(t, err, rota.ErrResidentNotFound)
	require.Equal(t, []string{"A", "B", "C"}, names(loadRoster(t, s)))
}

func TestDutyView_Placeholders(t *testing.T) {
	s := storetest.New()
	engine := rota.NewEngine(s)

	current, next, err := engine.DutyView(context.Background())
	require.NoError(t, err)
	require.Equal(t, rota.Placeholder, current)
	require.Equal(t, rota.Placeholder, next)

	seedRoster(t, s, "A")
	current, next, err = engine.DutyView(context.Background())
	require.NoError(t, err)
	require.Equal(t, "A", current)
	require.Equal(t, rota.Placeholder, next)

	seedRoster(t, s, "A", "B")
	current, next, err = engine.DutyView(context.Background())
	require.NoError(t, err)
	require.Equal(t, "A", current)
	require.Equal(t, "B", next)
}
