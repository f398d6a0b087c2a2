package garden

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_ApplyReward(t *testing.T) {
	engine := NewEngine(Config{})
	today := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	t.Run("accrues drops and crosses a growth threshold", func(t *testing.T) {
		state := NewTreeState(Position{Row: 1, Col: 2}, today)

		next, err := engine.ApplyReward(state, Reward{SunDrops: 10})
		require.NoError(t, err)
		assert.Equal(t, 10, next.SunDropsEarned)
		assert.Equal(t, 10, next.SunDropsTotal)
		assert.Equal(t, 1, next.GrowthStage)
		assert.Equal(t, StatusGrowing, next.Status)
	})

	t.Run("nine drops stay at stage zero", func(t *testing.T) {
		state := NewTreeState(Position{}, today)

		next, err := engine.ApplyReward(state, Reward{SunDrops: 9})
		require.NoError(t, err)
		assert.Equal(t, 0, next.GrowthStage)
		assert.Equal(t, StatusSeed, next.Status)
	})

	t.Run("blooms at the final threshold", func(t *testing.T) {
		state := NewTreeState(Position{}, today)

		next, err := engine.ApplyReward(state, Reward{SunDrops: 900})
		require.NoError(t, err)
		assert.Equal(t, MaxGrowthStage, next.GrowthStage)
		assert.Equal(t, StatusBloomed, next.Status)
	})

	t.Run("health restore is capped", func(t *testing.T) {
		state := NewTreeState(Position{}, today)
		state.Health = 95

		next, err := engine.ApplyReward(state, Reward{SunDrops: 5, Health: 20})
		require.NoError(t, err)
		assert.Equal(t, MaxHealth, next.Health)
	})

	t.Run("health restore lifts a dying tree", func(t *testing.T) {
		state := NewTreeState(Position{}, today)
		state.Health = 20
		state.Status = StatusDying

		next, err := engine.ApplyReward(state, Reward{SunDrops: 5, Health: 30})
		require.NoError(t, err)
		assert.Equal(t, 50, next.Health)
		assert.Equal(t, StatusSeed, next.Status)
	})

	t.Run("negative deltas are rejected before mutation", func(t *testing.T) {
		state := NewTreeState(Position{}, today)
		state.SunDropsEarned = 42
		state.SunDropsTotal = 42

		next, err := engine.ApplyReward(state, Reward{SunDrops: -1})
		assert.ErrorIs(t, err, ErrNegativeDelta)
		assert.Equal(t, state, next)

		next, err = engine.ApplyReward(state, Reward{Health: -1})
		assert.ErrorIs(t, err, ErrNegativeDelta)
		assert.Equal(t, state, next)
	})

	t.Run("dead trees accrue counters but stay frozen", func(t *testing.T) {
		diedAt := today
		state := TreeState{
			Status: StatusDead, IsDead: true, Health: 0,
			SunDropsEarned: 100, SunDropsTotal: 100, GrowthStage: 5,
			LastRefresh: today, DiedAt: &diedAt,
		}

		next, err := engine.ApplyReward(state, Reward{SunDrops: 90, Health: 50})
		require.NoError(t, err)
		assert.Equal(t, 190, next.SunDropsEarned)
		assert.Equal(t, 190, next.SunDropsTotal)
		assert.Equal(t, 0, next.Health)
		assert.Equal(t, 5, next.GrowthStage)
		assert.Equal(t, StatusDead, next.Status)
		assert.True(t, next.IsDead)
	})

	t.Run("corrupted counters are rejected", func(t *testing.T) {
		state := NewTreeState(Position{}, today)
		state.SunDropsEarned = -5

		_, err := engine.ApplyReward(state, Reward{SunDrops: 1})
		assert.ErrorIs(t, err, ErrInvalidState)
	})
}

func TestEngine_ApplyDailyDecay(t *testing.T) {
	engine := NewEngine(Config{})
	planted := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	t.Run("one day of decay", func(t *testing.T) {
		state := NewTreeState(Position{}, planted)

		next, err := engine.ApplyDailyDecay(state, planted.AddDate(0, 0, 1))
		require.NoError(t, err)
		assert.Equal(t, 90, next.Health)
		assert.Equal(t, planted.AddDate(0, 0, 1), next.LastRefresh)
	})

	t.Run("same day is a no-op", func(t *testing.T) {
		state := NewTreeState(Position{}, planted)

		next, err := engine.ApplyDailyDecay(state, planted)
		require.NoError(t, err)
		assert.Equal(t, state, next)
	})

	t.Run("applying twice for the same day equals applying once", func(t *testing.T) {
		state := NewTreeState(Position{}, planted)
		day := planted.AddDate(0, 0, 2)

		once, err := engine.ApplyDailyDecay(state, day)
		require.NoError(t, err)
		twice, err := engine.ApplyDailyDecay(once, day)
		require.NoError(t, err)
		assert.Equal(t, once, twice)
	})

	t.Run("catching up in one call equals daily calls", func(t *testing.T) {
		state := NewTreeState(Position{}, planted)
		state.Health = 50

		lump, err := engine.ApplyDailyDecay(state, planted.AddDate(0, 0, 3))
		require.NoError(t, err)

		daily := state
		for day := 1; day <= 3; day++ {
			daily, err = engine.ApplyDailyDecay(daily, planted.AddDate(0, 0, day))
			require.NoError(t, err)
		}
		assert.Equal(t, lump, daily)
		assert.Equal(t, 20, lump.Health)
		assert.Equal(t, StatusDying, lump.Status)
	})

	t.Run("a dying tree decays to death", func(t *testing.T) {
		state := NewTreeState(Position{}, planted)
		state.Health = 20
		state.Status = StatusDying

		next, err := engine.ApplyDailyDecay(state, planted.AddDate(0, 0, 3))
		require.NoError(t, err)
		assert.Equal(t, 0, next.Health)
		assert.Equal(t, StatusDead, next.Status)
		assert.True(t, next.IsDead)
		require.NotNil(t, next.DiedAt)
		assert.Equal(t, planted.AddDate(0, 0, 3), *next.DiedAt)
	})

	t.Run("dead trees advance the refresh date without decay", func(t *testing.T) {
		diedAt := planted
		state := TreeState{
			Status: StatusDead, IsDead: true, Health: 0,
			SunDropsEarned: 50, SunDropsTotal: 50, GrowthStage: 3,
			LastRefresh: planted, DiedAt: &diedAt,
		}

		next, err := engine.ApplyDailyDecay(state, planted.AddDate(0, 0, 4))
		require.NoError(t, err)
		assert.Equal(t, planted.AddDate(0, 0, 4), next.LastRefresh)
		assert.Equal(t, 0, next.Health)
		assert.Equal(t, StatusDead, next.Status)
	})

	t.Run("time running backwards is rejected", func(t *testing.T) {
		state := NewTreeState(Position{}, planted)

		next, err := engine.ApplyDailyDecay(state, planted.AddDate(0, 0, -1))
		assert.ErrorIs(t, err, ErrTimeReversed)
		assert.Equal(t, state, next)
	})

	t.Run("missing refresh date starts counting today", func(t *testing.T) {
		state := TreeState{Status: StatusGrowing, Health: 70, SunDropsEarned: 30, SunDropsTotal: 30, GrowthStage: 2}

		next, err := engine.ApplyDailyDecay(state, planted)
		require.NoError(t, err)
		assert.Equal(t, 70, next.Health)
		assert.Equal(t, planted, next.LastRefresh)
	})

	t.Run("clock time within the day does not matter", func(t *testing.T) {
		state := NewTreeState(Position{}, planted)

		morning, err := engine.ApplyDailyDecay(state, planted.AddDate(0, 0, 1).Add(6*time.Hour))
		require.NoError(t, err)
		evening, err := engine.ApplyDailyDecay(state, planted.AddDate(0, 0, 1).Add(23*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, morning, evening)
	})
}

func TestEngine_Revive(t *testing.T) {
	engine := NewEngine(Config{})
	diedAt := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)

	deadTree := func() TreeState {
		d := diedAt
		return TreeState{
			Status: StatusDead, IsDead: true, Health: 0,
			SunDropsEarned: 190, SunDropsTotal: 210, GrowthStage: 5,
			LastRefresh: diedAt, DiedAt: &d,
		}
	}

	t.Run("revives within the grace window", func(t *testing.T) {
		next, err := engine.Revive(deadTree(), 60, diedAt.AddDate(0, 0, 3))
		require.NoError(t, err)
		assert.Equal(t, 60, next.Health)
		assert.False(t, next.IsDead)
		assert.Nil(t, next.DiedAt)
		assert.Equal(t, diedAt.AddDate(0, 0, 3), next.LastRefresh)
		// Drops accrued while dead count once the tree is back.
		assert.Equal(t, 7, next.GrowthStage)
		assert.Equal(t, StatusGrowing, next.Status)
	})

	t.Run("the last grace day still works", func(t *testing.T) {
		_, err := engine.Revive(deadTree(), 60, diedAt.AddDate(0, 0, 7))
		assert.NoError(t, err)
	})

	t.Run("past the grace window", func(t *testing.T) {
		state := deadTree()
		next, err := engine.Revive(state, 60, diedAt.AddDate(0, 0, 8))
		assert.ErrorIs(t, err, ErrGraceExpired)
		assert.Equal(t, state, next)
	})

	t.Run("living trees cannot be revived", func(t *testing.T) {
		state := NewTreeState(Position{}, diedAt)
		_, err := engine.Revive(state, 60, diedAt)
		assert.ErrorIs(t, err, ErrNotDead)
	})

	t.Run("revival needs positive health", func(t *testing.T) {
		_, err := engine.Revive(deadTree(), 0, diedAt.AddDate(0, 0, 1))
		assert.ErrorIs(t, err, ErrNegativeDelta)
	})
}

func TestEngine_Replant(t *testing.T) {
	engine := NewEngine(Config{})
	today := time.Date(2026, 4, 20, 0, 0, 0, 0, time.UTC)
	diedAt := today.AddDate(0, 0, -30)

	state := TreeState{
		Status: StatusDead, IsDead: true, Health: 0,
		SunDropsEarned: 400, SunDropsTotal: 400, GrowthStage: 10,
		LastRefresh: diedAt, DiedAt: &diedAt,
		Position: Position{Row: 2, Col: 3},
	}

	next := engine.Replant(state, today)
	assert.Equal(t, StatusSeed, next.Status)
	assert.Equal(t, MaxHealth, next.Health)
	assert.Equal(t, 0, next.SunDropsEarned)
	assert.Equal(t, 0, next.GrowthStage)
	assert.Equal(t, Position{Row: 2, Col: 3}, next.Position)
	assert.Equal(t, today, next.LastRefresh)
	assert.Nil(t, next.DiedAt)
}

func TestEngine_Lifecycle(t *testing.T) {
	engine := NewEngine(Config{})
	day := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	// A tended tree: one lesson a day keeps decay at bay and grows the tree
	// through every stage.
	state := NewTreeState(Position{}, day)
	var err error
	for i := 1; i <= 90; i++ {
		day = day.AddDate(0, 0, 1)
		state, err = engine.ApplyDailyDecay(state, day)
		require.NoError(t, err)
		state, err = engine.ApplyReward(state, Reward{SunDrops: 10, Health: 15})
		require.NoError(t, err)
	}

	assert.Equal(t, 900, state.SunDropsEarned)
	assert.Equal(t, MaxGrowthStage, state.GrowthStage)
	assert.Equal(t, StatusBloomed, state.Status)
	assert.Equal(t, MaxHealth, state.Health)
}
