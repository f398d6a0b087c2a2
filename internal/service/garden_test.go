package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/lexigarden/lexigarden/internal/garden"
	mock_store "github.com/lexigarden/lexigarden/internal/mocks/store"
	"github.com/lexigarden/lexigarden/internal/store"
)

func TestGardenService_CompleteLesson(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		setupMock  func(t *testing.T, trees *mock_store.MockUserTreeStore)
		reward     garden.Reward
		wantErr    bool
		wantStatus garden.TreeStatus
		wantStage  int
		wantHealth int
		wantEarned int
	}{
		{
			name: "plants a seed in the next free slot",
			setupMock: func(t *testing.T, trees *mock_store.MockUserTreeStore) {
				trees.EXPECT().
					Find(gomock.Any(), "user-1", "animals").
					Return(nil, nil)
				trees.EXPECT().
					FindByUser(gomock.Any(), "user-1").
					Return(make([]store.UserTree, 5), nil)
				trees.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, record *store.UserTree) error {
						assert.NotEmpty(t, record.ID)
						assert.Equal(t, "user-1", record.UserID)
						assert.Equal(t, "animals", record.SkillPathID)
						assert.Equal(t, "growing", record.Status)
						assert.Equal(t, 1, record.GrowthStage)
						assert.Equal(t, 12, record.SunDropsEarned)
						assert.Equal(t, 12, record.SunDropsTotal)
						assert.Equal(t, garden.MaxHealth, record.Health)
						assert.Equal(t, 1, record.PositionRow)
						assert.Equal(t, 1, record.PositionCol)
						assert.Equal(t, day, record.LastRefreshDate)
						assert.Equal(t, int64(1), record.Version)
						return nil
					})
			},
			reward:     garden.Reward{SunDrops: 12},
			wantStatus: garden.StatusGrowing,
			wantStage:  1,
			wantHealth: garden.MaxHealth,
			wantEarned: 12,
		},
		{
			name: "waters an existing tree",
			setupMock: func(t *testing.T, trees *mock_store.MockUserTreeStore) {
				trees.EXPECT().
					Find(gomock.Any(), "user-1", "animals").
					Return(&store.UserTree{
						ID:              "ut-1",
						UserID:          "user-1",
						SkillPathID:     "animals",
						Status:          "growing",
						Health:          60,
						SunDropsEarned:  130,
						SunDropsTotal:   150,
						GrowthStage:     5,
						LastRefreshDate: day.AddDate(0, 0, -1),
						PositionRow:     0,
						PositionCol:     2,
						Version:         2,
					}, nil)
				trees.EXPECT().
					Update(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, record *store.UserTree) error {
						assert.Equal(t, 6, record.GrowthStage)
						assert.Equal(t, 70, record.Health)
						assert.Equal(t, 145, record.SunDropsEarned)
						assert.Equal(t, 165, record.SunDropsTotal)
						return nil
					})
			},
			reward:     garden.Reward{SunDrops: 15, Health: 10},
			wantStatus: garden.StatusGrowing,
			wantStage:  6,
			wantHealth: 70,
			wantEarned: 145,
		},
		{
			name: "last threshold blooms the tree",
			setupMock: func(t *testing.T, trees *mock_store.MockUserTreeStore) {
				trees.EXPECT().
					Find(gomock.Any(), "user-1", "animals").
					Return(&store.UserTree{
						ID:              "ut-1",
						UserID:          "user-1",
						SkillPathID:     "animals",
						Status:          "growing",
						Health:          90,
						SunDropsEarned:  890,
						SunDropsTotal:   890,
						GrowthStage:     13,
						LastRefreshDate: day,
						Version:         9,
					}, nil)
				trees.EXPECT().
					Update(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			reward:     garden.Reward{SunDrops: 10},
			wantStatus: garden.StatusBloomed,
			wantStage:  garden.MaxGrowthStage,
			wantHealth: 90,
			wantEarned: 900,
		},
		{
			name: "store error",
			setupMock: func(t *testing.T, trees *mock_store.MockUserTreeStore) {
				trees.EXPECT().
					Find(gomock.Any(), "user-1", "animals").
					Return(nil, fmt.Errorf("connection refused"))
			},
			reward:  garden.Reward{SunDrops: 5},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			trees := mock_store.NewMockUserTreeStore(ctrl)
			tt.setupMock(t, trees)

			service := NewGardenService(trees, garden.NewEngine(garden.Config{}), func() time.Time { return now })
			got, err := service.CompleteLesson(context.Background(), "user-1", "animals", tt.reward)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantStage, got.GrowthStage)
			assert.Equal(t, tt.wantHealth, got.Health)
			assert.Equal(t, tt.wantEarned, got.SunDropsEarned)
		})
	}
}

func TestGardenService_SendGift(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	deadTree := func(diedAt time.Time) *store.UserTree {
		return &store.UserTree{
			ID:              "ut-1",
			UserID:          "user-1",
			SkillPathID:     "animals",
			Status:          "dead",
			IsDead:          true,
			Health:          0,
			SunDropsEarned:  185,
			SunDropsTotal:   185,
			GrowthStage:     6,
			LastRefreshDate: diedAt,
			DiedAt:          &diedAt,
			Version:         4,
		}
	}

	tests := []struct {
		name      string
		setupMock func(t *testing.T, trees *mock_store.MockUserTreeStore)
		gift      garden.Reward
		wantErr   error
		check     func(t *testing.T, got garden.TreeState)
	}{
		{
			name: "heals a living tree",
			setupMock: func(t *testing.T, trees *mock_store.MockUserTreeStore) {
				trees.EXPECT().
					Find(gomock.Any(), "user-1", "animals").
					Return(&store.UserTree{
						ID:              "ut-1",
						UserID:          "user-1",
						SkillPathID:     "animals",
						Status:          "growing",
						Health:          40,
						SunDropsEarned:  100,
						SunDropsTotal:   100,
						GrowthStage:     5,
						LastRefreshDate: day,
						Version:         3,
					}, nil)
				trees.EXPECT().
					Update(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			gift: garden.Reward{SunDrops: 5, Health: 20},
			check: func(t *testing.T, got garden.TreeState) {
				assert.Equal(t, garden.StatusGrowing, got.Status)
				assert.Equal(t, 60, got.Health)
				assert.Equal(t, 105, got.SunDropsEarned)
			},
		},
		{
			name: "health gift revives a dead tree inside the grace window",
			setupMock: func(t *testing.T, trees *mock_store.MockUserTreeStore) {
				trees.EXPECT().
					Find(gomock.Any(), "user-1", "animals").
					Return(deadTree(day.AddDate(0, 0, -5)), nil)
				trees.EXPECT().
					Update(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, record *store.UserTree) error {
						assert.False(t, record.IsDead)
						assert.Nil(t, record.DiedAt)
						assert.Equal(t, day, record.LastRefreshDate)
						return nil
					})
			},
			gift: garden.Reward{SunDrops: 10, Health: 30},
			check: func(t *testing.T, got garden.TreeState) {
				assert.False(t, got.IsDead)
				assert.Equal(t, garden.StatusGrowing, got.Status)
				assert.Equal(t, 30, got.Health)
				assert.Equal(t, 195, got.SunDropsEarned)
				// The grown stage unfreezes and the gifted drops push it over
				// the next threshold.
				assert.Equal(t, 7, got.GrowthStage)
			},
		},
		{
			name: "gift cannot revive past the grace window",
			setupMock: func(t *testing.T, trees *mock_store.MockUserTreeStore) {
				trees.EXPECT().
					Find(gomock.Any(), "user-1", "animals").
					Return(deadTree(day.AddDate(0, 0, -12)), nil)
			},
			gift:    garden.Reward{SunDrops: 10, Health: 30},
			wantErr: garden.ErrGraceExpired,
		},
		{
			name: "sun drops accrue on a dead tree without reviving it",
			setupMock: func(t *testing.T, trees *mock_store.MockUserTreeStore) {
				trees.EXPECT().
					Find(gomock.Any(), "user-1", "animals").
					Return(deadTree(day.AddDate(0, 0, -5)), nil)
				trees.EXPECT().
					Update(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			gift: garden.Reward{SunDrops: 5},
			check: func(t *testing.T, got garden.TreeState) {
				assert.True(t, got.IsDead)
				assert.Equal(t, garden.StatusDead, got.Status)
				assert.Equal(t, 0, got.Health)
				assert.Equal(t, 190, got.SunDropsEarned)
				// Health and stage stay frozen until a revival.
				assert.Equal(t, 6, got.GrowthStage)
			},
		},
		{
			name: "unknown tree",
			setupMock: func(t *testing.T, trees *mock_store.MockUserTreeStore) {
				trees.EXPECT().
					Find(gomock.Any(), "user-1", "animals").
					Return(nil, nil)
			},
			gift:    garden.Reward{SunDrops: 5},
			wantErr: ErrTreeNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			trees := mock_store.NewMockUserTreeStore(ctrl)
			tt.setupMock(t, trees)

			service := NewGardenService(trees, garden.NewEngine(garden.Config{}), func() time.Time { return now })
			got, err := service.SendGift(context.Background(), "user-1", "animals", tt.gift)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			tt.check(t, got)
		})
	}
}

func TestGardenService_Replant(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("resets the tree to a fresh seed in its slot", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		trees := mock_store.NewMockUserTreeStore(ctrl)

		died := day.AddDate(0, 0, -40)
		trees.EXPECT().
			Find(gomock.Any(), "user-1", "animals").
			Return(&store.UserTree{
				ID:              "ut-1",
				UserID:          "user-1",
				SkillPathID:     "animals",
				Status:          "dead",
				IsDead:          true,
				Health:          0,
				SunDropsEarned:  320,
				SunDropsTotal:   320,
				GrowthStage:     9,
				LastRefreshDate: died,
				DiedAt:          &died,
				PositionRow:     0,
				PositionCol:     3,
				Version:         6,
			}, nil)
		trees.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, record *store.UserTree) error {
				assert.Equal(t, "seed", record.Status)
				assert.False(t, record.IsDead)
				assert.Nil(t, record.DiedAt)
				assert.Equal(t, garden.MaxHealth, record.Health)
				assert.Equal(t, 0, record.SunDropsEarned)
				assert.Equal(t, 0, record.GrowthStage)
				assert.Equal(t, day, record.LastRefreshDate)
				assert.Equal(t, 0, record.PositionRow)
				assert.Equal(t, 3, record.PositionCol)
				return nil
			})

		service := NewGardenService(trees, garden.NewEngine(garden.Config{}), func() time.Time { return now })
		got, err := service.Replant(context.Background(), "user-1", "animals")
		require.NoError(t, err)
		assert.Equal(t, garden.StatusSeed, got.Status)
		assert.Equal(t, garden.Position{Row: 0, Col: 3}, got.Position)
	})

	t.Run("unknown tree", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		trees := mock_store.NewMockUserTreeStore(ctrl)

		trees.EXPECT().
			Find(gomock.Any(), "user-1", "animals").
			Return(nil, nil)

		service := NewGardenService(trees, garden.NewEngine(garden.Config{}), func() time.Time { return now })
		_, err := service.Replant(context.Background(), "user-1", "animals")
		assert.ErrorIs(t, err, ErrTreeNotFound)
	})
}

func TestGardenService_RunDailyDecay(t *testing.T) {
	now := time.Date(2025, 3, 10, 2, 0, 0, 0, time.UTC)
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	treeA := store.UserTree{
		ID:              "ut-1",
		UserID:          "user-1",
		SkillPathID:     "animals",
		Status:          "growing",
		Health:          80,
		SunDropsEarned:  80,
		SunDropsTotal:   80,
		GrowthStage:     4,
		LastRefreshDate: day.AddDate(0, 0, -3),
		Version:         2,
	}
	treeB := store.UserTree{
		ID:              "ut-2",
		UserID:          "user-2",
		SkillPathID:     "colors",
		Status:          "dying",
		Health:          10,
		SunDropsEarned:  30,
		SunDropsTotal:   30,
		GrowthStage:     2,
		LastRefreshDate: day.AddDate(0, 0, -1),
		Version:         5,
	}
	findCopy := func(tree store.UserTree) func(context.Context, string, string) (*store.UserTree, error) {
		return func(context.Context, string, string) (*store.UserTree, error) {
			copied := tree
			return &copied, nil
		}
	}

	t.Run("refreshes stale trees and records deaths", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		trees := mock_store.NewMockUserTreeStore(ctrl)

		trees.EXPECT().
			FindStale(gomock.Any(), day).
			Return([]store.UserTree{treeA, treeB}, nil)
		trees.EXPECT().
			Find(gomock.Any(), "user-1", "animals").
			DoAndReturn(findCopy(treeA))
		trees.EXPECT().
			Find(gomock.Any(), "user-2", "colors").
			DoAndReturn(findCopy(treeB))

		updated := map[string]store.UserTree{}
		trees.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, record *store.UserTree) error {
				updated[record.ID] = *record
				return nil
			}).
			Times(2)

		service := NewGardenService(trees, garden.NewEngine(garden.Config{}), func() time.Time { return now })
		got, err := service.RunDailyDecay(context.Background(), now)
		require.NoError(t, err)
		assert.Equal(t, DecayResult{Refreshed: 2, Died: 1}, got)

		// Three missed days cost 30 health.
		assert.Equal(t, 50, updated["ut-1"].Health)
		assert.Equal(t, "growing", updated["ut-1"].Status)
		assert.Equal(t, day, updated["ut-1"].LastRefreshDate)

		assert.Equal(t, "dead", updated["ut-2"].Status)
		assert.True(t, updated["ut-2"].IsDead)
		assert.Equal(t, 0, updated["ut-2"].Health)
		require.NotNil(t, updated["ut-2"].DiedAt)
		assert.Equal(t, day, *updated["ut-2"].DiedAt)
	})

	t.Run("skips trees that vanished since the listing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		trees := mock_store.NewMockUserTreeStore(ctrl)

		trees.EXPECT().
			FindStale(gomock.Any(), day).
			Return([]store.UserTree{treeA}, nil)
		trees.EXPECT().
			Find(gomock.Any(), "user-1", "animals").
			Return(nil, nil)

		service := NewGardenService(trees, garden.NewEngine(garden.Config{}), func() time.Time { return now })
		got, err := service.RunDailyDecay(context.Background(), now)
		require.NoError(t, err)
		assert.Equal(t, DecayResult{}, got)
	})

	t.Run("keeps going when one tree fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		trees := mock_store.NewMockUserTreeStore(ctrl)

		trees.EXPECT().
			FindStale(gomock.Any(), day).
			Return([]store.UserTree{treeA, treeB}, nil)
		trees.EXPECT().
			Find(gomock.Any(), "user-1", "animals").
			Return(nil, fmt.Errorf("connection refused"))
		trees.EXPECT().
			Find(gomock.Any(), "user-2", "colors").
			DoAndReturn(findCopy(treeB))
		trees.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			Return(nil)

		service := NewGardenService(trees, garden.NewEngine(garden.Config{}), func() time.Time { return now })
		got, err := service.RunDailyDecay(context.Background(), now)
		assert.ErrorContains(t, err, "refresh tree ut-1")
		assert.Equal(t, DecayResult{Refreshed: 1, Died: 1}, got)
	})

	t.Run("retries version conflicts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		trees := mock_store.NewMockUserTreeStore(ctrl)

		trees.EXPECT().
			FindStale(gomock.Any(), day).
			Return([]store.UserTree{treeA}, nil)
		trees.EXPECT().
			Find(gomock.Any(), "user-1", "animals").
			Times(2).
			DoAndReturn(findCopy(treeA))
		trees.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			Return(fmt.Errorf("user_tree ut-1 version 2: %w", store.ErrVersionConflict))
		trees.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, record *store.UserTree) error {
				assert.Equal(t, 50, record.Health)
				return nil
			})

		service := NewGardenService(trees, garden.NewEngine(garden.Config{}), func() time.Time { return now })
		got, err := service.RunDailyDecay(context.Background(), now)
		require.NoError(t, err)
		assert.Equal(t, DecayResult{Refreshed: 1}, got)
	})
}
