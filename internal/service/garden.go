package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/avast/retry-go"

	"github.com/lexigarden/lexigarden/internal/garden"
	"github.com/lexigarden/lexigarden/internal/store"
)

// gardenColumns is the width of the garden grid new trees are planted into.
const gardenColumns = 4

// GardenService grows and withers the per-skill-path trees in the store.
type GardenService struct {
	trees            store.UserTreeStore
	engine           *garden.Engine
	now              func() time.Time
	maxRetryAttempts uint
}

func NewGardenService(trees store.UserTreeStore, engine *garden.Engine, now func() time.Time) *GardenService {
	return &GardenService{
		trees:            trees,
		engine:           engine,
		now:              nowOrDefault(now),
		maxRetryAttempts: DefaultRetryAttempts,
	}
}

// CompleteLesson applies a lesson's reward to the tree of the skill path,
// planting a seed in the next free garden slot on first contact.
func (s *GardenService) CompleteLesson(ctx context.Context, userID, skillPathID string, reward garden.Reward) (garden.TreeState, error) {
	today := s.now()

	var result garden.TreeState
	if err := retry.Do(
		func() error {
			record, err := s.trees.Find(ctx, userID, skillPathID)
			if err != nil {
				return fmt.Errorf("trees.Find(%s, %s) > %w", userID, skillPathID, err)
			}
			created := false
			if record == nil {
				position, err := s.nextFreePosition(ctx, userID)
				if err != nil {
					return err
				}
				record = store.NewUserTree(userID, skillPathID, garden.NewTreeState(position, today))
				created = true
			}

			next, err := s.engine.ApplyReward(record.State(), reward)
			if err != nil {
				return fmt.Errorf("engine.ApplyReward > %w", err)
			}
			record.SetState(next)

			if created {
				err = s.trees.Create(ctx, record)
			} else {
				err = s.trees.Update(ctx, record)
			}
			if err != nil {
				return fmt.Errorf("save user tree > %w", err)
			}

			result = next
			return nil
		},
		conflictRetryOptions(ctx, s.maxRetryAttempts)...,
	); err != nil {
		return garden.TreeState{}, err
	}
	return result, nil
}

// SendGift waters a tree with a gift from a family member. A gift carrying
// health revives a dead tree when its grace window is still open; past the
// window the gift fails with garden.ErrGraceExpired and only a replant helps.
func (s *GardenService) SendGift(ctx context.Context, userID, skillPathID string, gift garden.Reward) (garden.TreeState, error) {
	today := s.now()

	var result garden.TreeState
	if err := retry.Do(
		func() error {
			record, err := s.trees.Find(ctx, userID, skillPathID)
			if err != nil {
				return fmt.Errorf("trees.Find(%s, %s) > %w", userID, skillPathID, err)
			}
			if record == nil {
				return fmt.Errorf("user %s skill path %s: %w", userID, skillPathID, ErrTreeNotFound)
			}

			state := record.State()
			remaining := gift
			if state.IsDead && gift.Health > 0 {
				state, err = s.engine.Revive(state, gift.Health, today)
				if err != nil {
					return fmt.Errorf("engine.Revive > %w", err)
				}
				remaining = garden.Reward{SunDrops: gift.SunDrops}
			}

			next, err := s.engine.ApplyReward(state, remaining)
			if err != nil {
				return fmt.Errorf("engine.ApplyReward > %w", err)
			}
			record.SetState(next)

			if err := s.trees.Update(ctx, record); err != nil {
				return fmt.Errorf("save user tree > %w", err)
			}

			result = next
			return nil
		},
		conflictRetryOptions(ctx, s.maxRetryAttempts)...,
	); err != nil {
		return garden.TreeState{}, err
	}
	return result, nil
}

// Replant resets the tree of a skill path to a fresh seed in its slot.
func (s *GardenService) Replant(ctx context.Context, userID, skillPathID string) (garden.TreeState, error) {
	today := s.now()

	var result garden.TreeState
	if err := retry.Do(
		func() error {
			record, err := s.trees.Find(ctx, userID, skillPathID)
			if err != nil {
				return fmt.Errorf("trees.Find(%s, %s) > %w", userID, skillPathID, err)
			}
			if record == nil {
				return fmt.Errorf("user %s skill path %s: %w", userID, skillPathID, ErrTreeNotFound)
			}

			next := s.engine.Replant(record.State(), today)
			record.SetState(next)

			if err := s.trees.Update(ctx, record); err != nil {
				return fmt.Errorf("save user tree > %w", err)
			}

			result = next
			return nil
		},
		conflictRetryOptions(ctx, s.maxRetryAttempts)...,
	); err != nil {
		return garden.TreeState{}, err
	}
	return result, nil
}

// Garden returns all trees of a user in garden grid order.
func (s *GardenService) Garden(ctx context.Context, userID string) ([]store.UserTree, error) {
	records, err := s.trees.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("trees.FindByUser(%s) > %w", userID, err)
	}
	return records, nil
}

// DecayResult summarizes one daily decay run.
type DecayResult struct {
	Refreshed int
	Died      int
}

// RunDailyDecay applies the daily health decay to every tree whose last
// refresh is older than asOf. Running it twice for the same day is a no-op
// for trees already refreshed. Trees that cannot be refreshed are skipped
// and their errors joined into the returned error.
func (s *GardenService) RunDailyDecay(ctx context.Context, asOf time.Time) (DecayResult, error) {
	day := asOf.UTC().Truncate(24 * time.Hour)

	stale, err := s.trees.FindStale(ctx, day)
	if err != nil {
		return DecayResult{}, fmt.Errorf("trees.FindStale > %w", err)
	}

	var result DecayResult
	var errs []error
	for _, record := range stale {
		var died, gone bool
		if err := retry.Do(
			func() error {
				current, err := s.trees.Find(ctx, record.UserID, record.SkillPathID)
				if err != nil {
					return fmt.Errorf("trees.Find(%s, %s) > %w", record.UserID, record.SkillPathID, err)
				}
				if current == nil {
					gone = true
					return nil
				}

				state := current.State()
				wasDead := state.IsDead
				next, err := s.engine.ApplyDailyDecay(state, day)
				if err != nil {
					return fmt.Errorf("engine.ApplyDailyDecay > %w", err)
				}
				current.SetState(next)

				if err := s.trees.Update(ctx, current); err != nil {
					return fmt.Errorf("save user tree > %w", err)
				}

				died = next.IsDead && !wasDead
				return nil
			},
			conflictRetryOptions(ctx, s.maxRetryAttempts)...,
		); err != nil {
			errs = append(errs, fmt.Errorf("refresh tree %s: %w", record.ID, err))
			continue
		}
		if gone {
			continue
		}

		result.Refreshed++
		if died {
			result.Died++
			slog.Default().Info("tree died from neglect",
				slog.String("userID", record.UserID),
				slog.String("skillPathID", record.SkillPathID),
			)
		}
	}
	return result, errors.Join(errs...)
}

func (s *GardenService) nextFreePosition(ctx context.Context, userID string) (garden.Position, error) {
	existing, err := s.trees.FindByUser(ctx, userID)
	if err != nil {
		return garden.Position{}, fmt.Errorf("trees.FindByUser(%s) > %w", userID, err)
	}
	return garden.Position{
		Row: len(existing) / gardenColumns,
		Col: len(existing) % gardenColumns,
	}, nil
}
