package pocketbase

import (
	"context"
	"fmt"
	"time"

	"github.com/lexigarden/lexigarden/internal/store"
)

const collectionUserTrees = "user_trees"

type treeRecord struct {
	ID              string     `json:"id,omitempty"`
	UserID          string     `json:"user_id"`
	SkillPathID     string     `json:"skill_path_id"`
	Status          string     `json:"status"`
	IsDead          bool       `json:"is_dead"`
	Health          int        `json:"health"`
	SunDropsEarned  int        `json:"sun_drops_earned"`
	SunDropsTotal   int        `json:"sun_drops_total"`
	GrowthStage     int        `json:"growth_stage"`
	LastRefreshDate recordTime `json:"last_refresh_date"`
	DiedAt          recordTime `json:"died_at"`
	PositionRow     int        `json:"position_row"`
	PositionCol     int        `json:"position_col"`
	Version         int64      `json:"version"`
}

func newTreeRecord(record *store.UserTree) treeRecord {
	converted := treeRecord{
		UserID:          record.UserID,
		SkillPathID:     record.SkillPathID,
		Status:          record.Status,
		IsDead:          record.IsDead,
		Health:          record.Health,
		SunDropsEarned:  record.SunDropsEarned,
		SunDropsTotal:   record.SunDropsTotal,
		GrowthStage:     record.GrowthStage,
		LastRefreshDate: newRecordTime(record.LastRefreshDate),
		PositionRow:     record.PositionRow,
		PositionCol:     record.PositionCol,
		Version:         record.Version,
	}
	if record.DiedAt != nil {
		converted.DiedAt = newRecordTime(*record.DiedAt)
	}
	return converted
}

func (r treeRecord) toStore() store.UserTree {
	converted := store.UserTree{
		ID:              r.ID,
		UserID:          r.UserID,
		SkillPathID:     r.SkillPathID,
		Status:          r.Status,
		IsDead:          r.IsDead,
		Health:          r.Health,
		SunDropsEarned:  r.SunDropsEarned,
		SunDropsTotal:   r.SunDropsTotal,
		GrowthStage:     r.GrowthStage,
		LastRefreshDate: r.LastRefreshDate.Time,
		PositionRow:     r.PositionRow,
		PositionCol:     r.PositionCol,
		Version:         r.Version,
	}
	if !r.DiedAt.IsZero() {
		diedAt := r.DiedAt.Time
		converted.DiedAt = &diedAt
	}
	return converted
}

// UserTreeRepository implements store.UserTreeStore against PocketBase.
type UserTreeRepository struct {
	client *Client
}

func NewUserTreeRepository(client *Client) *UserTreeRepository {
	return &UserTreeRepository{client: client}
}

// Find returns the tree for a user and skill path, or nil if not found.
func (r *UserTreeRepository) Find(ctx context.Context, userID, skillPathID string) (*store.UserTree, error) {
	filter := fmt.Sprintf("user_id=%s && skill_path_id=%s",
		quoteFilterValue(userID), quoteFilterValue(skillPathID))

	var result *store.UserTree
	if err := r.client.do(ctx, func() error {
		record, err := firstRecord[treeRecord](ctx, r.client, collectionUserTrees, filter)
		if err != nil {
			return fmt.Errorf("firstRecord(%s) > %w", collectionUserTrees, err)
		}
		if record == nil {
			return nil
		}
		converted := record.toStore()
		result = &converted
		return nil
	}); err != nil {
		return nil, err
	}
	return result, nil
}

// FindByUser returns all trees of a user in garden grid order.
func (r *UserTreeRepository) FindByUser(ctx context.Context, userID string) ([]store.UserTree, error) {
	filter := fmt.Sprintf("user_id=%s", quoteFilterValue(userID))

	var result []store.UserTree
	if err := r.client.do(ctx, func() error {
		records, err := listRecords[treeRecord](ctx, r.client, collectionUserTrees, filter, "position_row,position_col")
		if err != nil {
			return fmt.Errorf("listRecords(%s) > %w", collectionUserTrees, err)
		}
		result = make([]store.UserTree, 0, len(records))
		for _, record := range records {
			result = append(result, record.toStore())
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return result, nil
}

// FindStale returns trees whose last refresh is before the given date.
func (r *UserTreeRepository) FindStale(ctx context.Context, before time.Time) ([]store.UserTree, error) {
	filter := fmt.Sprintf("last_refresh_date<%s", filterTime(before))

	var result []store.UserTree
	if err := r.client.do(ctx, func() error {
		records, err := listRecords[treeRecord](ctx, r.client, collectionUserTrees, filter, "last_refresh_date")
		if err != nil {
			return fmt.Errorf("listRecords(%s) > %w", collectionUserTrees, err)
		}
		result = make([]store.UserTree, 0, len(records))
		for _, record := range records {
			result = append(result, record.toStore())
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return result, nil
}

// Create inserts a new tree. PocketBase mints its own record IDs, so the ID
// of the given record is replaced with the assigned one.
func (r *UserTreeRepository) Create(ctx context.Context, record *store.UserTree) error {
	return r.client.do(ctx, func() error {
		created, err := createRecord(ctx, r.client, collectionUserTrees, newTreeRecord(record))
		if err != nil {
			return fmt.Errorf("createRecord(%s) > %w", collectionUserTrees, err)
		}
		record.ID = created.ID
		return nil
	})
}

// Update writes the tree under its version check.
func (r *UserTreeRepository) Update(ctx context.Context, record *store.UserTree) error {
	return r.client.do(ctx, func() error {
		current, err := getRecord[treeRecord](ctx, r.client, collectionUserTrees, record.ID)
		if err != nil {
			return fmt.Errorf("getRecord(%s) > %w", collectionUserTrees, err)
		}
		if current == nil || current.Version != record.Version {
			return fmt.Errorf("user_tree %s version %d: %w", record.ID, record.Version, store.ErrVersionConflict)
		}

		body := newTreeRecord(record)
		body.Version = record.Version + 1
		if _, err := patchRecord(ctx, r.client, collectionUserTrees, record.ID, body); err != nil {
			return fmt.Errorf("patchRecord(%s) > %w", collectionUserTrees, err)
		}
		record.Version++
		return nil
	})
}
