package progress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"SavQuest/internal/model"
	"SavQuest/internal/storage"
)

// StorageKey is the client-storage key holding the progress record.
const StorageKey = "savquest_progress"

// defaultTraitMaxXP is the size of a trait level bar.
const defaultTraitMaxXP = 100

// Repository loads and saves the progress record.
type Repository interface {
	Load(ctx context.Context) (model.Progress, bool, error)
	Save(ctx context.Context, p model.Progress) error
}

// KVRepository keeps the record as JSON under StorageKey in a storage.Store.
type KVRepository struct {
	Store storage.Store
}

func NewKVRepository(store storage.Store) *KVRepository {
	return &KVRepository{Store: store}
}

// storedProgress decodes traits lazily so legacy numeric values can be migrated.
type storedProgress struct {
	model.Progress
	Traits map[string]json.RawMessage `json:"traits"`
}

func (r *KVRepository) Load(ctx context.Context) (model.Progress, bool, error) {
	data, err := r.Store.Get(ctx, StorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return model.Progress{}, false, nil
		}
		return model.Progress{}, false, err
	}
	var sp storedProgress
	if err := json.Unmarshal(data, &sp); err != nil {
		return model.Progress{}, false, fmt.Errorf("decode progress: %w", err)
	}
	p := sp.Progress
	p.Traits = NormalizeTraits(sp.Traits)
	return p, true, nil
}

func (r *KVRepository) Save(ctx context.Context, p model.Progress) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	return r.Store.Set(ctx, StorageKey, data)
}

// NormalizeTraits upgrades trait values to the {level, xp, maxXp} shape.
// A bare number is a legacy level. Unknown traits and undecodable values are dropped,
// and every catalog trait is present in the result.
func NormalizeTraits(raw map[string]json.RawMessage) map[string]model.TraitProgress {
	out := make(map[string]model.TraitProgress, len(model.Traits))
	for _, t := range model.Traits {
		out[t.ID] = model.TraitProgress{Level: 1, MaxXP: defaultTraitMaxXP}
	}
	for id, v := range raw {
		if _, ok := model.FindTrait(id); !ok {
			continue
		}
		var level float64
		if err := json.Unmarshal(v, &level); err == nil {
			out[id] = fixTrait(model.TraitProgress{Level: int(level), MaxXP: defaultTraitMaxXP})
			continue
		}
		var tp model.TraitProgress
		if err := json.Unmarshal(v, &tp); err == nil {
			out[id] = fixTrait(tp)
		}
	}
	return out
}

func fixTrait(tp model.TraitProgress) model.TraitProgress {
	if tp.Level < 1 {
		tp.Level = 1
	}
	if tp.MaxXP <= 0 {
		tp.MaxXP = defaultTraitMaxXP
	}
	if tp.XP < 0 {
		tp.XP = 0
	}
	if tp.XP >= tp.MaxXP {
		tp.XP = tp.MaxXP - 1
	}
	return tp
}

// DefaultProgress is the record for a new user.
func DefaultProgress() model.Progress {
	return model.Progress{
		Level:           1,
		Badges:          model.DefaultBadges(),
		Traits:          NormalizeTraits(nil),
		RedeemedRewards: []model.Redemption{},
		Challenges:      model.DailyChallenges(),
	}
}

// Normalize fills missing or invalid fields of a loaded record with defaults.
func Normalize(p model.Progress) model.Progress {
	p = p.Clone()
	if p.Level < 1 {
		p.Level = 1
	}
	if p.XP < 0 {
		p.XP = 0
	}
	if p.TotalXP < p.XP {
		p.TotalXP = p.XP
	}
	if p.Coins < 0 {
		p.Coins = 0
	}
	if p.Streak < 0 {
		p.Streak = 0
	}
	if p.Badges == nil {
		p.Badges = model.DefaultBadges()
	}
	if p.Traits == nil {
		p.Traits = NormalizeTraits(nil)
	}
	if p.RedeemedRewards == nil {
		p.RedeemedRewards = []model.Redemption{}
	}
	if p.Challenges == nil {
		p.Challenges = model.DailyChallenges()
	}
	return p
}
