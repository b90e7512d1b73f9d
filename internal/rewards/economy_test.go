package rewards

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoinsForLevel(t *testing.T) {
	tests := []struct {
		level int
		want  int
	}{
		{1, 75},
		{2, 100},
		{3, 125},
		{10, 300},
		{16, 450},
	}
	for _, tt := range tests {
		got, err := CoinsForLevel(tt.level)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "level %d", tt.level)
	}

	for n := 1; n <= 200; n++ {
		got, err := CoinsForLevel(n)
		require.NoError(t, err)
		assert.Equal(t, 50+25*n, got)
	}
}

func TestCoinsForLevel_RejectsNonPositive(t *testing.T) {
	for _, lvl := range []int{0, -1, -50} {
		_, err := CoinsForLevel(lvl)
		assert.True(t, errors.Is(err, ErrInvalidLevel), "level %d: got %v", lvl, err)
	}
}

func TestXPRequiredForNextLevel(t *testing.T) {
	got, err := XPRequiredForNextLevel(1)
	require.NoError(t, err)
	assert.Equal(t, 150, got)

	for n := 0; n <= 100; n++ {
		got, err := XPRequiredForNextLevel(n)
		require.NoError(t, err)
		assert.Equal(t, 100+50*n, got)
	}

	_, err = XPRequiredForNextLevel(-1)
	assert.ErrorIs(t, err, ErrInvalidLevel)
}

func TestTotalCoinsFromLevels(t *testing.T) {
	got, err := TotalCoinsFromLevels(3)
	require.NoError(t, err)
	assert.Equal(t, 300, got)

	zero, err := TotalCoinsFromLevels(0)
	require.NoError(t, err)
	assert.Equal(t, 0, zero)

	_, err = TotalCoinsFromLevels(-2)
	assert.ErrorIs(t, err, ErrInvalidLevel)
}

func TestTotalCoinsFromLevels_ClosedFormMatchesLoop(t *testing.T) {
	for n := 1; n <= 100; n++ {
		closed, err := TotalCoinsFromLevels(n)
		require.NoError(t, err)
		assert.Equal(t, totalCoinsIterative(n), closed, "n=%d", n)
	}
}

func TestTierForLevel_AllBoundaries(t *testing.T) {
	tests := []struct {
		level int
		id    string
	}{
		{-3, "bronze"},
		{0, "bronze"},
		{1, "bronze"},
		{5, "bronze"},
		{6, "silver"},
		{10, "silver"},
		{11, "gold"},
		{15, "gold"},
		{16, "platinum"},
		{100, "platinum"},
	}
	for _, tt := range tests {
		tier := TierForLevel(tt.level)
		if tier.ID != tt.id {
			t.Errorf("level %d: expected %q, got %q", tt.level, tt.id, tier.ID)
		}
	}
}

func TestTiers_Ascending(t *testing.T) {
	all := Tiers()
	require.Len(t, all, 4)
	ids := []string{all[0].ID, all[1].ID, all[2].ID, all[3].ID}
	assert.Equal(t, []string{"bronze", "silver", "gold", "platinum"}, ids)
	for i := 1; i < len(all); i++ {
		assert.Greater(t, all[i].MinLevel, all[i-1].MinLevel)
	}
	assert.Equal(t, "11-15", all[2].LevelRange)
}

func TestLevelTable(t *testing.T) {
	rows, err := LevelTable(20)
	require.NoError(t, err)
	require.Len(t, rows, 20)

	assert.Equal(t, 1, rows[0].Level)
	assert.Equal(t, 75, rows[0].Coins)
	assert.Equal(t, 150, rows[0].XPToNext)
	assert.Equal(t, "bronze", rows[0].Tier.ID)

	total, _ := TotalCoinsFromLevels(20)
	assert.Equal(t, total, rows[19].CumulativeCoin)
	assert.Equal(t, "platinum", rows[19].Tier.ID)

	_, err = LevelTable(0)
	assert.ErrorIs(t, err, ErrInvalidLevel)
	_, err = LevelTable(maxTableLevels + 1)
	assert.ErrorIs(t, err, ErrInvalidLevel)
}
