package draws

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastprodman/lucksy/internal/domain"
	"github.com/fastprodman/lucksy/internal/infra/randsrc"
)

var t0 = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func entry(tickets int64, offset time.Duration) domain.Entry {
	return domain.Entry{
		ID:           uuid.New(),
		AccountID:    uuid.New(),
		TicketsSpent: tickets,
		Status:       domain.EntryActive,
		CreatedAt:    t0.Add(offset),
	}
}

func TestPick_WeightBoundaries(t *testing.T) {
	t.Parallel()

	entries := []domain.Entry{entry(1, 0), entry(1, time.Second), entry(8, 2*time.Second)}

	for roll := int64(0); roll < 10; roll++ {
		want := 2

		switch {
		case roll < 1:
			want = 0
		case roll < 2:
			want = 1
		}

		assert.Equal(t, want, pick(entries, roll), "roll %d", roll)
	}
}

func TestSelectWinner_TwoAccounts(t *testing.T) {
	t.Parallel()

	drawID := uuid.New()
	a := entry(15, 0)
	b := entry(90, time.Minute)

	tests := []struct {
		roll int64
		want domain.Entry
	}{
		{roll: 10, want: a},
		{roll: 14, want: a},
		{roll: 15, want: b},
		{roll: 50, want: b},
		{roll: 104, want: b},
	}

	for _, tt := range tests {
		// Input order must not matter.
		sel, err := SelectWinner(drawID, []domain.Entry{b, a}, randsrc.Fixed{Roll: tt.roll, SaltValue: "s"}, t0)
		require.NoError(t, err)

		assert.Equal(t, tt.want.ID, sel.WinnerEntryID, "roll %d", tt.roll)
		assert.Equal(t, tt.want.AccountID, sel.WinnerAccountID)
		assert.Equal(t, int64(105), sel.Proof.Total)
		assert.Equal(t, tt.roll, sel.Proof.Roll)
		assert.NoError(t, sel.Validate(drawID, []domain.Entry{a, b}))
	}
}

func TestSelectWinner_NoEntries(t *testing.T) {
	t.Parallel()

	_, err := SelectWinner(uuid.New(), nil, randsrc.Crypto{}, t0)
	require.ErrorIs(t, err, domain.ErrNoEntries)
}

func TestSelectWinner_RejectsNonPositiveWeight(t *testing.T) {
	t.Parallel()

	_, err := SelectWinner(uuid.New(), []domain.Entry{entry(0, 0)}, randsrc.Crypto{}, t0)
	require.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestSelectWinner_TieOnCreatedAtBreaksById(t *testing.T) {
	t.Parallel()

	x := entry(1, 0)
	y := entry(1, 0)

	first, second := x, y
	if string(y.ID[:]) < string(x.ID[:]) {
		first, second = y, x
	}

	sel, err := SelectWinner(uuid.New(), []domain.Entry{second, first}, randsrc.Fixed{Roll: 0}, t0)
	require.NoError(t, err)
	assert.Equal(t, first.ID, sel.WinnerEntryID)
}

func TestSelectWinner_IsRoughlyProportional(t *testing.T) {
	t.Parallel()

	entries := []domain.Entry{entry(1, 0), entry(3, time.Second)}
	wins := map[uuid.UUID]int{}

	const rounds = 4000

	for range rounds {
		sel, err := SelectWinner(uuid.New(), entries, randsrc.Crypto{}, t0)
		require.NoError(t, err)

		wins[sel.WinnerEntryID]++
	}

	// Expect 1000 vs 3000; the bounds sit more than six standard deviations out.
	assert.InDelta(t, 1000, wins[entries[0].ID], 170)
	assert.InDelta(t, 3000, wins[entries[1].ID], 170)
}

func TestComputeProof(t *testing.T) {
	t.Parallel()

	drawID := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	acc := uuid.MustParse("22222222-2222-2222-2222-222222222222")
	ent := uuid.MustParse("33333333-3333-3333-3333-333333333333")
	p := domain.Proof{Salt: "abc", SelectedAt: t0, Roll: 3, Total: 10}

	h := ComputeProof(drawID, acc, ent, p)
	assert.Len(t, h, 64)

	// Stable across zones and hash field.
	p2 := p
	p2.SelectedAt = t0.In(time.FixedZone("X", 3600))
	p2.Hash = "ignored"
	assert.Equal(t, h, ComputeProof(drawID, acc, ent, p2))

	changed := []domain.Proof{
		{Salt: "abd", SelectedAt: t0, Roll: 3, Total: 10},
		{Salt: "abc", SelectedAt: t0.Add(time.Microsecond), Roll: 3, Total: 10},
		{Salt: "abc", SelectedAt: t0, Roll: 4, Total: 10},
		{Salt: "abc", SelectedAt: t0, Roll: 3, Total: 11},
	}
	for _, c := range changed {
		assert.NotEqual(t, h, ComputeProof(drawID, acc, ent, c))
	}

	assert.NotEqual(t, h, ComputeProof(uuid.New(), acc, ent, p))
	assert.NotEqual(t, h, ComputeProof(drawID, uuid.New(), ent, p))
}

func TestSelection_Validate(t *testing.T) {
	t.Parallel()

	drawID := uuid.New()
	a := entry(2, 0)
	b := entry(3, time.Second)
	entries := []domain.Entry{a, b}

	good, err := SelectWinner(drawID, entries, randsrc.Fixed{Roll: 3, SaltValue: "salt"}, t0)
	require.NoError(t, err)
	require.Equal(t, b.ID, good.WinnerEntryID)
	require.NoError(t, good.Validate(drawID, entries))

	tests := []struct {
		name    string
		mutate  func(s *Selection)
		entries []domain.Entry
		wantErr error
	}{
		{name: "other_draw", mutate: func(s *Selection) { s.DrawID = uuid.New() }, wantErr: domain.ErrInvalidSelection},
		{name: "wrong_winner", mutate: func(s *Selection) { s.WinnerEntryID, s.WinnerAccountID = a.ID, a.AccountID }, wantErr: domain.ErrInvalidSelection},
		{name: "tampered_hash", mutate: func(s *Selection) { s.Proof.Hash = "00" }, wantErr: domain.ErrInvalidSelection},
		{name: "roll_out_of_range", mutate: func(s *Selection) { s.Proof.Roll = 5 }, wantErr: domain.ErrInvalidSelection},
		{name: "stale_total", mutate: func(*Selection) {}, entries: []domain.Entry{a, b, entry(1, time.Minute)}, wantErr: domain.ErrInvalidSelection},
		{name: "no_entries", mutate: func(*Selection) {}, entries: []domain.Entry{}, wantErr: domain.ErrNoEntries},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sel := good
			tt.mutate(&sel)

			list := entries
			if tt.entries != nil {
				list = tt.entries
			}

			require.ErrorIs(t, sel.Validate(drawID, list), tt.wantErr)
		})
	}
}
