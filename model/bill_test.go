package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransitionMatchesTable(t *testing.T) {
	table := map[BillStatus][]BillStatus{
		BillPending:   {BillConfirmed, BillCancelled},
		BillConfirmed: {BillReady, BillCancelled},
		BillReady:     {BillCancelled},
		BillCancelled: nil,
	}
	for _, from := range BillStatuses() {
		for _, to := range BillStatuses() {
			want := false
			for _, s := range table[from] {
				if s == to {
					want = true
				}
			}
			assert.Equal(t, want, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestAllowedNextStates(t *testing.T) {
	assert.Equal(t, []BillStatus{BillConfirmed, BillCancelled}, AllowedNextStates(BillPending))
	assert.Empty(t, AllowedNextStates(BillCancelled))
	assert.Empty(t, AllowedNextStates(BillStatus("shipped")))

	// the returned slice is a copy
	next := AllowedNextStates(BillConfirmed)
	next[0] = BillCancelled
	assert.Equal(t, []BillStatus{BillReady, BillCancelled}, AllowedNextStates(BillConfirmed))
}

func TestPendingCannotJumpToReady(t *testing.T) {
	assert.False(t, CanTransition(BillPending, BillReady))
	assert.True(t, CanTransition(BillConfirmed, BillCancelled))
}

func TestCanDelete(t *testing.T) {
	assert.True(t, CanDelete(BillPending))
	assert.True(t, CanDelete(BillCancelled))
	assert.False(t, CanDelete(BillConfirmed))
	assert.False(t, CanDelete(BillReady))
}

func TestParseBillStatus(t *testing.T) {
	cases := map[string]BillStatus{
		"pending":       BillPending,
		" Confirmed ":   BillConfirmed,
		"Đang xử lý":    BillPending,
		"Đã xác nhận":   BillConfirmed,
		"Chờ giao hàng": BillReady,
		"Đã hủy":        BillCancelled,
	}
	for in, want := range cases {
		got, err := ParseBillStatus(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseBillStatus("Đã giao")
	assert.ErrorIs(t, err, ErrUnknownBillStatus)
}
