package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aura-ledger/internal/core/domain"
	"aura-ledger/pkg/apperror"
)

// record runs a representative history and returns its journal.
func record(t *testing.T, l *Ledger) []domain.JournalEntry {
	t.Helper()
	var journal []domain.JournalEntry
	add := func(e domain.JournalEntry, err error) {
		require.NoError(t, err)
		journal = append(journal, e)
	}

	add(l.Provide(lenderA, 1000))
	add(l.Provide(lenderB, 500))
	add(l.SetCreditLimit(operator, borrowerB, 900))

	r1, err := l.LockFunds(borrowerB, merchantM, 400, "k1")
	require.NoError(t, err)
	journal = append(journal, r1.Entry)
	r2, err := l.LockFunds(borrowerB, merchantM, 100, "k2")
	require.NoError(t, err)
	journal = append(journal, r2.Entry)
	r3, err := l.LockFunds(borrowerB, merchantN, 50, "")
	require.NoError(t, err)
	journal = append(journal, r3.Entry)

	add(l.Repay(borrowerB, 120))
	s, err := l.SettleReceipt(merchantM, r1.Receipt.ID)
	require.NoError(t, err)
	journal = append(journal, s.Entry)
	c, err := l.ClaimAll(merchantM)
	require.NoError(t, err)
	journal = append(journal, c.Entry)
	add(l.WithdrawClaimable(merchantM))
	add(l.Withdraw(lenderB, lenderB, 200))
	return journal
}

func TestReplay_ReproducesState(t *testing.T) {
	src := newTestLedger(t)
	journal := record(t, src)

	dst := newTestLedger(t)
	require.NoError(t, dst.Replay(journal))

	assert.Equal(t, src.Pool(), dst.Pool())
	assert.Equal(t, src.Seq(), dst.Seq())
	for _, p := range []domain.Principal{lenderA, lenderB} {
		assert.Equal(t, src.LenderBalance(p), dst.LenderBalance(p))
	}
	assert.Equal(t, src.BorrowerDue(borrowerB), dst.BorrowerDue(borrowerB))
	assert.Equal(t, src.CreditLimit(borrowerB), dst.CreditLimit(borrowerB))
	assert.Equal(t, src.MerchantReceipts(merchantM), dst.MerchantReceipts(merchantM))
	assert.Equal(t, src.MerchantReceipts(merchantN), dst.MerchantReceipts(merchantN))
	require.NoError(t, dst.CheckInvariants())

	// New draws continue the nonce sequence instead of reusing ids.
	next, err := dst.LockFunds(borrowerB, merchantN, 10, "")
	require.NoError(t, err)
	assert.Equal(t, uint64(4), next.Receipt.Nonce)
	assert.Equal(t, src.Seq()+1, next.Entry.Seq)
}

func TestReplay_RejectsGap(t *testing.T) {
	journal := record(t, newTestLedger(t))

	dst := newTestLedger(t)
	err := dst.Replay(append(journal[:2:2], journal[3:]...))
	assert.ErrorIs(t, err, ErrCorruptJournal)
	assert.Equal(t, uint64(2), dst.Seq())
}

func TestReplay_RejectsTamperedDraw(t *testing.T) {
	journal := record(t, newTestLedger(t))
	journal[3].Amount = 401

	err := newTestLedger(t).Replay(journal)
	assert.ErrorIs(t, err, ErrCorruptJournal)
}

func TestReplay_SurfacesLedgerErrors(t *testing.T) {
	err := newTestLedger(t).Replay([]domain.JournalEntry{
		{Seq: 1, Op: domain.OpWithdraw, Principal: lenderA, Amount: 10},
	})
	require.Error(t, err)
	assert.Equal(t, apperror.CodeInsufficientBalance, apperror.CodeOf(err))
}

func TestReplay_UnknownOperation(t *testing.T) {
	err := newTestLedger(t).Replay([]domain.JournalEntry{{Seq: 1, Op: "MINT"}})
	assert.ErrorIs(t, err, ErrCorruptJournal)
}

func TestReplay_RestoresIdempotencyKeys(t *testing.T) {
	src := newTestLedger(t)
	journal := record(t, src)

	dst := newTestLedger(t)
	require.NoError(t, dst.Replay(journal))

	res, err := dst.LockFunds(borrowerB, merchantM, 400, "k1")
	require.NoError(t, err)
	assert.True(t, res.Replayed)
	assert.Equal(t, journal[3].ReceiptIDs[0], res.Receipt.ID)
}
