package store

import (
	"budget_tracker/internal/config"
	"budget_tracker/internal/db"
	"budget_tracker/internal/domain"
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := db.Open(&config.Config{
		DBDriver: config.DriverSQLite,
		DBPath:   filepath.Join(t.TempDir(), "store.db"),
	})
	require.NoError(t, err, "failed to open test database")
	require.NoError(t, db.Migrate(gdb), "failed to migrate test database")
	t.Cleanup(func() { _ = db.Close(gdb) })
	return gdb
}

func day(s string) time.Time {
	d, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func strPtr(s string) *string { return &s }

// CredentialsTestSuite covers the credential store
type CredentialsTestSuite struct {
	suite.Suite
	ctx   context.Context
	users *Credentials
}

func (s *CredentialsTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.users = NewCredentials(openTestDB(s.T()))
}

func (s *CredentialsTestSuite) TestCreateAndFind() {
	id, err := s.users.Create(s.ctx, "alice", "hash")
	s.Require().NoError(err)
	s.NotZero(id)

	byName, err := s.users.FindByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(id, byName.ID)
	s.Equal("hash", byName.PasswordHash)

	byID, err := s.users.FindByID(s.ctx, id)
	s.Require().NoError(err)
	s.Equal("alice", byID.Username)
}

func (s *CredentialsTestSuite) TestDuplicateUsername() {
	_, err := s.users.Create(s.ctx, "alice", "hash1")
	s.Require().NoError(err)

	_, err = s.users.Create(s.ctx, "alice", "hash2")
	s.ErrorIs(err, domain.ErrDuplicateUsername)

	n, err := s.users.Count(s.ctx, "alice")
	s.Require().NoError(err)
	s.EqualValues(1, n, "exactly one row must exist after a duplicate attempt")

	u, err := s.users.FindByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("hash1", u.PasswordHash, "the original row must be untouched")
}

func (s *CredentialsTestSuite) TestConcurrentDuplicateRegistrations() {
	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.users.Create(s.ctx, "racer", "hash"); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	s.Equal(1, succeeded)
	n, err := s.users.Count(s.ctx, "racer")
	s.Require().NoError(err)
	s.EqualValues(1, n)
}

func (s *CredentialsTestSuite) TestNotFound() {
	_, err := s.users.FindByUsername(s.ctx, "nobody")
	s.ErrorIs(err, domain.ErrNotFound)

	_, err = s.users.FindByID(s.ctx, 42)
	s.ErrorIs(err, domain.ErrNotFound)
}

// LedgerTestSuite covers the ledger store
type LedgerTestSuite struct {
	suite.Suite
	ctx    context.Context
	ledger *Ledger
	alice  uint
	bob    uint
}

func (s *LedgerTestSuite) SetupTest() {
	s.ctx = context.Background()
	gdb := openTestDB(s.T())
	users := NewCredentials(gdb)
	s.ledger = NewLedger(gdb)

	var err error
	s.alice, err = users.Create(s.ctx, "alice", "hash")
	s.Require().NoError(err)
	s.bob, err = users.Create(s.ctx, "bob", "hash")
	s.Require().NoError(err)
}

func (s *LedgerTestSuite) add(userID uint, amount, date string, desc *string) uint {
	id, err := s.ledger.Add(s.ctx, domain.NewTransaction{
		UserID:      userID,
		Amount:      decimal.RequireFromString(amount),
		Category:    "Food",
		Date:        day(date),
		Description: desc,
	})
	s.Require().NoError(err)
	return id
}

func (s *LedgerTestSuite) TestRoundTrip() {
	s.add(s.alice, "42.50", "2024-01-15", strPtr("Lunch"))

	txs, err := s.ledger.ListByUserByDateDesc(s.ctx, s.alice)
	s.Require().NoError(err)
	s.Require().Len(txs, 1)

	tx := txs[0]
	s.True(decimal.RequireFromString("42.50").Equal(tx.Amount.Decimal), "amount = %s", tx.Amount)
	s.Equal("Food", tx.Category)
	s.Equal("2024-01-15", tx.DateString())
	s.Require().NotNil(tx.Description)
	s.Equal("Lunch", *tx.Description)
	s.Equal(s.alice, tx.UserID)
}

func (s *LedgerTestSuite) TestDescriptionEmptyVersusAbsent() {
	s.add(s.alice, "1", "2024-01-01", nil)
	s.add(s.alice, "2", "2024-01-02", strPtr(""))

	txs, err := s.ledger.ListByUser(s.ctx, s.alice)
	s.Require().NoError(err)
	s.Require().Len(txs, 2)

	s.Nil(txs[0].Description)
	s.Require().NotNil(txs[1].Description)
	s.Equal("", *txs[1].Description)
}

func (s *LedgerTestSuite) TestAmountPrecisionAndSign() {
	s.add(s.alice, "-0.01", "2024-01-01", nil)
	s.add(s.alice, "1234567.8912", "2024-01-02", nil)

	txs, err := s.ledger.ListByUser(s.ctx, s.alice)
	s.Require().NoError(err)
	s.Require().Len(txs, 2)
	s.Equal("-0.01", txs[0].Amount.String())
	s.Equal("1234567.8912", txs[1].Amount.String())
}

func (s *LedgerTestSuite) TestAmountFullWidthRoundTrip() {
	for _, amount := range []string{"9999999999999999.9999", "-9999999999999999.9999", "12345678901234.5678"} {
		s.add(s.bob, amount, "2024-01-01", nil)
	}

	txs, err := s.ledger.ListByUser(s.ctx, s.bob)
	s.Require().NoError(err)
	s.Require().Len(txs, 3)
	s.Equal("9999999999999999.9999", txs[0].Amount.String())
	s.Equal("-9999999999999999.9999", txs[1].Amount.String())
	s.Equal("12345678901234.5678", txs[2].Amount.String())
	s.Equal("12345678901234.5678", Total(txs).String())
}

func (s *LedgerTestSuite) TestAddRejectsOutOfRangeAmount() {
	for _, amount := range []string{"1e30", "10000000000000000", "0.00001"} {
		_, err := s.ledger.Add(s.ctx, domain.NewTransaction{
			UserID:   s.alice,
			Amount:   decimal.RequireFromString(amount),
			Category: "Food",
			Date:     day("2024-01-01"),
		})
		var verr *domain.ValidationError
		s.ErrorAs(err, &verr, amount)
	}

	txs, err := s.ledger.ListByUser(s.ctx, s.alice)
	s.Require().NoError(err)
	s.Empty(txs)
}

func (s *LedgerTestSuite) TestOwnershipIsolation() {
	s.add(s.alice, "42.50", "2024-01-15", strPtr("Lunch"))

	txs, err := s.ledger.ListByUser(s.ctx, s.bob)
	s.Require().NoError(err)
	s.Empty(txs)

	txs, err = s.ledger.ListByUserByDateDesc(s.ctx, s.bob)
	s.Require().NoError(err)
	s.Empty(txs)
}

func (s *LedgerTestSuite) TestHistoryOrdering() {
	s.add(s.alice, "10", "2024-01-10", nil)
	s.add(s.alice, "20", "2024-01-20", nil)
	s.add(s.alice, "15", "2024-01-15", nil)

	txs, err := s.ledger.ListByUserByDateDesc(s.ctx, s.alice)
	s.Require().NoError(err)
	s.Require().Len(txs, 3)
	s.Equal("2024-01-20", txs[0].DateString())
	s.Equal("2024-01-15", txs[1].DateString())
	s.Equal("2024-01-10", txs[2].DateString())
}

func (s *LedgerTestSuite) TestSameDateKeepsInsertionOrder() {
	first := s.add(s.alice, "1", "2024-02-01", strPtr("first"))
	second := s.add(s.alice, "2", "2024-02-01", strPtr("second"))
	newest := s.add(s.alice, "3", "2024-03-01", nil)

	txs, err := s.ledger.ListByUserByDateDesc(s.ctx, s.alice)
	s.Require().NoError(err)
	s.Require().Len(txs, 3)
	s.Equal([]uint{newest, first, second}, []uint{txs[0].ID, txs[1].ID, txs[2].ID})
}

func (s *LedgerTestSuite) TestListByUserInsertionOrder() {
	a := s.add(s.alice, "1", "2024-01-20", nil)
	b := s.add(s.alice, "2", "2024-01-10", nil)
	c := s.add(s.alice, "3", "2024-01-15", nil)

	txs, err := s.ledger.ListByUser(s.ctx, s.alice)
	s.Require().NoError(err)
	s.Require().Len(txs, 3)
	s.Equal([]uint{a, b, c}, []uint{txs[0].ID, txs[1].ID, txs[2].ID})
}

func (s *LedgerTestSuite) TestAddRejectsUnknownOwner() {
	_, err := s.ledger.Add(s.ctx, domain.NewTransaction{
		UserID:   9999,
		Amount:   decimal.NewFromInt(1),
		Category: "Food",
		Date:     day("2024-01-01"),
	})
	s.Error(err)

	_, err = s.ledger.Add(s.ctx, domain.NewTransaction{Amount: decimal.NewFromInt(1), Category: "Food", Date: day("2024-01-01")})
	s.Error(err)
}

func (s *LedgerTestSuite) TestTotal() {
	s.add(s.alice, "10.10", "2024-01-01", nil)
	s.add(s.alice, "-0.10", "2024-01-02", nil)
	s.add(s.alice, "0.20", "2024-01-03", nil)

	txs, err := s.ledger.ListByUser(s.ctx, s.alice)
	s.Require().NoError(err)
	s.Equal("10.2", Total(txs).String())
	s.True(Total(nil).IsZero())
}

func TestSessionsStore(t *testing.T) {
	ctx := context.Background()
	gdb := openTestDB(t)
	uid, err := NewCredentials(gdb).Create(ctx, "alice", "hash")
	require.NoError(t, err)

	sessions := NewSessions(gdb)
	require.NoError(t, sessions.Save(ctx, "sid-1", uid, time.Hour))

	got, err := sessions.Load(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, uid, got)

	_, err = sessions.Load(ctx, "unknown")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, sessions.Delete(ctx, "sid-1"))
	require.NoError(t, sessions.Delete(ctx, "sid-1"), "deleting twice is not an error")
	_, err = sessions.Load(ctx, "sid-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionsExpiry(t *testing.T) {
	ctx := context.Background()
	gdb := openTestDB(t)
	uid, err := NewCredentials(gdb).Create(ctx, "alice", "hash")
	require.NoError(t, err)

	sessions := NewSessions(gdb)
	require.NoError(t, sessions.Save(ctx, "old", uid, time.Hour))
	require.NoError(t, sessions.Save(ctx, "fresh", uid, 3*time.Hour))

	// Move the clock past the first session's expiry
	sessions.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	_, err = sessions.Load(ctx, "old")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	n, err := sessions.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	got, err := sessions.Load(ctx, "fresh")
	require.NoError(t, err)
	assert.Equal(t, uid, got)
}

// Test suite runners
func TestCredentialsSuite(t *testing.T) {
	suite.Run(t, new(CredentialsTestSuite))
}

func TestLedgerSuite(t *testing.T) {
	suite.Run(t, new(LedgerTestSuite))
}
