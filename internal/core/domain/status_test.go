package domain_test

import (
	"testing"
	"time"

	"gensuite-api/internal/core/domain"

	"github.com/stretchr/testify/require"
)

func TestEvaluateAccount(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	t.Run("active account passes", func(t *testing.T) {
		reason, ok := domain.EvaluateAccount(domain.AccountSnapshot{
			Approved: true,
			Status:   domain.StatusActive,
		}, now)
		require.True(t, ok)
		require.Empty(t, reason)
	})

	t.Run("active with future expiry passes", func(t *testing.T) {
		reason, ok := domain.EvaluateAccount(domain.AccountSnapshot{
			Approved:  true,
			Status:    domain.StatusActive,
			ExpiresAt: &future,
		}, now)
		require.True(t, ok)
		require.Empty(t, reason)
	})

	t.Run("unapproved is treated as not found", func(t *testing.T) {
		reason, ok := domain.EvaluateAccount(domain.AccountSnapshot{
			Approved: false,
			Status:   domain.StatusActive,
		}, now)
		require.False(t, ok)
		require.Equal(t, domain.DenyAccountNotFound, reason)
	})

	t.Run("suspended", func(t *testing.T) {
		reason, ok := domain.EvaluateAccount(domain.AccountSnapshot{
			Approved: true,
			Status:   domain.StatusSuspended,
		}, now)
		require.False(t, ok)
		require.Equal(t, domain.DenyAccountSuspended, reason)
	})

	t.Run("suspension wins over expiry", func(t *testing.T) {
		reason, ok := domain.EvaluateAccount(domain.AccountSnapshot{
			Approved:  true,
			Status:    domain.StatusSuspended,
			ExpiresAt: &past,
		}, now)
		require.False(t, ok)
		require.Equal(t, domain.DenyAccountSuspended, reason)
	})

	t.Run("deactivated", func(t *testing.T) {
		reason, ok := domain.EvaluateAccount(domain.AccountSnapshot{
			Approved: true,
			Status:   domain.StatusInactive,
		}, now)
		require.False(t, ok)
		require.Equal(t, domain.DenyAccountDeactivated, reason)
	})

	t.Run("deactivation wins over expiry", func(t *testing.T) {
		reason, ok := domain.EvaluateAccount(domain.AccountSnapshot{
			Approved:  true,
			Status:    domain.StatusInactive,
			ExpiresAt: &past,
		}, now)
		require.False(t, ok)
		require.Equal(t, domain.DenyAccountDeactivated, reason)
	})

	t.Run("expired", func(t *testing.T) {
		reason, ok := domain.EvaluateAccount(domain.AccountSnapshot{
			Approved:  true,
			Status:    domain.StatusActive,
			ExpiresAt: &past,
		}, now)
		require.False(t, ok)
		require.Equal(t, domain.DenyAccountExpired, reason)
	})
}

func TestDenialReasonMessages(t *testing.T) {
	reasons := []domain.DenialReason{
		domain.DenyNoToken,
		domain.DenyInvalidToken,
		domain.DenyExpiredToken,
		domain.DenyAccountNotFound,
		domain.DenyAccountSuspended,
		domain.DenyAccountDeactivated,
		domain.DenyAccountExpired,
	}
	for _, r := range reasons {
		require.NotEmpty(t, r.Message(), "reason %s must carry a message", r)
		require.NotEqual(t, "Access denied", r.Message())
	}

	require.Equal(t, "No token provided", domain.DenyNoToken.Message())
}

func TestIsTokenFailure(t *testing.T) {
	require.True(t, domain.DenyNoToken.IsTokenFailure())
	require.True(t, domain.DenyInvalidToken.IsTokenFailure())
	require.True(t, domain.DenyExpiredToken.IsTokenFailure())
	require.False(t, domain.DenyAccountSuspended.IsTokenFailure())
	require.False(t, domain.DenyAccountExpired.IsTokenFailure())
	require.False(t, domain.DenyAccountNotFound.IsTokenFailure())
}
