package notifications

import (
	"testing"
	"time"

	"clientintel/internal/dataset"
	"clientintel/internal/domain"
	"clientintel/internal/repository"
	"clientintel/internal/session"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func newTestFeed(t *testing.T) *Service {
	t.Helper()
	ds, err := dataset.Load()
	require.NoError(t, err)
	svc := NewService(repository.NewInMemoryFlagRepository(), ds, session.New(ds.Clients()[0]))
	anchor := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return anchor }
	return svc
}

func notificationIDs(notifications []domain.Notification) []string {
	ids := make([]string, 0, len(notifications))
	for _, n := range notifications {
		ids = append(ids, n.ID)
	}
	return ids
}

func Test_ForYou_Ordering(t *testing.T) {
	svc := newTestFeed(t)

	// critical first, then newest first within each priority band
	require.Equal(t, "", cmp.Diff([]string{
		"critical-compliance-1",
		"critical-market-1",
		"important-rebalance-1",
		"important-tax-1",
		"important-reviews-1",
		"important-report-1",
		"info-market-1",
		"info-milestone-1",
		"info-feature-1",
		"info-education-1",
	}, notificationIDs(svc.ForYou())))
}

func Test_All_NaturalOrder(t *testing.T) {
	svc := newTestFeed(t)

	all := svc.All()
	require.Len(t, all, 10)
	require.Equal(t, "critical-compliance-1", all[0].ID)
	require.Equal(t, "info-education-1", all[9].ID)
}

func Test_ReadState(t *testing.T) {
	t.Run("mark as read", func(t *testing.T) {
		svc := newTestFeed(t)
		require.Equal(t, 10, svc.UnreadCount())

		require.NoError(t, svc.MarkAsRead("critical-market-1"))
		require.Equal(t, 9, svc.UnreadCount())

		// idempotent
		require.NoError(t, svc.MarkAsRead("critical-market-1"))
		require.Equal(t, 9, svc.UnreadCount())
	})

	t.Run("mark all as read covers dismissed categories too", func(t *testing.T) {
		svc := newTestFeed(t)
		require.NoError(t, svc.DismissCategory("market"))
		require.NoError(t, svc.MarkAllAsRead())
		require.Equal(t, 0, svc.UnreadCount())

		// the dismissed item is read even though ForYou never showed it
		for _, n := range svc.All() {
			require.True(t, n.Read, n.ID)
		}
	})

	t.Run("unread count ignores archived items", func(t *testing.T) {
		svc := newTestFeed(t)
		require.NoError(t, svc.Archive("info-education-1"))
		require.Equal(t, 9, svc.UnreadCount())
	})
}

func Test_ArchiveLifecycle(t *testing.T) {
	svc := newTestFeed(t)

	require.NoError(t, svc.MarkAsRead("important-tax-1"))
	require.NoError(t, svc.Archive("important-tax-1"))

	t.Run("archived items leave the active views", func(t *testing.T) {
		require.NotContains(t, notificationIDs(svc.ForYou()), "important-tax-1")
		require.NotContains(t, notificationIDs(svc.All()), "important-tax-1")
		require.Equal(t, "", cmp.Diff([]string{"important-tax-1"}, notificationIDs(svc.Archived())))
	})

	t.Run("unarchive restores position and read state", func(t *testing.T) {
		require.NoError(t, svc.Unarchive("important-tax-1"))

		forYou := svc.ForYou()
		ids := notificationIDs(forYou)
		require.Equal(t, "important-tax-1", ids[3])
		for _, n := range forYou {
			if n.ID == "important-tax-1" {
				require.True(t, n.Read)
			}
		}
		require.Len(t, svc.Archived(), 0)
	})
}

func Test_DismissCategory(t *testing.T) {
	svc := newTestFeed(t)

	require.NoError(t, svc.DismissCategory("market"))

	t.Run("hidden from the curated view only", func(t *testing.T) {
		require.NotContains(t, notificationIDs(svc.ForYou()), "critical-market-1")
		require.Contains(t, notificationIDs(svc.All()), "critical-market-1")
	})

	t.Run("other categories unaffected", func(t *testing.T) {
		require.Len(t, svc.ForYou(), 9)
	})
}

func Test_ExecuteAction(t *testing.T) {
	t.Run("navigate switches tab and marks read", func(t *testing.T) {
		svc := newTestFeed(t)
		var target domain.Notification
		for _, n := range svc.All() {
			if n.ID == "important-tax-1" {
				target = n
			}
		}

		require.NoError(t, svc.ExecuteAction(target))
		require.Equal(t, domain.Tab_Gains, svc.Session.ActiveTab())
		require.Equal(t, 9, svc.UnreadCount())
	})

	t.Run("view selects the first grouped client", func(t *testing.T) {
		svc := newTestFeed(t)
		var target domain.Notification
		for _, n := range svc.All() {
			if n.ID == "info-milestone-1" {
				target = n
			}
		}

		require.NoError(t, svc.ExecuteAction(target))
		require.Equal(t, "client-2", svc.Session.SelectedClient().ID)
	})

	t.Run("generate and schedule only mark read", func(t *testing.T) {
		svc := newTestFeed(t)
		before := svc.Session.ActiveTab()
		var target domain.Notification
		for _, n := range svc.All() {
			if n.ID == "important-report-1" {
				target = n
			}
		}

		require.NoError(t, svc.ExecuteAction(target))
		require.Equal(t, before, svc.Session.ActiveTab())
		require.Equal(t, 9, svc.UnreadCount())
	})
}

func Test_DailyDigest(t *testing.T) {
	svc := newTestFeed(t)

	digest := svc.DailyDigest()
	require.Equal(t, 2, digest.Critical)
	require.Equal(t, 4, digest.Important)
	require.Equal(t, 10, digest.Total)
	require.Equal(t, "Today: 2 critical, 4 important items need attention", digest.Message)

	t.Run("archival shrinks the digest", func(t *testing.T) {
		require.NoError(t, svc.Archive("critical-market-1"))
		digest := svc.DailyDigest()
		require.Equal(t, 1, digest.Critical)
		require.Equal(t, 9, digest.Total)
	})
}

func Test_StatePersistsAcrossRestart(t *testing.T) {
	ds, err := dataset.Load()
	require.NoError(t, err)
	repo := repository.NewInMemoryFlagRepository()
	sess := session.New(ds.Clients()[0])

	first := NewService(repo, ds, sess)
	require.NoError(t, first.MarkAsRead("critical-compliance-1"))
	require.NoError(t, first.Archive("info-feature-1"))
	require.NoError(t, first.DismissCategory("education"))

	// ten seeded minus one archived minus one dismissed category leaves
	// eight in ForYou, one of which is read
	second := NewService(repo, ds, sess)
	require.Equal(t, 7, second.UnreadCount())
	require.Contains(t, notificationIDs(second.Archived()), "info-feature-1")
	require.NotContains(t, notificationIDs(second.ForYou()), "info-education-1")
}
