// Package notifications maintains the advisor's notification feed:
// priority-ordered views, read/archive state, category dismissal, and the
// daily digest rollup.
package notifications

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"clientintel/internal/dataset"
	"clientintel/internal/domain"
	"clientintel/internal/repository"
	"clientintel/internal/session"

	"go.uber.org/zap"
)

const (
	readKey                = "dash-read-notifications"
	archivedKey            = "dash-archived-notifications"
	dismissedCategoriesKey = "dash-dismissed-notification-categories"
)

type Service struct {
	FlagRepository repository.FlagRepository
	Dataset        *dataset.Dataset
	Session        *session.Session

	// Now anchors seed timestamps; tests pin it
	Now func() time.Time

	mu                  sync.Mutex
	readIDs             map[string]bool
	archivedIDs         map[string]bool
	dismissedCategories map[string]bool
}

func NewService(flagRepo repository.FlagRepository, ds *dataset.Dataset, sess *session.Session) *Service {
	return &Service{
		FlagRepository:      flagRepo,
		Dataset:             ds,
		Session:             sess,
		Now:                 time.Now,
		readIDs:             toSet(repository.ReadStringSlice(flagRepo, readKey)),
		archivedIDs:         toSet(repository.ReadStringSlice(flagRepo, archivedKey)),
		dismissedCategories: toSet(repository.ReadStringSlice(flagRepo, dismissedCategoriesKey)),
	}
}

// all returns the seeded set with current read/archived flags applied, in
// original insertion order.
func (s *Service) all() []domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	notifications := seedNotifications(s.Now())
	for i := range notifications {
		notifications[i].Read = s.readIDs[notifications[i].ID]
		notifications[i].Archived = s.archivedIDs[notifications[i].ID]
	}
	return notifications
}

// ForYou is the curated view: non-archived, categories not dismissed,
// critical first, then newest first within a priority. Ties keep original
// insertion order.
func (s *Service) ForYou() []domain.Notification {
	out := []domain.Notification{}
	for _, n := range s.all() {
		s.mu.Lock()
		dismissed := s.dismissedCategories[n.Category]
		s.mu.Unlock()
		if n.Archived || dismissed {
			continue
		}
		out = append(out, n)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority.Rank() != out[j].Priority.Rank() {
			return out[i].Priority.Rank() < out[j].Priority.Rank()
		}
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

// All is every non-archived notification in natural order.
func (s *Service) All() []domain.Notification {
	out := []domain.Notification{}
	for _, n := range s.all() {
		if !n.Archived {
			out = append(out, n)
		}
	}
	return out
}

func (s *Service) Archived() []domain.Notification {
	out := []domain.Notification{}
	for _, n := range s.all() {
		if n.Archived {
			out = append(out, n)
		}
	}
	return out
}

// UnreadCount counts unread items within ForYou specifically, not All.
func (s *Service) UnreadCount() int {
	count := 0
	for _, n := range s.ForYou() {
		if !n.Read {
			count++
		}
	}
	return count
}

func (s *Service) MarkAsRead(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readIDs[id] = true
	return repository.WriteStringSlice(s.FlagRepository, readKey, keys(s.readIDs))
}

// MarkAllAsRead marks every known notification id, not just the ones
// currently visible in ForYou.
func (s *Service) MarkAllAsRead() error {
	seed := seedNotifications(s.Now())
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range seed {
		s.readIDs[n.ID] = true
	}
	return repository.WriteStringSlice(s.FlagRepository, readKey, keys(s.readIDs))
}

func (s *Service) Archive(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.archivedIDs[id] = true
	return repository.WriteStringSlice(s.FlagRepository, archivedKey, keys(s.archivedIDs))
}

func (s *Service) Unarchive(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.archivedIDs, id)
	return repository.WriteStringSlice(s.FlagRepository, archivedKey, keys(s.archivedIDs))
}

// DismissCategory hides a whole category from ForYou going forward,
// independent of read or archive state.
func (s *Service) DismissCategory(category string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dismissedCategories[category] = true
	return repository.WriteStringSlice(s.FlagRepository, dismissedCategoriesKey, keys(s.dismissedCategories))
}

// ExecuteAction marks the notification read, then dispatches its action:
// navigate to a tab, simulate report generation or scheduling, or select
// the first client named in the group items.
func (s *Service) ExecuteAction(n domain.Notification) error {
	if err := s.MarkAsRead(n.ID); err != nil {
		return err
	}

	switch n.ActionType {
	case domain.NotificationAction_Navigate:
		if n.ActionTarget != "" {
			s.Session.SetActiveTab(domain.Tab(n.ActionTarget))
		}
	case domain.NotificationAction_Generate:
		zap.S().Infow("generating report", "notification", n.Title)
	case domain.NotificationAction_Schedule:
		zap.S().Infow("opening scheduler", "notification", n.Title)
	case domain.NotificationAction_View:
		if len(n.GroupItems) > 0 {
			if client, ok := s.Dataset.ClientByName(n.GroupItems[0]); ok {
				s.Session.SetSelectedClient(client)
			}
		}
	}
	return nil
}

// DailyDigest rolls up the ForYou feed into outstanding counts and a
// one-line summary.
func (s *Service) DailyDigest() domain.DailyDigest {
	forYou := s.ForYou()
	digest := domain.DailyDigest{Total: len(forYou)}
	for _, n := range forYou {
		switch n.Priority {
		case domain.NotificationPriority_Critical:
			digest.Critical++
		case domain.NotificationPriority_Important:
			digest.Important++
		}
	}
	digest.Message = fmt.Sprintf("Today: %d critical, %d important items need attention", digest.Critical, digest.Important)
	return digest
}

func toSet(ids []string) map[string]bool {
	set := map[string]bool{}
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func keys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}
