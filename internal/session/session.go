// Package session holds the advisor's per-session viewing state: which
// client and tab are in view and the context mode. It is the single
// mutable collaborator the engine writes back to when a result,
// notification, or chat action navigates somewhere.
package session

import (
	"clientintel/internal/domain"
	"sync"
)

// Navigator is the navigation callback surface consumed by result and
// notification actions.
type Navigator interface {
	SetActiveTab(tab domain.Tab)
	SetSelectedClient(client domain.Client)
}

type Session struct {
	mu             sync.Mutex
	selectedClient domain.Client
	activeTab      domain.Tab
	contextMode    domain.ContextMode
	showHelpPanel  bool
	tabListeners   []func(domain.Tab)
}

func New(initialClient domain.Client) *Session {
	return &Session{
		selectedClient: initialClient,
		activeTab:      domain.Tab_Dashboard,
		contextMode:    domain.ContextMode_All,
	}
}

// OnTabChange registers a listener invoked after every tab change. The
// insight engine uses it to reset session dismissals.
func (s *Session) OnTabChange(fn func(domain.Tab)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tabListeners = append(s.tabListeners, fn)
}

func (s *Session) SetActiveTab(tab domain.Tab) {
	s.mu.Lock()
	if s.activeTab == tab {
		s.mu.Unlock()
		return
	}
	s.activeTab = tab
	listeners := make([]func(domain.Tab), len(s.tabListeners))
	copy(listeners, s.tabListeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(tab)
	}
}

func (s *Session) ActiveTab() domain.Tab {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeTab
}

func (s *Session) SetSelectedClient(client domain.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedClient = client
}

func (s *Session) SelectedClient() domain.Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedClient
}

func (s *Session) SetContextMode(mode domain.ContextMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contextMode = mode
}

func (s *Session) ContextMode() domain.ContextMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.contextMode
}

func (s *Session) SetShowHelpPanel(show bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.showHelpPanel = show
}

func (s *Session) ShowHelpPanel() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.showHelpPanel
}
