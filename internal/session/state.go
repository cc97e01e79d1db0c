// Package session holds the application-lifetime client state (user,
// workspaces, current workspace, quoted article) and the bootstrap sequence
// that populates it.
//
// State replaces ad-hoc globals with a single container passed by handle.
// Each field has one designated writer: bootstrap sets the user and the
// workspace list, the UI sets the current workspace and the quote slot.
package session

import (
	"fmt"
	"sync"

	"github.com/fyrsmithlabs/newsroom/internal/api"
	"github.com/fyrsmithlabs/newsroom/internal/news"
)

// State is the shared client state. Safe for concurrent use.
type State struct {
	mu         sync.RWMutex
	userID     string
	workspaces []api.Workspace
	current    api.Workspace
	hasCurrent bool
	quote      news.Article
	hasQuote   bool
}

// NewState returns an empty state.
func NewState() *State {
	return &State{}
}

// SetUser assigns the session user. Assigned once at bootstrap.
func (s *State) SetUser(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = userID
}

// User returns the session user id, empty until bootstrap completes.
func (s *State) User() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

// SetWorkspaces replaces the workspace list and re-validates the current
// selection: the previous selection is kept if still present, otherwise the
// first entry becomes current. Returns the now-current workspace.
func (s *State) SetWorkspaces(workspaces []api.Workspace) (api.Workspace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(workspaces) == 0 {
		return api.Workspace{}, fmt.Errorf("workspace list is empty")
	}

	s.workspaces = make([]api.Workspace, len(workspaces))
	copy(s.workspaces, workspaces)

	if s.hasCurrent {
		for _, ws := range s.workspaces {
			if ws.ID == s.current.ID {
				// Name may have changed server-side.
				s.current = ws
				return s.current, nil
			}
		}
	}
	s.current = s.workspaces[0]
	s.hasCurrent = true
	return s.current, nil
}

// Workspaces returns a copy of the workspace list.
func (s *State) Workspaces() []api.Workspace {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]api.Workspace, len(s.workspaces))
	copy(out, s.workspaces)
	return out
}

// CurrentWorkspace returns the current workspace, if one is selected.
func (s *State) CurrentWorkspace() (api.Workspace, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.hasCurrent
}

// SetCurrentWorkspace selects a workspace by id. Membership in the known
// list is enforced at assignment. Reports whether the selection changed;
// callers reset all workspace-scoped state on change.
func (s *State) SetCurrentWorkspace(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ws := range s.workspaces {
		if ws.ID == id {
			changed := !s.hasCurrent || s.current.ID != id
			s.current = ws
			s.hasCurrent = true
			return changed, nil
		}
	}
	return false, fmt.Errorf("unknown workspace id %q", id)
}

// SetQuote attaches an article to the next outgoing chat message,
// replacing any previous quote.
func (s *State) SetQuote(article news.Article) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quote = article
	s.hasQuote = true
}

// ClearQuote empties the quoted-article slot.
func (s *State) ClearQuote() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quote = news.Article{}
	s.hasQuote = false
}

// Quote returns the quoted article, if one is set.
func (s *State) Quote() (news.Article, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.quote, s.hasQuote
}
