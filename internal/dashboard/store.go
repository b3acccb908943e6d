package dashboard

import (
	"sync"
	"time"

	"github.com/lojf/kindernet/internal/events"
	"github.com/lojf/kindernet/internal/models"
)

// Store holds the current state for one dashboard session and serializes
// dispatches: every action is applied completely before the next one.
type Store struct {
	mu    sync.Mutex
	state models.State
	env   Env
	loc   *time.Location
}

// Result is the outcome of a successful dispatch. IDs lists the ids issued
// while applying the action, in creation order (e.g. kindergarten then
// director for CREATE_KINDERGARTEN, student then parent user for ADD_STUDENT).
type Result struct {
	State models.State
	IDs   []string
}

func NewStore(initial models.State, env Env, loc *time.Location) *Store {
	if loc == nil {
		loc = time.UTC
	}
	return &Store{state: initial, env: env.WithDefaults(), loc: loc}
}

// State returns the current snapshot.
func (s *Store) State() models.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Now is the store clock in the store location.
func (s *Store) Now() time.Time {
	return s.env.Clock.Now().In(s.loc)
}

func (s *Store) Location() *time.Location { return s.loc }

// Dispatch applies a to the current state. On failure the state is kept
// and the error is returned.
func (s *Store) Dispatch(a Action) (Result, error) {
	s.mu.Lock()
	ids := &recordingIDs{next: s.env.IDs}
	env := s.env
	env.IDs = ids
	next, err := Apply(s.state, a, env)
	if err != nil {
		cur := s.state
		s.mu.Unlock()
		return Result{State: cur}, err
	}
	s.state = next
	s.mu.Unlock()

	if hook := events.OnApplied; hook != nil {
		hook(string(a.Kind()), next)
	}
	return Result{State: next, IDs: ids.ids}, nil
}

// Summary is Summarize for the current month in the store location.
func (s *Store) Summary(teacherID string) []models.TeacherAttendanceSummary {
	return Summarize(s.State(), teacherID, s.Now())
}
