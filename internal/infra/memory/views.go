package memory

import (
	"sort"

	"training-hub-service/internal/domain"
)

// Materials returns a snapshot of all materials in insertion order.
func (s *Store) Materials() []domain.Material {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Material(nil), s.materials...)
}

// MaterialByID looks up a single material.
func (s *Store) MaterialByID(id string) (domain.Material, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.materials {
		if m.ID == id {
			return m, true
		}
	}
	return domain.Material{}, false
}

// Schedules returns a snapshot of all schedules.
func (s *Store) Schedules() []domain.Schedule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Schedule(nil), s.schedules...)
}

// Applications returns a snapshot of pending trainer applications.
func (s *Store) Applications() []domain.TrainerApplication {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.TrainerApplication(nil), s.applications...)
}

// Users returns a snapshot of all users.
func (s *Store) Users() []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.User(nil), s.users...)
}

// UserByID looks up a single user.
func (s *Store) UserByID(id string) (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return domain.User{}, false
}

// UserByEmail looks up a single user by email.
func (s *Store) UserByEmail(email string) (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, true
		}
	}
	return domain.User{}, false
}

// Trainers filters users by the TRAINER role, recomputed on every call.
func (s *Store) Trainers() []domain.User {
	return s.usersByRole(domain.RoleTrainer)
}

// Students filters users by the STUDENT role, recomputed on every call.
func (s *Store) Students() []domain.User {
	return s.usersByRole(domain.RoleStudent)
}

func (s *Store) usersByRole(role domain.Role) []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	filtered := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		if u.Role == role {
			filtered = append(filtered, u)
		}
	}
	return filtered
}

// Assessments returns a snapshot of all assessments.
func (s *Store) Assessments() []domain.Assessment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Assessment(nil), s.assessments...)
}

// StudentAttempts returns a snapshot of the attempt log.
func (s *Store) StudentAttempts() []domain.StudentAttempt {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.StudentAttempt(nil), s.attempts...)
}

// Bills returns a snapshot of all bills, newest first.
func (s *Store) Bills() []domain.TrainerBill {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.TrainerBill(nil), s.bills...)
}

// Colleges returns a snapshot of all colleges.
func (s *Store) Colleges() []domain.College {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.College(nil), s.colleges...)
}

// Leaderboard sums attempt scores per student name and sorts descending by
// total. Ties keep first-encountered insertion order.
func (s *Store) Leaderboard() []domain.LeaderboardEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.leaderboardLocked()
}

func (s *Store) leaderboardLocked() []domain.LeaderboardEntry {
	totals := make(map[string]int)
	order := make([]string, 0)
	for _, a := range s.attempts {
		if _, ok := totals[a.StudentName]; !ok {
			order = append(order, a.StudentName)
		}
		totals[a.StudentName] += a.Score
	}

	entries := make([]domain.LeaderboardEntry, 0, len(order))
	for _, name := range order {
		entries = append(entries, domain.LeaderboardEntry{StudentName: name, TotalScore: totals[name]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalScore > entries[j].TotalScore
	})
	return entries
}

// SubscribeLeaderboard returns a channel that receives leaderboard snapshots
// whenever an attempt is recorded. The caller must invoke the returned
// cancel function to avoid leaks.
func (s *Store) SubscribeLeaderboard() (<-chan []domain.LeaderboardEntry, func()) {
	ch := make(chan []domain.LeaderboardEntry, 8)

	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	initial := s.leaderboardLocked()
	s.mu.Unlock()

	ch <- initial

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subscribers[ch]; ok {
			delete(s.subscribers, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

func (s *Store) broadcastLocked() {
	lb := s.leaderboardLocked()
	for ch := range s.subscribers {
		select {
		case ch <- lb:
		default:
			// Drop the stale snapshot so a slow reader never blocks a write.
			select {
			case <-ch:
			default:
			}
			ch <- lb
		}
	}
}
