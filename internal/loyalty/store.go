// Package loyalty keeps point balances for the session. Durable storage
// of balances is an external concern; the store itself never persists.
package loyalty

import "burger-pos/internal/domain"

type Store struct {
	balances map[string]int
}

func NewStore() *Store {
	return &Store{balances: make(map[string]int)}
}

// Ensure registers an id with a zero balance if it is new.
func (s *Store) Ensure(id string) {
	if _, ok := s.balances[id]; !ok {
		s.balances[id] = 0
	}
}

func (s *Store) Balance(id string) int { return s.balances[id] }

// CanRedeem reports whether the account holds at least one redemption's
// worth of points.
func (s *Store) CanRedeem(id string, points int) bool {
	return s.balances[id] >= points
}

// Redeem spends exactly the given points. Balances never go negative.
func (s *Store) Redeem(id string, points int) error {
	if s.balances[id] < points {
		return domain.ErrInsufficientPoints
	}
	s.balances[id] -= points
	return nil
}

// Credit awards earned points after settlement.
func (s *Store) Credit(id string, points int) int {
	s.balances[id] += points
	return s.balances[id]
}
