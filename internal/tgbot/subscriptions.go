package tgbot

import (
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
)

// subscriptions holds the chats notified about new games. The set is safe
// for concurrent use.
type subscriptions struct {
	chats mapset.Set[int64]
}

func newSubs() *subscriptions {
	return &subscriptions{
		chats: mapset.NewSet[int64](),
	}
}

func (s *subscriptions) Add(chatID int64) bool {
	return s.chats.Add(chatID)
}

func (s *subscriptions) Remove(chatID int64) bool {
	if !s.chats.Contains(chatID) {
		return false
	}
	s.chats.Remove(chatID)
	return true
}

func (s *subscriptions) ChatIDs() []int64 {
	ids := s.chats.ToSlice()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
