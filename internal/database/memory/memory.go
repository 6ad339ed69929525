// Package memory содержит потокобезопасные in-memory реализации портов хранилища.
// Используются в тестах вместо PostgreSQL; семантика ошибок совпадает с
// боевыми бэкендами (domain.ErrNotFound на отсутствующих записях).
package memory

import (
	"sort"
	"sync"
	"time"
)

// store — общая часть всех in-memory хранилищ: мьютекс и счетчик ID.
type store struct {
	mu     sync.RWMutex
	nextID int64
}

func (s *store) allocateID() int64 {
	s.nextID++
	return s.nextID
}

func now() time.Time {
	return time.Now()
}

// sortedIDs возвращает ключи карты по возрастанию — имитация ORDER BY id.
func sortedIDs[V any](m map[int64]V) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
