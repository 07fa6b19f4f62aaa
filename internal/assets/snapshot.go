package assets

import (
	"strings"
	"time"

	"github.com/devin-hart/coinmage/internal/model"
)

// snapshot is an immutable catalog plus lookup tables, all keyed by lower-case text.
type snapshot struct {
	records   []model.AssetRecord
	bySymbol  map[string][]int // catalog positions, in catalog order
	byID      map[string]int
	byName    map[string]int // first occurrence
	fetchedAt time.Time
}

func newSnapshot(records []model.AssetRecord, fetchedAt time.Time) *snapshot {
	s := &snapshot{
		records:   records,
		bySymbol:  make(map[string][]int),
		byID:      make(map[string]int, len(records)),
		byName:    make(map[string]int, len(records)),
		fetchedAt: fetchedAt,
	}

	for i, r := range records {
		sym := strings.ToLower(r.Symbol)
		s.bySymbol[sym] = append(s.bySymbol[sym], i)

		id := strings.ToLower(r.ID)
		if _, ok := s.byID[id]; !ok {
			s.byID[id] = i
		}

		name := strings.ToLower(r.Name)
		if _, ok := s.byName[name]; !ok {
			s.byName[name] = i
		}
	}

	return s
}

// lookup applies the catalog rules (symbol, id, name) to a normalized key.
func (s *snapshot) lookup(key string) (string, bool) {
	if hits := s.bySymbol[key]; len(hits) > 0 {
		return s.pickSymbolMatch(hits), true
	}
	if i, ok := s.byID[key]; ok {
		return s.records[i].ID, true
	}
	if i, ok := s.byName[key]; ok {
		return s.records[i].ID, true
	}
	return "", false
}

// pickSymbolMatch chooses among catalog entries sharing a symbol.
// TODO: the keyword tie-break only makes sense for BTC look-alikes; decide on a
// general policy (e.g. market cap rank) once the catalog carries ranks.
func (s *snapshot) pickSymbolMatch(hits []int) string {
	if len(hits) == 1 {
		return s.records[hits[0]].ID
	}
	for _, i := range hits {
		if strings.Contains(strings.ToLower(s.records[i].Name), preferredNameKeyword) {
			return s.records[i].ID
		}
	}
	return s.records[hits[0]].ID
}
