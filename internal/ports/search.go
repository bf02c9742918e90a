package ports

import (
	"lcl_quote/internal/model"
	"sort"
	"strings"
)

const (
	scoreExact     = 100
	scorePrefix    = 90
	scoreSubstring = 80
	scorePerRune   = 10
	scoreFullMatch = 20
	minScore       = 10

	// MaxResults - сколько портов возвращает поиск.
	MaxResults = 10
)

// Search ранжирует порты по запросу и возвращает не более MaxResults лучших.
// Пустой запрос дает пустой результат.
func Search(query string, ports []model.Port) []model.Port {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []model.Port{}
	}

	type scored struct {
		port  model.Port
		score int
	}

	matches := make([]scored, 0)
	for _, p := range ports {
		s := max(score(q, p.Name), score(q, p.Code), score(q, p.Country))
		if s > minScore {
			matches = append(matches, scored{port: p, score: s})
		}
	}

	// Стабильная сортировка сохраняет порядок справочника при равных баллах
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	if len(matches) > MaxResults {
		matches = matches[:MaxResults]
	}

	result := make([]model.Port, 0, len(matches))
	for _, m := range matches {
		result = append(result, m.port)
	}
	return result
}

// score оценивает одно поле; query уже приведен к нижнему регистру.
func score(query, field string) int {
	f := strings.ToLower(field)
	switch {
	case f == query:
		return scoreExact
	case strings.HasPrefix(f, query):
		return scorePrefix
	case strings.Contains(f, query):
		return scoreSubstring
	}
	return subsequenceScore(query, f)
}

// subsequenceScore начисляет очки за символы запроса, найденные в поле по порядку.
func subsequenceScore(query, field string) int {
	q := []rune(query)
	matched := 0
	for _, r := range field {
		if matched < len(q) && r == q[matched] {
			matched++
		}
	}

	s := matched * scorePerRune
	if matched == len(q) {
		s += scoreFullMatch
	}
	return s
}
