package search

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/cinefind/internal/domain/catalog"
	logpkg "github.com/kailas-cloud/cinefind/internal/logger"
)

const (
	narrationPicks   = 5
	emptyNarration   = "추천 영화를 찾았습니다!"
	fallbackTemplate = `"%s" 검색 결과를 찾았습니다!`
)

// listing renders the top picks, one per line, for the narrator prompt.
func listing(movies []catalog.Movie) string {
	var b strings.Builder
	for i, m := range movies {
		if i == narrationPicks {
			break
		}
		year := "연도 미상"
		if y := m.Year(); y > 0 {
			year = strconv.Itoa(y)
		}
		overview := m.Overview
		if overview == "" {
			overview = "설명 없음"
		}
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "- %s (%s): %s", m.Title, year, overview)
	}
	return b.String()
}

// fallbackNarration is the message used when the narrator is unavailable.
func fallbackNarration(text string) string {
	return fmt.Sprintf(fallbackTemplate, text)
}

// annotate asks the narrator for a short recommendation. It never fails.
func annotate(ctx context.Context, narr Narrator, text string, movies []catalog.Movie) string {
	if narr == nil {
		return fallbackNarration(text)
	}

	out, err := narr.Narrate(ctx, text, listing(movies))
	if err != nil {
		logpkg.FromContext(ctx).Warn("narration failed, using template", zap.Error(err))
		return fallbackNarration(text)
	}
	if out = strings.TrimSpace(out); out == "" {
		return emptyNarration
	}
	return out
}
