package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/dcastillo/pageant-scoring/internal/domain/category"
	"github.com/dcastillo/pageant-scoring/internal/domain/contestant"
	"github.com/dcastillo/pageant-scoring/internal/domain/judge"
	"github.com/dcastillo/pageant-scoring/internal/domain/score"
	"github.com/dcastillo/pageant-scoring/internal/platform/cache"
	"github.com/dcastillo/pageant-scoring/internal/platform/logging"
)

// JudgeTotal is one judge's weighted category total for a contestant.
type JudgeTotal struct {
	JudgeID   string
	JudgeName string
	Total     float64
}

// ContestantStanding is one row of a category or overall summary, already
// ranked. Rank uses competition ranking: tied contestants share the highest
// rank in the tie and the next distinct score resumes at its list position,
// so totals 90, 90, 85, 80 rank 1, 1, 3, 4.
type ContestantStanding struct {
	ContestantID string
	Number       int
	FullName     string
	Average      float64
	Rank         int
	Tied         bool
	JudgeScores  []JudgeTotal
}

// CategorySummary is the live standings of one division in one category.
type CategorySummary struct {
	CategoryID string
	Label      string
	Division   contestant.Division
	Standings  []ContestantStanding
}

// OverallSummary averages each contestant's category averages across every
// category, for the final placement board.
type OverallSummary struct {
	Division  contestant.Division
	Standings []ContestantStanding
}

// TabulationService is the read side: it folds raw score rows into ranked
// standings. It never writes; the score path invalidates its cache.
type TabulationService struct {
	scoreRepo      score.Repository
	contestantRepo contestant.Repository
	judgeRepo      judge.Repository
	categoryRepo   category.Repository
	summaryCache   *cache.Store
	logger         *logging.Logger
}

func NewTabulationService(
	scoreRepo score.Repository,
	contestantRepo contestant.Repository,
	judgeRepo judge.Repository,
	categoryRepo category.Repository,
	summaryCache *cache.Store,
	logger *logging.Logger,
) *TabulationService {
	if logger == nil {
		logger = logging.Default()
	}
	return &TabulationService{
		scoreRepo:      scoreRepo,
		contestantRepo: contestantRepo,
		judgeRepo:      judgeRepo,
		categoryRepo:   categoryRepo,
		summaryCache:   summaryCache,
		logger:         logger,
	}
}

// Summarize computes the ranked standings of one division in one category.
// Judges who have not submitted for a contestant are excluded from that
// contestant's average rather than counted as zero.
func (s *TabulationService) Summarize(ctx context.Context, categoryID string, division contestant.Division) (CategorySummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TabulationService.Summarize")
	defer span.End()

	if s.summaryCache != nil {
		key := fmt.Sprintf("%s%s:%s", summaryCachePrefix, categoryID, division)
		cached, err := s.summaryCache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
			return s.summarize(ctx, categoryID, division)
		})
		if err != nil {
			return CategorySummary{}, err
		}
		return cached.(CategorySummary), nil
	}
	return s.summarize(ctx, categoryID, division)
}

func (s *TabulationService) summarize(ctx context.Context, categoryID string, division contestant.Division) (CategorySummary, error) {
	cat, ok, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return CategorySummary{}, fmt.Errorf("load category: %w", err)
	}
	if !ok {
		return CategorySummary{}, fmt.Errorf("%w: category %s", ErrNotFound, categoryID)
	}

	contestants, err := s.contestantRepo.ListByDivision(ctx, division)
	if err != nil {
		return CategorySummary{}, fmt.Errorf("list contestants: %w", err)
	}
	judges, err := s.judgeRepo.ListByDivision(ctx, division)
	if err != nil {
		return CategorySummary{}, fmt.Errorf("list judges: %w", err)
	}
	rows, err := s.scoreRepo.ListByCategory(ctx, categoryID)
	if err != nil {
		return CategorySummary{}, fmt.Errorf("list category scores: %w", err)
	}

	// judge -> contestant -> weighted total
	totals := make(map[string]map[string]float64)
	for _, row := range rows {
		perJudge, ok := totals[row.JudgeID]
		if !ok {
			perJudge = make(map[string]float64)
			totals[row.JudgeID] = perJudge
		}
		perJudge[row.ContestantID] += row.Weighted
	}

	standings := make([]ContestantStanding, 0, len(contestants))
	for _, cont := range contestants {
		row := ContestantStanding{
			ContestantID: cont.ID,
			Number:       cont.Number,
			FullName:     cont.FullName,
		}
		sum := 0.0
		for _, j := range judges {
			total, ok := totals[j.ID][cont.ID]
			if !ok {
				continue
			}
			sum += total
			row.JudgeScores = append(row.JudgeScores, JudgeTotal{
				JudgeID:   j.ID,
				JudgeName: j.DisplayName,
				Total:     total,
			})
		}
		if n := len(row.JudgeScores); n > 0 {
			row.Average = sum / float64(n)
		}
		standings = append(standings, row)
	}

	rankStandings(standings)
	return CategorySummary{
		CategoryID: categoryID,
		Label:      cat.Label,
		Division:   division,
		Standings:  standings,
	}, nil
}

// Overall averages each contestant's per-category averages across all
// categories, then ranks the division.
func (s *TabulationService) Overall(ctx context.Context, division contestant.Division) (OverallSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TabulationService.Overall")
	defer span.End()

	if s.summaryCache != nil {
		key := fmt.Sprintf("%soverall:%s", summaryCachePrefix, division)
		cached, err := s.summaryCache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
			return s.overall(ctx, division)
		})
		if err != nil {
			return OverallSummary{}, err
		}
		return cached.(OverallSummary), nil
	}
	return s.overall(ctx, division)
}

func (s *TabulationService) overall(ctx context.Context, division contestant.Division) (OverallSummary, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return OverallSummary{}, fmt.Errorf("list categories: %w", err)
	}
	contestants, err := s.contestantRepo.ListByDivision(ctx, division)
	if err != nil {
		return OverallSummary{}, fmt.Errorf("list contestants: %w", err)
	}

	averages := make(map[string][]float64, len(contestants))
	for _, cat := range categories {
		summary, err := s.summarize(ctx, cat.ID, division)
		if err != nil {
			return OverallSummary{}, err
		}
		for _, row := range summary.Standings {
			if len(row.JudgeScores) == 0 {
				continue
			}
			averages[row.ContestantID] = append(averages[row.ContestantID], row.Average)
		}
	}

	standings := make([]ContestantStanding, 0, len(contestants))
	for _, cont := range contestants {
		row := ContestantStanding{
			ContestantID: cont.ID,
			Number:       cont.Number,
			FullName:     cont.FullName,
		}
		if per := averages[cont.ID]; len(per) > 0 {
			sum := 0.0
			for _, avg := range per {
				sum += avg
			}
			row.Average = sum / float64(len(per))
		}
		standings = append(standings, row)
	}

	rankStandings(standings)
	return OverallSummary{Division: division, Standings: standings}, nil
}

// rankStandings sorts by average descending (contestant number ascending on
// exact ties, for a stable board) and assigns competition ranks. Tie
// detection compares the computed averages before any display rounding.
func rankStandings(standings []ContestantStanding) {
	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].Average != standings[j].Average {
			return standings[i].Average > standings[j].Average
		}
		return standings[i].Number < standings[j].Number
	})
	for i := range standings {
		if i > 0 && standings[i].Average == standings[i-1].Average {
			standings[i].Rank = standings[i-1].Rank
			standings[i].Tied = true
			standings[i-1].Tied = true
			continue
		}
		standings[i].Rank = i + 1
	}
}
