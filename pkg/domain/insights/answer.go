package insights

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/felixgeelhaar/ricemill/pkg/domain/ranking"
	"github.com/felixgeelhaar/ricemill/pkg/domain/roi"
	"github.com/felixgeelhaar/ricemill/pkg/domain/scoring"
	"github.com/shopspring/decimal"
)

// Context carries everything the handlers answer from: the ranked records,
// the financial projections for the head of the ranking, and the configured
// quarterly capacity.
type Context struct {
	Records     []*ranking.ScoreRecord
	Projections []roi.Projection
	Capacity    float64
}

// Result is a classified query and its rendered answer.
type Result struct {
	Kind   QueryKind `json:"kind"`
	Answer string    `json:"answer"`
}

var (
	quarterPattern = regexp.MustCompile(`(?i)Q[1-4]\s*20\d{2}`)
	spacePattern   = regexp.MustCompile(`\s+`)
)

// Answer classifies the query and renders the matching report. It never
// fails: an empty workspace produces an answer saying so.
func Answer(query string, ctx Context) Result {
	kind := Classify(query)
	if len(ctx.Records) == 0 {
		return Result{Kind: kind, Answer: "No scored features yet. Run the scoring pipeline first."}
	}

	var answer string
	switch kind {
	case QueryPriority:
		answer = answerPriority(query, ctx)
	case QueryTimeline:
		answer = answerTimeline(query, ctx)
	case QueryROI:
		answer = answerROI(ctx)
	case QueryComparison:
		answer = answerComparison(query, ctx)
	case QueryCapacity:
		answer = answerCapacity(ctx)
	case QueryRisk:
		answer = answerRisk(ctx)
	default:
		answer = answerGeneral(ctx)
	}
	return Result{Kind: kind, Answer: answer}
}

func featureNames(records []*ranking.ScoreRecord) []string {
	names := make([]string, len(records))
	for i, r := range records {
		names[i] = r.Feature
	}
	return names
}

func findRecord(records []*ranking.ScoreRecord, feature string) *ranking.ScoreRecord {
	for _, r := range records {
		if r.Feature == feature {
			return r
		}
	}
	return nil
}

func answerPriority(query string, ctx Context) string {
	var b strings.Builder

	if feature := ExtractFeature(query, featureNames(ctx.Records)); feature != "" {
		r := findRecord(ctx.Records, feature)
		fmt.Fprintf(&b, "Priority analysis: %s\n\n", r.Feature)
		fmt.Fprintf(&b, "Rank:       #%d of %d\n", r.Rank, len(ctx.Records))
		fmt.Fprintf(&b, "Composite:  %.2f (RICE %.2f, model %.2f)\n", r.Composite, r.RICE, r.ML)
		fmt.Fprintf(&b, "Quarter:    %s\n", r.Quarter)
		fmt.Fprintf(&b, "Reach:      %.0f users/requests\n", r.Reach)
		fmt.Fprintf(&b, "Impact:     %.2f/3\n", r.Impact)
		fmt.Fprintf(&b, "Confidence: %.0f%%\n", r.Confidence*100)
		fmt.Fprintf(&b, "Effort:     %.0f story points\n\n", r.Effort)

		switch {
		case r.Rank <= 5:
			b.WriteString("High priority: a candidate for immediate implementation.")
		case r.Rank <= 10:
			b.WriteString("Medium priority: a good candidate for next quarter.")
		default:
			b.WriteString("Lower priority: consider for a future roadmap.")
		}
		return b.String()
	}

	top := ctx.Records
	if len(top) > 8 {
		top = top[:8]
	}

	b.WriteString("Top priorities (composite = RICE + model blend)\n\n")
	var totalEffort, totalComposite float64
	for _, r := range top {
		fmt.Fprintf(&b, "%2d. %s\n    score %.2f | effort %.0f SP | %s\n", r.Rank, r.Feature, r.Composite, r.Effort, r.Quarter)
		totalEffort += r.Effort
		totalComposite += r.Composite
	}
	fmt.Fprintf(&b, "\nAverage score %.2f, total effort %.0f story points.", totalComposite/float64(len(top)), totalEffort)
	return b.String()
}

func answerTimeline(query string, ctx Context) string {
	var b strings.Builder

	if m := quarterPattern.FindString(query); m != "" {
		quarter := strings.ToUpper(spacePattern.ReplaceAllString(m, " "))
		if !strings.Contains(quarter, " ") {
			quarter = quarter[:2] + " " + quarter[2:]
		}

		var planned []*ranking.ScoreRecord
		for _, r := range ctx.Records {
			if strings.EqualFold(r.Quarter, quarter) {
				planned = append(planned, r)
			}
		}

		fmt.Fprintf(&b, "%s roadmap\n\n", quarter)
		if len(planned) == 0 {
			fmt.Fprintf(&b, "No features are currently planned for %s.", quarter)
			return b.String()
		}

		var effort float64
		for i, r := range planned {
			if i < 10 {
				fmt.Fprintf(&b, "%2d. %s (score %.2f, %.0f SP)\n", i+1, r.Feature, r.Composite, r.Effort)
			}
			effort += r.Effort
		}
		fmt.Fprintf(&b, "\n%d features, %.0f story points total.", len(planned), effort)

		capacity := ctx.Capacity
		if capacity <= 0 {
			capacity = ranking.DefaultQuarterCapacity
		}
		if effort > capacity {
			b.WriteString("\nCapacity alert: this quarter is overloaded, consider redistributing features.")
		}
		return b.String()
	}

	loads := ranking.AnalyzeCapacity(ctx.Records, ctx.Capacity)
	b.WriteString("Roadmap timeline\n\n")
	for _, load := range loads {
		avg := 0.0
		for _, name := range load.Features {
			if r := findRecord(ctx.Records, name); r != nil {
				avg += r.Composite
			}
		}
		avg /= float64(len(load.Features))
		fmt.Fprintf(&b, "%s: %d features, %.0f SP, avg score %.2f\n", load.Quarter, len(load.Features), load.Effort, avg)
	}
	return strings.TrimRight(b.String(), "\n")
}

func answerROI(ctx Context) string {
	if len(ctx.Projections) == 0 {
		return "ROI analysis unavailable: add revenue impact data to the feedback records."
	}

	cost, revenue := roi.Totals(ctx.Projections)
	var b strings.Builder
	b.WriteString("ROI analysis\n\n")
	fmt.Fprintf(&b, "Total investment:         $%s\n", cost.StringFixed(0))
	fmt.Fprintf(&b, "Projected annual revenue: $%s\n", revenue.StringFixed(0))
	if cost.IsPositive() {
		portfolio := revenue.Sub(cost).Div(cost).Mul(decimal.NewFromInt(100))
		fmt.Fprintf(&b, "Portfolio ROI:            %s%%\n", portfolio.StringFixed(1))
	}

	best := make([]roi.Projection, len(ctx.Projections))
	copy(best, ctx.Projections)
	sort.Slice(best, func(i, j int) bool {
		return best[i].ROIPercent.GreaterThan(best[j].ROIPercent)
	})
	if len(best) > 5 {
		best = best[:5]
	}

	b.WriteString("\nHighest ROI features:\n")
	for i, p := range best {
		fmt.Fprintf(&b, "%d. %s: ROI %s%%, invest $%s, payback %s months\n",
			i+1, p.Feature, p.ROIPercent.StringFixed(1), p.DevelopmentCost.StringFixed(0), p.PaybackMonths.StringFixed(1))
	}

	highRisk := 0
	for _, p := range ctx.Projections {
		if p.Risk > 60 {
			highRisk++
		}
	}
	if highRisk > 0 {
		fmt.Fprintf(&b, "\n%d of these features carry elevated risk scores.", highRisk)
	}
	return strings.TrimRight(b.String(), "\n")
}

func answerComparison(query string, ctx Context) string {
	mentioned := ExtractFeatures(query, featureNames(ctx.Records))
	if len(mentioned) < 2 {
		return "Comparison unavailable: name at least two features to compare."
	}
	if len(mentioned) > 4 {
		mentioned = mentioned[:4]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Comparing %s\n\n", strings.Join(mentioned, ", "))

	var winner *ranking.ScoreRecord
	for _, name := range mentioned {
		r := findRecord(ctx.Records, name)
		fmt.Fprintf(&b, "%-30s rank #%d, score %.2f, %.0f SP, %s\n", r.Feature, r.Rank, r.Composite, r.Effort, r.Quarter)
		if winner == nil || r.Composite > winner.Composite {
			winner = r
		}
	}

	fmt.Fprintf(&b, "\nRecommendation: %s (highest composite score %.2f, rank #%d).", winner.Feature, winner.Composite, winner.Rank)
	return b.String()
}

func answerCapacity(ctx Context) string {
	loads := ranking.AnalyzeCapacity(ctx.Records, ctx.Capacity)

	var b strings.Builder
	b.WriteString("Team capacity analysis\n\n")
	for _, load := range loads {
		fmt.Fprintf(&b, "%s: %d features, %.0f SP (%.0f%% of capacity, %s)\n",
			load.Quarter, len(load.Features), load.Effort, load.Utilization, load.Status)
	}

	type teamLoad struct {
		features int
		effort   float64
	}
	teams := make(map[string]*teamLoad)
	var total float64
	for _, r := range ctx.Records {
		t, ok := teams[r.Team]
		if !ok {
			t = &teamLoad{}
			teams[r.Team] = t
		}
		t.features++
		t.effort += r.Effort
		total += r.Effort
	}

	names := make([]string, 0, len(teams))
	for name := range teams {
		names = append(names, name)
	}
	sort.Strings(names)

	b.WriteString("\nTeam workload distribution:\n")
	for _, name := range names {
		t := teams[name]
		fmt.Fprintf(&b, "%s: %d features, %.0f story points\n", name, t.features, t.effort)
	}

	capacity := ctx.Capacity
	if capacity <= 0 {
		capacity = ranking.DefaultQuarterCapacity
	}
	fmt.Fprintf(&b, "\nTotal roadmap effort: %.0f SP, quarterly average %.0f SP.", total, total/ranking.PlanningQuarters)
	switch {
	case total > capacity*ranking.PlanningQuarters:
		b.WriteString("\nOver capacity: extend the timeline or grow the team.")
	case total > capacity*ranking.PlanningQuarters*0.8:
		b.WriteString("\nNear capacity: monitor progress closely.")
	default:
		b.WriteString("\nWithin capacity.")
	}
	return b.String()
}

func answerRisk(ctx Context) string {
	riskiest := make([]*ranking.ScoreRecord, len(ctx.Records))
	copy(riskiest, ctx.Records)
	sort.Slice(riskiest, func(i, j int) bool {
		if riskiest[i].Risk != riskiest[j].Risk {
			return riskiest[i].Risk > riskiest[j].Risk
		}
		return riskiest[i].Feature < riskiest[j].Feature
	})
	if len(riskiest) > 5 {
		riskiest = riskiest[:5]
	}

	var b strings.Builder
	b.WriteString("Risk assessment\n\nHighest risk features:\n")
	for i, r := range riskiest {
		fmt.Fprintf(&b, "%d. %s: risk %.0f/100 (effort %.0f SP, confidence %.0f%%)\n",
			i+1, r.Feature, r.Risk, r.Effort, r.Confidence*100)
	}

	var efforts []float64
	for _, r := range ctx.Records {
		efforts = append(efforts, r.Effort)
	}
	sort.Float64s(efforts)
	highEffortCut := efforts[int(float64(len(efforts)-1)*0.8)]

	technical, lowConfidence := 0, 0
	for _, r := range ctx.Records {
		if r.Effort > highEffortCut {
			technical++
		}
		if r.Confidence < 0.6 {
			lowConfidence++
		}
	}
	fmt.Fprintf(&b, "\n%d high-effort features carry technical risk; %d features have low-confidence data.\n", technical, lowConfidence)
	b.WriteString("Mitigation: break down large features, validate assumptions with user research, and keep buffer in the schedule.")
	return b.String()
}

func answerGeneral(ctx Context) string {
	var totalEffort float64
	quickWins, highRisk := 0, 0
	for _, r := range ctx.Records {
		totalEffort += r.Effort
		if r.Quadrant == scoring.QuadrantQuickWins {
			quickWins++
		}
		if r.Risk > 70 {
			highRisk++
		}
	}

	var b strings.Builder
	b.WriteString("Roadmap overview\n\n")
	fmt.Fprintf(&b, "Features:    %d\n", len(ctx.Records))
	fmt.Fprintf(&b, "Quick wins:  %d\n", quickWins)
	fmt.Fprintf(&b, "High risk:   %d\n", highRisk)
	fmt.Fprintf(&b, "Total effort: %.0f story points\n", totalEffort)

	if len(ctx.Projections) > 0 {
		cost, revenue := roi.Totals(ctx.Projections)
		fmt.Fprintf(&b, "\nProjected revenue $%s against $%s investment for the top %d features.\n",
			revenue.StringFixed(0), cost.StringFixed(0), len(ctx.Projections))
	}

	b.WriteString("\nFocus on the quick wins first and watch the high-risk features.")
	return b.String()
}
