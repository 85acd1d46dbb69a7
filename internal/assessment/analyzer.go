package assessment

import (
	"math"
	"time"

	"github.com/cognify/backend/internal/iq"
	"github.com/cognify/backend/internal/models"
)

// Analyzer maps a completed session list into domain scores, the cognitive
// profile, and the final report. It never mutates its inputs, so repeated
// report generation over the same sessions is identical.
type Analyzer struct {
	sessions []models.TestSession
	profile  models.UserProfile
}

func NewAnalyzer(sessions []models.TestSession, profile models.UserProfile) *Analyzer {
	return &Analyzer{sessions: sessions, profile: profile}
}

// DomainScore is the weighted average over all sessions whose Category
// equals the domain: accuracy 40%, speed 30%, consistency 30%. Speed is
// stored as raw seconds, so it is converted to milliseconds here before
// the 100 - ms/10 rescale. No matching sessions scores 0.
func (a *Analyzer) DomainScore(domain models.TestCategory) float64 {
	var sum float64
	count := 0

	for _, s := range a.sessions {
		if s.Category != domain {
			continue
		}
		accuracyScore := s.Result.Metrics.Accuracy * 100
		reactionMs := s.Result.Metrics.Speed * 1000
		speedScore := math.Max(0, 100-reactionMs/10)
		consistencyScore := s.Result.Metrics.Consistency * 100

		sum += accuracyScore*0.4 + speedScore*0.3 + consistencyScore*0.3
		count++
	}

	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// Profile derives the four-domain cognitive profile. Sub-fields within a
// domain share the domain score — the battery does not tag sessions at
// sub-field granularity.
func (a *Analyzer) Profile() models.CognitiveProfile {
	memory := a.DomainScore(models.CategoryMemory)
	attention := a.DomainScore(models.CategoryAttention)
	processing := a.DomainScore(models.CategoryProcessing)
	executive := a.DomainScore(models.CategoryExecutive)

	return models.CognitiveProfile{
		MemoryCapacity: models.MemoryCapacity{
			ShortTerm: memory,
			Working:   memory,
			Visual:    memory,
		},
		AttentionMetrics: models.AttentionMetrics{
			Sustained: attention,
			Selective: attention,
			Divided:   attention,
		},
		ProcessingSpeed: models.ProcessingSpeed{
			Reaction:  processing,
			Decision:  processing,
			Cognitive: processing,
		},
		ExecutiveFunction: models.ExecutiveFunction{
			Planning:    executive,
			Flexibility: executive,
			Inhibition:  executive,
		},
	}
}

const recommendationThreshold = 70

// Recommendations returns the advisory strings for every sub-field that
// falls below the threshold, in a fixed order.
func Recommendations(p models.CognitiveProfile) []string {
	var recs []string

	if p.MemoryCapacity.ShortTerm < recommendationThreshold {
		recs = append(recs, "Practice short-term recall exercises, such as repeating number or word lists")
	}
	if p.MemoryCapacity.Working < recommendationThreshold {
		recs = append(recs, "Strengthen working memory with mental arithmetic and n-back style games")
	}
	if p.MemoryCapacity.Visual < recommendationThreshold {
		recs = append(recs, "Consider exercises to improve visual memory, such as pattern recognition games")
	}
	if p.AttentionMetrics.Sustained < recommendationThreshold {
		recs = append(recs, "Practice sustained attention activities, like mindfulness or focused reading")
	}
	if p.AttentionMetrics.Selective < recommendationThreshold {
		recs = append(recs, "Train selective attention with find-the-target and visual search tasks")
	}
	if p.AttentionMetrics.Divided < recommendationThreshold {
		recs = append(recs, "Build divided attention gradually with structured dual-task practice")
	}
	if p.ProcessingSpeed.Reaction < recommendationThreshold {
		recs = append(recs, "Improve reaction speed with timed response games")
	}
	if p.ProcessingSpeed.Decision < recommendationThreshold {
		recs = append(recs, "Practice rapid decision-making with simple timed sorting tasks")
	}
	if p.ProcessingSpeed.Cognitive < recommendationThreshold {
		recs = append(recs, "Engage in speed-processing activities, such as quick math or rapid visual identification tasks")
	}
	if p.ExecutiveFunction.Planning < recommendationThreshold {
		recs = append(recs, "Work on planning skills with multi-step puzzles and strategy games")
	}
	if p.ExecutiveFunction.Flexibility < recommendationThreshold {
		recs = append(recs, "Practice cognitive flexibility with task-switching exercises")
	}
	if p.ExecutiveFunction.Inhibition < recommendationThreshold {
		recs = append(recs, "Strengthen response inhibition with go/no-go style activities")
	}

	return recs
}

// PercentileRanks averages each domain's sub-fields and ranks the average
// against the age-norm distribution.
func (a *Analyzer) PercentileRanks(p models.CognitiveProfile) map[string]float64 {
	avg := func(vs ...float64) float64 {
		var sum float64
		for _, v := range vs {
			sum += v
		}
		return sum / float64(len(vs))
	}

	return map[string]float64{
		"memory_capacity":    float64(iq.ScorePercentile(avg(p.MemoryCapacity.ShortTerm, p.MemoryCapacity.Working, p.MemoryCapacity.Visual), a.profile.Age)),
		"attention_metrics":  float64(iq.ScorePercentile(avg(p.AttentionMetrics.Sustained, p.AttentionMetrics.Selective, p.AttentionMetrics.Divided), a.profile.Age)),
		"processing_speed":   float64(iq.ScorePercentile(avg(p.ProcessingSpeed.Reaction, p.ProcessingSpeed.Decision, p.ProcessingSpeed.Cognitive), a.profile.Age)),
		"executive_function": float64(iq.ScorePercentile(avg(p.ExecutiveFunction.Planning, p.ExecutiveFunction.Flexibility, p.ExecutiveFunction.Inhibition), a.profile.Age)),
	}
}

// IQMetrics feeds the five estimator domains from the battery's category
// scores. Problem solving maps to the executive tests and reasoning to the
// learning tests — the estimator's domain names predate the battery's
// category naming.
func (a *Analyzer) IQMetrics() models.IQMetrics {
	calc := iq.NewCalculator(a.profile.Age)
	return calc.Calculate(iq.DomainScores{
		Memory:         a.DomainScore(models.CategoryMemory),
		Attention:      a.DomainScore(models.CategoryAttention),
		Processing:     a.DomainScore(models.CategoryProcessing),
		ProblemSolving: a.DomainScore(models.CategoryExecutive),
		Reasoning:      a.DomainScore(models.CategoryLearning),
	})
}

// Interpretations renders the overall and per-domain readings of the IQ
// estimate as ordered human-readable strings.
func Interpretations(m models.IQMetrics) []string {
	var out []string

	switch {
	case m.OverallIQ >= 130:
		out = append(out, "Very Superior: Exceptional cognitive abilities across multiple domains")
	case m.OverallIQ >= 120:
		out = append(out, "Superior: Strong cognitive abilities with particular strengths in some areas")
	case m.OverallIQ >= 110:
		out = append(out, "High Average: Above-average performance in several cognitive domains")
	case m.OverallIQ >= 90:
		out = append(out, "Average: Typical cognitive development for age group")
	default:
		out = append(out, "Below Average: May benefit from additional cognitive training and support")
	}

	domains := []struct {
		name  string
		score float64
	}{
		{"memory", m.SubScores.Memory},
		{"attention", m.SubScores.Attention},
		{"processing", m.SubScores.Processing},
		{"problem solving", m.SubScores.ProblemSolving},
		{"reasoning", m.SubScores.Reasoning},
	}
	for _, d := range domains {
		if d.score >= 120 {
			out = append(out, "Exceptional "+d.name+" abilities: Consider advanced enrichment activities")
		} else if d.score <= 80 {
			out = append(out, d.name+" development opportunity: Focused exercises recommended")
		}
	}

	return out
}

// Report assembles the terminal aggregate for the report consumer.
func (a *Analyzer) Report() models.AssessmentReport {
	profile := a.Profile()
	metrics := a.IQMetrics()

	return models.AssessmentReport{
		UserID:           a.profile.ID,
		SessionDate:      time.Now().UTC(),
		UserProfile:      a.profile,
		TestSessions:     a.sessions,
		CognitiveProfile: profile,
		Recommendations:  Recommendations(profile),
		PercentileRanks:  a.PercentileRanks(profile),
		IQMetrics:        metrics,
		Interpretations:  Interpretations(metrics),
	}
}
