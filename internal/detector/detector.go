package detector

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// HiringType is the final classification label of a posting.
type HiringType string

const (
	ActiveHiring      HiringType = "Active Hiring"
	PipelineEvergreen HiringType = "Pipeline/Evergreen"
	MixedSignals      HiringType = "Mixed Signals"
)

// Confidence is the tier attached to a classification.
type Confidence string

const (
	ConfidenceHigh   Confidence = "High"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceLow    Confidence = "Low"
)

const (
	// staleAfterDays is the strict staleness boundary: a posting is stale
	// only when its age exceeds this many whole days.
	staleAfterDays = 45

	// highConfidenceScore is the minimum winning score for High confidence.
	highConfidenceScore = 8

	// dominanceRatio is how much one weighted score must exceed the other
	// before the label leaves Mixed Signals.
	dominanceRatio = 1.5
)

// HiringAnalysis is the aggregate result of one classification. It is
// constructed once and never mutated afterwards.
type HiringAnalysis struct {
	HiringType  HiringType `json:"hiring_type"`
	Confidence  Confidence `json:"confidence"`
	Explanation string     `json:"explanation"`

	ActiveScore  int `json:"active_score"`
	PassiveScore int `json:"passive_score"`
	RedFlagScore int `json:"red_flag_score"`

	ActiveIndicators  IndicatorMatch `json:"active_indicators"`
	PassiveIndicators IndicatorMatch `json:"passive_indicators"`
	RedFlags          IndicatorMatch `json:"red_flags"`

	Requisition RequisitionAnalysis `json:"requisition_analysis"`
	Location    LocationAnalysis    `json:"location_analysis"`
	Specificity SpecificityAnalysis `json:"specificity_analysis"`

	PostingAgeDays *int `json:"posting_age_days,omitempty"`
	IsStale        bool `json:"is_stale"`

	Insights            []string `json:"insights"`
	ApplicationStrategy []string `json:"application_strategy"`
}

// Detector classifies job postings. It holds only immutable configuration and
// is safe for concurrent use.
type Detector struct {
	logger *zap.Logger
	now    func() time.Time
}

// New creates a Detector. A nil logger is replaced with a no-op one.
func New(logger *zap.Logger) *Detector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Detector{logger: logger, now: time.Now}
}

// Classify runs the full analysis over a job description. postedDate may be
// empty; when set it is parsed as an ISO-8601 date, and unparseable values
// are silently treated as absent. Classify never fails.
func (d *Detector) Classify(jobDescription string, postedDate string) HiringAnalysis {
	activeMatches := CountIndicators(jobDescription, ActiveIndicators)
	passiveMatches := CountIndicators(jobDescription, PassiveIndicators)
	redFlagMatches := CountIndicators(jobDescription, RedFlagIndicators)

	rawActive := activeMatches.Total()
	rawPassive := passiveMatches.Total()
	rawRedFlag := redFlagMatches.Total()

	requisition := AnalyzeRequisitionID(ExtractRequisitionID(jobDescription))
	location := DetectLocationBlast(jobDescription)
	specificity := AnalyzeSpecificity(jobDescription)

	var postingAgeDays *int
	isStale := false
	if postedDate != "" {
		if age, ok := d.postingAge(postedDate); ok {
			postingAgeDays = &age
			isStale = age > staleAfterDays
		} else {
			d.logger.Debug("ignoring unparseable posted date", zap.String("posted_date", postedDate))
		}
	}

	finalActive := rawActive * 2
	if specificity.IsSpecific {
		finalActive += 3
	}
	if !requisition.IsSuspicious {
		finalActive += 2
	}

	finalPassive := rawPassive * 2
	if requisition.IsSuspicious {
		finalPassive += 3
	}
	if location.IsBlast {
		finalPassive += 3
	}
	finalPassive += rawRedFlag
	if isStale {
		finalPassive += 2
	}

	hiringType, confidence, explanation := decideLabel(finalActive, finalPassive)

	analysis := HiringAnalysis{
		HiringType:  hiringType,
		Confidence:  confidence,
		Explanation: explanation,

		ActiveScore:  finalActive,
		PassiveScore: finalPassive,
		RedFlagScore: rawRedFlag,

		ActiveIndicators:  activeMatches,
		PassiveIndicators: passiveMatches,
		RedFlags:          redFlagMatches,

		Requisition: requisition,
		Location:    location,
		Specificity: specificity,

		PostingAgeDays: postingAgeDays,
		IsStale:        isStale,
	}

	analysis.Insights = buildInsights(&analysis, rawActive, rawPassive, activeMatches, passiveMatches)
	analysis.ApplicationStrategy = strategyFor(hiringType)

	d.logger.Debug("classified posting",
		zap.String("hiring_type", string(hiringType)),
		zap.String("confidence", string(confidence)),
		zap.Int("active_score", finalActive),
		zap.Int("passive_score", finalPassive),
	)

	return analysis
}

// postingAge parses an ISO-8601 date, tolerating a trailing "Z", and returns
// the whole-day age relative to the detector clock.
func (d *Detector) postingAge(postedDate string) (int, bool) {
	value := strings.TrimSuffix(strings.TrimSpace(postedDate), "Z")

	var parsed time.Time
	var err error
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02"} {
		parsed, err = time.Parse(layout, value)
		if err == nil {
			break
		}
	}
	if err != nil {
		return 0, false
	}

	age := int(d.now().Sub(parsed).Hours() / 24)
	return age, true
}

func decideLabel(finalActive, finalPassive int) (HiringType, Confidence, string) {
	switch {
	case float64(finalActive) > float64(finalPassive)*dominanceRatio:
		confidence := ConfidenceMedium
		if finalActive >= highConfidenceScore {
			confidence = ConfidenceHigh
		}
		return ActiveHiring, confidence, "This is a real, funded position with an immediate hiring need. " +
			"The company is actively screening candidates now and likely has a " +
			"specific vacancy to fill. Expect a structured process with faster response times."
	case float64(finalPassive) > float64(finalActive)*dominanceRatio:
		confidence := ConfidenceMedium
		if finalPassive >= highConfidenceScore {
			confidence = ConfidenceHigh
		}
		return PipelineEvergreen, confidence, "This appears to be a talent pipeline or 'evergreen' requisition. " +
			"The company is collecting resumes for future opportunities rather than " +
			"filling an immediate vacancy. Response times may be slow or nonexistent."
	default:
		return MixedSignals, ConfidenceLow, "This posting shows conflicting indicators. It may be a legitimate role " +
			"with poor job description quality, or a semi-active pipeline."
	}
}

// buildInsights assembles the ordered insight list. Every step contributes
// only when its condition holds, so the length varies per posting.
func buildInsights(a *HiringAnalysis, rawActive, rawPassive int, activeMatches, passiveMatches IndicatorMatch) []string {
	insights := []string{}

	if rawActive > 0 {
		insights = append(insights, fmt.Sprintf("%d active hiring signals detected", rawActive))
		if name, count := strongestCategory(activeMatches, ActiveIndicators); count > 0 {
			insights = append(insights, fmt.Sprintf("strongest: %s (%d mentions)", name, count))
		}
	}

	if rawPassive > 0 {
		insights = append(insights, fmt.Sprintf("%d pipeline/evergreen signals detected", rawPassive))
		if name, count := strongestCategory(passiveMatches, PassiveIndicators); count > 0 {
			insights = append(insights, fmt.Sprintf("strongest: %s (%d mentions)", name, count))
		}
	}

	if a.RedFlagScore > 0 {
		insights = append(insights, fmt.Sprintf("%d resume harvesting red flags", a.RedFlagScore))
	}

	if a.Requisition.IsSuspicious {
		insights = append(insights, a.Requisition.Reason)
	}

	if a.Location.IsBlast {
		insights = append(insights, a.Location.Reason)
	}

	if !a.Specificity.IsSpecific {
		insights = append(insights, "Low specificity - vague job description")
	}

	if a.IsStale && a.PostingAgeDays != nil {
		insights = append(insights, fmt.Sprintf("Posting is %d days old (likely stale)", *a.PostingAgeDays))
	}

	return insights
}

func strategyFor(hiringType HiringType) []string {
	switch hiringType {
	case ActiveHiring:
		return []string{
			"Apply quickly - this is a time-sensitive opportunity",
			"Tailor resume to exact requirements in posting",
			"Expect standard interview process with defined timeline",
			"Competition is high - differentiate yourself clearly",
			"Follow up within 1 week if no response",
		}
	case PipelineEvergreen:
		return []string{
			"Set expectations for slow/no response",
			"Try to network with employees instead of just applying",
			"Look for actual active roles at this company",
			"Consider reaching out directly to hiring managers",
			"This may be resume harvesting - apply selectively",
		}
	default:
		return []string{
			"Research company's careers page directly",
			"Call/email recruiter to verify if role is active",
			"Prepare for both structured and exploratory interviews",
			"Weigh time investment carefully",
		}
	}
}
