package profiling

import "go.uber.org/zap"

// AssessmentResult is the full outcome of one questionnaire: the derived
// score and tier plus the original input echoed back for traceability.
type AssessmentResult struct {
	RiskScore           int       `json:"riskScore"`
	RiskTolerance       Tolerance `json:"riskTolerance"`
	RecommendedStrategy string    `json:"recommendedStrategy"`
	Assessment          Input     `json:"assessment"`
}

// Service composes validation, scoring and classification. It holds no
// state; any number of callers may share one instance.
type Service struct {
	Logger *zap.Logger
}

// ProcessAssessment validates the questionnaire, scores it and classifies
// the result. The returned error is always a *ValidationError.
func (s *Service) ProcessAssessment(in Input) (*AssessmentResult, error) {
	in.InvestmentGoal = NormalizeGoal(in.InvestmentGoal)
	if err := in.Validate(); err != nil {
		return nil, err
	}

	score := Score(in)
	tolerance, recommended := Classify(score)

	if s != nil && s.Logger != nil {
		s.Logger.Info("quick assessment processed",
			zap.Int("risk_score", score),
			zap.String("tolerance", tolerance.String()),
		)
	}

	return &AssessmentResult{
		RiskScore:           score,
		RiskTolerance:       tolerance,
		RecommendedStrategy: recommended,
		Assessment:          in,
	}, nil
}

// Recommendations answers "given a raw score, list matching catalog
// entries" independently of any stored assessment.
func (s *Service) Recommendations(score int) []Archetype {
	return RecommendationsFor(score)
}
