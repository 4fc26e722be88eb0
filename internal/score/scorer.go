package score

import (
	"orderintake/internal/config"
	"orderintake/internal/domain"
)

// FieldScores holds the per-field confidence for the non-item order fields.
type FieldScores struct {
	Email   float64
	Address float64
	Date    float64
}

// Scorer maps extraction evidence to confidence scores using the
// deployed weight table. It is deterministic: the same evidence always
// produces the same score.
type Scorer struct {
	cfg config.ScoringConfig
}

// NewScorer creates a Scorer over the given weight table.
func NewScorer(cfg config.ScoringConfig) *Scorer {
	return &Scorer{cfg: cfg}
}

// Signal returns the confidence contribution of one piece of evidence.
// Fuzzy description matches interpolate linearly between FuzzyMin and
// FuzzyMax over the similarity range above the given floor.
func (s *Scorer) Signal(ev domain.Evidence, similarityFloor float64) float64 {
	switch ev.Kind {
	case domain.EvidenceHeaderEmail:
		return s.cfg.HeaderEmail
	case domain.EvidenceBodyPatternEmail:
		return s.cfg.BodyPatternEmail
	case domain.EvidenceExactSKU:
		return s.cfg.ExactSKU
	case domain.EvidenceFuzzyDescription:
		span := 1.0 - similarityFloor
		if span <= 0 {
			return s.cfg.FuzzyMax
		}
		frac := (ev.Similarity - similarityFloor) / span
		return clamp(s.cfg.FuzzyMin + frac*(s.cfg.FuzzyMax-s.cfg.FuzzyMin))
	case domain.EvidenceUnresolved:
		return s.cfg.Unresolved
	case domain.EvidenceExplicitDate:
		return s.cfg.ExplicitDate
	case domain.EvidenceRelativeDate:
		return s.cfg.RelativeDate
	case domain.EvidenceLabeledAddress:
		return s.cfg.LabeledAddress
	case domain.EvidenceHeuristicAddress:
		return s.cfg.HeuristicAddress
	default:
		return 0
	}
}

// Best combines evidence for one field by taking the strongest signal.
// No evidence means zero confidence.
func (s *Scorer) Best(evidence []domain.Evidence, similarityFloor float64) float64 {
	best := 0.0
	for _, ev := range evidence {
		if sc := s.Signal(ev, similarityFloor); sc > best {
			best = sc
		}
	}
	return clamp(best)
}

// OrderScore aggregates item scores into the order total: the
// quantity-weighted mean of item confidences, multiplied by the field
// penalty when any of email/address/date scores below the threshold.
// An order with no items scores zero.
func (s *Scorer) OrderScore(itemScores []float64, quantities []int, fields FieldScores) float64 {
	if len(itemScores) == 0 {
		return 0
	}
	var weighted, total float64
	for i, sc := range itemScores {
		q := 1
		if i < len(quantities) && quantities[i] > 0 {
			q = quantities[i]
		}
		weighted += sc * float64(q)
		total += float64(q)
	}
	mean := weighted / total

	if fields.Email < s.cfg.FieldThreshold ||
		fields.Address < s.cfg.FieldThreshold ||
		fields.Date < s.cfg.FieldThreshold {
		mean *= s.cfg.FieldPenalty
	}
	return clamp(mean)
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
