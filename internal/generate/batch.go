package generate

import (
	"context"

	"go.uber.org/zap"

	"github.com/joestump/pagegen/internal/errcode"
	"github.com/joestump/pagegen/internal/metrics"
	"github.com/joestump/pagegen/internal/placeholder"
	"github.com/joestump/pagegen/internal/store"
)

// Aggregate batch outcomes.
const (
	BatchComplete = "complete"
	BatchPartial  = "partial"
	BatchFailed   = "failed"
)

// BatchRequest generates one document per location and skill set pair.
// Request supplies everything else; its Location and SkillSet are replaced
// per combination. An empty SkillSets uses Request.SkillSet alone.
type BatchRequest struct {
	Request   `yaml:",inline"`
	Locations []string `json:"locations" yaml:"locations"`
	SkillSets []string `json:"skill_sets,omitempty" yaml:"skill_sets,omitempty"`
}

// BatchItem is the outcome of one combination.
type BatchItem struct {
	Location string       `json:"location"`
	SkillSet string       `json:"skill_set"`
	Result   *Result      `json:"result,omitempty"`
	Code     errcode.Code `json:"code,omitempty"`
	Error    string       `json:"error,omitempty"`
}

// BatchResult aggregates a batch run.
type BatchResult struct {
	Status    string      `json:"status"`
	Total     int         `json:"total"`
	Succeeded int         `json:"succeeded"`
	Failed    int         `json:"failed"`
	Items     []BatchItem `json:"items"`
}

// Combinations returns how many documents req would generate.
func (req BatchRequest) Combinations() int {
	return len(req.Locations) * len(req.skillSets())
}

func (req BatchRequest) skillSets() []string {
	if len(req.SkillSets) > 0 {
		return req.SkillSets
	}
	if req.SkillSet != "" {
		return []string{req.SkillSet}
	}
	return nil
}

// GenerateBatch runs one generation per combination in order. The
// combination ceiling is enforced before any document is written; item
// failures are collected and do not stop the batch.
func (s *Service) GenerateBatch(ctx context.Context, user *store.User, req BatchRequest) (*BatchResult, error) {
	if !user.Can(store.CapPublishPages) {
		return nil, errcode.New(errcode.Unauthorized, "insufficient permissions to generate documents")
	}
	if len(req.Locations) == 0 || len(req.skillSets()) == 0 {
		return nil, errcode.New(errcode.MissingFields, "at least one location and one skill set are required")
	}
	total := req.Combinations()
	metrics.BatchCombinations.Observe(float64(total))
	if total > s.opts.MaxCombinations {
		return nil, errcode.New(errcode.TooManyCombinations,
			"too many combinations (%d); maximum allowed is %d, reduce the number of locations or skill sets",
			total, s.opts.MaxCombinations)
	}

	out := &BatchResult{Total: total, Items: make([]BatchItem, 0, total)}
	for _, loc := range req.Locations {
		for _, ss := range req.skillSets() {
			item := BatchItem{Location: loc, SkillSet: ss}
			if err := ctx.Err(); err != nil {
				item.Code = errcode.GenerationError
				item.Error = err.Error()
				out.Items = append(out.Items, item)
				out.Failed++
				continue
			}
			res, err := s.Generate(ctx, user, req.combination(loc, ss))
			if err != nil {
				item.Code = errcode.CodeOf(err)
				item.Error = errcode.MessageOf(err)
				out.Failed++
				s.log.Warn("batch item failed",
					zap.String("location", loc), zap.String("skill_set", ss), zap.Error(err))
			} else {
				item.Result = res
				out.Succeeded++
			}
			out.Items = append(out.Items, item)
		}
	}

	switch {
	case out.Failed == 0:
		out.Status = BatchComplete
	case out.Succeeded == 0:
		out.Status = BatchFailed
	default:
		out.Status = BatchPartial
	}
	return out, nil
}

// combination derives the request of one location and skill set pair.
func (req BatchRequest) combination(location, skillSet string) Request {
	r := req.Request
	r.Location = location
	r.SkillSet = skillSet
	if len(r.Replacements) > 0 {
		r.Replacements = withVariable(r.Replacements, LabelLocation, LocationToken, location)
		r.Replacements = withVariable(r.Replacements, LabelSkillSet, SkillSetToken, skillSet)
	}
	return r
}

// withVariable returns a copy of set whose label pair replaces with value,
// appending a default pair when the label is absent.
func withVariable(set placeholder.Set, label, token, value string) placeholder.Set {
	out := make(placeholder.Set, len(set))
	copy(out, set)
	for i := range out {
		if out[i].Label == label {
			out[i].Replace = value
			return out
		}
	}
	return out.Add(label, token, value)
}
