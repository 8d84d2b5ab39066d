package scoring

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"
)

// BreakdownSchemaVersion is stamped into every persisted breakdown. Decoding
// rejects documents carrying any other version; a version bump requires a
// backfill of stored breakdowns.
const BreakdownSchemaVersion = 1

// CategoryScoreInput is the in-progress editing record for one category. The
// score stays nil until the admin enters a value; the validation gate converts
// a full set of inputs into finalized entries.
type CategoryScoreInput struct {
	CategoryID string `json:"categoryId"`
	Score      *int   `json:"score"`
	Notes      string `json:"notes"`
}

// NewCategoryInputs returns one unset input per registered category, in
// display order. This is the state a freshly opened scoring form starts from.
func NewCategoryInputs() []CategoryScoreInput {
	cats := Categories()
	inputs := make([]CategoryScoreInput, len(cats))
	for i, c := range cats {
		inputs[i] = CategoryScoreInput{CategoryID: c.ID}
	}
	return inputs
}

// CategoryScoreEntry is the finalized, persisted record for one category.
// Weight is copied from the registry at compute time so a later registry
// change cannot silently reinterpret stored breakdowns.
type CategoryScoreEntry struct {
	CategoryID    string  `json:"categoryId"`
	Score         int     `json:"score"`
	Weight        int     `json:"weight"`
	WeightedScore float64 `json:"weightedScore"`
	Notes         string  `json:"notes,omitempty"`
}

// ScoreBreakdownData is the complete snapshot of one scoring pass. Each save
// replaces the previous snapshot wholesale.
type ScoreBreakdownData struct {
	SchemaVersion  int                  `json:"schemaVersion"`
	Overall        int                  `json:"overall"`
	Grade          Grade                `json:"grade"`
	Categories     []CategoryScoreEntry `json:"categories"`
	Strengths      []string             `json:"strengths"`
	Considerations []string             `json:"considerations"`
	Recommendation string               `json:"recommendation"`
	RedFlags       []string             `json:"redFlags"`
	Readiness      Readiness            `json:"distributionReadiness"`
	ScoredAt       time.Time            `json:"scoredAt"`
	ScoredBy       string               `json:"scoredBy,omitempty"`
}

// breakdownSchema validates the stored document shape at the persistence
// boundary. Stored breakdowns are not trusted implicitly; anything that does
// not match is rejected rather than partially decoded.
const breakdownSchema = `{
	"type": "object",
	"required": ["schemaVersion", "overall", "grade", "categories", "distributionReadiness", "scoredAt"],
	"properties": {
		"schemaVersion": {"type": "integer"},
		"overall": {"type": "integer", "minimum": 0, "maximum": 100},
		"grade": {"type": "string", "enum": ["A", "B", "C", "D", "F"]},
		"categories": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"required": ["categoryId", "score", "weight", "weightedScore"],
				"properties": {
					"categoryId": {"type": "string"},
					"score": {"type": "integer", "minimum": 0, "maximum": 100},
					"weight": {"type": "integer", "minimum": 0, "maximum": 100},
					"weightedScore": {"type": "number"},
					"notes": {"type": "string"}
				}
			}
		},
		"strengths": {"type": "array", "items": {"type": "string"}},
		"considerations": {"type": "array", "items": {"type": "string"}},
		"recommendation": {"type": "string"},
		"redFlags": {"type": "array", "items": {"type": "string"}},
		"distributionReadiness": {"type": "string", "enum": ["ready", "conditional", "not_ready"]},
		"scoredAt": {"type": "string"},
		"scoredBy": {"type": "string"}
	}
}`

var compiledBreakdownSchema = gojsonschema.NewStringLoader(breakdownSchema)

// EncodeBreakdown serializes a breakdown for storage on the asset record.
func EncodeBreakdown(b *ScoreBreakdownData) ([]byte, error) {
	if b.SchemaVersion != BreakdownSchemaVersion {
		return nil, fmt.Errorf("encode breakdown: schema version %d, want %d", b.SchemaVersion, BreakdownSchemaVersion)
	}
	return json.Marshal(b)
}

// DecodeBreakdown validates and decodes a stored breakdown document. It
// returns an error for malformed JSON, schema violations, or a schema version
// other than the current one.
func DecodeBreakdown(raw []byte) (*ScoreBreakdownData, error) {
	result, err := gojsonschema.Validate(compiledBreakdownSchema, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode breakdown: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return nil, fmt.Errorf("decode breakdown: document invalid: %s", strings.Join(msgs, "; "))
	}

	var b ScoreBreakdownData
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("decode breakdown: %w", err)
	}
	if b.SchemaVersion != BreakdownSchemaVersion {
		return nil, fmt.Errorf("decode breakdown: unsupported schema version %d", b.SchemaVersion)
	}
	return &b, nil
}

// ClampScore bounds raw score input to [0,100] at the input boundary so
// garbage never reaches the calculator.
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
