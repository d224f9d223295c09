package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"

	"github.com/kailas-cloud/cinefind/internal/domain/search/kind"
	"github.com/kailas-cloud/cinefind/internal/domain/search/order"
	"github.com/kailas-cloud/cinefind/internal/domain/search/params"
	logpkg "github.com/kailas-cloud/cinefind/internal/logger"
	"github.com/kailas-cloud/cinefind/internal/metrics"
)

// payloadSchema constrains the shape of the interpreter payload.
// Enum membership is checked during normalization, not here: an unknown
// label is dropped to its default instead of rejecting the whole payload.
const payloadSchema = `{
  "type": "object",
  "properties": {
    "query":     {"type": ["string", "null"]},
    "genre":     {"type": ["string", "null"]},
    "year":      {"type": ["integer", "null"], "minimum": 0, "maximum": 3000},
    "minRating": {"type": ["number", "null"], "minimum": 0, "maximum": 10},
    "sortBy":    {"type": ["string", "null"]},
    "type":      {"type": ["string", "null"]},
    "country":   {"type": ["string", "null"]},
    "keywords":  {"type": ["array", "null"], "items": {"type": "string"}},
    "season":    {"type": ["string", "null"]},
    "setting":   {"type": ["string", "null"]}
  }
}`

var errSchemaViolation = errors.New("payload schema violation")

// payload mirrors the interpreter's JSON. Year is decoded as a number
// because integral floats ("2023.0") pass the integer schema check.
type payload struct {
	Query     *string  `json:"query"`
	Genre     *string  `json:"genre"`
	Year      *float64 `json:"year"`
	MinRating *float64 `json:"minRating"`
	SortBy    *string  `json:"sortBy"`
	Type      *string  `json:"type"`
	Country   *string  `json:"country"`
	Keywords  []string `json:"keywords"`
	Season    *string  `json:"season"`
	Setting   *string  `json:"setting"`
}

// Extractor turns raw query text into search parameters. It never fails:
// any interpreter, decode or schema problem yields params.Default.
type Extractor struct {
	interp Interpreter
	schema *gojsonschema.Schema
}

// NewExtractor creates an Extractor. interp may be nil, in which case every
// extraction returns the fallback parameters.
func NewExtractor(interp Interpreter) *Extractor {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(payloadSchema))
	if err != nil {
		panic(fmt.Sprintf("compile payload schema: %v", err))
	}
	return &Extractor{interp: interp, schema: schema}
}

// Extract returns the structured parameters for text.
func (e *Extractor) Extract(ctx context.Context, text string) params.Params {
	log := logpkg.FromContext(ctx)

	if e.interp == nil {
		metrics.ExtractionTotal.WithLabelValues("fallback").Inc()
		return params.Default(text)
	}

	raw, err := e.interp.ExtractParameters(ctx, text)
	if err != nil {
		log.Warn("parameter extraction failed, using defaults", zap.Error(err))
		metrics.ExtractionTotal.WithLabelValues("fallback").Inc()
		return params.Default(text)
	}

	p, err := e.decode(raw, text)
	if err != nil {
		log.Warn("interpreter payload rejected, using defaults",
			zap.Error(err),
			zap.ByteString("payload", raw),
		)
		metrics.ExtractionTotal.WithLabelValues("fallback").Inc()
		return params.Default(text)
	}

	metrics.ExtractionTotal.WithLabelValues("ok").Inc()
	log.Debug("parameters extracted", zap.Any("params", p))
	return p
}

func (e *Extractor) decode(raw []byte, text string) (params.Params, error) {
	res, err := e.schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return params.Params{}, fmt.Errorf("parse payload: %w", err)
	}
	if !res.Valid() {
		msgs := make([]string, len(res.Errors()))
		for i, desc := range res.Errors() {
			msgs[i] = desc.String()
		}
		return params.Params{}, fmt.Errorf("%w: %s", errSchemaViolation, strings.Join(msgs, "; "))
	}

	var pl payload
	if err := json.Unmarshal(raw, &pl); err != nil {
		return params.Params{}, fmt.Errorf("decode payload: %w", err)
	}

	p := params.Params{
		Query:    deref(pl.Query),
		Type:     kind.Kind(deref(pl.Type)),
		Genre:    deref(pl.Genre),
		SortBy:   order.Order(deref(pl.SortBy)),
		Country:  deref(pl.Country),
		Keywords: pl.Keywords,
		Season:   deref(pl.Season),
		Setting:  deref(pl.Setting),
	}
	if pl.Year != nil {
		p.Year = int(*pl.Year)
	}
	if pl.MinRating != nil {
		p.MinRating = *pl.MinRating
	}
	return p.Normalize(text), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
