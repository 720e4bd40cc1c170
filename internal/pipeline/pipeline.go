package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/sync/errgroup"

	"github.com/quotewise/factfinder/constants"
	"github.com/quotewise/factfinder/internal/extraction"
	"github.com/quotewise/factfinder/internal/llm"
)

// Pipeline runs the multi-batch extraction merge: batch the page images,
// call the vision endpoint per batch, parse and validate each response, and
// fold the partials into one complete result in batch order.
//
// Per-batch failures (upstream call, malformed response) are logged and the
// batch contributes nothing; only an empty image list is a caller error. If
// every batch fails the result is the all-default data, not an error —
// callers detect "nothing extracted" through field-level flagged/null state.
type Pipeline struct {
	client       llm.VisionClient
	log          *slog.Logger
	batchTimeout time.Duration
	concurrency  int
	schemas      map[constants.InsuranceType]*jsonschema.Schema
}

// Options tune pipeline behavior; zero values get production defaults.
type Options struct {
	BatchTimeout time.Duration // per-batch call budget
	Concurrency  int           // parallel batch calls; 1 = sequential
}

// New compiles the partial schemas once and returns a ready pipeline.
func New(client llm.VisionClient, opts Options, logger *slog.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.BatchTimeout <= 0 {
		opts.BatchTimeout = 90 * time.Second
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}

	schemas := make(map[constants.InsuranceType]*jsonschema.Schema, 3)
	for _, typ := range []constants.InsuranceType{
		constants.InsuranceHome, constants.InsuranceAuto, constants.InsuranceLegacy,
	} {
		s, err := llm.CompileSchema(llm.BuildPartialSchema(typ))
		if err != nil {
			return nil, fmt.Errorf("compile %s schema: %w", typ, err)
		}
		schemas[typ] = s
	}

	return &Pipeline{
		client:       client,
		log:          logger,
		batchTimeout: opts.BatchTimeout,
		concurrency:  opts.Concurrency,
		schemas:      schemas,
	}, nil
}

// Result is the outcome of one extraction run. Exactly one of Home, Auto,
// Legacy is set, matching Type. UnvalidatedBatches counts batches merged
// fail-open after a schema mismatch.
type Result struct {
	Type   constants.InsuranceType
	Home   *extraction.HomeData
	Auto   *extraction.AutoData
	Legacy *extraction.LegacyData

	BatchCount         int
	FailedBatches      int
	UnvalidatedBatches int
	Usage              llm.TokenUsage
}

// Data returns the typed complete result for JSON marshaling.
func (r *Result) Data() any {
	switch r.Type {
	case constants.InsuranceHome:
		return r.Home
	case constants.InsuranceAuto:
		return r.Auto
	default:
		return r.Legacy
	}
}

// batchPartial is one successfully parsed batch response, pre-merge.
type batchPartial struct {
	raw       json.RawMessage
	validated bool
	usage     llm.TokenUsage
}

// Run executes the pipeline over ordered page images.
func (p *Pipeline) Run(ctx context.Context, typ constants.InsuranceType, images [][]byte) (*Result, error) {
	batches, err := extraction.SplitBatches(images, constants.MaxPagesPerBatch)
	if err != nil {
		return nil, err
	}

	partials := p.collectPartials(ctx, typ, batches)

	res := &Result{Type: typ, BatchCount: len(batches)}
	for _, bp := range partials {
		if bp == nil {
			res.FailedBatches++
			continue
		}
		if !bp.validated {
			res.UnvalidatedBatches++
		}
		res.Usage.PromptTokens += bp.usage.PromptTokens
		res.Usage.CompletionTokens += bp.usage.CompletionTokens
		res.Usage.TotalTokens += bp.usage.TotalTokens
	}

	// Merge in batch order regardless of completion order; the no-key entity
	// dedup case is order-sensitive. A batch whose payload cannot decode at
	// all is counted as failed here, after the parse/validate stages passed.
	switch typ {
	case constants.InsuranceHome:
		data := extraction.NewHomeData()
		for i, bp := range partials {
			part := decodePartial[extraction.HomePartial](p, i, bp)
			if part == nil {
				if bp != nil {
					res.FailedBatches++
				}
				continue
			}
			extraction.MergeHome(data, part)
		}
		res.Home = data
	case constants.InsuranceAuto:
		data := extraction.NewAutoData()
		for i, bp := range partials {
			part := decodePartial[extraction.AutoPartial](p, i, bp)
			if part == nil {
				if bp != nil {
					res.FailedBatches++
				}
				continue
			}
			extraction.MergeAuto(data, part)
		}
		res.Auto = data
	default:
		data := extraction.NewLegacyData()
		for i, bp := range partials {
			part := decodePartial[extraction.LegacyPartial](p, i, bp)
			if part == nil {
				if bp != nil {
					res.FailedBatches++
				}
				continue
			}
			extraction.MergeLegacy(data, part)
		}
		res.Legacy = data
	}

	p.log.Info("pipeline.done",
		"insurance_type", typ,
		"batches", res.BatchCount,
		"failed_batches", res.FailedBatches,
		"unvalidated_batches", res.UnvalidatedBatches,
		"total_tokens", res.Usage.TotalTokens,
	)
	return res, nil
}

// collectPartials fans the batches out with bounded concurrency and returns
// one slot per batch, indexed by batch number. A nil slot is a failed batch.
func (p *Pipeline) collectPartials(ctx context.Context, typ constants.InsuranceType, batches [][][]byte) []*batchPartial {
	prompt := llm.BuildPrompt(typ)
	schema := p.schemas[typ]
	partials := make([]*batchPartial, len(batches))

	g := new(errgroup.Group)
	g.SetLimit(p.concurrency)
	for i, batch := range batches {
		i, batch := i, batch
		g.Go(func() error {
			partials[i] = p.processBatch(ctx, prompt, schema, i, len(batches), batch)
			return nil
		})
	}
	_ = g.Wait()
	return partials
}

// processBatch runs call → parse → validate for one batch. Any failure is
// logged with the batch position and converted into a nil contribution.
func (p *Pipeline) processBatch(ctx context.Context, prompt string, schema *jsonschema.Schema, idx, total int, images [][]byte) *batchPartial {
	ctx, cancel := context.WithTimeout(ctx, p.batchTimeout)
	defer cancel()

	resp, err := p.client.Complete(ctx, llm.VisionRequest{Prompt: prompt, Images: images})
	if err != nil {
		p.log.Warn("pipeline.batch.failed",
			"batch", idx+1, "total_batches", total, "stage", "call", "error", err)
		return nil
	}

	raw, err := llm.ExtractJSONObject(resp.Content)
	if err != nil {
		p.log.Warn("pipeline.batch.failed",
			"batch", idx+1, "total_batches", total, "stage", "parse", "error", err)
		return nil
	}

	mismatches, err := llm.ValidateAgainstSchema(schema, raw)
	if err != nil {
		p.log.Warn("pipeline.batch.failed",
			"batch", idx+1, "total_batches", total, "stage", "validate", "error", err)
		return nil
	}
	if len(mismatches) > 0 {
		// Fail open: the raw parsed object is still merged, with provenance.
		p.log.Warn("pipeline.batch.schema_mismatch",
			"batch", idx+1, "total_batches", total,
			"mismatches", len(mismatches), "first", mismatches[0])
	}

	return &batchPartial{raw: raw, validated: len(mismatches) == 0, usage: resp.Usage}
}

// decodePartial unmarshals one batch slot into the typed partial. A type
// mismatch on individual fields is non-fatal, matching the fail-open policy:
// encoding/json decodes the rest of the object best-effort and reports the
// earliest offending field, so the partially-decoded value is still merged
// and only the mismatched fields stay at their defaults. Only a payload that
// cannot decode at all drops the batch.
func decodePartial[P any](p *Pipeline, idx int, bp *batchPartial) *P {
	if bp == nil {
		return nil
	}
	var part P
	if err := json.Unmarshal(bp.raw, &part); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			p.log.Warn("pipeline.batch.partial_decode",
				"batch", idx+1, "field", typeErr.Field, "error", err)
			return &part
		}
		p.log.Warn("pipeline.batch.decode_failed", "batch", idx+1, "error", err)
		return nil
	}
	return &part
}
