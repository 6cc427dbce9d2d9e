package keeloq

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/d21d3q/gokeeloq/internal/bitbuffer"
	"github.com/d21d3q/gokeeloq/internal/decoder"
	_ "github.com/d21d3q/gokeeloq/internal/decoder/hcs200" // register profiles
	"github.com/d21d3q/gokeeloq/internal/records"
)

// Result captures the outcome of AnalyzeCode.
type Result struct {
	Decoder string
	Profile string
	Code    string
	Rows    []int
	Fields  records.Data
}

// String renders a human-readable representation of the result.
func (r Result) String() string {
	summary := map[string]any{
		"decoder": r.Decoder,
		"profile": r.Profile,
		"code":    r.Code,
		"rows":    r.Rows,
	}
	if len(r.Fields) > 0 {
		summary["fields"] = r.Fields
	}
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Sprintf("decoder: %s profile: %s code: %s (marshal error: %v)", r.Decoder, r.Profile, r.Code, err)
	}
	return string(data)
}

// Text renders the decoded fields as labelled lines.
func (r Result) Text() string {
	return r.Fields.Text()
}

// AnalyzeCode parses a code string with the default profile and decodes it.
func AnalyzeCode(ctx context.Context, code string) (Result, error) {
	return AnalyzeCodeWithOptions(ctx, code, AnalyzeOptions{})
}

// AnalyzeCodeWithOptions parses a code string and decodes it with the
// selected profile. A rejected frame returns the partial result together
// with the rejection error.
func AnalyzeCodeWithOptions(ctx context.Context, code string, opts AnalyzeOptions) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	profile, dec, err := decoder.Lookup(opts.profileName())
	if err != nil {
		return Result{}, err
	}
	buf, err := bitbuffer.Parse(code)
	if err != nil {
		return Result{}, fmt.Errorf("parse code: %w", err)
	}

	result := Result{
		Decoder: dec.Name(),
		Profile: profile.Name,
		Code:    buf.String(),
		Rows:    rowLengths(buf),
	}
	fields, err := dec.DecodeRecord(buf)
	if err != nil {
		return result, err
	}
	result.Fields = fields
	return result, nil
}

// BatchItem is the outcome for one code of AnalyzeBatch.
type BatchItem struct {
	Result Result
	Err    error
}

// AnalyzeBatch decodes codes concurrently and returns one item per code in
// input order. Per-code failures are reported in the items; the returned
// error is only set when ctx is cancelled or the options are invalid.
func AnalyzeBatch(ctx context.Context, codes []string, opts AnalyzeOptions) ([]BatchItem, error) {
	if _, _, err := decoder.Lookup(opts.profileName()); err != nil {
		return nil, err
	}
	items := make([]BatchItem, len(codes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers())
	for i, code := range codes {
		i, code := i, code
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := AnalyzeCodeWithOptions(gctx, code, opts)
			items[i] = BatchItem{Result: res, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return items, err
	}
	if err := ctx.Err(); err != nil {
		return items, err
	}
	return items, nil
}

func rowLengths(buf *bitbuffer.Buffer) []int {
	rows := make([]int, buf.NumRows())
	for i := range rows {
		rows[i] = buf.BitsPerRow(i)
	}
	return rows
}
