package keeloq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/d21d3q/gokeeloq/internal/decoder/hcs200"
)

func TestAnalyzeCode(t *testing.T) {
	result, err := AnalyzeCode(context.Background(), "{12}fff / {66}123456789ABCDE0F40")
	require.NoError(t, err)
	require.Equal(t, "hcs200", result.Decoder)
	require.Equal(t, "hcs200", result.Profile)
	require.Equal(t, []int{12, 66}, result.Rows)
	require.Equal(t, "{12}fff/{66}123456789abcde0f4", result.Code)

	fs := result.FieldSet()
	id, err := fs.String("id")
	require.NoError(t, err)
	require.Equal(t, "07B3D59", id)
	serial, err := fs.Int("id")
	require.NoError(t, err)
	require.EqualValues(t, 0x07B3D59, serial)
	learn, err := fs.Bool("learn")
	require.NoError(t, err)
	require.True(t, learn)
	button, err := fs.Int("button")
	require.NoError(t, err)
	require.EqualValues(t, 15, button)
	_, err = fs.Int("missing")
	require.Error(t, err)
	_, err = fs.Bool("model")
	require.Error(t, err)
}

func TestAnalyzeCodeRejected(t *testing.T) {
	result, err := AnalyzeCode(context.Background(), "{12}fff/{66}ffffffffffffffff0")
	require.ErrorIs(t, err, hcs200.ReasonSanity)
	var rej *hcs200.RejectError
	require.True(t, errors.As(err, &rej))
	require.Equal(t, "hcs200", result.Decoder)
	require.Equal(t, []int{12, 66}, result.Rows)
	require.Empty(t, result.Fields)
}

func TestAnalyzeCodeErrors(t *testing.T) {
	ctx := context.Background()
	_, err := AnalyzeCodeWithOptions(ctx, "{12}fff", AnalyzeOptions{Profile: "garage"})
	require.Error(t, err)

	_, err = AnalyzeCode(ctx, "{12}xyz")
	require.Error(t, err)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = AnalyzeCode(cancelled, "{12}fff/{66}123456789abcde0f4")
	require.ErrorIs(t, err, context.Canceled)
}

func TestAnalyzeCodeProfiles(t *testing.T) {
	for _, name := range []string{"hcs200", "hcs200_fsk", "intellicode"} {
		result, err := AnalyzeCodeWithOptions(context.Background(), "{12}fff/{66}123456789abcde0f4", AnalyzeOptions{Profile: name})
		require.NoError(t, err)
		require.Equal(t, name, result.Profile)
		model, err := result.FieldSet().String("model")
		require.NoError(t, err)
		require.Equal(t, hcs200.Model, model)
	}
}

func TestResultString(t *testing.T) {
	result, err := AnalyzeCode(context.Background(), "{12}fff/{66}123456789abcde0f4")
	require.NoError(t, err)
	var summary map[string]any
	require.NoError(t, json.Unmarshal([]byte(result.String()), &summary))
	require.Equal(t, "hcs200", summary["decoder"])
	fields, ok := summary["fields"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "1E6A2C48", fields["encrypted"])
}

func TestAnalyzeBatch(t *testing.T) {
	codes := []string{
		"{12}fff/{66}123456789abcde0f4",
		"{12}7ff/{66}123456789abcde0f4",
		"{12}fff/{64}123456789abcde0f",
		"not a code",
		"{12}fff/{66}0f87c3a5735162418",
	}
	items, err := AnalyzeBatch(context.Background(), codes, AnalyzeOptions{Workers: 2})
	require.NoError(t, err)
	require.Len(t, items, len(codes))

	require.NoError(t, items[0].Err)
	require.ErrorIs(t, items[1].Err, hcs200.ReasonPreambleMismatch)
	require.ErrorIs(t, items[2].Err, hcs200.ReasonWrongLength)
	require.Error(t, items[3].Err)
	require.NoError(t, items[4].Err)

	id, err := items[4].Result.FieldSet().String("id")
	require.NoError(t, err)
	require.Equal(t, "2468ACE", id)
}

func TestAnalyzeBatchUnknownProfile(t *testing.T) {
	_, err := AnalyzeBatch(context.Background(), []string{"{12}fff"}, AnalyzeOptions{Profile: "nope"})
	require.Error(t, err)
}

func TestAnalyzeBatchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := AnalyzeBatch(ctx, []string{"{12}fff/{66}123456789abcde0f4"}, AnalyzeOptions{})
	require.ErrorIs(t, err, context.Canceled)
}
