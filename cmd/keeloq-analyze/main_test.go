package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/d21d3q/gokeeloq/internal/options"
	"github.com/d21d3q/gokeeloq/pkg/keeloq"
)

func jsonPrinter(out *bytes.Buffer) printer {
	return printer{out: out, format: options.FormatJSON}
}

func TestRunAnalyze(t *testing.T) {
	var out bytes.Buffer
	err := runAnalyze(context.Background(), jsonPrinter(&out), keeloq.AnalyzeOptions{}, "{12}fff/{66}123456789abcde0f4")
	require.NoError(t, err)
	require.Contains(t, out.String(), `"id": "07B3D59"`)
}

func TestRunAnalyzeKeyValue(t *testing.T) {
	var out bytes.Buffer
	p := printer{out: &out, format: options.FormatKV}
	err := runAnalyze(context.Background(), p, keeloq.AnalyzeOptions{}, "{12}fff/{66}123456789abcde0f4")
	require.NoError(t, err)
	text := out.String()
	require.Contains(t, text, "Learn mode: 1\n")
	require.Contains(t, text, "Battery   : 1\n")
	require.Contains(t, text, "id        : 07B3D59\n")
	require.Contains(t, text, "encrypted : 1E6A2C48\n")
	require.NotContains(t, text, "{")
}

func TestRunInteractiveContinuesAfterRejection(t *testing.T) {
	in := strings.NewReader("{12}7ff/{66}123456789abcde0f4\n\n{12}fff/{66}123456789abcde0f4\n")
	var out bytes.Buffer
	require.NoError(t, runInteractive(context.Background(), in, jsonPrinter(&out), keeloq.AnalyzeOptions{}))
	require.Equal(t, 1, strings.Count(out.String(), `"encrypted": "1E6A2C48"`))
}

func TestRunInteractiveLogsRejectionsAtDebug(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()
	prev := logrus.GetLevel()
	logrus.SetLevel(logrus.DebugLevel)
	defer logrus.SetLevel(prev)

	in := strings.NewReader("{12}fff/{64}123456789abcde0f\nnot a code\n")
	var out bytes.Buffer
	require.NoError(t, runInteractive(context.Background(), in, jsonPrinter(&out), keeloq.AnalyzeOptions{}))

	var rejected, warned int
	for _, entry := range hook.AllEntries() {
		require.NotEqual(t, logrus.ErrorLevel, entry.Level)
		switch entry.Message {
		case "frame rejected":
			require.Equal(t, logrus.DebugLevel, entry.Level)
			require.Equal(t, "wrong length", entry.Data["reason"])
			rejected++
		case "failed to decode code":
			require.Equal(t, logrus.WarnLevel, entry.Level)
			warned++
		}
	}
	require.Equal(t, 1, rejected)
	require.Equal(t, 1, warned)
}

func TestRunBatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codes.txt")
	contents := "# two codes\n{12}fff/{66}123456789abcde0f4\n{12}fff/{66}ffffffffffffffff0\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	var out bytes.Buffer
	require.NoError(t, runBatch(context.Background(), jsonPrinter(&out), keeloq.AnalyzeOptions{}, path))
	require.Equal(t, 1, strings.Count(out.String(), `"decoder": "hcs200"`))
}

func TestListProfiles(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, listProfiles(&out))
	require.Contains(t, out.String(), "n=intellicode,m=OOK_PWM,s=197,l=393,r=4500,g=750")
	require.Contains(t, out.String(), "hcs200_fsk")
}
