package cluster

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vanditpatel27/Interactive-map-web-application-for-real-time-crime-reporting-sub000/internal/models"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	return logger
}

// writeScript drops an executable shell script into a temp dir and returns
// its path, so runner tests can use real subprocesses.
func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func TestSanitizeOutput(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "clean array untouched",
			raw:  `[{"density":3}]`,
			want: `[{"density":3}]`,
		},
		{
			name: "surrounding whitespace and quotes",
			raw:  "  \"[{\\\"density\\\":3}]\"\n",
			want: `[{"density":3}]`,
		},
		{
			name: "log noise around the array",
			raw:  "model ready\n[{\"density\":3}] done",
			want: `[{"density":3}]`,
		},
		{
			name: "single quoted payload",
			raw:  `'[]'`,
			want: `[]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeOutput(tt.raw))
		})
	}
}

func TestParseClusters_EmptyArrayIsValid(t *testing.T) {
	clusters, err := parseClusters("[]")

	require.NoError(t, err)
	assert.NotNil(t, clusters)
	assert.Empty(t, clusters)
}

func TestParseClusters_NonArray(t *testing.T) {
	_, err := parseClusters(`{"error": "boom"}`)

	require.Error(t, err)
}

func TestCompute_Success(t *testing.T) {
	script := writeScript(t, `echo '[{"center":[72.8311,21.1702],"radius":2000,"density":12,"primary_type":"theft"}]'`)
	runner := NewRunner(script, 5*time.Second, newTestLogger())

	reports := []models.Report{
		{CrimeType: "theft", Latitude: 21.17, Longitude: 72.83},
		{CrimeType: "theft"}, // no location, must be filtered out
	}

	clusters, err := runner.Compute(context.Background(), reports)

	require.NoError(t, err)
	require.Len(t, clusters, 1)
	assert.Equal(t, [2]float64{72.8311, 21.1702}, clusters[0].Center)
	assert.Equal(t, 2000.0, clusters[0].RadiusMeters)
	assert.Equal(t, 12, clusters[0].Density)
	assert.Equal(t, "theft", clusters[0].PrimaryType)
}

func TestCompute_EscapedOutput(t *testing.T) {
	script := writeScript(t, `echo '"[{\"center\":[72.8,21.1],\"radius\":500,\"density\":4,\"primary_type\":\"assault\"}]"'`)
	runner := NewRunner(script, 5*time.Second, newTestLogger())

	clusters, err := runner.Compute(context.Background(), nil)

	require.NoError(t, err)
	require.Len(t, clusters, 1)
	assert.Equal(t, "assault", clusters[0].PrimaryType)
}

func TestCompute_NonZeroExit(t *testing.T) {
	script := writeScript(t, `echo "corpus unusable" >&2; exit 3`)
	runner := NewRunner(script, 5*time.Second, newTestLogger())

	_, err := runner.Compute(context.Background(), nil)

	require.ErrorIs(t, err, ErrNoResult)
}

func TestCompute_MalformedOutput(t *testing.T) {
	script := writeScript(t, `echo 'not json at all'`)
	runner := NewRunner(script, 5*time.Second, newTestLogger())

	_, err := runner.Compute(context.Background(), nil)

	require.ErrorIs(t, err, ErrNoResult)
}

func TestCompute_Timeout(t *testing.T) {
	script := writeScript(t, `sleep 5`)
	runner := NewRunner(script, 100*time.Millisecond, newTestLogger())

	start := time.Now()
	_, err := runner.Compute(context.Background(), nil)

	require.ErrorIs(t, err, ErrNoResult)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestCompute_CorpusFileCleanedUp(t *testing.T) {
	// The script captures the corpus path it was handed; the file must be
	// gone once Compute returns.
	marker := filepath.Join(t.TempDir(), "corpus-path")
	script := writeScript(t, `echo "$1" > `+marker+`; echo '[]'`)
	runner := NewRunner(script, 5*time.Second, newTestLogger())

	_, err := runner.Compute(context.Background(), nil)
	require.NoError(t, err)

	captured, err := os.ReadFile(marker)
	require.NoError(t, err)
	corpusPath := string(bytes.TrimSpace(captured))
	require.NotEmpty(t, corpusPath)

	_, statErr := os.Stat(corpusPath)
	assert.True(t, os.IsNotExist(statErr))
}
