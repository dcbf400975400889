// Package cluster invokes the external hotspot clustering model as an
// isolated subprocess and parses its output. The model is a black box: it
// receives a JSON file of report records and prints a JSON array of cluster
// objects on stdout.
package cluster

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vanditpatel27/Interactive-map-web-application-for-real-time-crime-reporting-sub000/internal/models"
)

// ErrNoResult signals a recoverable model failure (crash, timeout, malformed
// output). It is distinct from a successful empty result, so the cache
// manager can fall back to the last good snapshot.
var ErrNoResult = errors.New("cluster: no result from model")

// Runner executes the clustering model with a hard timeout.
type Runner struct {
	command []string
	timeout time.Duration
	logger  *logrus.Logger
}

// NewRunner builds a Runner from a shell-style command string, e.g.
// "python3 scripts/hotspot_model.py". The corpus file path is appended as
// the final argument on every invocation.
func NewRunner(command string, timeout time.Duration, logger *logrus.Logger) *Runner {
	return &Runner{
		command: strings.Fields(command),
		timeout: timeout,
		logger:  logger,
	}
}

// Compute runs the model over the given report corpus and returns the parsed
// clusters. Reports without usable coordinates are filtered out before
// submission. Any process or parse failure returns ErrNoResult.
func (r *Runner) Compute(ctx context.Context, reports []models.Report) ([]models.Cluster, error) {
	log := r.logger.WithField("component", "cluster_runner")

	if len(r.command) == 0 {
		return nil, fmt.Errorf("%w: model command not configured", ErrNoResult)
	}

	corpus := make([]models.Report, 0, len(reports))
	for _, rep := range reports {
		if rep.HasLocation() {
			corpus = append(corpus, rep)
		}
	}
	log.WithFields(logrus.Fields{"reports": len(reports), "with_location": len(corpus)}).
		Debug("Prepared model corpus")

	payload, err := json.Marshal(corpus)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal corpus: %v", ErrNoResult, err)
	}

	tmp, err := os.CreateTemp("", "hotspot-corpus-*.json")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create corpus file: %v", ErrNoResult, err)
	}
	// The corpus file is a handoff artifact only; remove it on every exit path.
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("%w: failed to write corpus file: %v", ErrNoResult, err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("%w: failed to close corpus file: %v", ErrNoResult, err)
	}

	runCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	args := append(append([]string{}, r.command[1:]...), tmp.Name())
	cmd := exec.CommandContext(runCtx, r.command[0], args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err = cmd.Run()
	elapsed := time.Since(start)

	if runCtx.Err() != nil {
		log.WithField("elapsed", elapsed).Warn("Model run exceeded timeout")
		return nil, fmt.Errorf("%w: model timed out after %s", ErrNoResult, r.timeout)
	}
	if err != nil {
		log.WithError(err).WithField("stderr", strings.TrimSpace(stderr.String())).
			Warn("Model process failed")
		return nil, fmt.Errorf("%w: model process failed: %v", ErrNoResult, err)
	}

	clusters, err := parseClusters(stdout.String())
	if err != nil {
		log.WithError(err).Warn("Model output could not be parsed")
		return nil, fmt.Errorf("%w: %v", ErrNoResult, err)
	}

	log.WithFields(logrus.Fields{"clusters": len(clusters), "elapsed": elapsed}).
		Info("Model run completed")
	return clusters, nil
}

// parseClusters decodes the model's stdout into cluster records. A non-array
// result is an error; an empty array is a legitimate "no hotspots" result.
func parseClusters(raw string) ([]models.Cluster, error) {
	s := sanitizeOutput(raw)
	if !strings.HasPrefix(s, "[") {
		return nil, fmt.Errorf("model output is not a JSON array")
	}

	var clusters []models.Cluster
	if err := json.Unmarshal([]byte(s), &clusters); err != nil {
		return nil, fmt.Errorf("failed to decode model output: %v", err)
	}
	if clusters == nil {
		clusters = []models.Cluster{}
	}
	return clusters, nil
}

// sanitizeOutput strips the escaping and quoting artifacts that shell-level
// plumbing can leave around the JSON array boundaries.
func sanitizeOutput(raw string) string {
	s := strings.TrimSpace(raw)

	// Unwrap one level of redundant quoting around the whole payload.
	for _, q := range []string{`'`, `"`} {
		if len(s) >= 2 && strings.HasPrefix(s, q) && strings.HasSuffix(s, q) {
			s = s[1 : len(s)-1]
		}
	}

	// Stray backslash escapes from nested quoting.
	if strings.Contains(s, `\"`) {
		s = strings.ReplaceAll(s, `\"`, `"`)
		s = strings.ReplaceAll(s, `\\`, `\`)
	}

	// Keep only the outermost array.
	start := strings.Index(s, "[")
	end := strings.LastIndex(s, "]")
	if start >= 0 && end > start {
		s = s[start : end+1]
	}
	return s
}
