package analysis

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/dealdesk/memogen/internal/config"
)

// parseFailure marks a run whose output carried no readable JSON. The
// pipeline treats this as a degraded result, not a failure.
const parseFailure = "Failed to parse Python script output"

// Result is the structured output of one analysis run. When the process
// output could not be parsed, Error is set and the analysis fields are empty.
type Result struct {
	MarketAnalysis     string `json:"market_analysis"`
	CompetitorAnalysis string `json:"competitor_analysis"`
	TraceID            string `json:"trace_id,omitempty"`
	Error              string `json:"error,omitempty"`
}

// Runner invokes the external market-analysis process and extracts its JSON
// result from mixed stdout.
type Runner struct {
	pythonPath string
	scriptPath string
	timeout    time.Duration
}

// NewRunner creates a Runner from config.
func NewRunner(cfg config.AnalysisConfig) *Runner {
	return &Runner{
		pythonPath: cfg.PythonPath,
		scriptPath: cfg.ScriptPath,
		timeout:    time.Duration(cfg.TimeoutSecs) * time.Second,
	}
}

// Run executes the analysis process with the opportunity summary and trace ID
// as positional arguments. Stdout is buffered for parsing; stderr is streamed
// to the log. A non-zero exit fails the run; an unparseable stdout does not.
func (r *Runner) Run(ctx context.Context, marketOpportunity, traceID string) (*Result, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	log := zap.L().With(zap.String("trace_id", traceID))

	cmd := exec.CommandContext(ctx, r.pythonPath, r.scriptPath, marketOpportunity, traceID)

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, eris.Wrap(err, "analysis: attach stderr")
	}

	if err := cmd.Start(); err != nil {
		return nil, eris.Wrap(err, "analysis: start process")
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		scanner := bufio.NewScanner(stderr)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			log.Warn("analysis: process stderr", zap.String("line", scanner.Text()))
		}
		if err := scanner.Err(); err != nil {
			log.Warn("analysis: read process stderr", zap.Error(err))
		}
	}()

	wg.Wait()
	if err := cmd.Wait(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, eris.Errorf("analysis: process exited with code %d", exitErr.ExitCode())
		}
		return nil, eris.Wrap(err, "analysis: run process")
	}

	result := ParseOutput(stdout.String())
	if result.Error != "" {
		log.Warn("analysis: could not parse process output", zap.Int("output_bytes", stdout.Len()))
	}
	return result, nil
}

// ParseOutput locates the JSON object in noisy process output by taking the
// span between the last "{" and the last "}". This is not true brace
// balancing: a payload containing nested objects or brace characters inside
// strings defeats it and degrades to the error marker. The heuristic matches
// the analysis tool's observed contract of printing one flat JSON document
// as its final output line.
func ParseOutput(output string) *Result {
	start := strings.LastIndex(output, "{")
	end := strings.LastIndex(output, "}")
	if start < 0 || end <= start {
		return &Result{Error: parseFailure}
	}

	var result Result
	if err := json.Unmarshal([]byte(output[start:end+1]), &result); err != nil {
		return &Result{Error: parseFailure}
	}

	return &result
}
