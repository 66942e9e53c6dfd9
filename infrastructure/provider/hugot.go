package provider

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"
)

// hugotBatchMax caps the number of texts per local inference call.
const hugotBatchMax = 10

// hugotSingleton holds the process-wide hugot session and pipeline. The
// underlying runtime allows only one active session per process, so all
// HugotProvider instances share it. The mutex serializes initialization and
// inference (the runtime is not thread-safe).
var hugotSingleton struct {
	session  *hugot.Session
	pipeline *pipelines.FeatureExtractionPipeline
	mu       sync.Mutex
	ready    bool
}

// HugotProvider generates embeddings locally with an ONNX sentence-encoder
// model via hugot. The model directory must contain a subdirectory with
// tokenizer.json and the ONNX weights (e.g. all-MiniLM-L6-v2 exported from
// sentence-transformers).
type HugotProvider struct {
	modelDir string
}

// NewHugotProvider creates a HugotProvider that looks for model files in
// modelDir.
func NewHugotProvider(modelDir string) *HugotProvider {
	return &HugotProvider{modelDir: modelDir}
}

// Available reports whether a usable model directory exists on disk.
func (h *HugotProvider) Available() bool {
	_, err := h.modelPath()
	return err == nil
}

func (h *HugotProvider) initialize() error {
	hugotSingleton.mu.Lock()
	defer hugotSingleton.mu.Unlock()

	if hugotSingleton.ready {
		return nil
	}

	session, err := hugot.NewGoSession()
	if err != nil {
		return fmt.Errorf("create hugot session: %w", err)
	}

	modelPath, err := h.modelPath()
	if err != nil {
		_ = session.Destroy()
		return err
	}

	config := hugot.FeatureExtractionConfig{
		ModelPath: modelPath,
		Name:      "local-embeddings",
		Options: []hugot.FeatureExtractionOption{
			pipelines.WithNormalization(),
		},
	}
	pipeline, err := hugot.NewPipeline(session, config)
	if err != nil {
		_ = session.Destroy()
		return fmt.Errorf("create feature extraction pipeline: %w", err)
	}

	hugotSingleton.session = session
	hugotSingleton.pipeline = pipeline
	hugotSingleton.ready = true
	return nil
}

// modelPath looks for a subdirectory of modelDir containing tokenizer.json.
func (h *HugotProvider) modelPath() (string, error) {
	entries, err := os.ReadDir(h.modelDir)
	if err != nil {
		return "", fmt.Errorf("read model directory %s: %w", h.modelDir, err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		candidate := filepath.Join(h.modelDir, entry.Name())
		if _, statErr := os.Stat(filepath.Join(candidate, "tokenizer.json")); statErr == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no model subdirectory with tokenizer.json found in %s", h.modelDir)
}

// Embed generates embeddings for the given texts using the local model.
// Inputs beyond hugotBatchMax are processed in sequential batches.
func (h *HugotProvider) Embed(ctx context.Context, req EmbeddingRequest) (EmbeddingResponse, error) {
	texts := req.Texts()
	if len(texts) == 0 {
		return NewEmbeddingResponse(nil, 0), nil
	}

	if err := h.initialize(); err != nil {
		return EmbeddingResponse{}, fmt.Errorf("initialize hugot: %w", err)
	}

	embeddings := make([][]float64, 0, len(texts))
	for start := 0; start < len(texts); start += hugotBatchMax {
		if err := ctx.Err(); err != nil {
			return EmbeddingResponse{}, err
		}

		end := min(start+hugotBatchMax, len(texts))

		batch, err := runHugotBatch(texts[start:end])
		if err != nil {
			return EmbeddingResponse{}, err
		}
		embeddings = append(embeddings, batch...)
	}

	return NewEmbeddingResponse(embeddings, 0), nil
}

// runHugotBatch runs one inference call under the singleton mutex.
func runHugotBatch(texts []string) ([][]float64, error) {
	hugotSingleton.mu.Lock()
	defer hugotSingleton.mu.Unlock()

	result, err := hugotSingleton.pipeline.RunPipeline(texts)
	if err != nil {
		return nil, fmt.Errorf("run embedding pipeline: %w", err)
	}

	embeddings := make([][]float64, len(result.Embeddings))
	for i, vec32 := range result.Embeddings {
		vec64 := make([]float64, len(vec32))
		for j, v := range vec32 {
			vec64[j] = float64(v)
		}
		embeddings[i] = vec64
	}
	return embeddings, nil
}

// Close is a no-op. The session is process-global and shared across all
// HugotProvider instances; it is cleaned up when the process exits.
func (h *HugotProvider) Close() error { return nil }

var _ Embedder = (*HugotProvider)(nil)
