package matcher

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

const (
	defaultSeqLen     = 256
	defaultHiddenSize = 384
)

// ONNXEmbedder runs a pre-trained sentence-embedding model (MiniLM-style
// encoder exported to ONNX) through onnxruntime. It mean-pools the final
// hidden states over the attention mask and L2-normalizes the result.
type ONNXEmbedder struct {
	session   *ort.AdvancedSession
	tokenizer *wordPieceTokenizer
	seqLen    int
	hidden    int

	inputIDs      *ort.Tensor[int64]
	attentionMask *ort.Tensor[int64]
	output        *ort.Tensor[float32]

	mu sync.Mutex
}

// EmbedderConfig locates the model bundle on disk. BundleDir must contain
// model.onnx and tokenizer/vocab.txt.
type EmbedderConfig struct {
	BundleDir  string
	SeqLen     int
	HiddenSize int
}

// LoadEmbedder initializes the onnxruntime session and tokenizer.
func LoadEmbedder(cfg EmbedderConfig) (*ONNXEmbedder, error) {
	if strings.TrimSpace(cfg.BundleDir) == "" {
		return nil, errors.New("model bundle dir is required")
	}
	seqLen := cfg.SeqLen
	if seqLen <= 0 {
		seqLen = defaultSeqLen
	}
	hidden := cfg.HiddenSize
	if hidden <= 0 {
		hidden = defaultHiddenSize
	}

	libPath := resolveSharedLibraryPath(cfg.BundleDir)
	if libPath == "" {
		return nil, errors.New("onnxruntime shared library not found; set ONNXRUNTIME_SHARED_LIBRARY_PATH or install the runtime")
	}
	ort.SetSharedLibraryPath(libPath)

	if !ort.IsInitialized() {
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, fmt.Errorf("initialize onnxruntime: %w", err)
		}
	}

	modelPath := filepath.Join(cfg.BundleDir, "model.onnx")
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("model file missing at %s: %w", modelPath, err)
	}

	tokenizer, err := loadWordPieceTokenizer(filepath.Join(cfg.BundleDir, "tokenizer", "vocab.txt"))
	if err != nil {
		return nil, fmt.Errorf("load tokenizer: %w", err)
	}

	inputShape := ort.NewShape(1, int64(seqLen))
	inputIDs, err := ort.NewEmptyTensor[int64](inputShape)
	if err != nil {
		return nil, fmt.Errorf("allocate input_ids tensor: %w", err)
	}
	attnMask, err := ort.NewEmptyTensor[int64](inputShape)
	if err != nil {
		return nil, fmt.Errorf("allocate attention_mask tensor: %w", err)
	}
	output, err := ort.NewEmptyTensor[float32](ort.NewShape(1, int64(seqLen), int64(hidden)))
	if err != nil {
		return nil, fmt.Errorf("allocate output tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(
		modelPath,
		[]string{"input_ids", "attention_mask"},
		[]string{"last_hidden_state"},
		[]ort.Value{inputIDs, attnMask},
		[]ort.Value{output},
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("create onnx session: %w", err)
	}

	return &ONNXEmbedder{
		session:       session,
		tokenizer:     tokenizer,
		seqLen:        seqLen,
		hidden:        hidden,
		inputIDs:      inputIDs,
		attentionMask: attnMask,
		output:        output,
	}, nil
}

// Embed tokenizes text and runs a single forward pass. The session reuses
// pre-allocated tensors, so calls are serialized.
func (e *ONNXEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if e == nil || e.session == nil {
		return nil, errors.New("embedder is not initialized")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ids, mask := e.tokenizer.encode(text, e.seqLen)

	e.mu.Lock()
	defer e.mu.Unlock()

	copy(e.inputIDs.GetData(), ids)
	copy(e.attentionMask.GetData(), mask)

	if err := e.session.Run(); err != nil {
		return nil, fmt.Errorf("onnx run: %w", err)
	}

	return meanPool(e.output.GetData(), mask, e.seqLen, e.hidden), nil
}

// Close releases the onnxruntime session and tensors.
func (e *ONNXEmbedder) Close() error {
	if e == nil || e.session == nil {
		return nil
	}
	err := e.session.Destroy()
	e.inputIDs.Destroy()
	e.attentionMask.Destroy()
	e.output.Destroy()
	e.session = nil
	return err
}

// meanPool averages token hidden states where the attention mask is set and
// L2-normalizes the pooled vector.
func meanPool(hiddenStates []float32, mask []int64, seqLen, hidden int) []float32 {
	pooled := make([]float32, hidden)
	tokens := 0

	for pos := 0; pos < seqLen; pos++ {
		if pos >= len(mask) || mask[pos] == 0 {
			continue
		}
		tokens++
		base := pos * hidden
		for i := 0; i < hidden && base+i < len(hiddenStates); i++ {
			pooled[i] += hiddenStates[base+i]
		}
	}

	if tokens == 0 {
		return pooled
	}

	var norm float64
	for i := range pooled {
		pooled[i] /= float32(tokens)
		norm += float64(pooled[i]) * float64(pooled[i])
	}

	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range pooled {
			pooled[i] = float32(float64(pooled[i]) / norm)
		}
	}

	return pooled
}

// resolveSharedLibraryPath locates the platform onnxruntime library. The
// ONNXRUNTIME_SHARED_LIBRARY_PATH environment variable wins when set.
func resolveSharedLibraryPath(bundleDir string) string {
	if env := strings.TrimSpace(os.Getenv("ONNXRUNTIME_SHARED_LIBRARY_PATH")); env != "" {
		return env
	}

	var names []string
	switch runtime.GOOS {
	case "darwin":
		names = []string{"libonnxruntime.dylib", "onnxruntime.dylib"}
	case "windows":
		names = []string{"onnxruntime.dll"}
	default:
		names = []string{"libonnxruntime.so", "onnxruntime.so"}
	}

	dirs := []string{
		bundleDir,
		filepath.Join(bundleDir, "lib"),
		"/usr/lib",
		"/usr/local/lib",
	}

	for _, dir := range dirs {
		for _, name := range names {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}
	}

	return ""
}
