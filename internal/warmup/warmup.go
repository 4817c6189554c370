package warmup

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/baditaflorin/go_text_normalizer/internal/ports"
)

// WarmupConfig defines configuration for warming up normalizers
type WarmupConfig struct {
	// Number of concurrent warmup routines to run
	Concurrency int
	// Number of iterations per routine
	Iterations int
	// Sample text size for warmup
	SampleTextSize int
	// Warmup duration (0 means no time limit)
	Duration time.Duration
	// Whether to perform GC after warmup
	ForceGC bool
}

// DefaultWarmupConfig returns the default warmup configuration
func DefaultWarmupConfig() WarmupConfig {
	return WarmupConfig{
		Concurrency:    runtime.NumCPU(),
		Iterations:     1000,
		SampleTextSize: 1000,
		Duration:       5 * time.Second,
		ForceGC:        true,
	}
}

// Validate checks if the configuration is valid.
func (c WarmupConfig) Validate() error {
	if c.Concurrency <= 0 {
		return errors.New("concurrency must be greater than 0")
	}
	if c.Iterations < 0 {
		return errors.New("iterations must not be negative")
	}
	if c.SampleTextSize < 0 {
		return errors.New("sample text size must not be negative")
	}
	if c.Duration < 0 {
		return errors.New("duration must not be negative")
	}
	return nil
}

// Manager handles warmup of registered normalizers
type Manager struct {
	logger      ports.Logger
	normalizers []ports.Normalizer
	config      WarmupConfig
}

// NewManager creates a new warmup manager
func NewManager(logger ports.Logger, config WarmupConfig) *Manager {
	return &Manager{
		logger: logger,
		config: config,
	}
}

// RegisterNormalizer adds a normalizer to be warmed up
func (wm *Manager) RegisterNormalizer(norm ports.Normalizer) {
	wm.normalizers = append(wm.normalizers, norm)
}

// WarmUp runs every registered normalizer over a mix of text, valid bytes and
// invalid bytes so pooled decoders and buffers are populated before real traffic.
// It returns the number of normalizations performed.
func (wm *Manager) WarmUp(ctx context.Context) int {
	startTime := time.Now()
	wm.logger.Info("Starting normalizer warmup",
		"components", len(wm.normalizers),
		"concurrency", wm.config.Concurrency,
		"iterations", wm.config.Iterations,
	)

	// Create a context with timeout if duration is specified
	warmupCtx := ctx
	if wm.config.Duration > 0 {
		var cancel context.CancelFunc
		warmupCtx, cancel = context.WithTimeout(ctx, wm.config.Duration)
		defer cancel()
	}

	performed := wm.warmUpNormalizers(warmupCtx)

	if wm.config.ForceGC {
		wm.logger.Debug("Forcing garbage collection after warmup")
		runtime.GC()
	}

	wm.logger.Info("Normalizer warmup completed",
		"duration", time.Since(startTime),
		"normalizations", performed,
	)
	return performed
}

// warmUpNormalizers runs warmup for all registered normalizers
func (wm *Manager) warmUpNormalizers(ctx context.Context) int {
	if len(wm.normalizers) == 0 || wm.config.Concurrency <= 0 {
		return 0
	}

	wm.logger.Debug("Warming up normalizers", "count", len(wm.normalizers))

	samples := generateSamples(wm.config.SampleTextSize)

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		total int
	)
	for i := 0; i < wm.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			count := 0
			defer func() {
				mu.Lock()
				total += count
				mu.Unlock()
			}()

			for j := 0; j < wm.config.Iterations; j++ {
				select {
				case <-ctx.Done():
					return
				default:
				}

				sample := samples[j%len(samples)]
				for _, normalizer := range wm.normalizers {
					_ = normalizer.Normalize(sample)
					count++
				}
			}
		}()
	}

	wg.Wait()
	return total
}

// generateSamples returns one value of each input kind the normalizer handles
func generateSamples(size int) []any {
	text := generateSampleText(size)
	invalid := []byte(text)
	for i := 7; i < len(invalid); i += 13 {
		invalid[i] = 0xff
	}
	return []any{
		text,
		[]byte(text),
		invalid,
		size,
	}
}

// generateSampleText creates sample text of the specified size
func generateSampleText(size int) string {
	words := []string{
		"the", "quick", "brown", "fox", "jumps", "over", "lazy", "dog",
		"héllo", "wörld", "éditeur", "texte", "größe", "ñandú", "żółw",
		"lorem", "ipsum", "dolor", "sit", "amet",
	}

	var sb strings.Builder
	wordsNeeded := size / 5 // Assuming average word length of 5

	for i := 0; i < wordsNeeded; i++ {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(words[i%len(words)])
	}

	result := sb.String()
	if len(result) > size {
		return result[:size]
	}
	return result
}
