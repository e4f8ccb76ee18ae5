package fieldcipher

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"sort"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/hengadev/fieldcipher/internal/framing"
	"github.com/hengadev/fieldcipher/internal/monitoring"
)

// Record is a mutable mapping from field name to value, owned entirely by
// the caller. The transformer rewrites selected string-convertible fields in
// place and never adds or removes keys.
type Record map[string]any

// Transformer iterates a record's fields, decides per field whether to
// transform it, and orchestrates the encode/decode pipeline (base64,
// compression framing, IV handling) around the Engine.
//
// A Transformer processes records sequentially and must not be invoked from
// two goroutines at once; instantiate one per worker instead.
type Transformer struct {
	cfg     *Config
	engine  *Engine
	logger  *monitoring.StructuredLogger
	metrics MetricsCollector
	hook    ObservabilityHook
}

// TransformerOption customizes a Transformer beyond its cipher configuration.
type TransformerOption func(*Transformer)

// WithLogger replaces the default structured logger.
func WithLogger(logger *monitoring.StructuredLogger) TransformerOption {
	return func(t *Transformer) {
		t.logger = logger
	}
}

// WithMetricsCollector sets the metrics collector.
func WithMetricsCollector(collector MetricsCollector) TransformerOption {
	return func(t *Transformer) {
		t.metrics = collector
	}
}

// WithObservabilityHook sets the observability hook.
func WithObservabilityHook(hook ObservabilityHook) TransformerOption {
	return func(t *Transformer) {
		t.hook = hook
	}
}

// NewTransformer validates the configuration, builds the cipher engine and
// returns a ready Transformer. Configuration failures are fatal and wrap
// ErrInvalidConfiguration.
func NewTransformer(cfg *Config, opts ...TransformerOption) (*Transformer, error) {
	engine, err := NewEngine(cfg)
	if err != nil {
		return nil, err
	}

	t := &Transformer{
		cfg:     cfg,
		engine:  engine,
		logger:  monitoring.NewProductionLogger("transformer"),
		metrics: &NoOpMetricsCollector{},
		hook:    &NoOpObservabilityHook{},
	}
	for _, opt := range opts {
		opt(t)
	}

	t.logger.Debug("cipher engine initialized",
		"algorithm", engine.Algorithm(),
		"mode", string(cfg.Mode),
		"random_iv", cfg.RandomIV(),
	)
	return t, nil
}

// ProcessRecord transforms every eligible field of rec in place and returns
// nil exactly once the full field loop has completed, at which point the
// caller may tag the record as matched.
//
// Fields are visited in sorted name order. A field is skipped when its name
// is on the exclusion list or its stringified value is empty. The first
// field error aborts the whole record: fields transformed before the
// failure keep their new values, later fields stay untouched, the engine is
// unconditionally torn down and rebuilt, the failure is logged, and the
// error is returned so the caller leaves the record untagged.
func (t *Transformer) ProcessRecord(ctx context.Context, rec Record) error {
	start := time.Now()
	operation := string(t.cfg.Mode)
	t.hook.OnProcessStart(ctx, operation, map[string]any{"fields": len(rec)})

	names := make([]string, 0, len(rec))
	for name := range rec {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if t.cfg.excluded(name) {
			continue
		}
		value := fieldString(rec[name])
		if value == "" {
			continue
		}

		var out string
		var err error
		if t.cfg.Mode == ModeEncrypt {
			out, err = t.encryptValue(name, value)
		} else {
			out, err = t.decryptValue(name, value)
		}
		if err != nil {
			t.metrics.IncrementCounter("fieldcipher.record.failures", map[string]string{"operation": operation})
			t.logger.LogTransformFailure(ctx, name, err, map[string]any{"operation": operation})
			t.hook.OnError(ctx, operation, err, map[string]any{"field": name})
			// The engine may hold corrupt internal state after a failed
			// operation; tear it down and rebuild before the next record.
			t.rebuildEngine(ctx)
			t.hook.OnProcessComplete(ctx, operation, time.Since(start), err, map[string]any{"field": name})
			return err
		}
		rec[name] = out
		t.metrics.IncrementCounter("fieldcipher.field.transformed", map[string]string{"operation": operation})
	}

	duration := time.Since(start)
	t.metrics.RecordTiming("fieldcipher.record.duration", duration, map[string]string{"operation": operation})
	t.hook.OnProcessComplete(ctx, operation, duration, nil, map[string]any{"fields": len(rec)})
	return nil
}

// encryptValue builds the wire format for one field value:
//
//	base64( iv ++ cipher( ":$;" ++ deflate(plaintext) ) )
//
// with the iv prefix and framing only present in random-IV mode, and the
// base64 layer only when enabled.
func (t *Transformer) encryptValue(name, value string) (string, error) {
	data := []byte(value)

	var iv []byte
	if t.cfg.RandomIV() {
		iv = make([]byte, t.cfg.IVRandomLength)
		if _, err := rand.Read(iv); err != nil {
			return "", NewCipherError(name, fmt.Errorf("failed to generate random IV: %w", err))
		}
		// Framing is coupled to random-IV mode: the plaintext is always
		// compressed when a random IV is in play.
		wrapped, err := framing.Wrap(data)
		if err != nil {
			return "", NewCipherError(name, err)
		}
		data = wrapped
	}

	ciphertext, err := t.engine.Transform(data, iv)
	if err != nil {
		return "", NewCipherError(name, err)
	}

	if iv != nil {
		ciphertext = append(iv, ciphertext...)
	}

	if t.cfg.UseBase64() {
		return base64.StdEncoding.EncodeToString(ciphertext), nil
	}
	return string(ciphertext), nil
}

// decryptValue exactly inverts encryptValue.
func (t *Transformer) decryptValue(name, value string) (string, error) {
	data := []byte(value)

	if t.cfg.UseBase64() {
		decoded, err := base64.StdEncoding.Strict().DecodeString(value)
		if err != nil {
			return "", NewDecodeError(name, err)
		}
		data = decoded
	}

	var iv []byte
	if t.cfg.RandomIV() {
		if len(data) < t.cfg.IVRandomLength {
			return "", NewDecodeError(name, fmt.Errorf("input shorter than the %d-byte IV prefix", t.cfg.IVRandomLength))
		}
		iv, data = data[:t.cfg.IVRandomLength], data[t.cfg.IVRandomLength:]
	}

	plaintext, err := t.engine.Transform(data, iv)
	if err != nil {
		return "", NewCipherError(name, err)
	}

	if framing.IsWrapped(plaintext) {
		unwrapped, err := framing.Unwrap(plaintext)
		if err != nil {
			return "", NewDecodeError(name, err)
		}
		plaintext = unwrapped
	}

	if !utf8.Valid(plaintext) {
		return "", NewEncodingError(name)
	}
	return string(plaintext), nil
}

// rebuildEngine discards the current cipher context and constructs a fresh
// engine from the immutable configuration. The configuration was valid at
// startup, so a rebuild failure indicates an environment problem; the
// transformer then fails every subsequent record until rebuilt successfully.
func (t *Transformer) rebuildEngine(ctx context.Context) {
	t.engine.Reset()
	fresh, err := NewEngine(t.cfg)
	t.logger.LogEngineRebuild(ctx, t.cfg.Algorithm, err)
	if err != nil {
		return
	}
	t.engine = fresh
}

// fieldString renders a scalar field value for ciphering. Unsupported types
// and nil render empty, which the field loop treats as skip.
func fieldString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case float32:
		return strconv.FormatFloat(float64(val), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case fmt.Stringer:
		return val.String()
	default:
		return ""
	}
}
