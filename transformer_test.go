package fieldcipher_test

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/hengadev/fieldcipher"
	"github.com/hengadev/fieldcipher/internal/framing"
	"github.com/hengadev/fieldcipher/internal/monitoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTransformer(t *testing.T, mode fieldcipher.Mode, opts ...fieldcipher.TransformerOption) *fieldcipher.Transformer {
	t.Helper()
	transformer, err := fieldcipher.NewTestTransformer(mode, opts...)
	require.NoError(t, err)
	return transformer
}

// TestProcessRecordRoundTrip tests the documented example: AES-CBC with a
// static IV over a single message field
func TestProcessRecordRoundTrip(t *testing.T) {
	ctx := context.Background()
	enc := newTestTransformer(t, fieldcipher.ModeEncrypt)
	dec := newTestTransformer(t, fieldcipher.ModeDecrypt)

	record := fieldcipher.Record{"message": "secret"}
	require.NoError(t, enc.ProcessRecord(ctx, record))

	ciphertext, ok := record["message"].(string)
	require.True(t, ok)
	assert.NotEqual(t, "secret", ciphertext)
	_, err := base64.StdEncoding.Strict().DecodeString(ciphertext)
	assert.NoError(t, err, "ciphertext should be valid base64")

	require.NoError(t, dec.ProcessRecord(ctx, record))
	assert.Equal(t, "secret", record["message"])
}

// TestProcessRecordRandomIV tests IV freshness and the full wire format
func TestProcessRecordRandomIV(t *testing.T) {
	ctx := context.Background()
	randomize := func(cfg *fieldcipher.Config) {
		cfg.IV = ""
		cfg.IVRandomLength = 16
	}

	encCfg := fieldcipher.NewTestConfig(fieldcipher.ModeEncrypt)
	randomize(encCfg)
	decCfg := fieldcipher.NewTestConfig(fieldcipher.ModeDecrypt)
	randomize(decCfg)

	enc, err := fieldcipher.NewTransformer(encCfg, fieldcipher.WithLogger(monitoring.NewNopLogger()))
	require.NoError(t, err)
	dec, err := fieldcipher.NewTransformer(decCfg, fieldcipher.WithLogger(monitoring.NewNopLogger()))
	require.NoError(t, err)

	first := fieldcipher.Record{"message": "same plaintext"}
	second := fieldcipher.Record{"message": "same plaintext"}
	require.NoError(t, enc.ProcessRecord(ctx, first))
	require.NoError(t, enc.ProcessRecord(ctx, second))

	assert.NotEqual(t, first["message"], second["message"], "a fresh IV must yield a fresh ciphertext")

	require.NoError(t, dec.ProcessRecord(ctx, first))
	require.NoError(t, dec.ProcessRecord(ctx, second))
	assert.Equal(t, "same plaintext", first["message"])
	assert.Equal(t, "same plaintext", second["message"])
}

// TestWireFormat verifies the documented layout
// base64( iv ++ cipher( ":$;" ++ deflate(plaintext) ) ) piece by piece
func TestWireFormat(t *testing.T) {
	ctx := context.Background()
	cfg := fieldcipher.NewTestConfig(fieldcipher.ModeEncrypt)
	cfg.IV = ""
	cfg.IVRandomLength = 16

	enc, err := fieldcipher.NewTransformer(cfg, fieldcipher.WithLogger(monitoring.NewNopLogger()))
	require.NoError(t, err)

	record := fieldcipher.Record{"message": "wire format payload"}
	require.NoError(t, enc.ProcessRecord(ctx, record))

	raw, err := base64.StdEncoding.Strict().DecodeString(record["message"].(string))
	require.NoError(t, err)
	require.Greater(t, len(raw), 16, "output must carry the IV prefix")
	iv, body := raw[:16], raw[16:]

	decCfg := fieldcipher.NewTestConfig(fieldcipher.ModeDecrypt)
	decCfg.IV = ""
	decCfg.IVRandomLength = 16
	engine, err := fieldcipher.NewEngine(decCfg)
	require.NoError(t, err)

	framed, err := engine.Transform(body, iv)
	require.NoError(t, err)
	assert.True(t, framing.IsWrapped(framed), "random-IV mode must frame the plaintext")

	plaintext, err := framing.Unwrap(framed)
	require.NoError(t, err)
	assert.Equal(t, "wire format payload", string(plaintext))
}

// TestProcessRecordFieldSelection tests exclusion lists and empty values
func TestProcessRecordFieldSelection(t *testing.T) {
	ctx := context.Background()
	cfg := fieldcipher.NewTestConfig(fieldcipher.ModeEncrypt)
	cfg.ExcludeFields = []string{"host"}

	enc, err := fieldcipher.NewTransformer(cfg, fieldcipher.WithLogger(monitoring.NewNopLogger()))
	require.NoError(t, err)

	record := fieldcipher.Record{
		"host":    "web-1",
		"message": "secret",
		"empty":   "",
		"missing": nil,
	}
	require.NoError(t, enc.ProcessRecord(ctx, record))

	assert.Equal(t, "web-1", record["host"], "excluded fields are never mutated")
	assert.Equal(t, "", record["empty"], "empty values are skipped")
	assert.Nil(t, record["missing"], "nil values are skipped")
	assert.NotEqual(t, "secret", record["message"])
}

// TestProcessRecordScalarStringification tests non-string scalar handling
func TestProcessRecordScalarStringification(t *testing.T) {
	ctx := context.Background()
	enc := newTestTransformer(t, fieldcipher.ModeEncrypt)
	dec := newTestTransformer(t, fieldcipher.ModeDecrypt)

	record := fieldcipher.Record{"count": 42, "ratio": 1.5, "active": true}
	require.NoError(t, enc.ProcessRecord(ctx, record))
	require.NoError(t, dec.ProcessRecord(ctx, record))

	assert.Equal(t, "42", record["count"])
	assert.Equal(t, "1.5", record["ratio"])
	assert.Equal(t, "true", record["active"])
}

// TestProcessRecordAbortOnFailure tests record-level failure semantics:
// earlier fields keep their transformed values, later fields stay untouched,
// and the transformer keeps working afterwards
func TestProcessRecordAbortOnFailure(t *testing.T) {
	ctx := context.Background()
	enc := newTestTransformer(t, fieldcipher.ModeEncrypt)

	seed := fieldcipher.Record{"alpha": "first", "zulu": "last"}
	require.NoError(t, enc.ProcessRecord(ctx, seed))
	encryptedAlpha := seed["alpha"].(string)
	encryptedZulu := seed["zulu"].(string)

	metrics := fieldcipher.NewInMemoryMetricsCollector()
	dec := newTestTransformer(t, fieldcipher.ModeDecrypt, fieldcipher.WithMetricsCollector(metrics))

	// Fields are visited in sorted order: alpha decrypts, mid fails on
	// base64, zulu is never reached.
	record := fieldcipher.Record{
		"alpha": encryptedAlpha,
		"mid":   "%%%not-base64%%%",
		"zulu":  encryptedZulu,
	}
	err := dec.ProcessRecord(ctx, record)
	require.Error(t, err)
	assert.True(t, fieldcipher.IsDecodeError(err))

	assert.Equal(t, "first", record["alpha"], "fields before the failure keep their transformed values")
	assert.Equal(t, "%%%not-base64%%%", record["mid"], "the failing field is left as-is")
	assert.Equal(t, encryptedZulu, record["zulu"], "fields after the failure stay untouched")
	assert.EqualValues(t, 1, metrics.CounterValue("fieldcipher.record.failures"))

	// The engine was rebuilt; the next record must process normally.
	next := fieldcipher.Record{"alpha": encryptedAlpha}
	require.NoError(t, dec.ProcessRecord(ctx, next))
	assert.Equal(t, "first", next["alpha"])
}

// TestProcessRecordShortInputRandomIV tests the IV split length check
func TestProcessRecordShortInputRandomIV(t *testing.T) {
	ctx := context.Background()
	cfg := fieldcipher.NewTestConfig(fieldcipher.ModeDecrypt)
	cfg.IV = ""
	cfg.IVRandomLength = 16

	dec, err := fieldcipher.NewTransformer(cfg, fieldcipher.WithLogger(monitoring.NewNopLogger()))
	require.NoError(t, err)

	short := base64.StdEncoding.EncodeToString([]byte("tiny"))
	record := fieldcipher.Record{"message": short}
	err = dec.ProcessRecord(ctx, record)
	require.Error(t, err)
	assert.True(t, fieldcipher.IsDecodeError(err))
	assert.Equal(t, short, record["message"])
}

// TestProcessRecordInvalidUTF8 tests the encoding check on decrypt output
func TestProcessRecordInvalidUTF8(t *testing.T) {
	ctx := context.Background()

	// Encrypt raw non-UTF-8 bytes at the engine level, then feed the result
	// through the decrypt pipeline.
	engine, err := fieldcipher.NewEngine(fieldcipher.NewTestConfig(fieldcipher.ModeEncrypt))
	require.NoError(t, err)
	ciphertext, err := engine.Transform([]byte{0xff, 0xfe, 0x01}, nil)
	require.NoError(t, err)

	dec := newTestTransformer(t, fieldcipher.ModeDecrypt)
	record := fieldcipher.Record{"message": base64.StdEncoding.EncodeToString(ciphertext)}
	err = dec.ProcessRecord(ctx, record)
	require.Error(t, err)
	assert.True(t, fieldcipher.IsEncodingError(err))
}

// TestProcessRecordObservability tests hook and metrics wiring
func TestProcessRecordObservability(t *testing.T) {
	ctx := context.Background()
	metrics := fieldcipher.NewInMemoryMetricsCollector()
	enc := newTestTransformer(t, fieldcipher.ModeEncrypt, fieldcipher.WithMetricsCollector(metrics))

	record := fieldcipher.Record{"message": "secret", "other": "value"}
	require.NoError(t, enc.ProcessRecord(ctx, record))

	assert.EqualValues(t, 2, metrics.CounterValue("fieldcipher.field.transformed"))
	require.Len(t, metrics.Timings(), 1)
	assert.Equal(t, "fieldcipher.record.duration", metrics.Timings()[0].Name)
}
