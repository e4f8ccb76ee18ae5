// Package fieldcipher provides field-level symmetric encryption and
// decryption for structured records in event pipelines.
//
// Given a mutable record (a mapping of field names to values), a
// Transformer selectively encrypts or decrypts a subset of fields in place
// using a non-AEAD block cipher, with optional random-IV prepending,
// optional compression framing, and optional base64 text-safe encoding.
//
// # Key Features
//
//   - In-place field transforms over caller-owned records
//   - OpenSSL-style algorithm names: AES, DES, 3DES, Blowfish, Twofish,
//     CAST5 in CBC, CFB, OFB and CTR modes
//   - Random-IV mode: a fresh IV per encryption, prepended to the
//     ciphertext so the decrypt side can recover it
//   - Compression framing of plaintext (marker + deflate) in random-IV mode
//   - Field exclusion lists and automatic skipping of empty values
//   - Record-level failure isolation: one bad field aborts the record,
//     the engine is rebuilt, and the pipeline keeps running
//
// # Quick Start
//
//	cfg, err := fieldcipher.NewConfig(
//	    fieldcipher.WithAlgorithm("aes-256-cbc"),
//	    fieldcipher.WithMode(fieldcipher.ModeEncrypt),
//	    fieldcipher.WithKey("my-very-secret-key-material"),
//	    fieldcipher.WithKeySize(32),
//	    fieldcipher.WithRandomIV(16),
//	    fieldcipher.WithExcludeFields("host", "timestamp"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	transformer, err := fieldcipher.NewTransformer(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	record := fieldcipher.Record{"message": "secret payload", "host": "web-1"}
//	if err := transformer.ProcessRecord(ctx, record); err != nil {
//	    // record is partially transformed; leave it untagged
//	}
//
// # Wire Format
//
// Encrypting with random IV and base64 both active produces
//
//	base64( iv_bytes ++ cipher( ":$;" ++ deflate(plaintext) ) )
//
// and decryption exactly inverts it. With a static IV there is no IV prefix
// and no compression framing.
//
// # Error Handling
//
// Errors are classified with sentinel errors and errors.Is helpers:
//
//	if err := transformer.ProcessRecord(ctx, record); err != nil {
//	    switch {
//	    case fieldcipher.IsDecodeError(err):
//	        // malformed base64 or corrupt compressed frame
//	    case fieldcipher.IsCipherError(err):
//	        // block alignment or padding violation, wrong key or IV
//	    case fieldcipher.IsEncodingError(err):
//	        // decrypted output is not valid UTF-8
//	    }
//	}
//
// Configuration errors (IsConfigurationError) are fatal at initialization;
// per-record transform errors are recoverable — the transformer rebuilds its
// engine and the next record proceeds normally.
//
// # Concurrency
//
// A Transformer processes records sequentially and holds a single cipher
// engine; it must not be invoked from two goroutines at once. Instantiate
// one Transformer per worker, or serialize access externally.
package fieldcipher
