package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Global flags
	configFile string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "fieldcipher",
	Short: "Field-level cipher transform for NDJSON records",
	Long: `fieldcipher encrypts or decrypts selected fields of newline-delimited
JSON records in place, using a symmetric block cipher with optional
random-IV prepending, compression framing, and base64 encoding.

Configuration is read from flags, FIELDCIPHER_* environment variables,
or a YAML config file (--config), in that order of precedence.

Commands:
  encrypt    Encrypt eligible fields of each input record
  decrypt    Decrypt eligible fields of each input record`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initViper)

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.PersistentFlags().String("algorithm", "", "cipher algorithm name (e.g. aes-256-cbc)")
	rootCmd.PersistentFlags().String("key", "", "symmetric key material")
	rootCmd.PersistentFlags().Int("key-size", 0, "normalized key length in bytes (default 16)")
	rootCmd.PersistentFlags().String("iv", "", "static initialization vector (deprecated)")
	rootCmd.PersistentFlags().Int("iv-random-length", 0, "random IV length in bytes (takes precedence over --iv)")
	rootCmd.PersistentFlags().String("cipher-padding", "", "block padding scheme (pkcs7, pkcs5, none)")
	rootCmd.PersistentFlags().StringSlice("exclude-fields", nil, "field names never transformed")
	rootCmd.PersistentFlags().Bool("base64", true, "base64-encode ciphertext")

	viper.BindPFlag("algorithm", rootCmd.PersistentFlags().Lookup("algorithm"))
	viper.BindPFlag("key", rootCmd.PersistentFlags().Lookup("key"))
	viper.BindPFlag("key_size", rootCmd.PersistentFlags().Lookup("key-size"))
	viper.BindPFlag("iv", rootCmd.PersistentFlags().Lookup("iv"))
	viper.BindPFlag("iv_random_length", rootCmd.PersistentFlags().Lookup("iv-random-length"))
	viper.BindPFlag("cipher_padding", rootCmd.PersistentFlags().Lookup("cipher-padding"))
	viper.BindPFlag("exclude_fields", rootCmd.PersistentFlags().Lookup("exclude-fields"))
	viper.BindPFlag("base64", rootCmd.PersistentFlags().Lookup("base64"))
}

func initViper() {
	viper.SetEnvPrefix("FIELDCIPHER")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to read config file: %v\n", err)
			os.Exit(1)
		}
	}
}
