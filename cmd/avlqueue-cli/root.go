package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"avlqueue/pkg/avlqueue"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "avlqueue-cli",
	Short: "Inspect and drive a file-backed AVL-queue",
	Long: `avlqueue-cli opens the AVL-queue rooted at --db-dir (creating it on
first use), performs one operation, and persists the result before exiting.

Configuration can come from flags, AVLQUEUE_* environment variables, or a
config file, in that order of precedence.`,
}

// Execute runs the root command, exiting non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "avlqueue-cli:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.avlqueue-cli.yaml)")
	rootCmd.PersistentFlags().String("db-dir", "", "directory holding the file-backed queue (required)")
	rootCmd.PersistentFlags().String("order", "ascending", "sort order: ascending or descending")
	rootCmd.PersistentFlags().Int("max-value-bytes", 256, "maximum stored value size in bytes")

	for _, name := range []string{"db-dir", "order", "max-value-bytes"} {
		if err := viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)); err != nil {
			panic(err)
		}
	}
	viper.SetEnvPrefix("AVLQUEUE")
	viper.AutomaticEnv()

	rootCmd.AddCommand(insertCmd, removeCmd, popHeadCmd, popTailCmd, statsCmd, benchCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.SetConfigName(".avlqueue-cli")
	}
	_ = viper.ReadInConfig()
}

func marshalString(v string) ([]byte, error)   { return []byte(v), nil }
func unmarshalString(b []byte) (string, error) { return string(b), nil }

// openQueue opens the file-backed queue named by the db-dir config value,
// creating its directory if needed.
func openQueue() (*avlqueue.FileQueue[string], error) {
	dir := viper.GetString("db-dir")
	if dir == "" {
		return nil, fmt.Errorf("--db-dir (or AVLQUEUE_DB_DIR) is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	order := avlqueue.Ascending
	if strings.EqualFold(viper.GetString("order"), "descending") {
		order = avlqueue.Descending
	}

	return avlqueue.OpenFileQueue(dir, order, viper.GetInt("max-value-bytes"), marshalString, unmarshalString)
}
