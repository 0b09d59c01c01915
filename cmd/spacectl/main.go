// SPDX-License-Identifier: MIT

// Command spacectl samples from and checks membership against spaces
// described in YAML.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvspace/internal/cli"
)

func main() {
	for _, envFile := range []string{
		".env",
		"../../.env",
	} {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	cfg, err := cli.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	rootCmd := &cobra.Command{
		Use:           "spacectl",
		Short:         "Sample from and validate members of Dict/MultiBinary spaces.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&cfg.SpaceFile, "space", cfg.SpaceFile, "path to the YAML space descriptor")
	rootCmd.AddCommand(sampleCmd(&cfg), checkCmd(&cfg))

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func sampleCmd(cfg *cli.Config) *cobra.Command {
	var seed int64
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Seed the space and print a JSON record of sampled members",
		RunE: func(cmd *cobra.Command, args []string) error {
			sp, err := cli.LoadSpace(cfg.SpaceFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("seed") {
				cfg.Seed = &seed
			}
			rec, err := cli.Sample(sp, cfg.Seed, cfg.Count)
			if err != nil {
				return err
			}
			log.Printf("sampled %d from %s (record %s)", cfg.Count, rec.Space, rec.ID)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(rec)
		},
	}
	cmd.Flags().Int64Var(&seed, "seed", 0, "seed for the space tree (default: fresh entropy)")
	cmd.Flags().IntVarP(&cfg.Count, "count", "n", cfg.Count, "number of samples")

	return cmd
}

func checkCmd(cfg *cli.Config) *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Decode a JSON batch (or sample record) and report membership per sample",
		RunE: func(cmd *cobra.Command, args []string) error {
			sp, err := cli.LoadSpace(cfg.SpaceFile)
			if err != nil {
				return err
			}
			var data []byte
			if input == "" || input == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(input)
			}
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			results, err := cli.Check(sp, data)
			if err != nil {
				return err
			}
			bad := 0
			for i, ok := range results {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%t\n", i, ok)
				if !ok {
					bad++
				}
			}
			if bad > 0 {
				return fmt.Errorf("%d of %d samples are not members of %s", bad, len(results), sp)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "JSON file to check (default: stdin)")

	return cmd
}
