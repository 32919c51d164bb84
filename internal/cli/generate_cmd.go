package cli

import (
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/okian/medals/internal/adapters/catalog"
	"github.com/okian/medals/internal/domain/model"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// generateConfig describes a synthetic catalog.
type generateConfig struct {
	Medals     int
	Types      int
	MaxPrereqs int
	MaxYears   int
	Seed       uint64
}

func newGenerateCmd() *cobra.Command {
	cfg := generateConfig{}
	var outFile string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a synthetic acyclic catalog as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cfg.Medals < 1 || cfg.Types < 1 || cfg.MaxPrereqs < 0 || cfg.MaxYears < 0 {
				return fmt.Errorf("%w: counts must be positive", errUsage)
			}
			medals := generateMedals(cfg)
			if err := catalog.Validate(medals); err != nil {
				return err
			}
			data, err := yaml.Marshal(struct {
				Medals []model.Medal `yaml:"medals"`
			}{medals})
			if err != nil {
				return fmt.Errorf("encode catalog: %w", err)
			}
			if outFile == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(outFile, data, 0o644); err != nil {
				return fmt.Errorf("write catalog: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d medals to %s\n", len(medals), outFile)
			return nil
		},
	}

	cmd.Flags().IntVar(&cfg.Medals, "medals", 20, "Number of medals")
	cmd.Flags().IntVar(&cfg.Types, "types", 4, "Number of medal types (lanes)")
	cmd.Flags().IntVar(&cfg.MaxPrereqs, "max-prereqs", 2, "Maximum prerequisites per medal")
	cmd.Flags().IntVar(&cfg.MaxYears, "max-years", 4, "Maximum sustained years and wait per medal")
	cmd.Flags().Uint64Var(&cfg.Seed, "seed", 1, "Random seed; equal seeds give equal catalogs")
	cmd.Flags().StringVar(&outFile, "out", "", "Write to this file instead of stdout")

	return cmd
}

// generateMedals builds a random catalog whose prerequisites only point at
// earlier medals, so it is always acyclic.
func generateMedals(cfg generateConfig) []model.Medal {
	r := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	medals := make([]model.Medal, cfg.Medals)

	for i := range medals {
		m := model.Medal{
			ID:           fmt.Sprintf("medal-%03d", i),
			Category:     fmt.Sprintf("type-%d", r.IntN(cfg.Types)),
			DisplayLabel: fmt.Sprintf("Medal %d", i),
		}
		if cfg.MaxYears > 0 && r.IntN(2) == 0 {
			m.Requirements = []model.Requirement{{
				Kind:          model.RequirementSustained,
				Description:   "sustained service",
				YearsRequired: float64(1 + r.IntN(cfg.MaxYears)),
			}}
		}
		if i > 0 && cfg.MaxPrereqs > 0 {
			seen := map[int]bool{}
			for n := r.IntN(cfg.MaxPrereqs + 1); n > 0; n-- {
				j := r.IntN(i)
				if seen[j] {
					continue
				}
				seen[j] = true
				p := model.Prerequisite{Kind: model.PrereqMedal, MedalID: medals[j].ID}
				if cfg.MaxYears > 0 {
					if w := r.IntN(cfg.MaxYears + 1); w > 0 {
						p.WaitYears = model.Years(float64(w))
					}
				}
				m.Prerequisites = append(m.Prerequisites, p)
			}
		}
		medals[i] = m
	}
	return medals
}
