package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/joestump/pagegen/internal/errcode"
	"github.com/joestump/pagegen/internal/generate"
	"github.com/joestump/pagegen/internal/store"
)

// manifest is the YAML input of the batch command:
//
//	user: editor@example.com
//	batches:
//	  - template_id: 0b6c...
//	    keyword: plumbing
//	    locations: [Austin, Dallas]
//	    skill_sets: [repair, installation]
type manifest struct {
	User    string                  `yaml:"user"`
	Batches []generate.BatchRequest `yaml:"batches"`
}

func loadManifest(path string) (*manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var m manifest
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	if m.User == "" {
		return nil, fmt.Errorf("manifest %s: user is required", path)
	}
	if len(m.Batches) == 0 {
		return nil, fmt.Errorf("manifest %s: no batches", path)
	}
	return &m, nil
}

func newBatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "batch <manifest.yaml>",
		Short: "Generate documents for every location and skill set combination of a manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadManifest(args[0])
			if err != nil {
				return err
			}

			svc, err := openServices(a)
			if err != nil {
				return err
			}
			defer svc.Close()

			ctx := cmd.Context()
			user, err := svc.users.GetByEmail(ctx, m.User)
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("user %s does not exist; create it with \"pagegen token create\"", m.User)
			}
			if err != nil {
				return err
			}

			results := make([]*generate.BatchResult, 0, len(m.Batches))
			failed := 0
			for i, b := range m.Batches {
				res, err := svc.generator.GenerateBatch(ctx, user, b)
				if err != nil {
					a.log.Error("batch rejected", zap.Int("batch", i), zap.String("code", string(errcode.CodeOf(err))), zap.Error(err))
					failed++
					continue
				}
				a.log.Info("batch finished",
					zap.Int("batch", i),
					zap.String("status", res.Status),
					zap.Int("succeeded", res.Succeeded),
					zap.Int("failed", res.Failed))
				if res.Status != generate.BatchComplete {
					failed++
				}
				results = append(results, res)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(results); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d batches did not complete", failed, len(m.Batches))
			}
			return nil
		},
	}
}
