// Package seeds loads initial saved-field suggestions.
package seeds

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/hotline-inc/hotline/internal/domain/savedfield"
)

// SavedFieldFile is the YAML layout accepted by `hotline seed`:
//
//	callers: [Mme Dupont, Accueil]
//	reasons: [Imprimante HS]
//	tags: [printer, vpn]
type SavedFieldFile struct {
	Callers []string `yaml:"callers"`
	Reasons []string `yaml:"reasons"`
	Tags    []string `yaml:"tags"`
}

// ParseSavedFields decodes a seed file. Unknown keys are rejected.
func ParseSavedFields(r io.Reader) (*SavedFieldFile, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f SavedFieldFile
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return &f, nil
		}
		return nil, fmt.Errorf("failed to parse saved field seeds: %w", err)
	}
	return &f, nil
}

// SeedSavedFields inserts every value of f that is not stored yet and
// returns the number of rows added. Blank values are skipped.
func SeedSavedFields(ctx context.Context, repo savedfield.Repository, f *SavedFieldFile) (int, error) {
	groups := []struct {
		ft     savedfield.FieldType
		values []string
	}{
		{savedfield.FieldCaller, f.Callers},
		{savedfield.FieldReason, f.Reasons},
		{savedfield.FieldTag, f.Tags},
	}

	added := 0
	for _, g := range groups {
		for _, v := range g.values {
			v = savedfield.Normalize(v)
			if v == "" {
				continue
			}
			inserted, err := repo.Insert(ctx, g.ft, v)
			if err != nil {
				return added, err
			}
			if inserted {
				added++
			}
		}
	}
	return added, nil
}
