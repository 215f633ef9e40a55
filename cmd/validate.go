package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/Maidang1/pixel-picture/internal/hasher"
	"github.com/Maidang1/pixel-picture/internal/manifest"
	"github.com/spf13/cobra"
)

var validateHashes bool

var validateCmd = &cobra.Command{
	Use:   "validate <out_dir_or_manifest>",
	Short: "Validate a pixelpic manifest and check referenced files exist",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateHashes, "hashes", false, "re-hash every output and compare with the manifest")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	path, err := manifestPath(args[0])
	if err != nil {
		return err
	}
	m, err := manifest.ReadJSON(path)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	errs := validateManifest(m, filepath.Dir(path), validateHashes)
	if len(errs) == 0 {
		fmt.Fprintln(w, "  ✓ Manifest is valid")
		fmt.Fprintf(w, "  ✓ %d assets, %d variants, all files present\n", m.Stats.TotalAssets, m.Stats.TotalVariants)
		return nil
	}

	fmt.Fprintf(w, "  ✗ Manifest has %d error(s):\n", len(errs))
	for _, e := range errs {
		fmt.Fprintf(w, "    • %s\n", e)
	}
	return fmt.Errorf("validation failed with %d errors", len(errs))
}

func validateManifest(m *manifest.Manifest, baseDir string, checkHashes bool) []string {
	var errs []string

	if m.Version != manifest.SupportedManifestVersion {
		errs = append(errs, fmt.Sprintf("unsupported manifest version: %d", m.Version))
	}

	// Settings must describe a transform that could have run.
	st := m.Settings
	if st.Stride < 1 {
		errs = append(errs, fmt.Sprintf("settings: invalid stride %d", st.Stride))
	}
	if st.BlockSize < 1 {
		errs = append(errs, fmt.Sprintf("settings: invalid block size %d", st.BlockSize))
	}
	if want := len(st.Mode.PaletteEntries()); len(st.Palette) != want {
		errs = append(errs, fmt.Sprintf("settings: palette has %d colours, mode %s uses %d",
			len(st.Palette), st.Mode, want))
	}

	keys := make([]string, 0, len(m.Assets))
	for key := range m.Assets {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		asset := m.Assets[key]
		if asset.Original.Width <= 0 || asset.Original.Height <= 0 {
			errs = append(errs, fmt.Sprintf("asset %q: invalid original dimensions %dx%d",
				key, asset.Original.Width, asset.Original.Height))
		}
		if asset.Render.Width <= 0 || asset.Render.Height <= 0 {
			errs = append(errs, fmt.Sprintf("asset %q: invalid render dimensions %dx%d",
				key, asset.Render.Width, asset.Render.Height))
		}
		if asset.Render.Width > asset.Original.Width {
			errs = append(errs, fmt.Sprintf("asset %q: render wider than original (%d > %d)",
				key, asset.Render.Width, asset.Original.Width))
		}
		if len(asset.Variants) == 0 {
			errs = append(errs, fmt.Sprintf("asset %q: no variants", key))
		}

		seenPaths := map[string]bool{}
		for i, v := range asset.Variants {
			if v.Format == "" {
				errs = append(errs, fmt.Sprintf("asset %q variant[%d]: empty format", key, i))
			}
			if v.Width <= 0 || v.Height <= 0 {
				errs = append(errs, fmt.Sprintf("asset %q variant[%d]: invalid dimensions %dx%d",
					key, i, v.Width, v.Height))
			}
			if v.Hash == "" {
				errs = append(errs, fmt.Sprintf("asset %q variant[%d]: missing hash", key, i))
			}
			if v.Path == "" {
				errs = append(errs, fmt.Sprintf("asset %q variant[%d]: missing path", key, i))
				continue
			}

			if seenPaths[v.Path] {
				errs = append(errs, fmt.Sprintf("asset %q variant[%d]: duplicate path %q", key, i, v.Path))
			}
			seenPaths[v.Path] = true

			fullPath := filepath.Join(baseDir, filepath.FromSlash(v.Path))
			info, err := os.Stat(fullPath)
			if err != nil {
				errs = append(errs, fmt.Sprintf("asset %q variant[%d]: file not found: %s", key, i, v.Path))
				continue
			}
			if v.Size > 0 && info.Size() != v.Size {
				errs = append(errs, fmt.Sprintf("asset %q variant[%d]: size mismatch: manifest=%d, disk=%d",
					key, i, v.Size, info.Size()))
			}
			if checkHashes && v.Hash != "" {
				data, err := os.ReadFile(fullPath)
				if err != nil {
					errs = append(errs, fmt.Sprintf("asset %q variant[%d]: %v", key, i, err))
				} else if got := hasher.ContentHash(data, len(v.Hash)); got != v.Hash {
					errs = append(errs, fmt.Sprintf("asset %q variant[%d]: hash mismatch: manifest=%s, disk=%s",
						key, i, v.Hash, got))
				}
			}
		}
	}

	// Verify stats consistency.
	var want manifest.Manifest
	want.Assets = m.Assets
	want.ComputeStats()
	if m.Stats.TotalAssets != want.Stats.TotalAssets {
		errs = append(errs, fmt.Sprintf("stats.total_assets mismatch: %d != %d", m.Stats.TotalAssets, want.Stats.TotalAssets))
	}
	if m.Stats.TotalVariants != want.Stats.TotalVariants {
		errs = append(errs, fmt.Sprintf("stats.total_variants mismatch: %d != %d", m.Stats.TotalVariants, want.Stats.TotalVariants))
	}
	if m.Stats.TotalSamples != want.Stats.TotalSamples {
		errs = append(errs, fmt.Sprintf("stats.total_samples mismatch: %d != %d", m.Stats.TotalSamples, want.Stats.TotalSamples))
	}

	return errs
}
