/*****************************************************************************************************************/

//	@author		Michael Roberts <michael@observerly.com>
//	@package	@observerly/spano
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

package cmd

/*****************************************************************************************************************/

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/observerly/spano/internal/pano"
	"github.com/observerly/spano/internal/store"
	"github.com/observerly/spano/pkg/imagery"
	"github.com/observerly/spano/pkg/warp"
)

/*****************************************************************************************************************/

var (
	PanoFramesPattern      string
	PanoMappingsFile       string
	PanoOutputFileLocation string
	PanoEdgeMargin         int
	PanoStoreFileLocation  string
	PanoSaveRunLabel       string
	PanoLoadRunID          string
)

/*****************************************************************************************************************/

var PanoCommand = &cobra.Command{
	Use:   "pano",
	Short: "pano",
	Long:  "Stitch a sequence of frames into a panorama, given a supplied sequence of accumulated mappings.",
	Run: func(cmd *cobra.Command, args []string) {
		params := RunPanoParams{
			FramesPattern:      PanoFramesPattern,
			MappingsFile:       PanoMappingsFile,
			OutputFileLocation: PanoOutputFileLocation,
			EdgeMargin:         PanoEdgeMargin,
			StoreFileLocation:  PanoStoreFileLocation,
			SaveRunLabel:       PanoSaveRunLabel,
			LoadRunID:          PanoLoadRunID,
		}

		if err := RunPano(params); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
	},
}

/*****************************************************************************************************************/

func init() {
	PanoCommand.Flags().StringVarP(&PanoFramesPattern, "frames", "f", "", "Glob pattern matching the numbered source frame files")
	PanoCommand.MarkFlagRequired("frames")

	PanoCommand.Flags().StringVarP(&PanoMappingsFile, "mappings", "m", "", "Path to a JSON file holding one accumulated 8-float mapping vector per frame")

	PanoCommand.Flags().StringVarP(&PanoOutputFileLocation, "output", "o", "panorama.png", "Path to write the stitched panorama to")

	PanoCommand.Flags().IntVarP(&PanoEdgeMargin, "edge-margin", "e", 0, "Pixels over which each frame's contribution feathers towards zero at its border")

	PanoCommand.Flags().StringVar(&PanoStoreFileLocation, "store", "", "Path to the sqlite run store used by --save-run/--load-run")

	PanoCommand.Flags().StringVar(&PanoSaveRunLabel, "save-run", "", "Persist the accumulated mappings for this run under the given label, in --store")

	PanoCommand.Flags().StringVar(&PanoLoadRunID, "load-run", "", "Load the mapping sequence for this run id from --store instead of --mappings")
}

/*****************************************************************************************************************/

type RunPanoParams struct {
	FramesPattern      string
	MappingsFile       string
	OutputFileLocation string
	EdgeMargin         int
	StoreFileLocation  string
	SaveRunLabel       string
	LoadRunID          string
}

/*****************************************************************************************************************/

func RunPano(params RunPanoParams) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	frames, err := imagery.LoadFrameSequence(params.FramesPattern)
	if err != nil {
		return fmt.Errorf("pano: failed to load frame sequence: %w", err)
	}

	var runStore *store.Store

	if params.SaveRunLabel != "" || params.LoadRunID != "" {
		if params.StoreFileLocation == "" {
			return fmt.Errorf("pano: --store is required alongside --save-run/--load-run")
		}

		runStore, err = store.Open(params.StoreFileLocation)
		if err != nil {
			return fmt.Errorf("pano: failed to open run store: %w", err)
		}
		defer runStore.Close()
	}

	var mappings []warp.Mapping

	if params.LoadRunID != "" {
		mappings, err = runStore.LoadRun(params.LoadRunID)
		if err != nil {
			return fmt.Errorf("pano: failed to load run %q: %w", params.LoadRunID, err)
		}

		logger.Info("loaded mapping sequence from run store", "run_id", params.LoadRunID, "mappings", len(mappings))
	} else {
		if params.MappingsFile == "" {
			return fmt.Errorf("pano: one of --mappings or --load-run is required")
		}

		raw, err := os.ReadFile(params.MappingsFile)
		if err != nil {
			return fmt.Errorf("pano: failed to read mappings file: %w", err)
		}

		var vectors [][]float32
		if err := json.Unmarshal(raw, &vectors); err != nil {
			return fmt.Errorf("pano: failed to decode mappings file: %w", err)
		}

		mappings = make([]warp.Mapping, len(vectors))

		for i, v := range vectors {
			m, err := warp.FromParams(v)
			if err != nil {
				return fmt.Errorf("pano: invalid mapping parameters for frame %d: %w", i, err)
			}

			mappings[i] = m
		}
	}

	if len(mappings) != len(frames) {
		return fmt.Errorf("pano: got %d mappings for %d frames, want equal counts", len(mappings), len(frames))
	}

	if params.SaveRunLabel != "" {
		id, err := runStore.SaveRun(params.SaveRunLabel, mappings)
		if err != nil {
			return fmt.Errorf("pano: failed to save run %q: %w", params.SaveRunLabel, err)
		}

		logger.Info("saved mapping sequence to run store", "run_id", id, "label", params.SaveRunLabel)
	}

	out, err := pano.Stitch(pano.Params{
		Frames:     frames,
		Mappings:   mappings,
		EdgeMargin: params.EdgeMargin,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("pano: failed to stitch panorama: %w", err)
	}

	if err := imagery.SaveFramePNG(params.OutputFileLocation, out); err != nil {
		return fmt.Errorf("pano: failed to save panorama: %w", err)
	}

	return nil
}

/*****************************************************************************************************************/
