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
	"os"

	"github.com/spf13/cobra"

	"github.com/observerly/spano/pkg/imagery"
	"github.com/observerly/spano/pkg/resample"
	"github.com/observerly/spano/pkg/warp"
)

/*****************************************************************************************************************/

var (
	WarpInputFileLocation  string
	WarpOutputFileLocation string
	WarpParamsFileLocation string
	WarpWidth              int
	WarpHeight             int
)

/*****************************************************************************************************************/

var WarpCommand = &cobra.Command{
	Use:   "warp",
	Short: "warp",
	Long:  "Resample a single image under a supplied planar warp mapping.",
	Run: func(cmd *cobra.Command, args []string) {
		params := RunWarpParams{
			InputFileLocation:  WarpInputFileLocation,
			OutputFileLocation: WarpOutputFileLocation,
			ParamsFileLocation: WarpParamsFileLocation,
			Width:              WarpWidth,
			Height:             WarpHeight,
		}

		if err := RunWarp(params); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
	},
}

/*****************************************************************************************************************/

func init() {
	WarpCommand.Flags().StringVarP(&WarpInputFileLocation, "input", "i", "", "Path to the source image file")
	WarpCommand.MarkFlagRequired("input")

	WarpCommand.Flags().StringVarP(&WarpOutputFileLocation, "output", "o", "warped.png", "Path to write the resampled image to")

	WarpCommand.Flags().StringVarP(&WarpParamsFileLocation, "params", "p", "", "Path to a JSON file holding the mapping's minimal parameter vector (0, 2, 6 or 8 floats)")
	WarpCommand.MarkFlagRequired("params")

	WarpCommand.Flags().IntVarP(&WarpWidth, "width", "W", 0, "Output canvas width (defaults to the source image's width)")
	WarpCommand.Flags().IntVarP(&WarpHeight, "height", "H", 0, "Output canvas height (defaults to the source image's height)")
}

/*****************************************************************************************************************/

type RunWarpParams struct {
	InputFileLocation  string
	OutputFileLocation string
	ParamsFileLocation string
	Width              int
	Height             int
}

/*****************************************************************************************************************/

func RunWarp(params RunWarpParams) error {
	img, err := imagery.DecodeFile(params.InputFileLocation)
	if err != nil {
		return fmt.Errorf("warp: failed to load input image: %w", err)
	}

	raw, err := os.ReadFile(params.ParamsFileLocation)
	if err != nil {
		return fmt.Errorf("warp: failed to read params file: %w", err)
	}

	var vector []float32
	if err := json.Unmarshal(raw, &vector); err != nil {
		return fmt.Errorf("warp: failed to decode params file: %w", err)
	}

	mapping, err := warp.FromParams(vector)
	if err != nil {
		return fmt.Errorf("warp: invalid mapping parameters: %w", err)
	}

	bounds := img.Bounds()

	width := params.Width
	if width <= 0 {
		width = bounds.Dx()
	}

	height := params.Height
	if height <= 0 {
		height = bounds.Dy()
	}

	out, err := resample.WarpImage(mapping, img, [2]int{width, height}, nil)
	if err != nil {
		return fmt.Errorf("warp: failed to resample image: %w", err)
	}

	if err := imagery.SaveFramePNG(params.OutputFileLocation, out); err != nil {
		return fmt.Errorf("warp: failed to save output image: %w", err)
	}

	return nil
}

/*****************************************************************************************************************/
