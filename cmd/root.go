/*****************************************************************************************************************/

//	@author		Michael Roberts <michael@observerly.com>
//	@package	@observerly/spano
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

package cmd

/*****************************************************************************************************************/

import (
	"github.com/spf13/cobra"
)

/*****************************************************************************************************************/

var rootCommand = &cobra.Command{
	Use:   "spano",
	Short: "spano is a command-line tool for warping and stitching low-light/binary image sequences.",
	Long:  "spano is a command-line tool for warping and stitching low-light/binary image sequences via a planar-geometric warp algebra and a parallel bilinear resampling kernel.",
}

/*****************************************************************************************************************/

func init() {
	rootCommand.AddCommand(WarpCommand)
	rootCommand.AddCommand(PanoCommand)
}

/*****************************************************************************************************************/

func Execute() {
	if err := rootCommand.Execute(); err != nil {
		panic(err)
	}
}

/*****************************************************************************************************************/
