package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/FuturePresentLabs/swarf/blackbook"
	swarffmt "github.com/FuturePresentLabs/swarf/internal/fmt"
)

var MaterialsCmd = &cobra.Command{
	Use:   "materials [name]",
	Short: "List Black Book materials, or show one in detail.",
	Args:  cobra.MaximumNArgs(1),
	Run: GetRunFn(func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		book := blackbook.New()

		if len(args) == 1 {
			material, err := book.Lookup(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s\n", material.Name)
			fmt.Fprintf(w, "  %s\n", material.Description)
			fmt.Fprintf(w, "  category:      %s\n", material.Category)
			fmt.Fprintf(w, "  grades:        %s\n", strings.Join(material.Grades, ", "))
			fmt.Fprintf(w, "  hardness:      %d HB\n", material.HardnessHB)
			fmt.Fprintf(w, "  machinability: %s%%\n", swarffmt.SprintFloat(material.Machinability, 0))
			fmt.Fprintf(w, "  sfm carbide:   %s (%s-%s)\n",
				swarffmt.SprintFloat(material.SFMCarbide.Rec, 0),
				swarffmt.SprintFloat(material.SFMCarbide.Min, 0),
				swarffmt.SprintFloat(material.SFMCarbide.Max, 0))
			fmt.Fprintf(w, "  sfm hss:       %s (%s-%s)\n",
				swarffmt.SprintFloat(material.SFMHSS.Rec, 0),
				swarffmt.SprintFloat(material.SFMHSS.Min, 0),
				swarffmt.SprintFloat(material.SFMHSS.Max, 0))
			fmt.Fprintf(w, "  max doc:       %s x dia\n", swarffmt.SprintFloat(material.MaxDOCRatio, 2))
			fmt.Fprintf(w, "  engagement:    %s%%\n", swarffmt.SprintFloat(material.EngagementPct, 0))
			fmt.Fprintf(w, "  coolant:       %v\n", material.Coolant)
			return nil
		}

		for _, material := range book.Materials() {
			fmt.Fprintf(w, "%-22s %-24s %3.0f%% machinability\n",
				material.Name, material.Category, material.Machinability)
		}
		return nil
	}),
}

func init() {
	RootCmd.AddCommand(MaterialsCmd)
}
