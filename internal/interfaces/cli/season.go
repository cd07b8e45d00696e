package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/turtacn/VisaPath-Intelligence/internal/domain/timeline"
	"github.com/turtacn/VisaPath-Intelligence/pkg/types/common"
)

// seasonOptions holds the flags of the season command.
type seasonOptions struct {
	Destination string
	TravelDate  string
}

func newSeasonCommand(root *rootOptions) *cobra.Command {
	opts := &seasonOptions{}

	cmd := &cobra.Command{
		Use:     "season",
		Short:   "Check whether a travel date falls in a peak demand window",
		Example: "  visapath season --destination CN --travel-date 2027-01-28",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeason(cmd, root, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.Destination, "destination", "d", "", "destination country (ISO 3166-1 alpha-2)")
	f.StringVar(&opts.TravelDate, "travel-date", "", "planned travel date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("travel-date")

	return cmd
}

func runSeason(cmd *cobra.Command, root *rootOptions, opts *seasonOptions) error {
	travelDate, err := time.Parse("2006-01-02", opts.TravelDate)
	if err != nil {
		return fmt.Errorf("invalid --travel-date %q: expected YYYY-MM-DD", opts.TravelDate)
	}

	detector := timeline.NewSeasonDetector(timeline.DefaultSeasonPolicy())
	info := detector.Check(travelDate, common.CountryCode(strings.ToUpper(opts.Destination)))

	return printResult(cmd, root, info, func() string {
		if !info.IsPeakSeason {
			return fmt.Sprintf("%s is outside every configured peak window.\n", opts.TravelDate)
		}
		return fmt.Sprintf("%s falls in the %s.\n%s.\nProcessing buffers are stretched by 1.5x during this window.\n",
			opts.TravelDate, info.SeasonName, info.Impact)
	})
}

//Personal.AI order the ending
