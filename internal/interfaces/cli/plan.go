package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/turtacn/VisaPath-Intelligence/internal/domain/timeline"
	"github.com/turtacn/VisaPath-Intelligence/internal/domain/visa"
	"github.com/turtacn/VisaPath-Intelligence/pkg/types/common"
)

// planOptions holds the flags of the plan command.
type planOptions struct {
	Destination    string
	VisaType       string
	TravelDate     string
	MinDays        int
	MaxDays        int
	ReminderBefore int
}

// planResult is the JSON shape of the plan command output.
type planResult struct {
	Timeline *timeline.Timeline  `json:"timeline"`
	Planning timeline.Assessment `json:"planning_assessment"`
}

func newPlanCommand(root *rootOptions) *cobra.Command {
	opts := &planOptions{}

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Compute the application timeline and risk for one destination",
		Example: "  visapath plan --destination DE --visa-type EMBASSY_VISA \\\n" +
			"    --travel-date 2026-11-20 --min-days 5 --max-days 15",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, root, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.Destination, "destination", "d", "", "destination country (ISO 3166-1 alpha-2)")
	f.StringVarP(&opts.VisaType, "visa-type", "t", string(visa.TypeEmbassyVisa), "visa type (VISA_FREE, E_VISA, VISA_ON_ARRIVAL, EMBASSY_VISA, TRANSIT_VISA, ETA)")
	f.StringVar(&opts.TravelDate, "travel-date", "", "planned travel date (YYYY-MM-DD)")
	f.IntVar(&opts.MinDays, "min-days", 0, "minimum processing time in business days")
	f.IntVar(&opts.MaxDays, "max-days", 0, "maximum processing time in business days")
	f.IntVar(&opts.ReminderBefore, "reminder-days-before", 0, "days before a milestone due date to remind (default: policy)")
	_ = cmd.MarkFlagRequired("destination")
	_ = cmd.MarkFlagRequired("travel-date")
	_ = cmd.MarkFlagRequired("max-days")

	return cmd
}

func runPlan(cmd *cobra.Command, root *rootOptions, opts *planOptions) error {
	clk, err := planningClock(root)
	if err != nil {
		return err
	}

	travelDate, err := time.Parse("2006-01-02", opts.TravelDate)
	if err != nil {
		return fmt.Errorf("invalid --travel-date %q: expected YYYY-MM-DD", opts.TravelDate)
	}

	visaType := visa.Type(strings.ToUpper(opts.VisaType))
	if !visaType.Valid() {
		return fmt.Errorf("unknown visa type %q", opts.VisaType)
	}

	svc := timeline.NewService(timeline.DefaultPolicy(), clk)
	bounds := visa.ProcessingBounds{MinBusinessDays: opts.MinDays, MaxBusinessDays: opts.MaxDays}
	prefs := timeline.Preferences{ReminderDaysBefore: opts.ReminderBefore}

	tl, err := svc.Build(bounds, travelDate, common.CountryCode(strings.ToUpper(opts.Destination)), visaType, prefs)
	if err != nil {
		return err
	}
	planning := svc.PlanningAssessment(tl, bounds)

	return printResult(cmd, root, planResult{Timeline: tl, Planning: planning}, func() string {
		return renderPlan(tl, planning)
	})
}

const planDateLayout = "Mon 2006-01-02"

func renderPlan(tl *timeline.Timeline, planning timeline.Assessment) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Destination:        %s (%s)\n", tl.Destination, tl.VisaType)
	fmt.Fprintf(&sb, "Travel date:        %s (%d days away)\n", tl.TravelDate.Format(planDateLayout), tl.DaysUntilTrip)
	if tl.PeakSeason.IsPeakSeason {
		fmt.Fprintf(&sb, "Peak season:        yes (%s)\n", tl.PeakSeason.SeasonName)
	} else {
		sb.WriteString("Peak season:        no\n")
	}
	fmt.Fprintf(&sb, "Processing window:  %d-%d calendar days (+%d day buffer)\n",
		tl.CalendarDaysMin, tl.CalendarDaysMax, tl.BufferDays)
	sb.WriteString("\n")

	fmt.Fprintf(&sb, "Recommended start:  %s\n", tl.RecommendedStartDate.Format(planDateLayout))
	fmt.Fprintf(&sb, "Latest submission:  %s\n", tl.LatestSubmissionDate.Format(planDateLayout))
	fmt.Fprintf(&sb, "Expected decision:  %s\n", tl.ExpectedDecisionDate.Format(planDateLayout))
	fmt.Fprintf(&sb, "Pre-arrival check:  %s\n", tl.PreArrivalDeadline.Format(planDateLayout))
	sb.WriteString("\n")

	if tl.Risk != nil {
		fmt.Fprintf(&sb, "Application risk:   %s — %s\n", tl.Risk.Level, tl.Risk.Message)
	}
	fmt.Fprintf(&sb, "Planning risk:      %s (margin %d days)\n", planning.Level, planning.DaysMargin)
	sb.WriteString("\n")

	if len(tl.Milestones) > 0 {
		rows := make([][]string, 0, len(tl.Milestones))
		for _, m := range tl.Milestones {
			rows = append(rows, []string{
				m.DueDate.Format("2006-01-02"),
				string(m.Type),
				m.Name,
			})
		}
		sb.WriteString(formatTable([]string{"DUE", "TYPE", "MILESTONE"}, rows))
	}

	return sb.String()
}

//Personal.AI order the ending
