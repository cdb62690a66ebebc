package cli

import (
	"encoding/json"
	"time"

	"github.com/spf13/cobra"

	"github.com/juristech/prazojus/internal/domain/calendar"
	"github.com/juristech/prazojus/internal/infrastructure/database/postgres/repositories"
	"github.com/juristech/prazojus/pkg/errors"
)

type computeOptions struct {
	availability string
	days         int
	comarca      string
	municipality string
	applyLocal   bool

	national     bool
	state        bool
	courtGeneral bool
	courtLocal   bool
	municipal    bool
}

func newComputeCmd(root *rootOptions) *cobra.Command {
	opts := &computeOptions{}

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute a DJE publication date and deadline",
		Long: "Computes the publication date (first business day strictly after the\n" +
			"availability date) and the final deadline day for an act published in\n" +
			"the electronic gazette, honoring weekends, stored holidays, and the\n" +
			"statutory year-end recess.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCompute(cmd, root, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.availability, "availability", "", "gazette availability date (YYYY-MM-DD)")
	f.IntVar(&opts.days, "days", 15, "deadline length in business days")
	f.StringVar(&opts.comarca, "comarca", "", "judicial district for local holidays")
	f.StringVar(&opts.municipality, "municipality", "", "municipality for municipal holidays")
	f.BoolVar(&opts.applyLocal, "apply-local", true, "honor comarca and municipal holidays")
	f.BoolVar(&opts.national, "national", true, "honor national holidays")
	f.BoolVar(&opts.state, "state", true, "honor state holidays")
	f.BoolVar(&opts.courtGeneral, "court-general", true, "honor court-wide holidays and the year-end recess")
	f.BoolVar(&opts.courtLocal, "court-local", true, "honor district court holidays")
	f.BoolVar(&opts.municipal, "municipal", true, "honor municipal holidays")
	_ = cmd.MarkFlagRequired("availability")

	return cmd
}

func runCompute(cmd *cobra.Command, root *rootOptions, opts *computeOptions) error {
	availability, err := time.Parse("2006-01-02", opts.availability)
	if err != nil {
		return errors.Newf(errors.ErrCodeInvalidArgument, "invalid availability date %q, want YYYY-MM-DD", opts.availability)
	}

	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	log, err := root.newLogger()
	if err != nil {
		return err
	}

	conn, err := openDatabase(cfg, log)
	if err != nil {
		return err
	}
	defer conn.Close()

	store := repositories.NewHolidayRepository(conn.DB(), log)
	engine := calendar.NewEngine(store, calendar.NewResultCache(cfg.Calendar.CacheCapacity), log,
		calendar.WithWindow(cfg.Calendar.InitialMarginDays, cfg.Calendar.GrowthIncrementDays, cfg.Calendar.LookaheadDays),
		calendar.WithMaxWindowGrowths(cfg.Calendar.MaxWindowGrowths),
	)

	q := calendar.Query{
		Comarca:      opts.comarca,
		Municipality: opts.municipality,
		ApplyLocal:   opts.applyLocal,
		Rules: calendar.RuleSet{
			National:     opts.national,
			State:        opts.state,
			CourtGeneral: opts.courtGeneral,
			CourtLocal:   opts.courtLocal,
			Municipal:    opts.municipal,
		},
	}

	res, err := engine.ComputeDJEDeadline(cmd.Context(), availability, opts.days, q)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]string{
		"availability": res.Availability.Format("2006-01-02"),
		"publication":  res.Publication.Format("2006-01-02"),
		"deadline":     res.Deadline.Format("2006-01-02"),
	})
}
