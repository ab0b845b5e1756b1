package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/belphemur/jalaali-picker/internal/calfmt"
	"github.com/belphemur/jalaali-picker/internal/config"
	"github.com/belphemur/jalaali-picker/internal/constants"
	"github.com/belphemur/jalaali-picker/internal/jalaali"
	"github.com/belphemur/jalaali-picker/internal/viewhelpers"
)

func newConvertCommand(load func() (*config.Config, error)) *cobra.Command {
	var digits string

	cmd := &cobra.Command{
		Use:   "convert <date>",
		Short: "Convert a date between the Jalaali and Gregorian calendars",
		Long: "Convert YYYY/MM/DD (Jalaali, Persian digits accepted) to Gregorian, " +
			"or YYYY-MM-DD (Gregorian) to Jalaali.",
		Example: "  jalaali-picker convert 1403/01/01\n  jalaali-picker convert 2024-03-20",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			style, err := resolveDigitStyle(digits, cfg)
			if err != nil {
				return err
			}
			return runConvert(cmd.OutOrStdout(), args[0], style)
		},
	}
	cmd.Flags().StringVar(&digits, "digits", "", "digit style for the display line (persian or latin)")
	return cmd
}

func newMonthCommand(load func() (*config.Config, error)) *cobra.Command {
	var digits string

	cmd := &cobra.Command{
		Use:   "month [year month]",
		Short: "Print a Jalaali month grid",
		Long:  "Print the Saturday-first grid of a Jalaali month, the current month by default.",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return fmt.Errorf("expected no arguments or <year> <month>, got %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			style, err := resolveDigitStyle(digits, cfg)
			if err != nil {
				return err
			}
			loc, err := time.LoadLocation(cfg.Picker.Timezone)
			if err != nil {
				return fmt.Errorf("picker.timezone: %w", err)
			}

			today := jalaali.Today(time.Now(), loc)
			year, month := today.Year, today.Month
			if len(args) == 2 {
				if year, month, err = parseYearMonth(args[0], args[1]); err != nil {
					return err
				}
			}
			renderMonth(cmd.OutOrStdout(), viewhelpers.BuildMonthGrid(year, month, nil, today, style))
			return nil
		},
	}
	cmd.Flags().StringVar(&digits, "digits", "", "digit style (persian or latin)")
	return cmd
}

func resolveDigitStyle(flag string, cfg *config.Config) (constants.DigitStyle, error) {
	if flag == "" {
		return cfg.Picker.DigitStyle, nil
	}
	return constants.ParseDigitStyle(flag)
}

// runConvert prints the date in both calendars. Input with a dash is read as
// Gregorian, anything else as a Jalaali picker value.
func runConvert(w io.Writer, input string, style constants.DigitStyle) error {
	var d jalaali.Date
	if strings.Contains(input, "-") {
		t, err := time.Parse("2006-01-02", input)
		if err != nil {
			return fmt.Errorf("invalid gregorian date %q: %w", input, err)
		}
		if t.Year() < jalaali.MinGregorianYear || t.Year() > jalaali.MaxGregorianYear {
			return fmt.Errorf("gregorian year %d is outside [%d, %d]", t.Year(), jalaali.MinGregorianYear, jalaali.MaxGregorianYear)
		}
		d = jalaali.FromTime(t)
	} else {
		v, err := calfmt.ParseValue(input)
		if err != nil {
			return err
		}
		d = v.Date
	}

	leap := "no"
	if jalaali.IsLeapYear(d.Year) {
		leap = "yes"
	}
	_, err := fmt.Fprintf(w, "jalaali:   %s\ngregorian: %s\nweekday:   %s\ndisplay:   %s\nleap year: %s\n",
		calfmt.FormatMachine(d), jalaali.ToGregorian(d), d.Weekday(), calfmt.FormatDisplay(d, nil, false, style), leap)
	return err
}

func parseYearMonth(rawYear, rawMonth string) (int, int, error) {
	year, err := strconv.Atoi(calfmt.ToLatinDigits(rawYear))
	if err != nil || year < jalaali.MinSupportedYear || year >= jalaali.MaxSupportedYear {
		return 0, 0, fmt.Errorf("year %q is outside [%d, %d)", rawYear, jalaali.MinSupportedYear, jalaali.MaxSupportedYear)
	}
	month, err := strconv.Atoi(calfmt.ToLatinDigits(rawMonth))
	if err != nil || month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("month %q must be between 1 and 12", rawMonth)
	}
	return year, month, nil
}

// renderMonth writes the grid as fixed-width text, today marked with '*'.
func renderMonth(w io.Writer, grid viewhelpers.MonthGrid) {
	fmt.Fprintln(w, grid.Title)
	for _, name := range calfmt.ShortDayNames() {
		fmt.Fprintf(w, "%4s", name)
	}
	fmt.Fprintln(w)

	for _, week := range grid.Weeks {
		for _, day := range week {
			switch {
			case day == nil:
				fmt.Fprintf(w, "%4s", "")
			case day.IsToday:
				fmt.Fprintf(w, "%3s*", day.Label)
			default:
				fmt.Fprintf(w, "%4s", day.Label)
			}
		}
		fmt.Fprintln(w)
	}
}
