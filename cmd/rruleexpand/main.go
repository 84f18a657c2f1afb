// Command rruleexpand is a thin CLI front door over the rrecur generator
// entry point, grounded on the cobra-based root command pattern found
// across the retrieval pack's standalone CLI tools.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dayspan/rrecur"
)

var (
	fFreq       string
	fInterval   int
	fCount      int
	fUntil      string
	fDtstart    string
	fTZ         string
	fBymonth    string
	fBymonthday string
	fByyearday  string
	fByweekno   string
	fByday      string
	fByhour     string
	fByminute   string
	fBysecond   string
	fBysetpos   string
	fLimit      int
)

var rootCmd = &cobra.Command{
	Use:   "rruleexpand",
	Short: "rruleexpand expands a single recurrence rule into a list of occurrences",
	RunE:  runExpand,
}

func init() {
	rootCmd.Flags().StringVar(&fFreq, "freq", "DAILY", "YEARLY|MONTHLY|WEEKLY|DAILY|HOURLY|MINUTELY|SECONDLY")
	rootCmd.Flags().IntVar(&fInterval, "interval", 1, "recurrence interval")
	rootCmd.Flags().IntVar(&fCount, "count", 0, "maximum number of occurrences (0 means unbounded)")
	rootCmd.Flags().StringVar(&fUntil, "until", "", "RFC3339 upper bound, inclusive")
	rootCmd.Flags().StringVar(&fDtstart, "dtstart", "", "RFC3339 anchor instant (required)")
	rootCmd.Flags().StringVar(&fTZ, "tz", "UTC", "IANA timezone name for output")
	rootCmd.Flags().StringVar(&fBymonth, "bymonth", "", "comma-separated months, 1-12")
	rootCmd.Flags().StringVar(&fBymonthday, "bymonthday", "", "comma-separated month days, may be negative")
	rootCmd.Flags().StringVar(&fByyearday, "byyearday", "", "comma-separated year days, may be negative")
	rootCmd.Flags().StringVar(&fByweekno, "byweekno", "", "comma-separated ISO-like week numbers")
	rootCmd.Flags().StringVar(&fByday, "byday", "", "comma-separated weekdays, optionally ordinalled (e.g. MO,2TU,-1FR)")
	rootCmd.Flags().StringVar(&fByhour, "byhour", "", "comma-separated hours")
	rootCmd.Flags().StringVar(&fByminute, "byminute", "", "comma-separated minutes")
	rootCmd.Flags().StringVar(&fBysecond, "bysecond", "", "comma-separated seconds")
	rootCmd.Flags().StringVar(&fBysetpos, "bysetpos", "", "comma-separated set positions, may be negative")
	rootCmd.Flags().IntVar(&fLimit, "limit", 1000, "hard ceiling on printed occurrences")
	_ = rootCmd.MarkFlagRequired("dtstart")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runExpand(cmd *cobra.Command, args []string) error {
	loc, err := time.LoadLocation(fTZ)
	if err != nil {
		return fmt.Errorf("rruleexpand: invalid --tz: %w", err)
	}

	dtstart, err := time.ParseInLocation(time.RFC3339, fDtstart, loc)
	if err != nil {
		return fmt.Errorf("rruleexpand: invalid --dtstart: %w", err)
	}

	freq, err := parseFreq(fFreq)
	if err != nil {
		return err
	}

	rule := rrecur.Rule{
		Freq:     freq,
		Interval: fInterval,
		Dtstart:  dtstart,
		Count:    fCount,
	}

	if fUntil != "" {
		until, err := time.ParseInLocation(time.RFC3339, fUntil, loc)
		if err != nil {
			return fmt.Errorf("rruleexpand: invalid --until: %w", err)
		}
		rule.Until = until
	}

	rule.Bymonth = parseInts(fBymonth)
	rule.Bymonthday = parseInts(fBymonthday)
	rule.Byyearday = parseInts(fByyearday)
	rule.Byweekno = parseInts(fByweekno)
	rule.Byhour = parseInts(fByhour)
	rule.Byminute = parseInts(fByminute)
	rule.Bysecond = parseInts(fBysecond)
	rule.Bysetpos = parseInts(fBysetpos)

	byday, err := parseByday(fByday)
	if err != nil {
		return err
	}
	rule.Byday = byday

	stream, err := rrecur.Generate([]rrecur.Rule{rule}, nil, nil, nil, rrecur.GenerateOptions{
		Loc:            loc,
		IterationLimit: fLimit,
	})
	if err != nil {
		return err
	}

	for {
		t, ok := stream.Next()
		if !ok {
			break
		}
		fmt.Fprintln(cmd.OutOrStdout(), t.Format(time.RFC3339))
	}
	return nil
}

func parseFreq(s string) (rrecur.Frequency, error) {
	switch strings.ToUpper(s) {
	case "YEARLY":
		return rrecur.YEARLY, nil
	case "MONTHLY":
		return rrecur.MONTHLY, nil
	case "WEEKLY":
		return rrecur.WEEKLY, nil
	case "DAILY":
		return rrecur.DAILY, nil
	case "HOURLY":
		return rrecur.HOURLY, nil
	case "MINUTELY":
		return rrecur.MINUTELY, nil
	case "SECONDLY":
		return rrecur.SECONDLY, nil
	default:
		return 0, fmt.Errorf("rruleexpand: unrecognized --freq %q", s)
	}
}

func parseInts(s string) []int {
	if s == "" {
		return nil
	}
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.Atoi(part)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

var weekdayNames = map[string]rrecur.Weekday{
	"MO": rrecur.MO, "TU": rrecur.TU, "WE": rrecur.WE, "TH": rrecur.TH,
	"FR": rrecur.FR, "SA": rrecur.SA, "SU": rrecur.SU,
}

// parseByday accepts entries like "MO", "2TU", "-1FR".
func parseByday(s string) ([]rrecur.Weekday, error) {
	if s == "" {
		return nil, nil
	}
	var out []rrecur.Weekday
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		code := part[len(part)-2:]
		base, ok := weekdayNames[strings.ToUpper(code)]
		if !ok {
			return nil, fmt.Errorf("rruleexpand: unrecognized --byday entry %q", part)
		}
		ordStr := strings.TrimSuffix(part, code)
		if ordStr == "" {
			out = append(out, base)
			continue
		}
		n, err := strconv.Atoi(ordStr)
		if err != nil {
			return nil, fmt.Errorf("rruleexpand: unrecognized --byday entry %q", part)
		}
		out = append(out, base.Nth(n))
	}
	return out, nil
}
