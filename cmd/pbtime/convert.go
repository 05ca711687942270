package main

import (
	"fmt"
	"strconv"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/blockberries/pbtime/types"
)

// parsedTimestamp is the JSON shape printed by parse: the raw fields,
// not the RFC 3339 form.
type parsedTimestamp struct {
	Seconds int64 `json:"seconds"`
	Nanos   int32 `json:"nanos"`
}

func newNowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "now",
		Short: "Print the clock's current time as RFC 3339",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := opts.connect(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer conn.Close()

			ts, err := conn.Now(cmd.Context())
			if err != nil {
				return err
			}
			text, err := conn.Format(cmd.Context(), ts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
}

func newFormatCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "format <seconds> [nanos]",
		Short: "Render epoch seconds and nanos as RFC 3339",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var ts types.Timestamp
			var err error
			ts.Seconds, err = strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid seconds %q: %w", args[0], err)
			}
			if len(args) == 2 {
				nanos, err := strconv.ParseInt(args[1], 10, 32)
				if err != nil {
					return fmt.Errorf("invalid nanos %q: %w", args[1], err)
				}
				ts.Nanos = int32(nanos)
			}

			conn, err := opts.connect(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer conn.Close()

			text, err := conn.Format(cmd.Context(), ts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
}

func newParseCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <rfc3339>",
		Short: "Print the epoch seconds and nanos of an RFC 3339 time as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := opts.connect(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer conn.Close()

			ts, err := conn.Parse(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out, err := json.Marshal(parsedTimestamp{Seconds: ts.Seconds, Nanos: ts.Nanos})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}
