package cmd

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tianhongw/attach/conf"
)

func newDecodeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "decode [file...]",
		Short: "Decode messages and describe their attachments",
		Long: `Decode each message file (stdin when none is given) and print the
sender, the text and one line per attachment. Files are decoded concurrently;
output keeps argument order.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, "decode", func(r runner, out *bytes.Buffer, data []byte) (int, error) {
				return r.Describe(out, data)
			})
		},
	}
}

func newRoundTripCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "roundtrip [file...]",
		Short: "Decode, re-encode and re-decode messages",
		Long: `Decode each message, encode it back to JSON, decode that again and
check both decodes are equal. The re-encoded JSON is printed. With the variant
codec a message holding an unsupported attachment cannot be re-encoded.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, "roundtrip", func(r runner, out *bytes.Buffer, data []byte) (int, error) {
				encoded, n, err := r.RoundTrip(data)
				if err != nil {
					return 0, err
				}
				out.Write(encoded)
				return n, nil
			})
		},
	}
}

func newTypesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the attachment types the selected codec decodes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newRunner(conf.GetConfig(), strategy)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(r.Types(), "\n"))
			return err
		},
	}
}

func run(cmd *cobra.Command, args []string, name string, f func(r runner, out *bytes.Buffer, data []byte) (int, error)) error {
	cfg := conf.GetConfig()

	lg, err := newLogger(cfg, name)
	if err != nil {
		return err
	}
	defer lg.Flush()

	r, err := newRunner(cfg, strategy)
	if err != nil {
		return err
	}

	inputs, err := readInputs(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	return process(cmd.OutOrStdout(), lg, r, inputs, func(out *bytes.Buffer, data []byte) (int, error) {
		return f(r, out, data)
	})
}
