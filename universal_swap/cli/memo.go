package cli

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	ibcmemo "github.com/Cogwheel-Validator/oraidex-sdk/universal_swap/ibc_memo"
)

func memoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "memo",
		Short: "Encode and decode binary bridge memos",
	}

	wasm := &cobra.Command{
		Use:   "ibc-wasm [destination-receiver] [destination-channel] [destination-denom]",
		Short: "Encode a base64 ibc wasm memo",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), ibcmemo.ParseToIbcWasmMemo(args[0], args[1], args[2]))
			return err
		},
	}

	var currentAddress string
	hooks := &cobra.Command{
		Use:   "ibc-hooks [receiver] [destination-receiver] [destination-channel] [destination-denom]",
		Short: "Encode a base64 ibc hooks memo",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			memo, err := ibcmemo.ParseToIbcHookMemo(args[0], currentAddress, args[1], args[2], args[3])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), memo)
			return err
		},
	}
	hooks.Flags().StringVar(&currentAddress, "current-address", "", "owner address used instead of the receiver")

	var kind string
	decode := &cobra.Command{
		Use:   "decode [memo]",
		Short: "Decode a base64 memo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch kind {
			case "wasm":
				memo, err := ibcmemo.DecodeIbcWasmMemo(args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), memo)
			case "hooks":
				memo, err := ibcmemo.DecodeIbcHookMemo(args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), struct {
					Receiver            string `json:"receiver"`
					DestinationReceiver string `json:"destination_receiver"`
					DestinationChannel  string `json:"destination_channel"`
					DestinationDenom    string `json:"destination_denom"`
				}{
					Receiver:            hex.EncodeToString(memo.Receiver),
					DestinationReceiver: memo.DestinationReceiver,
					DestinationChannel:  memo.DestinationChannel,
					DestinationDenom:    memo.DestinationDenom,
				})
			default:
				return fmt.Errorf("unknown memo kind %q, want wasm or hooks", kind)
			}
		},
	}
	decode.Flags().StringVar(&kind, "kind", "wasm", "memo kind: wasm or hooks")

	cmd.AddCommand(wasm, hooks, decode)
	return cmd
}
