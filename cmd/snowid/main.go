/*

  Copyright 2012 Dmitry Kolesnikov, All Rights Reserved

  Licensed under the Apache License, Version 2.0 (the "License");
  you may not use this file except in compliance with the License.
  You may obtain a copy of the License at

      http://www.apache.org/licenses/LICENSE-2.0

  Unless required by applicable law or agreed to in writing, software
  distributed under the License is distributed on an "AS IS" BASIS,
  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
  See the License for the specific language governing permissions and
  limitations under the License.

*/

// Command snowid generates and inspects k-ordered 64-bit identifiers.
package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/fogfish/snowid"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "snowid",
		Short: "Snowflake-style unique identifier tool",
		Long:  "snowid generates and decomposes k-ordered 64-bit identifiers.",
	}
	rootCmd.PersistentFlags().Uint64("node", 0, "node identifier")
	rootCmd.PersistentFlags().Uint64("node-bits", 10, "width of the node fraction, 6 to 16 bits")
	rootCmd.PersistentFlags().String("epoch", "2024-01-01T00:00:00Z", "zero point of the timestamp fraction, RFC 3339")

	genCmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate identifiers",
		RunE: func(cmd *cobra.Command, args []string) error {
			count, _ := cmd.Flags().GetInt("count")
			base62, _ := cmd.Flags().GetBool("base62")

			layout, err := layoutFromFlags(cmd)
			if err != nil {
				return err
			}

			g := snowid.New(layout)
			for i := 0; i < count; i++ {
				uid, err := g.Next()
				if err != nil {
					return err
				}
				if base62 {
					fmt.Println(uid)
				} else {
					fmt.Println(uint64(uid))
				}
			}
			return nil
		},
	}
	genCmd.Flags().IntP("count", "c", 1, "number of identifiers to generate")
	genCmd.Flags().Bool("base62", false, "print identifiers as base62")
	rootCmd.AddCommand(genCmd)

	decodeCmd := &cobra.Command{
		Use:   "decode <id>",
		Short: "Decompose an identifier into timestamp, node and sequence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base62, _ := cmd.Flags().GetBool("base62")

			layout, err := layoutFromFlags(cmd)
			if err != nil {
				return err
			}

			var uid snowid.ID
			if base62 {
				uid, err = snowid.DecodeBase62(args[0])
				if err != nil {
					return err
				}
			} else {
				v, err := strconv.ParseUint(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("not a 64-bit identifier: %w", err)
				}
				uid = snowid.ID(v)
			}

			parts := layout.Decompose(uid)
			fmt.Printf("time:  %d ms (%s)\n", parts.Time, layout.TimeUnix(uid).UTC().Format(time.RFC3339Nano))
			fmt.Printf("node:  %d\n", parts.Node)
			fmt.Printf("seq:   %d\n", parts.Seq)
			return nil
		},
	}
	decodeCmd.Flags().Bool("base62", false, "decode the argument as base62")
	rootCmd.AddCommand(decodeCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func layoutFromFlags(cmd *cobra.Command) (snowid.Layout, error) {
	node, _ := cmd.Flags().GetUint64("node")
	bits, _ := cmd.Flags().GetUint64("node-bits")
	epoch, _ := cmd.Flags().GetString("epoch")

	t, err := time.Parse(time.RFC3339, epoch)
	if err != nil {
		return snowid.Layout{}, fmt.Errorf("invalid --epoch: %w", err)
	}

	return snowid.NewLayout(
		snowid.ConfNodeBits(bits),
		snowid.ConfNodeID(node),
		snowid.ConfEpoch(t),
	)
}
