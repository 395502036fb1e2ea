// Copyright 2023 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// mdblocks parses CommonMark block structure
// and prints the resulting tree as an indented outline.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inkwell-md/commonmark"
)

func main() {
	var (
		timePhases bool
		verbose    bool
	)
	rootCmd := &cobra.Command{
		Use:           "mdblocks [file]",
		Short:         "Print the CommonMark block tree of a document",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
			source, err := readSource(args)
			if err != nil {
				return err
			}
			parser := commonmark.NewParser(&commonmark.Options{Time: timePhases})
			doc, err := parser.Parse(source)
			if doc != nil {
				printTree(cmd.OutOrStdout(), doc)
			}
			return err
		},
	}
	rootCmd.Flags().BoolVar(&timePhases, "time", false, "log timing for each parse phase")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	if err := rootCmd.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

func readSource(args []string) ([]byte, error) {
	if len(args) == 0 {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(args[0])
}

func printTree(w io.Writer, doc *commonmark.Node) {
	depth := 0
	commonmark.Walk(doc, &commonmark.WalkOptions{
		Pre: func(c *commonmark.Cursor) bool {
			n := c.Node()
			fmt.Fprintf(w, "%s%s (%v-%v)%s\n", strings.Repeat("  ", depth), n.Kind(), n.Start(), n.End(), describe(n))
			depth++
			return true
		},
		Post: func(c *commonmark.Cursor) bool {
			depth--
			return true
		},
	})
}

func describe(n *commonmark.Node) string {
	switch n.Kind() {
	case commonmark.HeaderKind:
		return fmt.Sprintf(" level=%d %q", n.Level(), n.StringContent())
	case commonmark.ParagraphKind:
		return fmt.Sprintf(" %q", n.StringContent())
	case commonmark.CodeBlockKind:
		if n.FenceLength() > 0 {
			return fmt.Sprintf(" info=%q %q", n.Info(), n.Literal())
		}
		return fmt.Sprintf(" %q", n.Literal())
	case commonmark.HTMLBlockKind:
		return fmt.Sprintf(" %q", n.Literal())
	case commonmark.ListKind:
		data := n.ListData()
		return fmt.Sprintf(" type=%v tight=%t", data.Type, data.Tight)
	default:
		return ""
	}
}
