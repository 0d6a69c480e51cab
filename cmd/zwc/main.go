// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
zwc prints the invisible marker appended to a translation key in development
mode, or decodes the marker found at the end of text read from stdin.

	go run ./cmd/zwc -key hello
	go run ./cmd/zwc -decode < rendered.txt
*/
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"codeberg.org/pixivfe/tolgeefe/core/audit"
	"codeberg.org/pixivfe/tolgeefe/core/zwc"
	"codeberg.org/pixivfe/tolgeefe/i18n"
)

var (
	errNoAction   = errors.New("either -key or -decode is required")
	errNoMarker   = errors.New("input does not end with a marker")
	errBothAction = errors.New("-key and -decode are mutually exclusive")
)

func main() {
	audit.SetDefaultLogger()

	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("zwc failed")
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("zwc", flag.ContinueOnError)
	fs.SetOutput(stdout)

	key := fs.String("key", "", "translation key to encode")
	decode := fs.Bool("decode", false, "decode the trailing marker of stdin")
	raw := fs.Bool("raw", false, "with -key, print the marker itself instead of a description")

	if err := fs.Parse(args); err != nil {
		return err
	}

	switch {
	case *key != "" && *decode:
		return errBothAction
	case *key != "":
		return describe(stdout, *key, *raw)
	case *decode:
		return decodeInput(stdin, stdout)
	default:
		return errNoAction
	}
}

func describe(w io.Writer, key string, raw bool) error {
	payload := i18n.MarkerPayload(key)
	marker := zwc.Encode(payload)

	if raw {
		_, err := io.WriteString(w, marker)

		return err
	}

	_, err := fmt.Fprintf(w, "payload: %s\nhex:     %x\nrunes:   %d\nbits:    %s\n",
		payload, marker, utf8.RuneCountInString(marker), zwc.Bits(marker))

	return err
}

func decodeInput(r io.Reader, w io.Writer) error {
	input, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}

	visible, marker := zwc.Split(strings.TrimRight(string(input), "\r\n"))
	if marker == "" {
		return errNoMarker
	}

	payload, err := zwc.Decode(marker)
	if err != nil {
		return fmt.Errorf("failed to decode marker: %w", err)
	}

	_, err = fmt.Fprintf(w, "visible: %s\npayload: %s\n", strconv.Quote(visible), payload)

	return err
}
