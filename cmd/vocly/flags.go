package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/pflag"

	"github.com/at-ishikawa/vocly/internal/cli"
	"github.com/at-ishikawa/vocly/internal/config"
	"github.com/at-ishikawa/vocly/internal/report"
	"github.com/at-ishikawa/vocly/internal/session"
)

// choiceFlag is a string flag restricted to a fixed set of values.
type choiceFlag struct {
	value   string
	choices []string
}

var _ pflag.Value = (*choiceFlag)(nil)

func newChoiceFlag(value string, choices ...string) *choiceFlag {
	return &choiceFlag{value: value, choices: choices}
}

func (f *choiceFlag) String() string {
	return f.value
}

func (f *choiceFlag) Set(value string) error {
	if !slices.Contains(f.choices, value) {
		return fmt.Errorf("must be one of %s", strings.Join(f.choices, ", "))
	}
	f.value = value
	return nil
}

func (f *choiceFlag) Type() string {
	return "string"
}

func newDirectionFlag() *choiceFlag {
	return newChoiceFlag(cli.DirectionTerm, cli.DirectionTerm, cli.DirectionTranslation)
}

func newStrategyFlag() *choiceFlag {
	return newChoiceFlag(session.StrategyDuplicate, session.StrategyDuplicate, session.StrategyWeighted)
}

func newFormatFlag() *choiceFlag {
	return newChoiceFlag(report.FormatJSON, report.FormatJSON, report.FormatMarkdown, report.FormatPDF)
}

func newBackendFlag(value string) *choiceFlag {
	return newChoiceFlag(value, config.StorageYAML, config.StorageDatabase)
}
