package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"napsync/internal/workflow"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#8BC34A")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#2a3850")).
			Padding(0, 2)
	optionStyle  = lipgloss.NewStyle().PaddingLeft(2)
	keyStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2196F3"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8BC34A"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#9e9e9e"))
)

type menuOption struct {
	key   string
	label string
}

var menuOptions = []menuOption{
	{"1", "Cluster release"},
	{"2", "NAP update"},
	{"3", "Help"},
	{"4", "Exit"},
}

func renderMenu() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("NAP inventory"))
	b.WriteString("\n")
	for _, opt := range menuOptions {
		b.WriteString(optionStyle.Render(keyStyle.Render(opt.key) + ". " + opt.label))
		b.WriteString("\n")
	}
	return b.String()
}

// menu interactive loop; workflow errors are reported and the menu is shown again.
func (a *app) menu(ctx context.Context) error {
	for {
		fmt.Fprint(a.out, "\n"+renderMenu())
		fmt.Fprint(a.out, "Select an option: ")

		line, err := a.in.ReadString('\n')
		choice := strings.TrimSpace(line)
		if err != nil && choice == "" {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		switch choice {
		case "1":
			a.report(a.runRelease(ctx))
		case "2":
			a.report(a.runNapUpdate(ctx))
		case "3":
			a.showHelp()
		case "4":
			fmt.Fprintln(a.out, "Goodbye.")
			return nil
		default:
			fmt.Fprintln(a.out, errorStyle.Render("Invalid option, choose 1-4."))
		}

		if ctx.Err() != nil {
			return nil
		}
	}
}

func (a *app) report(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(a.out, errorStyle.Render(workflow.Describe(err)))
}

func (a *app) printEvent(e workflow.Event) {
	switch e.Type {
	case "error":
		// printed by report
	case "done":
		fmt.Fprintln(a.out, successStyle.Render(e.Message))
	case "progress":
		if a.verbose {
			fmt.Fprintln(a.out, mutedStyle.Render(e.Message))
		}
	default:
		fmt.Fprintln(a.out, e.Message)
	}
}

func (a *app) runNapUpdate(ctx context.Context) error {
	result, err := a.runner.NapUpdate(ctx)
	if err != nil {
		return err
	}
	if result.Duplicates > 0 {
		fmt.Fprintln(a.out, mutedStyle.Render(fmt.Sprintf("%d duplicate NAP rows ignored", result.Duplicates)))
	}
	for _, r := range result.Missing {
		fmt.Fprintf(a.out, "  %s  %s  %s\n", r.Code, r.Cluster, r.Coordinates)
	}
	return nil
}

func (a *app) runRelease(ctx context.Context) error {
	outcome, err := a.runner.ClusterRelease(ctx)
	if err != nil {
		return err
	}
	if outcome.Recipients != "" {
		fmt.Fprintln(a.out, renderMarkdown("## Recipients\n\n"+outcome.Recipients))
	}
	return nil
}
