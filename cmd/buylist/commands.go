package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"buylist/internal/buylist"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	boughtStyle  = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	panelStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
)

func ok(w io.Writer, msg string) {
	fmt.Fprintln(w, successStyle.Render("✔ "+msg))
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "Print the list and its remaining/purchased totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printList(cmd.OutOrStdout(), a.list)
			return nil
		},
	}
}

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name...>",
		Short: "Add an item to buy",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.list.Submit(strings.Join(args, " "))
			if err != nil {
				return err
			}
			ok(cmd.OutOrStdout(), "added "+e.Name)
			return nil
		},
	}
}

func newToggleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <index>",
		Short: "Flip an item between purchased and not purchased",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.entryAt(args[0])
			if err != nil {
				return err
			}
			if err := a.list.Toggle(e.ID); err != nil {
				return err
			}
			if e.Purchased {
				ok(cmd.OutOrStdout(), e.Name+" marked as not purchased")
			} else {
				ok(cmd.OutOrStdout(), e.Name+" marked as purchased")
			}
			return nil
		},
	}
}

func (a *app) increment(id string) (bool, error) { return a.list.Increment(id) }
func (a *app) decrement(id string) (bool, error) { return a.list.Decrement(id) }

func newStepCmd(a *app, use, short string, step func(id string) (bool, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <index>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.entryAt(args[0])
			if err != nil {
				return err
			}
			if !e.Steppable() {
				return fmt.Errorf("%s is purchased; toggle it first", e.Name)
			}
			changed, err := step(e.ID)
			if err != nil {
				return err
			}
			after, _ := a.list.Get(e.ID)
			if !changed {
				fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render(fmt.Sprintf("%s stays at %d", e.Name, after.Quantity)))
				return nil
			}
			ok(cmd.OutOrStdout(), fmt.Sprintf("%s: %d", after.Name, after.Quantity))
			return nil
		},
	}
}

func newRenameCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <index> <name...>",
		Short: "Rename an item that is not purchased",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.entryAt(args[0])
			if err != nil {
				return err
			}
			renamed, err := a.list.CommitRename(e.ID, strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			ok(cmd.OutOrStdout(), fmt.Sprintf("renamed %s to %s", e.Name, renamed.Name))
			return nil
		},
	}
}

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <index>",
		Aliases: []string{"delete"},
		Short:   "Delete an item that is not purchased",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.entryAt(args[0])
			if err != nil {
				return err
			}
			if err := a.list.Delete(e.ID); err != nil {
				if errors.Is(err, buylist.ErrPurchased) {
					return fmt.Errorf("%s is purchased and cannot be deleted", e.Name)
				}
				return err
			}
			ok(cmd.OutOrStdout(), "removed "+e.Name)
			return nil
		},
	}
}

func newResetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Forget the stored list; the next run starts from the seed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.adapter.Clear(); err != nil {
				return err
			}
			ok(cmd.OutOrStdout(), "stored list cleared")
			return nil
		},
	}
}

func (a *app) entryAt(arg string) (buylist.Entry, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return buylist.Entry{}, fmt.Errorf("not a number: %s", arg)
	}
	e, found := a.list.At(n - 1)
	if !found {
		return buylist.Entry{}, fmt.Errorf("index out of range: have %d, got %d", a.list.Len(), n)
	}
	return e, nil
}

func printList(w io.Writer, list *buylist.List) {
	var lines []string
	stats := list.Stats()
	lines = append(lines, titleStyle.Render("Buy list"))
	lines = append(lines, "")
	if list.Len() == 0 {
		lines = append(lines, mutedStyle.Render("no items"))
	}
	for i, e := range list.Entries() {
		name := e.Name
		if e.Purchased {
			name = boughtStyle.Render(name)
		}
		lines = append(lines, fmt.Sprintf("%2d. %-20s %3d  [%s]", i+1, name, e.Quantity, e.ToggleLabel()))
	}
	lines = append(lines, "")
	lines = append(lines, statLines("Remaining", stats.Remaining, pendingStyle)...)
	lines = append(lines, "")
	lines = append(lines, statLines("Purchased", stats.Purchased, successStyle)...)
	fmt.Fprintln(w, panelStyle.Render(strings.Join(lines, "\n")))
}

func statLines(title string, lines []buylist.Line, style lipgloss.Style) []string {
	out := []string{style.Render(title)}
	if len(lines) == 0 {
		return append(out, mutedStyle.Render("  (none)"))
	}
	for _, l := range lines {
		out = append(out, fmt.Sprintf("  %s: %d", l.Name, l.Quantity))
	}
	return out
}
