package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/KirkDiggler/essence-sheet/internal/dice"
	"github.com/KirkDiggler/essence-sheet/internal/domain/character"
	sheeterr "github.com/KirkDiggler/essence-sheet/internal/errors"
	"github.com/KirkDiggler/essence-sheet/internal/services"
	"github.com/KirkDiggler/essence-sheet/internal/services/derived"
	"github.com/KirkDiggler/essence-sheet/internal/services/transfer"
)

const usage = `usage: sheet <command> [args]

commands:
  list                 list characters, * marks the selection
  create <name>        create a character and select it
  select <id>          select a character
  delete <id>          delete a character
  rename <name>        rename the selected character
  show [attribute]     show the selected character's derived sheet
  roll                 roll the selected character's dice pool
  export [id|all]      export the selection, one character, or everyone
  import <file>        import one character or an array of them`

// app runs one command against a loaded provider
type app struct {
	ctx       context.Context
	provider  *services.Provider
	exportDir string
	out       io.Writer
}

func (a *app) run(args []string) error {
	if len(args) == 0 {
		return sheeterr.InvalidArgument(usage)
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "list":
		return a.list()
	case "create":
		return a.create(strings.Join(rest, " "))
	case "select":
		if len(rest) != 1 {
			return sheeterr.InvalidArgument("usage: sheet select <id>")
		}
		if _, err := a.provider.Store.Get(rest[0]); err != nil {
			return err
		}
		return a.provider.Store.Select(rest[0])
	case "delete":
		if len(rest) != 1 {
			return sheeterr.InvalidArgument("usage: sheet delete <id>")
		}
		return a.provider.Store.Delete(rest[0])
	case "rename":
		return a.rename(strings.Join(rest, " "))
	case "show":
		attribute := ""
		if len(rest) > 0 {
			attribute = rest[0]
		}
		return a.show(character.AttributeKey(attribute))
	case "roll":
		return a.roll()
	case "export":
		target := ""
		if len(rest) > 0 {
			target = rest[0]
		}
		return a.export(target)
	case "import":
		if len(rest) != 1 {
			return sheeterr.InvalidArgument("usage: sheet import <file>")
		}
		return a.importFile(rest[0])
	}

	return sheeterr.InvalidArgumentf("unknown command '%s'\n\n%s", cmd, usage)
}

// exitCode maps a command error to the process status
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case sheeterr.IsInvalidArgument(err), sheeterr.IsValidation(err):
		return 2
	case sheeterr.IsNotFound(err):
		return 3
	case sheeterr.IsUnavailable(err):
		return 4
	case sheeterr.IsDataCorruption(err):
		return 5
	}
	return 1
}

func (a *app) list() error {
	store := a.provider.Store
	current := store.CurrentID()

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for _, c := range store.Characters() {
		marker := " "
		if c.ID == current {
			marker = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", marker, c.ID, c.Name)
	}
	return w.Flush()
}

func (a *app) create(name string) error {
	created, err := a.provider.Store.Create(name)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "created %s (%s)\n", created.Name, created.ID)
	return nil
}

func (a *app) rename(name string) error {
	renamed, err := a.provider.Store.Rename(name)
	if err != nil {
		return err
	}
	if renamed == nil {
		return sheeterr.InvalidArgument("no character selected")
	}
	fmt.Fprintf(a.out, "renamed to %s\n", renamed.Name)
	return nil
}

func (a *app) selected() (*character.Character, error) {
	current := a.provider.Store.Current()
	if current == nil {
		return nil, sheeterr.InvalidArgument("no character selected")
	}
	return current, nil
}

func (a *app) show(attribute character.AttributeKey) error {
	if attribute != "" && !attribute.IsValid() {
		return sheeterr.InvalidArgumentf("unknown attribute '%s'", attribute)
	}

	c, err := a.selected()
	if err != nil {
		return err
	}
	sheet := derived.Compute(c, derived.Options{AbilityAttribute: attribute})

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t(%s)\n\n", c.Name, c.ID)
	for _, key := range character.AttributeKeys {
		fmt.Fprintf(w, "%s\t%d\n", key, sheet.Attributes[key])
	}
	fmt.Fprintln(w)
	for _, key := range character.AbilityKeys {
		line := sheet.Abilities[key]
		if attribute != "" {
			fmt.Fprintf(w, "%s\t%d\t%d\n", key, line.Total, line.WithAttribute)
			continue
		}
		fmt.Fprintf(w, "%s\t%d\n", key, line.Total)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "essence\t%d remaining\t%d open\n", sheet.EssenceRemaining, sheet.EssenceOpen)
	fmt.Fprintf(w, "anima\t%s\n", sheet.Anima)
	for _, ruling := range sheet.AnimaRulings {
		fmt.Fprintf(w, "\t%s\n", ruling)
	}
	fmt.Fprintf(w, "armor\tsoak %d\thardness %d\tmobility -%d\n", sheet.Armor.Soak, sheet.Armor.Hardness, sheet.Armor.MobilityPenalty)
	fmt.Fprintf(w, "health\t%d/%d marked\tpenalty -%d\n", sheet.Wounds.Marked, sheet.Wounds.Boxes, sheet.Wounds.Penalty)
	if sheet.Wounds.Incapacitated {
		fmt.Fprintln(w, "\tincapacitated")
	}
	fmt.Fprintf(w, "injuries\t%d active\n", sheet.ActiveInjuries)
	fmt.Fprintf(w, "pool\t%s\n", sheet.DicePool.ActionPhrase)
	return w.Flush()
}

func (a *app) roll() error {
	c, err := a.selected()
	if err != nil {
		return err
	}

	pool := derived.Compute(c, derived.Options{}).DicePool
	result, err := dice.RollPool(a.provider.Roller, pool)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, pool.ActionPhrase)
	fmt.Fprintf(a.out, "%v\n", result.Faces)
	switch {
	case result.Botched():
		fmt.Fprintln(a.out, "botch")
	case result.ExtraSuccesses > 0:
		fmt.Fprintf(a.out, "%d successes (%d rolled + %d)\n", result.Successes, result.Rolled, result.ExtraSuccesses)
	default:
		fmt.Fprintf(a.out, "%d successes\n", result.Successes)
	}
	return nil
}

func (a *app) export(target string) error {
	store := a.provider.Store

	// Exports reflect what is on disk
	if err := store.Flush(a.ctx); err != nil {
		return sheeterr.Wrap(err, "failed to save pending changes before export")
	}

	var (
		path string
		err  error
	)
	switch target {
	case "all":
		path, err = transfer.ExportAllToFile(a.exportDir, store.Characters())
	case "":
		c, selErr := a.selected()
		if selErr != nil {
			return selErr
		}
		path, err = transfer.ExportToFile(a.exportDir, c)
	default:
		c, getErr := store.Get(target)
		if getErr != nil {
			return getErr
		}
		path, err = transfer.ExportToFile(a.exportDir, c)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "exported to %s\n", path)
	return nil
}

func (a *app) importFile(path string) error {
	imported, err := a.provider.Transfer.ImportFromFile(a.provider.Store, path)
	if err != nil {
		return err
	}
	for _, c := range imported {
		fmt.Fprintf(a.out, "imported %s (%s)\n", c.Name, c.ID)
	}
	return nil
}
