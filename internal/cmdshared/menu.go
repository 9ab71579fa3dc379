package cmdshared

import (
	"errors"
	"fmt"

	"github.com/leocov-dev/packlaunch/core"
	"github.com/spf13/viper"
	"gopkg.in/dixonwille/wmenu.v4"
)

// ChoosePack asks the user to pick one of packs. It returns nil when the
// user cancels.
func ChoosePack(question string, packs []*core.ModPack, name func(*core.ModPack) string) (*core.ModPack, error) {
	if len(packs) == 0 {
		return nil, errors.New("no packs to choose from")
	}
	if len(packs) == 1 || viper.GetBool("non-interactive") {
		return packs[0], nil
	}

	menu := wmenu.NewMenu(question)
	menu.Option("Cancel", nil, false, nil)
	for i, p := range packs {
		title := name(p)
		if !p.IsPlaceholder() && p.Version != "" {
			title += " (" + p.Version + ")"
		}
		menu.Option(title, p, i == 0, nil)
	}

	var chosen *core.ModPack
	menu.Action(func(menuRes []wmenu.Opt) error {
		if len(menuRes) != 1 || menuRes[0].Value == nil {
			fmt.Println("Cancelled!")
			return nil
		}
		var ok bool
		chosen, ok = menuRes[0].Value.(*core.ModPack)
		if !ok {
			return errors.New("error converting interface from wmenu")
		}
		return nil
	})
	if err := menu.Run(); err != nil {
		return nil, err
	}
	return chosen, nil
}
