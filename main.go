// Command filecards is a desktop file manager that shows the contents of a
// root folder as cards. Navigation never leaves the root folder.
package main

import (
	"errors"
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"FileCardManager/internal/config"
	"FileCardManager/internal/logging"
	"FileCardManager/internal/scope"
)

const appID = "com.blackarck.filecards"

func main() {
	cfg := config.DefaultConfig()
	if err := config.ParseFlags(&cfg, os.Args[1:], os.Stderr); err != nil {
		if errors.Is(err, config.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "filecards: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "filecards: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "filecards: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	sc, err := scope.New(cfg.RootDir, cfg.RootLabel)
	if err != nil {
		log.Error("Cannot open root folder: %v", err)
		os.Exit(1)
	}
	log.Info("=== filecards v%s ===", config.Version)
	log.Info("Root: %s", sc.Root())
	if cfg.ConfigFile != "" {
		log.Info("Settings: %s", cfg.ConfigFile)
	}

	a := app.NewWithID(appID)
	w := a.NewWindow("File Manager")
	w.Resize(fyne.NewSize(1200, 800))

	m := newFileManager(a, w, cfg, log, sc)
	w.SetContent(m.build())
	w.SetMainMenu(m.mainMenu())
	m.restoreLastDir()
	m.startWatcher()
	m.refresh()

	w.SetCloseIntercept(func() {
		m.shutdown()
		w.Close()
	})
	w.ShowAndRun()
}
