package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"tempmail-pro/app"
	"tempmail-pro/logging"
	"tempmail-pro/models"
	"tempmail-pro/poller"
	"tempmail-pro/tui"
	"tempmail-pro/ui"
)

const appVersion = "1.0.0"

func main() {
	if err := buildApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", ui.ColorError("Error:"), err)
		os.Exit(1)
	}
}

func buildApp() *cli.App {
	cliApp := cli.NewApp()

	cliApp.Name = "tempmail"
	cliApp.Usage = "disposable email addresses across multiple providers"
	cliApp.Version = appVersion

	cliApp.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config",
			Usage: "path to the YAML configuration file",
		},
		cli.StringFlag{
			Name:  "state",
			Usage: "override the state file location",
		},
		cli.BoolFlag{
			Name:  "verbose",
			Usage: "enable debug logging",
		},
	}

	// With no subcommand the TUI launches.
	cliApp.Action = func(c *cli.Context) error {
		a, err := setup(c)
		if err != nil {
			return err
		}
		defer a.Close()

		return tui.Run(a)
	}

	cliApp.Commands = []cli.Command{
		newAddress(),
		listAddresses(),
		showInbox(),
		readMessage(),
		deleteAddress(),
		listDomains(),
		watchInboxes(),
	}

	return cliApp
}

// setup loads config and builds the application for one command invocation.
func setup(c *cli.Context) (*app.App, error) {
	cfg, err := models.LoadConfig(globalString(c, "config"))
	if err != nil {
		return nil, errors.Wrap(err, "loading configuration")
	}
	if state := globalString(c, "state"); state != "" {
		cfg.StateFile = state
	}
	cfg.Verbose = cfg.Verbose || globalBool(c, "verbose")

	log, err := logging.Setup(cfg.LogFile, cfg.LogLevel, cfg.Verbose)
	if err != nil {
		return nil, errors.Wrap(err, "setting up logging")
	}

	return app.New(cfg, log)
}

// globalString reads a top-level flag from inside a subcommand.
func globalString(c *cli.Context, name string) string {
	if v := c.GlobalString(name); v != "" {
		return v
	}
	return c.String(name)
}

func globalBool(c *cli.Context, name string) bool {
	return c.GlobalBool(name) || c.Bool(name)
}

func newAddress() cli.Command {
	return cli.Command{
		Name:  "new",
		Usage: "create a new disposable address",
		Flags: []cli.Flag{
			cli.StringFlag{
				Name:  "provider",
				Usage: "provider to mint the address with",
			},
			cli.StringFlag{
				Name:  "domain",
				Usage: "domain for the address, when the provider supports choosing",
			},
		},
		Action: func(c *cli.Context) error {
			a, err := setup(c)
			if err != nil {
				return err
			}
			defer a.Close()

			providerName := c.String("provider")
			if providerName == "" {
				providerName = a.Config.DefaultProvider
			}

			addr, err := a.CreateAddress(context.Background(), providerName, c.String("domain"))
			if err != nil {
				return errors.Wrap(err, "creating address")
			}

			fmt.Printf("%s %s\n", ui.ColorSuccess("Created:"), ui.ColorHighlight(addr.Email))
			return nil
		},
	}
}

func listAddresses() cli.Command {
	return cli.Command{
		Name:  "list",
		Usage: "show tracked addresses and their message counts",
		Action: func(c *cli.Context) error {
			a, err := setup(c)
			if err != nil {
				return err
			}
			defer a.Close()

			ui.PrintAddressList(a.Addresses())
			return nil
		},
	}
}

func showInbox() cli.Command {
	return cli.Command{
		Name:      "inbox",
		Usage:     "refresh and print the inbox for an address",
		ArgsUsage: "<email>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return errors.New("usage: inbox <email>")
			}
			a, err := setup(c)
			if err != nil {
				return err
			}
			defer a.Close()

			email := c.Args().Get(0)
			msgs, _, err := a.RefreshAddress(context.Background(), email)
			if err != nil {
				return errors.Wrap(err, "refreshing inbox")
			}

			ui.PrintInbox(email, msgs)
			return nil
		},
	}
}

func readMessage() cli.Command {
	return cli.Command{
		Name:      "read",
		Usage:     "print a message",
		ArgsUsage: "<email> <message-id>",
		Flags: []cli.Flag{
			cli.BoolFlag{
				Name:  "raw",
				Usage: "print the raw message JSON instead of rendered text",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return errors.New("usage: read <email> <message-id>")
			}
			a, err := setup(c)
			if err != nil {
				return err
			}
			defer a.Close()

			msg, err := a.ReadMessage(context.Background(), c.Args().Get(0), c.Args().Get(1))
			if err != nil {
				return errors.Wrap(err, "reading message")
			}

			if c.Bool("raw") {
				fmt.Println(app.RawJSON(msg))
				return nil
			}
			ui.PrintMessage(msg)
			return nil
		},
	}
}

func deleteAddress() cli.Command {
	return cli.Command{
		Name:      "delete",
		Usage:     "forget an address and its cached messages",
		ArgsUsage: "<email>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return errors.New("usage: delete <email>")
			}
			a, err := setup(c)
			if err != nil {
				return err
			}
			defer a.Close()

			email := c.Args().Get(0)
			if !a.DeleteAddress(email) {
				return errors.Errorf("address '%s' is not tracked", email)
			}

			fmt.Printf("%s %s\n", ui.ColorSuccess("Deleted:"), ui.ColorHighlight(email))
			return nil
		},
	}
}

func listDomains() cli.Command {
	return cli.Command{
		Name:  "domains",
		Usage: "list the domains a provider can mint addresses under",
		Flags: []cli.Flag{
			cli.StringFlag{
				Name:  "provider",
				Usage: "provider to query; all providers when unset",
			},
		},
		Action: func(c *cli.Context) error {
			a, err := setup(c)
			if err != nil {
				return err
			}
			defer a.Close()

			names := a.ProviderNames()
			if p := c.String("provider"); p != "" {
				names = []string{p}
			}

			ctx := context.Background()
			for _, name := range names {
				domains, err := a.Domains(ctx, name)
				if err != nil {
					return errors.Wrapf(err, "fetching domains for %s", name)
				}
				ui.PrintDomains(name, domains)
			}
			return nil
		},
	}
}

func watchInboxes() cli.Command {
	return cli.Command{
		Name:  "watch",
		Usage: "poll all inboxes in the foreground and print new-mail notices",
		Flags: []cli.Flag{
			cli.DurationFlag{
				Name:  "interval",
				Usage: "poll interval (1s-60s); defaults to the configured value",
			},
		},
		Action: func(c *cli.Context) error {
			a, err := setup(c)
			if err != nil {
				return err
			}
			defer a.Close()

			interval := a.Config.RefreshInterval
			if v := c.Duration("interval"); v != 0 {
				if v < models.MinRefreshInterval || v > models.MaxRefreshInterval {
					return errors.New("interval must be between 1s and 60s")
				}
				interval = v
			}

			addrs := a.Addresses()
			if len(addrs) == 0 {
				return errors.New("no addresses to watch; create one with 'new'")
			}

			fmt.Printf("%s %d address(es), every %s. Ctrl-C to stop.\n",
				ui.ColorTitle("Watching"), len(addrs), interval)

			// Ctrl-C cancels the loop so the deferred Close still saves state.
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			err = a.Watch(ctx, interval, func(n poller.Notice) {
				ui.PrintNewMail(n.Email, n.New, n.Count)
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}
