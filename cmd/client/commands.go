// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/MKhiriev/go-account-guard/internal/adapter"
	"github.com/MKhiriev/go-account-guard/models"
)

var (
	errNoCommand      = errors.New("no command given")
	errUnknownCommand = errors.New("unknown command")
	errMissingFlag    = errors.New("missing required flag")
)

type apiFactory func(address string, timeout time.Duration) (adapter.AccountAPI, error)

type cli struct {
	defaults  clientConfig
	buildInfo models.AppBuildInfo
	out       io.Writer
	newAPI    apiFactory
}

type command func(ctx context.Context, api adapter.AccountAPI, args []string) error

func (c *cli) commands() map[string]command {
	return map[string]command{
		"register":   c.register,
		"login":      c.login,
		"login-mpin": c.loginMpin,
		"reset-mpin": c.resetMpin,
		"deactivate": c.deactivate,
		"history":    c.history,
		"version":    c.version,
	}
}

func (c *cli) run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.SetOutput(c.out)
	address := fs.String("a", c.defaults.Address, "server address host:port or URL")
	timeout := fs.Duration("timeout", c.defaults.Timeout, "request timeout")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errNoCommand
	}

	name := fs.Arg(0)
	cmd, ok := c.commands()[name]
	if !ok {
		return fmt.Errorf("%w: %q", errUnknownCommand, name)
	}

	api, err := c.newAPI(*address, *timeout)
	if err != nil {
		return err
	}

	return cmd(ctx, api, fs.Args()[1:])
}

func (c *cli) register(ctx context.Context, api adapter.AccountAPI, args []string) error {
	var request models.RegistrationRequest
	fs := c.flagSet("register")
	fs.StringVar(&request.Username, "username", "", "username")
	fs.StringVar(&request.FirstName, "first-name", "", "first name")
	fs.StringVar(&request.LastName, "last-name", "", "last name")
	fs.StringVar(&request.DateOfBirth, "dob", "", "date of birth YYYY-MM-DD")
	fs.StringVar(&request.PAN, "pan", "", "PAN")
	fs.StringVar(&request.Mobile, "mobile", "", "10-digit mobile number")
	fs.StringVar(&request.Email, "email", "", "email address")
	fs.StringVar(&request.Password, "password", "", "password")
	fs.StringVar(&request.Mpin, "mpin", "", "4 or 6 digit MPIN")
	if err := fs.Parse(args); err != nil {
		return err
	}
	request.ConfirmPassword = request.Password

	account, err := api.Register(ctx, request)
	if err != nil {
		return err
	}
	return c.print(account)
}

func (c *cli) login(ctx context.Context, api adapter.AccountAPI, args []string) error {
	fs := c.flagSet("login")
	identifier := fs.String("id", "", "username, mobile or email")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := required("id", *identifier); err != nil {
		return err
	}

	account, err := api.LoginWithPassword(ctx, *identifier, *password)
	if err != nil {
		return err
	}
	return c.print(account)
}

func (c *cli) loginMpin(ctx context.Context, api adapter.AccountAPI, args []string) error {
	fs := c.flagSet("login-mpin")
	identifier := fs.String("id", "", "mobile or email")
	mpin := fs.String("mpin", "", "MPIN")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := required("id", *identifier); err != nil {
		return err
	}

	account, err := api.LoginWithMpin(ctx, *identifier, *mpin)
	if err != nil {
		return err
	}
	return c.print(account)
}

func (c *cli) resetMpin(ctx context.Context, api adapter.AccountAPI, args []string) error {
	fs := c.flagSet("reset-mpin")
	accountID := fs.Int64("account", 0, "account id")
	mpin := fs.String("mpin", "", "new MPIN")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *accountID <= 0 {
		return fmt.Errorf("%w: -account", errMissingFlag)
	}

	if err := api.ResetMpin(ctx, *accountID, *mpin); err != nil {
		return err
	}
	return c.print(models.MessageResponse{Message: "mpin reset"})
}

func (c *cli) deactivate(ctx context.Context, api adapter.AccountAPI, args []string) error {
	fs := c.flagSet("deactivate")
	accountID := fs.Int64("account", 0, "account id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *accountID <= 0 {
		return fmt.Errorf("%w: -account", errMissingFlag)
	}

	account, err := api.Deactivate(ctx, *accountID)
	if err != nil {
		return err
	}
	return c.print(account)
}

func (c *cli) history(ctx context.Context, api adapter.AccountAPI, args []string) error {
	fs := c.flagSet("history")
	accountID := fs.Int64("account", 0, "account id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *accountID <= 0 {
		return fmt.Errorf("%w: -account", errMissingFlag)
	}

	changes, err := api.PasswordHistory(ctx, *accountID)
	if err != nil {
		return err
	}
	return c.print(changes)
}

func (c *cli) version(ctx context.Context, api adapter.AccountAPI, _ []string) error {
	serverVersion, err := api.ServerVersion(ctx)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(c.out, "client: %s (%s, %s)\nserver: %s\n",
		orNA(c.buildInfo.BuildVersion()), orNA(c.buildInfo.BuildDate()), orNA(c.buildInfo.BuildCommit()), serverVersion)
	return err
}

func (c *cli) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.out)
	return fs
}

func (c *cli) print(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func required(name, value string) error {
	if value == "" {
		return fmt.Errorf("%w: -%s", errMissingFlag, name)
	}
	return nil
}

func orNA(value string) string {
	if value == "" {
		return "N/A"
	}
	return value
}
