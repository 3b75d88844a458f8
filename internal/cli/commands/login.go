package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/dudsmessias/new-automacao-esp-seedf/internal/cli/api"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/config"
)

type loginCmd struct{}

func (loginCmd) Name() string        { return "login" }
func (loginCmd) Description() string { return "Login and store auth token" }
func (loginCmd) Usage() string       { return "login <email> <senha>" }

func (loginCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	user, err := newClient(cfg).Login(ctx, args[0], args[1])
	if errors.Is(err, api.ErrUnauthorized) {
		return errors.New("invalid email or password")
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "Logged in as %s (%s)\n", user.Nome, user.Perfil)
	return nil
}

type logoutCmd struct{}

func (logoutCmd) Name() string        { return "logout" }
func (logoutCmd) Description() string { return "Forget stored auth token" }
func (logoutCmd) Usage() string       { return "logout" }

func (logoutCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	if err := newClient(cfg).Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Logged out")
	return nil
}

type meCmd struct{}

func (meCmd) Name() string        { return "me" }
func (meCmd) Description() string { return "Show current user" }
func (meCmd) Usage() string       { return "me" }

func (meCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	user, err := newClient(cfg).CurrentUser(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "%s <%s>\nPerfil: %s\nID: %s\n", user.Nome, user.Email, user.Perfil, user.ID)
	return nil
}

func init() {
	RegisterCmd(loginCmd{})
	RegisterCmd(logoutCmd{})
	RegisterCmd(meCmd{})
}
