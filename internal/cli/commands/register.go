package commands

import (
	"context"
	"fmt"

	"github.com/dudsmessias/new-automacao-esp-seedf/internal/config"
)

type registerCmd struct{}

func (registerCmd) Name() string { return "register" }
func (registerCmd) Description() string {
	return "Create account (perfil: ARQUITETO|CHEFE_DE_NUCLEO|GERENTE|DIRETOR)"
}
func (registerCmd) Usage() string { return "register <nome> <email> <senha> <perfil>" }

func (registerCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 4 {
		return ErrUsage
	}
	user, err := newClient(cfg).Register(ctx, args[0], args[1], args[2], args[3])
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "Registered %s (%s). Run login to continue.\n", user.Email, user.Perfil)
	return nil
}

func init() { RegisterCmd(registerCmd{}) }
