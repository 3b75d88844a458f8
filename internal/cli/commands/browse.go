package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/dudsmessias/new-automacao-esp-seedf/internal/config"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/model"
)

type cadernosCmd struct{}

func (cadernosCmd) Name() string        { return "cadernos" }
func (cadernosCmd) Description() string { return "Показать cadernos" }
func (cadernosCmd) Usage() string       { return "cadernos" }

func (cadernosCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	list, err := newClient(cfg).Cadernos(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(Out, "Нет cadernos")
		return nil
	}
	for _, c := range list {
		fmt.Fprintf(Out, "- %s  %-12s  %s\n", c.ID, c.Status, c.Titulo)
	}
	fmt.Fprintf(Out, "Всего: %d\n", len(list))
	return nil
}

type espsCmd struct{}

func (espsCmd) Name() string { return "esps" }
func (espsCmd) Description() string {
	return "Показать ESP (поиск по коду, названию, типологии, автору)"
}
func (espsCmd) Usage() string { return "esps [search]" }

func (espsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) > 1 {
		return ErrUsage
	}
	search := ""
	if len(args) == 1 {
		search = args[0]
	}
	list, err := newClient(cfg).Esps(ctx, search)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(Out, "Нет ESP")
		return nil
	}
	for _, e := range list {
		fmt.Fprintf(Out, "- %s  %-14s rev %-4s %s\n", e.ID, e.Codigo, e.Revisao, e.Titulo)
	}
	fmt.Fprintf(Out, "Всего: %d\n", len(list))
	return nil
}

type espCmd struct{}

func (espCmd) Name() string        { return "esp" }
func (espCmd) Description() string { return "Показать ESP целиком" }
func (espCmd) Usage() string       { return "esp <id>" }

func (espCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	e, err := newClient(cfg).Esp(ctx, args[0])
	if err != nil {
		return err
	}
	printEsp(e)
	return nil
}

func printEsp(e *model.Esp) {
	fmt.Fprintf(Out, "%s — %s\n", e.Codigo, e.Titulo)
	fmt.Fprintf(Out, "Tipologia: %s\nRevisão: %s\nPublicação: %s\nSelo: %s\nVisível: %t\n",
		e.Tipologia, e.Revisao, e.DataPublicacao.Format("2006-01-02"), e.Selo, e.Visivel)
	if e.Autor != nil {
		fmt.Fprintf(Out, "Autor: %s\n", e.Autor.Nome)
	}
	if e.Caderno != nil {
		fmt.Fprintf(Out, "Caderno: %s (%s)\n", e.Caderno.Titulo, e.Caderno.Status)
	}
	sections := []struct {
		title string
		text  *string
	}{
		{"Descrição e aplicação", e.DescricaoAplicacao},
		{"Execução", e.Execucao},
		{"Fichas de referência", e.FichasReferencia},
		{"Recebimento", e.Recebimento},
		{"Serviços incluídos", e.ServicosIncluidos},
		{"Critérios de medição", e.CriteriosMedicao},
		{"Legislação", e.Legislacao},
		{"Referências", e.Referencias},
	}
	for _, s := range sections {
		if s.text == nil || strings.TrimSpace(*s.text) == "" {
			continue
		}
		fmt.Fprintf(Out, "\n[%s]\n%s\n", s.title, *s.text)
	}
	if len(e.Arquivos) > 0 {
		fmt.Fprintln(Out, "\nArquivos:")
		for _, a := range e.Arquivos {
			fmt.Fprintf(Out, "- %s  %s  %s\n", a.ID, a.Tipo, a.Filename)
		}
	}
}

func init() {
	RegisterCmd(cadernosCmd{})
	RegisterCmd(espsCmd{})
	RegisterCmd(espCmd{})
}
