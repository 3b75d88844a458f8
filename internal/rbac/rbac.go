// Package rbac описывает, какие профили могут выполнять какие действия.
// Старшинство профилей здесь не используется: доступ определяется только списком.
package rbac

import "github.com/dudsmessias/new-automacao-esp-seedf/internal/model"

// Action — идентификатор защищённого действия.
type Action string

const (
	EspCreate     Action = "esp:create"
	EspEdit       Action = "esp:edit"
	EspDelete     Action = "esp:delete"
	CadernoCreate Action = "caderno:create"
	CadernoEdit   Action = "caderno:edit"
	CadernoDelete Action = "caderno:delete"
	ArquivoUpload Action = "arquivo:upload"
	ArquivoDelete Action = "arquivo:delete"
	LogsView      Action = "logs:view"
	UsersManage   Action = "users:manage"
	SeedRun       Action = "seed:run"
)

// Policy — неизменяемая таблица action → разрешённые профили.
type Policy struct {
	rules map[Action]map[model.Perfil]struct{}
}

// NewPolicy строит политику из таблицы.
func NewPolicy(table map[Action][]model.Perfil) *Policy {
	p := &Policy{rules: make(map[Action]map[model.Perfil]struct{}, len(table))}
	for action, perfis := range table {
		set := make(map[model.Perfil]struct{}, len(perfis))
		for _, perfil := range perfis {
			set[perfil] = struct{}{}
		}
		p.rules[action] = set
	}
	return p
}

// DefaultPolicy — таблица прав приложения.
func DefaultPolicy() *Policy {
	autores := []model.Perfil{model.PerfilArquiteto, model.PerfilChefeDeNucleo, model.PerfilDiretor}
	return NewPolicy(map[Action][]model.Perfil{
		EspCreate:     autores,
		EspEdit:       autores,
		EspDelete:     {model.PerfilGerente, model.PerfilDiretor},
		CadernoCreate: autores,
		CadernoEdit:   autores,
		CadernoDelete: {model.PerfilGerente, model.PerfilDiretor},
		ArquivoUpload: autores,
		ArquivoDelete: autores,
		LogsView:      {model.PerfilChefeDeNucleo, model.PerfilGerente, model.PerfilDiretor},
		UsersManage:   {model.PerfilDiretor},
		SeedRun:       {model.PerfilDiretor},
	})
}

// Allows — true, если профиль входит в список действия.
// Неизвестное действие запрещено всем.
func (p *Policy) Allows(perfil model.Perfil, action Action) bool {
	set, ok := p.rules[action]
	if !ok {
		return false
	}
	_, ok = set[perfil]
	return ok
}

// Roles возвращает разрешённые профили действия в порядке старшинства.
func (p *Policy) Roles(action Action) []model.Perfil {
	var out []model.Perfil
	for _, perfil := range model.Perfis() {
		if p.Allows(perfil, action) {
			out = append(out, perfil)
		}
	}
	return out
}

// Actions — все действия в порядке объявления.
func Actions() []Action {
	return []Action{
		EspCreate, EspEdit, EspDelete,
		CadernoCreate, CadernoEdit, CadernoDelete,
		ArquivoUpload, ArquivoDelete,
		LogsView, UsersManage, SeedRun,
	}
}

// Granted возвращает действия, доступные профилю.
func (p *Policy) Granted(perfil model.Perfil) []Action {
	out := []Action{}
	for _, action := range Actions() {
		if p.Allows(perfil, action) {
			out = append(out, action)
		}
	}
	return out
}
