package handlers

import (
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/model"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/rbac"
	"net/http"
)

const apiVersion = "1.0.0"

// routeDoc — строка справочника маршрутов. Пустой Action: достаточно аутентификации
// (или маршрут публичный, если Public).
type routeDoc struct {
	Group       string
	Method      string
	Path        string
	Description string
	Action      rbac.Action
	Public      bool
}

// apiRoutes должен совпадать с таблицей NewHandler.
var apiRoutes = []routeDoc{
	{"health", http.MethodGet, "/api/health", "Health check", "", true},
	{"health", http.MethodGet, "/api/docs", "API documentation", "", true},

	{"auth", http.MethodPost, "/api/auth/register", "Register new user", "", true},
	{"auth", http.MethodPost, "/api/auth/login", "Login user", "", true},
	{"auth", http.MethodPost, "/api/auth/logout", "Logout user", "", false},
	{"auth", http.MethodGet, "/api/auth/me", "Get current user", "", false},

	{"users", http.MethodGet, "/api/users", "List users", rbac.UsersManage, false},
	{"users", http.MethodPost, "/api/users/{id}/desativar", "Deactivate user", rbac.UsersManage, false},

	{"cadernos", http.MethodGet, "/api/cadernos", "List all cadernos", "", false},
	{"cadernos", http.MethodGet, "/api/cadernos/{id}", "Get caderno by ID", "", false},
	{"cadernos", http.MethodPost, "/api/cadernos", "Create new caderno", rbac.CadernoCreate, false},
	{"cadernos", http.MethodPatch, "/api/cadernos/{id}", "Update caderno", rbac.CadernoEdit, false},
	{"cadernos", http.MethodDelete, "/api/cadernos/{id}", "Delete caderno", rbac.CadernoDelete, false},

	{"esp", http.MethodGet, "/api/esp", "List all ESPs", "", false},
	{"esp", http.MethodGet, "/api/esp/{id}", "Get ESP by ID", "", false},
	{"esp", http.MethodPost, "/api/esp", "Create new ESP", rbac.EspCreate, false},
	{"esp", http.MethodPost, "/api/esp/nova", "Create ESP with defaults", rbac.EspCreate, false},
	{"esp", http.MethodPatch, "/api/esp/{id}", "Update ESP", rbac.EspEdit, false},
	{"esp", http.MethodDelete, "/api/esp/{id}", "Delete ESP", rbac.EspDelete, false},

	{"files", http.MethodPost, "/api/files/upload", "Upload file to ESP", rbac.ArquivoUpload, false},
	{"files", http.MethodGet, "/api/files/{espId}/files", "List ESP files", "", false},
	{"files", http.MethodGet, "/api/files/{id}/download", "Download file", "", false},
	{"files", http.MethodDelete, "/api/files/{id}", "Delete file", rbac.ArquivoDelete, false},

	{"itens", http.MethodGet, "/api/itens-especificacao", "List catalog items", "", false},
	{"itens", http.MethodPost, "/api/itens-especificacao", "Create catalog item", "", false},
	{"itens", http.MethodGet, "/api/itens-especificacao/{id}", "Get catalog item", "", false},
	{"itens", http.MethodPatch, "/api/itens-especificacao/{id}", "Update catalog item", "", false},
	{"itens", http.MethodDelete, "/api/itens-especificacao/{id}", "Delete catalog item", "", false},
	{"itens", http.MethodGet, "/api/catalog/{kind}", "List catalog by kind", "", false},

	{"logs", http.MethodGet, "/api/logs", "Get activity logs", rbac.LogsView, false},
	{"admin", http.MethodPost, "/api/admin/seed", "Seed database", rbac.SeedRun, false},
}

type endpointDoc struct {
	Description string         `json:"description"`
	Auth        bool           `json:"auth"`
	Permission  rbac.Action    `json:"permission,omitempty"`
	Roles       []model.Perfil `json:"roles,omitempty"`
}

// Docs — публичный справочник маршрутов и прав по профилям.
func (h *AdminHandler) Docs(w http.ResponseWriter, r *http.Request) {
	endpoints := map[string]map[string]endpointDoc{}
	for _, rt := range apiRoutes {
		doc := endpointDoc{Description: rt.Description, Auth: !rt.Public, Permission: rt.Action}
		if rt.Action != "" {
			doc.Roles = h.Policy.Roles(rt.Action)
		}
		if endpoints[rt.Group] == nil {
			endpoints[rt.Group] = map[string]endpointDoc{}
		}
		endpoints[rt.Group][rt.Method+" "+rt.Path] = doc
	}

	perms := make(map[model.Perfil][]rbac.Action, len(model.Perfis()))
	for _, perfil := range model.Perfis() {
		perms[perfil] = h.Policy.Granted(perfil)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":   "SEEDF ESP API Documentation",
		"version":   apiVersion,
		"endpoints": endpoints,
		"rbac":      perms,
	})
}
