package middleware

import (
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/rbac"
	"net/http"
)

// RequirePermission пропускает запрос дальше только если профиль входит в список действия.
// Проверка выполняется до любого побочного эффекта хендлера.
func RequirePermission(policy *rbac.Policy, action rbac.Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := GetIdentity(r.Context())
			if !ok {
				WriteError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			if !policy.Allows(id.Perfil, action) {
				if sugar != nil {
					sugar.Infow("permission denied", "user_id", id.ID, "perfil", id.Perfil, "action", action)
				}
				WriteError(w, http.StatusForbidden, "insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
