package middleware

import (
	"context"
	"errors"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/model"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// CookieName — имя cookie с токеном сессии.
	CookieName = "esp_session"
	// TokenTTL — фиксированный срок жизни токена, без обновления.
	TokenTTL = 7 * 24 * time.Hour
)

type ctxKey int

const identityKey ctxKey = iota

// Identity — аутентифицированный пользователь, восстановленный из токена.
type Identity struct {
	ID     string
	Email  string
	Perfil model.Perfil
}

// Claims — полезная нагрузка JWT.
type Claims struct {
	UID    string       `json:"uid"`
	Email  string       `json:"email"`
	Perfil model.Perfil `json:"perfil"`
	jwt.RegisteredClaims
}

// BuildJWT подписывает токен HS256 для пользователя.
func BuildJWT(id Identity, secret string) (string, error) {
	now := time.Now()
	claims := Claims{
		UID:    id.ID,
		Email:  id.Email,
		Perfil: id.Perfil,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseJWT проверяет подпись и срок действия токена.
func ParseJWT(tokenStr, secret string) (Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Identity{}, err
	}
	if !token.Valid || claims.UID == "" {
		return Identity{}, errors.New("invalid token")
	}
	return Identity{ID: claims.UID, Email: claims.Email, Perfil: claims.Perfil}, nil
}

// SetLoginCookie выпускает токен и кладёт его в cookie; токен возвращается для тела ответа.
func SetLoginCookie(w http.ResponseWriter, id Identity, secret string, secure bool) (string, error) {
	token, err := BuildJWT(id, secret)
	if err != nil {
		return "", err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(TokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	return token, nil
}

// ClearLoginCookie удаляет cookie сессии.
func ClearLoginCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// tokenFromRequest: сначала Authorization: Bearer, потом cookie.
func tokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			if tok := strings.TrimSpace(parts[1]); tok != "" {
				return tok
			}
		}
	}
	if c, err := r.Cookie(CookieName); err == nil {
		return c.Value
	}
	return ""
}

// WithAuth кладёт Identity в контекст, если токен валиден.
// Без токена или с невалидным токеном запрос остаётся анонимным.
func WithAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := tokenFromRequest(r)
			if tok == "" {
				next.ServeHTTP(w, r)
				return
			}
			id, err := ParseJWT(tok, secret)
			if err != nil {
				if sugar != nil {
					sugar.Debugw("auth: rejected token", "path", r.URL.Path, "error", err)
				}
				next.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), identityKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth отвечает 401, если в контексте нет Identity.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetIdentity(r.Context()); !ok {
			WriteError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetIdentity достаёт пользователя из контекста.
func GetIdentity(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// GetUserIDFromContext — короткая форма для id пользователя.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := GetIdentity(ctx)
	return id.ID, ok
}

// ContextWithIdentity нужен сервисам и тестам, работающим без HTTP.
func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}
