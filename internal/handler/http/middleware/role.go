package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/sge-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/sge-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
)

func roleFromRequest(r *http.Request) (jwt.Role, map[string]interface{}, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", nil, false
	}

	roleStr, ok := claims["role"].(string)
	if !ok {
		return "", nil, false
	}

	role, ok := jwt.ParseRole(roleStr)
	return role, claims, ok
}

// RequireManager requires manager or admin role
func RequireManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, _, ok := roleFromRequest(r)
		if !ok || !role.CanReviewLeave() {
			response.HandleError(w, ErrManagerAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireEmployeeScope lets employees reach only their own records under the
// route parameter param. Managers and admins pass through.
func RequireEmployeeScope(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, claims, ok := roleFromRequest(r)
			if !ok {
				response.HandleError(w, ErrEmployeeAccessRequired)
				return
			}

			if role == jwt.RoleEmployee {
				own, _ := claims["employee_id"].(string)
				if own == "" || own != chi.URLParam(r, param) {
					response.HandleError(w, ErrEmployeeAccessRequired)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}
