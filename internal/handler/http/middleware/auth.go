package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/sge-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/sge-backend-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/sge-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

var (
	ErrInvalidToken           = apperror.New(apperror.KindUnauthorized, "invalid or missing access token")
	ErrManagerAccessRequired  = apperror.New(apperror.KindForbidden, "manager or admin role required")
	ErrEmployeeAccessRequired = apperror.New(apperror.KindForbidden, "access to another employee's records is not allowed")
)

func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, ErrInvalidToken)
				return
			}

			tokenType, ok := claims["type"].(string)
			if tokenType != jwt.TokenTypeAccess || !ok {
				response.HandleError(w, ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}
