package http

import (
	"net/http"

	"github.com/cmlabs-hris/sge-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/sge-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// resolveEmployeeID fills an empty employee ID from the token and stops
// employees from acting for someone else. Without a token the ID is kept.
func resolveEmployeeID(r *http.Request, employeeID *string) error {
	token, claims, err := jwtauth.FromContext(r.Context())
	if err != nil || token == nil {
		return nil
	}

	own, _ := claims["employee_id"].(string)
	if *employeeID == "" {
		*employeeID = own
		return nil
	}

	return checkOwner(claims, *employeeID)
}

// authorizeOwner stops employees from reading records of someone else.
// Without a token every record is readable.
func authorizeOwner(r *http.Request, ownerID string) error {
	token, claims, err := jwtauth.FromContext(r.Context())
	if err != nil || token == nil {
		return nil
	}
	return checkOwner(claims, ownerID)
}

func checkOwner(claims map[string]interface{}, ownerID string) error {
	roleStr, _ := claims["role"].(string)
	if role, ok := jwt.ParseRole(roleStr); ok && role != jwt.RoleEmployee {
		return nil
	}

	own, _ := claims["employee_id"].(string)
	if own == "" || own != ownerID {
		return middleware.ErrEmployeeAccessRequired
	}
	return nil
}
