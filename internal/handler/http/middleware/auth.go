package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/ujoors/payroll-backend-go/internal/domain/auth"
	"github.com/ujoors/payroll-backend-go/internal/domain/user"
	"github.com/ujoors/payroll-backend-go/internal/handler/http/response"
)

// AuthRequired rejects tokens that verified cryptographically but are not
// usable on payroll routes: refresh tokens presented as access tokens, and
// tokens minted without the claims every handler downstream relies on.
// Signature and expiry checks happen earlier, in jwtauth.Verifier.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}
			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if tokenType, _ := claims["type"].(string); tokenType != "access" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			// All payroll data is partitioned by company. A token without
			// the scope would only produce confusing not-found errors
			// further down, so reject it here.
			if companyID, _ := claims["company_id"].(string); companyID == "" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			role, _ := claims["role"].(string)
			if !user.Role(role).Valid() {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}
