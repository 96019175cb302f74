package middleware

import (
	"net/http"
)

// MethodOverride lets HTML forms express PUT/DELETE/PATCH through a hidden
// _method field on a POST. It wraps the router rather than running inside it
// because the route must be matched against the overridden method.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			switch r.PostFormValue("_method") {
			case http.MethodPut:
				r.Method = http.MethodPut
			case http.MethodPatch:
				r.Method = http.MethodPatch
			case http.MethodDelete:
				r.Method = http.MethodDelete
			}
		}
		next.ServeHTTP(w, r)
	})
}
