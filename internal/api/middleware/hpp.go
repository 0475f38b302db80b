package middleware

import (
	"errors"
	"mime"
	"net/http"
	"net/url"

	"github.com/zatekoja/hospitalsite/internal/api/respond"
)

// ParameterPollution collapses repeated query and urlencoded form parameters
// to their last value, so handlers never see an attacker-supplied list.
func ParameterPollution(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.RawQuery != "" {
			query := r.URL.Query()
			if collapse(query) {
				r.URL.RawQuery = query.Encode()
			}
		}

		mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if mediaType == "application/x-www-form-urlencoded" && r.Body != nil && r.Body != http.NoBody {
			if err := r.ParseForm(); err != nil {
				status, msg := http.StatusBadRequest, "invalid form body"
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					status, msg = http.StatusRequestEntityTooLarge, "request entity too large"
				}
				if respond.IsAPI(r) {
					respond.Error(w, status, msg)
				} else {
					http.Error(w, msg, status)
				}
				return
			}
			collapse(r.PostForm)
			r.Form = mergeForm(r.URL.Query(), r.PostForm)
		}

		next.ServeHTTP(w, r)
	})
}

func collapse(values url.Values) bool {
	changed := false
	for key, vs := range values {
		if len(vs) > 1 {
			values[key] = vs[len(vs)-1:]
			changed = true
		}
	}
	return changed
}

// mergeForm mirrors net/http: body values take precedence over the query.
func mergeForm(query, post url.Values) url.Values {
	form := make(url.Values, len(query)+len(post))
	for k, v := range post {
		form[k] = append([]string(nil), v...)
	}
	for k, v := range query {
		form[k] = append(form[k], v...)
	}
	return form
}
