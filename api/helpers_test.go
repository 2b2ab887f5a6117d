package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/avelora/airdesk/internal/domain"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// withIdentity stands in for the auth middleware and stores the caller
// under the same context key.
func withIdentity(identity domain.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("identity", identity)
	}
}

func performRequest(router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			panic(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

var (
	testCustomer = domain.Identity{SubjectID: "cust-1", Email: "cust@example.com", Role: domain.RoleCustomer}
	testAdmin    = domain.Identity{SubjectID: "adm-1", Email: "admin@example.com", Role: domain.RoleAdmin}
)
