package validator

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

type probePayload struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"required,min=2"`
}

func bindJSON(t *testing.T, body string, dst interface{}) map[string]string {
	t.Helper()
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("POST", "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return Bind(c, dst)
}

func TestBindValidPayload(t *testing.T) {
	Setup()

	var p probePayload
	if fields := bindJSON(t, `{"email":"rina@example.com","name":"Rina"}`, &p); fields != nil {
		t.Fatalf("unexpected errors: %v", fields)
	}
	if p.Email != "rina@example.com" {
		t.Fatalf("email = %q", p.Email)
	}
}

func TestBindReportsFieldsByJSONName(t *testing.T) {
	Setup()

	var p probePayload
	fields := bindJSON(t, `{"email":"not-an-email"}`, &p)
	if fields == nil {
		t.Fatal("expected validation errors")
	}
	if _, ok := fields["email"]; !ok {
		t.Fatalf("missing email error, got %v", fields)
	}
	if _, ok := fields["name"]; !ok {
		t.Fatalf("missing name error, got %v", fields)
	}
}

func TestBindMalformedJSON(t *testing.T) {
	Setup()

	var p probePayload
	fields := bindJSON(t, `{"email":`, &p)
	if fields == nil {
		t.Fatal("expected an error map for malformed JSON")
	}
	if _, ok := fields["detail"]; !ok {
		t.Fatalf("malformed JSON should map to detail, got %v", fields)
	}
}
