package validators

import (
	"errors"
	"net/http"
	"testing"

	"github.com/anonto42/tweeter/backend/internal/models"
	"github.com/labstack/echo/v4"
)

func TestValidate(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name    string
		input   interface{}
		wantErr bool
	}{
		{"valid signup", &models.SignupRequest{Handle: "alice", Name: "Alice", Email: "a@x.com", Password: "pw1"}, false},
		{"missing handle", &models.SignupRequest{Name: "Alice", Email: "a@x.com", Password: "pw1"}, true},
		{"bad email", &models.SignupRequest{Handle: "alice", Name: "Alice", Email: "nope", Password: "pw1"}, true},
		{"empty tweet", &models.CreateTweetRequest{Text: ""}, true},
		{"short tweet", &models.CreateTweetRequest{Text: "hello"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			var he *echo.HTTPError
			if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
				t.Errorf("Validate() error = %#v, want 400 HTTPError", err)
			}
		})
	}
}
