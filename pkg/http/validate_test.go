package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

type sampleRequest struct {
	Flag  *int   `json:"flag" validate:"required,gte=0,lte=1"`
	Month int    `json:"month" validate:"required,gte=1,lte=12"`
	Name  string `json:"name" default:"DEFAULT" validate:"required"`
}

func bindContext(body string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestReadAndValidateOK(t *testing.T) {
	req := &sampleRequest{}
	if errs := ReadAndValidateRequest(bindContext(`{"flag":0,"month":8,"name":"x"}`), req); errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if *req.Flag != 0 || req.Month != 8 {
		t.Fatalf("bind mismatch: %+v", req)
	}
}

func TestReadAndValidateAppliesDefaults(t *testing.T) {
	req := &sampleRequest{}
	if errs := ReadAndValidateRequest(bindContext(`{"flag":1,"month":3}`), req); errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if req.Name != "DEFAULT" {
		t.Fatalf("default not applied: %q", req.Name)
	}
}

func TestReadAndValidateMissingRequired(t *testing.T) {
	req := &sampleRequest{}
	errs := ReadAndValidateRequest(bindContext(`{"month":3,"name":"x"}`), req)
	if len(errs) == 0 {
		t.Fatalf("expected errors")
	}
	if errs[0].Field != "Flag" || errs[0].Code != "ERR_REQUIRED" {
		t.Fatalf("unexpected error %+v", errs[0])
	}
}

func TestReadAndValidateOutOfRange(t *testing.T) {
	req := &sampleRequest{}
	errs := ReadAndValidateRequest(bindContext(`{"flag":2,"month":13,"name":"x"}`), req)
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %v", errs)
	}
	msg := JoinValidationErrors(errs)
	if !strings.Contains(msg, "Flag") || !strings.Contains(msg, "Month") {
		t.Fatalf("message missing fields: %q", msg)
	}
}

func TestReadAndValidateMalformedJSON(t *testing.T) {
	req := &sampleRequest{}
	errs := ReadAndValidateRequest(bindContext(`{"flag":`), req)
	if len(errs) == 0 {
		t.Fatalf("expected errors")
	}
	if errs[0].Code != "ERR_MALFORMED" {
		t.Fatalf("code = %s", errs[0].Code)
	}
}

func TestJoinValidationErrorsEmpty(t *testing.T) {
	if got := JoinValidationErrors(nil); got != "invalid request" {
		t.Fatalf("got %q", got)
	}
}
