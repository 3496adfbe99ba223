package consoleapi

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/eagl/console/pkg/apiclient"
	"github.com/go-playground/validator/v10"
)

var (
	// ErrNotAuthenticated is returned when the TokenSource holds no token.
	ErrNotAuthenticated = errors.New("consoleapi: not authenticated")

	// ErrInvalidPayload wraps client-side validation failures.
	ErrInvalidPayload = errors.New("consoleapi: invalid payload")
)

// TokenSource yields the bearer token for the next call.
type TokenSource interface {
	Token() string
}

// StaticToken is a TokenSource that always returns itself.
type StaticToken string

func (t StaticToken) Token() string { return string(t) }

// Client calls console endpoints on behalf of a session.
type Client struct {
	api      *apiclient.Client
	tokens   TokenSource
	validate *validator.Validate
}

// New creates a Client.
func New(api *apiclient.Client, tokens TokenSource) *Client {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	if err := v.RegisterValidation("cnpj", validateCNPJ); err != nil {
		panic(fmt.Sprintf("consoleapi: register cnpj validator: %v", err))
	}

	return &Client{api: api, tokens: tokens, validate: v}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	token := c.tokens.Token()
	if token == "" {
		return ErrNotAuthenticated
	}

	return c.api.Do(ctx, path, apiclient.RequestOptions{
		Method: method,
		Body:   body,
		Token:  token,
	}, out)
}

// check runs struct validation on a request payload.
func (c *Client) check(payload any) error {
	err := c.validate.Struct(payload)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, describe(e))
	}
	return fmt.Errorf("%w: %s", ErrInvalidPayload, strings.Join(msgs, "; "))
}

func describe(e validator.FieldError) string {
	field := e.Field()
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "gte":
		return fmt.Sprintf("%s must be %s or more", field, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "datetime":
		return fmt.Sprintf("%s must be a date formatted as %s", field, e.Param())
	case "cnpj":
		return fmt.Sprintf("%s must have 14 digits", field)
	default:
		return fmt.Sprintf("%s failed validation: %s", field, e.Tag())
	}
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

// validateCNPJ accepts 14 digits with or without the usual punctuation.
func validateCNPJ(fl validator.FieldLevel) bool {
	digits := 0
	for _, r := range fl.Field().String() {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.', r == '/', r == '-', r == ' ':
		default:
			return false
		}
	}
	return digits == 14
}

// withQuery appends the non-empty values as a query string.
func withQuery(path string, kv ...string) string {
	q := url.Values{}
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i+1] != "" {
			q.Set(kv[i], kv[i+1])
		}
	}
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

func escape(id string) string { return url.PathEscape(id) }
