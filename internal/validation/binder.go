package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// DefaultBinder is the binder used by BindAndValidate and installed on the
// echo instance.
var DefaultBinder = &StrictBinder{}

// StrictBinder is an echo.Binder that rejects JSON bodies with fields the
// target type does not declare.
type StrictBinder struct {
	echo.DefaultBinder
}

// Bind binds path params, query params (GET, DELETE and HEAD only) and the
// request body, in that order.
func (b *StrictBinder) Bind(i any, c echo.Context) error {
	if err := b.BindPathParams(c, i); err != nil {
		return err
	}

	method := c.Request().Method
	if method == http.MethodGet || method == http.MethodDelete || method == http.MethodHead {
		if err := b.BindQueryParams(c, i); err != nil {
			return err
		}
	}

	return b.BindBody(c, i)
}

// BindBody decodes a JSON body. An empty body is not an error.
func (b *StrictBinder) BindBody(c echo.Context, i any) error {
	req := c.Request()
	if req.ContentLength == 0 || req.Body == nil {
		return nil
	}

	ctype := req.Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(ctype, echo.MIMEApplicationJSON) {
		return echo.NewHTTPError(http.StatusUnsupportedMediaType, "Content-Type must be application/json")
	}

	dec := json.NewDecoder(req.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(i); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return echo.NewHTTPError(http.StatusBadRequest, decodeMessage(err)).SetInternal(err)
	}

	if dec.More() {
		return echo.NewHTTPError(http.StatusBadRequest, "Request body must contain a single JSON object")
	}

	return nil
}

func decodeMessage(err error) string {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError

	switch {
	case errors.As(err, &syntaxErr):
		return fmt.Sprintf("Malformed JSON at offset %d", syntaxErr.Offset)
	case errors.As(err, &typeErr):
		if typeErr.Field != "" {
			return fmt.Sprintf("Field %s must be of type %s", typeErr.Field, typeErr.Type)
		}
		return fmt.Sprintf("Body must be of type %s", typeErr.Type)
	case errors.Is(err, io.ErrUnexpectedEOF):
		return "Malformed JSON"
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		field := strings.TrimPrefix(err.Error(), "json: unknown field ")
		return fmt.Sprintf("Unknown field %s", field)
	default:
		return "Invalid request body"
	}
}
