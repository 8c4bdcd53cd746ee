package router

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strings"

	"github.com/campusboard/backend/pkg/errorx"
	"github.com/campusboard/backend/pkg/xcontext"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
)

func parseRequest(ctx context.Context, method string, req any) error {
	httpReq := xcontext.HTTPRequest(ctx)
	switch method {
	case "GET":
		return decodeQuery(httpReq.URL.Query(), req)

	case "POST":
		// Only the plain values of a multipart form are decoded, files are
		// read by the handler itself.
		if strings.HasPrefix(httpReq.Header.Get("Content-Type"), "multipart/form-data") {
			if err := httpReq.ParseMultipartForm(xcontext.Configs(ctx).File.MaxSize); err != nil {
				return errorx.New(errorx.BadRequest, "Invalid multipart form")
			}

			return decodeQuery(httpReq.MultipartForm.Value, req)
		}

		err := json.NewDecoder(httpReq.Body).Decode(req)
		if err != nil && !errors.Is(err, io.EOF) {
			xcontext.Logger(ctx).Debugf("Cannot decode request body: %v", err)
			return errorx.New(errorx.BadRequest, "Invalid json body")
		}
	}

	return nil
}

func decodeQuery(query map[string][]string, req any) error {
	values := make(map[string]any, len(query))
	for k, v := range query {
		if len(v) == 1 {
			values[k] = v[0]
		} else {
			values[k] = v
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           req,
	})
	if err != nil {
		return err
	}

	if err := decoder.Decode(values); err != nil {
		return errorx.New(errorx.BadRequest, "Invalid query parameters")
	}

	return nil
}

func validateRequest(validate *validator.Validate, req any) error {
	v := reflect.ValueOf(req)
	for v.Kind() == reflect.Pointer {
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return nil
	}

	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return errorx.New(errorx.BadRequest, "Invalid field %s (%s)", fe.Field(), fe.Tag())
	}

	return errorx.New(errorx.BadRequest, "Invalid request")
}
