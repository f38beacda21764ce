package presetreq

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/joy-dx/presetreq/dto"
	"github.com/joy-dx/presetreq/utils"
)

// Send runs prepare and transform stages and dispatches the result as is.
func (r *Request) Send(ctx context.Context, data any) (dto.Response, error) {
	return r.SendAs(ctx, dto.FormatRaw, data)
}

// SendText encodes the transformed value as a query string and defaults
// Content-Type to application/x-www-form-urlencoded.
func (r *Request) SendText(ctx context.Context, data any) (dto.Response, error) {
	return r.SendAs(ctx, dto.FormatText, data)
}

// SendJSON encodes the transformed value as JSON and defaults Content-Type
// to application/json.
func (r *Request) SendJSON(ctx context.Context, data any) (dto.Response, error) {
	return r.SendAs(ctx, dto.FormatJSON, data)
}

// SendForm dispatches the transformed value untouched. The caller supplies a
// body and Content-Type the transport understands, e.g. a multipart reader.
func (r *Request) SendForm(ctx context.Context, data any) (dto.Response, error) {
	return r.SendAs(ctx, dto.FormatForm, data)
}

// SendAs is the shared send routine. Exactly one settlement is returned per
// call. Once past the URL check the instance is reset to its template,
// whatever the outcome.
func (r *Request) SendAs(ctx context.Context, format dto.Format, data any) (dto.Response, error) {
	r.format = dto.FormatRaw
	if r.URL == "" {
		return dto.Response{}, ErrURLRequired
	}
	defer r.reset()

	r.format = format
	switch format {
	case dto.FormatText:
		r.defaultContentType(dto.ContentTypeForm)
	case dto.FormatJSON:
		r.defaultContentType(dto.ContentTypeJSON)
	case dto.FormatRaw, dto.FormatForm:
	default:
		return dto.Response{}, fmt.Errorf("%w: unknown format %q", ErrTransform, format)
	}

	if err := runPrepares(ctx, r, r.prepares); err != nil {
		return dto.Response{}, err
	}
	v, err := runTransforms(r, r.transforms, data)
	if err != nil {
		return dto.Response{}, err
	}
	body, err := serialize(format, v)
	if err != nil {
		return dto.Response{}, fmt.Errorf("%w: %w", ErrTransform, err)
	}
	return r.dispatch(ctx, body)
}

func (r *Request) defaultContentType(ct string) {
	if !r.hasHeader("Content-Type") {
		r.headers["Content-Type"] = headerValue{static: ct}
	}
}

// serialize applies the format's encoder. Text leaves strings and bytes
// alone since they are already encoded.
func serialize(format dto.Format, v any) (any, error) {
	switch format {
	case dto.FormatText:
		switch b := v.(type) {
		case nil:
			return "", nil
		case string, []byte:
			return b, nil
		}
		return utils.QueryString(v)
	case dto.FormatJSON:
		buf, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		return string(buf), nil
	default:
		return v, nil
	}
}
