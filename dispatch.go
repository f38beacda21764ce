package presetreq

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/joy-dx/presetreq/dto"
	"github.com/joy-dx/presetreq/relays"
	relayDTO "github.com/joy-dx/relay/dto"
	"github.com/tidwall/gjson"
)

// dispatcher is shared by a root template and every template derived from it.
type dispatcher struct {
	transport dto.Transport
	relay     relayDTO.RelayInterface
	observer  dto.RequestObserver
}

func (r *Request) dispatch(ctx context.Context, body any) (dto.Response, error) {
	d := r.tpl.dispatcher
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}
	headers, err := r.evalHeaders(body)
	if err != nil {
		return dto.Response{}, err
	}
	out := &dto.Outgoing{
		RequestID: uuid.NewString(),
		URL:       r.URL,
		Method:    method,
		Body:      body,
		Headers:   headers,
		Format:    r.format,
	}

	note := dto.RequestNotification{
		RequestID: out.RequestID,
		URL:       out.URL,
		Method:    out.Method,
		Message:   describe(r.Message),
		Status:    dto.PENDING,
	}
	d.publish(note)

	if d.transport == nil {
		note.Status = dto.ERROR
		note.Error = ErrNoTransport.Error()
		d.publish(note)
		return dto.Response{}, ErrNoTransport
	}

	resp, err := d.transport.Send(ctx, out)
	if err != nil {
		note.Status = dto.ERROR
		note.Error = err.Error()
		d.publish(note)
		return dto.Response{}, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	if resp.RequestID == "" {
		resp.RequestID = out.RequestID
	}
	resp.Data = decodeBody(resp)

	r.fanOut(resp)

	note.Status = dto.COMPLETE
	note.StatusCode = resp.StatusCode
	d.publish(note)
	return resp, nil
}

func (r *Request) evalHeaders(body any) (h http.Header, err error) {
	var current string
	defer func() {
		if rec := recover(); rec != nil {
			h, err = nil, fmt.Errorf("%w: %s: panic: %v", ErrHeader, current, rec)
		}
	}()
	h = make(http.Header, len(r.headers))
	for k, v := range r.headers {
		current = k
		h.Set(k, v.eval(body))
	}
	return h, nil
}

// decodeBody parses JSON bodies. Anything that is not valid JSON stays a string.
func decodeBody(resp dto.Response) any {
	if resp.IsJSON() && gjson.ValidBytes(resp.Body) {
		var doc any
		if err := json.Unmarshal(resp.Body, &doc); err == nil {
			return doc
		}
	}
	return string(resp.Body)
}

// fanOut fires, in registration order, every callback whose same-named
// status rule matches the response code.
func (r *Request) fanOut(resp dto.Response) {
	keys := r.callbacks.Keys()
	values := r.callbacks.Values()
	for i, k := range keys {
		name := k.(string)
		rule, ok := r.status[name]
		if !ok || !rule.Match(resp.StatusCode) {
			continue
		}
		r.invoke(name, values[i].(Callback), resp)
	}
}

// invoke isolates a callback panic so the remaining callbacks still run and
// the caller still gets its settlement.
func (r *Request) invoke(name string, fn Callback, resp dto.Response) {
	defer func() {
		if rec := recover(); rec != nil {
			r.tpl.dispatcher.relay.Error(relays.RlyNetCallback{
				RequestID:  resp.RequestID,
				Name:       name,
				StatusCode: resp.StatusCode,
				Msg:        fmt.Sprintf("callback %q panicked: %v", name, rec),
			})
		}
	}()
	fn(r, resp.Data, resp)
}

func (d *dispatcher) publish(n dto.RequestNotification) {
	n.UpdatedAt = time.Now()
	if d.observer != nil {
		d.observer.ObserveRequest(n)
	}
	if d.relay == nil {
		return
	}
	evt := relays.RlyNetRequest{
		RequestID:  n.RequestID,
		Method:     n.Method,
		URL:        n.URL,
		Status:     n.Status,
		StatusCode: n.StatusCode,
		Msg:        n.Error,
	}
	switch n.Status {
	case dto.ERROR:
		d.relay.Warn(evt)
	case dto.COMPLETE:
		d.relay.Info(evt)
	default:
		d.relay.Debug(evt)
	}
}

func describe(message any) string {
	if message == nil {
		return ""
	}
	if s, ok := message.(string); ok {
		return s
	}
	return fmt.Sprint(message)
}
