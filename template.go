package presetreq

import (
	"context"
	"maps"
	"net/http"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/joy-dx/presetreq/dto"
	"github.com/joy-dx/presetreq/relays"
	relayDTO "github.com/joy-dx/relay/dto"
)

// HeaderFunc computes a header value at send time from the outgoing body.
type HeaderFunc func(body any) string

// Callback is invoked for every status rule of the same name matching the
// response. body is the parsed JSON document or the raw body as a string.
type Callback func(r *Request, body any, resp dto.Response)

// TransformFunc turns the value handed to a send into the outgoing body.
type TransformFunc func(r *Request, v any) (any, error)

// PrepareFunc runs before every send, e.g. to refresh credentials.
type PrepareFunc func(ctx context.Context, r *Request) error

// Handler pairs a callback with the status rule name it listens on.
type Handler struct {
	Name string
	Fn   Callback
}

// PresetSpec describes one preset layer. Maps override the parent per key;
// Prepare and Send compose with the parent's stages per merge strategy.
type PresetSpec struct {
	Headers     map[string]string
	HeaderFuncs map[string]HeaderFunc
	Status      map[string]dto.StatusRule
	// On callbacks, registered in slice order
	On      []Handler
	Prepare PrepareFunc
	Send    TransformFunc

	PrepareMergeStrategy dto.MergeStrategy
	SendMergeStrategy    dto.MergeStrategy
}

type headerValue struct {
	static string
	fn     HeaderFunc
}

func (h headerValue) eval(body any) string {
	if h.fn != nil {
		return h.fn(body)
	}
	return h.static
}

// Template is an immutable preset. Requests created from it get their own
// copies of its headers, status rules and callbacks.
type Template struct {
	headers    map[string]headerValue
	status     map[string]dto.StatusRule
	callbacks  *linkedhashmap.Map
	transforms []TransformFunc
	prepares   []PrepareFunc
	dispatcher *dispatcher
}

// Option configures the dispatcher of a root template.
type Option func(d *dispatcher)

func WithRelay(relay relayDTO.RelayInterface) Option {
	return func(d *dispatcher) {
		if relay != nil {
			d.relay = relay
		}
	}
}

// WithObserver receives a notification for every request lifecycle change.
func WithObserver(observer dto.RequestObserver) Option {
	return func(d *dispatcher) {
		d.observer = observer
	}
}

// NewTemplate builds a root template sending through transport.
func NewTemplate(transport dto.Transport, spec PresetSpec, opts ...Option) *Template {
	d := &dispatcher{
		transport: transport,
		relay:     relays.NewSlogRelay(nil),
	}
	for _, opt := range opts {
		opt(d)
	}
	return derive(nil, d, spec)
}

// Preset derives a child template. The child shares the parent's dispatcher.
func (t *Template) Preset(spec PresetSpec) *Template {
	return derive(t, t.dispatcher, spec)
}

func derive(parent *Template, d *dispatcher, spec PresetSpec) *Template {
	t := &Template{
		headers:    map[string]headerValue{},
		status:     map[string]dto.StatusRule{},
		callbacks:  linkedhashmap.New(),
		dispatcher: d,
	}

	var ownTransforms []TransformFunc
	if spec.Send != nil {
		ownTransforms = []TransformFunc{spec.Send}
	}
	var ownPrepares []PrepareFunc
	if spec.Prepare != nil {
		ownPrepares = []PrepareFunc{spec.Prepare}
	}

	if parent != nil {
		maps.Copy(t.headers, parent.headers)
		maps.Copy(t.status, parent.status)
		copyCallbacks(t.callbacks, parent.callbacks)
		t.transforms = composeStages(parent.transforms, ownTransforms, spec.SendMergeStrategy)
		t.prepares = composeStages(parent.prepares, ownPrepares, spec.PrepareMergeStrategy)
	} else {
		t.transforms = ownTransforms
		t.prepares = ownPrepares
	}

	for k, v := range spec.Headers {
		t.headers[http.CanonicalHeaderKey(k)] = headerValue{static: v}
	}
	for k, fn := range spec.HeaderFuncs {
		if fn != nil {
			t.headers[http.CanonicalHeaderKey(k)] = headerValue{fn: fn}
		}
	}
	maps.Copy(t.status, spec.Status)
	for _, h := range spec.On {
		if h.Name != "" && h.Fn != nil {
			t.callbacks.Put(h.Name, h.Fn)
		}
	}
	return t
}

func copyCallbacks(dst, src *linkedhashmap.Map) {
	src.Each(func(key, value interface{}) {
		dst.Put(key, value)
	})
}

// New creates a blank request from the template.
func (t *Template) New() *Request {
	r := &Request{tpl: t}
	r.reset()
	return r
}

func (t *Template) Get(url string, params ...any) *Request {
	return t.New().Get(url, params...)
}

func (t *Template) Post(url string, params ...any) *Request {
	return t.New().Post(url, params...)
}

func (t *Template) Put(url string, params ...any) *Request {
	return t.New().Put(url, params...)
}

func (t *Template) Patch(url string, params ...any) *Request {
	return t.New().Patch(url, params...)
}

func (t *Template) Delete(url string, params ...any) *Request {
	return t.New().Delete(url, params...)
}

func (t *Template) Headers(headers map[string]string) *Request {
	return t.New().Headers(headers)
}

func (t *Template) HeaderFunc(key string, fn HeaderFunc) *Request {
	return t.New().HeaderFunc(key, fn)
}

func (t *Template) Status(rules map[string]dto.StatusRule) *Request {
	return t.New().Status(rules)
}

func (t *Template) On(name string, fn Callback) *Request {
	return t.New().On(name, fn)
}

func (t *Template) Descr(message any) *Request {
	return t.New().Descr(message)
}
